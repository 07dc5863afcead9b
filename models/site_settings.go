package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/akinalp/pisi/pkg"
)

// Bilinen site ayarı anahtarları.
const (
	SettingGoogleRating         = "google_rating"
	SettingReviewCount          = "review_count"
	SettingWorkingHours         = "working_hours"
	SettingFranchiseBranchCount = "franchise_branch_count"
	SettingFranchiseCityCount   = "franchise_city_count"
	SettingFranchiseYears       = "franchise_years"
	SettingInstagramURL         = "instagram_url"
	SettingPhone                = "phone"
	SettingEmail                = "email"
)

// settingKinds, her anahtarın değer tipini belirler.
var settingKinds = map[string]settingKind{
	SettingGoogleRating:         kindRating,
	SettingReviewCount:          kindCount,
	SettingWorkingHours:         kindText,
	SettingFranchiseBranchCount: kindCount,
	SettingFranchiseCityCount:   kindCount,
	SettingFranchiseYears:       kindCount,
	SettingInstagramURL:         kindText,
	SettingPhone:                kindText,
	SettingEmail:                kindText,
}

type settingKind int

const (
	kindText settingKind = iota
	kindRating
	kindCount
)

// SiteSetting, site_settings tablosundaki bir key/value çifti.
type SiteSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsKnownSetting, anahtarın desteklenip desteklenmediğini döner.
func IsKnownSetting(key string) bool {
	_, ok := settingKinds[key]
	return ok
}

// UpdateSettingsRequest, birden fazla ayarı tek seferde güncelleme isteği.
type UpdateSettingsRequest struct {
	Values map[string]string `json:"values"`
}

// Validate, her anahtarın bilinen bir ayar olduğunu ve değerin tipine uyduğunu kontrol eder.
// Puan "4,8" gibi virgüllü yazılabilir, noktaya normalize edilir.
func (r *UpdateSettingsRequest) Validate() error {
	if len(r.Values) == 0 {
		return pkg.NewUserError(pkg.ErrBadRequest, "form.requiredField", map[string]string{"field": "values"})
	}

	for key, raw := range r.Values {
		kind, ok := settingKinds[key]
		if !ok {
			return pkg.NewUserError(pkg.ErrBadRequest, "settings.unknownKey", map[string]string{"key": key})
		}

		value := strings.TrimSpace(raw)
		switch kind {
		case kindRating:
			value = strings.Replace(value, ",", ".", 1)
			f, err := strconv.ParseFloat(value, 64)
			if err != nil || f < 0 || f > 5 {
				return pkg.NewUserError(pkg.ErrBadRequest, "settings.invalidRating", nil)
			}
		case kindCount:
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return pkg.NewUserError(pkg.ErrBadRequest, "settings.invalidCount", map[string]string{"key": key})
			}
		}
		r.Values[key] = value
	}

	return nil
}
