package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/akinalp/pisi/pkg"
)

// validate, struct tag tabanlı doğrulayıcıdır. *validator.Validate goroutine-safe'dir
// ve struct bilgisini cache'ler, bu yüzden paket genelinde tek bir örnek kullanılır.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Hata mesajlarında Go field adı yerine JSON adı görünsün: "FullName" → "full_name"
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// validateStruct, validate tag'lerini kontrol eder ve ilk hatayı
// çevrilebilir bir UserError olarak döner.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		key := "form.invalidField"
		if fe.Tag() == "required" {
			key = "form.requiredField"
		}
		return pkg.NewUserError(pkg.ErrBadRequest, key, map[string]string{"field": fe.Field()})
	}

	return fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
}

// trimPtr, nil olmayan bir string pointer'ın boşluklarını temizler.
// Sonuç boş string ise nil döner — boş alan "değer yok" anlamına gelir.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
