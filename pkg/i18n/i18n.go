// Package i18n, API'nin kullanıcıya dönen mesajlarını çevirir.
//
// Site Türkçe yayın yapar, admin paneli İngilizce de kullanılabilir.
// Dil Accept-Language header'ından belirlenir, bulunamazsa Türkçe'ye düşülür.
//
//	localizer := i18n.NewLocalizer("tr")
//	msg := localizer.T("gallery.heroSectionLimit")
package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"sync"
)

// SupportedLanguages — desteklenen dil kodları.
var SupportedLanguages = []string{"tr", "en"}

// DefaultLanguage — varsayılan dil.
const DefaultLanguage = "tr"

// translations map[lang]map[key]value formatındadır.
// Başlangıçta bir kere yüklenir, sonra sadece okunur.
var (
	mu           sync.RWMutex
	translations = map[string]map[string]string{}
)

// Load, çeviri dosyalarını fs.FS'ten yükler (tr.json, en.json).
// Nested JSON flat key'lere dönüştürülür: {"auth": {"login": "..."}} → "auth.login"
func Load(localesFS fs.FS) error {
	loaded := make(map[string]map[string]string, len(SupportedLanguages))

	for _, lang := range SupportedLanguages {
		fileName := lang + ".json"

		data, err := fs.ReadFile(localesFS, fileName)
		if err != nil {
			return fmt.Errorf("failed to read translation file %s: %w", fileName, err)
		}

		var nested map[string]any
		if err := json.Unmarshal(data, &nested); err != nil {
			return fmt.Errorf("failed to parse translation file %s: %w", fileName, err)
		}

		flat := make(map[string]string)
		flattenMap("", nested, flat)
		loaded[lang] = flat

		log.Printf("[i18n] loaded %d keys for language: %s", len(flat), lang)
	}

	mu.Lock()
	translations = loaded
	mu.Unlock()
	return nil
}

// LoadEmbedded, binary'ye gömülü locales/ dizinini yükler.
func LoadEmbedded() error {
	sub, err := fs.Sub(EmbeddedLocales, "locales")
	if err != nil {
		return fmt.Errorf("failed to open embedded locales: %w", err)
	}
	return Load(sub)
}

// Localizer, belirli bir dil için çeviri yapar.
type Localizer struct {
	lang string
}

// NewLocalizer, desteklenmeyen dil verilirse varsayılana düşer.
func NewLocalizer(lang string) *Localizer {
	if !isSupported(lang) {
		lang = DefaultLanguage
	}
	return &Localizer{lang: lang}
}

// Lang, localizer'ın kullandığı dil kodunu döner.
func (l *Localizer) Lang() string {
	return l.lang
}

// T, anahtarın çevirisini döner.
// Sıra: kullanıcının dili → varsayılan dil → anahtarın kendisi.
func (l *Localizer) T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if msg, ok := translations[l.lang][key]; ok {
		return msg
	}
	if msg, ok := translations[DefaultLanguage][key]; ok {
		return msg
	}
	return key
}

// TWithParams, metindeki {{param}} yer tutucularını değerlerle değiştirir.
//
//	localizer.TWithParams("gallery.heroSectionLimit", map[string]string{"max": "4"})
//	→ "En fazla 4 küçük hero görseli seçilebilir"
func (l *Localizer) TWithParams(key string, params map[string]string) string {
	msg := l.T(key)
	for k, v := range params {
		msg = strings.ReplaceAll(msg, "{{"+k+"}}", v)
	}
	return msg
}

// DetectLanguage, Accept-Language header'ından en uygun dili belirler.
// Header formatı: "tr-TR,tr;q=0.9,en-US;q=0.8,en;q=0.7"
func DetectLanguage(acceptLanguage string) string {
	if acceptLanguage == "" {
		return DefaultLanguage
	}

	for _, part := range strings.Split(acceptLanguage, ",") {
		lang := strings.TrimSpace(strings.Split(part, ";")[0])
		lang = strings.ToLower(strings.Split(lang, "-")[0])

		if isSupported(lang) {
			return lang
		}
	}

	return DefaultLanguage
}

func isSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

func flattenMap(prefix string, src map[string]any, dst map[string]string) {
	for k, v := range src {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			dst[key] = val
		case map[string]any:
			flattenMap(key, val, dst)
		}
	}
}
