// Package slug, şube adlarından URL dostu slug üretir.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Turkish)

// Make, metni küçük harfe çevirir, aksanları atar ve harf/rakam dışındaki
// karakter dizilerini tek bir "-" ile değiştirir.
//
//	Make("Kadıköy Şubesi") == "kadikoy-subesi"
func Make(s string) string {
	s = lower.String(s)
	s = strings.ReplaceAll(s, "ı", "i")
	s = norm.NFD.String(s)

	var b strings.Builder
	b.Grow(len(s))
	dash := false
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Mn, r):
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return b.String()
}

// Unique, base slug'ı exists false dönene kadar "-2", "-3" ... ekleriyle dener.
// base boşsa "sube" kullanılır.
func Unique(base string, exists func(candidate string) (bool, error)) (string, error) {
	if base == "" {
		base = "sube"
	}
	candidate := base
	for n := 2; ; n++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
}
