// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Error karşılaştırması string yerine referans ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
package pkg

import (
	"errors"
	"fmt"
)

// Domain-level error'lar.
// Service katmanı bunları wrap ederek döner, handler katmanı HTTP status code'a map'ler.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrAlreadyExists   = errors.New("already exists")
	ErrBadRequest      = errors.New("bad request")
	ErrConflict        = errors.New("conflict")
	ErrTooManyRequests = errors.New("too many requests")
	ErrInternal        = errors.New("internal error")
)

// UserError, kullanıcıya gösterilecek ve çevrilebilen bir hatadır.
//
// Kind bir sentinel error'dır (ErrBadRequest, ErrConflict...) — status code'u belirler.
// Key, i18n anahtarıdır (ör: "gallery.heroSectionLimit"). Params çeviri
// metnindeki {{param}} yer tutucularını doldurur.
//
//	return pkg.NewUserError(pkg.ErrBadRequest, "gallery.heroSectionLimit", map[string]string{"max": "4"})
type UserError struct {
	Kind   error
	Key    string
	Params map[string]string
}

// NewUserError, yeni bir UserError oluşturur.
func NewUserError(kind error, key string, params map[string]string) *UserError {
	return &UserError{Kind: kind, Key: key, Params: params}
}

func (e *UserError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Key)
}

// Unwrap, errors.Is(err, pkg.ErrBadRequest) gibi kontrollerin çalışmasını sağlar.
func (e *UserError) Unwrap() error {
	return e.Kind
}
