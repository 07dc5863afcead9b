package pkg

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/akinalp/pisi/pkg/i18n"
)

// APIResponse, tüm API yanıtları için standart format.
// Public site ve admin paneli her zaman aynı yapıyı bekler.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSON, başarılı bir yanıt gönderir.
func JSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, APIResponse{Success: true, Data: data})
}

// Error, hata yanıtı gönderir.
// Domain error'ları otomatik olarak uygun HTTP status code'a çevrilir.
// 5xx hatalarında iç detay client'a sızdırılmaz, sadece loglanır.
func Error(w http.ResponseWriter, err error) {
	status := mapErrorToStatus(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		log.Printf("[http] internal error: %v", err)
		msg = "internal server error"
	}
	writeJSON(w, status, APIResponse{Success: false, Error: msg})
}

// ErrorFor, Error ile aynıdır ama UserError'ları isteğin diline çevirir.
// Dil Accept-Language header'ından belirlenir.
func ErrorFor(w http.ResponseWriter, r *http.Request, err error) {
	var userErr *UserError
	if !errors.As(err, &userErr) {
		Error(w, err)
		return
	}

	localizer := i18n.NewLocalizer(i18n.DetectLanguage(r.Header.Get("Accept-Language")))
	writeJSON(w, mapErrorToStatus(err), APIResponse{
		Success: false,
		Error:   localizer.TWithParams(userErr.Key, userErr.Params),
	})
}

// ErrorWithMessage, özel mesajlı hata yanıtı gönderir.
func ErrorWithMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, APIResponse{Success: false, Error: message})
}

func writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[http] failed to encode response: %v", err)
	}
}

// mapErrorToStatus, domain error'ları HTTP status code'larına eşler.
// errors.Is wrap edilmiş error chain'ini de kontrol eder.
func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyExists), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
