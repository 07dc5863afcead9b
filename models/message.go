package models

import (
	"strings"
	"time"
)

// Message, iletişim formundan gelen bir ziyaretçi mesajıdır.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Subject   *string   `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateMessageRequest, public iletişim formu.
type CreateMessageRequest struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Email   string  `json:"email" validate:"required,email,max=254"`
	Phone   *string `json:"phone" validate:"omitempty,max=30"`
	Subject *string `json:"subject" validate:"omitempty,max=150"`
	Message string  `json:"message" validate:"required,max=5000"`
}

// Validate, CreateMessageRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateMessageRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Message = strings.TrimSpace(r.Message)
	r.Phone = trimPtr(r.Phone)
	r.Subject = trimPtr(r.Subject)
	return validateStruct(r)
}

// ReadFilter, gelen kutusu listelerinin filtresi (tümü / okunmamış).
type ReadFilter string

const (
	ReadFilterAll    ReadFilter = "all"
	ReadFilterUnread ReadFilter = "unread"
)

// ParseReadFilter, query param'ı filtreye çevirir. Bilinmeyen değer "all" sayılır.
func ParseReadFilter(s string) ReadFilter {
	if ReadFilter(s) == ReadFilterUnread {
		return ReadFilterUnread
	}
	return ReadFilterAll
}

// MarkReadRequest, okundu/okunmadı işaretleme isteği.
type MarkReadRequest struct {
	IsRead bool `json:"is_read"`
}
