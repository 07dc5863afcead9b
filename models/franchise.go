package models

import (
	"strings"
	"time"
)

// FranchiseApplication, franchise başvuru formundan gelen kayıttır.
type FranchiseApplication struct {
	ID            string    `json:"id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	City          string    `json:"city"`
	Budget        *string   `json:"budget"`
	HasExperience bool      `json:"has_experience"`
	Message       *string   `json:"message"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateFranchiseRequest, public franchise başvuru formu.
type CreateFranchiseRequest struct {
	FullName      string  `json:"full_name" validate:"required,max=120"`
	Email         string  `json:"email" validate:"required,email,max=254"`
	Phone         string  `json:"phone" validate:"required,max=30"`
	City          string  `json:"city" validate:"required,max=60"`
	Budget        *string `json:"budget" validate:"omitempty,max=60"`
	HasExperience bool    `json:"has_experience"`
	Message       *string `json:"message" validate:"omitempty,max=5000"`
}

// Validate, CreateFranchiseRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateFranchiseRequest) Validate() error {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.City = strings.TrimSpace(r.City)
	r.Budget = trimPtr(r.Budget)
	r.Message = trimPtr(r.Message)
	return validateStruct(r)
}
