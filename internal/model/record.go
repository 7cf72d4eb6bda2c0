package model

import (
	"strings"
	"time"
)

// RegistrationRecord is the account row sent to the remote store.
// It is built once per validated submission and never mutated.
type RegistrationRecord struct {
	Firstname    string     `json:"firstname" db:"firstname"`
	Lastname     string     `json:"lastname" db:"lastname"`
	MobileNumber string     `json:"mobile_number" db:"mobile_number"`
	Email        string     `json:"email" db:"email"`
	Password     string     `json:"password" db:"password"` // bcrypt hash
	Status       bool       `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at" db:"deleted_at"` // nil: not soft-deleted
}

// NewRegistrationRecord builds a record from a validated form and a password hash
func NewRegistrationRecord(form RegistrationForm, passwordHash string, now time.Time) *RegistrationRecord {
	ts := now.UTC()
	return &RegistrationRecord{
		Firstname:    strings.TrimSpace(form.Firstname),
		Lastname:     strings.TrimSpace(form.Lastname),
		MobileNumber: strings.TrimSpace(form.Mobile),
		Email:        strings.TrimSpace(form.Email),
		Password:     passwordHash,
		Status:       true,
		CreatedAt:    ts,
		UpdatedAt:    ts,
		DeletedAt:    nil,
	}
}

// StoredUser is a persisted RegistrationRecord with its store-assigned ID
type StoredUser struct {
	ID string `json:"id" db:"id"`
	RegistrationRecord
}
