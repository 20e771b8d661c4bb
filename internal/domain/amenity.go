package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const MaxAmenityNameLen = 100

type Amenity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateAmenityRequest struct {
	Name string `json:"name"`
}

type UpdateAmenityRequest struct {
	Name *string `json:"name,omitempty"`
}

func ValidateAmenityName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return Validationf("name is required")
	}
	if utf8.RuneCountInString(name) > MaxAmenityNameLen {
		return Validationf("name must be at most %d characters", MaxAmenityNameLen)
	}
	return nil
}

func (r *CreateAmenityRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateAmenityRequest) Validate() error {
	return ValidateAmenityName(r.Name)
}

func (r *UpdateAmenityRequest) Normalize() {
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
	}
}

func (r *UpdateAmenityRequest) Validate() error {
	if r.Name != nil {
		return ValidateAmenityName(*r.Name)
	}
	return nil
}
