package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTitleLen       = 100
	MaxDescriptionLen = 1000
)

type Place struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	OwnerID     string    `json:"owner_id"`
	Amenities   []Amenity `json:"amenities"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreatePlaceRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	OwnerID     string   `json:"owner_id"`
	Amenities   []string `json:"amenities"`
}

// UpdatePlaceRequest is the allow-list for partial place updates.
// A nil Amenities slice leaves associations untouched; a non-nil slice
// fully replaces them.
type UpdatePlaceRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
}

func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return Validationf("title is required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return Validationf("title must be at most %d characters", MaxTitleLen)
	}
	return nil
}

func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		return Validationf("description must be at most %d characters", MaxDescriptionLen)
	}
	return nil
}

func ValidatePrice(price float64) error {
	if price <= 0 {
		return Validationf("price must be greater than 0")
	}
	return nil
}

func ValidateLatitude(lat float64) error {
	if lat < -90 || lat > 90 {
		return Validationf("latitude must be between -90 and 90")
	}
	return nil
}

func ValidateLongitude(lng float64) error {
	if lng < -180 || lng > 180 {
		return Validationf("longitude must be between -180 and 180")
	}
	return nil
}

func (r *CreatePlaceRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *CreatePlaceRequest) Validate() error {
	if err := ValidateTitle(r.Title); err != nil {
		return err
	}
	if err := ValidateDescription(r.Description); err != nil {
		return err
	}
	if r.Price == nil {
		return Validationf("price is required")
	}
	if err := ValidatePrice(*r.Price); err != nil {
		return err
	}
	if r.Latitude == nil {
		return Validationf("latitude is required")
	}
	if err := ValidateLatitude(*r.Latitude); err != nil {
		return err
	}
	if r.Longitude == nil {
		return Validationf("longitude is required")
	}
	if err := ValidateLongitude(*r.Longitude); err != nil {
		return err
	}
	if r.OwnerID == "" {
		return Validationf("owner_id is required")
	}
	if r.Amenities == nil {
		return Validationf("amenities is required")
	}
	return nil
}

func (r *UpdatePlaceRequest) Normalize() {
	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		r.Title = &trimmed
	}
	if r.Description != nil {
		trimmed := strings.TrimSpace(*r.Description)
		r.Description = &trimmed
	}
}

func (r *UpdatePlaceRequest) Validate() error {
	if r.Title != nil {
		if err := ValidateTitle(*r.Title); err != nil {
			return err
		}
	}
	if r.Description != nil {
		if err := ValidateDescription(*r.Description); err != nil {
			return err
		}
	}
	if r.Price != nil {
		if err := ValidatePrice(*r.Price); err != nil {
			return err
		}
	}
	if r.Latitude != nil {
		if err := ValidateLatitude(*r.Latitude); err != nil {
			return err
		}
	}
	if r.Longitude != nil {
		if err := ValidateLongitude(*r.Longitude); err != nil {
			return err
		}
	}
	return nil
}
