package domain

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxReviewTextLen = 1000
	MinRating        = 1
	MaxRating        = 5
)

type Review struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	UserID    string    `json:"user_id"`
	PlaceID   string    `json:"place_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Rating rides in as float64 so a fractional value can be rejected as
// "not an integer" instead of silently truncated by the decoder.
type CreateReviewRequest struct {
	Text    string   `json:"text"`
	Rating  *float64 `json:"rating"`
	UserID  string   `json:"user_id"`
	PlaceID string   `json:"place_id"`
}

// UpdateReviewRequest is the allow-list for partial review updates;
// user_id and place_id are immutable.
type UpdateReviewRequest struct {
	Text   *string  `json:"text,omitempty"`
	Rating *float64 `json:"rating,omitempty"`
}

func ValidateReviewText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return Validationf("text is required")
	}
	if utf8.RuneCountInString(text) > MaxReviewTextLen {
		return Validationf("text must be at most %d characters", MaxReviewTextLen)
	}
	return nil
}

// ValidateRating rejects non-integral values before range checking so
// the two failures stay distinguishable.
func ValidateRating(raw float64) (int, error) {
	if raw != math.Trunc(raw) {
		return 0, Validationf("rating must be an integer")
	}
	rating := int(raw)
	if rating < MinRating || rating > MaxRating {
		return 0, Validationf("rating must be between %d and %d", MinRating, MaxRating)
	}
	return rating, nil
}

func (r *CreateReviewRequest) Normalize() {
	r.Text = strings.TrimSpace(r.Text)
}

func (r *CreateReviewRequest) Validate() error {
	if err := ValidateReviewText(r.Text); err != nil {
		return err
	}
	if r.Rating == nil {
		return Validationf("rating is required")
	}
	if _, err := ValidateRating(*r.Rating); err != nil {
		return err
	}
	if r.UserID == "" {
		return Validationf("user_id is required")
	}
	if r.PlaceID == "" {
		return Validationf("place_id is required")
	}
	return nil
}

func (r *UpdateReviewRequest) Normalize() {
	if r.Text != nil {
		trimmed := strings.TrimSpace(*r.Text)
		r.Text = &trimmed
	}
}

func (r *UpdateReviewRequest) Validate() error {
	if r.Text != nil {
		if err := ValidateReviewText(*r.Text); err != nil {
			return err
		}
	}
	if r.Rating != nil {
		if _, err := ValidateRating(*r.Rating); err != nil {
			return err
		}
	}
	return nil
}
