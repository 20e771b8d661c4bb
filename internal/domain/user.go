package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor is the already-authenticated caller of a facade operation.
// The HTTP layer resolves it from JWT claims; the facade never talks
// to the token service itself.
type Actor struct {
	ID      string
	IsAdmin bool
}

func (a Actor) CanManage(ownerID string) bool {
	return a.IsAdmin || a.ID == ownerID
}

type CreateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	IsAdmin   bool   `json:"is_admin,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	User        *UserInfo `json:"user"`
}

// UpdateUserRequest is the allow-list for partial user updates. Fields
// not present here (id, is_admin, timestamps) cannot be patched.
type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
}

// UserInfo is the public representation; it never carries the raw or
// hashed password.
type UserInfo struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) ToUserInfo() *UserInfo {
	return &UserInfo{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func ValidateName(field, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return Validationf("%s is required", field)
	}
	// Length rules count characters, not bytes.
	if n := utf8.RuneCountInString(name); n < 3 || n > 50 {
		return Validationf("%s must be between 3 and 50 characters", field)
	}
	return nil
}

func ValidateEmail(email string) error {
	if email == "" {
		return Validationf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return Validationf("invalid email format")
	}
	return nil
}

// ValidatePassword enforces the raw (pre-hash) password policy: at least
// 8 characters, one letter of any case and one digit.
func ValidatePassword(password string) error {
	if password == "" {
		return Validationf("password is required")
	}
	if len(password) < 8 {
		return Validationf("password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return Validationf("password must contain at least one letter and one digit")
	}
	return nil
}

func (r *CreateUserRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *CreateUserRequest) Validate() error {
	if err := ValidateName("first_name", r.FirstName); err != nil {
		return err
	}
	if err := ValidateName("last_name", r.LastName); err != nil {
		return err
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	return ValidatePassword(r.Password)
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *LoginRequest) Validate() error {
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return Validationf("password is required")
	}
	return nil
}

func (r *UpdateUserRequest) Normalize() {
	if r.FirstName != nil {
		trimmed := strings.TrimSpace(*r.FirstName)
		r.FirstName = &trimmed
	}
	if r.LastName != nil {
		trimmed := strings.TrimSpace(*r.LastName)
		r.LastName = &trimmed
	}
	if r.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &lowered
	}
}

func (r *UpdateUserRequest) Validate() error {
	if r.FirstName != nil {
		if err := ValidateName("first_name", *r.FirstName); err != nil {
			return err
		}
	}
	if r.LastName != nil {
		if err := ValidateName("last_name", *r.LastName); err != nil {
			return err
		}
	}
	if r.Email != nil {
		if err := ValidateEmail(*r.Email); err != nil {
			return err
		}
	}
	if r.Password != nil {
		if err := ValidatePassword(*r.Password); err != nil {
			return err
		}
	}
	return nil
}

// TouchesCredentials reports whether the patch changes fields only an
// admin may modify.
func (r *UpdateUserRequest) TouchesCredentials() bool {
	return r.Email != nil || r.Password != nil
}
