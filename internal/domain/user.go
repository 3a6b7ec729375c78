package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Limits applied by User.Validate.
const (
	MinNameLength     = 2
	MaxNameLength     = 50
	MinPasswordLength = 8
	MaxPasswordLength = 72 // bcrypt ignores anything past 72 bytes
	MaxAge            = 120
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// User represents a registered user of the storefront.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Age            *int      `json:"age,omitempty"`
	Active         bool      `json:"active"`
	Password       string    `json:"-"` // Plaintext, only set while creating or changing the password
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserUpdate carries a partial update. Nil fields are left unchanged.
type UserUpdate struct {
	Name     *string
	Email    *string
	Age      *int
	Password *string
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Age == nil && u.Password == nil
}

// NewUser creates a new User with a fresh ID and timestamps.
// The email is normalized to lower case. The caller (the store) is
// responsible for hashing the plaintext password before it is persisted.
func NewUser(name, email, password string, age *int) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Age:       age,
		Active:    true,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail trims and lower-cases an email address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks every field and returns a *ValidationError listing all
// failures, or nil.
func (u *User) Validate() error {
	ve := &ValidationError{}

	if u.ID == uuid.Nil {
		ve.Add("id", "is required")
	}

	name := strings.TrimSpace(u.Name)
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		ve.Add("name", "is required")
	case n < MinNameLength:
		ve.Add("name", "must be at least 2 characters")
	case n > MaxNameLength:
		ve.Add("name", "must be at most 50 characters")
	}

	switch {
	case u.Email == "":
		ve.Add("email", "is required")
	case !emailPattern.MatchString(u.Email):
		ve.Add("email", "has invalid format")
	}

	if u.Age != nil && (*u.Age < 0 || *u.Age > MaxAge) {
		ve.Add("age", "must be between 0 and 120")
	}

	if u.Password != "" {
		switch {
		case len(u.Password) < MinPasswordLength:
			ve.Add("password", "must be at least 8 characters")
		case len(u.Password) > MaxPasswordLength:
			ve.Add("password", "must be at most 72 characters")
		}
	} else if u.HashedPassword == "" {
		ve.Add("password", "is required")
	}

	return ve.Err()
}

// ApplyUpdate copies every non-nil field of update onto the user, bumps
// UpdatedAt and re-validates. On error the user may be partially modified,
// so callers should discard it.
func (u *User) ApplyUpdate(update UserUpdate) error {
	if update.Name != nil {
		u.Name = strings.TrimSpace(*update.Name)
	}
	if update.Email != nil {
		u.Email = NormalizeEmail(*update.Email)
	}
	if update.Age != nil {
		age := *update.Age
		u.Age = &age
	}
	if update.Password != nil {
		u.Password = *update.Password
		if u.Password == "" {
			return NewValidationError("password", "cannot be empty", nil)
		}
	}

	u.UpdatedAt = time.Now().UTC()
	return u.Validate()
}

// Deactivate marks the account inactive. The account and its listings are
// kept; an inactive user cannot list new products.
func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now().UTC()
}

// Activate marks the account active again.
func (u *User) Activate() {
	u.Active = true
	u.UpdatedAt = time.Now().UTC()
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	c := *u
	if u.Age != nil {
		age := *u.Age
		c.Age = &age
	}
	return &c
}
