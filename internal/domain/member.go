package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MemberStatus represents the lifecycle state of a member account.
type MemberStatus string

// Possible member status values
const (
	// MemberStatusOpen marks a registered, active account.
	MemberStatusOpen MemberStatus = "open"

	// MemberStatusWithdrawn marks an account whose owner has closed it.
	// Withdrawn members fail the open-account check on every profile operation.
	MemberStatusWithdrawn MemberStatus = "withdrawn"
)

// Common validation errors for Member
var (
	ErrEmptyMemberID       = errors.New("member ID cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrEmptyBirthDate      = errors.New("birth date cannot be empty")
	ErrBirthDateInFuture   = errors.New("birth date cannot be in the future")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrInvalidMemberStatus = errors.New("invalid member status")
)

// Member represents a registered account holder of the storefront.
// It contains identity, credential, and profile information.
type Member struct {
	ID             uuid.UUID    `json:"id"`
	Email          string       `json:"email"`
	Password       string       `json:"-"` // Plaintext password, used temporarily during registration/updates
	HashedPassword string       `json:"-"` // Never expose password hash in JSON
	Name           string       `json:"name"`
	BirthDate      time.Time    `json:"birth_date"`
	Tags           []string     `json:"tags"`
	Status         MemberStatus `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NewMember creates a new open Member with the given profile fields.
// It generates a new UUID for the member ID and sets the creation/update
// timestamps. Returns an error if validation fails.
//
// NOTE: This function only sets up the member structure with the plaintext
// password. The caller is responsible for hashing the password before
// storing the member.
func NewMember(email, password, name string, birthDate time.Time, tags []string) (*Member, error) {
	member := &Member{
		ID:        uuid.New(),
		Email:     email,
		Password:  password, // Plaintext password - must be hashed before storage
		Name:      name,
		BirthDate: birthDate,
		Tags:      tags,
		Status:    MemberStatusOpen,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := member.Validate(); err != nil {
		return nil, err
	}

	return member, nil
}

// Validate checks if the Member has valid data.
// Returns an error if any field fails validation.
func (m *Member) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyMemberID
	}

	if m.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(m.Email) {
		return ErrInvalidEmail
	}

	if m.Name == "" {
		return ErrEmptyName
	}

	if m.BirthDate.IsZero() {
		return ErrEmptyBirthDate
	}

	if m.BirthDate.After(time.Now().UTC()) {
		return ErrBirthDateInFuture
	}

	if !isValidMemberStatus(m.Status) {
		return ErrInvalidMemberStatus
	}

	// Password validation
	// During registration/update we validate the provided plaintext password
	if m.Password != "" {
		if !validatePasswordLength(m.Password) {
			if len(m.Password) < 8 {
				return ErrPasswordTooShort
			}
			return ErrPasswordTooLong
		}
	} else {
		// When no plaintext password is provided, the member must have a
		// hashed password (the case for existing members loaded from storage)
		if m.HashedPassword == "" {
			return ErrEmptyPassword
		}
	}

	return nil
}

// IsOpen reports whether the member account is open (not withdrawn).
// Every profile operation on a withdrawn account must fail.
func (m *Member) IsOpen() bool {
	return m.Status == MemberStatusOpen
}

// Withdraw closes the member account and updates the UpdatedAt timestamp.
// Returns an error if the account is already withdrawn.
func (m *Member) Withdraw() error {
	if m.Status == MemberStatusWithdrawn {
		return ErrInvalidMemberStatus
	}

	m.Status = MemberStatusWithdrawn
	m.UpdatedAt = time.Now().UTC()
	return nil
}

// AgeOn returns the member's age in whole years as of the given date.
func (m *Member) AgeOn(on time.Time) int {
	return Age(m.BirthDate, on)
}

// Age computes an age in whole years from a birth date, using a pure
// calendar month/day comparison: the year difference, decremented by one
// when the month/day of `on` precedes the birth month/day. The birthday
// itself counts as a completed year. No timezone conversion is applied;
// both dates are compared in their own calendar terms.
func Age(birthDate, on time.Time) int {
	age := on.Year() - birthDate.Year()

	if on.Month() > birthDate.Month() {
		return age
	}

	if on.Month() == birthDate.Month() && on.Day() >= birthDate.Day() {
		return age
	}

	return age - 1
}

// isValidMemberStatus checks if the given status is a valid MemberStatus.
func isValidMemberStatus(status MemberStatus) bool {
	switch status {
	case MemberStatusOpen, MemberStatusWithdrawn:
		return true
	default:
		return false
	}
}

// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format.
// Request-level validation uses a stricter validator; this guards
// entities constructed away from the HTTP boundary.
func validateEmailFormat(email string) bool {
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			atIndex = i
			break
		}
	}

	if atIndex == -1 || atIndex == 0 || atIndex == len(email)-1 {
		return false
	}

	// Check for domain part after @
	domainPart := email[atIndex+1:]
	if len(domainPart) < 3 { // minimum would be "a.b"
		return false
	}

	// Check for dot in domain, but not immediately after @ and not at the end
	dotIndex := -1
	for i, char := range domainPart {
		if char == '.' {
			dotIndex = i
			break
		}
	}

	if dotIndex == -1 || dotIndex == 0 || dotIndex == len(domainPart)-1 {
		return false
	}

	return true
}

// validatePasswordLength checks if a password meets length requirements:
// minimum 8 characters, maximum 72 characters (bcrypt's practical limit).
func validatePasswordLength(password string) bool {
	passLen := len(password)
	return passLen >= 8 && passLen <= 72
}
