package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile status values. The app is women-only; status drives which health
// card and which AI persona details a user sees.
const (
	StatusSingle   = "single"
	StatusMarried  = "married"
	StatusPregnant = "pregnant"
	StatusMother   = "mother"
)

// ValidStatus reports whether s is one of the known profile statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusSingle, StatusMarried, StatusPregnant, StatusMother:
		return true
	}
	return false
}

// Profile represents a user record. The phone number is the record's
// identity: globally unique, never changed, used as the primary key.
// Optional fields are pointers so that absence stays meaningful (no
// pregnancy date recorded is different from a zero date).
type Profile struct {
	Phone          string     `json:"phone"`
	Name           string     `json:"name"`
	PasswordHash   string     `json:"-"` // never exposed in responses
	DOB            *time.Time `json:"dob,omitempty"`
	HeightCM       *float64   `json:"height,omitempty"`
	WeightKG       *float64   `json:"weight,omitempty"`
	Status         string     `json:"status"`
	MaternalStatus *string    `json:"maternal_status,omitempty"`

	// Cycle fields, set only for users tracking their period.
	PeriodStartDate *time.Time `json:"period_start_date,omitempty"`
	CycleLength     *int       `json:"cycle_length,omitempty"`
	IsCycleRegular  *bool      `json:"is_cycle_regular,omitempty"`

	// Pregnancy field, set only while status is pregnant.
	PregnancyStartDate *time.Time `json:"pregnancy_start_date,omitempty"`

	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Role returns the role string used in JWT claims and middleware checks.
func (p *Profile) Role() string {
	if p.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// SignupRequest carries the multi-step signup wizard's final payload.
type SignupRequest struct {
	Phone          string     `json:"phone" binding:"required"`
	Name           string     `json:"name" binding:"required"`
	Password       string     `json:"password" binding:"required,min=6"`
	DOB            *time.Time `json:"dob"`
	HeightCM       *float64   `json:"height"`
	WeightKG       *float64   `json:"weight"`
	Status         string     `json:"status" binding:"required,oneof=single married pregnant mother"`
	MaternalStatus *string    `json:"maternal_status"`

	PeriodStartDate    *time.Time `json:"period_start_date"`
	CycleLength        *int       `json:"cycle_length"`
	IsCycleRegular     *bool      `json:"is_cycle_regular"`
	PregnancyStartDate *time.Time `json:"pregnancy_start_date"`
}

// UpdateProfileRequest supports partial updates of the owner-mutable fields.
// Admins may additionally change status.
type UpdateProfileRequest struct {
	Name               *string    `json:"name,omitempty"`
	DOB                *time.Time `json:"dob,omitempty"`
	HeightCM           *float64   `json:"height,omitempty"`
	WeightKG           *float64   `json:"weight,omitempty"`
	Status             *string    `json:"status,omitempty" binding:"omitempty,oneof=single married pregnant mother"`
	MaternalStatus     *string    `json:"maternal_status,omitempty"`
	PeriodStartDate    *time.Time `json:"period_start_date,omitempty"`
	CycleLength        *int       `json:"cycle_length,omitempty"`
	IsCycleRegular     *bool      `json:"is_cycle_regular,omitempty"`
	PregnancyStartDate *time.Time `json:"pregnancy_start_date,omitempty"`
}
