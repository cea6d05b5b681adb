// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Defaults applied to optional fields on creation.
const (
	DefaultAge      = 0
	DefaultIsActive = true
)

// User is the only entity managed by the service.
type User struct {
	ID        string    `json:"id"`        // Store-generated identifier, hex encoded. Immutable once assigned.
	Name      string    `json:"name"`      // Display name.
	Email     string    `json:"email"`     // Unique across all users, kept exactly as provided.
	Age       int       `json:"age"`       // Non-negative age in years.
	IsActive  bool      `json:"is_active"` // Whether the account is active.
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Clone returns a copy that shares no memory with u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cloned := *u

	return &cloned
}

// UserCreate is the input shape for creating a user.
// Name and Email are required; Age and IsActive fall back to defaults when omitted.
type UserCreate struct {
	Name     string `json:"name" validate:"required,notblank,min=2,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Age      *int   `json:"age,omitempty" validate:"omitempty,gte=0"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// ResolvedAge returns the age to persist.
func (in *UserCreate) ResolvedAge() int {
	if in.Age == nil {
		return DefaultAge
	}

	return *in.Age
}

// ResolvedIsActive returns the active flag to persist.
func (in *UserCreate) ResolvedIsActive() bool {
	if in.IsActive == nil {
		return DefaultIsActive
	}

	return *in.IsActive
}

// UserUpdate is the input shape for a partial update. Every field tracks its
// own presence so an absent field is distinguishable from an explicit null.
type UserUpdate struct {
	Name     Field[string] `json:"name"`
	Email    Field[string] `json:"email"`
	Age      Field[int]    `json:"age"`
	IsActive Field[bool]   `json:"is_active"`
}

// IsEmpty reports whether no field was supplied at all.
func (in *UserUpdate) IsEmpty() bool {
	return !in.Name.Set && !in.Email.Set && !in.Age.Set && !in.IsActive.Set
}

// ApplyTo merges the supplied fields into u. Absent fields are left untouched.
// Callers validate first; explicit nulls are never applied.
func (in *UserUpdate) ApplyTo(u *User) {
	if v, ok := in.Name.Get(); ok {
		u.Name = v
	}
	if v, ok := in.Email.Get(); ok {
		u.Email = v
	}
	if v, ok := in.Age.Get(); ok {
		u.Age = v
	}
	if v, ok := in.IsActive.Get(); ok {
		u.IsActive = v
	}
}
