package entity

import "strings"

// UserFilter lists every recognized list filter. A nil field imposes no constraint;
// the non-nil ones are combined with logical AND.
type UserFilter struct {
	// Q is a case-insensitive literal substring matched against name or email.
	// Surrounding whitespace is trimmed; a blank Q imposes no constraint.
	Q *string

	// MinAge keeps users with age >= MinAge.
	MinAge *int

	// MaxAge keeps users with age <= MaxAge.
	MaxAge *int

	// IsActive keeps users whose flag equals IsActive.
	IsActive *bool
}

// SearchTerm returns Q with leading and trailing whitespace removed and whether
// anything is left to match. " silva" therefore searches for "silva".
func (f UserFilter) SearchTerm() (string, bool) {
	if f.Q == nil {
		return "", false
	}
	term := strings.TrimSpace(*f.Q)

	return term, term != ""
}

// Matches evaluates the filter against a single user in process.
func (f UserFilter) Matches(u *User) bool {
	if term, ok := f.SearchTerm(); ok {
		needle := strings.ToLower(term)
		if !strings.Contains(strings.ToLower(u.Name), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) {
			return false
		}
	}
	if f.MinAge != nil && u.Age < *f.MinAge {
		return false
	}
	if f.MaxAge != nil && u.Age > *f.MaxAge {
		return false
	}
	if f.IsActive != nil && u.IsActive != *f.IsActive {
		return false
	}

	return true
}
