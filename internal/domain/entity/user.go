package entity

import (
	"github.com/tulipbilling/invoicing-api/internal/domain/enum"
)

// User is an account in the credential store. Location is the billing
// location stamped onto every ledger row the user writes; it is resolved
// from the stored profile, never from client input.
type User struct {
	Username     string    `json:"username" yaml:"-"`
	Name         string    `json:"name" yaml:"name"`
	PasswordHash string    `json:"-" yaml:"password"`
	Role         enum.Role `json:"role" yaml:"role"`
	Location     string    `json:"location,omitempty" yaml:"location,omitempty"`
}

// Identity is the request-scoped view of the authenticated user carried
// through each operation instead of ambient session state.
type Identity struct {
	Username string    `json:"username"`
	Role     enum.Role `json:"role"`
	Location string    `json:"location"`
}

// Identity returns the request-scoped identity for the user.
func (u *User) Identity() Identity {
	return Identity{
		Username: u.Username,
		Role:     u.Role,
		Location: u.Location,
	}
}
