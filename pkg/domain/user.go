// Package domain holds the typed records the admin BFF exchanges with this
// client. Field names follow the BFF's JSON contract, not the upstream
// services behind it.
package domain

// Role is a role granted to a user account.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// IsValid returns true if the role is a known valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin:
		return true
	}
	return false
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// UserStatus describes the lifecycle state of a user account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// IsValid returns true if the status is a known valid value.
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended:
		return true
	}
	return false
}

// User is a user record as the BFF presents it to the console.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         Role       `json:"role"`
	Roles        []Role     `json:"roles,omitempty"`
	Status       UserStatus `json:"status"`
	CreatedAt    string     `json:"createdAt"`
	LastLogin    string     `json:"lastLogin,omitempty"`
	ProfileImage string     `json:"profileImage,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Address      string     `json:"address,omitempty"`
}

// PrimaryRole reduces a role set to the single role the console keys off.
// A user holding admin is admin; everyone else is customer, including the
// degenerate case of an empty set.
func PrimaryRole(roles []Role) Role {
	for _, r := range roles {
		if r == RoleAdmin {
			return RoleAdmin
		}
	}
	return RoleCustomer
}
