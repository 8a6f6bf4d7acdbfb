// Package store holds the simulated pizza backend state: users, franchises,
// the session slot, and the seed personas the test suite builds on.
package store

// Role is a user role in the pizza service.
type Role string

const (
	RoleDiner      Role = "diner"
	RoleFranchisee Role = "franchisee"
	RoleAdmin      Role = "admin"
)

// RoleRef wraps a role the way the API nests it: {"role": "diner"}.
type RoleRef struct {
	Role Role `json:"role" yaml:"role"`
}

// User is a pizza service account. Email is the authentication lookup key.
type User struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Email    string    `json:"email" yaml:"email"`
	Password string    `json:"password,omitempty" yaml:"password"`
	Roles    []RoleRef `json:"roles" yaml:"roles"`
}

// HasRole reports whether the user holds the given role.
func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// Sanitized returns a copy of the user with the password removed, for
// responses that list accounts rather than authenticate them.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// AdminRef identifies a franchise admin as embedded in franchise records.
type AdminRef struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
}

// Franchise owns a set of stores. Every store belongs to exactly one
// franchise at all times.
type Franchise struct {
	ID     int64      `json:"id" yaml:"id"`
	Name   string     `json:"name" yaml:"name"`
	Admins []AdminRef `json:"admins,omitempty" yaml:"admins"`
	Stores []Store    `json:"stores" yaml:"stores"`
}

// HasAdmin reports whether the user with the given id is in the franchise's
// admin list.
func (f Franchise) HasAdmin(userID string) bool {
	for _, a := range f.Admins {
		if a.ID == userID {
			return true
		}
	}
	return false
}

// Store is a single franchise location.
type Store struct {
	ID           int64   `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	TotalRevenue float64 `json:"totalRevenue" yaml:"total_revenue"`
}

// MenuItem is an entry in the static, read-only menu catalog.
type MenuItem struct {
	ID          int64   `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Image       string  `json:"image" yaml:"image"`
	Price       float64 `json:"price" yaml:"price"`
	Description string  `json:"description" yaml:"description"`
}
