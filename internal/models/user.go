package models

import "time"

// User is a marketplace account. PasswordHash never leaves the server.
type User struct {
	ID           int64     `json:"id_user" db:"id_user"`
	Name         string    `json:"name" db:"name"`
	Surname      string    `json:"surname" db:"surname"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"`
	Description  string    `json:"description" db:"description"`
	Seller       bool      `json:"seller" db:"seller"`
	Admin        bool      `json:"admin" db:"admin"`
	Picture      *string   `json:"picture,omitempty" db:"picture"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Caller returns the identity used for access decisions.
func (u *User) Caller() *Caller {
	return &Caller{UserID: u.ID, Seller: u.Seller, Admin: u.Admin}
}

// UserPatch is a sparse profile update. Nil and empty values are left untouched.
type UserPatch struct {
	Name        *string
	Surname     *string
	Email       *string
	Password    *string
	Description *string
}

// Role identifies one of the two escalation paths.
type Role string

const (
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Column returns the users column backing the role flag.
func (r Role) Column() string {
	switch r {
	case RoleSeller:
		return "seller"
	case RoleAdmin:
		return "admin"
	}
	return ""
}
