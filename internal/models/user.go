package models

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a raw string onto the role enum.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID          int64   `db:"id" json:"id"`
	Username    string  `db:"username" json:"username"`
	Email       string  `db:"email" json:"email"`
	FirstName   string  `db:"first_name" json:"first_name"`
	LastName    string  `db:"last_name" json:"last_name"`
	Password    string  `db:"hashed_password" json:"-"`
	Role        Role    `db:"role" json:"role"`
	IsActive    bool    `db:"is_active" json:"is_active"`
	PhoneNumber *string `db:"phone_number" json:"phone_number"`
}
