package user

import (
	"time"
)

// Roles a user account can hold.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents a user account in the system.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	Name         string `gorm:"type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	Role         string `gorm:"not null;default:USER;type:text"`

	// ResetToken and ResetTokenExpiry are set together by forgot-password
	// and cleared together by a successful reset.
	ResetToken       *string `gorm:"index;type:text"`
	ResetTokenExpiry *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Public returns the fields of the user that are safe to expose to clients.
func (u *User) Public() Public {
	return Public{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}

// Public is the client-visible projection of a user.
type Public struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Claims represents the identity carried by a session token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the claims carry the admin role.
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
