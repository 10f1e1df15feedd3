package entity

import (
	"time"
)

type Role string

const (
	RoleUser     Role = "user"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a raw string onto the closed role set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleProvider, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

// CanManage reports whether the user may mutate a resource owned by ownerID.
// Admins may manage anything; everyone else only their own resources.
func (u *User) CanManage(ownerID string) bool {
	return u.Role == RoleAdmin || u.ID == ownerID
}

func (u *User) IsProvider() bool {
	return u.Role == RoleProvider || u.Role == RoleAdmin
}
