package model

import "time"

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleModerator UserRole = "moderator"
	RoleViewer    UserRole = "viewer"
)

func ValidRole(raw string) bool {
	switch UserRole(raw) {
	case RoleAdmin, RoleModerator, RoleViewer:
		return true
	}
	return false
}

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserDisabled UserStatus = "disabled"
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FullName     *string
	Email        *string
	Role         UserRole
	Status       UserStatus
	CreatedAt    time.Time
	LastLogin    *time.Time
}
