package models

import (
	"net/url"
	"time"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

type UserStatus string

const (
	UserActive  UserStatus = "active"
	UserBanned  UserStatus = "banned"
	UserPending UserStatus = "pending"
)

// Valid reports whether s is one of the known statuses.
func (s UserStatus) Valid() bool {
	return s == UserActive || s == UserBanned || s == UserPending
}

type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        UserRole   `json:"role"`
	Status      UserStatus `json:"status"`
	Provider    string     `json:"provider"`
	AvatarURL   string     `json:"avatarUrl,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// CurrentUser is the authenticated principal returned by login and auth-check.
type CurrentUser struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Role  UserRole `json:"role"`
}

type UserFilter struct {
	Search string
	Role   UserRole
	Status UserStatus
}

func (f UserFilter) Apply(v url.Values) url.Values {
	setIf(v, "search", f.Search)
	setIf(v, "role", string(f.Role))
	setIf(v, "status", string(f.Status))
	return v
}

func ParseUserFilter(v url.Values) UserFilter {
	return UserFilter{
		Search: v.Get("search"),
		Role:   UserRole(v.Get("role")),
		Status: UserStatus(v.Get("status")),
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type StatusChange struct {
	Status string `json:"status"`
}
