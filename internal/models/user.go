package models

import "time"

const (
	RoleBasic = "basic"
	RoleAdmin = "admin"
)

type User struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Username          string     `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email             string     `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Role              string     `gorm:"size:20;not null;default:'basic'" json:"role"`
	LoginTokenHash    string     `gorm:"size:128" json:"-"`
	LoginTokenExpires *time.Time `json:"-"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}
