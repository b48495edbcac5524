package models

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Username     string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Email        string   `gorm:"size:100"`
	Role         UserRole `gorm:"size:20;not null"`
	Verified     bool     `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
