package models

import (
	"time"

	"github.com/khaynem/WasteWise-Backend/pkg/utils"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type UserStatus string

const (
	StatusActive    UserStatus = "active"
	StatusSuspended UserStatus = "suspended"
	StatusBanned    UserStatus = "banned"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Username string `gorm:"uniqueIndex" json:"username"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Password string `json:"-"`

	Role   Role       `gorm:"type:text;default:'user'" json:"role"`
	Status UserStatus `gorm:"type:text;default:'active'" json:"status"`

	Verified   bool   `gorm:"default:false" json:"verified"`
	EmailToken string `gorm:"index" json:"-"`

	JoinDate  time.Time  `json:"joinDate"`
	LastLogin *time.Time `json:"lastLogin"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = utils.GenerateID()
	}
	if u.JoinDate.IsZero() {
		u.JoinDate = time.Now()
	}
	return nil
}
