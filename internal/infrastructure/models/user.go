package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID                  uint       `gorm:"primaryKey;autoIncrement"`
	Email               string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName            string     `gorm:"type:varchar(255);not null"`
	PasswordHash        string     `gorm:"type:varchar(255);not null"`
	Role                string     `gorm:"type:varchar(50);not null;default:'client'"`
	IsActive            bool       `gorm:"not null;default:true"`
	IsVerified          bool       `gorm:"not null;default:false"`
	FailedLoginAttempts int        `gorm:"not null;default:0"`
	LastLogin           *time.Time `gorm:"type:timestamp"`
	PasswordChangedAt   *time.Time `gorm:"type:timestamp"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}
