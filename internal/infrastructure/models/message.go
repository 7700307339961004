package models

import (
	"time"

	"gorm.io/gorm"
)

type Message struct {
	ID         uint       `gorm:"primaryKey;autoIncrement"`
	SenderID   uint       `gorm:"index;not null"`
	ReceiverID uint       `gorm:"index;not null"`
	Content    string     `gorm:"type:text;not null"`
	Timestamp  time.Time  `gorm:"not null;index"`
	IsRead     bool       `gorm:"not null;default:false"`
	ReadAt     *time.Time `gorm:"type:timestamp"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}
