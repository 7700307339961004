package models

import (
	"time"

	"gorm.io/gorm"
)

type Document struct {
	ID           uint       `gorm:"primaryKey;autoIncrement"`
	ClientID     uint       `gorm:"index;not null"`
	Category     string     `gorm:"type:varchar(50);not null;index"`
	Filename     string     `gorm:"type:varchar(255);not null"`
	FilePath     string     `gorm:"type:varchar(512);not null"`
	FileSize     int64      `gorm:"not null"`
	MimeType     string     `gorm:"type:varchar(100);not null"`
	Year         string     `gorm:"type:varchar(4);not null;index"`
	Quarter      string     `gorm:"type:varchar(20);not null"`
	DocumentDate *time.Time `gorm:"type:timestamp"`
	Description  *string    `gorm:"type:text"`
	UploadedByID *uint      `gorm:"index"`
	UploadedAt   time.Time  `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
