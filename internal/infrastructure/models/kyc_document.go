package models

import (
	"time"

	"gorm.io/gorm"
)

type KYCDocument struct {
	ID                 uint       `gorm:"primaryKey;autoIncrement"`
	ClientID           uint       `gorm:"index;not null"`
	DocumentType       string     `gorm:"type:varchar(50);not null"`
	DocumentName       string     `gorm:"type:varchar(255);not null"`
	FilePath           string     `gorm:"type:varchar(512);not null"`
	FileSize           int64      `gorm:"not null"`
	MimeType           string     `gorm:"type:varchar(100);not null"`
	UploadedAt         time.Time  `gorm:"not null"`
	VerificationStatus string     `gorm:"type:varchar(50);not null;index;default:'pending'"`
	VerifiedByID       *uint      `gorm:"index"`
	VerificationDate   *time.Time `gorm:"type:timestamp"`
	AdminComments      *string    `gorm:"type:text"`
	RejectionReason    *string    `gorm:"type:text"`
	IsResubmission     bool       `gorm:"not null;default:false"`
	ResubmissionCount  int        `gorm:"not null;default:0"`
	PreviousDocumentID *uint      `gorm:"index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}
