package models

import (
	"time"

	"gorm.io/gorm"
)

type Payment struct {
	ID                     uint       `gorm:"primaryKey;autoIncrement"`
	ClientID               uint       `gorm:"index;not null"`
	Amount                 string     `gorm:"type:varchar(78);not null"`
	Currency               string     `gorm:"type:varchar(10);not null;default:'GHS'"`
	PaymentReference       *string    `gorm:"type:varchar(255)"`
	PaymentMethod          string     `gorm:"type:varchar(50);not null"`
	PaymentDate            *time.Time `gorm:"type:timestamp"`
	PaymentType            string     `gorm:"type:varchar(50);not null;default:'onboarding_fee'"`
	Description            *string    `gorm:"type:text"`
	ReceiptFilePath        *string    `gorm:"type:varchar(512)"`
	ReceiptFilename        *string    `gorm:"type:varchar(255)"`
	ReceiptFileSize        *int64
	ReceiptMimeType        *string    `gorm:"type:varchar(100)"`
	UploadedAt             time.Time  `gorm:"not null"`
	VerificationStatus     string     `gorm:"type:varchar(50);not null;index;default:'pending'"`
	VerifiedByID           *uint      `gorm:"index"`
	VerificationDate       *time.Time `gorm:"type:timestamp"`
	AdminNotes             *string    `gorm:"type:text"`
	RejectionReason        *string    `gorm:"type:text"`
	BankStatementMatched   bool       `gorm:"not null;default:false"`
	BankStatementReference *string    `gorm:"type:varchar(255)"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
	DeletedAt              gorm.DeletedAt `gorm:"index"`
}
