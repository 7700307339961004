package models

import (
	"time"

	"gorm.io/gorm"
)

type Client struct {
	ID                     uint       `gorm:"primaryKey;autoIncrement"`
	UserID                 uint       `gorm:"uniqueIndex;not null"`
	BusinessName           string     `gorm:"type:varchar(256);not null"`
	BusinessAddress        *string    `gorm:"type:text"`
	BusinessType           *string    `gorm:"type:varchar(100)"`
	RegistrationNumber     *string    `gorm:"type:varchar(100)"`
	Phone                  *string    `gorm:"type:varchar(50)"`
	AlternatePhone         *string    `gorm:"type:varchar(50)"`
	ServicesRequested      string     `gorm:"type:text;not null"`
	OnboardingStatus       string     `gorm:"type:varchar(50);not null;index;default:'pending_verification'"`
	AccountManagerID       *uint      `gorm:"index"`
	TermsAccepted          bool       `gorm:"not null;default:false"`
	PrivacyPolicyAccepted  bool       `gorm:"not null;default:false"`
	KYCUploaded            bool       `gorm:"not null;default:false"`
	PaymentVerified        bool       `gorm:"not null;default:false"`
	OnboardingCompleted    bool       `gorm:"not null;default:false"`
	EngagementLetterSigned bool       `gorm:"not null;default:false"`
	RegistrationDate       time.Time  `gorm:"not null"`
	VerificationDate       *time.Time `gorm:"type:timestamp"`
	ActivationDate         *time.Time `gorm:"type:timestamp"`
	AdminNotes             *string    `gorm:"type:text"`
	RejectionReason        *string    `gorm:"type:text"`
	TempPasswordSent       bool       `gorm:"not null;default:false"`
	TempPasswordSentAt     *time.Time `gorm:"type:timestamp"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
	DeletedAt              gorm.DeletedAt `gorm:"index"`
}
