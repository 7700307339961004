package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// OnboardingStatus is the enumerated stage of a client's progression from
// registration to active service.
type OnboardingStatus string

const (
	OnboardingPendingVerification OnboardingStatus = "pending_verification"
	OnboardingPreActive           OnboardingStatus = "pre_active"
	OnboardingKYCSubmission       OnboardingStatus = "kyc_submission"
	OnboardingKYCReview           OnboardingStatus = "kyc_review"
	OnboardingPaymentReview       OnboardingStatus = "payment_review"
	OnboardingAwaitingSignature   OnboardingStatus = "awaiting_signature"
	OnboardingActive              OnboardingStatus = "active"
	OnboardingRejected            OnboardingStatus = "rejected"
	OnboardingSuspended           OnboardingStatus = "suspended"
)

// statusRank orders the forward path. The side states rejected/suspended carry
// no rank; they are reachable from anywhere and absorbing.
var statusRank = map[OnboardingStatus]int{
	OnboardingPendingVerification: 0,
	OnboardingPreActive:           1,
	OnboardingKYCSubmission:       2,
	OnboardingKYCReview:           3,
	OnboardingPaymentReview:       4,
	OnboardingAwaitingSignature:   5,
	OnboardingActive:              6,
}

// IsTerminal reports whether no further workflow transition applies.
func (s OnboardingStatus) IsTerminal() bool {
	return s == OnboardingActive || s == OnboardingRejected || s == OnboardingSuspended
}

// IsSideState reports whether the status is one of the absorbing side states.
func (s OnboardingStatus) IsSideState() bool {
	return s == OnboardingRejected || s == OnboardingSuspended
}

// CanAdvanceTo reports whether a client may move from s to next. Forward moves
// and entry into a side state are allowed; a client never regresses.
func (s OnboardingStatus) CanAdvanceTo(next OnboardingStatus) bool {
	if next.IsSideState() {
		return !s.IsSideState()
	}
	cur, ok := statusRank[s]
	if !ok {
		return false
	}
	nxt, ok := statusRank[next]
	if !ok {
		return false
	}
	return nxt > cur
}

// ServiceType enumerates the services a client can request
type ServiceType string

const (
	ServiceTaxCompliance         ServiceType = "tax_compliance"
	ServiceAuditAssurance        ServiceType = "audit_assurance"
	ServiceBusinessAdvisory      ServiceType = "business_advisory"
	ServiceAccountingBookkeeping ServiceType = "accounting_bookkeeping"
	ServicePayrollManagement     ServiceType = "payroll_management"
	ServiceCompanyRegistration   ServiceType = "company_registration"
	ServiceFinancialConsulting   ServiceType = "financial_consulting"
)

// Client represents a business client profile, owned 1:1 by a User
type Client struct {
	ID                      uint             `json:"id"`
	UserID                  uint             `json:"userId"`
	BusinessName            string           `json:"businessName"`
	BusinessAddress         null.String      `json:"businessAddress,omitempty"`
	BusinessType            null.String      `json:"businessType,omitempty"`
	RegistrationNumber      null.String      `json:"registrationNumber,omitempty"`
	Phone                   null.String      `json:"phone,omitempty"`
	AlternatePhone          null.String      `json:"alternatePhone,omitempty"`
	ServicesRequested       []ServiceType    `json:"servicesRequested"`
	OnboardingStatus        OnboardingStatus `json:"onboardingStatus"`
	AccountManagerID        null.Uint        `json:"accountManagerId,omitempty"`
	TermsAccepted           bool             `json:"termsAccepted"`
	PrivacyPolicyAccepted   bool             `json:"privacyPolicyAccepted"`
	KYCUploaded             bool             `json:"kycUploaded"`
	PaymentVerified         bool             `json:"paymentVerified"`
	OnboardingCompleted     bool             `json:"onboardingCompleted"`
	EngagementLetterSigned  bool             `json:"engagementLetterSigned"`
	RegistrationDate        time.Time        `json:"registrationDate"`
	VerificationDate        null.Time        `json:"verificationDate,omitempty"`
	ActivationDate          null.Time        `json:"activationDate,omitempty"`
	AdminNotes              null.String      `json:"adminNotes,omitempty"`
	RejectionReason         null.String      `json:"rejectionReason,omitempty"`
	TempPasswordSent        bool             `json:"-"`
	TempPasswordSentAt      null.Time        `json:"-"`
	CreatedAt               time.Time        `json:"createdAt"`
	UpdatedAt               time.Time        `json:"updatedAt"`
}

// RegisterClientInput is the public registration payload (workflow step 1)
type RegisterClientInput struct {
	Email                 string        `json:"email" binding:"required,email"`
	Password              string        `json:"password" binding:"required,min=8"`
	FullName              string        `json:"fullName" binding:"required,min=2,max=255"`
	BusinessName          string        `json:"businessName" binding:"required,min=2,max=256"`
	BusinessAddress       string        `json:"businessAddress"`
	BusinessType          string        `json:"businessType"`
	RegistrationNumber    string        `json:"registrationNumber"`
	Phone                 string        `json:"phone" binding:"required"`
	AlternatePhone        string        `json:"alternatePhone"`
	ServicesRequested     []ServiceType `json:"servicesRequested" binding:"required,min=1"`
	TermsAccepted         bool          `json:"termsAccepted" binding:"required"`
	PrivacyPolicyAccepted bool          `json:"privacyPolicyAccepted" binding:"required"`
}

// VerifyRegistrationInput is the admin verdict on a pending registration
type VerifyRegistrationInput struct {
	Approved        bool   `json:"approved"`
	AdminNotes      string `json:"adminNotes"`
	RejectionReason string `json:"rejectionReason"`
}

// ActivateClientInput assigns an account manager and activates the client
type ActivateClientInput struct {
	AccountManagerID uint   `json:"accountManagerId" binding:"required"`
	AdminNotes       string `json:"adminNotes"`
}
