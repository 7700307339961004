package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// DocumentType enumerates accepted KYC document kinds
type DocumentType string

const (
	DocTypeRGDCertificate DocumentType = "rgd_certificate"
	DocTypeTINCertificate DocumentType = "tin_certificate"
	DocTypeVATCertificate DocumentType = "vat_certificate"
	DocTypeSSNITProof     DocumentType = "ssnit_proof"
	DocTypeGhanaCard      DocumentType = "ghana_card"
	DocTypePassport       DocumentType = "passport"
	DocTypeProofOfAddress DocumentType = "proof_of_address"
	DocTypeOther          DocumentType = "other"
)

// AllDocumentTypes lists the accepted document types for validation.
var AllDocumentTypes = []DocumentType{
	DocTypeRGDCertificate,
	DocTypeTINCertificate,
	DocTypeVATCertificate,
	DocTypeSSNITProof,
	DocTypeGhanaCard,
	DocTypePassport,
	DocTypeProofOfAddress,
	DocTypeOther,
}

// Valid reports whether the document type is one of the accepted kinds
func (t DocumentType) Valid() bool {
	for _, v := range AllDocumentTypes {
		if t == v {
			return true
		}
	}
	return false
}

// VerificationStatus is shared by KYC documents and payments
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
	// VerificationSuperseded marks a rejected row replaced by a re-submission.
	// Superseded rows do not block the kyc_review advancement guard.
	VerificationSuperseded VerificationStatus = "superseded"
)

// BlocksApproval reports whether a document in this status keeps the client
// from advancing to kyc_review.
func (s VerificationStatus) BlocksApproval() bool {
	return s != VerificationApproved && s != VerificationSuperseded
}

// KYCDocument is one uploaded verification document
type KYCDocument struct {
	ID                 uint               `json:"id"`
	ClientID           uint               `json:"clientId"`
	DocumentType       DocumentType       `json:"documentType"`
	DocumentName       string             `json:"documentName"`
	FilePath           string             `json:"filePath"`
	FileSize           int64              `json:"fileSize"`
	MimeType           string             `json:"mimeType"`
	UploadedAt         time.Time          `json:"uploadedAt"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	VerifiedByID       null.Uint          `json:"verifiedById,omitempty"`
	VerificationDate   null.Time          `json:"verificationDate,omitempty"`
	AdminComments      null.String        `json:"adminComments,omitempty"`
	RejectionReason    null.String        `json:"rejectionReason,omitempty"`
	IsResubmission     bool               `json:"isResubmission"`
	ResubmissionCount  int                `json:"resubmissionCount"`
	PreviousDocumentID null.Uint          `json:"previousDocumentId,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// VerifyKYCInput is the admin verdict on one document
type VerifyKYCInput struct {
	Approved        bool   `json:"approved"`
	AdminComments   string `json:"adminComments"`
	RejectionReason string `json:"rejectionReason"`
}
