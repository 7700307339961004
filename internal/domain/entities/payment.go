package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// Payment method values accepted on upload
const (
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodMobileMoney  = "mobile_money"
	PaymentMethodCash         = "cash"
)

// Payment is one client payment record with its uploaded receipt
type Payment struct {
	ID                     uint               `json:"id"`
	ClientID               uint               `json:"clientId"`
	Amount                 decimal.Decimal    `json:"amount"`
	Currency               string             `json:"currency"`
	PaymentReference       null.String        `json:"paymentReference,omitempty"`
	PaymentMethod          string             `json:"paymentMethod"`
	PaymentDate            null.Time          `json:"paymentDate,omitempty"`
	PaymentType            string             `json:"paymentType"`
	Description            null.String        `json:"description,omitempty"`
	ReceiptFilePath        null.String        `json:"receiptFilePath,omitempty"`
	ReceiptFilename        null.String        `json:"receiptFilename,omitempty"`
	ReceiptFileSize        null.Int64         `json:"receiptFileSize,omitempty"`
	ReceiptMimeType        null.String        `json:"receiptMimeType,omitempty"`
	UploadedAt             time.Time          `json:"uploadedAt"`
	VerificationStatus     VerificationStatus `json:"verificationStatus"`
	VerifiedByID           null.Uint          `json:"verifiedById,omitempty"`
	VerificationDate       null.Time          `json:"verificationDate,omitempty"`
	AdminNotes             null.String        `json:"adminNotes,omitempty"`
	RejectionReason        null.String        `json:"rejectionReason,omitempty"`
	BankStatementMatched   bool               `json:"bankStatementMatched"`
	BankStatementReference null.String        `json:"bankStatementReference,omitempty"`
	CreatedAt              time.Time          `json:"createdAt"`
	UpdatedAt              time.Time          `json:"updatedAt"`
}

// UploadPaymentInput carries the multipart form fields of a receipt upload
type UploadPaymentInput struct {
	Amount           decimal.Decimal `form:"amount" binding:"required"`
	PaymentReference string          `form:"paymentReference"`
	PaymentMethod    string          `form:"paymentMethod"`
	PaymentDate      *time.Time      `form:"paymentDate" time_format:"2006-01-02"`
	Description      string          `form:"description"`
}

// VerifyPaymentInput is the admin verdict on one payment
type VerifyPaymentInput struct {
	Approved               bool   `json:"approved"`
	AdminNotes             string `json:"adminNotes"`
	RejectionReason        string `json:"rejectionReason"`
	BankStatementReference string `json:"bankStatementReference"`
}
