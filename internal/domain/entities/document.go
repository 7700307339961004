package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// FileCategory buckets general documents inside a client's vault
type FileCategory string

const (
	CategoryBankStatements      FileCategory = "bank_statements"
	CategoryTaxFilings          FileCategory = "tax_filings"
	CategoryPayroll             FileCategory = "payroll"
	CategoryInvoices            FileCategory = "invoices"
	CategoryReceipts            FileCategory = "receipts"
	CategoryContracts           FileCategory = "contracts"
	CategoryAuditReports        FileCategory = "audit_reports"
	CategoryFinancialStatements FileCategory = "financial_statements"
	CategoryCorrespondence      FileCategory = "correspondence"
	CategoryOther               FileCategory = "other"
)

// AllFileCategories lists the accepted categories for validation and listing.
var AllFileCategories = []FileCategory{
	CategoryBankStatements,
	CategoryTaxFilings,
	CategoryPayroll,
	CategoryInvoices,
	CategoryReceipts,
	CategoryContracts,
	CategoryAuditReports,
	CategoryFinancialStatements,
	CategoryCorrespondence,
	CategoryOther,
}

// Valid reports whether the category is one of the accepted values.
func (c FileCategory) Valid() bool {
	for _, v := range AllFileCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Document is a general vault document, bucketed by year/quarter/category
type Document struct {
	ID           uint         `json:"id"`
	ClientID     uint         `json:"clientId"`
	Category     FileCategory `json:"category"`
	Filename     string       `json:"filename"`
	FilePath     string       `json:"filePath"`
	FileSize     int64        `json:"fileSize"`
	MimeType     string       `json:"mimeType"`
	Year         string       `json:"year"`
	Quarter      string       `json:"quarter"`
	DocumentDate null.Time    `json:"documentDate,omitempty"`
	Description  null.String  `json:"description,omitempty"`
	UploadedByID null.Uint    `json:"uploadedById,omitempty"`
	UploadedAt   time.Time    `json:"uploadedAt"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// DocumentFilter narrows vault listings
type DocumentFilter struct {
	Category FileCategory `form:"category"`
	Year     string       `form:"year"`
	Quarter  string       `form:"quarter"`
}
