package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/infrastructure/models"
)

// PaymentRepository implements payment data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create persists a new payment row
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	m := &models.Payment{
		ClientID:               payment.ClientID,
		Amount:                 payment.Amount.String(),
		Currency:               payment.Currency,
		PaymentReference:       payment.PaymentReference.Ptr(),
		PaymentMethod:          payment.PaymentMethod,
		PaymentDate:            payment.PaymentDate.Ptr(),
		PaymentType:            payment.PaymentType,
		Description:            payment.Description.Ptr(),
		ReceiptFilePath:        payment.ReceiptFilePath.Ptr(),
		ReceiptFilename:        payment.ReceiptFilename.Ptr(),
		ReceiptFileSize:        payment.ReceiptFileSize.Ptr(),
		ReceiptMimeType:        payment.ReceiptMimeType.Ptr(),
		UploadedAt:             payment.UploadedAt,
		VerificationStatus:     string(payment.VerificationStatus),
		BankStatementMatched:   payment.BankStatementMatched,
		BankStatementReference: payment.BankStatementReference.Ptr(),
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	payment.ID = m.ID
	payment.CreatedAt = m.CreatedAt
	payment.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a payment by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id uint) (*entities.Payment, error) {
	var m models.Payment
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return paymentToEntity(&m), nil
}

// ListByClient lists a client's payments, newest first
func (r *PaymentRepository) ListByClient(ctx context.Context, clientID uint) ([]*entities.Payment, error) {
	var paymentModels []models.Payment
	err := GetDB(ctx, r.db).
		Where("client_id = ?", clientID).
		Order("uploaded_at DESC").
		Find(&paymentModels).Error
	if err != nil {
		return nil, err
	}
	return paymentsToEntities(paymentModels), nil
}

// ListPending lists all payments awaiting an admin verdict
func (r *PaymentRepository) ListPending(ctx context.Context) ([]*entities.Payment, error) {
	var paymentModels []models.Payment
	err := GetDB(ctx, r.db).
		Where("verification_status = ?", string(entities.VerificationPending)).
		Order("uploaded_at ASC").
		Find(&paymentModels).Error
	if err != nil {
		return nil, err
	}
	return paymentsToEntities(paymentModels), nil
}

// Update saves the payment's verification fields
func (r *PaymentRepository) Update(ctx context.Context, payment *entities.Payment) error {
	result := GetDB(ctx, r.db).Model(&models.Payment{}).Where("id = ?", payment.ID).Updates(map[string]interface{}{
		"verification_status":      string(payment.VerificationStatus),
		"verified_by_id":           payment.VerifiedByID.Ptr(),
		"verification_date":        payment.VerificationDate.Ptr(),
		"admin_notes":              payment.AdminNotes.Ptr(),
		"rejection_reason":         payment.RejectionReason.Ptr(),
		"bank_statement_matched":   payment.BankStatementMatched,
		"bank_statement_reference": payment.BankStatementReference.Ptr(),
		"updated_at":               time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// HasApproved reports whether the client has at least one approved payment
func (r *PaymentRepository) HasApproved(ctx context.Context, clientID uint) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.Payment{}).
		Where("client_id = ? AND verification_status = ?", clientID, string(entities.VerificationApproved)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func paymentToEntity(m *models.Payment) *entities.Payment {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		amount = decimal.Zero
	}
	return &entities.Payment{
		ID:                     m.ID,
		ClientID:               m.ClientID,
		Amount:                 amount,
		Currency:               m.Currency,
		PaymentReference:       null.StringFromPtr(m.PaymentReference),
		PaymentMethod:          m.PaymentMethod,
		PaymentDate:            null.TimeFromPtr(m.PaymentDate),
		PaymentType:            m.PaymentType,
		Description:            null.StringFromPtr(m.Description),
		ReceiptFilePath:        null.StringFromPtr(m.ReceiptFilePath),
		ReceiptFilename:        null.StringFromPtr(m.ReceiptFilename),
		ReceiptFileSize:        null.Int64FromPtr(m.ReceiptFileSize),
		ReceiptMimeType:        null.StringFromPtr(m.ReceiptMimeType),
		UploadedAt:             m.UploadedAt,
		VerificationStatus:     entities.VerificationStatus(m.VerificationStatus),
		VerifiedByID:           null.UintFromPtr(m.VerifiedByID),
		VerificationDate:       null.TimeFromPtr(m.VerificationDate),
		AdminNotes:             null.StringFromPtr(m.AdminNotes),
		RejectionReason:        null.StringFromPtr(m.RejectionReason),
		BankStatementMatched:   m.BankStatementMatched,
		BankStatementReference: null.StringFromPtr(m.BankStatementReference),
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

func paymentsToEntities(paymentModels []models.Payment) []*entities.Payment {
	payments := make([]*entities.Payment, 0, len(paymentModels))
	for i := range paymentModels {
		payments = append(payments, paymentToEntity(&paymentModels[i]))
	}
	return payments
}
