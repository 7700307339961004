package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/infrastructure/models"
)

// KYCDocumentRepository implements KYC document data operations
type KYCDocumentRepository struct {
	db *gorm.DB
}

// NewKYCDocumentRepository creates a new KYC document repository
func NewKYCDocumentRepository(db *gorm.DB) *KYCDocumentRepository {
	return &KYCDocumentRepository{db: db}
}

// Create persists a new KYC document row
func (r *KYCDocumentRepository) Create(ctx context.Context, doc *entities.KYCDocument) error {
	m := &models.KYCDocument{
		ClientID:           doc.ClientID,
		DocumentType:       string(doc.DocumentType),
		DocumentName:       doc.DocumentName,
		FilePath:           doc.FilePath,
		FileSize:           doc.FileSize,
		MimeType:           doc.MimeType,
		UploadedAt:         doc.UploadedAt,
		VerificationStatus: string(doc.VerificationStatus),
		VerifiedByID:       doc.VerifiedByID.Ptr(),
		VerificationDate:   doc.VerificationDate.Ptr(),
		AdminComments:      doc.AdminComments.Ptr(),
		RejectionReason:    doc.RejectionReason.Ptr(),
		IsResubmission:     doc.IsResubmission,
		ResubmissionCount:  doc.ResubmissionCount,
		PreviousDocumentID: doc.PreviousDocumentID.Ptr(),
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	doc.ID = m.ID
	doc.CreatedAt = m.CreatedAt
	doc.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a KYC document by ID
func (r *KYCDocumentRepository) GetByID(ctx context.Context, id uint) (*entities.KYCDocument, error) {
	var m models.KYCDocument
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return kycToEntity(&m), nil
}

// ListByClient lists a client's documents, newest first
func (r *KYCDocumentRepository) ListByClient(ctx context.Context, clientID uint) ([]*entities.KYCDocument, error) {
	var docModels []models.KYCDocument
	err := GetDB(ctx, r.db).
		Where("client_id = ?", clientID).
		Order("uploaded_at DESC").
		Find(&docModels).Error
	if err != nil {
		return nil, err
	}
	return kycToEntities(docModels), nil
}

// ListPending lists all documents awaiting an admin verdict
func (r *KYCDocumentRepository) ListPending(ctx context.Context) ([]*entities.KYCDocument, error) {
	var docModels []models.KYCDocument
	err := GetDB(ctx, r.db).
		Where("verification_status = ?", string(entities.VerificationPending)).
		Order("uploaded_at ASC").
		Find(&docModels).Error
	if err != nil {
		return nil, err
	}
	return kycToEntities(docModels), nil
}

// Update saves the document's verification fields
func (r *KYCDocumentRepository) Update(ctx context.Context, doc *entities.KYCDocument) error {
	result := GetDB(ctx, r.db).Model(&models.KYCDocument{}).Where("id = ?", doc.ID).Updates(map[string]interface{}{
		"verification_status": string(doc.VerificationStatus),
		"verified_by_id":      doc.VerifiedByID.Ptr(),
		"verification_date":   doc.VerificationDate.Ptr(),
		"admin_comments":      doc.AdminComments.Ptr(),
		"rejection_reason":    doc.RejectionReason.Ptr(),
		"updated_at":          time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CountBlocking counts the client's documents that are neither approved nor
// superseded. Zero means the KYC set is fully approved.
func (r *KYCDocumentRepository) CountBlocking(ctx context.Context, clientID uint) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&models.KYCDocument{}).
		Where("client_id = ? AND verification_status NOT IN ?", clientID,
			[]string{string(entities.VerificationApproved), string(entities.VerificationSuperseded)}).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// LatestByType returns the newest document of a type for a client, nil when
// the client never uploaded one.
func (r *KYCDocumentRepository) LatestByType(ctx context.Context, clientID uint, docType entities.DocumentType) (*entities.KYCDocument, error) {
	var m models.KYCDocument
	err := GetDB(ctx, r.db).
		Where("client_id = ? AND document_type = ?", clientID, string(docType)).
		Order("uploaded_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return kycToEntity(&m), nil
}

func kycToEntity(m *models.KYCDocument) *entities.KYCDocument {
	return &entities.KYCDocument{
		ID:                 m.ID,
		ClientID:           m.ClientID,
		DocumentType:       entities.DocumentType(m.DocumentType),
		DocumentName:       m.DocumentName,
		FilePath:           m.FilePath,
		FileSize:           m.FileSize,
		MimeType:           m.MimeType,
		UploadedAt:         m.UploadedAt,
		VerificationStatus: entities.VerificationStatus(m.VerificationStatus),
		VerifiedByID:       null.UintFromPtr(m.VerifiedByID),
		VerificationDate:   null.TimeFromPtr(m.VerificationDate),
		AdminComments:      null.StringFromPtr(m.AdminComments),
		RejectionReason:    null.StringFromPtr(m.RejectionReason),
		IsResubmission:     m.IsResubmission,
		ResubmissionCount:  m.ResubmissionCount,
		PreviousDocumentID: null.UintFromPtr(m.PreviousDocumentID),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func kycToEntities(docModels []models.KYCDocument) []*entities.KYCDocument {
	docs := make([]*entities.KYCDocument, 0, len(docModels))
	for i := range docModels {
		docs = append(docs, kycToEntity(&docModels[i]))
	}
	return docs
}
