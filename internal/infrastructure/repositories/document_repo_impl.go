package repositories

import (
	"context"
	"errors"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/infrastructure/models"
)

// DocumentRepository implements vault document data operations
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create persists a new vault document row
func (r *DocumentRepository) Create(ctx context.Context, doc *entities.Document) error {
	m := &models.Document{
		ClientID:     doc.ClientID,
		Category:     string(doc.Category),
		Filename:     doc.Filename,
		FilePath:     doc.FilePath,
		FileSize:     doc.FileSize,
		MimeType:     doc.MimeType,
		Year:         doc.Year,
		Quarter:      doc.Quarter,
		DocumentDate: doc.DocumentDate.Ptr(),
		Description:  doc.Description.Ptr(),
		UploadedByID: doc.UploadedByID.Ptr(),
		UploadedAt:   doc.UploadedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	doc.ID = m.ID
	doc.CreatedAt = m.CreatedAt
	doc.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a vault document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uint) (*entities.Document, error) {
	var m models.Document
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return documentToEntity(&m), nil
}

// ListByClient lists a client's vault documents, optionally filtered by
// category, year and quarter.
func (r *DocumentRepository) ListByClient(ctx context.Context, clientID uint, filter entities.DocumentFilter) ([]*entities.Document, error) {
	query := GetDB(ctx, r.db).Where("client_id = ?", clientID)
	if filter.Category != "" {
		query = query.Where("category = ?", string(filter.Category))
	}
	if filter.Year != "" {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.Quarter != "" {
		query = query.Where("quarter = ?", filter.Quarter)
	}

	var docModels []models.Document
	if err := query.Order("uploaded_at DESC").Find(&docModels).Error; err != nil {
		return nil, err
	}

	docs := make([]*entities.Document, 0, len(docModels))
	for i := range docModels {
		docs = append(docs, documentToEntity(&docModels[i]))
	}
	return docs, nil
}

func documentToEntity(m *models.Document) *entities.Document {
	return &entities.Document{
		ID:           m.ID,
		ClientID:     m.ClientID,
		Category:     entities.FileCategory(m.Category),
		Filename:     m.Filename,
		FilePath:     m.FilePath,
		FileSize:     m.FileSize,
		MimeType:     m.MimeType,
		Year:         m.Year,
		Quarter:      m.Quarter,
		DocumentDate: null.TimeFromPtr(m.DocumentDate),
		Description:  null.StringFromPtr(m.Description),
		UploadedByID: null.UintFromPtr(m.UploadedByID),
		UploadedAt:   m.UploadedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
