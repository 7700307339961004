package usecases

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/volatiletech/null/v8"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/domain/repositories"
	"firmdesk.backend/internal/infrastructure/storage"
)

// Vault documents accept the office-document set on top of the KYC types.
var allowedDocumentMimes = map[string]bool{
	"application/pdf":          true,
	"image/jpeg":               true,
	"image/png":                true,
	"text/plain":               true,
	"text/csv":                 true,
	"application/msword":       true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       true,
}

// UploadDocumentInput carries the multipart form fields of a vault upload
type UploadDocumentInput struct {
	Category     entities.FileCategory `form:"category" binding:"required"`
	Description  string                `form:"description"`
	DocumentDate *time.Time            `form:"documentDate" time_format:"2006-01-02"`
}

// DocumentUsecase handles the general per-client document vault
type DocumentUsecase struct {
	clientRepo repositories.ClientRepository
	docRepo    repositories.DocumentRepository
	files      FileStore
	now        func() time.Time
}

// NewDocumentUsecase creates a new document usecase
func NewDocumentUsecase(
	clientRepo repositories.ClientRepository,
	docRepo repositories.DocumentRepository,
	files FileStore,
) *DocumentUsecase {
	return &DocumentUsecase{
		clientRepo: clientRepo,
		docRepo:    docRepo,
		files:      files,
		now:        time.Now,
	}
}

// Upload validates and stores one vault document, bucketed by the document
// date's year and quarter (upload time when no date is given).
func (u *DocumentUsecase) Upload(ctx context.Context, userID uint, input *UploadDocumentInput, originalName, mimeType string, size int64, src io.Reader) (*entities.Document, error) {
	if !input.Category.Valid() {
		return nil, domainerrors.BadRequest("unknown document category")
	}
	if !allowedDocumentMimes[mimeType] {
		return nil, domainerrors.ErrUnsupportedMediaType
	}
	if size <= 0 || size > MaxUploadBytes {
		return nil, domainerrors.ErrPayloadTooLarge
	}

	client, err := u.clientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	docDate := u.now()
	if input.DocumentDate != nil {
		docDate = *input.DocumentDate
	}

	relPath, written, err := u.files.SaveDocument(client.ID, client.BusinessName, string(input.Category), originalName, docDate, io.LimitReader(src, MaxUploadBytes))
	if err != nil {
		return nil, err
	}

	doc := &entities.Document{
		ClientID:     client.ID,
		Category:     input.Category,
		Filename:     originalName,
		FilePath:     relPath,
		FileSize:     written,
		MimeType:     mimeType,
		Year:         fmt.Sprintf("%d", docDate.Year()),
		Quarter:      storage.QuarterSlug(docDate.Month()),
		DocumentDate: null.TimeFromPtr(input.DocumentDate),
		Description:  null.NewString(input.Description, input.Description != ""),
		UploadedByID: null.UintFrom(userID),
		UploadedAt:   u.now(),
	}
	if err := u.docRepo.Create(ctx, doc); err != nil {
		if rmErr := u.files.Remove(relPath); rmErr != nil {
			return nil, fmt.Errorf("%w (orphaned upload at %s)", err, relPath)
		}
		return nil, err
	}
	return doc, nil
}

// List returns the caller's vault documents, optionally filtered
func (u *DocumentUsecase) List(ctx context.Context, userID uint, filter entities.DocumentFilter) ([]*entities.Document, error) {
	client, err := u.clientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.docRepo.ListByClient(ctx, client.ID, filter)
}

// Download streams one of the caller's vault documents. Documents belonging
// to other clients come back as not found rather than forbidden.
func (u *DocumentUsecase) Download(ctx context.Context, userID, docID uint) (*entities.Document, io.ReadCloser, error) {
	client, err := u.clientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	doc, err := u.docRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, nil, err
	}
	if doc.ClientID != client.ID {
		return nil, nil, domainerrors.NotFound("document not found")
	}
	rc, err := u.files.Open(doc.FilePath)
	if err != nil {
		return nil, nil, err
	}
	return doc, rc, nil
}
