package repositories

import (
	"context"

	"firmdesk.backend/internal/domain/entities"
)

// DocumentRepository defines general vault document operations
type DocumentRepository interface {
	Create(ctx context.Context, doc *entities.Document) error
	GetByID(ctx context.Context, id uint) (*entities.Document, error)
	ListByClient(ctx context.Context, clientID uint, filter entities.DocumentFilter) ([]*entities.Document, error)
}
