package repositories

import (
	"context"

	"firmdesk.backend/internal/domain/entities"
)

// KYCDocumentRepository defines KYC document data operations
type KYCDocumentRepository interface {
	Create(ctx context.Context, doc *entities.KYCDocument) error
	GetByID(ctx context.Context, id uint) (*entities.KYCDocument, error)
	ListByClient(ctx context.Context, clientID uint) ([]*entities.KYCDocument, error)
	ListPending(ctx context.Context) ([]*entities.KYCDocument, error)
	Update(ctx context.Context, doc *entities.KYCDocument) error
	// CountBlocking counts documents whose status still blocks the client's
	// advancement to kyc_review (i.e. not approved and not superseded).
	CountBlocking(ctx context.Context, clientID uint) (int64, error)
	// LatestByType returns the most recent document of a type for a client,
	// or nil when none exists. Used to chain re-submissions.
	LatestByType(ctx context.Context, clientID uint, docType entities.DocumentType) (*entities.KYCDocument, error)
}
