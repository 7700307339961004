package repositories

import (
	"context"

	"firmdesk.backend/internal/domain/entities"
)

// ClientRepository defines client profile data operations
type ClientRepository interface {
	Create(ctx context.Context, client *entities.Client) error
	GetByID(ctx context.Context, id uint) (*entities.Client, error)
	GetByUserID(ctx context.Context, userID uint) (*entities.Client, error)
	Update(ctx context.Context, client *entities.Client) error
	// UpdateStatusIf performs a conditional status update and reports whether a
	// row actually changed. Used to make workflow transitions race-safe.
	UpdateStatusIf(ctx context.Context, id uint, from, to entities.OnboardingStatus) (bool, error)
	ListByStatus(ctx context.Context, status entities.OnboardingStatus) ([]*entities.Client, error)
	CountByStatus(ctx context.Context) (map[entities.OnboardingStatus]int64, error)
}
