package repositories

import (
	"context"

	"firmdesk.backend/internal/domain/entities"
)

// PaymentRepository defines payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByID(ctx context.Context, id uint) (*entities.Payment, error)
	ListByClient(ctx context.Context, clientID uint) ([]*entities.Payment, error)
	ListPending(ctx context.Context) ([]*entities.Payment, error)
	Update(ctx context.Context, payment *entities.Payment) error
	HasApproved(ctx context.Context, clientID uint) (bool, error)
}
