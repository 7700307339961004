package repositories

import (
	"context"

	"firmdesk.backend/internal/domain/entities"
)

// MessageRepository defines internal messaging operations
type MessageRepository interface {
	Create(ctx context.Context, msg *entities.Message) error
	GetByID(ctx context.Context, id uint) (*entities.Message, error)
	ListInbox(ctx context.Context, userID uint) ([]*entities.Message, error)
	ListSent(ctx context.Context, userID uint) ([]*entities.Message, error)
	ListConversation(ctx context.Context, userID, otherID uint) ([]*entities.Message, error)
	MarkRead(ctx context.Context, id, recipientID uint) error
}
