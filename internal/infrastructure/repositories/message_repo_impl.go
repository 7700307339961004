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

// MessageRepository implements internal messaging data operations
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create persists a new message
func (r *MessageRepository) Create(ctx context.Context, msg *entities.Message) error {
	m := &models.Message{
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Content:    msg.Content,
		Timestamp:  msg.Timestamp,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	msg.ID = m.ID
	msg.CreatedAt = m.CreatedAt
	msg.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a message by ID
func (r *MessageRepository) GetByID(ctx context.Context, id uint) (*entities.Message, error) {
	var m models.Message
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return messageToEntity(&m), nil
}

// ListInbox lists messages received by a user, newest first
func (r *MessageRepository) ListInbox(ctx context.Context, userID uint) ([]*entities.Message, error) {
	var msgModels []models.Message
	err := GetDB(ctx, r.db).
		Where("receiver_id = ?", userID).
		Order("timestamp DESC").
		Find(&msgModels).Error
	if err != nil {
		return nil, err
	}
	return messagesToEntities(msgModels), nil
}

// ListSent lists messages sent by a user, newest first
func (r *MessageRepository) ListSent(ctx context.Context, userID uint) ([]*entities.Message, error) {
	var msgModels []models.Message
	err := GetDB(ctx, r.db).
		Where("sender_id = ?", userID).
		Order("timestamp DESC").
		Find(&msgModels).Error
	if err != nil {
		return nil, err
	}
	return messagesToEntities(msgModels), nil
}

// ListConversation lists the two-way thread between two users, oldest first
func (r *MessageRepository) ListConversation(ctx context.Context, userID, otherID uint) ([]*entities.Message, error) {
	var msgModels []models.Message
	err := GetDB(ctx, r.db).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("timestamp ASC").
		Find(&msgModels).Error
	if err != nil {
		return nil, err
	}
	return messagesToEntities(msgModels), nil
}

// MarkRead flags a message as read. Only the recipient may mark it.
func (r *MessageRepository) MarkRead(ctx context.Context, id, recipientID uint) error {
	now := time.Now()
	result := GetDB(ctx, r.db).Model(&models.Message{}).
		Where("id = ? AND receiver_id = ? AND is_read = ?", id, recipientID, false).
		Updates(map[string]interface{}{
			"is_read":    true,
			"read_at":    now,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func messageToEntity(m *models.Message) *entities.Message {
	return &entities.Message{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		Timestamp:  m.Timestamp,
		IsRead:     m.IsRead,
		ReadAt:     null.TimeFromPtr(m.ReadAt),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func messagesToEntities(msgModels []models.Message) []*entities.Message {
	msgs := make([]*entities.Message, 0, len(msgModels))
	for i := range msgModels {
		msgs = append(msgs, messageToEntity(&msgModels[i]))
	}
	return msgs
}
