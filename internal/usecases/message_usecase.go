package usecases

import (
	"context"
	"errors"
	"time"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/domain/repositories"
)

// MessageUsecase handles internal user-to-user messaging
type MessageUsecase struct {
	msgRepo  repositories.MessageRepository
	userRepo repositories.UserRepository
	now      func() time.Time
}

// NewMessageUsecase creates a new message usecase
func NewMessageUsecase(msgRepo repositories.MessageRepository, userRepo repositories.UserRepository) *MessageUsecase {
	return &MessageUsecase{
		msgRepo:  msgRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// Send delivers a message to another user
func (u *MessageUsecase) Send(ctx context.Context, senderID uint, input *entities.SendMessageInput) (*entities.Message, error) {
	if input.ReceiverID == senderID {
		return nil, domainerrors.BadRequest("cannot message yourself")
	}
	if _, err := u.userRepo.GetByID(ctx, input.ReceiverID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("recipient not found")
		}
		return nil, err
	}

	msg := &entities.Message{
		SenderID:   senderID,
		ReceiverID: input.ReceiverID,
		Content:    input.Content,
		Timestamp:  u.now(),
	}
	if err := u.msgRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Inbox lists messages received by the caller
func (u *MessageUsecase) Inbox(ctx context.Context, userID uint) ([]*entities.Message, error) {
	return u.msgRepo.ListInbox(ctx, userID)
}

// Sent lists messages sent by the caller
func (u *MessageUsecase) Sent(ctx context.Context, userID uint) ([]*entities.Message, error) {
	return u.msgRepo.ListSent(ctx, userID)
}

// Conversation lists the two-way thread with another user
func (u *MessageUsecase) Conversation(ctx context.Context, userID, otherID uint) ([]*entities.Message, error) {
	return u.msgRepo.ListConversation(ctx, userID, otherID)
}

// MarkRead flags a received message as read
func (u *MessageUsecase) MarkRead(ctx context.Context, userID, messageID uint) error {
	return u.msgRepo.MarkRead(ctx, messageID, userID)
}
