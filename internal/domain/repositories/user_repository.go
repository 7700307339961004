package repositories

import (
	"context"

	"firmdesk.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uint) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	SetActive(ctx context.Context, id uint, active bool) error
	RecordLoginAttempt(ctx context.Context, id uint, failed bool) error
	List(ctx context.Context, search string, offset, limit int) ([]*entities.User, int64, error)
	ListByRole(ctx context.Context, role entities.UserRole) ([]*entities.User, error)
}

// RefreshTokenRepository defines refresh-token persistence
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *entities.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*entities.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID uint) (int64, error)
}
