package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/infrastructure/models"
)

// RefreshTokenRepository implements refresh-token persistence
type RefreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new refresh token repository
func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Create persists a new refresh token
func (r *RefreshTokenRepository) Create(ctx context.Context, token *entities.RefreshToken) error {
	m := &models.RefreshToken{
		Token:     token.Token,
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt,
		Revoked:   token.Revoked,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return err
	}
	token.ID = m.ID
	token.CreatedAt = m.CreatedAt
	token.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByToken looks up a refresh token by its opaque value
func (r *RefreshTokenRepository) GetByToken(ctx context.Context, token string) (*entities.RefreshToken, error) {
	var m models.RefreshToken
	if err := GetDB(ctx, r.db).Where("token = ?", token).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.RefreshToken{
		ID:        m.ID,
		Token:     m.Token,
		UserID:    m.UserID,
		ExpiresAt: m.ExpiresAt,
		Revoked:   m.Revoked,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// Revoke marks one token as spent
func (r *RefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	result := GetDB(ctx, r.db).Model(&models.RefreshToken{}).
		Where("token = ? AND revoked = ?", token, false).
		Updates(map[string]interface{}{"revoked": true, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// RevokeAllForUser revokes every live token of a user and returns the count
func (r *RefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uint) (int64, error) {
	result := GetDB(ctx, r.db).Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Updates(map[string]interface{}{"revoked": true, "updated_at": time.Now()})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
