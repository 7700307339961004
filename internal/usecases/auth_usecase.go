package usecases

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/domain/repositories"
	"firmdesk.backend/pkg/crypto"
	"firmdesk.backend/pkg/jwt"
	"firmdesk.backend/pkg/logger"
)

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo      repositories.UserRepository
	tokenRepo     repositories.RefreshTokenRepository
	jwtService    *jwt.Service
	refreshExpiry time.Duration
	now           func() time.Time
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	tokenRepo repositories.RefreshTokenRepository,
	jwtService *jwt.Service,
	refreshExpiry time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		jwtService:    jwtService,
		refreshExpiry: refreshExpiry,
		now:           time.Now,
	}
}

// Login authenticates form credentials and issues a token pair. Unknown
// accounts, wrong passwords and locked accounts all yield the same generic
// error so callers cannot tell which emails exist.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.IsLocked() {
		logger.WithContext(ctx).Warn("login attempt on locked account", zap.Uint("user_id", user.ID))
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		if err := u.userRepo.RecordLoginAttempt(ctx, user.ID, true); err != nil {
			logger.WithContext(ctx).Error("failed to record login attempt", zap.Error(err))
		}
		return nil, domainerrors.ErrInvalidCredentials
	}

	// Inactivity is revealed only on correct credentials.
	if !user.IsActive {
		return nil, domainerrors.ErrAccountInactive
	}

	if err := u.userRepo.RecordLoginAttempt(ctx, user.ID, false); err != nil {
		return nil, err
	}

	return u.issueTokens(ctx, user)
}

// Refresh exchanges a live refresh token for a new token pair. Tokens are
// single-use: the presented token is revoked before the new one is issued.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	stored, err := u.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidRefreshToken
		}
		return nil, err
	}
	if !stored.Valid(u.now()) {
		return nil, domainerrors.ErrInvalidRefreshToken
	}

	user, err := u.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidRefreshToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domainerrors.ErrAccountInactive
	}

	if err := u.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}

	return u.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token. Unknown tokens are ignored so
// logout is idempotent.
func (u *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	if err := u.tokenRepo.Revoke(ctx, refreshToken); err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}
	return nil
}

// LogoutAll revokes every live refresh token of a user
func (u *AuthUsecase) LogoutAll(ctx context.Context, userID uint) (int64, error) {
	return u.tokenRepo.RevokeAllForUser(ctx, userID)
}

// Me returns the authenticated user's profile
func (u *AuthUsecase) Me(ctx context.Context, userID uint) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// ChangePassword verifies the current password, stores the new hash and
// revokes all outstanding refresh tokens.
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !crypto.CheckPassword(current, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}

	hash, err := crypto.HashPassword(next)
	if err != nil {
		return err
	}
	if err := u.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	if _, err := u.tokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		logger.WithContext(ctx).Error("failed to revoke sessions after password change", zap.Error(err))
	}
	return nil
}

func (u *AuthUsecase) issueTokens(ctx context.Context, user *entities.User) (*entities.AuthResponse, error) {
	accessToken, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := crypto.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	stored := &entities.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: u.now().Add(u.refreshExpiry),
	}
	if err := u.tokenRepo.Create(ctx, stored); err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		User:         user,
	}, nil
}
