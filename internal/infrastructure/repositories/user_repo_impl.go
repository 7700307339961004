package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		Email:               entities.NormalizeEmail(user.Email),
		FullName:            user.FullName,
		PasswordHash:        user.PasswordHash,
		Role:                string(user.Role),
		IsActive:            user.IsActive,
		IsVerified:          user.IsVerified,
		FailedLoginAttempts: user.FailedLoginAttempts,
		LastLogin:           user.LastLogin.Ptr(),
		PasswordChangedAt:   user.PasswordChangedAt.Ptr(),
	}

	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByEmail gets a user by normalized email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).Where("email = ?", entities.NormalizeEmail(email)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// Update updates mutable profile fields
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"full_name":   user.FullName,
		"role":        string(user.Role),
		"is_active":   user.IsActive,
		"is_verified": user.IsVerified,
		"updated_at":  time.Now(),
	}
	if user.LastLogin.Valid {
		updates["last_login"] = user.LastLogin.Time
	}

	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the password hash and resets the lockout counter
func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	now := time.Now()
	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_hash":         passwordHash,
		"password_changed_at":   now,
		"failed_login_attempts": 0,
		"updated_at":            now,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetActive toggles the account's active flag
func (r *UserRepository) SetActive(ctx context.Context, id uint, active bool) error {
	result := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  active,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// RecordLoginAttempt increments the failure counter on a failed attempt and
// resets it, stamping last_login, on success.
func (r *UserRepository) RecordLoginAttempt(ctx context.Context, id uint, failed bool) error {
	db := GetDB(ctx, r.db).Model(&models.User{}).Where("id = ?", id)

	var result *gorm.DB
	if failed {
		result = db.Updates(map[string]interface{}{
			"failed_login_attempts": gorm.Expr("failed_login_attempts + 1"),
			"updated_at":            time.Now(),
		})
	} else {
		now := time.Now()
		result = db.Updates(map[string]interface{}{
			"failed_login_attempts": 0,
			"last_login":            now,
			"updated_at":            now,
		})
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists users with an optional search filter and pagination
func (r *UserRepository) List(ctx context.Context, search string, offset, limit int) ([]*entities.User, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.User{})

	if search != "" {
		searchTerm := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var userModels []models.User
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&userModels).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, total, nil
}

// ListByRole lists users holding a given role
func (r *UserRepository) ListByRole(ctx context.Context, role entities.UserRole) ([]*entities.User, error) {
	var userModels []models.User
	err := GetDB(ctx, r.db).
		Where("role = ? AND is_active = ?", string(role), true).
		Order("full_name ASC").
		Find(&userModels).Error
	if err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, nil
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                  m.ID,
		Email:               m.Email,
		FullName:            m.FullName,
		PasswordHash:        m.PasswordHash,
		Role:                entities.UserRole(m.Role),
		IsActive:            m.IsActive,
		IsVerified:          m.IsVerified,
		FailedLoginAttempts: m.FailedLoginAttempts,
		LastLogin:           null.TimeFromPtr(m.LastLogin),
		PasswordChangedAt:   null.TimeFromPtr(m.PasswordChangedAt),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// isUniqueViolation matches duplicate-key errors across postgres and sqlite.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
