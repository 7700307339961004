package usecases

import (
	"context"
	"errors"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/domain/repositories"
	"firmdesk.backend/pkg/crypto"
	"firmdesk.backend/pkg/utils"
)

// Stats is the admin dashboard summary
type Stats struct {
	TotalUsers      int64                               `json:"totalUsers"`
	ClientsByStatus map[entities.OnboardingStatus]int64 `json:"clientsByStatus"`
	PendingKYC      int                                 `json:"pendingKyc"`
	PendingPayments int                                 `json:"pendingPayments"`
}

// AdminUsecase handles user administration and dashboard stats
type AdminUsecase struct {
	userRepo    repositories.UserRepository
	clientRepo  repositories.ClientRepository
	kycRepo     repositories.KYCDocumentRepository
	paymentRepo repositories.PaymentRepository
	tokenRepo   repositories.RefreshTokenRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	userRepo repositories.UserRepository,
	clientRepo repositories.ClientRepository,
	kycRepo repositories.KYCDocumentRepository,
	paymentRepo repositories.PaymentRepository,
	tokenRepo repositories.RefreshTokenRepository,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:    userRepo,
		clientRepo:  clientRepo,
		kycRepo:     kycRepo,
		paymentRepo: paymentRepo,
		tokenRepo:   tokenRepo,
	}
}

// ListUsers returns a page of users with an optional search filter
func (u *AdminUsecase) ListUsers(ctx context.Context, search string, params utils.PaginationParams) ([]*entities.User, *utils.PaginationMeta, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	users, total, err := u.userRepo.List(ctx, search, params.CalculateOffset(), limit)
	if err != nil {
		return nil, nil, err
	}
	meta := utils.CalculateMeta(total, params.Page, limit)
	return users, &meta, nil
}

// CreateUser provisions a staff or admin account
func (u *AdminUsecase) CreateUser(ctx context.Context, input *entities.CreateUserInput) (*entities.User, error) {
	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &entities.User{
		Email:        entities.NormalizeEmail(input.Email),
		FullName:     input.FullName,
		PasswordHash: hash,
		Role:         input.Role,
		IsActive:     true,
		IsVerified:   true,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("email already registered")
		}
		return nil, err
	}
	return user, nil
}

// SetUserActive toggles an account. Deactivation also revokes the user's
// refresh tokens so existing sessions die with the account.
func (u *AdminUsecase) SetUserActive(ctx context.Context, userID uint, active bool) error {
	if err := u.userRepo.SetActive(ctx, userID, active); err != nil {
		return err
	}
	if !active {
		if _, err := u.tokenRepo.RevokeAllForUser(ctx, userID); err != nil {
			return err
		}
	}
	return nil
}

// ResetUserPassword issues a fresh temporary password, returned once for
// admin relay. Storing the new hash also clears the failed-login counter,
// which is the only way a locked account is unlocked.
func (u *AdminUsecase) ResetUserPassword(ctx context.Context, userID uint) (string, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return "", err
	}

	tempPassword, err := crypto.GenerateTempPassword()
	if err != nil {
		return "", err
	}
	hash, err := crypto.HashPassword(tempPassword)
	if err != nil {
		return "", err
	}
	if err := u.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return "", err
	}
	if _, err := u.tokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		return "", err
	}
	return tempPassword, nil
}

// ManagerCandidates lists active staff members assignable as account managers
func (u *AdminUsecase) ManagerCandidates(ctx context.Context) ([]*entities.User, error) {
	staff, err := u.userRepo.ListByRole(ctx, entities.UserRoleStaff)
	if err != nil {
		return nil, err
	}
	admins, err := u.userRepo.ListByRole(ctx, entities.UserRoleAdmin)
	if err != nil {
		return nil, err
	}
	return append(staff, admins...), nil
}

// DashboardStats aggregates the review queues and client pipeline
func (u *AdminUsecase) DashboardStats(ctx context.Context) (*Stats, error) {
	_, totalUsers, err := u.userRepo.List(ctx, "", 0, 1)
	if err != nil {
		return nil, err
	}
	byStatus, err := u.clientRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	pendingKYC, err := u.kycRepo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	pendingPayments, err := u.paymentRepo.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalUsers:      totalUsers,
		ClientsByStatus: byStatus,
		PendingKYC:      len(pendingKYC),
		PendingPayments: len(pendingPayments),
	}, nil
}
