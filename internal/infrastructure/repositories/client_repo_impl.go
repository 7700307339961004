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

// ClientRepository implements client profile data operations
type ClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create creates a new client profile
func (r *ClientRepository) Create(ctx context.Context, client *entities.Client) error {
	m := clientToModel(client)
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	client.ID = m.ID
	client.CreatedAt = m.CreatedAt
	client.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a client by ID
func (r *ClientRepository) GetByID(ctx context.Context, id uint) (*entities.Client, error) {
	var m models.Client
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return clientToEntity(&m), nil
}

// GetByUserID gets the client profile owned by a user
func (r *ClientRepository) GetByUserID(ctx context.Context, userID uint) (*entities.Client, error) {
	var m models.Client
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return clientToEntity(&m), nil
}

// Update saves the client's mutable fields. It never writes onboarding_status;
// that column belongs to UpdateStatusIf so a stale in-memory client cannot
// clobber a concurrent transition.
func (r *ClientRepository) Update(ctx context.Context, client *entities.Client) error {
	m := clientToModel(client)
	m.ID = client.ID

	result := GetDB(ctx, r.db).Model(&models.Client{}).Where("id = ?", client.ID).Updates(map[string]interface{}{
		"business_name":            m.BusinessName,
		"business_address":         m.BusinessAddress,
		"business_type":            m.BusinessType,
		"registration_number":      m.RegistrationNumber,
		"phone":                    m.Phone,
		"alternate_phone":          m.AlternatePhone,
		"services_requested":       m.ServicesRequested,
		"account_manager_id":       m.AccountManagerID,
		"kyc_uploaded":             m.KYCUploaded,
		"payment_verified":         m.PaymentVerified,
		"onboarding_completed":     m.OnboardingCompleted,
		"engagement_letter_signed": m.EngagementLetterSigned,
		"verification_date":        m.VerificationDate,
		"activation_date":          m.ActivationDate,
		"admin_notes":              m.AdminNotes,
		"rejection_reason":         m.RejectionReason,
		"temp_password_sent":       m.TempPasswordSent,
		"temp_password_sent_at":    m.TempPasswordSentAt,
		"updated_at":               time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatusIf performs a compare-and-set on onboarding_status. It reports
// whether a row changed, so concurrent transitions lose cleanly instead of
// double-applying.
func (r *ClientRepository) UpdateStatusIf(ctx context.Context, id uint, from, to entities.OnboardingStatus) (bool, error) {
	result := GetDB(ctx, r.db).Model(&models.Client{}).
		Where("id = ? AND onboarding_status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"onboarding_status": string(to),
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListByStatus lists clients in a given onboarding stage
func (r *ClientRepository) ListByStatus(ctx context.Context, status entities.OnboardingStatus) ([]*entities.Client, error) {
	var clientModels []models.Client
	query := GetDB(ctx, r.db).Order("created_at DESC")
	if status != "" {
		query = query.Where("onboarding_status = ?", string(status))
	}
	if err := query.Find(&clientModels).Error; err != nil {
		return nil, err
	}

	clients := make([]*entities.Client, 0, len(clientModels))
	for i := range clientModels {
		clients = append(clients, clientToEntity(&clientModels[i]))
	}
	return clients, nil
}

// CountByStatus returns client counts keyed by onboarding stage
func (r *ClientRepository) CountByStatus(ctx context.Context) (map[entities.OnboardingStatus]int64, error) {
	type row struct {
		OnboardingStatus string
		Total            int64
	}
	var rows []row
	err := GetDB(ctx, r.db).Model(&models.Client{}).
		Select("onboarding_status, COUNT(*) AS total").
		Group("onboarding_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entities.OnboardingStatus]int64, len(rows))
	for _, rr := range rows {
		counts[entities.OnboardingStatus(rr.OnboardingStatus)] = rr.Total
	}
	return counts, nil
}

func clientToModel(c *entities.Client) *models.Client {
	return &models.Client{
		UserID:                 c.UserID,
		BusinessName:           c.BusinessName,
		BusinessAddress:        c.BusinessAddress.Ptr(),
		BusinessType:           c.BusinessType.Ptr(),
		RegistrationNumber:     c.RegistrationNumber.Ptr(),
		Phone:                  c.Phone.Ptr(),
		AlternatePhone:         c.AlternatePhone.Ptr(),
		ServicesRequested:      servicesToString(c.ServicesRequested),
		OnboardingStatus:       string(c.OnboardingStatus),
		AccountManagerID:       c.AccountManagerID.Ptr(),
		TermsAccepted:          c.TermsAccepted,
		PrivacyPolicyAccepted:  c.PrivacyPolicyAccepted,
		KYCUploaded:            c.KYCUploaded,
		PaymentVerified:        c.PaymentVerified,
		OnboardingCompleted:    c.OnboardingCompleted,
		EngagementLetterSigned: c.EngagementLetterSigned,
		RegistrationDate:       c.RegistrationDate,
		VerificationDate:       c.VerificationDate.Ptr(),
		ActivationDate:         c.ActivationDate.Ptr(),
		AdminNotes:             c.AdminNotes.Ptr(),
		RejectionReason:        c.RejectionReason.Ptr(),
		TempPasswordSent:       c.TempPasswordSent,
		TempPasswordSentAt:     c.TempPasswordSentAt.Ptr(),
	}
}

func clientToEntity(m *models.Client) *entities.Client {
	return &entities.Client{
		ID:                     m.ID,
		UserID:                 m.UserID,
		BusinessName:           m.BusinessName,
		BusinessAddress:        null.StringFromPtr(m.BusinessAddress),
		BusinessType:           null.StringFromPtr(m.BusinessType),
		RegistrationNumber:     null.StringFromPtr(m.RegistrationNumber),
		Phone:                  null.StringFromPtr(m.Phone),
		AlternatePhone:         null.StringFromPtr(m.AlternatePhone),
		ServicesRequested:      servicesFromString(m.ServicesRequested),
		OnboardingStatus:       entities.OnboardingStatus(m.OnboardingStatus),
		AccountManagerID:       null.UintFromPtr(m.AccountManagerID),
		TermsAccepted:          m.TermsAccepted,
		PrivacyPolicyAccepted:  m.PrivacyPolicyAccepted,
		KYCUploaded:            m.KYCUploaded,
		PaymentVerified:        m.PaymentVerified,
		OnboardingCompleted:    m.OnboardingCompleted,
		EngagementLetterSigned: m.EngagementLetterSigned,
		RegistrationDate:       m.RegistrationDate,
		VerificationDate:       null.TimeFromPtr(m.VerificationDate),
		ActivationDate:         null.TimeFromPtr(m.ActivationDate),
		AdminNotes:             null.StringFromPtr(m.AdminNotes),
		RejectionReason:        null.StringFromPtr(m.RejectionReason),
		TempPasswordSent:       m.TempPasswordSent,
		TempPasswordSentAt:     null.TimeFromPtr(m.TempPasswordSentAt),
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}
}

func servicesToString(services []entities.ServiceType) string {
	parts := make([]string, 0, len(services))
	for _, s := range services {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ",")
}

func servicesFromString(raw string) []entities.ServiceType {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	services := make([]entities.ServiceType, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			services = append(services, entities.ServiceType(p))
		}
	}
	return services
}
