package usecases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/volatiletech/null/v8"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/domain/repositories"
	"firmdesk.backend/internal/infrastructure/notifications"
	"firmdesk.backend/pkg/crypto"
)

// MaxUploadBytes is the upload size ceiling for KYC documents, receipts and
// vault documents.
const MaxUploadBytes = 10 << 20

// AdminAlertAddress receives the admin copy of new-registration notifications.
const AdminAlertAddress = "onboarding@firmdesk.example"

var allowedUploadMimes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// FileStore abstracts the deterministic on-disk layout for client uploads
type FileStore interface {
	SaveKYC(clientID uint, businessName, originalName string, at time.Time, src io.Reader) (string, int64, error)
	SavePaymentReceipt(clientID uint, businessName, originalName string, at time.Time, src io.Reader) (string, int64, error)
	SaveDocument(clientID uint, businessName, category, originalName string, at time.Time, src io.Reader) (string, int64, error)
	Open(relPath string) (io.ReadCloser, error)
	Remove(relPath string) error
}

// OnboardingUsecase drives the client onboarding workflow
type OnboardingUsecase struct {
	uow         repositories.UnitOfWork
	userRepo    repositories.UserRepository
	clientRepo  repositories.ClientRepository
	kycRepo     repositories.KYCDocumentRepository
	paymentRepo repositories.PaymentRepository
	files       FileStore
	notifier    notifications.Notifier
	now         func() time.Time
}

// NewOnboardingUsecase creates a new onboarding usecase
func NewOnboardingUsecase(
	uow repositories.UnitOfWork,
	userRepo repositories.UserRepository,
	clientRepo repositories.ClientRepository,
	kycRepo repositories.KYCDocumentRepository,
	paymentRepo repositories.PaymentRepository,
	files FileStore,
	notifier notifications.Notifier,
) *OnboardingUsecase {
	return &OnboardingUsecase{
		uow:         uow,
		userRepo:    userRepo,
		clientRepo:  clientRepo,
		kycRepo:     kycRepo,
		paymentRepo: paymentRepo,
		files:       files,
		notifier:    notifier,
		now:         time.Now,
	}
}

// Register creates the user and client rows atomically. The account starts
// inactive and unverified; it cannot log in until an admin approves the
// registration.
func (u *OnboardingUsecase) Register(ctx context.Context, input *entities.RegisterClientInput) (*entities.Client, error) {
	if !input.TermsAccepted || !input.PrivacyPolicyAccepted {
		return nil, domainerrors.BadRequest("terms and privacy policy must be accepted")
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        entities.NormalizeEmail(input.Email),
		FullName:     input.FullName,
		PasswordHash: passwordHash,
		Role:         entities.UserRoleClient,
		IsActive:     false,
		IsVerified:   false,
	}
	client := &entities.Client{
		BusinessName:          input.BusinessName,
		BusinessAddress:       null.NewString(input.BusinessAddress, input.BusinessAddress != ""),
		BusinessType:          null.NewString(input.BusinessType, input.BusinessType != ""),
		RegistrationNumber:    null.NewString(input.RegistrationNumber, input.RegistrationNumber != ""),
		Phone:                 null.StringFrom(input.Phone),
		AlternatePhone:        null.NewString(input.AlternatePhone, input.AlternatePhone != ""),
		ServicesRequested:     input.ServicesRequested,
		OnboardingStatus:      entities.OnboardingPendingVerification,
		TermsAccepted:         input.TermsAccepted,
		PrivacyPolicyAccepted: input.PrivacyPolicyAccepted,
		RegistrationDate:      u.now(),
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.userRepo.Create(ctx, user); err != nil {
			if errors.Is(err, domainerrors.ErrAlreadyExists) {
				return domainerrors.Conflict("email already registered")
			}
			return err
		}
		client.UserID = user.ID
		return u.clientRepo.Create(ctx, client)
	})
	if err != nil {
		return nil, err
	}

	u.notifier.Notify(ctx, notifications.Event{
		Type:      "registration_received",
		Recipient: user.Email,
		Subject:   "Registration received",
		Body:      fmt.Sprintf("We received the registration for %s and will review it shortly.", client.BusinessName),
		ClientID:  client.ID,
	})
	u.notifier.Notify(ctx, notifications.Event{
		Type:      "registration_alert",
		Recipient: AdminAlertAddress,
		Subject:   "New client registration",
		Body:      fmt.Sprintf("%s registered and awaits verification.", client.BusinessName),
		ClientID:  client.ID,
	})
	return client, nil
}

// VerifyRegistration applies the admin verdict on a pending registration. On
// approval it issues a temporary password, returned exactly once in the
// response for admin relay.
func (u *OnboardingUsecase) VerifyRegistration(ctx context.Context, clientID uint, input *entities.VerifyRegistrationInput) (*entities.Client, string, error) {
	client, err := u.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, "", err
	}
	if client.OnboardingStatus != entities.OnboardingPendingVerification {
		return nil, "", domainerrors.Conflict("registration already verified")
	}

	user, err := u.userRepo.GetByID(ctx, client.UserID)
	if err != nil {
		return nil, "", err
	}

	now := u.now()
	tempPassword := ""

	if input.Approved {
		tempPassword, err = crypto.GenerateTempPassword()
		if err != nil {
			return nil, "", err
		}
		tempHash, err := crypto.HashPassword(tempPassword)
		if err != nil {
			return nil, "", err
		}

		err = u.uow.Do(ctx, func(ctx context.Context) error {
			if err := u.userRepo.UpdatePassword(ctx, user.ID, tempHash); err != nil {
				return err
			}
			user.IsActive = true
			user.IsVerified = true
			if err := u.userRepo.Update(ctx, user); err != nil {
				return err
			}

			ok, err := u.clientRepo.UpdateStatusIf(ctx, client.ID, entities.OnboardingPendingVerification, entities.OnboardingPreActive)
			if err != nil {
				return err
			}
			if !ok {
				return domainerrors.Conflict("registration already verified")
			}
			client.OnboardingStatus = entities.OnboardingPreActive
			client.VerificationDate = null.TimeFrom(now)
			client.AdminNotes = null.NewString(input.AdminNotes, input.AdminNotes != "")
			client.TempPasswordSent = true
			client.TempPasswordSentAt = null.TimeFrom(now)
			return u.clientRepo.Update(ctx, client)
		})
		if err != nil {
			return nil, "", err
		}

		u.notifier.Notify(ctx, notifications.Event{
			Type:      "registration_approved",
			Recipient: user.Email,
			Subject:   "Registration approved",
			Body:      "Your registration was approved. Sign in with the temporary password provided by your account contact.",
			ClientID:  client.ID,
		})
		return client, tempPassword, nil
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.userRepo.SetActive(ctx, user.ID, false); err != nil {
			return err
		}

		ok, err := u.clientRepo.UpdateStatusIf(ctx, client.ID, entities.OnboardingPendingVerification, entities.OnboardingRejected)
		if err != nil {
			return err
		}
		if !ok {
			return domainerrors.Conflict("registration already verified")
		}
		client.OnboardingStatus = entities.OnboardingRejected
		client.AdminNotes = null.NewString(input.AdminNotes, input.AdminNotes != "")
		client.RejectionReason = null.NewString(input.RejectionReason, input.RejectionReason != "")
		return u.clientRepo.Update(ctx, client)
	})
	if err != nil {
		return nil, "", err
	}

	u.notifier.Notify(ctx, notifications.Event{
		Type:      "registration_rejected",
		Recipient: user.Email,
		Subject:   "Registration not approved",
		Body:      input.RejectionReason,
		ClientID:  client.ID,
	})
	return client, "", nil
}

// Status returns the caller's client profile with its onboarding stage
func (u *OnboardingUsecase) Status(ctx context.Context, userID uint) (*entities.Client, error) {
	return u.clientRepo.GetByUserID(ctx, userID)
}

// PendingRegistrations lists clients awaiting the registration verdict
func (u *OnboardingUsecase) PendingRegistrations(ctx context.Context) ([]*entities.Client, error) {
	return u.clientRepo.ListByStatus(ctx, entities.OnboardingPendingVerification)
}

// ClientDetail is the admin view of one client: the profile plus whether an
// approved onboarding payment exists.
type ClientDetail struct {
	Client  *entities.Client `json:"client"`
	FeePaid bool             `json:"feePaid"`
}

// ClientDetail returns one client profile for the admin view
func (u *OnboardingUsecase) ClientDetail(ctx context.Context, clientID uint) (*ClientDetail, error) {
	client, err := u.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	feePaid, err := u.paymentRepo.HasApproved(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return &ClientDetail{Client: client, FeePaid: feePaid}, nil
}

// UploadKYC validates and stores one verification document. Uploading a
// replacement for a rejected document of the same type supersedes the old
// row. The first upload moves the client from pre_active to kyc_submission.
func (u *OnboardingUsecase) UploadKYC(ctx context.Context, userID uint, docType entities.DocumentType, originalName, mimeType string, size int64, src io.Reader) (*entities.KYCDocument, error) {
	if err := validateUpload(mimeType, size); err != nil {
		return nil, err
	}

	client, err := u.clientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if client.OnboardingStatus.IsSideState() {
		return nil, domainerrors.Forbidden("onboarding is closed for this client")
	}

	previous, err := u.kycRepo.LatestByType(ctx, client.ID, docType)
	if err != nil {
		return nil, err
	}

	now := u.now()
	relPath, written, err := u.files.SaveKYC(client.ID, client.BusinessName, originalName, now, io.LimitReader(src, MaxUploadBytes))
	if err != nil {
		return nil, err
	}

	doc := &entities.KYCDocument{
		ClientID:           client.ID,
		DocumentType:       docType,
		DocumentName:       originalName,
		FilePath:           relPath,
		FileSize:           written,
		MimeType:           mimeType,
		UploadedAt:         now,
		VerificationStatus: entities.VerificationPending,
	}
	if previous != nil && previous.VerificationStatus == entities.VerificationRejected {
		doc.IsResubmission = true
		doc.ResubmissionCount = previous.ResubmissionCount + 1
		doc.PreviousDocumentID = null.UintFrom(previous.ID)
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if doc.IsResubmission {
			previous.VerificationStatus = entities.VerificationSuperseded
			if err := u.kycRepo.Update(ctx, previous); err != nil {
				return err
			}
		}
		if err := u.kycRepo.Create(ctx, doc); err != nil {
			return err
		}

		if _, err := u.clientRepo.UpdateStatusIf(ctx, client.ID, entities.OnboardingPreActive, entities.OnboardingKYCSubmission); err != nil {
			return err
		}
		if !client.KYCUploaded {
			client.KYCUploaded = true
			return u.clientRepo.Update(ctx, client)
		}
		return nil
	})
	if err != nil {
		if rmErr := u.files.Remove(relPath); rmErr != nil {
			return nil, fmt.Errorf("%w (orphaned upload at %s)", err, relPath)
		}
		return nil, err
	}
	return doc, nil
}

// KYCDocuments lists the caller's uploaded verification documents
func (u *OnboardingUsecase) KYCDocuments(ctx context.Context, userID uint) ([]*entities.KYCDocument, error) {
	client, err := u.clientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.kycRepo.ListByClient(ctx, client.ID)
}

// PendingKYC lists every document awaiting an admin verdict
func (u *OnboardingUsecase) PendingKYC(ctx context.Context) ([]*entities.KYCDocument, error) {
	return u.kycRepo.ListPending(ctx)
}

// VerifyKYC applies the admin verdict on one document. The verdict, the
// recount of still-blocking documents and the conditional status advance all
// run inside one transaction. The status CAS makes the kyc_review transition
// apply at most once; under READ COMMITTED two concurrent approvals can still
// each see the other's document as blocking, in which case the next verdict
// or re-submission advances the client.
func (u *OnboardingUsecase) VerifyKYC(ctx context.Context, documentID uint, input *entities.VerifyKYCInput, adminID uint) (*entities.KYCDocument, error) {
	doc, err := u.kycRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.VerificationStatus != entities.VerificationPending {
		return nil, domainerrors.Conflict("document already reviewed")
	}

	now := u.now()
	if input.Approved {
		doc.VerificationStatus = entities.VerificationApproved
	} else {
		doc.VerificationStatus = entities.VerificationRejected
		doc.RejectionReason = null.NewString(input.RejectionReason, input.RejectionReason != "")
	}
	doc.VerifiedByID = null.UintFrom(adminID)
	doc.VerificationDate = null.TimeFrom(now)
	doc.AdminComments = null.NewString(input.AdminComments, input.AdminComments != "")

	advanced := false
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.kycRepo.Update(ctx, doc); err != nil {
			return err
		}
		if !input.Approved {
			return nil
		}

		blocking, err := u.kycRepo.CountBlocking(ctx, doc.ClientID)
		if err != nil {
			return err
		}
		if blocking > 0 {
			return nil
		}

		advanced, err = u.clientRepo.UpdateStatusIf(ctx, doc.ClientID, entities.OnboardingKYCSubmission, entities.OnboardingKYCReview)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.notifyClient(ctx, doc.ClientID, verdictEvent("kyc_document", input.Approved, input.RejectionReason))
	if advanced {
		u.notifyClient(ctx, doc.ClientID, notifications.Event{
			Type:    "kyc_approved",
			Subject: "KYC verification complete",
			Body:    "All verification documents were approved. Please proceed with the onboarding payment.",
		})
	}
	return doc, nil
}

// UploadPayment validates and stores a payment receipt, then moves the
// client into payment_review when that is a forward step.
func (u *OnboardingUsecase) UploadPayment(ctx context.Context, userID uint, input *entities.UploadPaymentInput, originalName, mimeType string, size int64, src io.Reader) (*entities.Payment, error) {
	if err := validateUpload(mimeType, size); err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return nil, domainerrors.BadRequest("amount must be positive")
	}

	client, err := u.clientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if client.OnboardingStatus.IsSideState() {
		return nil, domainerrors.Forbidden("onboarding is closed for this client")
	}

	now := u.now()
	relPath, written, err := u.files.SavePaymentReceipt(client.ID, client.BusinessName, originalName, now, io.LimitReader(src, MaxUploadBytes))
	if err != nil {
		return nil, err
	}

	method := input.PaymentMethod
	if method == "" {
		method = entities.PaymentMethodBankTransfer
	}
	payment := &entities.Payment{
		ClientID:           client.ID,
		Amount:             input.Amount,
		Currency:           "GHS",
		PaymentReference:   null.NewString(input.PaymentReference, input.PaymentReference != ""),
		PaymentMethod:      method,
		PaymentDate:        null.TimeFromPtr(input.PaymentDate),
		PaymentType:        "onboarding_fee",
		Description:        null.NewString(input.Description, input.Description != ""),
		ReceiptFilePath:    null.StringFrom(relPath),
		ReceiptFilename:    null.StringFrom(originalName),
		ReceiptFileSize:    null.Int64From(written),
		ReceiptMimeType:    null.StringFrom(mimeType),
		UploadedAt:         now,
		VerificationStatus: entities.VerificationPending,
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}
		// Forward move only; an active client re-submitting a receipt does
		// not regress.
		if client.OnboardingStatus.CanAdvanceTo(entities.OnboardingPaymentReview) {
			if _, err := u.clientRepo.UpdateStatusIf(ctx, client.ID, client.OnboardingStatus, entities.OnboardingPaymentReview); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if rmErr := u.files.Remove(relPath); rmErr != nil {
			return nil, fmt.Errorf("%w (orphaned upload at %s)", err, relPath)
		}
		return nil, err
	}
	return payment, nil
}

// PaymentRecords lists the caller's payments
func (u *OnboardingUsecase) PaymentRecords(ctx context.Context, userID uint) ([]*entities.Payment, error) {
	client, err := u.clientRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.paymentRepo.ListByClient(ctx, client.ID)
}

// PendingPayments lists every payment awaiting an admin verdict
func (u *OnboardingUsecase) PendingPayments(ctx context.Context) ([]*entities.Payment, error) {
	return u.paymentRepo.ListPending(ctx)
}

// VerifyPayment applies the admin verdict on one payment. Approval moves the
// client to awaiting_signature; rejection changes only the payment row.
func (u *OnboardingUsecase) VerifyPayment(ctx context.Context, paymentID uint, input *entities.VerifyPaymentInput, adminID uint) (*entities.Payment, error) {
	payment, err := u.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.VerificationStatus != entities.VerificationPending {
		return nil, domainerrors.Conflict("payment already reviewed")
	}

	now := u.now()
	if input.Approved {
		payment.VerificationStatus = entities.VerificationApproved
		payment.BankStatementMatched = input.BankStatementReference != ""
		payment.BankStatementReference = null.NewString(input.BankStatementReference, input.BankStatementReference != "")
	} else {
		payment.VerificationStatus = entities.VerificationRejected
		payment.RejectionReason = null.NewString(input.RejectionReason, input.RejectionReason != "")
	}
	payment.VerifiedByID = null.UintFrom(adminID)
	payment.VerificationDate = null.TimeFrom(now)
	payment.AdminNotes = null.NewString(input.AdminNotes, input.AdminNotes != "")

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.paymentRepo.Update(ctx, payment); err != nil {
			return err
		}
		if !input.Approved {
			return nil
		}

		if _, err := u.clientRepo.UpdateStatusIf(ctx, payment.ClientID, entities.OnboardingPaymentReview, entities.OnboardingAwaitingSignature); err != nil {
			return err
		}
		client, err := u.clientRepo.GetByID(ctx, payment.ClientID)
		if err != nil {
			return err
		}
		client.PaymentVerified = true
		return u.clientRepo.Update(ctx, client)
	})
	if err != nil {
		return nil, err
	}

	u.notifyClient(ctx, payment.ClientID, verdictEvent("payment", input.Approved, input.RejectionReason))
	return payment, nil
}

// ActivateClient assigns an account manager and completes onboarding. The
// manager must hold the admin or staff role.
func (u *OnboardingUsecase) ActivateClient(ctx context.Context, clientID uint, input *entities.ActivateClientInput) (*entities.Client, *entities.User, error) {
	manager, err := u.userRepo.GetByID(ctx, input.AccountManagerID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.ErrInvalidAccountManager
		}
		return nil, nil, err
	}
	if !manager.Role.CanManageClients() {
		return nil, nil, domainerrors.ErrInvalidAccountManager
	}

	client, err := u.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, nil, err
	}

	now := u.now()
	err = u.uow.Do(ctx, func(ctx context.Context) error {
		ok, err := u.clientRepo.UpdateStatusIf(ctx, clientID, entities.OnboardingAwaitingSignature, entities.OnboardingActive)
		if err != nil {
			return err
		}
		if !ok {
			return domainerrors.ErrInvalidTransition
		}
		client.OnboardingStatus = entities.OnboardingActive
		client.AccountManagerID = null.UintFrom(manager.ID)
		client.ActivationDate = null.TimeFrom(now)
		client.OnboardingCompleted = true
		client.EngagementLetterSigned = true
		client.AdminNotes = null.NewString(input.AdminNotes, input.AdminNotes != "")
		return u.clientRepo.Update(ctx, client)
	})
	if err != nil {
		return nil, nil, err
	}

	u.notifyClient(ctx, client.ID, notifications.Event{
		Type:    "client_activated",
		Subject: "Welcome aboard",
		Body:    fmt.Sprintf("Your account is active. Your account manager is %s.", manager.FullName),
	})
	return client, manager, nil
}

func (u *OnboardingUsecase) notifyClient(ctx context.Context, clientID uint, event notifications.Event) {
	event.ClientID = clientID
	if event.Recipient == "" {
		client, err := u.clientRepo.GetByID(ctx, clientID)
		if err == nil {
			if user, err := u.userRepo.GetByID(ctx, client.UserID); err == nil {
				event.Recipient = user.Email
			}
		}
	}
	u.notifier.Notify(ctx, event)
}

func verdictEvent(kind string, approved bool, rejectionReason string) notifications.Event {
	if approved {
		return notifications.Event{
			Type:    kind + "_approved",
			Subject: "Review complete",
			Body:    "Your " + kind + " was approved.",
		}
	}
	return notifications.Event{
		Type:    kind + "_rejected",
		Subject: "Action required",
		Body:    rejectionReason,
	}
}

func validateUpload(mimeType string, size int64) error {
	if !allowedUploadMimes[mimeType] {
		return domainerrors.ErrUnsupportedMediaType
	}
	if size <= 0 || size > MaxUploadBytes {
		return domainerrors.ErrPayloadTooLarge
	}
	return nil
}
