package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
)

func newTestKYCDoc(clientID uint, docType entities.DocumentType) *entities.KYCDocument {
	return &entities.KYCDocument{
		ClientID:           clientID,
		DocumentType:       docType,
		DocumentName:       "certificate.pdf",
		FilePath:           "client_1_acme_ltd/kyc/certificate_20250101_120000_abcd1234.pdf",
		FileSize:           2048,
		MimeType:           "application/pdf",
		UploadedAt:         time.Now(),
		VerificationStatus: entities.VerificationPending,
	}
}

func TestKYCDocumentRepository_CreateAndVerify(t *testing.T) {
	db := newTestDB(t)
	createKYCDocumentTable(t, db)
	repo := NewKYCDocumentRepository(db)
	ctx := context.Background()

	doc := newTestKYCDoc(1, entities.DocTypeRGDCertificate)
	require.NoError(t, repo.Create(ctx, doc))
	require.NotZero(t, doc.ID)

	got, err := repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, entities.VerificationPending, got.VerificationStatus)

	got.VerificationStatus = entities.VerificationApproved
	got.VerifiedByID = null.UintFrom(9)
	got.VerificationDate = null.TimeFrom(time.Now())
	got.AdminComments = null.StringFrom("legible and current")
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.GetByID(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, entities.VerificationApproved, updated.VerificationStatus)
	require.EqualValues(t, 9, updated.VerifiedByID.Uint)
}

func TestKYCDocumentRepository_CountBlocking(t *testing.T) {
	db := newTestDB(t)
	createKYCDocumentTable(t, db)
	repo := NewKYCDocumentRepository(db)
	ctx := context.Background()

	approved := newTestKYCDoc(1, entities.DocTypeRGDCertificate)
	approved.VerificationStatus = entities.VerificationApproved
	require.NoError(t, repo.Create(ctx, approved))

	superseded := newTestKYCDoc(1, entities.DocTypeTINCertificate)
	superseded.VerificationStatus = entities.VerificationSuperseded
	require.NoError(t, repo.Create(ctx, superseded))

	pending := newTestKYCDoc(1, entities.DocTypeGhanaCard)
	require.NoError(t, repo.Create(ctx, pending))

	rejected := newTestKYCDoc(1, entities.DocTypePassport)
	rejected.VerificationStatus = entities.VerificationRejected
	require.NoError(t, repo.Create(ctx, rejected))

	// another client's docs do not count
	other := newTestKYCDoc(2, entities.DocTypeGhanaCard)
	require.NoError(t, repo.Create(ctx, other))

	n, err := repo.CountBlocking(ctx, 1)
	require.NoError(t, err)
	require.EqualValues(t, 2, n, "pending and rejected block; approved and superseded do not")
}

func TestKYCDocumentRepository_LatestByTypeAndLists(t *testing.T) {
	db := newTestDB(t)
	createKYCDocumentTable(t, db)
	repo := NewKYCDocumentRepository(db)
	ctx := context.Background()

	old := newTestKYCDoc(1, entities.DocTypeTINCertificate)
	old.UploadedAt = time.Now().Add(-time.Hour)
	old.VerificationStatus = entities.VerificationRejected
	require.NoError(t, repo.Create(ctx, old))

	fresh := newTestKYCDoc(1, entities.DocTypeTINCertificate)
	fresh.IsResubmission = true
	fresh.ResubmissionCount = 1
	fresh.PreviousDocumentID = null.UintFrom(old.ID)
	require.NoError(t, repo.Create(ctx, fresh))

	latest, err := repo.LatestByType(ctx, 1, entities.DocTypeTINCertificate)
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.Equal(t, fresh.ID, latest.ID)
	require.True(t, latest.IsResubmission)
	require.EqualValues(t, old.ID, latest.PreviousDocumentID.Uint)

	none, err := repo.LatestByType(ctx, 1, entities.DocTypeVATCertificate)
	require.NoError(t, err)
	require.Nil(t, none)

	byClient, err := repo.ListByClient(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byClient, 2)

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, fresh.ID, pending[0].ID)
}

func TestKYCDocumentRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createKYCDocumentTable(t, db)
	repo := NewKYCDocumentRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 999)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	doc := newTestKYCDoc(1, entities.DocTypeOther)
	doc.ID = 999
	require.ErrorIs(t, repo.Update(ctx, doc), domainerrors.ErrNotFound)
}
