package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/interfaces/http/middleware"
	"firmdesk.backend/internal/interfaces/http/response"
	"firmdesk.backend/internal/usecases"
)

// OnboardingHandler handles registration and the onboarding workflow
type OnboardingHandler struct {
	onboardingUsecase *usecases.OnboardingUsecase
}

// NewOnboardingHandler creates a new onboarding handler
func NewOnboardingHandler(onboardingUsecase *usecases.OnboardingUsecase) *OnboardingHandler {
	return &OnboardingHandler{onboardingUsecase: onboardingUsecase}
}

// Register handles self-service client registration
// POST /api/v1/onboarding/register
func (h *OnboardingHandler) Register(c *gin.Context) {
	var input entities.RegisterClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	client, err := h.onboardingUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "registration received and awaiting verification",
		"client":  client,
	})
}

// Status returns the caller's onboarding stage
// GET /api/v1/onboarding/status
func (h *OnboardingHandler) Status(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	client, err := h.onboardingUsecase.Status(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, client)
}

// UploadKYC receives one verification document
// POST /api/v1/onboarding/kyc
func (h *OnboardingHandler) UploadKYC(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	docType := entities.DocumentType(c.PostForm("documentType"))
	if !docType.Valid() {
		response.Error(c, domainerrors.BadRequest("unknown document type"))
		return
	}

	header, src, err := openUpload(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer src.Close()

	doc, err := h.onboardingUsecase.UploadKYC(c.Request.Context(), userID, docType,
		header.Filename, uploadMimeType(header), header.Size, src)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, doc)
}

// MyKYCDocuments lists the caller's verification documents
// GET /api/v1/onboarding/kyc
func (h *OnboardingHandler) MyKYCDocuments(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	docs, err := h.onboardingUsecase.KYCDocuments(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, docs)
}

// UploadPayment receives a payment receipt with its form fields
// POST /api/v1/onboarding/payments
func (h *OnboardingHandler) UploadPayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.UploadPaymentInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	header, src, err := openUpload(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer src.Close()

	payment, err := h.onboardingUsecase.UploadPayment(c.Request.Context(), userID, &input,
		header.Filename, uploadMimeType(header), header.Size, src)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, payment)
}

// MyPayments lists the caller's payment records
// GET /api/v1/onboarding/payments
func (h *OnboardingHandler) MyPayments(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	payments, err := h.onboardingUsecase.PaymentRecords(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payments)
}

// PendingRegistrations lists registrations awaiting a verdict
// GET /api/v1/admin/registrations
func (h *OnboardingHandler) PendingRegistrations(c *gin.Context) {
	clients, err := h.onboardingUsecase.PendingRegistrations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, clients)
}

// ClientDetail returns one client profile
// GET /api/v1/admin/clients/:id
func (h *OnboardingHandler) ClientDetail(c *gin.Context) {
	clientID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	detail, err := h.onboardingUsecase.ClientDetail(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// VerifyRegistration applies the admin verdict on a registration
// POST /api/v1/admin/registrations/:id/verify
func (h *OnboardingHandler) VerifyRegistration(c *gin.Context) {
	clientID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.VerifyRegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	client, tempPassword, err := h.onboardingUsecase.VerifyRegistration(c.Request.Context(), clientID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := gin.H{"client": client}
	if tempPassword != "" {
		// Relayed to the client out of band; shown exactly once.
		result["tempPassword"] = tempPassword
	}
	response.Success(c, http.StatusOK, result)
}

// PendingKYC lists documents awaiting review
// GET /api/v1/admin/kyc/pending
func (h *OnboardingHandler) PendingKYC(c *gin.Context) {
	docs, err := h.onboardingUsecase.PendingKYC(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, docs)
}

// VerifyKYC applies the admin verdict on one document
// POST /api/v1/admin/kyc/:id/verify
func (h *OnboardingHandler) VerifyKYC(c *gin.Context) {
	documentID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.VerifyKYCInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	doc, err := h.onboardingUsecase.VerifyKYC(c.Request.Context(), documentID, &input, adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, doc)
}

// PendingPayments lists payments awaiting review
// GET /api/v1/admin/payments/pending
func (h *OnboardingHandler) PendingPayments(c *gin.Context) {
	payments, err := h.onboardingUsecase.PendingPayments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payments)
}

// VerifyPayment applies the admin verdict on one payment
// POST /api/v1/admin/payments/:id/verify
func (h *OnboardingHandler) VerifyPayment(c *gin.Context) {
	paymentID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.VerifyPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	payment, err := h.onboardingUsecase.VerifyPayment(c.Request.Context(), paymentID, &input, adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payment)
}

// ActivateClient assigns an account manager and activates the client
// POST /api/v1/admin/clients/:id/activate
func (h *OnboardingHandler) ActivateClient(c *gin.Context) {
	clientID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input entities.ActivateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	client, manager, err := h.onboardingUsecase.ActivateClient(c.Request.Context(), clientID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"client": client,
		"accountManager": gin.H{
			"id":       manager.ID,
			"fullName": manager.FullName,
			"email":    manager.Email,
		},
	})
}

// openUpload fetches the "file" part of a multipart request
func openUpload(c *gin.Context) (*multipart.FileHeader, multipart.File, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, nil, domainerrors.BadRequest("file is required")
	}
	src, err := header.Open()
	if err != nil {
		return nil, nil, domainerrors.BadRequest("could not read uploaded file")
	}
	return header, src, nil
}

func uploadMimeType(header *multipart.FileHeader) string {
	return header.Header.Get("Content-Type")
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, domainerrors.BadRequest("invalid id")
	}
	return uint(id), nil
}
