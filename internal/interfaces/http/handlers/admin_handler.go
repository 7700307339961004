package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/interfaces/http/response"
	"firmdesk.backend/internal/usecases"
	"firmdesk.backend/pkg/utils"
)

// AdminHandler handles user administration and the dashboard
type AdminHandler struct {
	adminUsecase *usecases.AdminUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase *usecases.AdminUsecase) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// ListUsers returns a page of users
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	users, meta, err := h.adminUsecase.ListUsers(c.Request.Context(), c.Query("search"), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"users":      users,
		"pagination": meta,
	})
}

// CreateUser provisions a staff or admin account
// POST /api/v1/admin/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var input entities.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.adminUsecase.CreateUser(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user)
}

type setActiveInput struct {
	Active *bool `json:"active" binding:"required"`
}

// SetUserActive toggles an account
// PATCH /api/v1/admin/users/:id/active
func (h *AdminHandler) SetUserActive(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input setActiveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.adminUsecase.SetUserActive(c.Request.Context(), userID, *input.Active); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "account updated"})
}

// ResetUserPassword issues a fresh temporary password, returned once
// POST /api/v1/admin/users/:id/reset-password
func (h *AdminHandler) ResetUserPassword(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	tempPassword, err := h.adminUsecase.ResetUserPassword(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tempPassword": tempPassword})
}

// ManagerCandidates lists assignable account managers
// GET /api/v1/admin/managers
func (h *AdminHandler) ManagerCandidates(c *gin.Context) {
	candidates, err := h.adminUsecase.ManagerCandidates(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, candidates)
}

// DashboardStats aggregates the review queues and the client pipeline
// GET /api/v1/admin/stats
func (h *AdminHandler) DashboardStats(c *gin.Context) {
	stats, err := h.adminUsecase.DashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}
