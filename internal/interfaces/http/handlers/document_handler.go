package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"firmdesk.backend/internal/domain/entities"
	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/interfaces/http/middleware"
	"firmdesk.backend/internal/interfaces/http/response"
	"firmdesk.backend/internal/usecases"
)

// DocumentHandler handles the per-client document vault
type DocumentHandler struct {
	documentUsecase *usecases.DocumentUsecase
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentUsecase *usecases.DocumentUsecase) *DocumentHandler {
	return &DocumentHandler{documentUsecase: documentUsecase}
}

// Upload stores one vault document
// POST /api/v1/documents
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input usecases.UploadDocumentInput
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

	doc, err := h.documentUsecase.Upload(c.Request.Context(), userID, &input,
		header.Filename, uploadMimeType(header), header.Size, src)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, doc)
}

// List returns the caller's vault documents, optionally filtered by
// category, year and quarter query parameters.
// GET /api/v1/documents
func (h *DocumentHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var filter entities.DocumentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	docs, err := h.documentUsecase.List(c.Request.Context(), userID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, docs)
}

// Download streams one of the caller's vault documents
// GET /api/v1/documents/:id/download
func (h *DocumentHandler) Download(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	docID, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	doc, src, err := h.documentUsecase.Download(c.Request.Context(), userID, docID)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer src.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.DataFromReader(http.StatusOK, doc.FileSize, doc.MimeType, src, nil)
}
