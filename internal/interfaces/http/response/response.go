package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/pkg/logger"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Domain sentinels are translated to their
// HTTP shape here so usecases never deal in status codes.
func Error(c *gin.Context, err error) {
	appErr := toAppError(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).Error("request failed", zap.Error(err))
	}
	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

func toAppError(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domainerrors.ErrInvalidCredentials):
		return domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials, "invalid email or password", err)
	case errors.Is(err, domainerrors.ErrAccountInactive):
		return domainerrors.NewAppError(http.StatusForbidden, domainerrors.CodeForbidden, "account is not active", err)
	case errors.Is(err, domainerrors.ErrInvalidRefreshToken):
		return domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeUnauthorized, "invalid or expired refresh token", err)
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("resource not found")
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict("resource already exists")
	case errors.Is(err, domainerrors.ErrUnsupportedMediaType):
		return domainerrors.UnsupportedMediaType("file type is not accepted")
	case errors.Is(err, domainerrors.ErrPayloadTooLarge):
		return domainerrors.PayloadTooLarge("file exceeds the upload size limit")
	case errors.Is(err, domainerrors.ErrInvalidAccountManager):
		return domainerrors.BadRequest("account manager must be an active staff or admin user")
	case errors.Is(err, domainerrors.ErrInvalidTransition):
		return domainerrors.Conflict("client is not in the right stage for this action")
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden("forbidden")
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.Unauthorized("unauthorized")
	case errors.Is(err, domainerrors.ErrInvalidInput):
		return domainerrors.BadRequest(err.Error())
	default:
		return domainerrors.InternalError(err)
	}
}
