package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/fsfcare/care-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithCreated sends a created response
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError sends an error response derived from the error's
// application code, falling back to a 500 for unknown errors.
func RespondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := string(apperrors.ErrInternal)
	message := "internal server error"

	if appErr, ok := apperrors.AsAppError(err); ok {
		status = appErr.StatusCode()
		code = string(appErr.Code)
		message = appErr.Message
	}

	c.JSON(status, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

// RespondWithValidationError sends a 400 with the binding failure detail.
func RespondWithValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error: &Error{
			Code:    string(apperrors.ErrBadRequest),
			Message: err.Error(),
		},
	})
}
