package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response body shape used by every endpoint,
// success or failure.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// HandleError writes err to the response in the standard envelope. Non-app
// errors are wrapped as internal errors with a genericized message.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error", "domain", appErr.Domain, "code", appErr.Code, "error", appErr.Unwrap())
	}

	c.JSON(appErr.HTTPCode, Envelope{
		StatusCode: appErr.HTTPCode,
		Data:       appErr.Details,
		Message:    appErr.Message,
		Success:    false,
	})
}

// AsAppError converts err to *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
