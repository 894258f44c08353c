package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/safar/storefront/internal/apperr"
	"go.uber.org/zap"
)

const (
	requestIDKey = "request_id"
	principalKey = "principal"
	loggerKey    = "logger"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Redirect  string `json:"redirect,omitempty"`
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func requestLogger(c *gin.Context) *zap.Logger {
	if l, ok := c.Get(loggerKey); ok {
		if zl, ok := l.(*zap.Logger); ok {
			return zl
		}
	}
	return zap.NewNop()
}

func ok(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, Response{
		Success:   true,
		Data:      data,
		Code:      http.StatusOK,
		Message:   message,
		RequestID: requestID(c),
	})
}

func created(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, Response{
		Success:   true,
		Data:      data,
		Code:      http.StatusCreated,
		Message:   message,
		RequestID: requestID(c),
	})
}

func redirect(c *gin.Context, data any, message, to string) {
	c.JSON(http.StatusCreated, Response{
		Success:   true,
		Data:      data,
		Code:      http.StatusCreated,
		Message:   message,
		RequestID: requestID(c),
		Redirect:  to,
	})
}

// fail maps err to an AppError, logs it and writes the error envelope.
// Internal errors never expose their message.
func fail(c *gin.Context, err error) {
	appErr := toAppError(err)
	status := appErr.HTTPStatusCode()

	fields := []zap.Field{
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("http_status", status),
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}
	log := requestLogger(c)
	if status >= http.StatusInternalServerError {
		log.Error(appErr.Message, fields...)
	} else {
		log.Warn(appErr.Message, fields...)
	}

	message := appErr.Message
	if appErr.Code == apperr.CodeInternal {
		message = "internal server error"
	}

	c.AbortWithStatusJSON(status, Response{
		Success:   false,
		Data:      appErr.Data,
		Error:     string(appErr.Code),
		Code:      status,
		Message:   message,
		RequestID: requestID(c),
		Redirect:  appErr.Redirect,
	})
}

func badRequest(c *gin.Context, err error) {
	fail(c, apperr.Wrap(err, apperr.CodeBadRequest, "invalid request parameters"))
}
