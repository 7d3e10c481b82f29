package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "user-contact-service/pkg/errors"
	"user-contact-service/pkg/logger"
)

// ProblemContentType is the media type of every error body.
const ProblemContentType = "application/problem+json"

// UnexpectedErrorDetail is returned for failures the caller cannot act on.
const UnexpectedErrorDetail = "An unexpected error has occurred."

// ProblemDetails is an RFC 7807 error body.
type ProblemDetails struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// NewProblem builds the problem document for status.
func NewProblem(status int, detail string) ProblemDetails {
	return ProblemDetails{
		Type:   fmt.Sprintf("https://httpstatuses.io/%d", status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// WriteProblem aborts the request with a problem details response.
func WriteProblem(c *gin.Context, status int, detail string) {
	c.Header("Content-Type", ProblemContentType)
	c.AbortWithStatusJSON(status, NewProblem(status, detail))
}

// StatusFor maps an error returned by the usecase layer to an HTTP status.
func StatusFor(err error) int {
	var (
		validationErr *apperrors.ValidationError
		notFoundErr   *apperrors.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// handleError converts usecase errors to problem details responses.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	status := StatusFor(err)
	log := logger.WithContext(c.Request.Context(), h.log)

	if status >= http.StatusInternalServerError {
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		WriteProblem(c, status, UnexpectedErrorDetail)
		return
	}

	log.Info("request rejected", zap.String("path", c.FullPath()), zap.Int("status", status), zap.String("detail", err.Error()))
	WriteProblem(c, status, err.Error())
}
