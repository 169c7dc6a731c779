package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ggyyuubb/wearther/internal/domain/history"
	"github.com/ggyyuubb/wearther/internal/domain/stylist"
	apperrors "github.com/ggyyuubb/wearther/pkg/errors"
)

// HTTPError is what handlers attach to the gin context; errorHandlingMiddleware renders it.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
	// Payload replaces the default {"error": {...}} body when set.
	Payload any
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError builds an HTTPError with the default error body.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// fromDomainError maps a coded domain error onto its HTTP status. Uncoded errors become 500s.
func fromDomainError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	if code == "" {
		return NewHTTPError(http.StatusInternalServerError, "internal_error", "something went wrong", err)
	}
	return NewHTTPError(statusForCode(code), code, apperrors.MessageOf(err), err)
}

// fromPipelineError renders a recommendation failure as the pipeline's error result.
func fromPipelineError(err error) *HTTPError {
	result := stylist.ErrorResultFrom(err)
	httpErr := NewHTTPError(statusForCode(result.Code), result.Code, result.Message, err)
	httpErr.Payload = result
	return httpErr
}

func statusForCode(code string) int {
	switch code {
	case stylist.CodeInvalidInput:
		return http.StatusBadRequest
	case stylist.CodeNoWardrobe, history.CodeNotFound:
		return http.StatusNotFound
	case stylist.CodeNoForecast, stylist.CodeNoCandidates, stylist.CodeAllFiltered:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func asHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return NewHTTPError(http.StatusInternalServerError, "internal_error", "something went wrong", err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
