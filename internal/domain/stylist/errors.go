package stylist

import (
	apperrors "github.com/ggyyuubb/wearther/pkg/errors"
)

// Machine readable failure codes surfaced to callers.
const (
	CodeServiceInit  = "SERVICE_INIT_FAILURE"
	CodeNoWardrobe   = "NO_WARDROBE_DATA"
	CodeNoForecast   = "NO_FORECAST"
	CodeNoCandidates = "NO_CANDIDATES"
	CodeAllFiltered  = "ALL_FILTERED"
	CodeInvalidInput = "invalid_input"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// ErrorResult is the structured failure shape returned instead of a Result.
type ErrorResult struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResultFrom converts any pipeline error into an ErrorResult. Errors without a code
// are reported as initialization failures.
func ErrorResultFrom(err error) ErrorResult {
	code := apperrors.CodeOf(err)
	if code == "" {
		code = CodeServiceInit
	}
	return ErrorResult{Status: statusError, Code: code, Message: apperrors.MessageOf(err)}
}
