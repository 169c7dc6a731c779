package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/ggyyuubb/wearther/internal/domain/history"
	"github.com/ggyyuubb/wearther/internal/domain/stylist"
	apperrors "github.com/ggyyuubb/wearther/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	stylistSvc stylist.Service
	historySvc history.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler. historySvc may be nil.
func NewHandler(stylistSvc stylist.Service, historySvc history.Service, logger *slog.Logger) *Handler {
	return &Handler{
		stylistSvc: stylistSvc,
		historySvc: historySvc,
		logger:     logger.With("component", "http.handler"),
	}
}

type recommendRequest struct {
	UserID   string `json:"userId" binding:"omitempty,max=128"`
	Location string `json:"location" binding:"required,max=128"`
	DayIndex int    `json:"dayIndex" binding:"min=0,max=6"`
}

type recommendResponse struct {
	stylist.Result
	HistoryID string `json:"historyId,omitempty"`
}

// Recommend runs the outfit pipeline for one forecast day.
func (h *Handler) Recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			abortWithError(c, fromPipelineError(apperrors.Wrap(stylist.CodeInvalidInput, describeValidation(verrs), err)))
			return
		}
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	userID := userIDFrom(c, req.UserID)
	res, err := h.stylistSvc.Recommend(c.Request.Context(), stylist.Request{
		UserID:   userID,
		Location: req.Location,
		DayIndex: req.DayIndex,
	})
	if err != nil {
		httpErr := fromPipelineError(err)
		if httpErr.Status == http.StatusServiceUnavailable {
			c.Header(noRetryHeader, "1")
		}
		abortWithError(c, httpErr)
		return
	}

	resp := recommendResponse{Result: res}
	if h.historySvc != nil {
		rec, err := h.historySvc.Save(c.Request.Context(), userID, res)
		if err != nil {
			h.logger.Warn("history save failed", "user_id", userID, "error", err)
		} else {
			resp.HistoryID = rec.ID.String()
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Catalog returns the slot to garment-type mapping for the caller's wardrobe.
func (h *Handler) Catalog(c *gin.Context) {
	catalog, err := h.stylistSvc.Catalog(c.Request.Context(), userIDFrom(c, c.Query("userId")))
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"catalog": catalog})
}

// History lists saved recommendations. With sameDay=true it returns the record saved on
// this calendar day in an earlier year.
func (h *Handler) History(c *gin.Context) {
	if h.historySvc == nil {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "history_disabled", "recommendation history is disabled", nil))
		return
	}
	userID := userIDFrom(c, c.Query("userId"))

	if c.Query("sameDay") == "true" {
		rec, ok, err := h.historySvc.SameDay(c.Request.Context(), userID)
		if err != nil {
			abortWithError(c, fromDomainError(err))
			return
		}
		if !ok {
			abortWithError(c, NewHTTPError(http.StatusNotFound, history.CodeNotFound, "no recommendation saved on this day in earlier years", nil))
			return
		}
		c.JSON(http.StatusOK, rec)
		return
	}

	records, err := h.historySvc.List(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	if records == nil {
		records = []history.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"items": records})
}

// DeleteHistory removes one saved recommendation owned by the caller.
func (h *Handler) DeleteHistory(c *gin.Context) {
	if h.historySvc == nil {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "history_disabled", "recommendation history is disabled", nil))
		return
	}
	if err := h.historySvc.Delete(c.Request.Context(), userIDFrom(c, c.Query("userId")), c.Param("id")); err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// Healthz reports liveness.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func describeValidation(verrs validator.ValidationErrors) string {
	fe := verrs[0]
	switch {
	case fe.Field() == "DayIndex":
		return fmt.Sprintf("day index must be between 0 and %d", stylist.MaxDayIndex)
	case fe.Tag() == "required":
		return strings.ToLower(fe.Field()) + " is required"
	case fe.Tag() == "max":
		return fmt.Sprintf("%s must be at most %s characters", strings.ToLower(fe.Field()), fe.Param())
	default:
		return strings.ToLower(fe.Field()) + " is invalid"
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
