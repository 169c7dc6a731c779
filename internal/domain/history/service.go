package history

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ggyyuubb/wearther/internal/domain/stylist"
	apperrors "github.com/ggyyuubb/wearther/pkg/errors"
	"github.com/ggyyuubb/wearther/pkg/util"
)

// CodeNotFound is returned when a record does not exist for the caller.
const CodeNotFound = "not_found"

const defaultListLimit = 50

// Service exposes recommendation history.
type Service interface {
	Save(ctx context.Context, userID string, res stylist.Result) (Record, error)
	List(ctx context.Context, userID string) ([]Record, error)
	// SameDay returns the newest record saved on today's month and day in an earlier year.
	SameDay(ctx context.Context, userID string) (Record, bool, error)
	Delete(ctx context.Context, userID, id string) error
}

type service struct {
	cfg    Config
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService is a wire provider for the history domain.
func NewService(cfg Config, repo Repository, logger *slog.Logger) Service {
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = defaultListLimit
	}
	return &service{
		cfg:    cfg,
		repo:   repo,
		logger: logger.With("component", "history.service"),
		now:    util.NowUTC,
	}
}

func (s *service) Save(ctx context.Context, userID string, res stylist.Result) (Record, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Record{}, apperrors.Wrap("invalid_input", "user id cannot be empty", nil)
	}
	rec := Record{
		ID:        uuid.New(),
		UserID:    userID,
		Location:  res.Weather.Location,
		DayIndex:  res.Weather.DayIndex,
		Weather:   res.Weather.Day,
		Candidate: res.Candidate,
		Outfit:    res.Outfit,
		Score:     res.Score,
		Comment:   res.Comment,
		Features:  res.Features,
		CreatedAt: s.now(),
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return Record{}, apperrors.Wrap("history_error", "failed to save recommendation", err)
	}
	s.logger.Info("recommendation saved", "user_id", userID, "id", rec.ID)
	return rec, nil
}

func (s *service) List(ctx context.Context, userID string) ([]Record, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperrors.Wrap("invalid_input", "user id cannot be empty", nil)
	}
	records, err := s.repo.ListByUser(ctx, userID, s.cfg.ListLimit)
	if err != nil {
		return nil, apperrors.Wrap("history_error", "failed to list recommendations", err)
	}
	return records, nil
}

func (s *service) SameDay(ctx context.Context, userID string) (Record, bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Record{}, false, apperrors.Wrap("invalid_input", "user id cannot be empty", nil)
	}
	today := s.now()
	records, err := s.repo.ListSameDay(ctx, userID, today.Month(), today.Day(), today.Year())
	if err != nil {
		return Record{}, false, apperrors.Wrap("history_error", "failed to list same-day recommendations", err)
	}
	for _, rec := range records {
		if rec.CreatedAt.Year() < today.Year() && util.SameMonthDay(rec.CreatedAt, today) {
			return rec, true, nil
		}
	}
	return Record{}, false, nil
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return apperrors.Wrap("invalid_input", "user id cannot be empty", nil)
	}
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return apperrors.Wrap("invalid_input", "history id must be a uuid", err)
	}
	ok, err := s.repo.Delete(ctx, userID, parsed)
	if err != nil {
		return apperrors.Wrap("history_error", "failed to delete recommendation", err)
	}
	if !ok {
		return apperrors.Wrap(CodeNotFound, "recommendation not found", nil)
	}
	return nil
}
