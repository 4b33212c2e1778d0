package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"blog_api/internal/logger"
	"blog_api/internal/models"
	"blog_api/internal/repository"
)

// ActivityService records and lists per-user activity events.
type ActivityService struct {
	events repository.Activity
	log    *logger.Logger
}

func NewActivityService(events repository.Activity, log *logger.Logger) *ActivityService {
	return &ActivityService{events: events, log: log}
}

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f ActivityFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	return from, to, normalizeEventType(f.Type), nil
}

// List returns userID's own events; the owner scope is applied in SQL.
func (s *ActivityService) List(ctx context.Context, userID int, f ActivityFilter) ([]models.ActivityEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.events.List(ctx, userID, from, to, typ)
}

// Record appends an event best-effort: a failed append is logged and never
// fails the request that produced it. Safe on a nil receiver so services
// under test can skip recording entirely.
func (s *ActivityService) Record(ctx context.Context, e models.ActivityEvent) {
	if s == nil || s.events == nil {
		return
	}
	if err := s.events.Append(ctx, e); err != nil && s.log != nil {
		s.log.Errorw("activity_append_failed", "err", err, "type", e.Type, "user_id", e.UserID)
	}
}
