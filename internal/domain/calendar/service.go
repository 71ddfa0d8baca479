package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/opsboard/internal/repository"
)

// Service handles calendar operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new calendar service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines calendar entry creation inputs.
type CreateRequest struct {
	Kind    Kind
	ScopeID string
	Title   *string
	Start   time.Time
	End     *time.Time
	AllDay  bool
	JobID   *string
}

// CreateEntry validates and stores a calendar record.
func (s *Service) CreateEntry(ctx context.Context, tenantID string, req CreateRequest) (*Record, error) {
	if !req.Kind.Valid() {
		return nil, ErrInvalidKind
	}
	if strings.TrimSpace(req.ScopeID) == "" || req.Start.IsZero() {
		return nil, ErrInvalidInput
	}
	if req.End != nil && req.End.Before(req.Start) {
		return nil, ErrInvalidRange
	}

	rec := &Record{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Kind:      req.Kind,
		ScopeID:   req.ScopeID,
		Title:     req.Title,
		Start:     req.Start,
		End:       req.End,
		AllDay:    req.AllDay,
		JobID:     req.JobID,
		CreatedAt: time.Now(),
	}
	if req.Kind == KindJob && rec.JobID == nil {
		scope := req.ScopeID
		rec.JobID = &scope
	}

	if err := s.repo.Create(ctx, tenantID, rec); err != nil {
		return nil, fmt.Errorf("creating calendar entry: %w", err)
	}
	return rec, nil
}

// GetEntry fetches a calendar record by ID.
func (s *Service) GetEntry(ctx context.Context, tenantID, id string) (*Record, error) {
	rec, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("getting calendar entry: %w", err)
	}
	return rec, nil
}

// DeleteEntry removes a calendar record.
func (s *Service) DeleteEntry(ctx context.Context, tenantID, id string) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("deleting calendar entry: %w", err)
	}
	return nil
}

// ListEventsRequest selects the events to render.
type ListEventsRequest struct {
	From     time.Time
	To       time.Time
	Criteria Criteria
	// Category applies the category view rules on top of Criteria.
	Category bool
	Limit    int
}

// ListEvents loads records overlapping the requested range, projects them
// and applies the filter or the category view.
func (s *Service) ListEvents(ctx context.Context, tenantID string, req ListEventsRequest) ([]Event, error) {
	for _, k := range req.Criteria.Kinds {
		if !k.Valid() {
			return nil, ErrInvalidKind
		}
	}
	if !req.From.IsZero() && !req.To.IsZero() && req.To.Before(req.From) {
		return nil, ErrInvalidRange
	}

	opts := ListRecordsOptions{
		From:  req.From,
		To:    req.To,
		Kinds: req.Criteria.Kinds,
	}
	// Kinds are filtered in SQL; scope and category rules run in memory, so
	// the row limit can only be pushed down when neither applies.
	scoped := req.Criteria.Scope != nil && !req.Criteria.Scope.IsZero()
	if !scoped && !req.Category {
		opts.Limit = req.Limit
	}

	records, err := s.repo.List(ctx, tenantID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing calendar records: %w", err)
	}

	events := Project(records)
	if req.Category {
		events = CategoryView(events, req.Criteria)
	} else {
		events = Filter(events, req.Criteria)
	}
	if req.Limit > 0 && len(events) > req.Limit {
		events = events[:req.Limit]
	}

	if s.logger != nil {
		s.logger.Debug("calendar events listed", "tenant_id", tenantID, "records", len(records), "events", len(events))
	}
	return events, nil
}
