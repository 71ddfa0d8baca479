package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rpggio/opsboard/internal/repository"
)

// Service handles activity feed operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
	window time.Duration
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithGroupWindow sets the grouping window used by GetFeed.
func WithGroupWindow(window time.Duration) Option {
	return func(s *Service) {
		if window > 0 {
			s.window = window
		}
	}
}

// WithClock replaces time.Now for timestamps assigned by the service.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: logger,
		window: DefaultGroupWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LogActivity validates and stores an activity entry, assigning an id and
// the current timestamp if missing.
func (s *Service) LogActivity(ctx context.Context, tenantID string, entry *Activity) error {
	if entry == nil || strings.TrimSpace(entry.ActorID) == "" {
		return ErrInvalidInput
	}
	if !entry.Type.Valid() {
		return ErrInvalidType
	}
	if entry.ID == "" {
		entry.ID = ulid.Make().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	if err := s.repo.Log(ctx, tenantID, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	s.debug("activity logged", "tenant_id", tenantID, "id", entry.ID, "type", entry.Type)
	return nil
}

// Announce posts an announcement to the company feed.
func (s *Service) Announce(ctx context.Context, tenantID, actorID, message string) (*Activity, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrInvalidInput
	}
	entry := &Activity{
		ActorID:  actorID,
		Type:     TypeAnnouncement,
		Metadata: map[string]any{MetaMessage: message},
	}
	if err := s.LogActivity(ctx, tenantID, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetRecentActivity lists activity entries newest first.
func (s *Service) GetRecentActivity(ctx context.Context, tenantID string, opts ListActivityOptions) ([]Activity, error) {
	for _, t := range opts.Types {
		if !t.Valid() {
			return nil, ErrInvalidType
		}
	}
	entries, err := s.repo.List(ctx, tenantID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	return entries, nil
}

// GetFeed returns recent activity with inventory additions grouped.
func (s *Service) GetFeed(ctx context.Context, tenantID string, opts FeedOptions) ([]FeedItem, error) {
	entries, err := s.GetRecentActivity(ctx, tenantID, opts.ListActivityOptions)
	if err != nil {
		return nil, err
	}
	window := s.window
	if opts.Window > 0 {
		window = opts.Window
	}
	items := GroupWithWindow(entries, window)
	s.debug("feed built", "tenant_id", tenantID, "entries", len(entries), "items", len(items))
	return items, nil
}

// Like records that userID liked the activity. Liking twice is a no-op.
func (s *Service) Like(ctx context.Context, tenantID, activityID, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Like(ctx, tenantID, activityID, userID); err != nil {
		return s.mapErr("liking activity", err)
	}
	return nil
}

// Unlike removes userID's like from the activity, if present.
func (s *Service) Unlike(ctx context.Context, tenantID, activityID, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Unlike(ctx, tenantID, activityID, userID); err != nil {
		return s.mapErr("unliking activity", err)
	}
	return nil
}

// CommentRequest defines comment creation inputs.
type CommentRequest struct {
	ActivityID string
	AuthorID   string
	Body       string
}

// AddComment attaches a comment to an activity.
func (s *Service) AddComment(ctx context.Context, tenantID string, req CommentRequest) (*Comment, error) {
	if strings.TrimSpace(req.AuthorID) == "" || strings.TrimSpace(req.Body) == "" {
		return nil, ErrInvalidInput
	}
	comment := &Comment{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		ActivityID: req.ActivityID,
		AuthorID:   req.AuthorID,
		Body:       strings.TrimSpace(req.Body),
		CreatedAt:  s.now(),
	}
	if err := s.repo.AddComment(ctx, tenantID, comment); err != nil {
		return nil, s.mapErr("adding comment", err)
	}
	return comment, nil
}

// ListComments returns an activity's comments oldest first.
func (s *Service) ListComments(ctx context.Context, tenantID, activityID string) ([]Comment, error) {
	if _, err := s.repo.Get(ctx, tenantID, activityID); err != nil {
		return nil, s.mapErr("getting activity", err)
	}
	comments, err := s.repo.ListComments(ctx, tenantID, activityID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}

func (s *Service) mapErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrActivityNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Service) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
