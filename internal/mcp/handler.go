package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rpggio/opsboard/internal/domain/activity"
	"github.com/rpggio/opsboard/internal/domain/calendar"
)

// Handler dispatches MCP commands.
type Handler struct {
	activity ActivityService
	calendar CalendarService
	methods  map[string]methodFunc
}

type methodFunc func(ctx context.Context, tenantID string, params json.RawMessage) (any, error)

// NewHandler creates a new MCP handler.
func NewHandler(activitySvc ActivityService, calendarSvc CalendarService) *Handler {
	h := &Handler{
		activity: activitySvc,
		calendar: calendarSvc,
	}
	h.methods = map[string]methodFunc{
		"get_activity_feed":      bind(h.GetActivityFeed),
		"get_recent_activity":    bind(h.GetRecentActivity),
		"log_activity":           bind(h.LogActivity),
		"announce":               bind(h.Announce),
		"like_activity":          bind(h.LikeActivity),
		"unlike_activity":        bind(h.UnlikeActivity),
		"comment_on_activity":    bind(h.CommentOnActivity),
		"list_activity_comments": bind(h.ListActivityComments),
		"list_calendar_events":   bind(h.ListCalendarEvents),
		"create_calendar_entry":  bind(h.CreateCalendarEntry),
		"delete_calendar_entry":  bind(h.DeleteCalendarEntry),
	}
	return h
}

// Handle dispatches MCP requests to domain services.
func (h *Handler) Handle(ctx context.Context, tenantID, sessionID, method string, params json.RawMessage) (any, error) {
	fn, ok := h.methods[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
	return fn(ctx, tenantID, params)
}

func bind[P any](fn func(context.Context, string, P) (any, error)) methodFunc {
	return func(ctx context.Context, tenantID string, params json.RawMessage) (any, error) {
		var req P
		if err := decodeParams(params, &req); err != nil {
			return nil, &APIError{Code: "INVALID_PARAMS", Message: err.Error()}
		}
		return fn(ctx, tenantID, req)
	}
}

// GetActivityFeed returns recent activity with inventory additions grouped.
func (h *Handler) GetActivityFeed(ctx context.Context, tenantID string, req GetActivityFeedParams) (any, error) {
	opts, err := listOptions(req.ViewerID, req.ActorID, req.Types, req.Since, req.Limit, req.Offset)
	if err != nil {
		return nil, mapError(err)
	}
	items, err := h.activity.GetFeed(ctx, tenantID, activity.FeedOptions{
		ListActivityOptions: opts,
		Window:              time.Duration(req.WindowMinutes) * time.Minute,
	})
	if err != nil {
		return nil, mapError(err)
	}
	if items == nil {
		items = []activity.FeedItem{}
	}
	return ActivityFeedResponse{Items: items}, nil
}

// GetRecentActivity returns ungrouped activity newest first.
func (h *Handler) GetRecentActivity(ctx context.Context, tenantID string, req GetRecentActivityParams) (any, error) {
	opts, err := listOptions(req.ViewerID, req.ActorID, req.Types, req.Since, req.Limit, req.Offset)
	if err != nil {
		return nil, mapError(err)
	}
	entries, err := h.activity.GetRecentActivity(ctx, tenantID, opts)
	if err != nil {
		return nil, mapError(err)
	}
	if entries == nil {
		entries = []activity.Activity{}
	}
	return ActivityListResponse{Activities: entries}, nil
}

func (h *Handler) LogActivity(ctx context.Context, tenantID string, req LogActivityParams) (any, error) {
	entry := &activity.Activity{
		ActorID:  req.ActorID,
		Type:     activity.ActivityType(req.Type),
		Metadata: req.Metadata,
	}
	if req.CreatedAt != "" {
		ts, err := parseTime(req.CreatedAt)
		if err != nil {
			return nil, mapError(err)
		}
		entry.CreatedAt = ts
	}
	if err := h.activity.LogActivity(ctx, tenantID, entry); err != nil {
		return nil, mapError(err)
	}
	return entry, nil
}

func (h *Handler) Announce(ctx context.Context, tenantID string, req AnnounceParams) (any, error) {
	entry, err := h.activity.Announce(ctx, tenantID, req.ActorID, req.Message)
	if err != nil {
		return nil, mapError(err)
	}
	return entry, nil
}

func (h *Handler) LikeActivity(ctx context.Context, tenantID string, req LikeActivityParams) (any, error) {
	if err := h.activity.Like(ctx, tenantID, req.ActivityID, req.UserID); err != nil {
		return nil, mapError(err)
	}
	return StatusResponse{Status: "liked"}, nil
}

func (h *Handler) UnlikeActivity(ctx context.Context, tenantID string, req LikeActivityParams) (any, error) {
	if err := h.activity.Unlike(ctx, tenantID, req.ActivityID, req.UserID); err != nil {
		return nil, mapError(err)
	}
	return StatusResponse{Status: "unliked"}, nil
}

func (h *Handler) CommentOnActivity(ctx context.Context, tenantID string, req CommentOnActivityParams) (any, error) {
	comment, err := h.activity.AddComment(ctx, tenantID, activity.CommentRequest{
		ActivityID: req.ActivityID,
		AuthorID:   req.AuthorID,
		Body:       req.Body,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return comment, nil
}

func (h *Handler) ListActivityComments(ctx context.Context, tenantID string, req ListActivityCommentsParams) (any, error) {
	comments, err := h.activity.ListComments(ctx, tenantID, req.ActivityID)
	if err != nil {
		return nil, mapError(err)
	}
	if comments == nil {
		comments = []activity.Comment{}
	}
	return CommentListResponse{Comments: comments}, nil
}

// ListCalendarEvents projects stored calendar entries and filters them.
func (h *Handler) ListCalendarEvents(ctx context.Context, tenantID string, req ListCalendarEventsParams) (any, error) {
	var listReq calendar.ListEventsRequest
	var err error
	if req.From != "" {
		if listReq.From, err = parseTime(req.From); err != nil {
			return nil, mapError(err)
		}
	}
	if req.To != "" {
		if listReq.To, err = parseTime(req.To); err != nil {
			return nil, mapError(err)
		}
	}
	for _, k := range req.Kinds {
		listReq.Criteria.Kinds = append(listReq.Criteria.Kinds, calendar.Kind(k))
	}
	scope := calendar.Scope{
		JobID:     req.JobID,
		ItemID:    req.ItemID,
		VehicleID: req.VehicleID,
		UserID:    req.UserID,
	}
	if !scope.IsZero() {
		listReq.Criteria.Scope = &scope
	}
	listReq.Category = req.Category
	listReq.Limit = req.Limit

	events, err := h.calendar.ListEvents(ctx, tenantID, listReq)
	if err != nil {
		return nil, mapError(err)
	}
	if events == nil {
		events = []calendar.Event{}
	}
	return CalendarEventsResponse{Events: events}, nil
}

func (h *Handler) CreateCalendarEntry(ctx context.Context, tenantID string, req CreateCalendarEntryParams) (any, error) {
	start, err := parseTime(req.Start)
	if err != nil {
		return nil, mapError(err)
	}
	createReq := calendar.CreateRequest{
		Kind:    calendar.Kind(req.Kind),
		ScopeID: req.ScopeID,
		Title:   req.Title,
		Start:   start,
		AllDay:  req.AllDay,
		JobID:   req.JobID,
	}
	if req.End != "" {
		end, err := parseTime(req.End)
		if err != nil {
			return nil, mapError(err)
		}
		createReq.End = &end
	}
	rec, err := h.calendar.CreateEntry(ctx, tenantID, createReq)
	if err != nil {
		return nil, mapError(err)
	}
	return rec, nil
}

func (h *Handler) DeleteCalendarEntry(ctx context.Context, tenantID string, req DeleteCalendarEntryParams) (any, error) {
	if err := h.calendar.DeleteEntry(ctx, tenantID, req.ID); err != nil {
		return nil, mapError(err)
	}
	return StatusResponse{Status: "deleted"}, nil
}

func listOptions(viewerID, actorID string, types []string, since string, limit, offset int) (activity.ListActivityOptions, error) {
	opts := activity.ListActivityOptions{
		ViewerID: viewerID,
		ActorID:  actorID,
		Limit:    limit,
		Offset:   offset,
	}
	for _, t := range types {
		opts.Types = append(opts.Types, activity.ActivityType(t))
	}
	if since != "" {
		ts, err := parseTime(since)
		if err != nil {
			return activity.ListActivityOptions{}, err
		}
		opts.Since = &ts
	}
	return opts, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	return json.Unmarshal(params, out)
}

func parseTime(value string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, &APIError{
			Code:         "INVALID_TIME",
			Message:      fmt.Sprintf("invalid timestamp %q", value),
			RecoveryHint: "Use RFC3339, e.g. 2025-06-02T08:00:00Z",
		}
	}
	return ts, nil
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
