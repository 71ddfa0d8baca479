package mcp

import (
	"github.com/rpggio/opsboard/internal/domain/activity"
	"github.com/rpggio/opsboard/internal/domain/calendar"
)

type GetActivityFeedParams struct {
	ViewerID      string   `json:"viewer_id,omitempty" jsonschema:"user whose likes set viewer_has_liked"`
	ActorID       string   `json:"actor_id,omitempty" jsonschema:"only activity caused by this user"`
	Types         []string `json:"types,omitempty" jsonschema:"activity types to include"`
	Since         string   `json:"since,omitempty" jsonschema:"RFC3339 lower bound on created_at"`
	Limit         int      `json:"limit,omitempty" jsonschema:"maximum number of activities read before grouping"`
	Offset        int      `json:"offset,omitempty" jsonschema:"offset for pagination"`
	WindowMinutes int      `json:"window_minutes,omitempty" jsonschema:"grouping window override in minutes"`
}

type GetRecentActivityParams struct {
	ViewerID string   `json:"viewer_id,omitempty" jsonschema:"user whose likes set viewer_has_liked"`
	ActorID  string   `json:"actor_id,omitempty" jsonschema:"only activity caused by this user"`
	Types    []string `json:"types,omitempty" jsonschema:"activity types to include"`
	Since    string   `json:"since,omitempty" jsonschema:"RFC3339 lower bound on created_at"`
	Limit    int      `json:"limit,omitempty" jsonschema:"maximum number of results"`
	Offset   int      `json:"offset,omitempty" jsonschema:"offset for pagination"`
}

type LogActivityParams struct {
	ActorID   string         `json:"actor_id" jsonschema:"user who caused the event"`
	Type      string         `json:"type" jsonschema:"activity type, e.g. inventory_item_created"`
	Metadata  map[string]any `json:"metadata,omitempty" jsonschema:"type specific references such as item_id or job_id"`
	CreatedAt string         `json:"created_at,omitempty" jsonschema:"RFC3339 event time, defaults to now"`
}

type AnnounceParams struct {
	ActorID string `json:"actor_id" jsonschema:"user posting the announcement"`
	Message string `json:"message" jsonschema:"announcement text"`
}

type LikeActivityParams struct {
	ActivityID string `json:"activity_id" jsonschema:"activity to like or unlike"`
	UserID     string `json:"user_id" jsonschema:"user doing the liking"`
}

type CommentOnActivityParams struct {
	ActivityID string `json:"activity_id" jsonschema:"activity to comment on"`
	AuthorID   string `json:"author_id" jsonschema:"user writing the comment"`
	Body       string `json:"body" jsonschema:"comment text"`
}

type ListActivityCommentsParams struct {
	ActivityID string `json:"activity_id" jsonschema:"activity whose comments to list"`
}

type ListCalendarEventsParams struct {
	From      string   `json:"from,omitempty" jsonschema:"RFC3339 start of the visible range"`
	To        string   `json:"to,omitempty" jsonschema:"RFC3339 end of the visible range (exclusive)"`
	Kinds     []string `json:"kinds,omitempty" jsonschema:"event kinds to include: job, item, vehicle, crew"`
	JobID     string   `json:"job_id,omitempty" jsonschema:"narrow job events to this job"`
	ItemID    string   `json:"item_id,omitempty" jsonschema:"narrow item events to this item"`
	VehicleID string   `json:"vehicle_id,omitempty" jsonschema:"narrow vehicle events to this vehicle"`
	UserID    string   `json:"user_id,omitempty" jsonschema:"narrow crew events to this crew member"`
	Category  bool     `json:"category,omitempty" jsonschema:"build the category view (job events limited to job durations)"`
	Limit     int      `json:"limit,omitempty" jsonschema:"maximum number of stored entries to read"`
}

type CreateCalendarEntryParams struct {
	Kind    string  `json:"kind" jsonschema:"job, item, vehicle or crew"`
	ScopeID string  `json:"scope_id" jsonschema:"id of the job, item, vehicle or crew member"`
	Title   *string `json:"title,omitempty" jsonschema:"display title"`
	Start   string  `json:"start" jsonschema:"RFC3339 start time"`
	End     string  `json:"end,omitempty" jsonschema:"RFC3339 end time"`
	AllDay  bool    `json:"all_day,omitempty" jsonschema:"entry spans whole days"`
	JobID   *string `json:"job_id,omitempty" jsonschema:"job this reservation or assignment serves"`
}

type DeleteCalendarEntryParams struct {
	ID string `json:"id" jsonschema:"calendar entry id"`
}

type ActivityFeedResponse struct {
	Items []activity.FeedItem `json:"items"`
}

type ActivityListResponse struct {
	Activities []activity.Activity `json:"activities"`
}

type CommentListResponse struct {
	Comments []activity.Comment `json:"comments"`
}

type CalendarEventsResponse struct {
	Events []calendar.Event `json:"events"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
