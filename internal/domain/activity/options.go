package activity

import "time"

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	ActorID string
	Types   []ActivityType
	Since   *time.Time
	// ViewerID decides ViewerHasLiked on each returned entry.
	ViewerID string
	Limit    int
	Offset   int
}

// FeedOptions controls a grouped feed read.
type FeedOptions struct {
	ListActivityOptions
	// Window overrides the service's grouping window when positive.
	Window time.Duration
}
