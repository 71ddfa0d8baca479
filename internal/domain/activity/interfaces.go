package activity

import "context"

// Repository provides persistence operations for activity entries.
type Repository interface {
	Log(ctx context.Context, tenantID string, entry *Activity) error
	Get(ctx context.Context, tenantID, id string) (*Activity, error)
	List(ctx context.Context, tenantID string, opts ListActivityOptions) ([]Activity, error)
	Like(ctx context.Context, tenantID, activityID, userID string) error
	Unlike(ctx context.Context, tenantID, activityID, userID string) error
	AddComment(ctx context.Context, tenantID string, comment *Comment) error
	ListComments(ctx context.Context, tenantID, activityID string) ([]Comment, error)
}
