package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeInventoryItemCreated  ActivityType = "inventory_item_created"
	TypeInventoryItemDeleted  ActivityType = "inventory_item_deleted"
	TypeInventoryGroupCreated ActivityType = "inventory_group_created"
	TypeInventoryGroupDeleted ActivityType = "inventory_group_deleted"
	TypeVehicleAdded          ActivityType = "vehicle_added"
	TypeVehicleRemoved        ActivityType = "vehicle_removed"
	TypeCustomerAdded         ActivityType = "customer_added"
	TypeCustomerRemoved       ActivityType = "customer_removed"
	TypeCrewAdded             ActivityType = "crew_added"
	TypeCrewRemoved           ActivityType = "crew_removed"
	TypeJobCreated            ActivityType = "job_created"
	TypeJobStatusChanged      ActivityType = "job_status_changed"
	TypeJobDeleted            ActivityType = "job_deleted"
	TypeAnnouncement          ActivityType = "announcement"
)

var knownTypes = map[ActivityType]struct{}{
	TypeInventoryItemCreated:  {},
	TypeInventoryItemDeleted:  {},
	TypeInventoryGroupCreated: {},
	TypeInventoryGroupDeleted: {},
	TypeVehicleAdded:          {},
	TypeVehicleRemoved:        {},
	TypeCustomerAdded:         {},
	TypeCustomerRemoved:       {},
	TypeCrewAdded:             {},
	TypeCrewRemoved:           {},
	TypeJobCreated:            {},
	TypeJobStatusChanged:      {},
	TypeJobDeleted:            {},
	TypeAnnouncement:          {},
}

// Valid reports whether t is one of the known activity types.
func (t ActivityType) Valid() bool {
	_, ok := knownTypes[t]
	return ok
}

// IsInventoryAddition reports whether t can take part in a grouped run.
func (t ActivityType) IsInventoryAddition() bool {
	return t == TypeInventoryItemCreated || t == TypeInventoryGroupCreated
}

// Common metadata keys.
const (
	MetaItemID     = "item_id"
	MetaGroupID    = "group_id"
	MetaJobID      = "job_id"
	MetaVehicleID  = "vehicle_id"
	MetaCustomerID = "customer_id"
	MetaCrewID     = "crew_id"
	MetaName       = "name"
	MetaStatus     = "status"
	MetaMessage    = "message"
)

// Activity is one business event in a company's feed.
type Activity struct {
	ID             string         `json:"id"`
	TenantID       string         `json:"tenant_id"`
	ActorID        string         `json:"actor_id"`
	Type           ActivityType   `json:"type"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	LikeCount      int            `json:"like_count"`
	CommentCount   int            `json:"comment_count"`
	ViewerHasLiked bool           `json:"viewer_has_liked"`
}

// MetadataString returns the string value stored under key, or "" when the
// key is missing or holds a non-string value.
func (a Activity) MetadataString(key string) string {
	if a.Metadata == nil {
		return ""
	}
	v, _ := a.Metadata[key].(string)
	return v
}

// Comment is a reply attached to an activity.
type Comment struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	ActivityID string    `json:"activity_id"`
	AuthorID   string    `json:"author_id"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
