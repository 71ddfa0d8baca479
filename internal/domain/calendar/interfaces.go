package calendar

import "context"

// Repository provides persistence for calendar records.
type Repository interface {
	Create(ctx context.Context, tenantID string, rec *Record) error
	Get(ctx context.Context, tenantID, id string) (*Record, error)
	Delete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string, opts ListRecordsOptions) ([]Record, error)
}
