package calendar

import "time"

// Kind identifies what a calendar entry schedules.
type Kind string

const (
	KindJob     Kind = "job"
	KindItem    Kind = "item"
	KindVehicle Kind = "vehicle"
	KindCrew    Kind = "crew"
)

// Kinds lists every calendar kind in display order.
var Kinds = []Kind{KindJob, KindItem, KindVehicle, KindCrew}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindJob, KindItem, KindVehicle, KindCrew:
		return true
	}
	return false
}

// Record is a stored scheduling fact: a job's duration, an equipment
// reservation, a crew assignment or a vehicle reservation. ScopeID references
// the job, item, vehicle or crew member the record belongs to.
type Record struct {
	ID       string     `json:"id"`
	TenantID string     `json:"tenant_id"`
	Kind     Kind       `json:"kind"`
	ScopeID  string     `json:"scope_id"`
	Title    *string    `json:"title,omitempty"`
	Start    time.Time  `json:"start"`
	End      *time.Time `json:"end,omitempty"`
	AllDay   bool       `json:"all_day"`
	// JobID links reservations and assignments to the job they serve.
	JobID     *string   `json:"job_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ExtendedProps carries the fields a calendar widget passes back on clicks.
type ExtendedProps struct {
	Kind    Kind   `json:"kind"`
	ScopeID string `json:"scope_id"`
	JobID   string `json:"job_id,omitempty"`
}

// Event is the uniform shape handed to a calendar renderer.
type Event struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Start         time.Time     `json:"start"`
	End           *time.Time    `json:"end,omitempty"`
	AllDay        bool          `json:"all_day"`
	ExtendedProps ExtendedProps `json:"extended_props"`
}
