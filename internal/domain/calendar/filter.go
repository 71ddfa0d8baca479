package calendar

import "strings"

// JobDurationMarker marks job events that span the job's working duration,
// as opposed to other job-related blocks.
const JobDurationMarker = "job duration"

// Scope narrows a calendar to events touching one specific entity. Each
// field only applies to events of its own kind.
type Scope struct {
	JobID     string `json:"job_id,omitempty"`
	ItemID    string `json:"item_id,omitempty"`
	VehicleID string `json:"vehicle_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}

// IsZero reports whether no scope field is set.
func (s Scope) IsZero() bool {
	return s.JobID == "" && s.ItemID == "" && s.VehicleID == "" && s.UserID == ""
}

// idFor returns the scope field that applies to events of kind k.
func (s Scope) idFor(k Kind) string {
	switch k {
	case KindJob:
		return s.JobID
	case KindItem:
		return s.ItemID
	case KindVehicle:
		return s.VehicleID
	case KindCrew:
		return s.UserID
	}
	return ""
}

// Criteria selects events by kind and by scope. Empty Kinds means every
// kind; a nil or zero Scope means no scope restriction.
type Criteria struct {
	Kinds []Kind `json:"kinds,omitempty"`
	Scope *Scope `json:"scope,omitempty"`
}

// IsEmpty reports whether the criteria restrict nothing.
func (c Criteria) IsEmpty() bool {
	return len(c.Kinds) == 0 && (c.Scope == nil || c.Scope.IsZero())
}

// Matches reports whether ev satisfies the criteria.
func (c Criteria) Matches(ev Event) bool {
	if len(c.Kinds) > 0 && !containsKind(c.Kinds, ev.ExtendedProps.Kind) {
		return false
	}
	if c.Scope != nil && !c.Scope.IsZero() {
		id := c.Scope.idFor(ev.ExtendedProps.Kind)
		if id == "" || id != ev.ExtendedProps.ScopeID {
			return false
		}
	}
	return true
}

// Filter returns the events matching c in their original order. The result
// never shares a backing array with events.
func Filter(events []Event, c Criteria) []Event {
	out := make([]Event, 0, len(events))
	if c.IsEmpty() {
		return append(out, events...)
	}
	for _, ev := range events {
		if c.Matches(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// IsJobDuration reports whether title carries the job duration marker,
// ignoring case.
func IsJobDuration(title string) bool {
	return strings.Contains(strings.ToLower(title), JobDurationMarker)
}

// CategoryView builds a category view: Filter, then job events are kept
// only when they mark a job duration. Events of other kinds are untouched.
func CategoryView(events []Event, c Criteria) []Event {
	filtered := Filter(events, c)
	out := make([]Event, 0, len(filtered))
	for _, ev := range filtered {
		if ev.ExtendedProps.Kind == KindJob && !IsJobDuration(ev.Title) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func containsKind(kinds []Kind, k Kind) bool {
	for _, candidate := range kinds {
		if candidate == k {
			return true
		}
	}
	return false
}
