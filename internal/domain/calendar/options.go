package calendar

import "time"

// ListRecordsOptions restricts which stored records are loaded. A record is
// returned when it overlaps [From, To); zero bounds are open.
type ListRecordsOptions struct {
	From  time.Time
	To    time.Time
	Kinds []Kind
	Limit int
}
