package calendar

// Project maps records to events one to one, in input order.
func Project(records []Record) []Event {
	events := make([]Event, 0, len(records))
	for _, rec := range records {
		events = append(events, projectRecord(rec))
	}
	return events
}

func projectRecord(rec Record) Event {
	ev := Event{
		ID:     rec.ID,
		Start:  rec.Start,
		AllDay: rec.AllDay,
		ExtendedProps: ExtendedProps{
			Kind:    rec.Kind,
			ScopeID: rec.ScopeID,
		},
	}
	if rec.Title != nil {
		ev.Title = *rec.Title
	}
	if rec.End != nil {
		end := *rec.End
		ev.End = &end
	}
	if rec.JobID != nil {
		ev.ExtendedProps.JobID = *rec.JobID
	}
	return ev
}
