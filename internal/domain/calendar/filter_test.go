package calendar_test

import (
	"testing"
	"time"

	"github.com/rpggio/opsboard/internal/domain/calendar"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func sampleEvents() []calendar.Event {
	return calendar.Project([]calendar.Record{
		{ID: "j1", Kind: calendar.KindJob, ScopeID: "job-1", Title: strPtr("Program - Job duration"), Start: day},
		{ID: "j2", Kind: calendar.KindJob, ScopeID: "job-2", Title: strPtr("Program - equipment block"), Start: day},
		{ID: "i1", Kind: calendar.KindItem, ScopeID: "X", Title: strPtr("Generator"), Start: day, JobID: strPtr("job-1")},
		{ID: "v1", Kind: calendar.KindVehicle, ScopeID: "van-1", Start: day},
		{ID: "c1", Kind: calendar.KindCrew, ScopeID: "X", Title: strPtr("Dana"), Start: day},
	})
}

func ids(events []calendar.Event) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.ID)
	}
	return out
}

func TestProject_OneToOne(t *testing.T) {
	end := day.Add(4 * time.Hour)
	records := []calendar.Record{
		{ID: "b", Kind: calendar.KindVehicle, ScopeID: "van", Start: day, End: &end, AllDay: true},
		{ID: "a", Kind: calendar.KindItem, ScopeID: "item", Title: strPtr("Lift"), Start: day, JobID: strPtr("job-9")},
	}

	events := calendar.Project(records)
	require.Len(t, events, 2)
	require.Equal(t, "b", events[0].ID)
	require.Equal(t, "", events[0].Title)
	require.Equal(t, end, *events[0].End)
	require.True(t, events[0].AllDay)
	require.Equal(t, calendar.ExtendedProps{Kind: calendar.KindVehicle, ScopeID: "van"}, events[0].ExtendedProps)
	require.Equal(t, "a", events[1].ID)
	require.Equal(t, "Lift", events[1].Title)
	require.Nil(t, events[1].End)
	require.Equal(t, "job-9", events[1].ExtendedProps.JobID)
}

func TestProject_EmptyAndRepeatable(t *testing.T) {
	require.Empty(t, calendar.Project(nil))

	records := []calendar.Record{{ID: "x", Kind: calendar.KindCrew, ScopeID: "u1", Start: day}}
	require.Equal(t, calendar.Project(records), calendar.Project(records))
}

func TestFilter_Identity(t *testing.T) {
	events := sampleEvents()
	require.Equal(t, events, calendar.Filter(events, calendar.Criteria{}))
	require.Equal(t, events, calendar.Filter(events, calendar.Criteria{Scope: &calendar.Scope{}}))
	require.Empty(t, calendar.Filter(nil, calendar.Criteria{Kinds: []calendar.Kind{calendar.KindJob}}))
}

func TestFilter_Kinds(t *testing.T) {
	events := sampleEvents()

	jobs := calendar.Filter(events, calendar.Criteria{Kinds: []calendar.Kind{calendar.KindJob}})
	require.Equal(t, []string{"j1", "j2"}, ids(jobs))
	for _, ev := range jobs {
		require.Equal(t, calendar.KindJob, ev.ExtendedProps.Kind)
	}

	mixed := calendar.Filter(events, calendar.Criteria{Kinds: []calendar.Kind{calendar.KindCrew, calendar.KindVehicle}})
	require.Equal(t, []string{"v1", "c1"}, ids(mixed))
}

func TestFilter_ScopeCrossKindIsolation(t *testing.T) {
	events := sampleEvents()

	byItem := calendar.Filter(events, calendar.Criteria{Scope: &calendar.Scope{ItemID: "X"}})
	require.Equal(t, []string{"i1"}, ids(byItem))

	byUser := calendar.Filter(events, calendar.Criteria{Scope: &calendar.Scope{UserID: "X"}})
	require.Equal(t, []string{"c1"}, ids(byUser))

	byJob := calendar.Filter(events, calendar.Criteria{Scope: &calendar.Scope{JobID: "job-2"}})
	require.Equal(t, []string{"j2"}, ids(byJob))
}

func TestFilter_KindsAndScopeCombine(t *testing.T) {
	events := sampleEvents()

	got := calendar.Filter(events, calendar.Criteria{
		Kinds: []calendar.Kind{calendar.KindCrew},
		Scope: &calendar.Scope{ItemID: "X", UserID: "X"},
	})
	require.Equal(t, []string{"c1"}, ids(got))
}

func TestIsJobDuration(t *testing.T) {
	require.True(t, calendar.IsJobDuration("Program - Job duration"))
	require.True(t, calendar.IsJobDuration("JOB DURATION"))
	require.False(t, calendar.IsJobDuration("Program - equipment block"))
	require.False(t, calendar.IsJobDuration(""))
}

func TestCategoryView_JobDurationRule(t *testing.T) {
	events := sampleEvents()

	jobs := calendar.CategoryView(events, calendar.Criteria{Kinds: []calendar.Kind{calendar.KindJob}})
	require.Equal(t, []string{"j1"}, ids(jobs))

	all := calendar.CategoryView(events, calendar.Criteria{})
	require.Equal(t, []string{"j1", "i1", "v1", "c1"}, ids(all))

	// The plain filter keeps both job events.
	require.Len(t, calendar.Filter(events, calendar.Criteria{Kinds: []calendar.Kind{calendar.KindJob}}), 2)
}

func TestKind_Valid(t *testing.T) {
	for _, k := range calendar.Kinds {
		require.True(t, k.Valid())
	}
	require.False(t, calendar.Kind("boat").Valid())
}

func TestFilter_EmptyCriteriaCopies(t *testing.T) {
	events := sampleEvents()
	out := calendar.Filter(events, calendar.Criteria{})
	require.Equal(t, ids(events), ids(out))

	out[0].Title = "changed"
	require.Equal(t, "Program - Job duration", events[0].Title)
}
