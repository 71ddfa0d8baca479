package integration_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/opsboard/internal/domain/activity"
	"github.com/rpggio/opsboard/internal/domain/calendar"
	"github.com/rpggio/opsboard/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db           *sqlite.DB
	activityRepo *sqlite.ActivityRepository
	calendarRepo *sqlite.CalendarRepository

	activitySvc *activity.Service
	calendarSvc *calendar.Service
}

func newTestEnv(t *testing.T, opts ...activity.Option) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	activityRepo := sqlite.NewActivityRepository(db)
	calendarRepo := sqlite.NewCalendarRepository(db)

	return &testEnv{
		db:           db,
		activityRepo: activityRepo,
		calendarRepo: calendarRepo,
		activitySvc:  activity.NewService(activityRepo, nil, opts...),
		calendarSvc:  calendar.NewService(calendarRepo, nil),
	}
}

func (e *testEnv) log(t *testing.T, tenant, actor string, typ activity.ActivityType, at time.Time) *activity.Activity {
	t.Helper()
	entry := &activity.Activity{ActorID: actor, Type: typ, CreatedAt: at}
	require.NoError(t, e.activitySvc.LogActivity(context.Background(), tenant, entry))
	return entry
}

func TestIntegration_FeedMatchesInMemoryGrouping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	// Interleaved actors and types.
	env.log(t, "t1", "alice", activity.TypeInventoryItemCreated, base)
	env.log(t, "t1", "alice", activity.TypeInventoryItemCreated, base.Add(10*time.Minute))
	env.log(t, "t1", "bob", activity.TypeInventoryItemCreated, base.Add(20*time.Minute))
	env.log(t, "t1", "bob", activity.TypeInventoryGroupCreated, base.Add(25*time.Minute))
	env.log(t, "t1", "alice", activity.TypeInventoryItemDeleted, base.Add(30*time.Minute))
	env.log(t, "t1", "alice", activity.TypeInventoryGroupCreated, base.Add(40*time.Minute))
	env.log(t, "t1", "alice", activity.TypeInventoryGroupCreated, base.Add(50*time.Minute))

	recent, err := env.activitySvc.GetRecentActivity(ctx, "t1", activity.ListActivityOptions{})
	require.NoError(t, err)
	require.Len(t, recent, 7)
	for i := 1; i < len(recent); i++ {
		require.False(t, recent[i].CreatedAt.After(recent[i-1].CreatedAt))
	}

	feed, err := env.activitySvc.GetFeed(ctx, "t1", activity.FeedOptions{})
	require.NoError(t, err)
	require.Equal(t, activity.Group(recent), feed)

	require.Len(t, feed, 4)
	require.Equal(t, activity.CompositionGroups, feed[0].Group.Composition)
	require.Equal(t, activity.FeedItemActivity, feed[1].Kind)
	require.Equal(t, activity.CompositionMixed, feed[2].Group.Composition)
	require.Equal(t, activity.CompositionItems, feed[3].Group.Composition)

	total := 0
	for _, item := range feed {
		total += item.MemberCount()
	}
	require.Equal(t, len(recent), total)
}

func TestIntegration_ConfiguredWindow(t *testing.T) {
	env := newTestEnv(t, activity.WithGroupWindow(5*time.Minute))
	ctx := context.Background()
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	env.log(t, "t1", "alice", activity.TypeInventoryItemCreated, base)
	env.log(t, "t1", "alice", activity.TypeInventoryItemCreated, base.Add(10*time.Minute))

	feed, err := env.activitySvc.GetFeed(ctx, "t1", activity.FeedOptions{})
	require.NoError(t, err)
	require.Len(t, feed, 2)

	feed, err = env.activitySvc.GetFeed(ctx, "t1", activity.FeedOptions{Window: time.Hour})
	require.NoError(t, err)
	require.Len(t, feed, 1)
}

func TestIntegration_CalendarRangeAndScope(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	day := func(d, h int) time.Time { return time.Date(2025, 6, d, h, 0, 0, 0, time.UTC) }
	title := func(s string) *string { return &s }
	end := func(ts time.Time) *time.Time { return &ts }

	mustCreate := func(req calendar.CreateRequest) *calendar.Record {
		rec, err := env.calendarSvc.CreateEntry(ctx, "t1", req)
		require.NoError(t, err)
		return rec
	}

	long := mustCreate(calendar.CreateRequest{Kind: calendar.KindVehicle, ScopeID: "van-1", Start: day(1, 8), End: end(day(20, 8))})
	mustCreate(calendar.CreateRequest{Kind: calendar.KindVehicle, ScopeID: "van-2", Start: day(25, 8)})
	job := mustCreate(calendar.CreateRequest{Kind: calendar.KindJob, ScopeID: "smith", Title: title("Smith Job Duration"), Start: day(10, 8), End: end(day(12, 20))})
	require.NotNil(t, job.JobID)
	require.Equal(t, "smith", *job.JobID)

	events, err := env.calendarSvc.ListEvents(ctx, "t1", calendar.ListEventsRequest{From: day(9, 0), To: day(13, 0)})
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, long.ID, events[0].ID)
	require.Equal(t, job.ID, events[1].ID)
	require.Equal(t, "Smith Job Duration", events[1].Title)

	events, err = env.calendarSvc.ListEvents(ctx, "t1", calendar.ListEventsRequest{
		Criteria: calendar.Criteria{Scope: &calendar.Scope{VehicleID: "van-2"}},
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "van-2", events[0].ExtendedProps.ScopeID)

	_, err = env.calendarSvc.ListEvents(ctx, "t1", calendar.ListEventsRequest{From: day(13, 0), To: day(9, 0)})
	require.ErrorIs(t, err, calendar.ErrInvalidRange)

	events, err = env.calendarSvc.ListEvents(ctx, "t2", calendar.ListEventsRequest{})
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestIntegration_CalendarLimitWithScope(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	start := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	for i, van := range []string{"van-1", "van-2", "van-3"} {
		_, err := env.calendarSvc.CreateEntry(ctx, "t1", calendar.CreateRequest{
			Kind:    calendar.KindVehicle,
			ScopeID: van,
			Start:   start.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	events, err := env.calendarSvc.ListEvents(ctx, "t1", calendar.ListEventsRequest{
		Criteria: calendar.Criteria{Scope: &calendar.Scope{VehicleID: "van-3"}},
		Limit:    1,
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "van-3", events[0].ExtendedProps.ScopeID)

	events, err = env.calendarSvc.ListEvents(ctx, "t1", calendar.ListEventsRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "van-1", events[0].ExtendedProps.ScopeID)
}
