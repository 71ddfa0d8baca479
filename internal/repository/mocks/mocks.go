package mocks

import (
	"context"

	"github.com/rpggio/opsboard/internal/domain/activity"
	"github.com/rpggio/opsboard/internal/domain/calendar"
	"github.com/stretchr/testify/mock"
)

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, tenantID string, entry *activity.Activity) error {
	args := m.Called(ctx, tenantID, entry)
	return args.Error(0)
}

func (m *ActivityRepository) Get(ctx context.Context, tenantID, id string) (*activity.Activity, error) {
	args := m.Called(ctx, tenantID, id)
	if entry, ok := args.Get(0).(*activity.Activity); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) List(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.Activity, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]activity.Activity); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) Like(ctx context.Context, tenantID, activityID, userID string) error {
	args := m.Called(ctx, tenantID, activityID, userID)
	return args.Error(0)
}

func (m *ActivityRepository) Unlike(ctx context.Context, tenantID, activityID, userID string) error {
	args := m.Called(ctx, tenantID, activityID, userID)
	return args.Error(0)
}

func (m *ActivityRepository) AddComment(ctx context.Context, tenantID string, comment *activity.Comment) error {
	args := m.Called(ctx, tenantID, comment)
	return args.Error(0)
}

func (m *ActivityRepository) ListComments(ctx context.Context, tenantID, activityID string) ([]activity.Comment, error) {
	args := m.Called(ctx, tenantID, activityID)
	if list, ok := args.Get(0).([]activity.Comment); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// CalendarRepository is a mock for calendar.Repository.
type CalendarRepository struct {
	mock.Mock
}

func (m *CalendarRepository) Create(ctx context.Context, tenantID string, rec *calendar.Record) error {
	args := m.Called(ctx, tenantID, rec)
	return args.Error(0)
}

func (m *CalendarRepository) Get(ctx context.Context, tenantID, id string) (*calendar.Record, error) {
	args := m.Called(ctx, tenantID, id)
	if rec, ok := args.Get(0).(*calendar.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CalendarRepository) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *CalendarRepository) List(ctx context.Context, tenantID string, opts calendar.ListRecordsOptions) ([]calendar.Record, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]calendar.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
