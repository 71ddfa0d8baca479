package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/opsboard/internal/domain/activity"
	"github.com/rpggio/opsboard/internal/domain/calendar"
	"github.com/rpggio/opsboard/internal/repository"
)

// ErrUnknownMethod is returned by Handle for methods with no tool.
var ErrUnknownMethod = errors.New("unknown method")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, activity.ErrActivityNotFound):
		return &APIError{Code: "ACTIVITY_NOT_FOUND", Message: "activity not found", RecoveryHint: "Check the activity id from get_activity_feed"}
	case errors.Is(err, activity.ErrInvalidType):
		return &APIError{Code: "INVALID_ACTIVITY_TYPE", Message: "unknown activity type", RecoveryHint: "See opsboard://docs/activity-types"}
	case errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid activity input", RecoveryHint: "actor/user ids and text fields must be non-empty"}
	case errors.Is(err, calendar.ErrEntryNotFound):
		return &APIError{Code: "CALENDAR_ENTRY_NOT_FOUND", Message: "calendar entry not found", RecoveryHint: "Check the entry id"}
	case errors.Is(err, calendar.ErrInvalidKind):
		return &APIError{Code: "INVALID_KIND", Message: "unknown calendar kind", RecoveryHint: "Use job, item, vehicle or crew"}
	case errors.Is(err, calendar.ErrInvalidRange):
		return &APIError{Code: "INVALID_RANGE", Message: "range ends before it starts"}
	case errors.Is(err, calendar.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid calendar input", RecoveryHint: "scope_id and start are required"}
	case errors.Is(err, repository.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "input rejected by storage", RecoveryHint: "The id may already exist; retry without it"}
	default:
		return nil
	}
}
