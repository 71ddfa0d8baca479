package mcp

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools wires every handler method into the SDK server.
func registerTools(server *sdkmcp.Server, h *Handler) {
	// Activity feed
	addTool(server, "get_activity_feed",
		"Get the team activity feed newest first. Bursts of inventory items or groups added by one user within the grouping window are collapsed into a single grouped entry.",
		h.GetActivityFeed)
	addTool(server, "get_recent_activity",
		"List raw activity newest first without grouping, optionally filtered by actor, type and since.",
		h.GetRecentActivity)
	addTool(server, "log_activity",
		"Record a new activity event (inventory, job, vehicle, crew or announcement).",
		h.LogActivity)
	addTool(server, "announce",
		"Post a free text announcement to the feed.",
		h.Announce)

	// Engagement
	addTool(server, "like_activity",
		"Like an activity. Liking twice is a no-op.",
		h.LikeActivity)
	addTool(server, "unlike_activity",
		"Remove a like from an activity. Unliking without a like is a no-op.",
		h.UnlikeActivity)
	addTool(server, "comment_on_activity",
		"Add a comment to an activity.",
		h.CommentOnActivity)
	addTool(server, "list_activity_comments",
		"List comments on an activity oldest first.",
		h.ListActivityComments)

	// Calendar
	addTool(server, "list_calendar_events",
		"List calendar events overlapping a range, filtered by kind and by job, item, vehicle or crew member. Set category=true for the category view.",
		h.ListCalendarEvents)
	addTool(server, "create_calendar_entry",
		"Create a job, item reservation, vehicle reservation or crew assignment entry.",
		h.CreateCalendarEntry)
	addTool(server, "delete_calendar_entry",
		"Delete a calendar entry by id.",
		h.DeleteCalendarEntry)
}

func addTool[In any](server *sdkmcp.Server, name, description string, fn func(context.Context, string, In) (any, error)) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        name,
		Description: description,
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		out, err := fn(ctx, getTenantID(ctx), in)
		if err != nil {
			return toolError(err), nil, nil
		}
		return nil, out, nil
	})
}

// toolError reports failures as tool results so clients see the error code.
func toolError(err error) *sdkmcp.CallToolResult {
	payload := any(err.Error())
	if apiErr := MapError(err); apiErr != nil {
		payload = apiErr
	}
	data, mErr := json.Marshal(map[string]any{"error": payload})
	if mErr != nil {
		data = []byte(err.Error())
	}
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}
