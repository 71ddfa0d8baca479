package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `opsboard is the operations board for a rental crew: a team activity feed and a shared calendar.

Core concepts:
- Activity: one event in the team log (inventory, vehicles, customers, crew, jobs, announcements). Immutable once logged.
- Grouped activity: a burst of inventory additions by one user within the grouping window (1 hour by default), shown as one feed entry.
- Calendar entry: a job, an item or vehicle reservation, or a crew assignment with a start and optional end.
- Event: the calendar-ready projection of an entry, carrying kind and scope ids in extended_props.

Default workflow:
1) Read the feed with get_activity_feed (pass viewer_id to see your own likes).
2) React with like_activity / unlike_activity / comment_on_activity.
3) Record changes with log_activity or announce.
4) Plan with list_calendar_events; narrow by kinds and by job_id, item_id, vehicle_id or user_id.

All timestamps are RFC3339.

Docs:
- opsboard://docs/index
- opsboard://docs/activity-types
- opsboard://docs/feed-grouping
- opsboard://docs/calendar
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "opsboard://docs/index",
		Name:        "docs_index",
		Title:       "opsboard docs index",
		Description: "Entry point for agent-facing docs.",
		Content: `# opsboard: Agent Docs Index

- ` + "`opsboard://docs/activity-types`" + `: the closed set of activity types and their metadata keys.
- ` + "`opsboard://docs/feed-grouping`" + `: how the feed collapses inventory bursts.
- ` + "`opsboard://docs/calendar`" + `: calendar kinds, scopes and the category view.

## Tools

Feed: get_activity_feed, get_recent_activity, log_activity, announce.
Engagement: like_activity, unlike_activity, comment_on_activity, list_activity_comments.
Calendar: list_calendar_events, create_calendar_entry, delete_calendar_entry.

## Errors

Failed tool calls return ` + "`{\"error\": {\"code\": ..., \"message\": ..., \"recovery_hint\": ...}}`" + `.
Codes: ACTIVITY_NOT_FOUND, INVALID_ACTIVITY_TYPE, INVALID_INPUT, INVALID_TIME, CALENDAR_ENTRY_NOT_FOUND, INVALID_KIND, INVALID_RANGE.
`,
	},
	{
		URI:         "opsboard://docs/activity-types",
		Name:        "docs_activity_types",
		Title:       "Activity types",
		Description: "Closed enumeration of activity types and common metadata keys.",
		Content: `# Activity types

| type | metadata |
| --- | --- |
| inventory_item_created / inventory_item_deleted | item_id, name |
| inventory_group_created / inventory_group_deleted | group_id, name |
| vehicle_added / vehicle_removed | vehicle_id, name |
| customer_added / customer_removed | customer_id, name |
| crew_added / crew_removed | crew_id, name |
| job_created / job_deleted | job_id, name |
| job_status_changed | job_id, name, status |
| announcement | message |

Metadata is open: unknown keys are kept, missing keys are treated as absent.
`,
	},
	{
		URI:         "opsboard://docs/feed-grouping",
		Name:        "docs_feed_grouping",
		Title:       "Feed grouping rules",
		Description: "When consecutive activities are merged into one grouped feed entry.",
		Content: `# Feed grouping

The feed reads activity newest first and merges runs of inventory additions.

A run starts at an inventory_item_created or inventory_group_created record (the anchor).
Following records join while all hold:
- type is inventory_item_created or inventory_group_created
- actor equals the anchor's actor
- anchor time minus record time is between 0 and the window, inclusive

The first record that fails stops the run. A run of one is emitted unchanged.

Grouped entries report:
- composite_id: ` + "`grouped_<member ids joined by _>`" + `
- earliest_timestamp: creation time of the oldest member
- composition: items-only, groups-only or mixed, plus item_count and group_count
- like_count and comment_count summed over members, any_member_liked for the viewer
- members: the member activities, oldest first

Override the window per request with window_minutes.
`,
	},
	{
		URI:         "opsboard://docs/calendar",
		Name:        "docs_calendar",
		Title:       "Calendar events",
		Description: "Calendar kinds, scope filters and the category view.",
		Content: `# Calendar

Kinds: job, item (reservation), vehicle (reservation), crew (assignment).
Each entry has a scope_id naming the job, item, vehicle or crew member it belongs to.

## list_calendar_events

- from / to: entries overlapping the range (to is exclusive)
- kinds: restrict to these kinds; empty means all
- job_id, item_id, vehicle_id, user_id: each narrows only events of the matching kind
  (job_id narrows job events, item_id narrows item events, and so on). Events of a kind
  whose scope field is empty are excluded once any scope field is set.
- category=true: after filtering, job events are kept only when their title contains
  "job duration" (case-insensitive).

Events keep the order of the stored entries (start time, then id).
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
