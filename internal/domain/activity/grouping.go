package activity

import (
	"sort"
	"strings"
	"time"
)

// DefaultGroupWindow is how far after a run's first member another
// inventory addition may fall and still join the run.
const DefaultGroupWindow = time.Hour

const compositeIDPrefix = "grouped_"

// Composition describes which inventory addition types a group holds.
type Composition string

const (
	CompositionItems  Composition = "items-only"
	CompositionGroups Composition = "groups-only"
	CompositionMixed  Composition = "mixed"
)

// GroupedActivity collapses two or more inventory additions by one actor.
// It is rebuilt on every grouping pass and never stored.
type GroupedActivity struct {
	CompositeID       string      `json:"composite_id"`
	ActorID           string      `json:"actor_id"`
	EarliestTimestamp time.Time   `json:"earliest_timestamp"`
	Composition       Composition `json:"composition"`
	ItemCount         int         `json:"item_count"`
	GroupCount        int         `json:"group_count"`
	LikeCount         int         `json:"like_count"`
	CommentCount      int         `json:"comment_count"`
	AnyMemberLiked    bool        `json:"any_member_liked"`
	// Members are ordered earliest first.
	Members []Activity `json:"members"`
}

// MemberCount returns the number of activities collapsed into the group.
func (g GroupedActivity) MemberCount() int {
	return g.ItemCount + g.GroupCount
}

// FeedItemKind discriminates FeedItem payloads.
type FeedItemKind string

const (
	FeedItemActivity FeedItemKind = "activity"
	FeedItemGrouped  FeedItemKind = "grouped"
)

// FeedItem is one element of a grouped feed: either a single activity or a
// group. Exactly one of Activity and Group is set.
type FeedItem struct {
	Kind     FeedItemKind     `json:"kind"`
	Activity *Activity        `json:"activity,omitempty"`
	Group    *GroupedActivity `json:"group,omitempty"`
}

// ID returns the activity id or the group's composite id.
func (f FeedItem) ID() string {
	if f.Group != nil {
		return f.Group.CompositeID
	}
	if f.Activity != nil {
		return f.Activity.ID
	}
	return ""
}

// MemberCount returns 1 for a single activity and the member count for a group.
func (f FeedItem) MemberCount() int {
	if f.Group != nil {
		return f.Group.MemberCount()
	}
	if f.Activity != nil {
		return 1
	}
	return 0
}

// Group collapses runs of inventory additions using DefaultGroupWindow.
// records must be ordered newest first.
func Group(records []Activity) []FeedItem {
	return GroupWithWindow(records, DefaultGroupWindow)
}

// GroupWithWindow collapses consecutive inventory additions by the same actor
// into GroupedActivity entries. A run is anchored to its first (newest)
// member: a candidate joins while anchor.CreatedAt - candidate.CreatedAt lies
// in [0, window]. The scan stops at the first record that does not qualify.
// Runs of one are emitted unchanged. Records with a zero CreatedAt never
// start or join a run.
func GroupWithWindow(records []Activity, window time.Duration) []FeedItem {
	out := make([]FeedItem, 0, len(records))

	i := 0
	for i < len(records) {
		anchor := records[i]
		if !groupable(anchor) || i == len(records)-1 {
			out = append(out, single(anchor))
			i++
			continue
		}

		j := i + 1
		for j < len(records) {
			candidate := records[j]
			if !groupable(candidate) || candidate.ActorID != anchor.ActorID {
				break
			}
			delta := anchor.CreatedAt.Sub(candidate.CreatedAt)
			if delta < 0 || delta > window {
				break
			}
			j++
		}

		if j-i < 2 {
			out = append(out, single(anchor))
			i++
			continue
		}

		out = append(out, FeedItem{Kind: FeedItemGrouped, Group: buildGroup(records[i:j])})
		i = j
	}

	return out
}

func groupable(a Activity) bool {
	return a.Type.IsInventoryAddition() && !a.CreatedAt.IsZero()
}

func single(a Activity) FeedItem {
	entry := a
	return FeedItem{Kind: FeedItemActivity, Activity: &entry}
}

func buildGroup(run []Activity) *GroupedActivity {
	members := make([]Activity, len(run))
	copy(members, run)
	sort.SliceStable(members, func(a, b int) bool {
		return members[a].CreatedAt.Before(members[b].CreatedAt)
	})

	g := &GroupedActivity{
		ActorID:           members[0].ActorID,
		EarliestTimestamp: members[0].CreatedAt,
		Members:           members,
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
		if m.Type == TypeInventoryItemCreated {
			g.ItemCount++
		} else {
			g.GroupCount++
		}
		g.LikeCount += m.LikeCount
		g.CommentCount += m.CommentCount
		g.AnyMemberLiked = g.AnyMemberLiked || m.ViewerHasLiked
	}
	g.CompositeID = compositeIDPrefix + strings.Join(ids, "_")

	switch {
	case g.GroupCount == 0:
		g.Composition = CompositionItems
	case g.ItemCount == 0:
		g.Composition = CompositionGroups
	default:
		g.Composition = CompositionMixed
	}

	return g
}
