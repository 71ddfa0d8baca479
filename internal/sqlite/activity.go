package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/opsboard/internal/domain/activity"
	"github.com/rpggio/opsboard/internal/repository"
)

// ActivityRepository implements activity.Repository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activityColumns = `
	a.id, a.tenant_id, a.actor_id, a.activity_type, a.metadata, a.created_at,
	(SELECT COUNT(*) FROM activity_likes l WHERE l.activity_id = a.id),
	(SELECT COUNT(*) FROM activity_comments c WHERE c.activity_id = a.id),
	EXISTS (SELECT 1 FROM activity_likes l WHERE l.activity_id = a.id AND l.user_id = ?)
`

// Log inserts a new activity entry
func (r *ActivityRepository) Log(ctx context.Context, tenantID string, entry *activity.Activity) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	createdAt = createdAt.UTC()

	metadata := entry.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	data, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to encode activity metadata: %w", err)
	}

	query := `
		INSERT INTO activity_log (id, tenant_id, actor_id, activity_type, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query,
		entry.ID,
		tenantID,
		entry.ActorID,
		entry.Type,
		string(data),
		createdAt,
	); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("duplicate activity id %q: %w", entry.ID, repository.ErrInvalidInput)
		}
		return fmt.Errorf("failed to log activity: %w", err)
	}

	entry.TenantID = tenantID
	entry.CreatedAt = createdAt

	return nil
}

// Get returns a single activity entry with its counters.
func (r *ActivityRepository) Get(ctx context.Context, tenantID, id string) (*activity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_log a WHERE a.tenant_id = ? AND a.id = ?`

	entry, err := scanActivity(r.db.QueryRowContext(ctx, query, "", tenantID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

// List returns activity entries newest first, matching the given filters
func (r *ActivityRepository) List(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activity_log a WHERE a.tenant_id = ?`
	args := []interface{}{opts.ViewerID, tenantID}
	conditions := []string{}

	if opts.ActorID != "" {
		conditions = append(conditions, "a.actor_id = ?")
		args = append(args, opts.ActorID)
	}
	if len(opts.Types) > 0 {
		placeholders := make([]string, len(opts.Types))
		for i, t := range opts.Types {
			placeholders[i] = "?"
			args = append(args, string(t))
		}
		conditions = append(conditions, "a.activity_type IN ("+strings.Join(placeholders, ", ")+")")
	}
	if opts.Since != nil {
		conditions = append(conditions, "a.created_at >= ?")
		args = append(args, opts.Since.UTC())
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY a.created_at DESC, a.id DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	} else if opts.Offset > 0 {
		query += " LIMIT -1 OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var entries []activity.Activity
	for rows.Next() {
		entry, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return entries, nil
}

// Like records a like; repeating it is a no-op.
func (r *ActivityRepository) Like(ctx context.Context, tenantID, activityID, userID string) error {
	if err := r.ensureExists(ctx, tenantID, activityID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO activity_likes (activity_id, user_id, created_at) VALUES (?, ?, ?)`,
		activityID, userID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to like activity: %w", err)
	}
	return nil
}

// Unlike removes a like if present.
func (r *ActivityRepository) Unlike(ctx context.Context, tenantID, activityID, userID string) error {
	if err := r.ensureExists(ctx, tenantID, activityID); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM activity_likes WHERE activity_id = ? AND user_id = ?`,
		activityID, userID,
	); err != nil {
		return fmt.Errorf("failed to unlike activity: %w", err)
	}
	return nil
}

// AddComment inserts a comment on an existing activity.
func (r *ActivityRepository) AddComment(ctx context.Context, tenantID string, comment *activity.Comment) error {
	if err := r.ensureExists(ctx, tenantID, comment.ActivityID); err != nil {
		return err
	}
	createdAt := comment.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	createdAt = createdAt.UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_comments (id, tenant_id, activity_id, author_id, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, comment.ID, tenantID, comment.ActivityID, comment.AuthorID, comment.Body, createdAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to add comment: %w", err)
	}

	comment.TenantID = tenantID
	comment.CreatedAt = createdAt
	return nil
}

// ListComments returns an activity's comments oldest first.
func (r *ActivityRepository) ListComments(ctx context.Context, tenantID, activityID string) ([]activity.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, activity_id, author_id, body, created_at
		FROM activity_comments
		WHERE tenant_id = ? AND activity_id = ?
		ORDER BY created_at ASC, id ASC
	`, tenantID, activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []activity.Comment{}
	for rows.Next() {
		var c activity.Comment
		if err := rows.Scan(&c.ID, &c.TenantID, &c.ActivityID, &c.AuthorID, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}

func (r *ActivityRepository) ensureExists(ctx context.Context, tenantID, activityID string) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM activity_log WHERE tenant_id = ? AND id = ?)`,
		tenantID, activityID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check activity: %w", err)
	}
	if !exists {
		return repository.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (*activity.Activity, error) {
	var entry activity.Activity
	var metadata sql.NullString
	if err := row.Scan(
		&entry.ID,
		&entry.TenantID,
		&entry.ActorID,
		&entry.Type,
		&metadata,
		&entry.CreatedAt,
		&entry.LikeCount,
		&entry.CommentCount,
		&entry.ViewerHasLiked,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan activity entry: %w", err)
	}
	if metadata.Valid && metadata.String != "" {
		// Unreadable metadata is treated as absent.
		if err := json.Unmarshal([]byte(metadata.String), &entry.Metadata); err != nil {
			entry.Metadata = nil
		}
	}
	return &entry, nil
}
