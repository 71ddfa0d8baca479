package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/opsboard/internal/domain/calendar"
	"github.com/rpggio/opsboard/internal/repository"
)

// CalendarRepository implements calendar.Repository for SQLite
type CalendarRepository struct {
	db *DB
}

// NewCalendarRepository creates a new CalendarRepository
func NewCalendarRepository(db *DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

const calendarColumns = `id, tenant_id, kind, scope_id, title, starts_at, ends_at, all_day, job_id, created_at`

// Create inserts a calendar entry
func (r *CalendarRepository) Create(ctx context.Context, tenantID string, rec *calendar.Record) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var endsAt any
	if rec.End != nil {
		endsAt = rec.End.UTC()
	}

	query := `
		INSERT INTO calendar_entries (` + calendarColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		tenantID,
		rec.Kind,
		rec.ScopeID,
		rec.Title,
		rec.Start.UTC(),
		endsAt,
		rec.AllDay,
		rec.JobID,
		createdAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create calendar entry: %w", err)
	}

	rec.TenantID = tenantID
	rec.CreatedAt = createdAt.UTC()
	return nil
}

// Get retrieves a calendar entry by ID
func (r *CalendarRepository) Get(ctx context.Context, tenantID, id string) (*calendar.Record, error) {
	query := `SELECT ` + calendarColumns + ` FROM calendar_entries WHERE tenant_id = ? AND id = ?`
	rec, err := scanCalendarRecord(r.db.QueryRowContext(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// Delete removes a calendar entry
func (r *CalendarRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM calendar_entries WHERE tenant_id = ? AND id = ?`, tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to delete calendar entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete calendar entry: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List returns calendar entries overlapping the requested window, ordered
// by start time.
func (r *CalendarRepository) List(ctx context.Context, tenantID string, opts calendar.ListRecordsOptions) ([]calendar.Record, error) {
	query := `SELECT ` + calendarColumns + ` FROM calendar_entries WHERE tenant_id = ?`
	args := []interface{}{tenantID}
	conditions := []string{}

	if !opts.To.IsZero() {
		conditions = append(conditions, "starts_at < ?")
		args = append(args, opts.To.UTC())
	}
	if !opts.From.IsZero() {
		conditions = append(conditions, "COALESCE(ends_at, starts_at) >= ?")
		args = append(args, opts.From.UTC())
	}
	if len(opts.Kinds) > 0 {
		placeholders := make([]string, len(opts.Kinds))
		for i, k := range opts.Kinds {
			placeholders[i] = "?"
			args = append(args, string(k))
		}
		conditions = append(conditions, "kind IN ("+strings.Join(placeholders, ", ")+")")
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY starts_at ASC, id ASC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar entries: %w", err)
	}
	defer rows.Close()

	var records []calendar.Record
	for rows.Next() {
		rec, err := scanCalendarRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calendar rows: %w", err)
	}
	return records, nil
}

func scanCalendarRecord(row rowScanner) (*calendar.Record, error) {
	var rec calendar.Record
	var title, jobID sql.NullString
	var endsAt sql.NullTime
	if err := row.Scan(
		&rec.ID,
		&rec.TenantID,
		&rec.Kind,
		&rec.ScopeID,
		&title,
		&rec.Start,
		&endsAt,
		&rec.AllDay,
		&jobID,
		&rec.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan calendar entry: %w", err)
	}
	if title.Valid {
		rec.Title = &title.String
	}
	if endsAt.Valid {
		rec.End = &endsAt.Time
	}
	if jobID.Valid {
		rec.JobID = &jobID.String
	}
	return &rec, nil
}
