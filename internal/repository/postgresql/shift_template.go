package postgresql

import (
	"context"
	"fmt"

	"github.com/ADTrauts/block-on-block-sub003/internal/domain/shift"
	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type shiftTemplateRepository struct {
	db *database.DB
}

func NewShiftTemplateRepository(db *database.DB) shift.TemplateRepository {
	return &shiftTemplateRepository{db: db}
}

const templateColumns = `
	id, business_id, name, timezone, start_minute, end_minute, break_minutes,
	days_of_week, policy_id, status, created_at, updated_at
`

func scanTemplate(row pgx.Row) (shift.ShiftTemplate, error) {
	var t shift.ShiftTemplate
	err := row.Scan(
		&t.ID, &t.BusinessID, &t.Name, &t.Timezone, &t.StartMinute, &t.EndMinute, &t.BreakMinutes,
		&t.DaysOfWeek, &t.PolicyID, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// Create implements shift.TemplateRepository.
func (r *shiftTemplateRepository) Create(ctx context.Context, t shift.ShiftTemplate) (shift.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	if t.ID == "" {
		t.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO shift_templates (
			id, business_id, name, timezone, start_minute, end_minute, break_minutes,
			days_of_week, policy_id, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.ID, t.BusinessID, t.Name, t.Timezone, t.StartMinute, t.EndMinute, t.BreakMinutes,
		t.DaysOfWeek, t.PolicyID, t.Status,
	).Scan(&t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		return shift.ShiftTemplate{}, fmt.Errorf("failed to create shift template: %w", err)
	}

	return t, nil
}

// GetByID implements shift.TemplateRepository.
func (r *shiftTemplateRepository) GetByID(ctx context.Context, id string, businessID string) (shift.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + templateColumns + ` FROM shift_templates WHERE id = $1 AND business_id = $2`

	t, err := scanTemplate(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.ShiftTemplate{}, shift.ErrTemplateNotFound
		}
		return shift.ShiftTemplate{}, fmt.Errorf("failed to get shift template by ID: %w", err)
	}

	return t, nil
}

// Update implements shift.TemplateRepository.
func (r *shiftTemplateRepository) Update(ctx context.Context, t shift.ShiftTemplate) (shift.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_templates
		SET name = $3, timezone = $4, start_minute = $5, end_minute = $6, break_minutes = $7,
			days_of_week = $8, policy_id = $9, updated_at = NOW()
		WHERE id = $1 AND business_id = $2
		RETURNING status, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.ID, t.BusinessID, t.Name, t.Timezone, t.StartMinute, t.EndMinute, t.BreakMinutes,
		t.DaysOfWeek, t.PolicyID,
	).Scan(&t.Status, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.ShiftTemplate{}, shift.ErrTemplateNotFound
		}
		return shift.ShiftTemplate{}, fmt.Errorf("failed to update shift template: %w", err)
	}

	return t, nil
}

// List implements shift.TemplateRepository.
func (r *shiftTemplateRepository) List(ctx context.Context, businessID string, includeArchived bool) ([]shift.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + templateColumns + ` FROM shift_templates WHERE business_id = $1`
	if !includeArchived {
		query += ` AND status = 'ACTIVE'`
	}
	query += ` ORDER BY (status = 'ACTIVE') DESC, created_at DESC`

	rows, err := q.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift templates: %w", err)
	}
	defer rows.Close()

	var templates []shift.ShiftTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift templates: %w", err)
	}

	return templates, nil
}

// Archive implements shift.TemplateRepository.
func (r *shiftTemplateRepository) Archive(ctx context.Context, id string, businessID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_templates
		SET status = 'ARCHIVED', updated_at = NOW()
		WHERE id = $1 AND business_id = $2
	`

	tag, err := q.Exec(ctx, query, id, businessID)
	if err != nil {
		return fmt.Errorf("failed to archive shift template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrTemplateNotFound
	}

	return nil
}
