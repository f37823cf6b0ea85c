package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/ADTrauts/block-on-block-sub003/internal/domain/shift"
	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type shiftAssignmentRepository struct {
	db *database.DB
}

func NewShiftAssignmentRepository(db *database.DB) shift.AssignmentRepository {
	return &shiftAssignmentRepository{db: db}
}

// Create implements shift.AssignmentRepository.
//
// The shift_assignments table carries the exclusion constraint
// no_overlapping_assignments; callers translate SQLSTATE 23P01 on that
// constraint into shift.ErrOverlappingAssignment.
func (r *shiftAssignmentRepository) Create(ctx context.Context, a shift.ShiftAssignment) (shift.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	if a.ID == "" {
		a.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO shift_assignments (
			id, business_id, template_id, employee_position_id,
			effective_from, effective_to, status, is_primary, overrides
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		a.ID, a.BusinessID, a.TemplateID, a.EmployeePositionID,
		a.EffectiveFrom, a.EffectiveTo, a.Status, a.IsPrimary, a.Overrides,
	).Scan(&a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		return shift.ShiftAssignment{}, fmt.Errorf("failed to create shift assignment: %w", err)
	}

	return a, nil
}

// GetByID implements shift.AssignmentRepository.
func (r *shiftAssignmentRepository) GetByID(ctx context.Context, id string, businessID string) (shift.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_id, template_id, employee_position_id,
			   effective_from, effective_to, status, is_primary, overrides,
			   created_at, updated_at
		FROM shift_assignments
		WHERE id = $1 AND business_id = $2
	`

	var a shift.ShiftAssignment
	err := q.QueryRow(ctx, query, id, businessID).Scan(
		&a.ID, &a.BusinessID, &a.TemplateID, &a.EmployeePositionID,
		&a.EffectiveFrom, &a.EffectiveTo, &a.Status, &a.IsPrimary, &a.Overrides,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.ShiftAssignment{}, shift.ErrAssignmentNotFound
		}
		return shift.ShiftAssignment{}, fmt.Errorf("failed to get shift assignment by ID: %w", err)
	}

	return a, nil
}

// ListBlocking implements shift.AssignmentRepository.
func (r *shiftAssignmentRepository) ListBlocking(ctx context.Context, businessID, employeePositionID string) ([]shift.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, business_id, template_id, employee_position_id,
			   effective_from, effective_to, status, is_primary, overrides,
			   created_at, updated_at
		FROM shift_assignments
		WHERE business_id = $1
		  AND employee_position_id = $2
		  AND status IN ('ACTIVE', 'SUSPENDED')
		ORDER BY effective_from ASC
	`

	rows, err := q.Query(ctx, query, businessID, employeePositionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocking assignments: %w", err)
	}
	defer rows.Close()

	var assignments []shift.ShiftAssignment
	for rows.Next() {
		var a shift.ShiftAssignment
		err := rows.Scan(
			&a.ID, &a.BusinessID, &a.TemplateID, &a.EmployeePositionID,
			&a.EffectiveFrom, &a.EffectiveTo, &a.Status, &a.IsPrimary, &a.Overrides,
			&a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift assignments: %w", err)
	}

	return assignments, nil
}

// Update implements shift.AssignmentRepository.
func (r *shiftAssignmentRepository) Update(ctx context.Context, req shift.UpdateAssignmentPatch, id string, businessID string) error {
	if req.IsZero() {
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := `UPDATE shift_assignments SET updated_at = NOW()`
	args := []interface{}{id, businessID}
	argIdx := 3

	if req.Status != nil {
		query += fmt.Sprintf(", status = $%d", argIdx)
		args = append(args, *req.Status)
		argIdx++
	}
	if req.EffectiveTo != nil {
		query += fmt.Sprintf(", effective_to = $%d", argIdx)
		args = append(args, *req.EffectiveTo)
		argIdx++
	}
	if req.Overrides != nil {
		query += fmt.Sprintf(", overrides = $%d", argIdx)
		args = append(args, req.Overrides)
		argIdx++
	}
	if req.IsPrimary != nil {
		query += fmt.Sprintf(", is_primary = $%d", argIdx)
		args = append(args, *req.IsPrimary)
		argIdx++
	}

	query += ` WHERE id = $1 AND business_id = $2`

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update shift assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrAssignmentNotFound
	}

	return nil
}

// List implements shift.AssignmentRepository.
func (r *shiftAssignmentRepository) List(ctx context.Context, businessID string, filter shift.AssignmentFilter) ([]shift.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "a.business_id = $1"
	args := []interface{}{businessID}
	argIdx := 2

	if filter.EmployeePositionID != nil && *filter.EmployeePositionID != "" {
		baseWhere += fmt.Sprintf(" AND a.employee_position_id = $%d", argIdx)
		args = append(args, *filter.EmployeePositionID)
		argIdx++
	}
	if filter.TemplateID != nil && *filter.TemplateID != "" {
		baseWhere += fmt.Sprintf(" AND a.template_id = $%d", argIdx)
		args = append(args, *filter.TemplateID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	query := `
		SELECT a.id, a.business_id, a.template_id, a.employee_position_id,
			   a.effective_from, a.effective_to, a.status, a.is_primary, a.overrides,
			   a.created_at, a.updated_at,
			   t.name AS template_name, t.status AS template_status, t.policy_id,
			   u.name AS employee_name
		FROM shift_assignments a
		JOIN shift_templates t ON t.id = a.template_id
		LEFT JOIN employee_positions ep ON ep.id = a.employee_position_id
		LEFT JOIN users u ON u.id = ep.user_id
		WHERE ` + baseWhere + `
		ORDER BY a.effective_from DESC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", err)
	}
	defer rows.Close()

	var assignments []shift.ShiftAssignment
	for rows.Next() {
		var a shift.ShiftAssignment
		err := rows.Scan(
			&a.ID, &a.BusinessID, &a.TemplateID, &a.EmployeePositionID,
			&a.EffectiveFrom, &a.EffectiveTo, &a.Status, &a.IsPrimary, &a.Overrides,
			&a.CreatedAt, &a.UpdatedAt,
			&a.TemplateName, &a.TemplateStatus, &a.PolicyID,
			&a.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift assignments: %w", err)
	}

	return assignments, nil
}

// ListIntersecting implements shift.AssignmentRepository.
func (r *shiftAssignmentRepository) ListIntersecting(ctx context.Context, businessID, employeePositionID string, from, to time.Time) ([]shift.ShiftAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.business_id, a.template_id, a.employee_position_id,
			   a.effective_from, a.effective_to, a.status, a.is_primary, a.overrides,
			   a.created_at, a.updated_at,
			   t.name AS template_name, t.status AS template_status, t.policy_id
		FROM shift_assignments a
		JOIN shift_templates t ON t.id = a.template_id
		WHERE a.business_id = $1
		  AND a.employee_position_id = $2
		  AND a.status = 'ACTIVE'
		  AND a.effective_from <= $4
		  AND (a.effective_to IS NULL OR a.effective_to >= $3)
		ORDER BY a.effective_from ASC
	`

	rows, err := q.Query(ctx, query, businessID, employeePositionID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list intersecting assignments: %w", err)
	}
	defer rows.Close()

	var assignments []shift.ShiftAssignment
	for rows.Next() {
		var a shift.ShiftAssignment
		err := rows.Scan(
			&a.ID, &a.BusinessID, &a.TemplateID, &a.EmployeePositionID,
			&a.EffectiveFrom, &a.EffectiveTo, &a.Status, &a.IsPrimary, &a.Overrides,
			&a.CreatedAt, &a.UpdatedAt,
			&a.TemplateName, &a.TemplateStatus, &a.PolicyID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shift assignments: %w", err)
	}

	return assignments, nil
}
