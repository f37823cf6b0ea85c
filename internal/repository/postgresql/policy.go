package postgresql

import (
	"context"
	"fmt"

	"github.com/ADTrauts/block-on-block-sub003/internal/domain/policy"
	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type policyRepository struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepository{db: db}
}

const policyColumns = `
	id, business_id, name, timezone, rounding_increment_minutes, grace_period_minutes,
	auto_clock_out_after_minutes, require_geofence, geofence_radius_meters,
	working_days, is_default, status, effective_from, effective_to, metadata,
	created_at, updated_at
`

func scanPolicy(row pgx.Row) (policy.AttendancePolicy, error) {
	var p policy.AttendancePolicy
	err := row.Scan(
		&p.ID, &p.BusinessID, &p.Name, &p.Timezone, &p.RoundingIncrementMinutes, &p.GracePeriodMinutes,
		&p.AutoClockOutAfterMinutes, &p.RequireGeofence, &p.GeofenceRadiusMeters,
		&p.WorkingDays, &p.IsDefault, &p.Status, &p.EffectiveFrom, &p.EffectiveTo, &p.Metadata,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// Create implements policy.PolicyRepository.
func (r *policyRepository) Create(ctx context.Context, p policy.AttendancePolicy) (policy.AttendancePolicy, error) {
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		p.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO attendance_policies (
			id, business_id, name, timezone, rounding_increment_minutes, grace_period_minutes,
			auto_clock_out_after_minutes, require_geofence, geofence_radius_meters,
			working_days, is_default, status, effective_from, effective_to, metadata
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID, p.BusinessID, p.Name, p.Timezone, p.RoundingIncrementMinutes, p.GracePeriodMinutes,
		p.AutoClockOutAfterMinutes, p.RequireGeofence, p.GeofenceRadiusMeters,
		p.WorkingDays, p.IsDefault, p.Status, p.EffectiveFrom, p.EffectiveTo, p.Metadata,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return policy.AttendancePolicy{}, fmt.Errorf("failed to create attendance policy: %w", err)
	}

	return p, nil
}

// GetByID implements policy.PolicyRepository.
func (r *policyRepository) GetByID(ctx context.Context, id string, businessID string) (policy.AttendancePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + policyColumns + ` FROM attendance_policies WHERE id = $1 AND business_id = $2`

	p, err := scanPolicy(q.QueryRow(ctx, query, id, businessID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return policy.AttendancePolicy{}, policy.ErrPolicyNotFound
		}
		return policy.AttendancePolicy{}, fmt.Errorf("failed to get attendance policy by ID: %w", err)
	}

	return p, nil
}

// Update implements policy.PolicyRepository.
func (r *policyRepository) Update(ctx context.Context, p policy.AttendancePolicy) (policy.AttendancePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_policies
		SET name = $3, timezone = $4, rounding_increment_minutes = $5, grace_period_minutes = $6,
			auto_clock_out_after_minutes = $7, require_geofence = $8, geofence_radius_meters = $9,
			working_days = $10, is_default = $11, status = $12, effective_from = $13,
			effective_to = $14, metadata = $15, updated_at = NOW()
		WHERE id = $1 AND business_id = $2
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID, p.BusinessID, p.Name, p.Timezone, p.RoundingIncrementMinutes, p.GracePeriodMinutes,
		p.AutoClockOutAfterMinutes, p.RequireGeofence, p.GeofenceRadiusMeters,
		p.WorkingDays, p.IsDefault, p.Status, p.EffectiveFrom, p.EffectiveTo, p.Metadata,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return policy.AttendancePolicy{}, policy.ErrPolicyNotFound
		}
		return policy.AttendancePolicy{}, fmt.Errorf("failed to update attendance policy: %w", err)
	}

	return p, nil
}

// List implements policy.PolicyRepository.
func (r *policyRepository) List(ctx context.Context, businessID string, includeArchived bool) ([]policy.AttendancePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + policyColumns + ` FROM attendance_policies WHERE business_id = $1`
	if !includeArchived {
		query += ` AND status = 'ACTIVE'`
	}
	query += ` ORDER BY is_default DESC, created_at DESC`

	rows, err := q.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance policies: %w", err)
	}
	defer rows.Close()

	var policies []policy.AttendancePolicy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance policy: %w", err)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance policies: %w", err)
	}

	return policies, nil
}

// GetActiveDefault implements policy.PolicyRepository.
func (r *policyRepository) GetActiveDefault(ctx context.Context, businessID string) (*policy.AttendancePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + policyColumns + `
		FROM attendance_policies
		WHERE business_id = $1 AND status = 'ACTIVE' AND is_default = TRUE
		LIMIT 1
	`

	p, err := scanPolicy(q.QueryRow(ctx, query, businessID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active default policy: %w", err)
	}

	return &p, nil
}

// GetOldestActive implements policy.PolicyRepository.
func (r *policyRepository) GetOldestActive(ctx context.Context, businessID string) (*policy.AttendancePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + policyColumns + `
		FROM attendance_policies
		WHERE business_id = $1 AND status = 'ACTIVE'
		ORDER BY created_at ASC
		LIMIT 1
	`

	p, err := scanPolicy(q.QueryRow(ctx, query, businessID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get oldest active policy: %w", err)
	}

	return &p, nil
}

// DemoteOtherDefaults implements policy.PolicyRepository.
func (r *policyRepository) DemoteOtherDefaults(ctx context.Context, businessID string, keepID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_policies
		SET is_default = FALSE, updated_at = NOW()
		WHERE business_id = $1 AND id <> $2 AND status = 'ACTIVE' AND is_default = TRUE
	`

	if _, err := q.Exec(ctx, query, businessID, keepID); err != nil {
		return fmt.Errorf("failed to demote other default policies: %w", err)
	}

	return nil
}
