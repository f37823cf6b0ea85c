package policy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ADTrauts/block-on-block-sub003/internal/domain/policy"
	"github.com/ADTrauts/block-on-block-sub003/internal/fixtures"
	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/database"
	"github.com/ADTrauts/block-on-block-sub003/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type PolicyService interface {
	UpsertPolicy(ctx context.Context, businessID string, req policy.UpsertPolicyRequest) (policy.PolicyResponse, error)
	ListPolicies(ctx context.Context, businessID string, includeArchived bool) ([]policy.PolicyResponse, error)
	EnsureDefaultPolicy(ctx context.Context, businessID string) (policy.AttendancePolicy, error)
}

type policyServiceImpl struct {
	db         *database.DB
	policyRepo policy.PolicyRepository
}

func NewPolicyService(db *database.DB, policyRepo policy.PolicyRepository) PolicyService {
	return &policyServiceImpl{db: db, policyRepo: policyRepo}
}

// UpsertPolicy implements PolicyService.
//
// Setting a new default and demoting every other active default happen inside
// one transaction, so the at-most-one-default invariant never holds false
// even transiently.
func (s *policyServiceImpl) UpsertPolicy(ctx context.Context, businessID string, req policy.UpsertPolicyRequest) (policy.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return policy.PolicyResponse{}, err
	}

	p := policy.AttendancePolicy{
		BusinessID:               businessID,
		Name:                     req.Name,
		Timezone:                 req.Timezone,
		RoundingIncrementMinutes: fixtures.FallbackRoundingIncrementMinutes,
		GracePeriodMinutes:       fixtures.FallbackGracePeriodMinutes,
		AutoClockOutAfterMinutes: req.AutoClockOutAfterMinutes,
		GeofenceRadiusMeters:     req.GeofenceRadiusMeters,
		WorkingDays:              req.WorkingDays,
		Status:                   policy.StatusActive,
		Metadata:                 req.Metadata,
	}
	if req.RoundingIncrementMinutes != nil {
		p.RoundingIncrementMinutes = *req.RoundingIncrementMinutes
	}
	if req.GracePeriodMinutes != nil {
		p.GracePeriodMinutes = *req.GracePeriodMinutes
	}
	if req.RequireGeofence != nil {
		p.RequireGeofence = *req.RequireGeofence
	}
	if req.IsDefault != nil {
		p.IsDefault = *req.IsDefault
	}
	if req.EffectiveFrom != nil {
		from, _ := time.Parse("2006-01-02", *req.EffectiveFrom)
		p.EffectiveFrom = &from
	}
	if req.EffectiveTo != nil {
		to, _ := time.Parse("2006-01-02", *req.EffectiveTo)
		p.EffectiveTo = &to
	}

	var saved policy.AttendancePolicy
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		if req.ID != nil {
			existing, err := s.policyRepo.GetByID(txCtx, *req.ID, businessID)
			if err != nil {
				return err
			}
			p.ID = existing.ID
			p.Status = existing.Status
			saved, err = s.policyRepo.Update(txCtx, p)
			if err != nil {
				return err
			}
		} else {
			saved, err = s.policyRepo.Create(txCtx, p)
			if err != nil {
				return err
			}
		}

		if saved.IsDefault {
			if err := s.policyRepo.DemoteOtherDefaults(txCtx, businessID, saved.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return policy.PolicyResponse{}, err
	}

	return policy.ToPolicyResponse(saved), nil
}

// ListPolicies implements PolicyService.
func (s *policyServiceImpl) ListPolicies(ctx context.Context, businessID string, includeArchived bool) ([]policy.PolicyResponse, error) {
	policies, err := s.policyRepo.List(ctx, businessID, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}

	responses := make([]policy.PolicyResponse, 0, len(policies))
	for _, p := range policies {
		responses = append(responses, policy.ToPolicyResponse(p))
	}
	return responses, nil
}

// EnsureDefaultPolicy implements PolicyService.
//
// Resolution order: active default, then oldest active, then a newly created
// fallback. The partial unique index uq_attendance_policies_default makes the
// fallback creation idempotent under concurrent first punch-ins: the loser of
// the race re-reads the winner's row instead of failing.
func (s *policyServiceImpl) EnsureDefaultPolicy(ctx context.Context, businessID string) (policy.AttendancePolicy, error) {
	if p, err := s.policyRepo.GetActiveDefault(ctx, businessID); err != nil {
		return policy.AttendancePolicy{}, fmt.Errorf("failed to get active default policy: %w", err)
	} else if p != nil {
		return *p, nil
	}

	if p, err := s.policyRepo.GetOldestActive(ctx, businessID); err != nil {
		return policy.AttendancePolicy{}, fmt.Errorf("failed to get oldest active policy: %w", err)
	} else if p != nil {
		return *p, nil
	}

	created, err := s.policyRepo.Create(ctx, fixtures.FallbackPolicy(businessID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_policies_default" {
			existing, err := s.policyRepo.GetActiveDefault(ctx, businessID)
			if err != nil {
				return policy.AttendancePolicy{}, fmt.Errorf("failed to re-read default policy after conflict: %w", err)
			}
			if existing != nil {
				return *existing, nil
			}
		}
		return policy.AttendancePolicy{}, fmt.Errorf("failed to create fallback policy: %w", err)
	}

	return created, nil
}
