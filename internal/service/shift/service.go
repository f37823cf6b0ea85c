package shift

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ADTrauts/block-on-block-sub003/internal/domain/position"
	"github.com/ADTrauts/block-on-block-sub003/internal/domain/shift"
	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/database"
	"github.com/ADTrauts/block-on-block-sub003/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const DefaultUpcomingWindowDays = 30

type ShiftService interface {
	// Catalog
	UpsertTemplate(ctx context.Context, businessID string, req shift.UpsertTemplateRequest) (shift.TemplateResponse, error)
	ListTemplates(ctx context.Context, businessID string, includeArchived bool) ([]shift.TemplateResponse, error)
	ArchiveTemplate(ctx context.Context, businessID, id string) error

	// Scheduler
	Assign(ctx context.Context, businessID string, req shift.AssignRequest) (shift.AssignmentResponse, error)
	UpdateAssignment(ctx context.Context, businessID, id string, patch shift.UpdateAssignmentPatch) (shift.AssignmentResponse, error)
	ListAssignments(ctx context.Context, businessID string, filter shift.AssignmentFilter) ([]shift.AssignmentResponse, error)
	UpcomingShifts(ctx context.Context, businessID, employeePositionID string, asOf time.Time, windowDays int) ([]shift.AssignmentResponse, error)
}

type shiftServiceImpl struct {
	db             *database.DB
	templateRepo   shift.TemplateRepository
	assignmentRepo shift.AssignmentRepository
	positionRepo   position.PositionRepository
}

func NewShiftService(
	db *database.DB,
	templateRepo shift.TemplateRepository,
	assignmentRepo shift.AssignmentRepository,
	positionRepo position.PositionRepository,
) ShiftService {
	return &shiftServiceImpl{
		db:             db,
		templateRepo:   templateRepo,
		assignmentRepo: assignmentRepo,
		positionRepo:   positionRepo,
	}
}

// UpsertTemplate implements ShiftService. The time window is re-validated on
// every write, create or update.
func (s *shiftServiceImpl) UpsertTemplate(ctx context.Context, businessID string, req shift.UpsertTemplateRequest) (shift.TemplateResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.TemplateResponse{}, err
	}
	if err := shift.ValidateWindow(*req.StartMinute, *req.EndMinute); err != nil {
		return shift.TemplateResponse{}, err
	}

	t := shift.ShiftTemplate{
		BusinessID:  businessID,
		Name:        req.Name,
		Timezone:    req.Timezone,
		StartMinute: *req.StartMinute,
		EndMinute:   *req.EndMinute,
		DaysOfWeek:  normalizeWeekdays(req.DaysOfWeek),
		PolicyID:    req.PolicyID,
		Status:      shift.TemplateActive,
	}
	if req.BreakMinutes != nil {
		t.BreakMinutes = *req.BreakMinutes
	}

	var saved shift.ShiftTemplate
	var err error
	if req.ID != nil {
		existing, err := s.templateRepo.GetByID(ctx, *req.ID, businessID)
		if err != nil {
			return shift.TemplateResponse{}, err
		}
		t.ID = existing.ID
		saved, err = s.templateRepo.Update(ctx, t)
		if err != nil {
			return shift.TemplateResponse{}, err
		}
	} else {
		saved, err = s.templateRepo.Create(ctx, t)
		if err != nil {
			return shift.TemplateResponse{}, err
		}
	}

	return shift.ToTemplateResponse(saved), nil
}

// ListTemplates implements ShiftService.
func (s *shiftServiceImpl) ListTemplates(ctx context.Context, businessID string, includeArchived bool) ([]shift.TemplateResponse, error) {
	templates, err := s.templateRepo.List(ctx, businessID, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift templates: %w", err)
	}

	responses := make([]shift.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		responses = append(responses, shift.ToTemplateResponse(t))
	}
	return responses, nil
}

// ArchiveTemplate implements ShiftService. Assignments referencing the
// template keep their history.
func (s *shiftServiceImpl) ArchiveTemplate(ctx context.Context, businessID, id string) error {
	return s.templateRepo.Archive(ctx, id, businessID)
}

// Assign implements ShiftService.
//
// The overlap scan and the insert share one transaction, and the exclusion
// constraint no_overlapping_assignments backs the same invariant in the
// store. Overlap blocks regardless of is_primary.
func (s *shiftServiceImpl) Assign(ctx context.Context, businessID string, req shift.AssignRequest) (shift.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.AssignmentResponse{}, err
	}

	if _, err := s.positionRepo.GetActive(ctx, req.EmployeePositionID, businessID); err != nil {
		if errors.Is(err, position.ErrPositionNotFound) {
			return shift.AssignmentResponse{}, position.ErrPositionNotFound
		}
		return shift.AssignmentResponse{}, fmt.Errorf("failed to look up employee position: %w", err)
	}

	tmpl, err := s.templateRepo.GetByID(ctx, req.TemplateID, businessID)
	if err != nil {
		if errors.Is(err, shift.ErrTemplateNotFound) {
			return shift.AssignmentResponse{}, shift.ErrTemplateUnavailable
		}
		return shift.AssignmentResponse{}, fmt.Errorf("failed to get shift template: %w", err)
	}
	if tmpl.Status != shift.TemplateActive {
		return shift.AssignmentResponse{}, shift.ErrTemplateUnavailable
	}

	effectiveFrom, _ := time.Parse("2006-01-02", req.EffectiveFrom)
	var effectiveTo *time.Time
	if req.EffectiveTo != nil {
		to, _ := time.Parse("2006-01-02", *req.EffectiveTo)
		effectiveTo = &to
	}

	a := shift.ShiftAssignment{
		BusinessID:         businessID,
		TemplateID:         tmpl.ID,
		EmployeePositionID: req.EmployeePositionID,
		EffectiveFrom:      effectiveFrom,
		EffectiveTo:        effectiveTo,
		Status:             shift.AssignmentActive,
		IsPrimary:          true,
		Overrides:          req.Overrides,
	}
	if req.Status != nil {
		a.Status = shift.AssignmentStatus(strings.ToUpper(*req.Status))
	}
	if req.IsPrimary != nil {
		a.IsPrimary = *req.IsPrimary
	}

	var created shift.ShiftAssignment
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		blocking, err := s.assignmentRepo.ListBlocking(txCtx, businessID, req.EmployeePositionID)
		if err != nil {
			return fmt.Errorf("failed to list existing assignments: %w", err)
		}
		for _, existing := range blocking {
			if shift.RangesOverlap(existing.EffectiveFrom, existing.EffectiveTo, effectiveFrom, effectiveTo) {
				return shift.ErrOverlappingAssignment
			}
		}

		created, err = s.assignmentRepo.Create(txCtx, a)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// Check for exclusion violation (SQL state code '23P01')
			if pgErr.Code == "23P01" && pgErr.ConstraintName == "no_overlapping_assignments" {
				return shift.AssignmentResponse{}, shift.ErrOverlappingAssignment
			}
		}
		return shift.AssignmentResponse{}, err
	}

	created.TemplateName = &tmpl.Name
	created.TemplateStatus = &tmpl.Status
	created.PolicyID = tmpl.PolicyID
	return shift.ToAssignmentResponse(created), nil
}

// UpdateAssignment implements ShiftService. An empty patch is a no-op read.
//
// A patch can move the assignment back into the blocking set (status flipped
// to ACTIVE/SUSPENDED) or stretch its effective range, so the overlap scan
// from Assign runs again here, in the same transaction as the write, with the
// exclusion constraint as the store-side backstop.
func (s *shiftServiceImpl) UpdateAssignment(ctx context.Context, businessID, id string, patch shift.UpdateAssignmentPatch) (shift.AssignmentResponse, error) {
	if err := patch.Validate(); err != nil {
		return shift.AssignmentResponse{}, err
	}

	if !patch.IsZero() {
		if patch.Status != nil {
			upper := strings.ToUpper(*patch.Status)
			patch.Status = &upper
		}

		err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
			txCtx := context.WithValue(ctx, "tx", tx)

			current, err := s.assignmentRepo.GetByID(txCtx, id, businessID)
			if err != nil {
				return err
			}

			if patch.Status != nil || patch.EffectiveTo != nil {
				status := current.Status
				if patch.Status != nil {
					status = shift.AssignmentStatus(*patch.Status)
				}
				effectiveTo := current.EffectiveTo
				if patch.EffectiveTo != nil {
					to, _ := time.Parse("2006-01-02", *patch.EffectiveTo)
					effectiveTo = &to
				}

				if status == shift.AssignmentActive || status == shift.AssignmentSuspended {
					blocking, err := s.assignmentRepo.ListBlocking(txCtx, businessID, current.EmployeePositionID)
					if err != nil {
						return fmt.Errorf("failed to list existing assignments: %w", err)
					}
					for _, existing := range blocking {
						if existing.ID == current.ID {
							continue
						}
						if shift.RangesOverlap(existing.EffectiveFrom, existing.EffectiveTo, current.EffectiveFrom, effectiveTo) {
							return shift.ErrOverlappingAssignment
						}
					}
				}
			}

			return s.assignmentRepo.Update(txCtx, patch, id, businessID)
		})
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				// Check for exclusion violation (SQL state code '23P01')
				if pgErr.Code == "23P01" && pgErr.ConstraintName == "no_overlapping_assignments" {
					return shift.AssignmentResponse{}, shift.ErrOverlappingAssignment
				}
			}
			return shift.AssignmentResponse{}, err
		}
	}

	updated, err := s.assignmentRepo.GetByID(ctx, id, businessID)
	if err != nil {
		return shift.AssignmentResponse{}, err
	}
	return shift.ToAssignmentResponse(updated), nil
}

// ListAssignments implements ShiftService.
//
// DropArchivedTemplates is applied after the fetch: it depends on the joined
// template row's current status, so it runs O(n) over the page instead of as
// a store predicate.
func (s *shiftServiceImpl) ListAssignments(ctx context.Context, businessID string, filter shift.AssignmentFilter) ([]shift.AssignmentResponse, error) {
	assignments, err := s.assignmentRepo.List(ctx, businessID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift assignments: %w", err)
	}

	responses := make([]shift.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		if filter.DropArchivedTemplates && a.TemplateStatus != nil && *a.TemplateStatus == shift.TemplateArchived {
			continue
		}
		responses = append(responses, shift.ToAssignmentResponse(a))
	}
	return responses, nil
}

// UpcomingShifts implements ShiftService.
func (s *shiftServiceImpl) UpcomingShifts(ctx context.Context, businessID, employeePositionID string, asOf time.Time, windowDays int) ([]shift.AssignmentResponse, error) {
	if windowDays <= 0 {
		windowDays = DefaultUpcomingWindowDays
	}
	until := asOf.AddDate(0, 0, windowDays)

	assignments, err := s.assignmentRepo.ListIntersecting(ctx, businessID, employeePositionID, asOf, until)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming shifts: %w", err)
	}

	responses := make([]shift.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, shift.ToAssignmentResponse(a))
	}
	return responses, nil
}

func normalizeWeekdays(days []string) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, strings.ToUpper(d))
	}
	return out
}
