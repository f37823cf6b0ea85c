package exception

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ADTrauts/block-on-block-sub003/internal/domain/attendance"
	"github.com/ADTrauts/block-on-block-sub003/internal/domain/exception"
	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/database"
	"github.com/ADTrauts/block-on-block-sub003/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type ExceptionService interface {
	ListForManager(ctx context.Context, businessID string, filter exception.ListFilter) (exception.ListPage, error)
	Resolve(ctx context.Context, businessID, exceptionID, managerUserID string, req exception.ResolveRequest) (exception.ExceptionResponse, error)
}

type exceptionServiceImpl struct {
	db            *database.DB
	exceptionRepo exception.ExceptionRepository
	recordRepo    attendance.RecordRepository

	now func() time.Time
}

func NewExceptionService(
	db *database.DB,
	exceptionRepo exception.ExceptionRepository,
	recordRepo attendance.RecordRepository,
) ExceptionService {
	return &exceptionServiceImpl{
		db:            db,
		exceptionRepo: exceptionRepo,
		recordRepo:    recordRepo,
		now:           time.Now,
	}
}

// ListForManager implements ExceptionService.
//
// The caller computes which employee positions the manager may see; an empty
// set short-circuits to an empty page without touching the store.
func (s *exceptionServiceImpl) ListForManager(ctx context.Context, businessID string, filter exception.ListFilter) (exception.ListPage, error) {
	filter.Clamp()

	page := exception.ListPage{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		Exceptions: []exception.ExceptionResponse{},
	}
	if len(filter.EmployeePositionIDs) == 0 {
		return page, nil
	}

	for i, st := range filter.Statuses {
		filter.Statuses[i] = strings.ToUpper(st)
	}

	exceptions, total, err := s.exceptionRepo.List(ctx, businessID, filter)
	if err != nil {
		return exception.ListPage{}, fmt.Errorf("failed to list attendance exceptions: %w", err)
	}

	page.TotalCount = total
	page.TotalPages = int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	for _, e := range exceptions {
		page.Exceptions = append(page.Exceptions, exception.ToExceptionResponse(e))
	}
	return page, nil
}

// Resolve implements ExceptionService.
//
// The resolution stamp, the optional record patch and the exception-flag
// recomputation run inside one transaction, so a failure between steps never
// leaves the record's flag inconsistent with its exception set.
func (s *exceptionServiceImpl) Resolve(ctx context.Context, businessID, exceptionID, managerUserID string, req exception.ResolveRequest) (exception.ExceptionResponse, error) {
	if err := req.Validate(); err != nil {
		return exception.ExceptionResponse{}, err
	}
	nowUTC := s.now().UTC()

	exc, err := s.exceptionRepo.GetByID(ctx, exceptionID, businessID)
	if err != nil {
		return exception.ExceptionResponse{}, err
	}

	resolution := exception.Resolution{
		Status:            exception.Status(strings.ToUpper(req.Status)),
		ResolvedByID:      managerUserID,
		ResolvedAt:        nowUTC,
		ResolutionNote:    req.ResolutionNote,
		ManagerNote:       req.ManagerNote,
		ResolutionPayload: req.ResolutionPayload,
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.exceptionRepo.UpdateResolution(txCtx, exc.ID, businessID, resolution); err != nil {
			return err
		}

		if exc.RecordID == nil {
			return nil
		}

		if req.AttendanceAdjustments != nil {
			adj, err := toRecordAdjustments(req.AttendanceAdjustments)
			if err != nil {
				return err
			}
			if err := s.recordRepo.ApplyAdjustments(txCtx, *exc.RecordID, businessID, adj); err != nil {
				return err
			}
		}

		unresolved, err := s.exceptionRepo.CountUnresolvedForRecord(txCtx, *exc.RecordID, businessID)
		if err != nil {
			return err
		}
		return s.recordRepo.SetExceptionFlagged(txCtx, *exc.RecordID, businessID, unresolved > 0)
	})
	if err != nil {
		return exception.ExceptionResponse{}, err
	}

	exc.Status = resolution.Status
	exc.ResolvedByID = &resolution.ResolvedByID
	exc.ResolvedAt = &resolution.ResolvedAt
	exc.ResolutionNote = resolution.ResolutionNote
	exc.ManagerNote = resolution.ManagerNote
	exc.ResolutionPayload = resolution.ResolutionPayload
	return exception.ToExceptionResponse(exc), nil
}

func toRecordAdjustments(in *exception.AttendanceAdjustments) (attendance.RecordAdjustments, error) {
	var adj attendance.RecordAdjustments

	if in.ClockInAt != nil {
		t, err := time.Parse(time.RFC3339, *in.ClockInAt)
		if err != nil {
			return adj, fmt.Errorf("invalid clock_in_at adjustment: %w", err)
		}
		utc := t.UTC()
		adj.ClockInAt = &utc
	}
	if in.ClockOutAt != nil {
		t, err := time.Parse(time.RFC3339, *in.ClockOutAt)
		if err != nil {
			return adj, fmt.Errorf("invalid clock_out_at adjustment: %w", err)
		}
		utc := t.UTC()
		adj.ClockOutAt = &utc
	}
	if in.Status != nil {
		status := attendance.RecordStatus(strings.ToUpper(*in.Status))
		adj.Status = &status
	}
	adj.VarianceMinutes = in.VarianceMinutes

	return adj, nil
}
