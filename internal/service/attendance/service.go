package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/ADTrauts/block-on-block-sub003/internal/domain/attendance"
	"github.com/ADTrauts/block-on-block-sub003/internal/domain/position"
	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/database"
	"github.com/ADTrauts/block-on-block-sub003/internal/repository/postgresql"
	policyService "github.com/ADTrauts/block-on-block-sub003/internal/service/policy"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const DefaultListLimit = 30

type AttendanceService interface {
	PunchIn(ctx context.Context, businessID string, req attendance.PunchInRequest) (attendance.RecordResponse, error)
	PunchOut(ctx context.Context, businessID string, req attendance.PunchOutRequest) (attendance.RecordResponse, error)
	ListRecords(ctx context.Context, businessID, employeePositionID string, limit int) ([]attendance.RecordResponse, error)
	AutoClockOutSweep(ctx context.Context) error
}

type attendanceServiceImpl struct {
	db            *database.DB
	recordRepo    attendance.RecordRepository
	positionRepo  position.PositionRepository
	policyService policyService.PolicyService

	now func() time.Time
}

func NewAttendanceService(
	db *database.DB,
	recordRepo attendance.RecordRepository,
	positionRepo position.PositionRepository,
	policySvc policyService.PolicyService,
) AttendanceService {
	return &attendanceServiceImpl{
		db:            db,
		recordRepo:    recordRepo,
		positionRepo:  positionRepo,
		policyService: policySvc,
		now:           time.Now,
	}
}

// PunchIn implements AttendanceService.
//
// The open-record check and the insert share one transaction, and the partial
// unique index uq_attendance_records_open backs the same invariant in the
// store, so two concurrent punch-ins cannot both create an IN_PROGRESS row.
func (a *attendanceServiceImpl) PunchIn(ctx context.Context, businessID string, req attendance.PunchInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}
	nowUTC := a.now().UTC()

	pos, err := a.positionRepo.GetActive(ctx, req.EmployeePositionID, businessID)
	if err != nil {
		if errors.Is(err, position.ErrPositionNotFound) {
			return attendance.RecordResponse{}, position.ErrPositionNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up employee position: %w", err)
	}

	attachedPolicy, err := a.policyService.EnsureDefaultPolicy(ctx, businessID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to resolve attendance policy: %w", err)
	}

	workDate := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 0, 0, 0, 0, time.UTC)

	var created attendance.AttendanceRecord
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		hasOpen, err := a.recordRepo.HasOpenRecord(txCtx, businessID, req.EmployeePositionID)
		if err != nil {
			return fmt.Errorf("failed to check for open attendance record: %w", err)
		}
		if hasOpen {
			return attendance.ErrAlreadyClockedIn
		}

		created, err = a.recordRepo.Create(txCtx, attendance.AttendanceRecord{
			BusinessID:         businessID,
			EmployeePositionID: req.EmployeePositionID,
			WorkDate:           workDate,
			ClockInAt:          nowUTC,
			ClockInMethod:      strings.ToUpper(req.Method),
			ClockInSource:      req.Source,
			ClockInLocation:    req.Location,
			Status:             attendance.RecordInProgress,
			PolicyID:           &attachedPolicy.ID,
			Metadata:           req.Metadata,
		})
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_records_open" {
			return attendance.RecordResponse{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.RecordResponse{}, err
	}

	created.EmployeeName = pos.UserName
	return attendance.ToRecordResponse(created), nil
}

// PunchOut implements AttendanceService.
func (a *attendanceServiceImpl) PunchOut(ctx context.Context, businessID string, req attendance.PunchOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}
	nowUTC := a.now().UTC()

	rec, err := a.recordRepo.GetOpenRecord(ctx, businessID, req.EmployeePositionID, req.RecordID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.RecordResponse{}, attendance.ErrNoOpenRecord
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get open attendance record: %w", err)
	}

	duration := durationMinutes(rec.ClockInAt, nowUTC)
	method := strings.ToUpper(req.Method)

	rec.ClockOutAt = &nowUTC
	rec.ClockOutMethod = &method
	rec.ClockOutSource = req.Source
	rec.ClockOutLocation = req.Location
	rec.DurationMinutes = &duration
	rec.Status = attendance.RecordCompleted
	if req.Metadata != nil {
		rec.Metadata = req.Metadata
	}

	if err := a.recordRepo.Update(ctx, rec); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to complete attendance record: %w", err)
	}

	return attendance.ToRecordResponse(rec), nil
}

// ListRecords implements AttendanceService.
func (a *attendanceServiceImpl) ListRecords(ctx context.Context, businessID, employeePositionID string, limit int) ([]attendance.RecordResponse, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	records, err := a.recordRepo.List(ctx, businessID, employeePositionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToRecordResponse(rec))
	}
	return responses, nil
}

// AutoClockOutSweep implements AttendanceService. It closes IN_PROGRESS
// records that outlived their policy's auto clock-out limit, stamping the
// clock-out at the limit rather than the sweep time.
func (a *attendanceServiceImpl) AutoClockOutSweep(ctx context.Context) error {
	nowUTC := a.now().UTC()

	overdue, err := a.recordRepo.ListOverdueOpen(ctx, nowUTC)
	if err != nil {
		return fmt.Errorf("failed to list overdue open records: %w", err)
	}

	for _, item := range overdue {
		rec := item.Record
		clockOut := rec.ClockInAt.Add(time.Duration(item.AutoClockOutAfterMin) * time.Minute)
		duration := durationMinutes(rec.ClockInAt, clockOut)
		method := attendance.MethodAuto

		rec.ClockOutAt = &clockOut
		rec.ClockOutMethod = &method
		rec.DurationMinutes = &duration
		rec.Status = attendance.RecordCompleted

		if err := a.recordRepo.Update(ctx, rec); err != nil {
			slog.Error("auto clock-out failed", "record_id", rec.ID, "error", err)
			continue
		}
		slog.Info("auto clock-out applied", "record_id", rec.ID, "employee_position_id", rec.EmployeePositionID, "duration_minutes", duration)
	}

	return nil
}

// durationMinutes is max(0, round((out - in) / minute)).
func durationMinutes(in, out time.Time) int {
	minutes := int(math.Round(out.Sub(in).Minutes()))
	if minutes < 0 {
		return 0
	}
	return minutes
}
