package cron

import (
	"context"
	"time"

	attendanceService "github.com/ADTrauts/block-on-block-sub003/internal/service/attendance"
)

// AttendanceJobs owns the periodic attendance maintenance work.
type AttendanceJobs struct {
	attendanceSvc attendanceService.AttendanceService
}

func NewAttendanceJobs(attendanceSvc attendanceService.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{attendanceSvc: attendanceSvc}
}

// Register adds the attendance jobs to the scheduler.
func (j *AttendanceJobs) Register(s *Scheduler) {
	// Sweep frequency trades staleness of auto clock-outs against load; the
	// clock-out timestamp is computed from the policy limit, not sweep time,
	// so a late sweep does not inflate durations.
	s.AddJob("attendance-auto-clock-out", 5*time.Minute, j.runAutoClockOut)
}

func (j *AttendanceJobs) runAutoClockOut(ctx context.Context) error {
	return j.attendanceSvc.AutoClockOutSweep(ctx)
}
