package main

import (
	"fmt"
	"net/http"

	"github.com/ADTrauts/block-on-block-sub003/internal/config"
	appHTTP "github.com/ADTrauts/block-on-block-sub003/internal/handler/http"
	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/cron"
	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/database"
	"github.com/ADTrauts/block-on-block-sub003/internal/pkg/jwt"
	"github.com/ADTrauts/block-on-block-sub003/internal/repository/postgresql"
	attendanceService "github.com/ADTrauts/block-on-block-sub003/internal/service/attendance"
	exceptionService "github.com/ADTrauts/block-on-block-sub003/internal/service/exception"
	policyService "github.com/ADTrauts/block-on-block-sub003/internal/service/policy"
	shiftService "github.com/ADTrauts/block-on-block-sub003/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	policyRepo := postgresql.NewPolicyRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	positionRepo := postgresql.NewPositionRepository(db)
	templateRepo := postgresql.NewShiftTemplateRepository(db)
	assignmentRepo := postgresql.NewShiftAssignmentRepository(db)
	exceptionRepo := postgresql.NewExceptionRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	policySvc := policyService.NewPolicyService(db, policyRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, positionRepo, policySvc)
	shiftSvc := shiftService.NewShiftService(db, templateRepo, assignmentRepo, positionRepo)
	exceptionSvc := exceptionService.NewExceptionService(db, exceptionRepo, attendanceRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	policyHandler := appHTTP.NewPolicyHandler(policySvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	exceptionHandler := appHTTP.NewExceptionHandler(exceptionSvc)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc).Register(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		attendanceHandler,
		policyHandler,
		shiftHandler,
		exceptionHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
