package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sodeng/branchops-backend-go/internal/config"
	appHTTP "github.com/sodeng/branchops-backend-go/internal/handler/http"
	"github.com/sodeng/branchops-backend-go/internal/pkg/cron"
	"github.com/sodeng/branchops-backend-go/internal/pkg/database"
	"github.com/sodeng/branchops-backend-go/internal/pkg/jwt"
	"github.com/sodeng/branchops-backend-go/internal/pkg/sse"
	"github.com/sodeng/branchops-backend-go/internal/repository/postgresql"
	attendanceService "github.com/sodeng/branchops-backend-go/internal/service/attendance"
	serviceAuth "github.com/sodeng/branchops-backend-go/internal/service/auth"
	payrollService "github.com/sodeng/branchops-backend-go/internal/service/payroll"
	reportService "github.com/sodeng/branchops-backend-go/internal/service/report"
	rosterService "github.com/sodeng/branchops-backend-go/internal/service/roster"
	staffService "github.com/sodeng/branchops-backend-go/internal/service/staff"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	staffRepo := postgresql.NewStaffRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	salesRepo := postgresql.NewSalesRepository(db)
	credentialRepo := postgresql.NewCredentialRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.IsProduction())
	sessionHub := sse.NewHub()

	wageCalculator := payrollService.NewWageCalculator()
	accessResolver := serviceAuth.NewAccessResolver(cfg.Branches, staffRepo)
	authService := serviceAuth.NewAuthService(accessResolver, staffRepo, credentialRepo, refreshTokenRepo, JWTService, sessionHub)
	attendanceSvc := attendanceService.NewAttendanceService(cfg.Branches, staffRepo, shiftRepo, salesRepo, wageCalculator)
	rosterSvc := rosterService.NewRosterService(cfg.Branches, staffRepo, shiftRepo)
	reportSvc := reportService.NewReportService(cfg.Branches, salesRepo)
	staffSvc := staffService.NewStaffService(cfg.Branches, transactor, staffRepo, credentialRepo)

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(JWTService, authService),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Roster:     appHTTP.NewRosterHandler(rosterSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
		Staff:      appHTTP.NewStaffHandler(staffSvc),
	}, appHTTP.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AppName:        "branchops",
		Version:        version,
		Environment:    cfg.App.Env,
	})

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		cron.NewPayrollJobs(cfg.Branches, attendanceSvc, cfg.Cron.PayrollRefreshHour).RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "branches", cfg.Branches, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server", "timeout", cfg.App.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
