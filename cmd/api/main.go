package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/staffing-engine/internal/api/http"
	"github.com/spec-kit/staffing-engine/internal/api/http/handlers"
	"github.com/spec-kit/staffing-engine/internal/auth"
	"github.com/spec-kit/staffing-engine/internal/config"
	"github.com/spec-kit/staffing-engine/internal/events"
	"github.com/spec-kit/staffing-engine/internal/observability"
	"github.com/spec-kit/staffing-engine/internal/persistence"
	"github.com/spec-kit/staffing-engine/internal/repository"
	"github.com/spec-kit/staffing-engine/internal/service"
	"github.com/spec-kit/staffing-engine/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	pool := pg.PoolHandle()
	eventRepo := repository.NewEventRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	shiftRepo := repository.NewShiftRepository(pool)
	payrollRepo := repository.NewPayrollRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	availability := service.NewAvailabilityService(shiftRepo, redis.Handle(), cfg.Scheduling.AvailabilityCacheTTL(), logger)
	matcher := service.NewMatcher(availability)

	eventService := service.NewEventService(eventRepo)
	assignmentService := service.NewAssignmentService(cfg.Scheduling, service.AssignmentDependencies{
		EventRepo:    eventRepo,
		StaffRepo:    staffRepo,
		Matcher:      matcher,
		Availability: availability,
		Dispatcher:   dispatcher,
		Metrics:      metrics,
		Logger:       logger,
	})
	shiftService := service.NewShiftService(cfg.Scheduling, service.ShiftDependencies{
		EventRepo:    eventRepo,
		ShiftRepo:    shiftRepo,
		StaffRepo:    staffRepo,
		Availability: availability,
		Dispatcher:   dispatcher,
		Metrics:      metrics,
		Logger:       logger,
	})
	payrollService := service.NewPayrollService(cfg.Scheduling, service.PayrollDependencies{
		EventRepo:   eventRepo,
		ShiftRepo:   shiftRepo,
		PayrollRepo: payrollRepo,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
	})
	conflictService := service.NewConflictService(shiftRepo, dispatcher, metrics)
	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokens)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Events:         handlers.NewEventsHandler(eventService, assignmentService),
		Shifts:         handlers.NewShiftsHandler(shiftService),
		Payroll:        handlers.NewPayrollHandler(payrollService),
		Conflicts:      handlers.NewConflictsHandler(conflictService),
		Staff:          handlers.NewStaffHandler(staffRepo, shiftRepo, availability),
		AuthMiddleware: authMiddleware,
		Registry:       registry,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
