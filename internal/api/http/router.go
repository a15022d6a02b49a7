package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/staffing-engine/internal/api/http/handlers"
	"github.com/spec-kit/staffing-engine/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Events         *handlers.EventsHandler
	Shifts         *handlers.ShiftsHandler
	Payroll        *handlers.PayrollHandler
	Conflicts      *handlers.ConflictsHandler
	Staff          *handlers.StaffHandler
	AuthMiddleware *auth.AuthMiddleware
	Registry       *prometheus.Registry
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle, auth.RequireAnyRole())

	scheduling := auth.RequireRole(auth.RoleScheduler, auth.RoleManager)
	managing := auth.RequireRole(auth.RoleManager)

	events := api.Group("/events")
	events.Post("", scheduling, cfg.Events.CreateEvent)
	events.Get("/:id", cfg.Events.GetEvent)
	events.Patch("/:id/status", scheduling, cfg.Events.UpdateStatus)
	events.Get("/:id/roles/:role/candidates", scheduling, cfg.Events.Candidates)
	events.Post("/:id/auto-assign", scheduling, cfg.Events.AutoAssign)
	events.Post("/:id/assignments", scheduling, cfg.Events.ManualAssign)
	events.Post("/:id/assignments/:assignmentID/approve", managing, cfg.Events.ApproveAssignment)
	events.Post("/:id/assignments/:assignmentID/reject", managing, cfg.Events.RejectAssignment)
	events.Post("/:id/shifts", scheduling, cfg.Shifts.Materialize)
	events.Post("/:id/shifts/materialize-all", scheduling, cfg.Shifts.MaterializeEvent)
	events.Post("/:id/payroll", managing, cfg.Payroll.DeriveEvent)
	events.Get("/:id/payroll", managing, cfg.Payroll.ListForEvent)

	shifts := api.Group("/shifts")
	shifts.Post("/:id/check-in", cfg.Shifts.CheckIn)
	shifts.Post("/:id/check-out", cfg.Shifts.CheckOut)
	shifts.Post("/:id/confirm", cfg.Shifts.Confirm)
	shifts.Post("/:id/payroll", managing, cfg.Payroll.DeriveShift)

	api.Patch("/payroll/:id/status", managing, cfg.Payroll.MarkStatus)

	api.Post("/conflicts/check", scheduling, cfg.Conflicts.Detect)

	staff := api.Group("/staff")
	staff.Get("", scheduling, cfg.Staff.List)
	staff.Get("/:id", cfg.Staff.Get)
	staff.Get("/:id/shifts", cfg.Staff.Shifts)
	staff.Get("/:id/availability", cfg.Staff.Availability)
}
