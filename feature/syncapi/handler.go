package syncapi

import (
	"context"
	"errors"
	"time"

	"sheet-sync/core/logger"
	"sheet-sync/core/reconcile"
	"sheet-sync/core/table"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sync passes.
type Handler struct {
	service *Service
	logger  *zap.Logger
	timeout time.Duration
}

// NewHandler creates a new HTTP handler. timeout bounds each pass or preparation.
func NewHandler(service *Service, logger *zap.Logger, timeout time.Duration) *Handler {
	return &Handler{service: service, logger: logger, timeout: timeout}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)
	app.Post("/sync", h.HandleSync)
	app.Get("/sync/last", h.HandleLast)
	app.Post("/prepare", h.HandlePrepare)
}

// syncResponse is the body of a successful pass.
type syncResponse struct {
	Report  *reconcile.Report `json:"report"`
	Summary []string          `json:"summary"`
	Shared  bool              `json:"shared"`
}

// HandleHealth reports liveness.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleSync runs a pass.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	direction, err := reconcile.ParseDirection(c.Query("direction"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	dryRun := c.QueryBool("dry_run", false)

	ctx, cancel := h.context(c)
	defer cancel()

	l.Info("Triggering sync", zap.String("direction", string(direction)), zap.Bool("dry_run", dryRun))
	report, shared, err := h.service.Sync(ctx, direction, dryRun)
	if err != nil {
		l.Error("Sync failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(syncResponse{Report: report, Summary: report.Lines(), Shared: shared})
}

// HandleLast returns the last successful full pass.
func (h *Handler) HandleLast(c *fiber.Ctx) error {
	report, ok := h.service.Last()
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no sync has completed yet"})
	}
	return c.JSON(syncResponse{Report: report, Summary: report.Lines()})
}

// HandlePrepare adds the reserved columns to the table.
func (h *Handler) HandlePrepare(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	ctx, cancel := h.context(c)
	defer cancel()

	header, err := h.service.Prepare(ctx)
	if err != nil {
		l.Error("Prepare failed", zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Table prepared", zap.Strings("header", header))
	return c.JSON(fiber.Map{"status": "prepared", "header": header})
}

func (h *Handler) context(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), h.timeout)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, reconcile.ErrSchema),
		errors.Is(err, reconcile.ErrEmptyTable),
		errors.Is(err, reconcile.ErrNoCollection),
		errors.Is(err, table.ErrNotRewritable):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, reconcile.ErrStoreUnavailable):
		return fiber.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}
