package vendorsync

import (
	"errors"
	"strconv"

	apperrors "catalog-reconciler/core/errors"
	"catalog-reconciler/core/logger"
	"catalog-reconciler/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for vendor syncs.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/status", h.HandleStatus)
	group.Post("/:vendor", h.HandleSync)
}

// HandleSync runs a sync with the request body as the feed.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	job := Job{
		Vendor:         c.Params("vendor"),
		Scope:          reconcile.GlobalScope(),
		DryRun:         c.QueryBool("dry_run"),
		ManualOverride: c.QueryBool("override"),
		Full:           c.QueryBool("full"),
	}
	if company := c.Query("company"); company != "" {
		id, err := strconv.ParseUint(company, 10, 64)
		if err != nil || id == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "company must be a positive integer"})
		}
		job.Scope = reconcile.CompanyScope(uint(id))
	}

	feed := string(c.Body())
	if feed == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "request body must contain the feed"})
	}

	l.Info("Sync requested",
		zap.String("vendor", job.Vendor),
		zap.String("scope", job.Scope.String()),
		zap.Bool("dry_run", job.DryRun),
		zap.Int("bytes", len(feed)),
	)

	res, err := h.service.Trigger(c.UserContext(), job, feed)
	switch {
	case errors.Is(err, apperrors.ErrInvalidSlug):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(res)
	case res.Busy:
		return c.Status(fiber.StatusConflict).JSON(res)
	}
	return c.JSON(res)
}

// HandleStatus returns the last result of every job.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"jobs": h.service.Status()})
}
