package vendors

import (
	"errors"

	apperrors "catalog-reconciler/core/errors"
	"catalog-reconciler/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the vendor registry.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the vendor routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/vendors")
	group.Get("/consistency", h.HandleConsistency)
	group.Post("/autofix", h.HandleAutoFix)
	group.Get("/:slug/rank", h.HandleRank)
	group.Delete("/:slug/cache", h.HandleInvalidate)
	if h.service.CanWrite() {
		group.Put("/:slug", h.HandleSetRank)
	}
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidSlug), errors.Is(err, apperrors.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, apperrors.ErrBackingStore):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// HandleRank resolves a vendor rank.
func (h *Handler) HandleRank(c *fiber.Ctx) error {
	info, err := h.service.Rank(c.UserContext(), c.Params("slug"))
	if err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(info)
}

type setRankRequest struct {
	DisplayName string `json:"display_name"`
	Rank        *int   `json:"rank"`
}

// HandleSetRank creates or updates a vendor.
func (h *Handler) HandleSetRank(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req setRankRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if req.Rank != nil && *req.Rank <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "rank must be a positive integer"})
	}

	v, err := h.service.SetRank(c.UserContext(), c.Params("slug"), req.DisplayName, req.Rank)
	if err != nil {
		l.Error("Failed to set vendor rank", zap.String("vendor", c.Params("slug")), zap.Error(err))
		return c.Status(errorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	l.Info("Vendor rank set", zap.String("vendor", v.Slug), zap.Any("rank", v.PriorityRank))
	return c.JSON(v)
}

// HandleInvalidate drops a cached rank.
func (h *Handler) HandleInvalidate(c *fiber.Ctx) error {
	if err := h.service.Invalidate(c.Params("slug")); err != nil {
		return c.Status(errorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleConsistency reports rank sequence problems.
func (h *Handler) HandleConsistency(c *fiber.Ctx) error {
	report, err := h.service.Consistency(c.UserContext())
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Consistency check failed", zap.Error(err))
		return c.Status(errorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleAutoFix renumbers vendor ranks.
func (h *Handler) HandleAutoFix(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	l.Info("Priority auto-fix requested")

	updated, err := h.service.AutoFix(c.UserContext())
	if err != nil {
		l.Error("Priority auto-fix failed", zap.Error(err))
		return c.Status(errorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "fixed", "vendors_updated": updated})
}
