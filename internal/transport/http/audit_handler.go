package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
)

type auditService interface {
	ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error)
}

type AuditHandler struct {
	svc auditService
	log *slog.Logger
}

func NewAuditHandler(svc auditService, log *slog.Logger) *AuditHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuditHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.audit")),
	}
}

func (h *AuditHandler) Register(g *echo.Group) {
	g.GET("/audit", h.List, RequireRole(domain.RoleAdmin))
}

func (h *AuditHandler) List(c echo.Context) error {
	limit := 100
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	rows, err := h.svc.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, rows)
}
