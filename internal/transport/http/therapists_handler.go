package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/service/therapists"
)

type therapistsService interface {
	Create(ctx context.Context, actor string, in therapists.CreateInput) (domain.Therapist, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Therapist, error)
	ListActive(ctx context.Context) ([]domain.Therapist, error)
	Update(ctx context.Context, actor string, id uuid.UUID, in therapists.UpdateInput) (domain.Therapist, error)
	Deactivate(ctx context.Context, actor string, id uuid.UUID) error
}

type TherapistsHandler struct {
	svc therapistsService
	log *slog.Logger
}

func NewTherapistsHandler(svc therapistsService, log *slog.Logger) *TherapistsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TherapistsHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.therapists")),
	}
}

// Register mounts therapist routes. Creation and deactivation are
// admin-only; the rest is open to any authenticated user.
func (h *TherapistsHandler) Register(g *echo.Group) {
	admin := g.Group("", RequireRole(domain.RoleAdmin))
	admin.POST("/therapists", h.Create)
	admin.DELETE("/therapists/:id", h.Deactivate)

	g.GET("/therapists", h.List)
	g.GET("/therapists/:id", h.Get)
	g.PUT("/therapists/:id", h.Update)
}

type createTherapistRequest struct {
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Title       string      `json:"title"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phone_number"`
	Username    string      `json:"username"`
	Password    string      `json:"password"`
	Role        domain.Role `json:"role"`
}

func (h *TherapistsHandler) Create(c echo.Context) error {
	var req createTherapistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := Actor(c)
	t, err := h.svc.Create(c.Request().Context(), actor, therapists.CreateInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Title:       req.Title,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Username:    req.Username,
		Password:    req.Password,
		Role:        req.Role,
	})
	if err != nil {
		return mapServiceError(err)
	}

	h.log.Info("therapist created", slog.String("therapist_id", t.ID.String()), slog.String("actor", actor))
	return c.JSON(http.StatusCreated, t)
}

func (h *TherapistsHandler) List(c echo.Context) error {
	rows, err := h.svc.ListActive(c.Request().Context())
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *TherapistsHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid therapist id")
	}
	t, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, t)
}

type updateTherapistRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Title       string `json:"title"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

func (h *TherapistsHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid therapist id")
	}
	var req updateTherapistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := Actor(c)
	t, err := h.svc.Update(c.Request().Context(), actor, id, therapists.UpdateInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Title:       req.Title,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return mapServiceError(err)
	}

	h.log.Info("therapist updated", slog.String("therapist_id", id.String()), slog.String("actor", actor))
	return c.JSON(http.StatusOK, t)
}

func (h *TherapistsHandler) Deactivate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid therapist id")
	}

	actor := Actor(c)
	if err := h.svc.Deactivate(c.Request().Context(), actor, id); err != nil {
		return mapServiceError(err)
	}

	h.log.Info("therapist deactivated", slog.String("therapist_id", id.String()), slog.String("actor", actor))
	return c.NoContent(http.StatusNoContent)
}
