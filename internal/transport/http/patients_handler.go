package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/service/patients"
)

type patientsService interface {
	Create(ctx context.Context, actor string, in patients.Input) (domain.Patient, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Patient, error)
	ListActive(ctx context.Context) ([]domain.Patient, error)
	ListByTherapist(ctx context.Context, therapistID uuid.UUID) ([]domain.Patient, error)
	Update(ctx context.Context, actor string, id uuid.UUID, in patients.Input) (domain.Patient, error)
	Deactivate(ctx context.Context, actor string, id uuid.UUID) error
}

type PatientsHandler struct {
	svc patientsService
	log *slog.Logger
}

func NewPatientsHandler(svc patientsService, log *slog.Logger) *PatientsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &PatientsHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.patients")),
	}
}

func (h *PatientsHandler) Register(g *echo.Group) {
	g.POST("/patients", h.Create)
	g.GET("/patients", h.List)
	g.GET("/patients/:id", h.Get)
	g.PUT("/patients/:id", h.Update)
	g.DELETE("/patients/:id", h.Deactivate)
}

type patientRequest struct {
	FirstName             string     `json:"first_name"`
	LastName              string     `json:"last_name"`
	DateOfBirth           *time.Time `json:"date_of_birth"`
	Address               string     `json:"address"`
	City                  string     `json:"city"`
	State                 string     `json:"state"`
	ZipCode               string     `json:"zip_code"`
	Email                 string     `json:"email"`
	HomePhoneNumber       string     `json:"home_phone_number"`
	CellPhoneNumber       string     `json:"cell_phone_number"`
	WorkPhoneNumber       string     `json:"work_phone_number"`
	EmergencyContactName  string     `json:"emergency_contact_name"`
	EmergencyContactPhone string     `json:"emergency_contact_phone"`
	ReferredBy            string     `json:"referred_by"`
	TherapistID           uuid.UUID  `json:"therapist_id"`
}

func (r patientRequest) toInput() patients.Input {
	return patients.Input{
		FirstName:             r.FirstName,
		LastName:              r.LastName,
		DateOfBirth:           r.DateOfBirth,
		Address:               r.Address,
		City:                  r.City,
		State:                 r.State,
		ZipCode:               r.ZipCode,
		Email:                 r.Email,
		HomePhoneNumber:       r.HomePhoneNumber,
		CellPhoneNumber:       r.CellPhoneNumber,
		WorkPhoneNumber:       r.WorkPhoneNumber,
		EmergencyContactName:  r.EmergencyContactName,
		EmergencyContactPhone: r.EmergencyContactPhone,
		ReferredBy:            r.ReferredBy,
		TherapistID:           r.TherapistID,
	}
}

func (h *PatientsHandler) Create(c echo.Context) error {
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := Actor(c)
	p, err := h.svc.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return mapServiceError(err)
	}

	h.log.Info("patient created", slog.String("patient_id", p.ID.String()), slog.String("actor", actor))
	return c.JSON(http.StatusCreated, p)
}

func (h *PatientsHandler) List(c echo.Context) error {
	if tid := c.QueryParam("therapist_id"); tid != "" {
		id, err := uuid.Parse(tid)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid therapist_id")
		}
		rows, err := h.svc.ListByTherapist(c.Request().Context(), id)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(http.StatusOK, rows)
	}

	rows, err := h.svc.ListActive(c.Request().Context())
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *PatientsHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PatientsHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	var req patientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := Actor(c)
	p, err := h.svc.Update(c.Request().Context(), actor, id, req.toInput())
	if err != nil {
		return mapServiceError(err)
	}

	h.log.Info("patient updated", slog.String("patient_id", id.String()), slog.String("actor", actor))
	return c.JSON(http.StatusOK, p)
}

func (h *PatientsHandler) Deactivate(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}

	actor := Actor(c)
	if err := h.svc.Deactivate(c.Request().Context(), actor, id); err != nil {
		return mapServiceError(err)
	}

	h.log.Info("patient deactivated", slog.String("patient_id", id.String()), slog.String("actor", actor))
	return c.NoContent(http.StatusNoContent)
}
