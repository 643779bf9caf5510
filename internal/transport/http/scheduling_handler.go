package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/service/scheduling"
)

type schedulingService interface {
	Schedule(ctx context.Context, actor string, in scheduling.ScheduleInput) (domain.Appointment, error)
	Cancel(ctx context.Context, actor string, appointmentID uuid.UUID) error
	HasTherapistConflict(ctx context.Context, therapistID uuid.UUID, proposedStart, proposedEnd time.Time) (bool, error)
	HasPatientConflict(ctx context.Context, patientID uuid.UUID, proposedStart, proposedEnd time.Time) (bool, error)
	ListTherapistSchedule(ctx context.Context, therapistID uuid.UUID, from, to time.Time) ([]domain.Appointment, error)
	ListPatientSchedule(ctx context.Context, patientID uuid.UUID, from, to time.Time) ([]domain.Appointment, error)
}

type SchedulingHandler struct {
	svc schedulingService
	log *slog.Logger
}

func NewSchedulingHandler(svc schedulingService, log *slog.Logger) *SchedulingHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SchedulingHandler{
		svc: svc,
		log: log.With(slog.String("component", "http.scheduling")),
	}
}

func (h *SchedulingHandler) Register(g *echo.Group) {
	g.POST("/appointments", h.Schedule)
	g.DELETE("/appointments/:id", h.Cancel)
	g.GET("/therapists/:id/schedule", h.TherapistSchedule)
	g.GET("/patients/:id/schedule", h.PatientSchedule)
	g.GET("/therapists/:id/availability", h.TherapistAvailability)
	g.GET("/patients/:id/availability", h.PatientAvailability)
}

type scheduleRequest struct {
	TherapistID     uuid.UUID `json:"therapist_id"`
	PatientID       uuid.UUID `json:"patient_id"`
	AppointmentTime time.Time `json:"appointment_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes"`
}

func (h *SchedulingHandler) Schedule(c echo.Context) error {
	var req scheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := Actor(c)
	appt, err := h.svc.Schedule(c.Request().Context(), actor, scheduling.ScheduleInput{
		TherapistID:     req.TherapistID,
		PatientID:       req.PatientID,
		StartTime:       req.AppointmentTime,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		h.log.Info(
			"schedule rejected",
			slog.Any("err", err),
			slog.String("actor", actor),
			slog.String("therapist_id", req.TherapistID.String()),
			slog.String("patient_id", req.PatientID.String()),
		)
		return mapServiceError(err)
	}

	h.log.Info(
		"appointment scheduled",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("actor", actor),
		slog.Time("appointment_time", appt.AppointmentTime),
		slog.Int("duration_minutes", appt.DurationMinutes),
	)
	return c.JSON(http.StatusCreated, appt)
}

func (h *SchedulingHandler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid appointment id")
	}

	actor := Actor(c)
	if err := h.svc.Cancel(c.Request().Context(), actor, id); err != nil {
		return mapServiceError(err)
	}

	h.log.Info("appointment cancelled", slog.String("appointment_id", id.String()), slog.String("actor", actor))
	return c.NoContent(http.StatusNoContent)
}

func (h *SchedulingHandler) TherapistSchedule(c echo.Context) error {
	return h.schedule(c, h.svc.ListTherapistSchedule)
}

func (h *SchedulingHandler) PatientSchedule(c echo.Context) error {
	return h.schedule(c, h.svc.ListPatientSchedule)
}

func (h *SchedulingHandler) schedule(c echo.Context, list func(ctx context.Context, id uuid.UUID, from, to time.Time) ([]domain.Appointment, error)) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	from, to, err := windowParams(c, "from", "to")
	if err != nil {
		return err
	}

	appts, err := list(c.Request().Context(), id, from, to)
	if err != nil {
		return mapServiceError(err)
	}
	if appts == nil {
		appts = []domain.Appointment{}
	}
	return c.JSON(http.StatusOK, appts)
}

type availabilityResponse struct {
	Conflict bool `json:"conflict"`
}

func (h *SchedulingHandler) TherapistAvailability(c echo.Context) error {
	return h.availability(c, h.svc.HasTherapistConflict)
}

func (h *SchedulingHandler) PatientAvailability(c echo.Context) error {
	return h.availability(c, h.svc.HasPatientConflict)
}

func (h *SchedulingHandler) availability(c echo.Context, check func(ctx context.Context, id uuid.UUID, start, end time.Time) (bool, error)) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	start, end, err := windowParams(c, "start", "end")
	if err != nil {
		return err
	}

	conflict, err := check(c.Request().Context(), id, start, end)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(http.StatusOK, availabilityResponse{Conflict: conflict})
}

func windowParams(c echo.Context, fromKey, toKey string) (time.Time, time.Time, error) {
	from, err := time.Parse(time.RFC3339, c.QueryParam(fromKey))
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, fromKey+" must be RFC 3339")
	}
	to, err := time.Parse(time.RFC3339, c.QueryParam(toKey))
	if err != nil {
		return time.Time{}, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, toKey+" must be RFC 3339")
	}
	return from, to, nil
}
