package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/domain"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/service/scheduling"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/store"
)

type fakeSchedulingService struct {
	scheduleFn func(ctx context.Context, actor string, in scheduling.ScheduleInput) (domain.Appointment, error)
	cancelFn   func(ctx context.Context, actor string, appointmentID uuid.UUID) error
	conflictFn func(ctx context.Context, id uuid.UUID, start, end time.Time) (bool, error)
	listFn     func(ctx context.Context, id uuid.UUID, from, to time.Time) ([]domain.Appointment, error)
}

func (f *fakeSchedulingService) Schedule(ctx context.Context, actor string, in scheduling.ScheduleInput) (domain.Appointment, error) {
	return f.scheduleFn(ctx, actor, in)
}

func (f *fakeSchedulingService) Cancel(ctx context.Context, actor string, appointmentID uuid.UUID) error {
	return f.cancelFn(ctx, actor, appointmentID)
}

func (f *fakeSchedulingService) HasTherapistConflict(ctx context.Context, therapistID uuid.UUID, start, end time.Time) (bool, error) {
	return f.conflictFn(ctx, therapistID, start, end)
}

func (f *fakeSchedulingService) HasPatientConflict(ctx context.Context, patientID uuid.UUID, start, end time.Time) (bool, error) {
	return f.conflictFn(ctx, patientID, start, end)
}

func (f *fakeSchedulingService) ListTherapistSchedule(ctx context.Context, therapistID uuid.UUID, from, to time.Time) ([]domain.Appointment, error) {
	return f.listFn(ctx, therapistID, from, to)
}

func (f *fakeSchedulingService) ListPatientSchedule(ctx context.Context, patientID uuid.UUID, from, to time.Time) ([]domain.Appointment, error) {
	return f.listFn(ctx, patientID, from, to)
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(actorContextKey, "reception")
	return c, rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("error type = %T, want *echo.HTTPError", err)
	}
	return he.Code
}

func TestScheduleHandlerCreated(t *testing.T) {
	apptID := uuid.MustParse("00000000-0000-0000-0000-000000000010")
	svc := &fakeSchedulingService{
		scheduleFn: func(ctx context.Context, actor string, in scheduling.ScheduleInput) (domain.Appointment, error) {
			if actor != "reception" {
				t.Fatalf("actor = %q, want %q", actor, "reception")
			}
			return domain.Appointment{ID: apptID, TherapistID: in.TherapistID, PatientID: in.PatientID, ActiveStatus: true}, nil
		},
	}
	h := NewSchedulingHandler(svc, nil)

	body := `{"therapist_id":"00000000-0000-0000-0000-000000000001","patient_id":"00000000-0000-0000-0000-0000000000aa","appointment_time":"2024-01-01T10:00:00Z","duration_minutes":60}`
	c, rec := newTestContext(http.MethodPost, "/api/v1/appointments", body)

	if err := h.Schedule(c); err != nil {
		t.Fatalf("Schedule error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}

	var got domain.Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response decode error: %v", err)
	}
	if got.ID != apptID {
		t.Fatalf("id = %v, want %v", got.ID, apptID)
	}
}

func TestScheduleHandlerConflictMapsTo409(t *testing.T) {
	svc := &fakeSchedulingService{
		scheduleFn: func(ctx context.Context, actor string, in scheduling.ScheduleInput) (domain.Appointment, error) {
			return domain.Appointment{}, &scheduling.ConflictError{Kind: scheduling.TherapistBusy}
		},
	}
	h := NewSchedulingHandler(svc, nil)

	body := `{"therapist_id":"00000000-0000-0000-0000-000000000001","patient_id":"00000000-0000-0000-0000-0000000000aa","appointment_time":"2024-01-01T10:30:00Z","duration_minutes":30}`
	c, _ := newTestContext(http.MethodPost, "/api/v1/appointments", body)

	err := h.Schedule(c)
	if got := httpStatus(t, err); got != http.StatusConflict {
		t.Fatalf("status = %d, want %d", got, http.StatusConflict)
	}
	he := err.(*echo.HTTPError)
	cb, ok := he.Message.(conflictBody)
	if !ok {
		t.Fatalf("message type = %T, want conflictBody", he.Message)
	}
	if cb.Kind != string(scheduling.TherapistBusy) {
		t.Fatalf("kind = %q, want %q", cb.Kind, scheduling.TherapistBusy)
	}
}

func TestScheduleHandlerInvalidIntervalMapsTo400(t *testing.T) {
	svc := &fakeSchedulingService{
		scheduleFn: func(ctx context.Context, actor string, in scheduling.ScheduleInput) (domain.Appointment, error) {
			return domain.Appointment{}, &scheduling.InvalidIntervalError{}
		},
	}
	h := NewSchedulingHandler(svc, nil)

	body := `{"therapist_id":"00000000-0000-0000-0000-000000000001","patient_id":"00000000-0000-0000-0000-0000000000aa","appointment_time":"2024-01-01T10:00:00Z","duration_minutes":0}`
	c, _ := newTestContext(http.MethodPost, "/api/v1/appointments", body)

	if got := httpStatus(t, h.Schedule(c)); got != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", got, http.StatusBadRequest)
	}
}

func TestCancelHandler(t *testing.T) {
	id := uuid.MustParse("00000000-0000-0000-0000-000000000010")
	var gotID uuid.UUID
	svc := &fakeSchedulingService{
		cancelFn: func(ctx context.Context, actor string, appointmentID uuid.UUID) error {
			gotID = appointmentID
			return nil
		},
	}
	h := NewSchedulingHandler(svc, nil)

	c, rec := newTestContext(http.MethodDelete, "/api/v1/appointments/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	if err := h.Cancel(c); err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if gotID != id {
		t.Fatalf("cancelled id = %v, want %v", gotID, id)
	}
}

func TestCancelHandlerNotFoundMapsTo404(t *testing.T) {
	svc := &fakeSchedulingService{
		cancelFn: func(ctx context.Context, actor string, appointmentID uuid.UUID) error {
			return store.ErrNotFound
		},
	}
	h := NewSchedulingHandler(svc, nil)

	c, _ := newTestContext(http.MethodDelete, "/api/v1/appointments/x", "")
	c.SetParamNames("id")
	c.SetParamValues(uuid.Nil.String())

	if got := httpStatus(t, h.Cancel(c)); got != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", got, http.StatusNotFound)
	}
}

func TestTherapistScheduleHandlerEmptyListIsJSONArray(t *testing.T) {
	svc := &fakeSchedulingService{
		listFn: func(ctx context.Context, id uuid.UUID, from, to time.Time) ([]domain.Appointment, error) {
			return nil, nil
		},
	}
	h := NewSchedulingHandler(svc, nil)

	c, rec := newTestContext(http.MethodGet, "/api/v1/therapists/x/schedule?from=2024-01-01T00:00:00Z&to=2024-01-02T00:00:00Z", "")
	c.SetParamNames("id")
	c.SetParamValues("00000000-0000-0000-0000-000000000001")

	if err := h.TherapistSchedule(c); err != nil {
		t.Fatalf("TherapistSchedule error: %v", err)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("body = %q, want empty JSON array", body)
	}
}

func TestScheduleListHandlerRejectsBadWindow(t *testing.T) {
	h := NewSchedulingHandler(&fakeSchedulingService{}, nil)

	c, _ := newTestContext(http.MethodGet, "/api/v1/therapists/x/schedule?from=yesterday&to=tomorrow", "")
	c.SetParamNames("id")
	c.SetParamValues("00000000-0000-0000-0000-000000000001")

	if got := httpStatus(t, h.TherapistSchedule(c)); got != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", got, http.StatusBadRequest)
	}
}

func TestAvailabilityHandler(t *testing.T) {
	svc := &fakeSchedulingService{
		conflictFn: func(ctx context.Context, id uuid.UUID, start, end time.Time) (bool, error) {
			return true, nil
		},
	}
	h := NewSchedulingHandler(svc, nil)

	c, rec := newTestContext(http.MethodGet, "/api/v1/therapists/x/availability?start=2024-01-01T10:00:00Z&end=2024-01-01T11:00:00Z", "")
	c.SetParamNames("id")
	c.SetParamValues("00000000-0000-0000-0000-000000000001")

	if err := h.TherapistAvailability(c); err != nil {
		t.Fatalf("TherapistAvailability error: %v", err)
	}

	var got availabilityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response decode error: %v", err)
	}
	if !got.Conflict {
		t.Fatalf("conflict = false, want true")
	}
}
