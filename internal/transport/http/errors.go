package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/service/patients"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/service/scheduling"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/service/therapists"
	"github.com/BrettNon/EHR-System-for-PIES-Holistic-Yoga/internal/store"
)

type conflictBody struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

// mapServiceError translates service and store errors into HTTP errors.
// Anything unrecognized stays a 500 so infrastructure failures are never
// dressed up as client mistakes.
func mapServiceError(err error) error {
	var conflict *scheduling.ConflictError
	if errors.As(err, &conflict) {
		return echo.NewHTTPError(http.StatusConflict, conflictBody{
			Message: conflict.Error(),
			Kind:    string(conflict.Kind),
		})
	}

	var interval *scheduling.InvalidIntervalError
	if errors.As(err, &interval) {
		return echo.NewHTTPError(http.StatusBadRequest, interval.Error())
	}

	var schedV *scheduling.ValidationError
	if errors.As(err, &schedV) {
		return echo.NewHTTPError(http.StatusBadRequest, schedV.Error())
	}
	var patV *patients.ValidationError
	if errors.As(err, &patV) {
		return echo.NewHTTPError(http.StatusBadRequest, patV.Error())
	}
	var therV *therapists.ValidationError
	if errors.As(err, &therV) {
		return echo.NewHTTPError(http.StatusBadRequest, therV.Error())
	}

	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	if errors.Is(err, store.ErrConflict) {
		return echo.NewHTTPError(http.StatusConflict, conflictBody{Message: "conflict"})
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
