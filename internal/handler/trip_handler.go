package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"covoiturage/internal/auth"
	"covoiturage/internal/errors"
	appmw "covoiturage/internal/middleware"
	"covoiturage/internal/model"
	"covoiturage/internal/service"
)

// TripHandler handles trip endpoints.
type TripHandler struct {
	tripService service.TripService
}

// NewTripHandler creates a new trip handler.
func NewTripHandler(tripService service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// TripRequest represents a trip create or update request.
type TripRequest struct {
	VilleDepart  string          `json:"villedepart" validate:"required"`
	VilleArrivee string          `json:"villearrivee" validate:"required"`
	HeureDepart  time.Time       `json:"heuredepart"`
	HeureArrivee time.Time       `json:"heurearrivee"`
	Prix         decimal.Decimal `json:"prix"`
	Conducteur   uint            `json:"conducteur" validate:"required"`
}

// ListTrips godoc
// @Summary List trips
// @Tags trajets
// @Produce json
// @Success 200 {array} model.Trip
// @Failure 401 {object} errors.ErrorResponse
// @Router /trajets [get]
func (h *TripHandler) ListTrips(c echo.Context) error {
	trips, err := h.tripService.ListTrips(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, trips)
}

// ListByDriver godoc
// @Summary List trips driven by a user
// @Tags trajets
// @Produce json
// @Param id path int true "Driver ID"
// @Success 200 {array} model.Trip
// @Failure 400 {object} errors.ErrorResponse
// @Router /trajets/conducteur/{id} [get]
func (h *TripHandler) ListByDriver(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	trips, err := h.tripService.ListByDriver(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, trips)
}

// ListByPassenger godoc
// @Summary List trips where a user is registered as passenger
// @Tags trajets
// @Produce json
// @Param id path int true "Passenger ID"
// @Success 200 {array} model.Trip
// @Failure 400 {object} errors.ErrorResponse
// @Router /trajets/passager/{id} [get]
func (h *TripHandler) ListByPassenger(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	trips, err := h.tripService.ListByPassenger(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, trips)
}

// CreateTrip godoc
// @Summary Add a trip (driver must be the requester unless admin)
// @Tags trajets
// @Accept json
// @Produce json
// @Param request body TripRequest true "Trip data"
// @Success 201 {object} model.Trip
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /trajets [post]
func (h *TripHandler) CreateTrip(c echo.Context) error {
	var req TripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if !auth.IsSelfOrAdmin(req.Conducteur, appmw.AuthContext(c)) {
		return forbidden()
	}

	trip := &model.Trip{
		VilleDepart:  req.VilleDepart,
		VilleArrivee: req.VilleArrivee,
		HeureDepart:  req.HeureDepart,
		HeureArrivee: req.HeureArrivee,
		Prix:         req.Prix,
		ConducteurID: req.Conducteur,
	}
	created, err := h.tripService.CreateTrip(c.Request().Context(), trip)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateTrip godoc
// @Summary Update a trip (driver or admin)
// @Tags trajets
// @Accept json
// @Produce json
// @Param id path int true "Trip ID"
// @Param request body TripRequest true "Fields to update"
// @Success 200 {object} model.Trip
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trajets/{id} [put]
func (h *TripHandler) UpdateTrip(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	trip, err := h.tripService.GetTrip(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if !auth.IsSelfOrAdmin(trip.ConducteurID, appmw.AuthContext(c)) {
		return forbidden()
	}

	var req TripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	trip.VilleDepart = req.VilleDepart
	trip.VilleArrivee = req.VilleArrivee
	trip.HeureDepart = req.HeureDepart
	trip.HeureArrivee = req.HeureArrivee
	trip.Prix = req.Prix
	trip.ConducteurID = req.Conducteur

	updated, err := h.tripService.UpdateTrip(c.Request().Context(), trip)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteTrip godoc
// @Summary Delete a trip and its passenger registrations (driver or admin)
// @Tags trajets
// @Produce json
// @Param id path int true "Trip ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trajets/{id} [delete]
func (h *TripHandler) DeleteTrip(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	trip, err := h.tripService.GetTrip(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if !auth.IsSelfOrAdmin(trip.ConducteurID, appmw.AuthContext(c)) {
		return forbidden()
	}

	if err := h.tripService.DeleteTrip(c.Request().Context(), trip.ID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "trajet supprimé avec succès",
	})
}

// RegisterPassenger godoc
// @Summary Register the requester as passenger on a trip
// @Tags trajets
// @Produce json
// @Param id path int true "Trip ID"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /trajets/{id}/passagers [post]
func (h *TripHandler) RegisterPassenger(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	actx := appmw.AuthContext(c)
	if actx == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "authentication required",
			Code:  "UNAUTHENTICATED",
		})
	}

	if err := h.tripService.RegisterPassenger(c.Request().Context(), uint(id), actx.UserID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, map[string]string{
		"message": "passager inscrit avec succès",
	})
}

// UnregisterPassenger godoc
// @Summary Remove a passenger from a trip (self or admin)
// @Tags trajets
// @Produce json
// @Param id path int true "Trip ID"
// @Param userId path int true "Passenger ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /trajets/{id}/passagers/{userId} [delete]
func (h *TripHandler) UnregisterPassenger(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if !auth.IsSelfOrAdmin(uint(userID), appmw.AuthContext(c)) {
		return forbidden()
	}

	if err := h.tripService.UnregisterPassenger(c.Request().Context(), uint(id), uint(userID)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "passager désinscrit avec succès",
	})
}
