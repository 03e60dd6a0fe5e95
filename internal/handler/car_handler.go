package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"covoiturage/internal/auth"
	"covoiturage/internal/errors"
	appmw "covoiturage/internal/middleware"
	"covoiturage/internal/model"
	"covoiturage/internal/service"
)

// CarHandler handles car endpoints.
type CarHandler struct {
	carService service.CarService
}

// NewCarHandler creates a new car handler.
func NewCarHandler(carService service.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

// CreateCarRequest represents a car creation request.
type CreateCarRequest struct {
	Marque       string `json:"marque" validate:"required"`
	Modele       string `json:"modele" validate:"required"`
	Couleur      string `json:"couleur"`
	PlaqueImat   string `json:"plaqueimat" validate:"required"`
	Proprietaire uint   `json:"proprietaire" validate:"required"`
}

// UpdateCarRequest represents a car update request.
type UpdateCarRequest struct {
	Marque       string `json:"marque"`
	Modele       string `json:"modele"`
	Couleur      string `json:"couleur"`
	Proprietaire uint   `json:"proprietaire"`
}

// ListCars godoc
// @Summary List cars
// @Tags voiture
// @Produce json
// @Success 200 {array} model.Car
// @Failure 401 {object} errors.ErrorResponse
// @Router /voiture [get]
func (h *CarHandler) ListCars(c echo.Context) error {
	cars, err := h.carService.ListCars(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, cars)
}

// GetCar godoc
// @Summary Get a car by license plate
// @Tags voiture
// @Produce json
// @Param plaque path string true "License plate"
// @Success 200 {object} model.Car
// @Failure 404 {object} errors.ErrorResponse
// @Router /voiture/{plaque} [get]
func (h *CarHandler) GetCar(c echo.Context) error {
	car, err := h.carService.GetCar(c.Request().Context(), c.Param("plaque"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, car)
}

// CreateCar godoc
// @Summary Add a car (owner must be the requester unless admin)
// @Tags voiture
// @Accept json
// @Produce json
// @Param request body CreateCarRequest true "Car data"
// @Success 201 {object} model.Car
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /voiture [post]
func (h *CarHandler) CreateCar(c echo.Context) error {
	var req CreateCarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if !auth.IsSelfOrAdmin(req.Proprietaire, appmw.AuthContext(c)) {
		return forbidden()
	}

	car := &model.Car{
		PlaqueImat:     req.PlaqueImat,
		Marque:         req.Marque,
		Modele:         req.Modele,
		Couleur:        req.Couleur,
		ProprietaireID: req.Proprietaire,
	}
	created, err := h.carService.CreateCar(c.Request().Context(), car)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateCar godoc
// @Summary Update a car (owner or admin)
// @Tags voiture
// @Accept json
// @Produce json
// @Param plaque path string true "License plate"
// @Param request body UpdateCarRequest true "Fields to update"
// @Success 200 {object} model.Car
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /voiture/{plaque} [put]
func (h *CarHandler) UpdateCar(c echo.Context) error {
	car, err := h.carService.GetCar(c.Request().Context(), c.Param("plaque"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if !auth.IsSelfOrAdmin(car.ProprietaireID, appmw.AuthContext(c)) {
		return forbidden()
	}

	var req UpdateCarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	car.Marque = req.Marque
	car.Modele = req.Modele
	car.Couleur = req.Couleur
	if req.Proprietaire != 0 {
		car.ProprietaireID = req.Proprietaire
	}

	updated, err := h.carService.UpdateCar(c.Request().Context(), car)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteCar godoc
// @Summary Delete a car (owner or admin)
// @Tags voiture
// @Produce json
// @Param plaque path string true "License plate"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /voiture/{plaque} [delete]
func (h *CarHandler) DeleteCar(c echo.Context) error {
	car, err := h.carService.GetCar(c.Request().Context(), c.Param("plaque"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if !auth.IsSelfOrAdmin(car.ProprietaireID, appmw.AuthContext(c)) {
		return forbidden()
	}

	if err := h.carService.DeleteCar(c.Request().Context(), car.PlaqueImat); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "voiture supprimée avec succès",
	})
}
