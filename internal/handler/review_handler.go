package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"covoiturage/internal/auth"
	"covoiturage/internal/errors"
	appmw "covoiturage/internal/middleware"
	"covoiturage/internal/model"
	"covoiturage/internal/service"
)

// ReviewHandler handles review endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// ReviewRequest represents a review create or update request.
type ReviewRequest struct {
	Note     int       `json:"note" validate:"min=0,max=5"`
	Date     time.Time `json:"date"`
	Texte    string    `json:"texte"`
	Envoyeur uint      `json:"envoyeur" validate:"required"`
	Receveur uint      `json:"receveur" validate:"required"`
}

// ListReviews godoc
// @Summary List reviews
// @Tags avis
// @Produce json
// @Success 200 {array} model.Review
// @Failure 401 {object} errors.ErrorResponse
// @Router /avis [get]
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	reviews, err := h.reviewService.ListReviews(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reviews)
}

// ListBySender godoc
// @Summary List reviews written by a user
// @Tags avis
// @Produce json
// @Param envoyeur path int true "Sender ID"
// @Success 200 {array} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /avis/emetteur/{envoyeur} [get]
func (h *ReviewHandler) ListBySender(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("envoyeur"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	reviews, err := h.reviewService.ListBySender(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reviews)
}

// ListByRecipient godoc
// @Summary List reviews received by a user
// @Tags avis
// @Produce json
// @Param receveur path int true "Recipient ID"
// @Success 200 {array} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /avis/destinataire/{receveur} [get]
func (h *ReviewHandler) ListByRecipient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("receveur"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	reviews, err := h.reviewService.ListByRecipient(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reviews)
}

// GetAverage godoc
// @Summary Get the average note received by a user
// @Tags avis
// @Produce json
// @Param receveur path int true "Recipient ID"
// @Success 200 {object} service.RatingAverage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /avis/moyenne/{receveur} [get]
func (h *ReviewHandler) GetAverage(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("receveur"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	avg, err := h.reviewService.AverageForRecipient(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, avg)
}

// CreateReview godoc
// @Summary Add a review (sender must be the requester unless admin)
// @Tags avis
// @Accept json
// @Produce json
// @Param request body ReviewRequest true "Review data"
// @Success 201 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /avis [post]
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if !auth.IsSelfOrAdmin(req.Envoyeur, appmw.AuthContext(c)) {
		return forbidden()
	}

	review := &model.Review{
		Note:       req.Note,
		Date:       req.Date,
		Texte:      req.Texte,
		EnvoyeurID: req.Envoyeur,
		ReceveurID: req.Receveur,
	}
	created, err := h.reviewService.CreateReview(c.Request().Context(), review)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateReview godoc
// @Summary Update a review (sender or admin)
// @Tags avis
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Param request body ReviewRequest true "Fields to update"
// @Success 200 {object} model.Review
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /avis/{id} [put]
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	review, err := h.reviewService.GetReview(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if !auth.IsSelfOrAdmin(review.EnvoyeurID, appmw.AuthContext(c)) {
		return forbidden()
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	review.Note = req.Note
	review.Date = req.Date
	review.Texte = req.Texte
	review.EnvoyeurID = req.Envoyeur
	review.ReceveurID = req.Receveur

	updated, err := h.reviewService.UpdateReview(c.Request().Context(), review)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteReview godoc
// @Summary Delete a review (sender or admin)
// @Tags avis
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /avis/{id} [delete]
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	review, err := h.reviewService.GetReview(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if !auth.IsSelfOrAdmin(review.EnvoyeurID, appmw.AuthContext(c)) {
		return forbidden()
	}

	if err := h.reviewService.DeleteReview(c.Request().Context(), review.ID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "avis supprimé avec succès",
	})
}
