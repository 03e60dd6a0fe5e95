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

// MessageHandler handles message endpoints.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// MessageRequest represents a message creation request.
type MessageRequest struct {
	Date     time.Time `json:"date"`
	Texte    string    `json:"texte" validate:"required"`
	Envoyeur uint      `json:"envoyeur" validate:"required"`
	Receveur uint      `json:"receveur" validate:"required"`
}

// ListMessages godoc
// @Summary List messages
// @Tags message
// @Produce json
// @Success 200 {array} model.Message
// @Failure 401 {object} errors.ErrorResponse
// @Router /message [get]
func (h *MessageHandler) ListMessages(c echo.Context) error {
	messages, err := h.messageService.ListMessages(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, messages)
}

// ListByRecipient godoc
// @Summary List messages received by a user
// @Tags message
// @Produce json
// @Param receveur path int true "Recipient ID"
// @Success 200 {array} model.Message
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /message/receveur/{receveur} [get]
func (h *MessageHandler) ListByRecipient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("receveur"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	messages, err := h.messageService.ListByRecipient(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, messages)
}

// ListBySender godoc
// @Summary List messages sent by a user
// @Tags message
// @Produce json
// @Param envoyeur path int true "Sender ID"
// @Success 200 {array} model.Message
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /message/envoyeur/{envoyeur} [get]
func (h *MessageHandler) ListBySender(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("envoyeur"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	messages, err := h.messageService.ListBySender(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, messages)
}

// CreateMessage godoc
// @Summary Send a message (sender must be the requester unless admin)
// @Tags message
// @Accept json
// @Produce json
// @Param request body MessageRequest true "Message data"
// @Success 201 {object} model.Message
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /message [post]
func (h *MessageHandler) CreateMessage(c echo.Context) error {
	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if !auth.IsSelfOrAdmin(req.Envoyeur, appmw.AuthContext(c)) {
		return forbidden()
	}

	message := &model.Message{
		Date:       req.Date,
		Texte:      req.Texte,
		EnvoyeurID: req.Envoyeur,
		ReceveurID: req.Receveur,
	}
	created, err := h.messageService.CreateMessage(c.Request().Context(), message)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// DeleteMessage godoc
// @Summary Delete a message (sender or admin)
// @Tags message
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /message/{id} [delete]
func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	message, err := h.messageService.GetMessage(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if !auth.IsSelfOrAdmin(message.EnvoyeurID, appmw.AuthContext(c)) {
		return forbidden()
	}

	if err := h.messageService.DeleteMessage(c.Request().Context(), message.ID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "message supprimé avec succès",
	})
}
