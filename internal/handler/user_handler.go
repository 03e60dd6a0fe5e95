package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"covoiturage/internal/auth"
	"covoiturage/internal/errors"
	appmw "covoiturage/internal/middleware"
	"covoiturage/internal/model"
	"covoiturage/internal/service"
)

// UserHandler handles user and authentication endpoints.
type UserHandler struct {
	authService service.AuthService
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(authService service.AuthService, userService service.UserService) *UserHandler {
	return &UserHandler{authService: authService, userService: userService}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username   string `json:"username" validate:"required"`
	MotDePasse string `json:"motdepasse" validate:"required"`
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Nom         string `json:"nom" validate:"required"`
	Prenom      string `json:"prenom" validate:"required"`
	Age         int    `json:"age"`
	Username    string `json:"username" validate:"required"`
	Numtel      string `json:"numtel"`
	PhotoProfil string `json:"photoprofil"`
	Securise    bool   `json:"securise"`
	MotDePasse  string `json:"motdepasse" validate:"required"`
}

// UpdateUserRequest represents a user update request. An empty motdepasse
// keeps the current password.
type UpdateUserRequest struct {
	Nom         string `json:"nom"`
	Prenom      string `json:"prenom"`
	Age         int    `json:"age"`
	Username    string `json:"username"`
	Numtel      string `json:"numtel"`
	PhotoProfil string `json:"photoprofil"`
	Securise    bool   `json:"securise"`
	MotDePasse  string `json:"motdepasse"`
}

// AdminStatusResponse represents the admin-status probe response.
type AdminStatusResponse struct {
	EstAdmin bool `json:"estadmin"`
}

// Login godoc
// @Summary Login and receive the session cookie
// @Tags utilisateurs
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /utilisateurs/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "nom d'utilisateur et mot de passe requis")
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.MotDePasse)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.SetCookie(&http.Cookie{
		Name:     appmw.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
	})
	return c.JSON(http.StatusOK, map[string]string{
		"message": "connexion réussie",
	})
}

// MyAdminStatus godoc
// @Summary Report whether the authenticated user is an admin
// @Tags utilisateurs
// @Produce json
// @Success 200 {object} AdminStatusResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /utilisateurs/my-admin-status [get]
func (h *UserHandler) MyAdminStatus(c echo.Context) error {
	actx := appmw.AuthContext(c)
	if actx == nil || !actx.AdminResolved() {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "internal server error",
			Code:  "INTERNAL_ERROR",
		})
	}
	return c.JSON(http.StatusOK, AdminStatusResponse{EstAdmin: actx.IsAdmin()})
}

// Register godoc
// @Summary Register a new user
// @Tags utilisateurs
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /utilisateurs [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := &model.User{
		Nom:         req.Nom,
		Prenom:      req.Prenom,
		Age:         req.Age,
		Username:    req.Username,
		Numtel:      req.Numtel,
		PhotoProfil: req.PhotoProfil,
		Securise:    req.Securise,
	}
	created, err := h.authService.Register(c.Request().Context(), user, req.MotDePasse)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// ListUsers godoc
// @Summary List users
// @Tags utilisateurs
// @Produce json
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /utilisateurs [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get user by id
// @Tags utilisateurs
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /utilisateurs/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	user, err := h.userService.GetUser(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update a user (self or admin)
// @Tags utilisateurs
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /utilisateurs/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if !auth.IsSelfOrAdmin(uint(id), appmw.AuthContext(c)) {
		return forbidden()
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	updated, err := h.userService.UpdateUser(c.Request().Context(), uint(id), service.UserUpdate{
		Nom:         req.Nom,
		Prenom:      req.Prenom,
		Age:         req.Age,
		Username:    req.Username,
		Numtel:      req.Numtel,
		PhotoProfil: req.PhotoProfil,
		Securise:    req.Securise,
		MotDePasse:  req.MotDePasse,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteUser godoc
// @Summary Delete a user (self or admin)
// @Tags utilisateurs
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /utilisateurs/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if !auth.IsSelfOrAdmin(uint(id), appmw.AuthContext(c)) {
		return forbidden()
	}

	if err := h.userService.DeleteUser(c.Request().Context(), uint(id)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "utilisateur supprimé avec succès",
	})
}

// forbidden is the uniform response for a failed ownership check.
func forbidden() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
		Error: "accès refusé",
		Code:  "FORBIDDEN",
	})
}
