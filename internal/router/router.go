package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"covoiturage/internal/auth"
	"covoiturage/internal/config"
	"covoiturage/internal/handler"
	appmw "covoiturage/internal/middleware"
	"covoiturage/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokens *auth.TokenService,
	userRepo repository.UserRepository,
	userHandler *handler.UserHandler,
	carHandler *handler.CarHandler,
	tripHandler *handler.TripHandler,
	reviewHandler *handler.ReviewHandler,
	messageHandler *handler.MessageHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("10M"))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	authn := appmw.Authenticate(tokens)
	adminStatus := appmw.RequireAdminStatus(userRepo)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	u := e.Group("/utilisateurs")
	u.POST("", userHandler.Register)
	u.POST("/login", userHandler.Login)
	u.GET("", userHandler.ListUsers, authn)
	u.GET("/my-admin-status", userHandler.MyAdminStatus, authn, adminStatus)
	u.GET("/:id", userHandler.GetUser, authn)
	u.PUT("/:id", userHandler.UpdateUser, authn, adminStatus)
	u.DELETE("/:id", userHandler.DeleteUser, authn, adminStatus)

	v := e.Group("/voiture", authn)
	v.GET("", carHandler.ListCars)
	v.GET("/:plaque", carHandler.GetCar)
	v.POST("", carHandler.CreateCar, adminStatus)
	v.PUT("/:plaque", carHandler.UpdateCar, adminStatus)
	v.DELETE("/:plaque", carHandler.DeleteCar, adminStatus)

	t := e.Group("/trajets", authn)
	t.GET("", tripHandler.ListTrips)
	t.GET("/conducteur/:id", tripHandler.ListByDriver)
	t.GET("/passager/:id", tripHandler.ListByPassenger)
	t.POST("", tripHandler.CreateTrip, adminStatus)
	t.PUT("/:id", tripHandler.UpdateTrip, adminStatus)
	t.DELETE("/:id", tripHandler.DeleteTrip, adminStatus)
	t.POST("/:id/passagers", tripHandler.RegisterPassenger)
	t.DELETE("/:id/passagers/:userId", tripHandler.UnregisterPassenger, adminStatus)

	a := e.Group("/avis")
	a.GET("", reviewHandler.ListReviews, authn)
	a.GET("/emetteur/:envoyeur", reviewHandler.ListBySender, authn)
	a.GET("/destinataire/:receveur", reviewHandler.ListByRecipient, authn)
	// rating averages are shown on public profiles, no cookie required
	a.GET("/moyenne/:receveur", reviewHandler.GetAverage)
	a.POST("", reviewHandler.CreateReview, authn, adminStatus)
	a.PUT("/:id", reviewHandler.UpdateReview, authn, adminStatus)
	a.DELETE("/:id", reviewHandler.DeleteReview, authn, adminStatus)

	m := e.Group("/message", authn)
	m.GET("", messageHandler.ListMessages)
	m.GET("/receveur/:receveur", messageHandler.ListByRecipient)
	m.GET("/envoyeur/:envoyeur", messageHandler.ListBySender)
	m.POST("", messageHandler.CreateMessage, adminStatus)
	m.DELETE("/:id", messageHandler.DeleteMessage, adminStatus)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
