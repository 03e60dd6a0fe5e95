package main

import (
	"log"
	"net/http"

	_ "covoiturage/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"covoiturage/internal/auth"
	"covoiturage/internal/cache"
	"covoiturage/internal/config"
	"covoiturage/internal/db"
	"covoiturage/internal/handler"
	"covoiturage/internal/model"
	"covoiturage/internal/repository"
	"covoiturage/internal/router"
	"covoiturage/internal/service"
)

// @title Covoiturage API
// @version 1.0
// @description Carpooling backend: users, cars, trips, reviews and messages with cookie-based JWT authentication.
// @host localhost:3000
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Car{},
		&model.Trip{},
		&model.TripPassenger{},
		&model.Review{},
		&model.Message{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	carRepo := repository.NewCarRepository(gormDB)
	tripRepo := repository.NewTripRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)

	// Auth components
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	// Services
	authService := service.NewAuthService(userRepo, hasher, tokens)
	userService := service.NewUserService(userRepo, hasher, cacheClient)
	carService := service.NewCarService(carRepo)
	tripService := service.NewTripService(tripRepo)
	reviewService := service.NewReviewService(reviewRepo, cacheClient)
	messageService := service.NewMessageService(messageRepo)

	// Handlers
	userHandler := handler.NewUserHandler(authService, userService)
	carHandler := handler.NewCarHandler(carService)
	tripHandler := handler.NewTripHandler(tripService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	messageHandler := handler.NewMessageHandler(messageService)

	router.Register(
		e,
		cfg,
		tokens,
		userRepo,
		userHandler,
		carHandler,
		tripHandler,
		reviewHandler,
		messageHandler,
	)

	log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
