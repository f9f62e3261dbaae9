package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/pet-management/docs"
	"github.com/99minutos/pet-management/internal/api/handler"
	"github.com/99minutos/pet-management/internal/api/metrics"
	"github.com/99minutos/pet-management/internal/api/middleware"
	"github.com/99minutos/pet-management/internal/core/ports"
	"github.com/99minutos/pet-management/internal/infrastructure/http/handlers"
)

// Dependencies are the process-wide collaborators the routes are built from.
type Dependencies struct {
	AuthService ports.AuthService
	PetService  ports.PetService
	Identity    ports.IdentityResolver
	// Mongo backs the readiness probe; nil reports the store as unavailable.
	Mongo  handlers.Pinger
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"*"},
	}))
	e.Use(metrics.Middleware())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	petHandler := handler.NewPetHandler(deps.PetService)
	authMiddleware := middleware.Auth(deps.Identity)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Pet routes (bearer token required) ---
	pets := e.Group("/pets", authMiddleware)
	pets.GET("", petHandler.List)
	pets.POST("", petHandler.Create)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo)

	e.GET("/", healthHandler.Liveness)                   // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – is MongoDB reachable?

	// --- Operations ---
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
