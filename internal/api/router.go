package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campuslink/association-api/internal/api/handler"
	"github.com/campuslink/association-api/internal/api/middleware"
	"github.com/campuslink/association-api/internal/core/domain"
	"github.com/campuslink/association-api/internal/core/ports"
)

// Deps carries everything the router needs. Services are interfaces so
// tests can wire stubs; db/rdb feed the readiness probe.
type Deps struct {
	AuthService ports.AuthService
	UserService ports.UserService
	ClubService ports.ClubService
	Tokens      ports.TokenService
	Mongo       *mongo.Database
	Redis       *redis.Client
	Logger      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("association"))

	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.UserService)
	clubHandler := handler.NewClubHandler(deps.ClubService)

	authGate := middleware.Auth(deps.Tokens)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- User directory ---
	users := e.Group("/users", authGate)
	users.GET("", userHandler.List, middleware.RequireRole(domain.RoleAdmin))
	users.GET("/presidents", userHandler.Presidents)
	users.GET("/profile", userHandler.Profile)
	users.GET("/:id", userHandler.GetByID, middleware.RequireRole(domain.RoleAdmin))
	users.PUT("/:id", userHandler.Update, middleware.RequireRole(domain.RoleAdmin))
	users.DELETE("/:id", userHandler.Delete, middleware.RequireRole(domain.RoleAdmin))

	// --- Clubs: public reads, gated writes, authenticated membership ---
	e.GET("/clubs", clubHandler.List)
	e.GET("/clubs/:id", clubHandler.GetByID)
	e.POST("/clubs", clubHandler.Create, authGate, middleware.RequireRole(domain.RoleAdmin, domain.RolePresident))
	e.PUT("/clubs/:id", clubHandler.Update, authGate, middleware.RequireRole(domain.RoleAdmin, domain.RoleClubLead))
	e.DELETE("/clubs/:id", clubHandler.Delete, authGate, middleware.RequireRole(domain.RoleAdmin))
	e.POST("/clubs/join/:id", clubHandler.Join, authGate)
	e.POST("/clubs/leave/:id", clubHandler.Leave, authGate)
	e.GET("/clubs/:id/activity", clubHandler.Activity, authGate, middleware.RequireRole(domain.RoleAdmin, domain.RoleClubLead))

	// --- Probes and metrics (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness) // liveness – is the process alive?
	if deps.Mongo != nil && deps.Redis != nil {
		readiness := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
		e.GET("/health/ready", readiness.Readiness) // readiness – are dependencies up?
	}

	return e
}
