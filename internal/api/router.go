package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskloop/taskloop-api/docs"
	"github.com/taskloop/taskloop-api/internal/api/handler"
	"github.com/taskloop/taskloop-api/internal/api/middleware"
	"github.com/taskloop/taskloop-api/internal/core/service"
	infmongo "github.com/taskloop/taskloop-api/internal/infrastructure/db/mongo"
	infredis "github.com/taskloop/taskloop-api/internal/infrastructure/db/redis"
	healthhandlers "github.com/taskloop/taskloop-api/internal/infrastructure/http/handlers"
)

// Options carries the knobs NewRouter needs beyond its connections.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *goredis.Client, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskloop"))

	// --- Dependencies ---
	denylist := infredis.NewTokenDenylist(rdb)

	authRepo := infmongo.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, denylist, opts.JWTSecret, opts.TokenTTL)
	authHandler := handler.NewAuthHandler(authService)

	todoRepo := infmongo.NewTodoRepository(db)
	categoryRepo := infmongo.NewCategoryRepository(db)
	todoHandler := handler.NewTodoHandler(service.NewTodoService(todoRepo, categoryRepo, opts.Logger))
	categoryHandler := handler.NewCategoryHandler(service.NewCategoryService(categoryRepo, opts.Logger))

	authMiddleware := middleware.Auth(opts.JWTSecret, denylist, opts.Logger)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Todo and category routes (owner-scoped) ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/todos", todoHandler.List)
	v1.POST("/todos", todoHandler.Create)
	v1.GET("/todos/stats", todoHandler.Stats)
	v1.POST("/todos/:id/toggle", todoHandler.Toggle)
	v1.PATCH("/todos/:id", todoHandler.Update)
	v1.DELETE("/todos/:id", todoHandler.Delete)
	v1.GET("/categories", categoryHandler.List)
	v1.POST("/categories", categoryHandler.Create)
	v1.DELETE("/categories/:id", categoryHandler.Delete)

	// --- Operational endpoints (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
