package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/taskforge/todo-service/internal/api/handler"
	"github.com/taskforge/todo-service/internal/api/middleware"
	"github.com/taskforge/todo-service/internal/core/ports"
	"github.com/taskforge/todo-service/internal/core/service"
	"github.com/taskforge/todo-service/internal/infrastructure/db/postgres"
	"github.com/taskforge/todo-service/internal/infrastructure/db/redis"
	"github.com/taskforge/todo-service/internal/security"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the credential cache is then bypassed.
func NewRouter(db *sql.DB, rdb *goredis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("todoapi"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	todoRepo := postgres.NewTodoRepository(db)

	var cache ports.CredentialCache
	if rdb != nil {
		cache = redis.NewCredentialCache(rdb)
	}

	codec := security.NewTokenCodec(jwtSecret)
	authService := service.NewAuthService(userRepo, cache, codec, log)
	userService := service.NewUserService(userRepo, cache, log)
	todoService := service.NewTodoService(todoRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	todoHandler := handler.NewTodoHandler(todoService)
	requireAuth := middleware.Auth(authService)

	// --- Auth routes ---
	e.POST("/auth/token", authHandler.Token)
	e.POST("/auth/refresh-token", authHandler.Refresh, requireAuth)

	// --- User routes (registration and reads are public) ---
	e.POST("/users/", userHandler.Create)
	e.GET("/users/", userHandler.List)
	e.GET("/users/:id", userHandler.Get)
	e.PUT("/users/:id", userHandler.Update, requireAuth)
	e.DELETE("/users/:id", userHandler.Delete, requireAuth)

	// --- Todo routes (all owner-scoped) ---
	todos := e.Group("/todo", requireAuth)
	todos.POST("/", todoHandler.Create)
	todos.GET("/", todoHandler.List)
	todos.PATCH("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
