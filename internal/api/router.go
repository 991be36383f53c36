package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/peopledir/people-api/docs"
	"github.com/peopledir/people-api/internal/api/handler"
	"github.com/peopledir/people-api/internal/api/middleware"
	"github.com/peopledir/people-api/internal/core/service"
	mongodb "github.com/peopledir/people-api/internal/infrastructure/db/mongo"
	redisdb "github.com/peopledir/people-api/internal/infrastructure/db/redis"
	"github.com/peopledir/people-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("people_directory"))

	// --- Dependencies ---
	personRepo := mongodb.NewPersonRepository(db)
	adminRepo := mongodb.NewAdminRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	sessions := redisdb.NewSessionStore(rdb)

	auditService := service.NewAuditService(auditRepo, log)
	personService := service.NewPersonService(personRepo, auditService, log)
	authService := service.NewAuthService(adminRepo, sessions, auditService, cfg.JWTSecret, cfg.Session.TTL, log)

	personHandler := handler.NewPersonHandler(personService)
	auditHandler := handler.NewAuditHandler(auditService)
	authHandler := handler.NewAuthHandler(authService, cfg.Session.CookieName, cfg.Session.TTL)

	gated := middleware.RequireSession(authService, cfg.Session.CookieName)
	optional := middleware.OptionalSession(authService, cfg.Session.CookieName)

	// --- API routes ---
	// The original front-end is served from another origin, so /api/* stays
	// open to cross-origin requests.
	api := e.Group("/api", echomiddleware.CORS())

	api.GET("/users", personHandler.List)
	api.GET("/users/:id", personHandler.Get)
	api.POST("/users", personHandler.Create, gated)
	api.PUT("/users/:id", personHandler.Update, gated)
	api.PATCH("/users/:id", personHandler.Toggle, optional)
	api.DELETE("/users/:id", personHandler.Delete, gated)

	api.GET("/logs", auditHandler.List, gated)

	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout, optional)

	// --- Root and operational endpoints ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "به API کاربران خوش آمدید!"})
	})

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
