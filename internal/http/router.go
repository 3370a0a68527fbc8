package http

import (
	"log/slog"

	"github.com/geocoder89/dashhub/internal/auth"
	"github.com/geocoder89/dashhub/internal/http/handlers"
	"github.com/geocoder89/dashhub/internal/http/middlewares"
	"github.com/geocoder89/dashhub/internal/observability"
	"github.com/geocoder89/dashhub/internal/repo"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// RouterDeps is the explicitly constructed application context: everything a
// handler needs is built once at startup and injected here, no package-level
// state.
type RouterDeps struct {
	Env     string
	Log     *slog.Logger
	Store   repo.UserStore
	JWT     *auth.Manager
	Prom    *observability.Prom
	Metrics prometheus.Gatherer
	Tracing bool
}

func NewRouter(d RouterDeps) *gin.Engine {
	if d.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(d.Log))

	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}

	if d.Tracing {
		r.Use(otelgin.Middleware("dashhub"))
	}

	// wire up handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(d.Store, d.Store, d.JWT)
	dashboardHandler := handlers.NewDashboardHandler(d.Store)
	adminHandler := handlers.NewAdminUsersHandler(d.Store)

	authGate := middlewares.NewAuthMiddleware(d.JWT)

	r.GET("/api/health", healthHandler.Health)

	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{})))
	}

	r.POST("/api/auth/signup", authHandler.SignUp)
	r.POST("/api/auth/login", authHandler.Login)

	userRoutes := r.Group("/api/user", authGate.RequireAuth())
	{
		userRoutes.GET("/data", dashboardHandler.GetData)
		userRoutes.PUT("/data", dashboardHandler.UpdateData)
	}

	adminRoutes := r.Group("/api/admin", authGate.RequireAuth(), authGate.RequireRole("admin"))
	{
		adminRoutes.GET("/users", adminHandler.List)
		adminRoutes.GET("/users/data", adminHandler.ListData)
		adminRoutes.PUT("/promote/:userId", adminHandler.Promote)
		adminRoutes.DELETE("/users/:userId", adminHandler.Delete)
	}

	return r
}
