package server

import (
	"net/http"
	"strings"

	"github.com/eaglebank/accounts/internal/handler"
	"github.com/eaglebank/accounts/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const jsonMediaType = "application/json"

// RouterConfig carries what NewRouter needs to build the route table.
type RouterConfig struct {
	Accounts *handler.AccountHandler
	Logger   *zap.Logger
	Registry *prometheus.Registry
}

// NewRouter builds the HTTP surface of the service. Known paths answer
// unsupported methods with 405.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Metrics wraps recovery so that requests ending in a panic are counted.
	router.Use(middleware.NewMetrics(cfg.Registry).Handler())
	router.Use(middleware.RequestID())
	router.Use(middleware.LoggingMiddleware(cfg.Logger)...)
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS())

	router.NoMethod(func(c *gin.Context) {
		middleware.RespondWithError(c, http.StatusMethodNotAllowed, "Method not allowed")
	})
	router.NoRoute(func(c *gin.Context) {
		middleware.RespondWithError(c, http.StatusNotFound, "Not found")
	})

	metrics := gin.WrapH(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	router.Match([]string{http.MethodGet, http.MethodHead}, "/health", handler.Health)
	router.Match([]string{http.MethodGet, http.MethodHead}, "/", handler.Index)
	router.Match([]string{http.MethodGet, http.MethodHead}, "/metrics", metrics)
	router.OPTIONS("/health", allow(http.MethodGet, http.MethodHead))
	router.OPTIONS("/", allow(http.MethodGet, http.MethodHead))
	router.OPTIONS("/metrics", allow(http.MethodGet, http.MethodHead))

	accounts := router.Group("/accounts")
	{
		accounts.POST("", middleware.RequireContentType(jsonMediaType), cfg.Accounts.CreateAccount)
		accounts.Match([]string{http.MethodGet, http.MethodHead}, "", cfg.Accounts.ListAccounts)
		accounts.OPTIONS("", allow(http.MethodGet, http.MethodHead, http.MethodPost))
		accounts.Match([]string{http.MethodGet, http.MethodHead}, "/:id", cfg.Accounts.GetAccount)
		accounts.PUT("/:id", cfg.Accounts.UpdateAccount)
		accounts.DELETE("/:id", cfg.Accounts.DeleteAccount)
		accounts.OPTIONS("/:id", allow(http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete))
	}

	return router
}

// allow answers OPTIONS with the methods a path supports. CORS preflight
// requests are answered earlier by the CORS middleware.
func allow(methods ...string) gin.HandlerFunc {
	header := strings.Join(append(methods, http.MethodOptions), ", ")
	return func(c *gin.Context) {
		c.Header("Allow", header)
		c.Status(http.StatusNoContent)
	}
}
