package app

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vmkteam/appkit"
)

// registerMetrics is a function that initializes metrics and adds /metrics endpoint to echo.
// This endpoint exposes:
// - HTTP metrics (via appkit.HTTPMetrics)
// - Matrix bot metrics (auto-registered via promauto in pkg/matrix/metrics.go)
func (a *App) registerMetrics() {
	// Add HTTP metrics middleware
	a.echo.Use(appkit.HTTPMetrics(appkit.DefaultServerName))

	// Expose all metrics via /metrics endpoint
	a.echo.Any("/metrics", echo.WrapHandler(promhttp.Handler()))
}
