// Package kernel assembles the HTTP handler: global middleware stack,
// health and metrics endpoints, and the API routes.
package kernel

import (
	"net/http"

	"github.com/themirzaalibaig/server-ecommerce/app/routes"
	"github.com/themirzaalibaig/server-ecommerce/config"
	"github.com/themirzaalibaig/server-ecommerce/pkg/ctx"
	"github.com/themirzaalibaig/server-ecommerce/pkg/database"
	"github.com/themirzaalibaig/server-ecommerce/pkg/metrics"
	"github.com/themirzaalibaig/server-ecommerce/pkg/middleware"
	"github.com/themirzaalibaig/server-ecommerce/pkg/reqid"
	"github.com/themirzaalibaig/server-ecommerce/pkg/router"
)

// Build constructs the application handler.
func Build() *router.Router {
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics — outermost for accurate total latency
	//  2. Recovery          — catches panics before they kill the goroutine
	//  3. Request ID        — inject unique ID before anything logs
	//  4. Logger            — logs request_id from context
	//  5. CORS              — set CORS headers
	//  6. Rate limiter      — general per-IP budget, rejects abusers early
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions(config.CORSOrigin())))
	r.Use(middleware.RateLimit(middleware.GeneralPolicy))

	// Prometheus /metrics endpoint — no auth.
	r.Get("/metrics", "metrics", metrics.Handler())

	r.Get("/health", "health", ctx.Wrap(health))

	routes.RegisterAPI(r)

	return r
}

// health reports 503 when the database is unreachable so load balancers
// can take the instance out of rotation.
func health(c *ctx.Context) {
	if err := database.Ping(c.Context()); err != nil {
		c.Error(http.StatusServiceUnavailable, "Service unhealthy: database unreachable")
		return
	}
	c.Success("Service is healthy", map[string]string{
		"status":   "ok",
		"database": "ok",
	})
}
