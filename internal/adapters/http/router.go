package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/listingmap/internal/pkg/metrics"
)

const handlerTimeout = 15 * time.Second

// legacyListingSunset is when GET /v1/listings?listing_id= goes away.
var legacyListingSunset = time.Date(2027, time.June, 30, 0, 0, 0, 0, time.UTC)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	app.Use(recover.New())

	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	if deps.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        deps.RateLimit,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
			},
		}))
	}

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	app.Use(DeprecationMiddleware([]DeprecatedRoute{
		{Method: fiber.MethodGet, Path: "/v1/listings", Query: "listing_id", SunsetDate: legacyListingSunset, Alternative: "/v1/listings/{id}"},
		{Method: fiber.MethodGet, Path: "/api/v1/listings", Query: "listing_id", SunsetDate: legacyListingSunset, Alternative: "/api/v1/listings/{id}"},
	}))

	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout, fast internal checks)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	app.Get("/api", func(c *fiber.Ctx) error {
		return c.SendString("Hello, World!")
	})

	registerV1(app.Group("/v1"), deps)
	registerV1(app.Group("/api/v1"), deps)

	app.Post("/graphql", GraphQLHandler(deps))

	SetupDocs(app, deps.OpenAPIPath)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if deps.Events == nil {
			return errUnavailable(c, "live events are not enabled")
		}
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.Events)))
}

// registerV1 mounts the versioned API on r. It is mounted under both /v1
// and the legacy /api/v1 prefix.
func registerV1(r fiber.Router, deps *Dependencies) {
	wrap := func(h fiber.Handler) fiber.Handler {
		return timeout.NewWithContext(h, handlerTimeout)
	}

	r.Post("/draw-polygon", wrap(DrawPolygonHandler(deps)))
	r.Get("/draw-polygon/:id", wrap(GetPolygonHandler(deps)))

	r.Post("/listings", wrap(QueryListingsHandler(deps)))
	r.Get("/listings", wrap(LegacyGetListingHandler(deps)))
	r.Get("/listings/:id", wrap(GetListingHandler(deps)))

	r.Get("/saved-search", wrap(ListSavedSearchesHandler(deps)))
	r.Post("/saved-search", wrap(CreateSavedSearchHandler(deps)))
	r.Put("/saved-search", wrap(UpdateSavedSearchHandler(deps)))
	r.Delete("/saved-search", wrap(DeleteSavedSearchHandler(deps)))
}
