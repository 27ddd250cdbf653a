package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

// HealthHandler returns a basic liveness check.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"uptime":  time.Since(startedAt).String(),
			"version": Version,
		})
	}
}

// ReadyHandler checks the listing dataset, the polygon store and the
// optional NATS and cache connections.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		checks := make(map[string]string)
		allOK := true

		if deps.Listings != nil {
			checks["listings"] = "ok"
		} else {
			checks["listings"] = "not loaded"
			allOK = false
		}

		switch {
		case deps.Store == nil:
			checks["polygon_store"] = "not configured"
			allOK = false
		case deps.Store.Ping(ctx) != nil:
			checks["polygon_store"] = "unavailable"
			allOK = false
		default:
			checks["polygon_store"] = "ok"
		}

		if deps.Events != nil {
			if deps.Events.Connected() {
				checks["nats"] = "ok"
			} else {
				checks["nats"] = "disconnected"
				allOK = false
			}
		} else {
			checks["nats"] = "not configured"
		}

		if deps.Cache != nil {
			if err := deps.Cache.Ping(ctx); err != nil {
				checks["cache"] = "error: " + err.Error()
				allOK = false
			} else {
				checks["cache"] = "ok"
			}
		} else {
			checks["cache"] = "not configured"
		}

		status := "ready"
		code := fiber.StatusOK
		if !allOK {
			status = "not ready"
			code = fiber.StatusServiceUnavailable
		}

		body := fiber.Map{"status": status, "checks": checks}
		if deps.Listings != nil {
			body["listings"] = deps.Listings.Count()
		}
		return c.Status(code).JSON(body)
	}
}
