package http

import "github.com/gofiber/fiber/v2"

// Messages clients match on; keep them stable.
const (
	msgPolygonNotString = "polygon must be a string"
	msgInvalidPolygon   = "Invalid polygon format"
	msgInvalidRegion    = "Invalid polygonRegionId"
	msgInternal         = "Internal server error"
	msgSearchNotFound   = "Search not found"
	msgListingNotFound  = "Listing not found"
	msgPolygonNotFound  = "Polygon not found"
	msgInvalidBody      = "invalid request body"
)

// APIError is a structured error response.
type APIError struct {
	Message   string `json:"error"`
	Status    int    `json:"status"`
	Code      string `json:"code"` // bad_request, not_found, internal_error, ...
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Message:   message,
		Status:    status,
		Code:      code,
		RequestID: reqID,
	})
}

func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

// errInternal logs err with the request logger and answers with the generic
// message; internal details never reach the client.
func errInternal(c *fiber.Ctx, err error) error {
	LoggerFromCtx(c.UserContext()).Error("request failed",
		"method", c.Method(), "path", c.Path(), "error", err)
	return newError(c, fiber.StatusInternalServerError, "internal_error", msgInternal)
}

func errUnavailable(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusServiceUnavailable, "unavailable", msg)
}
