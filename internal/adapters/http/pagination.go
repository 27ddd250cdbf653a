package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/listingmap/internal/core/domain"
)

// SetPageHeaders mirrors the pagination block of a listing result in
// response headers so clients can page without decoding the body.
func SetPageHeaders(c *fiber.Ctx, p domain.PageInfo) {
	c.Set("X-Total-Count", strconv.Itoa(p.Total))
	c.Set("X-Page", strconv.Itoa(p.Page))
	c.Set("X-Page-Size", strconv.Itoa(p.Size))
}
