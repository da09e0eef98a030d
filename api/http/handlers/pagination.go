package handlers

import (
	"github.com/gofiber/fiber/v2"
)

const maxPageSize = 100

// parseLimitOffset reads ?limit= and ?offset=. Out of range values fall
// back to the defaults instead of failing the request.
func parseLimitOffset(c *fiber.Ctx, defLimit int) (limit, offset int) {
	limit = c.QueryInt("limit", defLimit)
	if limit <= 0 || limit > maxPageSize {
		limit = defLimit
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
