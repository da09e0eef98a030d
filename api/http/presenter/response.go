package presenter

import "github.com/gofiber/fiber/v2"

type ErrorResponse struct {
	Message string `json:"message"`
}

// ListResponse wraps list payloads so fields can be added later.
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

func List[T any](c *fiber.Ctx, items []T, limit, offset int) error {
	if items == nil {
		items = []T{}
	}
	return JSON(c, fiber.StatusOK, ListResponse[T]{Items: items, Limit: limit, Offset: offset})
}
