package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/oneresume/api/http/presenter"
	"github.com/artem13815/oneresume/pkg/workflow"
)

// SubmissionLister reads the workflow journal.
type SubmissionLister interface {
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]workflow.Submission, error)
}

type SubmissionsHandler struct {
	journal SubmissionLister
}

// NewSubmissionsHandler accepts a nil journal; the list is then empty.
func NewSubmissionsHandler(journal SubmissionLister) *SubmissionsHandler {
	return &SubmissionsHandler{journal: journal}
}

// List возвращает историю запусков пользователя, новые сверху.
// @Summary Submission history
// @Tags    workflows
// @Produce json
// @Param   limit query int false "page size"
// @Param   offset query int false "page offset"
// @Security BearerAuth
// @Success 200 {object} presenter.ListResponse[workflow.Submission]
// @Router  /submissions [get]
func (h *SubmissionsHandler) List(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return writeError(c, err)
	}
	limit, offset := parseLimitOffset(c, 20)
	if h.journal == nil {
		return presenter.List(c, []workflow.Submission{}, limit, offset)
	}
	items, err := h.journal.ListByUser(c.UserContext(), uid, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.List(c, items, limit, offset)
}
