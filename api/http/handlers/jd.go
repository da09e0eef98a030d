package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/oneresume/api/http/presenter"
	"github.com/artem13815/oneresume/pkg/jd"
)

type JDReader interface {
	Get(ctx context.Context, id string) (jd.Analysis, error)
}

type JDHandler struct {
	reader JDReader
}

func NewJDHandler(reader JDReader) *JDHandler { return &JDHandler{reader: reader} }

// Get возвращает сохранённый анализ вакансии.
// @Summary Get JD analysis
// @Tags    workflows
// @Produce json
// @Param   id path string true "analysis id"
// @Security BearerAuth
// @Success 200 {object} jd.Analysis
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /jd/{id} [get]
func (h *JDHandler) Get(c *fiber.Ctx) error {
	a, err := h.reader.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, a)
}
