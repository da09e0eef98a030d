package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/oneresume/api/http/presenter"
	"github.com/artem13815/oneresume/pkg/resume"
	"github.com/artem13815/oneresume/pkg/workspace"
)

// ResumeCatalog is the read side of the resume API.
type ResumeCatalog interface {
	List(ctx context.Context, profileID string) ([]resume.Resume, error)
	Get(ctx context.Context, id string) (resume.Resume, error)
	DownloadRefs(resumeID string) resume.DownloadRefs
}

type ResumesHandler struct {
	catalog    ResumeCatalog
	workspaces *workspace.Manager
}

func NewResumesHandler(catalog ResumeCatalog, workspaces *workspace.Manager) *ResumesHandler {
	return &ResumesHandler{catalog: catalog, workspaces: workspaces}
}

type resumeItem struct {
	resume.Resume
	Downloads resume.DownloadRefs `json:"downloads"`
}

// List возвращает список резюме, сгенерированных для профиля пользователя.
// @Summary List generated resumes
// @Tags    resumes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.ListResponse[resumeItem]
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /resumes [get]
func (h *ResumesHandler) List(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return writeError(c, err)
	}
	p, err := h.workspaces.Get(uid).Profile.Ensure(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.catalog.List(c.UserContext(), p.ID)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]resumeItem, 0, len(list))
	for _, r := range list {
		items = append(items, resumeItem{Resume: r, Downloads: h.catalog.DownloadRefs(r.ID)})
	}
	return presenter.List(c, items, 0, 0)
}

// Get возвращает метаданные одного резюме.
// @Summary Get generated resume
// @Tags    resumes
// @Produce json
// @Param   id path string true "resume id"
// @Security BearerAuth
// @Success 200 {object} resumeItem
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /resumes/{id} [get]
func (h *ResumesHandler) Get(c *fiber.Ctx) error {
	r, err := h.catalog.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, resumeItem{Resume: r, Downloads: h.catalog.DownloadRefs(r.ID)})
}

// Links собирает ссылки на скачивание без обращения к API.
// @Summary Download links
// @Tags    resumes
// @Produce json
// @Param   id path string true "resume id"
// @Security BearerAuth
// @Success 200 {object} resume.DownloadRefs
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /resumes/{id}/links [get]
func (h *ResumesHandler) Links(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return presenter.Error(c, http.StatusBadRequest, "resume id is required")
	}
	return presenter.JSON(c, http.StatusOK, h.catalog.DownloadRefs(id))
}
