package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/oneresume/api/http/presenter"
	"github.com/artem13815/oneresume/pkg/profile"
	"github.com/artem13815/oneresume/pkg/resume"
	"github.com/artem13815/oneresume/pkg/workflow"
	"github.com/artem13815/oneresume/pkg/workspace"
)

type WorkflowHandler struct {
	workspaces *workspace.Manager
}

func NewWorkflowHandler(workspaces *workspace.Manager) *WorkflowHandler {
	return &WorkflowHandler{workspaces: workspaces}
}

type submitRequest struct {
	Text string `json:"text"`
}

type generateState struct {
	workflow.State[resume.GenerationResult]
	Downloads *resume.DownloadRefs `json:"downloads,omitempty"`
}

// Workflow failures still carry the resulting state in the body.
func submitStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return statusFor(err)
}

// SubmitAnalyze runs one JD analysis.
// @Summary Analyze a job description
// @Tags    workflows
// @Accept  json
// @Produce json
// @Param   input body submitRequest true "JD text"
// @Security BearerAuth
// @Success 200 {object} workflow.State[jd.Analysis]
// @Failure 400 {object} workflow.State[jd.Analysis]
// @Failure 409 {object} workflow.State[jd.Analysis]
// @Failure 502 {object} workflow.State[jd.Analysis]
// @Router  /workflows/analyze [post]
func (h *WorkflowHandler) SubmitAnalyze(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	uid, err := userID(c)
	if err != nil {
		return writeError(c, err)
	}
	st, err := h.workspaces.Get(uid).Analyze.Submit(c.UserContext(), req.Text)
	return presenter.JSON(c, submitStatus(err), st)
}

// GetAnalyze returns the current analyze state.
// @Summary Analyze workflow state
// @Tags    workflows
// @Produce json
// @Security BearerAuth
// @Success 200 {object} workflow.State[jd.Analysis]
// @Router  /workflows/analyze [get]
func (h *WorkflowHandler) GetAnalyze(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return writeError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, h.workspaces.Get(uid).Analyze.State())
}

// SubmitGenerate generates a resume for the caller's profile.
// @Summary Generate a tailored resume
// @Tags    workflows
// @Accept  json
// @Produce json
// @Param   input body submitRequest true "JD text"
// @Security BearerAuth
// @Success 200 {object} generateState
// @Failure 400 {object} generateState
// @Failure 404 {object} generateState
// @Failure 502 {object} generateState
// @Router  /workflows/generate [post]
func (h *WorkflowHandler) SubmitGenerate(c *fiber.Ctx) error {
	var req submitRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	uid, err := userID(c)
	if err != nil {
		return writeError(c, err)
	}
	ws := h.workspaces.Get(uid)
	// the workflow reads the loaded snapshot, so load it once
	if _, err := ws.Profile.Ensure(c.UserContext()); err != nil && !errors.Is(err, profile.ErrNoProfile) {
		return writeError(c, err)
	}
	st, err := ws.Generate.Submit(c.UserContext(), req.Text)
	return presenter.JSON(c, submitStatus(err), withDownloads(ws, st))
}

// GetGenerate returns the current generate state.
// @Summary Generate workflow state
// @Tags    workflows
// @Produce json
// @Security BearerAuth
// @Success 200 {object} generateState
// @Router  /workflows/generate [get]
func (h *WorkflowHandler) GetGenerate(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return writeError(c, err)
	}
	ws := h.workspaces.Get(uid)
	return presenter.JSON(c, http.StatusOK, withDownloads(ws, ws.Generate.State()))
}

func withDownloads(ws *workspace.Workspace, st workflow.State[resume.GenerationResult]) generateState {
	out := generateState{State: st}
	if st.Status == workflow.StatusSuccess && st.Result != nil {
		if refs, ok := ws.Generate.DownloadRefs(); ok {
			out.Downloads = &refs
		}
	}
	return out
}
