package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/oneresume/api/http/handlers"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	Health      *handlers.HealthHandler
	Profile     *handlers.ProfileHandler
	Workflows   *handlers.WorkflowHandler
	Resumes     *handlers.ResumesHandler
	Submissions *handlers.SubmissionsHandler
	JD          *handlers.JDHandler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Эндпоинты health/ready для проб и мониторинга
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	v1.Post("/auth/login", h.Auth.Login)

	p := v1.Group("/profile", authMW)
	p.Get("/", h.Profile.Get)
	p.Post("/", h.Profile.Create)
	p.Delete("/", h.Profile.Delete)
	p.Put("/personal-info", h.Profile.UpsertPersonalInfo)
	p.Post("/:collection", h.Profile.AddItem)
	p.Delete("/:collection/:id", h.Profile.DeleteItem)

	w := v1.Group("/workflows", authMW)
	w.Post("/analyze", h.Workflows.SubmitAnalyze)
	w.Get("/analyze", h.Workflows.GetAnalyze)
	w.Post("/generate", h.Workflows.SubmitGenerate)
	w.Get("/generate", h.Workflows.GetGenerate)

	r := v1.Group("/resumes", authMW)
	r.Get("/", h.Resumes.List)
	r.Get("/:id", h.Resumes.Get)
	r.Get("/:id/links", h.Resumes.Links)

	v1.Get("/jd/:id", authMW, h.JD.Get)
	v1.Get("/submissions", authMW, h.Submissions.List)
}
