// @title         oneresume API
// @version       1.0
// @description   Client orchestration service for OneResume: profile aggregate, JD analysis and resume generation workflows.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token. Both "Bearer <JWT>" and "<JWT>" are accepted.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	_ "github.com/artem13815/oneresume/docs"

	// internal imports
	"github.com/artem13815/oneresume/api/http"
	"github.com/artem13815/oneresume/api/http/handlers"
	"github.com/artem13815/oneresume/api/http/middleware"
	"github.com/artem13815/oneresume/pkg/config"
	"github.com/artem13815/oneresume/pkg/health"
	"github.com/artem13815/oneresume/pkg/health/checkers"
	"github.com/artem13815/oneresume/pkg/jd"
	"github.com/artem13815/oneresume/pkg/logger"
	"github.com/artem13815/oneresume/pkg/profile"
	"github.com/artem13815/oneresume/pkg/remote"
	pgrepo "github.com/artem13815/oneresume/pkg/repository/postgres"
	"github.com/artem13815/oneresume/pkg/resume"
	"github.com/artem13815/oneresume/pkg/security/jwt"
	"github.com/artem13815/oneresume/pkg/storage/postgres"
	"github.com/artem13815/oneresume/pkg/users"
	"github.com/artem13815/oneresume/pkg/workflow"
	"github.com/artem13815/oneresume/pkg/workspace"
)

func main() {
	// Load configuration from env/.env/config.yaml
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg := logger.New(cfg)

	client := remote.New(cfg.RemoteBaseURL, lg)
	jwtGen := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	readinessChecks := []health.Checker{checkers.NewRemoteChecker(client)}

	// The submission journal is optional: without DATABASE_URL workflows
	// run without history.
	var (
		recorder workflow.Recorder = workflow.NopRecorder{}
		journal  handlers.SubmissionLister
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Open(context.Background(), postgres.Config{DSN: cfg.DatabaseURL})
		if err != nil {
			lg.Error("postgres connect", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		repo, err := pgrepo.NewSubmissionRepository(pool)
		if err != nil {
			lg.Error("init submission journal", "error", err)
			os.Exit(1)
		}
		recorder, journal = repo, repo
		readinessChecks = append(readinessChecks, checkers.NewJournalChecker(repo))
	} else {
		lg.Info("DATABASE_URL not set, submission journal disabled")
	}

	resumes := resume.NewAPI(client)
	jds := jd.NewAPI(client)
	workspaces := workspace.NewManager(profile.NewAPI(client), jds, resumes, recorder, lg)

	// Workspaces outlive no session: evict after one token lifetime of idleness.
	janitor := workspace.NewJanitor(workspaces, 10*time.Minute, time.Duration(cfg.JWTTTLMinutes)*time.Minute, lg)
	if err := janitor.Start(); err != nil {
		lg.Error("start workspace janitor", "error", err)
		os.Exit(1)
	}
	defer janitor.Stop()

	app := fiber.New()
	app.Use(middleware.NewAccessLogMiddleware(lg).Middleware())

	// Register routes
	http.Register(app, http.Handlers{
		Auth:        handlers.NewAuthHandler(users.NewAuthService(users.NewAPI(client), jwtGen)),
		Health:      handlers.NewHealthHandler(health.NewService(readinessChecks...)),
		Profile:     handlers.NewProfileHandler(workspaces),
		Workflows:   handlers.NewWorkflowHandler(workspaces),
		Resumes:     handlers.NewResumesHandler(resumes, workspaces),
		Submissions: handlers.NewSubmissionsHandler(journal),
		JD:          handlers.NewJDHandler(jds),
	}, jwt.NewAuthMiddleware(jwtGen))

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	lg.Info("HTTP server listening", "port", cfg.Port, "remote", cfg.RemoteBaseURL)
	if err := app.Listen(":" + cfg.Port); err != nil {
		lg.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
