package router

import (
	"github.com/labstack/echo/v4"

	"github.com/octobees/hireloop/api/internal/auth"
	"github.com/octobees/hireloop/api/internal/config"
	"github.com/octobees/hireloop/api/internal/handler"
	middlewarepkg "github.com/octobees/hireloop/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	Users      *handler.UserAdminHandler
	Jobs       *handler.JobsHandler
	Shortlist  *handler.ShortlistHandler
	Candidates *handler.CandidatesHandler
	Sourcing   *handler.SourcingHandler
	Interviews *handler.InterviewsHandler
	Scorecards *handler.ScorecardsHandler
	Outreach   *handler.OutreachHandler
	Templates  *handler.TemplatesHandler
	Workspace  *handler.WorkspaceHandler
	Analytics  *handler.AnalyticsHandler
}

// Register wires all HTTP routes for the API. When auth is disabled every
// recruiting route is open and the user administration routes are not mounted.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	api := e.Group("/api")

	api.GET("/health", handlers.Health.Check)
	api.POST("/contact", handlers.Workspace.Contact)
	api.POST("/auth/register", handlers.Auth.Register)
	api.POST("/auth/login", handlers.Auth.Login)

	var secured *echo.Group
	adminOnly := []echo.MiddlewareFunc{}
	if cfg.AuthEnabled {
		secured = api.Group("", middlewarepkg.JWT(jwtManager))
		adminOnly = append(adminOnly, middlewarepkg.RequireRole("admin"))

		secured.GET("/auth/me", handlers.Auth.Me)

		admin := secured.Group("/admin", middlewarepkg.RequireRole("admin"))
		admin.GET("/users", handlers.Users.List)
		admin.POST("/users", handlers.Users.Create)
		admin.PATCH("/users/:id", handlers.Users.Update)
		admin.DELETE("/users/:id", handlers.Users.Delete)
	} else {
		secured = api.Group("")
	}

	ai := middlewarepkg.AIRateLimiter(cfg.RateLimitAI)

	secured.GET("/jobs", handlers.Jobs.List)
	secured.POST("/jobs", handlers.Jobs.Create)
	secured.POST("/jobs/parse", handlers.Jobs.Parse, ai)
	secured.GET("/jobs/:id", handlers.Jobs.Get)
	secured.PUT("/jobs/:id", handlers.Jobs.Update)
	secured.DELETE("/jobs/:id", handlers.Jobs.Delete)
	secured.GET("/jobs/:id/dashboard", handlers.Jobs.Dashboard, ai)
	secured.GET("/jobs/:id/candidates", handlers.Shortlist.List)
	secured.POST("/jobs/:id/candidates", handlers.Shortlist.Add, ai)
	secured.PUT("/jobs/:id/candidates/:candidateId", handlers.Shortlist.UpdateStatus)

	secured.GET("/candidates", handlers.Candidates.List)
	secured.POST("/candidates", handlers.Candidates.Create)
	secured.POST("/candidates/upload", handlers.Candidates.Upload, ai)
	secured.GET("/candidates/:id", handlers.Candidates.Get)
	secured.PUT("/candidates/:id", handlers.Candidates.Update)
	secured.DELETE("/candidates/:id", handlers.Candidates.Delete)
	secured.POST("/candidates/:id/analyze", handlers.Candidates.Analyze, ai)

	secured.POST("/sourcing/run", handlers.Sourcing.Run, ai)

	secured.GET("/interviews", handlers.Interviews.List)
	secured.POST("/interviews", handlers.Interviews.Create)
	secured.PUT("/interviews/:id", handlers.Interviews.Update)
	secured.DELETE("/interviews/:id", handlers.Interviews.Delete)
	secured.POST("/interviews/:id/prep", handlers.Interviews.Prep, ai)
	secured.GET("/interviews/:id/evaluations", handlers.Interviews.Evaluations)
	secured.PUT("/evaluations/:id", handlers.Interviews.UpdateEvaluation)

	secured.GET("/scorecards", handlers.Scorecards.List)
	secured.GET("/scorecards/:candidateId", handlers.Scorecards.List)
	secured.POST("/scorecards", handlers.Scorecards.Create)

	secured.GET("/templates", handlers.Templates.List)
	secured.POST("/templates", handlers.Templates.Create)
	secured.PUT("/templates/:id", handlers.Templates.Update)
	secured.DELETE("/templates/:id", handlers.Templates.Delete)

	secured.POST("/outreach/generate-email", handlers.Outreach.GenerateEmail, ai)
	secured.GET("/outreach/emails", handlers.Outreach.ListEmails)
	secured.POST("/outreach/emails", handlers.Outreach.CreateEmail)
	secured.PUT("/outreach/emails/:id/status", handlers.Outreach.UpdateEmailStatus)
	secured.DELETE("/outreach/emails/:id", handlers.Outreach.DeleteEmail)

	secured.GET("/settings", handlers.Workspace.Settings)
	secured.POST("/settings", handlers.Workspace.SaveSettings, adminOnly...)
	secured.GET("/integrations", handlers.Workspace.Integrations)
	secured.POST("/integrations", handlers.Workspace.SaveIntegration, adminOnly...)

	secured.GET("/analytics/overview", handlers.Analytics.Overview)
}
