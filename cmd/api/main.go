package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/hireloop/api/internal/auth"
	"github.com/octobees/hireloop/api/internal/config"
	"github.com/octobees/hireloop/api/internal/database"
	"github.com/octobees/hireloop/api/internal/handler"
	"github.com/octobees/hireloop/api/internal/llm"
	"github.com/octobees/hireloop/api/internal/mailer"
	middlewarepkg "github.com/octobees/hireloop/api/internal/middleware"
	"github.com/octobees/hireloop/api/internal/repository"
	"github.com/octobees/hireloop/api/internal/router"
	"github.com/octobees/hireloop/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	model, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("failed to configure llm provider: %v", err)
	}
	if closer, ok := model.(io.Closer); ok {
		defer closer.Close()
	}
	log.Printf("llm provider=%s", model.Provider())

	mail, err := mailer.New(ctx, cfg.Mail)
	if err != nil {
		log.Fatalf("failed to configure mailer: %v", err)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	var normalizerOpts []service.NormalizerOption
	if cfg.EmailMXCheck {
		normalizerOpts = append(normalizerOpts, service.WithSystemDNS())
	}
	normalizer := service.NewNormalizer(cfg.PhoneRegion, normalizerOpts...)

	usersRepo := repository.NewSQLiteUsersRepository(db)
	jobsRepo := repository.NewSQLiteJobsRepository(db)
	candidatesRepo := repository.NewSQLiteCandidatesRepository(db)
	shortlistRepo := repository.NewSQLiteShortlistRepository(db)
	interviewsRepo := repository.NewSQLiteInterviewsRepository(db)
	scorecardsRepo := repository.NewSQLiteScorecardsRepository(db)
	outreachRepo := repository.NewSQLiteOutreachRepository(db)
	workspaceRepo := repository.NewSQLiteWorkspaceRepository(db)

	authService := service.NewAuthService(usersRepo, jwtManager)
	if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to ensure admin user: %v", err)
	}

	handlers := router.Handlers{
		Health:     handler.NewHealthHandler(db),
		Auth:       handler.NewAuthHandler(authService),
		Users:      handler.NewUserAdminHandler(service.NewUserService(usersRepo)),
		Jobs:       handler.NewJobsHandler(service.NewJobsService(jobsRepo, candidatesRepo, model)),
		Shortlist:  handler.NewShortlistHandler(service.NewShortlistService(shortlistRepo, jobsRepo, candidatesRepo, model)),
		Candidates: handler.NewCandidatesHandler(service.NewCandidatesService(candidatesRepo, jobsRepo, model, normalizer), cfg.UploadMaxBytes),
		Sourcing:   handler.NewSourcingHandler(service.NewSourcingService(jobsRepo, candidatesRepo, model, normalizer)),
		Interviews: handler.NewInterviewsHandler(service.NewInterviewsService(interviewsRepo, candidatesRepo, jobsRepo, model, normalizer)),
		Scorecards: handler.NewScorecardsHandler(service.NewScorecardsService(scorecardsRepo)),
		Outreach:   handler.NewOutreachHandler(service.NewOutreachService(outreachRepo, candidatesRepo, jobsRepo, workspaceRepo, model, mail, cfg.CompanyName)),
		Templates:  handler.NewTemplatesHandler(service.NewTemplatesService(outreachRepo)),
		Workspace:  handler.NewWorkspaceHandler(service.NewWorkspaceService(workspaceRepo, normalizer)),
		Analytics:  handler.NewAnalyticsHandler(service.NewAnalyticsService(jobsRepo, candidatesRepo, interviewsRepo)),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoMiddleware.BodyLimit(cfg.BodyLimit))

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("listening on :%s (auth enabled=%v)", cfg.Port, cfg.AuthEnabled)
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
