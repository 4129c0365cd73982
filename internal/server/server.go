package server

import (
	"fmt"

	"mcq-platform/internal/adapter"
	"mcq-platform/internal/config"
	"mcq-platform/internal/domain"
	"mcq-platform/internal/domain/auth"
	"mcq-platform/internal/handler"
	"mcq-platform/internal/logger"
	"mcq-platform/internal/middleware"
	"mcq-platform/internal/repository"
	"mcq-platform/internal/service"
	"mcq-platform/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// New wires repositories, services and handlers over db and cache and returns
// the HTTP application. A nil cache disables question-set caching.
func New(cfg *config.Config, db *sqlx.DB, cache domain.Cache) (*fiber.App, error) {
	appLogger := logger.Get()
	if cache == nil {
		cache = adapter.NewNoopCache()
	}

	// Repositories
	accountRepo := repository.NewSQLXAccountRepository(db)
	testPaperRepo := repository.NewSQLXTestPaperRepository(db)
	questionRepo := repository.NewSQLXQuestionRepository(db)
	resultRepo := repository.NewSQLXResultRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Credentials
	hasher, err := service.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}
	tokens, err := auth.NewTokenCodec(cfg.Auth.JWT.SecretKey, cfg.Auth.JWT.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}

	// Services
	loader := service.NewQuestionSetLoader(questionRepo, cache, cfg.CacheTTLs.QuestionSet)
	accountService := service.NewAccountService(accountRepo, hasher, tokens, cfg.Auth)
	testPaperService := service.NewTestPaperService(testPaperRepo, questionRepo, resultRepo, txManager, loader)
	questionService := service.NewQuestionService(questionRepo, testPaperRepo, loader)
	submissionService := service.NewSubmissionService(accountRepo, testPaperRepo, resultRepo, txManager, loader)
	resultService := service.NewResultService(resultRepo, testPaperRepo, loader)
	appLogger.Info("Services initialized")

	// Handlers
	validator := validation.NewValidator()
	authHandler := handler.NewAuthHandler(accountService, validator)
	testPaperHandler := handler.NewTestPaperHandler(testPaperService, submissionService, validator)
	questionHandler := handler.NewQuestionHandler(questionService, validator)
	resultHandler := handler.NewResultHandler(resultService, submissionService, validator)
	healthHandler := handler.NewHealthHandler(map[string]handler.Pinger{
		"database": db,
		"cache":    handler.PingFunc(cache.Ping),
	})

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Request-ID",
		MaxAge:       300,
	}))

	app.Get("/health", healthHandler.Live)
	app.Get("/health/ready", healthHandler.Ready)
	app.Get("/swagger/*", swagger.HandlerDefault)

	protected := middleware.Protected(tokens)
	loginLimiter := middleware.RateLimit(middleware.NewIPRateLimiter(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginBurst))

	api := app.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/admin/register", loginLimiter, authHandler.RegisterAdmin)
	authGroup.Post("/login", loginLimiter, authHandler.Login)
	authGroup.Post("/logout", protected, authHandler.Logout)
	authGroup.Get("/me", protected, authHandler.Me)
	authGroup.Get("/admin/me", protected, middleware.RequireAdmin(), authHandler.Me)
	authGroup.Post("/admin/create-user", protected, middleware.RequireAdmin(), authHandler.CreateUser)
	authGroup.Get("/users/:id", protected, authHandler.GetUser)
	authGroup.Patch("/users/:id", protected, authHandler.UpdateUser)

	// Test paper routes
	papers := api.Group("/test-papers", protected)
	papers.Get("/", testPaperHandler.List)
	papers.Post("/", testPaperHandler.Create)
	papers.Get("/:id", testPaperHandler.Get)
	papers.Put("/:id", testPaperHandler.Update)
	papers.Patch("/:id", testPaperHandler.Update)
	papers.Delete("/:id", testPaperHandler.Delete)
	papers.Post("/:id/submit", testPaperHandler.Submit)

	// Question routes
	questions := api.Group("/questions", protected)
	questions.Get("/", questionHandler.List)
	questions.Post("/", questionHandler.Create)
	questions.Get("/:id", questionHandler.Get)
	questions.Put("/:id", questionHandler.Update)
	questions.Patch("/:id", questionHandler.Update)
	questions.Delete("/:id", questionHandler.Delete)

	// Result routes; literal paths are registered before /:id.
	results := api.Group("/results", protected)
	results.Post("/submit", resultHandler.Submit)
	results.Get("/my-results", resultHandler.MyResults)
	results.Get("/users/:id", resultHandler.ByUser)
	results.Get("/test-papers/:id/summary", resultHandler.Summary)
	results.Get("/test-papers/:id/report.pdf", resultHandler.Report)
	results.Get("/test-papers/:id", resultHandler.ByTestPaper)
	results.Get("/:id", resultHandler.Get)
	results.Patch("/:id", resultHandler.Correct)
	results.Delete("/:id", resultHandler.Delete)

	appLogger.Info("Routes registered", zap.Int("handlers", int(app.HandlersCount())))
	return app, nil
}
