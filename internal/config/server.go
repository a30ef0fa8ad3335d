package config

import (
	"fmt"
	"os"

	"GminaGolang/database/postgres"
	botHandler "GminaGolang/internal/api/bot/handler"
	botRepository "GminaGolang/internal/api/bot/repository"
	botService "GminaGolang/internal/api/bot/service"
	"GminaGolang/internal/middleware"
	"GminaGolang/pkg/analytics"
	"GminaGolang/pkg/s3"
	"GminaGolang/pkg/search"
	"GminaGolang/pkg/session"
	"GminaGolang/pkg/smtp"
	"GminaGolang/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine        *fiber.App
	db            *sqlx.DB
	log           *logrus.Logger
	middleware    middleware.Middleware
	validator     *validator.Validate
	utils         utils.IUtils
	handlers      []handler
	sessionStore  session.IStore
	smtpMailer    smtp.ItfSmtp
	s3Client      s3.ItfS3
	analyticsSink analytics.ISink
	searchEngine  *search.Engine
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.sessionStore == nil {
		return nil, fmt.Errorf("session store is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithDatabase connects the dataset to postgres. Skipped entirely when the
// deployment serves the embedded seed data.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithSessionStore(store session.IStore) ServerOption {
	return func(s *Server) error {
		s.sessionStore = store
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithAnalyticsSink(sink analytics.ISink) ServerOption {
	return func(s *Server) error {
		s.analyticsSink = sink
		return nil
	}
}

func WithSearchEngine() ServerOption {
	return func(s *Server) error {
		s.searchEngine = search.NewEngine()
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Bot Domain
	var botRepo botRepository.Repository
	if s.db != nil {
		botRepo = botRepository.NewPostgres(s.db, s.log)
	} else {
		botRepo = botRepository.NewMemory(s.log)
	}

	botServices := botService.NewBotService(s.log, botRepo, s.searchEngine, s.analyticsSink, s.smtpMailer, s.s3Client, s.utils)
	botHandlers := botHandler.New(s.log, s.validator, s.middleware, botServices, s.sessionStore, s.utils)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, botHandlers)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	router := s.engine.Group("/api/v1")
	router.Use(s.middleware.NewRateLimiter)

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"status":  "OK",
			"service": "Gmina Bot Backend",
			"features": []string{
				"predictive_search",
				"custom_problems",
				"intelligent_routing",
				"ga4_tracking",
			},
		})
	})
}
