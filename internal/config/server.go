package config

import (
	"FinTrack/database/postgres"
	authHandler "FinTrack/internal/api/auth/handler"
	authRepository "FinTrack/internal/api/auth/repository"
	authService "FinTrack/internal/api/auth/service"
	reportHandler "FinTrack/internal/api/report/handler"
	reportService "FinTrack/internal/api/report/service"
	transactionHandler "FinTrack/internal/api/transaction/handler"
	transactionRepository "FinTrack/internal/api/transaction/repository"
	transactionService "FinTrack/internal/api/transaction/service"
	workplaceHandler "FinTrack/internal/api/workplace/handler"
	workplaceRepository "FinTrack/internal/api/workplace/repository"
	workplaceService "FinTrack/internal/api/workplace/service"
	"FinTrack/internal/middleware"
	"FinTrack/pkg/bcrypt"
	"FinTrack/pkg/redis"
	"FinTrack/pkg/utils"
	websocketPkg "FinTrack/pkg/websocket"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"os"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	bcryptUtils bcrypt.IBcrypt
	handlers    []handler
	redisServer redis.IRedis
	hub         websocketPkg.IHub
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

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithHub(hub websocketPkg.IHub) ServerOption {
	return func(s *Server) error {
		s.hub = hub
		return nil
	}
}

// WithMiddleware needs the logger and, for logout revocation, the redis server.
func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		if s.redisServer == nil {
			return fmt.Errorf("redis must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, s.redisServer)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	location := utils.AppLocation()

	// Auth Domain
	authRepo := authRepository.New(s.db, s.log)
	authServices := authService.New(s.log, authRepo, s.redisServer, s.bcryptUtils, s.utils)
	authHandlers := authHandler.New(s.log, authServices, s.validator, s.middleware)

	// Workplace Domain
	workplaceRepo := workplaceRepository.New(s.db, s.log)
	workplaceServices := workplaceService.New(s.log, workplaceRepo, s.utils)
	workplaceHandlers := workplaceHandler.New(s.log, s.validator, s.middleware, workplaceServices)

	// Transaction Domain
	transactionRepo := transactionRepository.New(s.db, s.log)
	transactionServices := transactionService.New(s.log, transactionRepo, workplaceServices, s.redisServer, s.hub, s.utils, location)
	transactionHandlers := transactionHandler.New(s.log, s.validator, s.middleware, transactionServices)

	// Reports
	reportServices := reportService.New(s.log, transactionServices, workplaceServices, os.Getenv("REPORT_LOCALE"))
	reportHandlers := reportHandler.New(s.log, s.validator, s.middleware, reportServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, authHandlers, workplaceHandlers, transactionHandlers, reportHandlers)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())
	router := s.engine.Group("/api/v1")

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops accepting requests, then drops websocket subscribers and the pool.
func (s *Server) Shutdown() error {
	err := s.engine.Shutdown()
	if s.hub != nil {
		s.hub.Close()
	}
	if s.db != nil {
		if dbErr := s.db.Close(); dbErr != nil && err == nil {
			err = dbErr
		}
	}
	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
