package workplaceHandler

import (
	workplaceService "FinTrack/internal/api/workplace/service"
	"FinTrack/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type WorkplaceHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	workplaceService workplaceService.IWorkplaceService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	workplaceService workplaceService.IWorkplaceService,
) *WorkplaceHandler {
	return &WorkplaceHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		workplaceService: workplaceService,
	}
}

func (h *WorkplaceHandler) Start(srv fiber.Router) {
	workplaces := srv.Group("/workplaces", h.middleware.NewTokenMiddleware)

	workplaces.Post("/", h.CreateWorkplace)
	workplaces.Get("/", h.ListWorkplaces)
	workplaces.Get("/:id", h.GetWorkplace)
	workplaces.Delete("/:id", h.DeactivateWorkplace)
}
