package schoolHandler

import (
	schoolService "ShuleGolang/internal/api/school/service"
	"ShuleGolang/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SchoolHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	schoolService schoolService.ISchoolService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ss schoolService.ISchoolService,
) *SchoolHandler {
	return &SchoolHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		schoolService: ss,
	}
}

func (h *SchoolHandler) Start(srv fiber.Router) {
	school := srv.Group("/school")
	school.Use(h.middleware.NewRateLimiter)

	school.Post("/students", h.CreateStudent)
	school.Get("/students", h.GetStudents)

	school.Post("/guardians", h.CreateGuardian)
	school.Get("/guardians", h.GetGuardians)

	school.Post("/classes", h.CreateClass)
	school.Get("/classes", h.GetClasses)
}
