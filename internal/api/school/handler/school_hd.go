package schoolHandler

import (
	"ShuleGolang/internal/api/school"
	contextPkg "ShuleGolang/pkg/context"
	"ShuleGolang/pkg/handlerUtil"
	"ShuleGolang/pkg/log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *SchoolHandler) CreateStudent(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req school.CreateStudentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	student, err := h.schoolService.CreateStudent(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_student")
	}

	h.log.WithFields(log.Fields{
		"request_id":   requestID,
		"admission_no": student.AdmissionNo,
	}).Info("Create student request completed")

	return ctx.Status(fiber.StatusCreated).JSON(student)
}

func (h *SchoolHandler) GetStudents(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	students, total, err := h.schoolService.GetAllStudents(c, limit, offset)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_students")
	}

	return ctx.Status(fiber.StatusOK).JSON(school.StudentListResponse{
		Students: students,
		Total:    total,
	})
}

func (h *SchoolHandler) CreateGuardian(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req school.CreateGuardianRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	guardian, err := h.schoolService.CreateGuardian(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_guardian")
	}

	return ctx.Status(fiber.StatusCreated).JSON(guardian)
}

func (h *SchoolHandler) GetGuardians(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	guardians, total, err := h.schoolService.GetAllGuardians(c, limit, offset)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_guardians")
	}

	return ctx.Status(fiber.StatusOK).JSON(school.GuardianListResponse{
		Guardians: guardians,
		Total:     total,
	})
}

func (h *SchoolHandler) CreateClass(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req school.CreateClassRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	class, err := h.schoolService.CreateClass(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_class")
	}

	return ctx.Status(fiber.StatusCreated).JSON(class)
}

func (h *SchoolHandler) GetClasses(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	classes, err := h.schoolService.GetAllClasses(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_classes")
	}

	return ctx.Status(fiber.StatusOK).JSON(school.ClassListResponse{
		Classes: classes,
		Total:   len(classes),
	})
}
