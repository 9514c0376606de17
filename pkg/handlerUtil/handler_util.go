package handlerUtil

import (
	"ShuleGolang/internal/api/assistant"
	"ShuleGolang/internal/api/school"
	"ShuleGolang/pkg/log"
	"ShuleGolang/pkg/ollama"
	"ShuleGolang/pkg/response"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	var respErr *response.Error
	if errors.As(err, &respErr) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"code":       respErr.Code,
			"path":       path,
			"operation":  operation,
		}).Warn("Operation failed with error response")
		return c.Status(respErr.Code).JSON(fiber.Map{"error": err.Error()})
	}

	// School domain errors
	if errors.Is(err, school.ErrStudentNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Student not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Student not found",
			"code":    "STUDENT_NOT_FOUND",
		})
	}

	if errors.Is(err, school.ErrGuardianNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Guardian not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Guardian not found",
			"code":    "GUARDIAN_NOT_FOUND",
		})
	}

	if errors.Is(err, school.ErrClassNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Class not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Class not found",
			"code":    "CLASS_NOT_FOUND",
		})
	}

	if errors.Is(err, school.ErrDuplicateAdmissionNo) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Admission number already exists")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Admission number already exists",
			"code":    "ADMISSION_NO_ALREADY_EXISTS",
		})
	}

	if errors.Is(err, school.ErrDuplicateClassName) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Class name already exists")
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "Class name already exists",
			"code":    "CLASS_NAME_ALREADY_EXISTS",
		})
	}

	// Assistant domain errors
	if errors.Is(err, assistant.ErrConversationNotFound) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Conversation not found")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Conversation not found",
			"code":    "CONVERSATION_NOT_FOUND",
		})
	}

	if errors.Is(err, ollama.ErrTimeout) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Language model request timed out")
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
			"message": "Assistant took too long to respond",
			"code":    "MODEL_TIMEOUT",
		})
	}

	if errors.Is(err, ollama.ErrServiceUnavailable) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Language model service unavailable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"message": "Assistant service unavailable",
			"code":    "MODEL_UNAVAILABLE",
		})
	}

	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Validation failed: " + err.Error(),
		"code":  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
