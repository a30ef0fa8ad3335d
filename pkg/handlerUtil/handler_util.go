package handlerUtil

import (
	"errors"

	"GminaGolang/internal/api/bot"
	"GminaGolang/pkg/log"
	"GminaGolang/pkg/response"

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
	// Bot domain errors carry their own response codes, check them before the
	// generic response.Error funnel so clients get a stable code field.
	if errors.Is(err, bot.ErrMunicipalityRequired) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Municipality name missing")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Municipality name is required",
			"code":    "MUNICIPALITY_REQUIRED",
		})
	}

	if errors.Is(err, bot.ErrEmptyEvent) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Empty dialog event")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Message, button action or selection is required",
			"code":    "EMPTY_EVENT",
		})
	}

	if errors.Is(err, bot.ErrUnknownCandidateType) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Unknown candidate type in selection")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unknown candidate type",
			"code":    "UNKNOWN_CANDIDATE_TYPE",
		})
	}

	if errors.Is(err, bot.ErrInvalidSelection) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Invalid selection payload")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid selection payload",
			"code":    "INVALID_SELECTION",
		})
	}

	if errors.Is(err, bot.ErrUnknownSearchContext) {
		h.logger.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
			"path":       path,
			"operation":  operation,
		}).Warn("Unknown search context")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unknown search context",
			"code":    "UNKNOWN_SEARCH_CONTEXT",
		})
	}

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
