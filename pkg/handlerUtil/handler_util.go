package handlerUtil

import (
	"FinTrack/internal/api/auth"
	"FinTrack/internal/api/report"
	"FinTrack/internal/api/transaction"
	"FinTrack/internal/api/workplace"
	"FinTrack/pkg/log"
	"FinTrack/pkg/response"
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

type errorCode struct {
	err  error
	code string
}

// errorCodes gives clients a stable code for the errors they are expected to branch on.
var errorCodes = []errorCode{
	{auth.ErrEmailAlreadyExists, "EMAIL_ALREADY_EXISTS"},
	{auth.ErrInvalidEmailOrPassword, "INVALID_CREDENTIALS"},
	{auth.ErrUserNotFound, "USER_NOT_FOUND"},
	{auth.ErrorInvalidToken, "INVALID_TOKEN"},
	{auth.ErrTokenRevoked, "TOKEN_REVOKED"},

	{workplace.ErrWorkplaceNotFound, "WORKPLACE_NOT_FOUND"},
	{workplace.ErrWorkplaceNameRequired, "WORKPLACE_NAME_REQUIRED"},
	{workplace.ErrWorkplaceExists, "WORKPLACE_EXISTS"},
	{workplace.ErrWorkplaceInactive, "WORKPLACE_INACTIVE"},

	{transaction.ErrTransactionNotFound, "TRANSACTION_NOT_FOUND"},
	{transaction.ErrTransactionNotOwned, "TRANSACTION_NOT_OWNED"},
	{transaction.ErrInvalidAmount, "INVALID_AMOUNT"},
	{transaction.ErrMissingDate, "MISSING_DATE"},
	{transaction.ErrFutureDate, "FUTURE_DATE"},
	{transaction.ErrInvalidTransactionType, "INVALID_TYPE"},
	{transaction.ErrInvalidMethod, "INVALID_METHOD"},
	{transaction.ErrInvalidDateRange, "INVALID_DATE_RANGE"},
	{transaction.ErrInvalidPeriod, "INVALID_PERIOD"},

	{report.ErrInvalidReportPeriod, "INVALID_REPORT_PERIOD"},
	{report.ErrReportFetch, "REPORT_FETCH_FAILED"},
	{report.ErrReportGeneration, "REPORT_GENERATION_FAILED"},
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
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		fields["code"] = respErr.Code

		body := ErrorResponse{Error: err.Error()}
		for _, ec := range errorCodes {
			if errors.Is(err, ec.err) {
				body.Code = ec.code
				break
			}
		}

		if respErr.Code >= fiber.StatusInternalServerError {
			h.logger.WithFields(fields).Error("Operation failed with server error")
			// Store and rendering details stay in the log.
			body.Error = respErr.Err.Error()
		} else {
			h.logger.WithFields(fields).Warn("Operation failed with error response")
		}

		return c.Status(respErr.Code).JSON(body)
	}

	h.logger.WithFields(fields).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: "Validation failed: " + err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error: message,
		Code:  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
