package http

import (
	"errors"

	"garmin-gateway/internal/domain"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	// ErrorBody struct - every error response carries one message
	ErrorBody struct {
		Error string `json:"error"`
	}

	// StatusBody struct - health and rotation responses
	StatusBody struct {
		Status  string `json:"status"`
		Message string `json:"message,omitempty"`
	}

	// NameBody struct - /user/name response
	NameBody struct {
		Name any `json:"name"`
	}
)

// Fixed messages kept compatible with existing clients
const (
	msgUnauthorized   = "Unauthorized"
	msgNotInitialized = "API not initialized"
	msgNotFound       = "Not found"
	msgInvalidGoal    = "Invalid goal type"
	msgCredentials    = "Email and password required"
)

// FiberConfig func - shared app settings: indented JSON via goccy/go-json and
// the JSON error handler
func FiberConfig() fiber.Config {
	return fiber.Config{
		AppName:               "garmin-gateway",
		DisableStartupMessage: true,
		JSONEncoder:           marshalIndent,
		JSONDecoder:           json.Unmarshal,
		ErrorHandler:          ErrorHandler,
	}
}

func marshalIndent(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// ErrorHandler func - renders any error escaping a handler as {"error": ...}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, message := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		logrus.Errorf("Error handling request %s %s: %v", c.Method(), c.OriginalURL(), err)
	}
	return c.Status(code).JSON(ErrorBody{Error: message})
}

// statusFor maps an error to its HTTP status and client message
func statusFor(err error) (int, string) {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		if fiberErr.Code == fiber.StatusNotFound || fiberErr.Code == fiber.StatusMethodNotAllowed {
			return fiber.StatusNotFound, msgNotFound
		}
		return fiberErr.Code, fiberErr.Message
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, msgUnauthorized
	case errors.Is(err, domain.ErrServiceUnavailable):
		return fiber.StatusServiceUnavailable, msgNotInitialized
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, msgNotFound
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, err.Error()
	default:
		return fiber.StatusInternalServerError, err.Error()
	}
}

// respond writes an upstream result. Failures stay 200 and carry the message
// in the body so clients always get JSON they can inspect.
func respond(c *fiber.Ctx, result domain.Result) error {
	if !result.OK() {
		return c.JSON(ErrorBody{Error: "Error: " + result.Err.Error()})
	}
	return c.JSON(result.Data)
}
