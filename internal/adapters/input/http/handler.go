package http

import (
	"crypto/subtle"
	"errors"
	"strings"
	"sync"
	"time"

	"garmin-gateway/internal/domain"
	"garmin-gateway/internal/ports/input"
	"garmin-gateway/pkg/metrics"
	"garmin-gateway/pkg/validator"

	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// headerAPIKey carries the admin key when no Bearer token is sent
const headerAPIKey = "X-API-Key"

// HTTPHandler struct - Primary/Driving adapter for HTTP
type HTTPHandler struct {
	auth      input.AuthService
	health    input.HealthService
	validator validator.Validator
	adminKey  string
	now       func() time.Time

	// one request at a time
	mu sync.Mutex
}

// New func - Creates new HTTP handler. An empty adminKey leaves credential
// rotation open.
func New(auth input.AuthService, health input.HealthService, adminKey string) *HTTPHandler {
	return &HTTPHandler{
		auth:      auth,
		health:    health,
		validator: validator.New(),
		adminKey:  adminKey,
		now:       time.Now,
	}
}

// Register func - wires middleware and routes onto app in dispatch order:
// open endpoints, admin-gated rotation, the session gate, the data routes and
// finally the not-found catch-all
func (hdl *HTTPHandler) Register(app *fiber.App) {
	app.Use(recover.New())
	app.Use(hdl.serialize)
	app.Use(hdl.accessLog)

	app.Get("/health", hdl.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Post("/update-credentials", hdl.requireAdminKey, hdl.UpdateCredentials)

	app.Use(hdl.requireSession)
	hdl.registerRoutes(app)

	app.Use(hdl.NotFound)
}

// serialize processes requests strictly one after another
func (hdl *HTTPHandler) serialize(c *fiber.Ctx) error {
	hdl.mu.Lock()
	defer hdl.mu.Unlock()
	return c.Next()
}

// accessLog logs source address and request line, tags the response with a
// request id and counts it
func (hdl *HTTPHandler) accessLog(c *fiber.Ctx) error {
	requestID := c.Get(fiber.HeaderXRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set(fiber.HeaderXRequestID, requestID)

	start := time.Now()
	err := c.Next()
	if err != nil {
		// render now so the logged status is the one sent
		if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}

	status := c.Response().StatusCode()
	logrus.WithFields(logrus.Fields{
		"request_id": requestID,
		"status":     status,
		"latency":    time.Since(start).String(),
	}).Infof("%s - \"%s %s\"", c.IP(), c.Method(), c.OriginalURL())
	metrics.RecordHTTPRequest(c.Route().Path, status)
	return nil
}

// requireAdminKey accepts "Authorization: Bearer <key>" or "X-API-Key: <key>".
// A Bearer header, when present, is the only credential looked at.
func (hdl *HTTPHandler) requireAdminKey(c *fiber.Ctx) error {
	if hdl.adminKey == "" {
		return c.Next()
	}

	presented := c.Get(headerAPIKey)
	if auth := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
		presented = strings.TrimPrefix(auth, "Bearer ")
	}
	if subtle.ConstantTimeCompare([]byte(presented), []byte(hdl.adminKey)) != 1 {
		logrus.Warnf("Rejected credential update from %s", c.IP())
		return domain.ErrUnauthorized
	}
	return c.Next()
}

// requireSession rejects data requests until a Garmin session is active
func (hdl *HTTPHandler) requireSession(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodGet && c.Method() != fiber.MethodHead {
		return c.Next()
	}
	if !hdl.auth.Ready() {
		return domain.ErrServiceUnavailable
	}
	return c.Next()
}

// HealthCheck func
// HealthCheck godoc
// @Summary Liveness probe
// @Tags System
// @Produce json
// @Success 200 {object} StatusBody
// @Router /health [get]
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(StatusBody{Status: "healthy"})
}

// UpdateCredentials func
// UpdateCredentials godoc
// @Summary Rotate Garmin account credentials
// @Description Clears stored tokens, logs in with the new account and swaps the active session. On failure the previous session keeps serving.
// @Tags Auth
// @Accept application/json
// @Produce json
// @Param X-API-Key header string false "admin key"
// @Param credentials body UpdateCredentialsRequest true "new credentials"
// @Success 200 {object} StatusBody
// @Failure 400 {object} ErrorBody
// @Failure 401 {object} ErrorBody
// @Failure 500 {object} ErrorBody
// @Router /update-credentials [post]
func (hdl *HTTPHandler) UpdateCredentials(c *fiber.Ctx) error {
	var request UpdateCredentialsRequest
	if err := json.Unmarshal(c.Body(), &request); err != nil {
		logrus.Warnf("Invalid credential update body: %v", err)
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body")
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, msgCredentials)
	}

	err := hdl.auth.Rotate(c.UserContext(), request.Email, request.Password)
	if errors.Is(err, domain.ErrValidation) {
		return fiber.NewError(fiber.StatusBadRequest, msgCredentials)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorBody{Error: "Failed to update credentials: " + err.Error()})
	}
	return c.JSON(StatusBody{Status: "success", Message: "Credentials updated and tokens stored"})
}

// NotFound func - catch-all for unknown paths and methods
func (hdl *HTTPHandler) NotFound(c *fiber.Ctx) error {
	return domain.ErrNotFound
}
