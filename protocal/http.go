package protocal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"garmin-gateway/configs"
	httpAdapter "garmin-gateway/internal/adapters/input/http"
	"garmin-gateway/internal/adapters/output/filesystem"
	"garmin-gateway/internal/adapters/output/garmin"
	"garmin-gateway/internal/application"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

// NewAuthService func - wires the token store and Garmin client behind the
// auth use cases; shared by the server and the login/logout commands
func NewAuthService(cfg configs.Garmin) (*application.AuthService, error) {
	// Output adapter (token persistence)
	store := filesystem.NewFileSessionStore(cfg.TokenStore)
	// Output adapter (Garmin Connect)
	client, err := garmin.NewClientAdapter(cfg)
	if err != nil {
		return nil, err
	}
	// Application service (use case)
	return application.NewAuthService(store, client, cfg.Email, cfg.Password), nil
}

// ServeHTTP func - authenticates with Garmin, then serves the API until
// SIGINT or SIGTERM
func ServeHTTP(cfg *configs.Config) error {
	auth, err := NewAuthService(cfg.Garmin)
	if err != nil {
		return err
	}
	if cfg.Garmin.AdminKey == "" {
		logrus.Warn("GARMIN_ADMIN_KEY is not set, /update-credentials is unprotected")
	}

	logrus.Infof("Using token store %s", cfg.Garmin.TokenStore)
	if err := auth.Bootstrap(context.Background()); err != nil {
		return err
	}

	app := fiber.New(httpAdapter.FiberConfig())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-API-Key",
	}))

	// Application service (health data use cases)
	health := application.NewHealthService(auth)
	// Input adapter (HTTP handler)
	hdl := httpAdapter.New(auth, health, cfg.Garmin.AdminKey)
	hdl.Register(app)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		logrus.Info("Graceful shut down ...")
		if err := app.Shutdown(); err != nil {
			logrus.Errorf("Error when shutdown server: %v", err)
		}
	}()

	logrus.Infof("Listening on port: %s", cfg.App.Port)
	return app.Listen(":" + cfg.App.Port)
}
