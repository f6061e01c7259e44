package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

// clearTestEnv blanks every bound variable so the host environment cannot leak in
func clearTestEnv(t *testing.T) {
	t.Helper()
	for _, names := range envBindings {
		for _, name := range names {
			t.Setenv(name, "")
		}
	}
}

// TestDefaults tests the values used when nothing is configured
func TestDefaults(t *testing.T) {
	clearTestEnv(t)

	if err := InitViper(t.TempDir(), ""); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	cfg := GetViper()

	if cfg.App.Port != "3011" {
		t.Errorf("Expected App.Port to be 3011, got %s", cfg.App.Port)
	}
	if cfg.Garmin.TokenStore != "/data/.garminconnect" {
		t.Errorf("Expected Garmin.TokenStore default, got %s", cfg.Garmin.TokenStore)
	}
	if cfg.Garmin.Domain != "garmin.com" {
		t.Errorf("Expected Garmin.Domain to be garmin.com, got %s", cfg.Garmin.Domain)
	}
	if cfg.Garmin.Timeout != 0 {
		t.Errorf("Expected Garmin.Timeout to be 0, got %d", cfg.Garmin.Timeout)
	}
	if cfg.Garmin.AdminKey != "" {
		t.Errorf("Expected no admin key, got %s", cfg.Garmin.AdminKey)
	}
	if cfg.Garmin.HasCredentials() {
		t.Error("Expected no credentials")
	}
}

// TestEnvironmentOverrides tests the documented environment variable names
func TestEnvironmentOverrides(t *testing.T) {
	clearTestEnv(t)
	t.Setenv("GARMIN_EMAIL", "pat@example.com")
	t.Setenv("GARMIN_PASSWORD", "secret")
	t.Setenv("GARMINTOKENS", "/tmp/tokens")
	t.Setenv("PORT", "8080")
	t.Setenv("GARMIN_ADMIN_KEY", "admin")
	t.Setenv("GARMIN_HTTP_TIMEOUT", "20")
	t.Setenv("APP_DEBUG", "true")

	if err := InitViper(t.TempDir(), ""); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	cfg := GetViper()

	if !cfg.Garmin.HasCredentials() || cfg.Garmin.Email != "pat@example.com" {
		t.Errorf("Expected credentials from env, got %+v", cfg.Garmin)
	}
	if cfg.Garmin.TokenStore != "/tmp/tokens" {
		t.Errorf("Expected Garmin.TokenStore to be /tmp/tokens, got %s", cfg.Garmin.TokenStore)
	}
	if cfg.App.Port != "8080" {
		t.Errorf("Expected App.Port to be 8080, got %s", cfg.App.Port)
	}
	if cfg.Garmin.AdminKey != "admin" {
		t.Errorf("Expected Garmin.AdminKey to be admin, got %s", cfg.Garmin.AdminKey)
	}
	if cfg.Garmin.Timeout != 20 {
		t.Errorf("Expected Garmin.Timeout to be 20, got %d", cfg.Garmin.Timeout)
	}
	if !cfg.App.Debug {
		t.Error("Expected App.Debug to be true")
	}
}

// TestAliasEnvironmentNames tests that secondary names are honored
func TestAliasEnvironmentNames(t *testing.T) {
	clearTestEnv(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("GARMIN_TOKENSTORE", "/srv/garmin")

	if err := InitViper(t.TempDir(), ""); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	cfg := GetViper()

	if cfg.App.Port != "9000" {
		t.Errorf("Expected App.Port to be 9000, got %s", cfg.App.Port)
	}
	if cfg.Garmin.TokenStore != "/srv/garmin" {
		t.Errorf("Expected Garmin.TokenStore to be /srv/garmin, got %s", cfg.Garmin.TokenStore)
	}
}

// TestConfigFile tests values read from an environment specific file
func TestConfigFile(t *testing.T) {
	clearTestEnv(t)
	dir := t.TempDir()
	content := "app:\n  port: \"4000\"\ngarmin:\n  domain: garmin.cn\n  email: file@example.com\n"
	if err := os.WriteFile(filepath.Join(dir, "config.test.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GARMIN_EMAIL", "env@example.com")

	if err := InitViper(dir, "test"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	cfg := GetViper()

	if cfg.App.Port != "4000" {
		t.Errorf("Expected App.Port from file to be 4000, got %s", cfg.App.Port)
	}
	if cfg.Garmin.Domain != "garmin.cn" {
		t.Errorf("Expected Garmin.Domain from file, got %s", cfg.Garmin.Domain)
	}
	if cfg.Garmin.Email != "env@example.com" {
		t.Errorf("Expected environment to win over file, got %s", cfg.Garmin.Email)
	}
	if cfg.App.Env != "test" {
		t.Errorf("Expected App.Env to be test, got %s", cfg.App.Env)
	}
}

// TestMalformedConfigFile tests that a broken file is reported
func TestMalformedConfigFile(t *testing.T) {
	clearTestEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("app: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := InitViper(dir, ""); err == nil {
		t.Fatal("expected an error for malformed config")
	}
}

// TestConfigureLogging tests level selection
func TestConfigureLogging(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	ConfigureLogging(App{LogLevel: "warn"})
	if logrus.GetLevel() != logrus.WarnLevel {
		t.Errorf("Expected warn level, got %s", logrus.GetLevel())
	}

	ConfigureLogging(App{LogLevel: "warn", Debug: true})
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", logrus.GetLevel())
	}

	ConfigureLogging(App{LogLevel: "loud"})
	if logrus.GetLevel() != logrus.InfoLevel {
		t.Errorf("Expected fallback info level, got %s", logrus.GetLevel())
	}
}
