package configs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App    `mapstructure:"app"`
	Garmin `mapstructure:"garmin"`
}

// App struct
type App struct {
	Debug    bool   `mapstructure:"debug"`
	Env      string `mapstructure:"env"`
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
}

// Garmin struct
type Garmin struct {
	Email          string `mapstructure:"email"`
	Password       string `mapstructure:"password"`
	TokenStore     string `mapstructure:"tokenstore"`
	AdminKey       string `mapstructure:"admin_key"`
	Domain         string `mapstructure:"domain"`
	Timeout        int    `mapstructure:"timeout"`
	ConsumerURL    string `mapstructure:"consumer_url"`
	ConsumerKey    string `mapstructure:"consumer_key"`
	ConsumerSecret string `mapstructure:"consumer_secret"`
}

// HasCredentials reports whether both account credentials are configured
func (g Garmin) HasCredentials() bool {
	return g.Email != "" && g.Password != ""
}

const (
	DefaultPort       = "3011"
	DefaultTokenStore = "/data/.garminconnect"
)

// Environment variable names per key. The first name is the one the
// deployment documents; later names are accepted aliases.
var envBindings = map[string][]string{
	"app.debug":              {"APP_DEBUG"},
	"app.env":                {"APP_ENV"},
	"app.port":               {"PORT", "APP_PORT"},
	"app.log_level":          {"LOG_LEVEL", "APP_LOG_LEVEL"},
	"garmin.email":           {"GARMIN_EMAIL"},
	"garmin.password":        {"GARMIN_PASSWORD"},
	"garmin.tokenstore":      {"GARMINTOKENS", "GARMIN_TOKENSTORE"},
	"garmin.admin_key":       {"GARMIN_ADMIN_KEY"},
	"garmin.domain":          {"GARMIN_DOMAIN"},
	"garmin.timeout":         {"GARMIN_HTTP_TIMEOUT", "GARMIN_TIMEOUT"},
	"garmin.consumer_url":    {"GARMIN_CONSUMER_URL"},
	"garmin.consumer_key":    {"GARMIN_CONSUMER_KEY"},
	"garmin.consumer_secret": {"GARMIN_CONSUMER_SECRET"},
}

var config Config

// InitViper func - loads configuration from the environment and, when
// present, a config file in path named config.yaml (or config.<env>.yaml)
func InitViper(path, env string) error {
	return getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

func getConfig(path, env string) error {
	viper.Reset()

	name := "config"
	if env != "" {
		name = "config." + env
	}
	viper.SetConfigName(name)
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.env", env)
	viper.SetDefault("app.port", DefaultPort)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("garmin.email", "")
	viper.SetDefault("garmin.password", "")
	viper.SetDefault("garmin.tokenstore", DefaultTokenStore)
	viper.SetDefault("garmin.admin_key", "")
	viper.SetDefault("garmin.domain", "garmin.com")
	viper.SetDefault("garmin.timeout", 0)
	viper.SetDefault("garmin.consumer_url", "")
	viper.SetDefault("garmin.consumer_key", "")
	viper.SetDefault("garmin.consumer_secret", "")

	for key, names := range envBindings {
		if err := viper.BindEnv(append([]string{key}, names...)...); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case errors.As(err, &notFound):
		logrus.Debugf("No %s file in %s, using environment only", name, path)
	case err != nil:
		return fmt.Errorf("read config: %w", err)
	default:
		viper.WatchConfig()
		viper.OnConfigChange(func(e fsnotify.Event) {
			logrus.Warnf("Config file has changed: %s (restart to apply)", e.Name)
		})
	}

	var next Config
	if err := viper.Unmarshal(&next); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	config = next
	return nil
}
