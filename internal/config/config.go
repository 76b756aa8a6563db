// Package config loads settings from an optional portfolio.yaml and the
// environment (which .env has already populated), in rising order of
// precedence. Command-line flags bound by the caller win over both.
package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port    string `mapstructure:"port"`
	GinMode string `mapstructure:"ginMode"`
	BaseURL string `mapstructure:"baseURL"`

	ContentDir string `mapstructure:"contentDir"`
	DataPath   string `mapstructure:"dataPath"`
	IPSalt     string `mapstructure:"ipSalt"`

	UploadDir    string        `mapstructure:"uploadDir"`
	UploadSecret string        `mapstructure:"uploadSecret"`
	UploadTTL    time.Duration `mapstructure:"uploadTTL"`

	ResumePath string `mapstructure:"resumePath"`
	ResumeURL  string `mapstructure:"resumeURL"`

	AdminUsername string `mapstructure:"adminUsername"`
	AdminPassword string `mapstructure:"adminPassword"`

	SMTPHost string `mapstructure:"smtpHost"`
	SMTPPort string `mapstructure:"smtpPort"`
	SMTPUser string `mapstructure:"smtpUser"`
	SMTPPass string `mapstructure:"smtpPass"`
	ToEmail  string `mapstructure:"toEmail"`

	PublishRepo   string `mapstructure:"publishRepo"`
	PublishRemote string `mapstructure:"publishRemote"`
	PublishBranch string `mapstructure:"publishBranch"`
}

// envNames maps config keys to the plain variable names used in deployments.
var envNames = map[string]string{
	"port":          "PORT",
	"ginMode":       "GIN_MODE",
	"baseURL":       "BASE_URL",
	"contentDir":    "CONTENT_DIR",
	"dataPath":      "DATA_PATH",
	"ipSalt":        "IP_SALT",
	"uploadDir":     "UPLOAD_DIR",
	"uploadSecret":  "UPLOAD_SECRET",
	"uploadTTL":     "UPLOAD_TTL",
	"resumePath":    "RESUME_PATH",
	"resumeURL":     "RESUME_URL",
	"adminUsername": "ADMIN_USERNAME",
	"adminPassword": "ADMIN_PASSWORD",
	"smtpHost":      "SMTP_HOST",
	"smtpPort":      "SMTP_PORT",
	"smtpUser":      "SMTP_USER",
	"smtpPass":      "SMTP_PASS",
	"toEmail":       "TO_EMAIL",
	"publishRepo":   "PUBLISH_REPO",
	"publishRemote": "PUBLISH_REMOTE",
	"publishBranch": "PUBLISH_BRANCH",
}

// New returns a viper instance with defaults and environment bindings set.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("ginMode", "debug")
	v.SetDefault("baseURL", "")
	v.SetDefault("contentDir", "content")
	v.SetDefault("dataPath", "data/portfolio.db")
	v.SetDefault("ipSalt", "")
	v.SetDefault("uploadDir", "uploads")
	v.SetDefault("uploadSecret", "")
	v.SetDefault("uploadTTL", 15*time.Minute)
	v.SetDefault("resumePath", "static/resume.pdf")
	v.SetDefault("resumeURL", "")
	v.SetDefault("adminUsername", "")
	v.SetDefault("adminPassword", "")
	v.SetDefault("smtpHost", "smtp.gmail.com")
	v.SetDefault("smtpPort", "587")
	v.SetDefault("smtpUser", "")
	v.SetDefault("smtpPass", "")
	v.SetDefault("toEmail", "")
	v.SetDefault("publishRepo", ".")
	v.SetDefault("publishRemote", "origin")
	v.SetDefault("publishBranch", "main")

	for key, env := range envNames {
		// BindEnv only errors when called without a key.
		_ = v.BindEnv(key, env)
	}
	return v
}

// Load reads file (or ./portfolio.yaml when file is empty) into v and decodes
// the result. A missing default file is not an error; a missing explicit one
// is.
func Load(v *viper.Viper, file string) (Config, error) {
	var cfg Config

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("portfolio")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Println("Using config file:", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.applyDevDefaults()
	return cfg, nil
}

// applyDevDefaults fills operator credentials in debug mode only. Release
// mode with no credentials leaves login disabled.
func (c *Config) applyDevDefaults() {
	if c.GinMode != "debug" {
		return
	}
	if c.AdminUsername == "" {
		c.AdminUsername = "admin"
		log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
	}
	if c.AdminPassword == "" {
		c.AdminPassword = "admin123"
		log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
	}
}

// Addr is the listen address.
func (c Config) Addr() string { return ":" + c.Port }

// PublicBaseURL is BaseURL, or a localhost URL on the configured port.
func (c Config) PublicBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return "http://localhost:" + c.Port
}
