package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// DefaultFormEndpoint is the Formspree form that receives contact submissions.
const DefaultFormEndpoint = "https://formspree.io/f/xzzeagev"

// Secrets that shipped in sample configs and must never sign real sessions.
var knownSecrets = []string{"portfolio-dev-secret", "change-me", "changeme"}

// Config holds everything needed to serve or export the site.
type Config struct {
	Port               int
	GinMode            string
	LogLevel           string
	LogFormat          string
	ContactEndpoint    string
	ContactTimeout     time.Duration
	ImagesDir          string
	SiteBaseURL        string
	AdminUsername      string
	AdminPassword      string
	SessionSecret      string
	AnalyticsEnabled   bool
	AnalyticsRetention time.Duration
}

// AdminEnabled reports whether the admin dashboard should be mounted.
func (c Config) AdminEnabled() bool {
	return c.AdminPassword != ""
}

// New returns a viper instance with defaults and environment binding in place.
// Environment variables use the PORTFOLIO_ prefix, with dots replaced by underscores
// (contact.endpoint -> PORTFOLIO_CONTACT_ENDPOINT).
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("port", 8080)
	v.SetDefault("gin_mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "auto")
	v.SetDefault("contact.endpoint", DefaultFormEndpoint)
	v.SetDefault("contact.timeout", "10s")
	v.SetDefault("images_dir", "./images")
	v.SetDefault("site_base_url", "https://hybridzdynamics.vercel.app")
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "")
	v.SetDefault("session_secret", "")
	v.SetDefault("analytics.enabled", true)
	v.SetDefault("analytics.retention", "720h")

	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Hosting platforms hand out a bare PORT.
	_ = v.BindEnv("port", "PORTFOLIO_PORT", "PORT")
	_ = v.BindEnv("gin_mode", "PORTFOLIO_GIN_MODE", "GIN_MODE")

	return v
}

// Load reads the optional config file and returns the resolved configuration.
// A missing portfolio.yaml in the working directory is not an error; a missing
// file named explicitly through cfgFile is.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("portfolio")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := Config{
		Port:               v.GetInt("port"),
		GinMode:            strings.TrimSpace(v.GetString("gin_mode")),
		LogLevel:           strings.TrimSpace(v.GetString("log.level")),
		LogFormat:          strings.TrimSpace(v.GetString("log.format")),
		ContactEndpoint:    strings.TrimSpace(v.GetString("contact.endpoint")),
		ContactTimeout:     v.GetDuration("contact.timeout"),
		ImagesDir:          strings.TrimSpace(v.GetString("images_dir")),
		SiteBaseURL:        strings.TrimRight(strings.TrimSpace(v.GetString("site_base_url")), "/"),
		AdminUsername:      strings.TrimSpace(v.GetString("admin.username")),
		AdminPassword:      v.GetString("admin.password"),
		SessionSecret:      v.GetString("session_secret"),
		AnalyticsEnabled:   v.GetBool("analytics.enabled"),
		AnalyticsRetention: v.GetDuration("analytics.retention"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	// Without a configured secret, sessions last as long as the process.
	if cfg.AdminEnabled() && cfg.SessionSecret == "" {
		secret, err := generateSecret()
		if err != nil {
			return Config{}, err
		}
		cfg.SessionSecret = secret
	}
	return cfg, nil
}

func generateSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (c Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid gin mode %q", c.GinMode)
	}
	u, err := url.ParseRequestURI(c.ContactEndpoint)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid contact endpoint %q", c.ContactEndpoint)
	}
	if c.ContactTimeout <= 0 {
		return fmt.Errorf("contact timeout must be positive, got %s", c.ContactTimeout)
	}
	if c.AnalyticsEnabled && c.AnalyticsRetention <= 0 {
		return fmt.Errorf("analytics retention must be positive, got %s", c.AnalyticsRetention)
	}
	if c.AdminEnabled() && c.SessionSecret != "" {
		if len(c.SessionSecret) < 16 {
			return errors.New("session secret must be at least 16 bytes when admin is enabled")
		}
		if lo.Contains(knownSecrets, c.SessionSecret) {
			return fmt.Errorf("session secret %q is public, set a private one or leave it empty", c.SessionSecret)
		}
	}
	return nil
}
