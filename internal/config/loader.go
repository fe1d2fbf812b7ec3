// Package config resolves runtime configuration in three layers: built-in
// defaults, an optional YAML file named by SCHEDULER_CONFIG_FILE, and finally
// SCHEDULER_* environment variables. Later layers win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/example/basic-scheduler/internal/scheduling"
)

// Config captures the resolved configuration for the scheduler service.
type Config struct {
	HTTPPort   int
	SQLiteDSN  string
	SessionTTL time.Duration

	BusinessOpen  scheduling.Clock
	BusinessClose scheduling.Clock
	BusinessZone  *time.Location

	// InitialAdminUsername and InitialAdminPassword seed the first admin
	// account when the users table is empty.
	InitialAdminUsername string
	InitialAdminPassword string
}

// BusinessHours assembles the validator window from the resolved values.
func (c Config) BusinessHours() scheduling.BusinessHours {
	return scheduling.BusinessHours{
		Open:     c.BusinessOpen,
		Close:    c.BusinessClose,
		Location: c.BusinessZone,
	}
}

// fileConfig mirrors the YAML layout. Pointer fields distinguish "absent"
// from zero values.
type fileConfig struct {
	HTTPPort   *int    `yaml:"http_port"`
	SQLiteDSN  *string `yaml:"sqlite_dsn"`
	SessionTTL *string `yaml:"session_ttl"`

	BusinessHours struct {
		Open  *string `yaml:"open"`
		Close *string `yaml:"close"`
		Zone  *string `yaml:"zone"`
	} `yaml:"business_hours"`

	InitialAdmin struct {
		Username *string `yaml:"username"`
		Password *string `yaml:"password"`
	} `yaml:"initial_admin"`
}

// Load resolves configuration from defaults, the optional config file and the
// environment. An unknown business zone fails loading so a misconfigured
// deployment never starts.
func Load() (Config, error) {
	raw := rawConfig{
		httpPort:      "8080",
		sqliteDSN:     "file:scheduler.db",
		sessionTTL:    "24h",
		businessOpen:  "08:00",
		businessClose: "22:00",
		businessZone:  "America/New_York",
		adminUsername: "admin",
		adminPassword: "admin",
	}

	if path := strings.TrimSpace(os.Getenv("SCHEDULER_CONFIG_FILE")); path != "" {
		if err := raw.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	raw.applyEnvironment()
	return raw.resolve()
}

// rawConfig holds every value as a string until resolve validates the lot,
// so one pass can report all problems together.
type rawConfig struct {
	httpPort      string
	sqliteDSN     string
	sessionTTL    string
	businessOpen  string
	businessClose string
	businessZone  string
	adminUsername string
	adminPassword string
}

func (r *rawConfig) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if file.HTTPPort != nil {
		r.httpPort = strconv.Itoa(*file.HTTPPort)
	}
	if file.SQLiteDSN != nil {
		r.sqliteDSN = *file.SQLiteDSN
	}
	if file.SessionTTL != nil {
		r.sessionTTL = *file.SessionTTL
	}
	if file.BusinessHours.Open != nil {
		r.businessOpen = *file.BusinessHours.Open
	}
	if file.BusinessHours.Close != nil {
		r.businessClose = *file.BusinessHours.Close
	}
	if file.BusinessHours.Zone != nil {
		r.businessZone = *file.BusinessHours.Zone
	}
	if file.InitialAdmin.Username != nil {
		r.adminUsername = *file.InitialAdmin.Username
	}
	if file.InitialAdmin.Password != nil {
		r.adminPassword = *file.InitialAdmin.Password
	}
	return nil
}

func (r *rawConfig) applyEnvironment() {
	overrides := []struct {
		key  string
		dest *string
	}{
		{"SCHEDULER_HTTP_PORT", &r.httpPort},
		{"SCHEDULER_SQLITE_DSN", &r.sqliteDSN},
		{"SCHEDULER_SESSION_TTL", &r.sessionTTL},
		{"SCHEDULER_BUSINESS_OPEN", &r.businessOpen},
		{"SCHEDULER_BUSINESS_CLOSE", &r.businessClose},
		{"SCHEDULER_BUSINESS_ZONE", &r.businessZone},
		{"SCHEDULER_INITIAL_ADMIN_USERNAME", &r.adminUsername},
		{"SCHEDULER_INITIAL_ADMIN_PASSWORD", &r.adminPassword},
	}
	for _, override := range overrides {
		if value := strings.TrimSpace(os.Getenv(override.key)); value != "" {
			*override.dest = value
		}
	}
}

func (r *rawConfig) resolve() (Config, error) {
	cfg := Config{
		SQLiteDSN:            r.sqliteDSN,
		InitialAdminUsername: r.adminUsername,
		InitialAdminPassword: r.adminPassword,
	}

	var invalid []string

	port, err := strconv.Atoi(r.httpPort)
	if err != nil || port <= 0 || port > 65535 {
		invalid = append(invalid, "http_port")
	} else {
		cfg.HTTPPort = port
	}

	ttl, err := time.ParseDuration(r.sessionTTL)
	if err != nil || ttl <= 0 {
		invalid = append(invalid, "session_ttl")
	} else {
		cfg.SessionTTL = ttl
	}

	if cfg.BusinessOpen, err = scheduling.ParseClock(r.businessOpen); err != nil {
		invalid = append(invalid, "business_hours.open")
	}
	if cfg.BusinessClose, err = scheduling.ParseClock(r.businessClose); err != nil {
		invalid = append(invalid, "business_hours.close")
	}

	cfg.BusinessZone, err = scheduling.LoadZone(r.businessZone)
	if err != nil {
		if errors.Is(err, scheduling.ErrUnknownZone) {
			return Config{}, fmt.Errorf("unknown business zone %q", r.businessZone)
		}
		return Config{}, err
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid configuration values: %s", strings.Join(invalid, ", "))
	}
	return cfg, nil
}
