package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultDSN           = "edp_shifts.db"
	defaultCORSOrigins   = "http://localhost:5173"
	defaultAdminPassword = "admin123"
)

type Config struct {
	HTTPPort    string        `envconfig:"HTTP_PORT" default:"8080"`
	DBDriver    string        `envconfig:"DB_DRIVER" default:"sqlite"`
	DatabaseDSN string        `envconfig:"DATABASE_DSN" default:"edp_shifts.db"`
	JWTSecret   string        `envconfig:"JWT_SECRET"`
	JWTTTL      time.Duration `envconfig:"JWT_TTL" default:"24h"`
	CORSOrigins string        `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	Timezone    string        `envconfig:"TIMEZONE" default:"Asia/Kolkata"`

	// Branch codes seeded as `user` accounts on migrate.
	SeedBranches  []string `envconfig:"SEED_BRANCHES" default:"RFT,DCN,TVK,LAL,MCR,TMF,CNT,MNP,TKI,PBR,JKM,ALR,UPM,TRR,KNM"`
	AdminPassword string   `envconfig:"ADMIN_PASSWORD" default:"admin123"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogPath  string `envconfig:"LOG_PATH"` // empty: stdout only
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadStorage is Load for tools that never issue tokens: JWT settings are not checked.
func LoadStorage() (*Config, error) {
	cfg, err := read()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateStorage(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func read() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	for i := range cfg.SeedBranches {
		cfg.SeedBranches[i] = strings.ToUpper(strings.TrimSpace(cfg.SeedBranches[i]))
	}
	return &cfg, nil
}

// Validate applies the production checks. A weak or missing JWT secret is fatal.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return c.ValidateStorage()
}

// ValidateStorage checks the database driver and time zone.
func (c *Config) ValidateStorage() error {
	if c.DBDriver != DriverSQLite && c.DBDriver != DriverPostgres {
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// Warnings lists settings still on their development defaults.
func (c *Config) Warnings() []string {
	var w []string
	if c.DBDriver == DriverSQLite && c.DatabaseDSN == defaultDSN {
		w = append(w, "DATABASE_DSN uses the default local file edp_shifts.db")
	}
	if c.CORSOrigins == defaultCORSOrigins {
		w = append(w, "CORS_ALLOWED_ORIGINS uses the default value, set your own domain in production")
	}
	if c.AdminPassword == defaultAdminPassword {
		w = append(w, "ADMIN_PASSWORD uses the default value, change the seeded admin password")
	}
	return w
}

// Location returns the zone shift timestamps are recorded in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AllowedOrigins splits CORSOrigins into trimmed entries.
func (c *Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
