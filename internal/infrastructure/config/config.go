package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Realtime  RealtimeConfig
	Media     MediaConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"5000" validate:"required,numeric"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// DatabaseConfig holds storage configuration.
type DatabaseConfig struct {
	Driver         string        `envconfig:"DB_DRIVER" default:"mongo" validate:"oneof=mongo memory"`
	URI            string        `envconfig:"MONGODB_URL" default:"mongodb://localhost:27017" validate:"required_if=Driver mongo"`
	Name           string        `envconfig:"DB_NAME" default:"linkup" validate:"required"`
	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"10s" validate:"gt=0"`
}

// AuthConfig holds session token configuration.
type AuthConfig struct {
	JWTSecret    string        `envconfig:"JWT_SECRET" default:"linkup-development-secret" validate:"required,min=16"`
	TokenTTL     time.Duration `envconfig:"TOKEN_TTL" default:"168h" validate:"gt=0"`
	CookieName   string        `envconfig:"COOKIE_NAME" default:"token" validate:"required"`
	CookieSecure bool          `envconfig:"COOKIE_SECURE" default:"false"`
}

// CORSConfig holds the fixed origins allowed to talk to the backend with
// credentials. HTTP and realtime clients are served from different origins.
type CORSConfig struct {
	HTTPOrigin     string `envconfig:"CORS_HTTP_ORIGIN" default:"http://localhost:5173" validate:"required,url"`
	RealtimeOrigin string `envconfig:"CORS_REALTIME_ORIGIN" default:"https://linkedin1-frontend.onrender.com" validate:"required,url"`
}

// RealtimeConfig holds websocket transport configuration.
type RealtimeConfig struct {
	MaxMessageSize int64         `envconfig:"WS_MAX_MESSAGE_SIZE" default:"4096" validate:"gt=0"`
	PingInterval   time.Duration `envconfig:"WS_PING_INTERVAL" default:"25s" validate:"gt=0"`
	SendBuffer     int           `envconfig:"WS_SEND_BUFFER" default:"64" validate:"gt=0"`
}

// MediaConfig holds upload configuration.
type MediaConfig struct {
	UploadDir string `envconfig:"UPLOAD_DIR" default:"./uploads" validate:"required"`
	MaxBytes  int64  `envconfig:"UPLOAD_MAX_BYTES" default:"5242880" validate:"gt=0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100" validate:"gt=0"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200" validate:"gt=0"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// DefaultPort is used when PORT is unset or blank.
const DefaultPort = "5000"

var validate = validator.New()

// Load loads configuration from a .env file (when present) and the
// environment. Variables already set in the environment win over .env.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	// PORT may be present but blank on some hosts
	if cfg.Server.Port == "" {
		cfg.Server.Port = DefaultPort
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: DefaultPort,
			Host: "0.0.0.0",
		},
		Database: DatabaseConfig{
			Driver:         "mongo",
			URI:            "mongodb://localhost:27017",
			Name:           "linkup",
			ConnectTimeout: 10 * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret:  "linkup-development-secret",
			TokenTTL:   7 * 24 * time.Hour,
			CookieName: "token",
		},
		CORS: CORSConfig{
			HTTPOrigin:     "http://localhost:5173",
			RealtimeOrigin: "https://linkedin1-frontend.onrender.com",
		},
		Realtime: RealtimeConfig{
			MaxMessageSize: 4096,
			PingInterval:   25 * time.Second,
			SendBuffer:     64,
		},
		Media: MediaConfig{
			UploadDir: "./uploads",
			MaxBytes:  5 << 20,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}

// Addr returns the host:port the HTTP listener binds to.
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}
