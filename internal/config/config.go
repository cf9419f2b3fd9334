// Package config provides configuration loading and validation for the application.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default configuration constants.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8080
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	DefaultMongoDBTimeout     = 10 * time.Second
	DefaultMongoDBMaxPoolSize = 100

	DefaultRedisPoolSize = 10

	DefaultJWTLeeway          = 30 * time.Second
	DefaultJWTRefreshInterval = 1 * time.Hour

	DefaultRetryMaxRetries   = 3
	DefaultRetryInitialDelay = 100 * time.Millisecond
	DefaultRetryMaxDelay     = 2 * time.Second

	DefaultSessionTTL = 12 * time.Hour

	DefaultAuditBufferSize = 1024

	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = time.Minute

	DefaultWSBufferSize   = 1024
	DefaultWSPingInterval = 30 * time.Second
	DefaultWSPongTimeout  = 60 * time.Second
)

// Store backends.
const (
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds the complete application configuration.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	MongoDB   MongoDBConfig   `yaml:"mongodb"`
	Redis     RedisConfig     `yaml:"redis"`
	OIDC      OIDCConfig      `yaml:"oidc"`
	Security  SecurityConfig  `yaml:"security"`
	Audit     AuditConfig     `yaml:"audit"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	WebSocket WebSocketConfig `yaml:"websocket"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	// Name is the application name used in logs.
	Name string `yaml:"name" env:"APP_NAME"`

	// Environment is a free-form deployment label (dev, staging, prod).
	Environment string `yaml:"environment" env:"APP_ENVIRONMENT"`
}

// ServerConfig holds HTTP server configuration.
//
//nolint:golines // Struct tags require longer lines for readability
type ServerConfig struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// Address returns the full server address (host:port).
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MongoDBConfig holds MongoDB connection configuration.
//
//nolint:golines // Struct tags require longer lines for readability
type MongoDBConfig struct {
	URI         string        `yaml:"uri" env:"MONGODB_URI"`
	Database    string        `yaml:"database" env:"MONGODB_DATABASE"`
	Timeout     time.Duration `yaml:"timeout" env:"MONGODB_TIMEOUT"`
	MaxPoolSize uint64        `yaml:"max_pool_size" env:"MONGODB_MAX_POOL_SIZE"`
}

// RedisConfig holds Redis connection configuration.
//
//nolint:golines // Struct tags require longer lines for readability
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
	PoolSize int    `yaml:"pool_size" env:"REDIS_POOL_SIZE"`
}

// OIDCConfig holds identity provider configuration for token validation.
//
//nolint:golines // Struct tags require longer lines for readability
type OIDCConfig struct {
	IssuerURL       string        `yaml:"issuer_url" env:"OIDC_ISSUER_URL"`
	JWKSURL         string        `yaml:"jwks_url" env:"OIDC_JWKS_URL"`
	Audience        string        `yaml:"audience" env:"OIDC_AUDIENCE"`
	Leeway          time.Duration `yaml:"leeway" env:"OIDC_LEEWAY"`
	RefreshInterval time.Duration `yaml:"refresh_interval" env:"OIDC_REFRESH_INTERVAL"`
}

// RetryConfig holds the backoff policy of the validation chain.
//
//nolint:golines // Struct tags require longer lines for readability
type RetryConfig struct {
	MaxRetries   int           `yaml:"max_retries" env:"SECURITY_RETRY_MAX_RETRIES"`
	InitialDelay time.Duration `yaml:"initial_delay" env:"SECURITY_RETRY_INITIAL_DELAY"`
	MaxDelay     time.Duration `yaml:"max_delay" env:"SECURITY_RETRY_MAX_DELAY"`
}

// SecurityConfig holds validation chain and session tracking configuration.
//
//nolint:golines // Struct tags require longer lines for readability
type SecurityConfig struct {
	// SessionStore selects the fingerprint store backend: redis | memory.
	SessionStore string `yaml:"session_store" env:"SECURITY_SESSION_STORE"`

	// SessionTTL is how long an idle session fingerprint survives.
	SessionTTL time.Duration `yaml:"session_ttl" env:"SECURITY_SESSION_TTL"`

	// StrictIPCheck blocks requests whose client IP differs from the
	// session baseline instead of only logging the change.
	StrictIPCheck bool `yaml:"strict_ip_check" env:"SECURITY_STRICT_IP_CHECK"`

	Retry RetryConfig `yaml:"retry"`
}

// AuditConfig holds security event emission configuration.
//
//nolint:golines // Struct tags require longer lines for readability
type AuditConfig struct {
	// BufferSize is the capacity of the async emitter queue.
	BufferSize int `yaml:"buffer_size" env:"AUDIT_BUFFER_SIZE"`

	// PublishToRedis mirrors events onto Redis pub/sub channels.
	PublishToRedis bool `yaml:"publish_to_redis" env:"AUDIT_PUBLISH_TO_REDIS"`

	// ChannelPrefix is the Redis channel prefix for published events.
	ChannelPrefix string `yaml:"channel_prefix" env:"AUDIT_CHANNEL_PREFIX"`
}

// RateLimitConfig holds request budget configuration.
//
//nolint:golines // Struct tags require longer lines for readability
type RateLimitConfig struct {
	// Store selects the counter backend: redis | memory.
	Store    string        `yaml:"store" env:"RATE_LIMIT_STORE"`
	Requests int           `yaml:"requests" env:"RATE_LIMIT_REQUESTS"`
	Window   time.Duration `yaml:"window" env:"RATE_LIMIT_WINDOW"`
}

// LogConfig holds logging configuration.
//
//nolint:golines // Struct tags require longer lines for readability
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`   // debug | info | warn | error
	Format string `yaml:"format" env:"LOG_FORMAT"` // json | text
}

// WebSocketConfig holds the security feed configuration.
//
//nolint:golines // Struct tags require longer lines for readability
type WebSocketConfig struct {
	ReadBufferSize  int           `yaml:"read_buffer_size" env:"WS_READ_BUFFER_SIZE"`
	WriteBufferSize int           `yaml:"write_buffer_size" env:"WS_WRITE_BUFFER_SIZE"`
	PingInterval    time.Duration `yaml:"ping_interval" env:"WS_PING_INTERVAL"`
	PongTimeout     time.Duration `yaml:"pong_timeout" env:"WS_PONG_TIMEOUT"`
}

// Configuration errors.
var (
	ErrConfigNotFound   = errors.New("configuration file not found")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrInvalidDuration  = errors.New("invalid duration format")
	ErrInvalidLogLevel  = errors.New("invalid log level: must be debug, info, warn, or error")
	ErrInvalidLogFormat = errors.New("invalid log format: must be json or text")
	ErrInvalidStore     = errors.New("invalid store backend: must be redis or memory")
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "quizforge",
			Environment: "dev",
		},
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		MongoDB: MongoDBConfig{
			URI:         "mongodb://localhost:27017",
			Database:    "quizforge",
			Timeout:     DefaultMongoDBTimeout,
			MaxPoolSize: DefaultMongoDBMaxPoolSize,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: DefaultRedisPoolSize,
		},
		OIDC: OIDCConfig{
			IssuerURL:       "http://localhost:8090/realms/quizforge",
			Audience:        "quizforge-backend",
			Leeway:          DefaultJWTLeeway,
			RefreshInterval: DefaultJWTRefreshInterval,
		},
		Security: SecurityConfig{
			SessionStore:  StoreRedis,
			SessionTTL:    DefaultSessionTTL,
			StrictIPCheck: false,
			Retry: RetryConfig{
				MaxRetries:   DefaultRetryMaxRetries,
				InitialDelay: DefaultRetryInitialDelay,
				MaxDelay:     DefaultRetryMaxDelay,
			},
		},
		Audit: AuditConfig{
			BufferSize:     DefaultAuditBufferSize,
			PublishToRedis: true,
			ChannelPrefix:  "security:events:",
		},
		RateLimit: RateLimitConfig{
			Store:    StoreRedis,
			Requests: DefaultRateLimitRequests,
			Window:   DefaultRateLimitWindow,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  DefaultWSBufferSize,
			WriteBufferSize: DefaultWSBufferSize,
			PingInterval:    DefaultWSPingInterval,
			PongTimeout:     DefaultWSPongTimeout,
		},
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []error

	errs = c.validateServer(errs)
	errs = c.validateStores(errs)
	errs = c.validateOIDC(errs)
	errs = c.validateSecurity(errs)
	errs = c.validateLog(errs)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, errors.Join(errs...))
	}

	return nil
}

func (c *Config) validateServer(errs []error) []error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, errors.New("server.read_timeout must be positive"))
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, errors.New("server.write_timeout must be positive"))
	}
	return errs
}

func (c *Config) validateStores(errs []error) []error {
	if c.MongoDB.URI == "" {
		errs = append(errs, errors.New("mongodb.uri is required"))
	}
	if c.MongoDB.Database == "" {
		errs = append(errs, errors.New("mongodb.database is required"))
	}
	needsRedis := c.Security.SessionStore == StoreRedis ||
		c.RateLimit.Store == StoreRedis ||
		c.Audit.PublishToRedis
	if needsRedis && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required"))
	}
	return errs
}

func (c *Config) validateOIDC(errs []error) []error {
	if c.OIDC.IssuerURL == "" {
		errs = append(errs, errors.New("oidc.issuer_url is required"))
	}
	return errs
}

func (c *Config) validateSecurity(errs []error) []error {
	validStores := map[string]bool{StoreRedis: true, StoreMemory: true}
	if !validStores[strings.ToLower(c.Security.SessionStore)] {
		errs = append(errs, fmt.Errorf("security.session_store: %w", ErrInvalidStore))
	}
	if !validStores[strings.ToLower(c.RateLimit.Store)] {
		errs = append(errs, fmt.Errorf("rate_limit.store: %w", ErrInvalidStore))
	}
	if c.Security.SessionTTL <= 0 {
		errs = append(errs, errors.New("security.session_ttl must be positive"))
	}
	if c.Security.Retry.MaxRetries < 0 {
		errs = append(errs, errors.New("security.retry.max_retries must not be negative"))
	}
	if c.Audit.BufferSize <= 0 {
		errs = append(errs, errors.New("audit.buffer_size must be positive"))
	}
	if c.RateLimit.Requests <= 0 {
		errs = append(errs, errors.New("rate_limit.requests must be positive"))
	}
	return errs
}

func (c *Config) validateLog(errs []error) []error {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ErrInvalidLogLevel)
	}
	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[strings.ToLower(c.Log.Format)] {
		errs = append(errs, ErrInvalidLogFormat)
	}
	return errs
}

// Load loads configuration from the default config file and environment variables.
func Load() (*Config, error) {
	return LoadFromPath("")
}

// LoadFromPath loads configuration from a specific file path.
// If path is empty, it tries to find the config file in standard locations.
func LoadFromPath(path string) (*Config, error) {
	loader := NewLoader()
	return loader.Load(path)
}

// Loader handles configuration loading from files and environment variables.
type Loader struct {
	configPaths []string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		configPaths: []string{
			"configs/config.yaml",
			"config.yaml",
			"/etc/quizforge/config.yaml",
		},
	}
}

// WithConfigPaths sets custom config paths to search.
func (l *Loader) WithConfigPaths(paths []string) *Loader {
	l.configPaths = paths
	return l
}

// Load loads configuration from file and environment variables.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	configPath := path
	if configPath == "" {
		if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
			configPath = envPath
		} else {
			for _, p := range l.configPaths {
				if _, err := os.Stat(p); err == nil {
					configPath = p
					break
				}
			}
		}
	}

	if configPath != "" {
		if err := l.loadFromFile(cfg, configPath); err != nil {
			// Only fail when the path was explicitly requested; otherwise
			// continue with defaults plus env vars.
			if path != "" || os.Getenv("CONFIG_PATH") != "" {
				return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
			}
		}
	}

	if err := l.loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *Loader) loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
		return fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	return nil
}

func (l *Loader) loadFromEnv(cfg *Config) error {
	return l.loadEnvToStruct(reflect.ValueOf(cfg).Elem())
}

// loadEnvToStruct recursively loads environment variables into a struct.
func (l *Loader) loadEnvToStruct(v reflect.Value) error {
	t := v.Type()

	for i := range v.NumField() {
		field := v.Field(i)
		fieldType := t.Field(i)

		if field.Kind() == reflect.Struct {
			if err := l.loadEnvToStruct(field); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}

		envValue := os.Getenv(envTag)
		if envValue == "" {
			continue
		}

		if err := l.setFieldFromEnv(field, envValue); err != nil {
			return fmt.Errorf("failed to set %s from env %s: %w", fieldType.Name, envTag, err)
		}
	}

	return nil
}

// setFieldFromEnv sets a struct field value from an environment variable string.
//
//nolint:exhaustive // Only the kinds used by config fields are supported
func (l *Loader) setFieldFromEnv(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeFor[time.Duration]() {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("%w: %s", ErrInvalidDuration, value)
			}
			field.SetInt(int64(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %s", value)
			}
			field.SetInt(i)
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unsigned integer value: %s", value)
		}
		field.SetUint(u)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value: %s", value)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// IsDevelopment returns true when the deployment label is not prod.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.App.Environment)
	return env != "prod" && env != "production"
}
