package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server  ServerConfig
	App     AppConfig
	OpenAI  OpenAIConfig
	Clerk   ClerkConfig
	Store   StoreConfig
	Objects ObjectsConfig
	Cache   CacheConfig
	Events  EventsConfig
	AWS     AWSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"300s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	AllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"sellerboost-api"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

// OpenAIConfig holds the model provider settings. The key may be empty; requests
// then fail with a configuration error instead of the process refusing to start.
type OpenAIConfig struct {
	APIKey              string        `envconfig:"OPENAI_API_KEY" default:""`
	BaseURL             string        `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	ContentModel        string        `envconfig:"OPENAI_CONTENT_MODEL" default:"gpt-4o"`
	ContentTemperature  float64       `envconfig:"OPENAI_CONTENT_TEMPERATURE" default:"0.9"`
	InsightsModel       string        `envconfig:"OPENAI_INSIGHTS_MODEL" default:"gpt-4o-mini"`
	InsightsTemperature float64       `envconfig:"OPENAI_INSIGHTS_TEMPERATURE" default:"0.7"`
	ImageModel          string        `envconfig:"OPENAI_IMAGE_MODEL" default:"dall-e-3"`
	ImageSize           string        `envconfig:"OPENAI_IMAGE_SIZE" default:"1024x1024"`
	ImageQuality        string        `envconfig:"OPENAI_IMAGE_QUALITY" default:"hd"`
	Timeout             time.Duration `envconfig:"OPENAI_TIMEOUT" default:"120s"`
}

// ClerkConfig holds identity provider settings.
type ClerkConfig struct {
	SecretKey string        `envconfig:"CLERK_SECRET_KEY" required:"true"`
	KeyTTL    time.Duration `envconfig:"CLERK_JWKS_TTL" default:"1h"`
}

// StoreConfig holds the durable record store settings.
type StoreConfig struct {
	Type string `envconfig:"STORE_TYPE" default:"sqlite"` // sqlite, postgres, mysql, or mongodb
	Path string `envconfig:"STORE_PATH" default:"./data/sellerboost.db"`

	Host     string `envconfig:"STORE_HOST" default:"localhost"`
	Port     int    `envconfig:"STORE_PORT" default:"5432"`
	Name     string `envconfig:"STORE_NAME" default:"sellerboost"`
	User     string `envconfig:"STORE_USER" default:"postgres"`
	Password string `envconfig:"STORE_PASS" default:""`
	SSLMode  string `envconfig:"STORE_SSLMODE" default:"disable"`

	MongoURI      string `envconfig:"MONGODB_URI" default:""`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"sellerboost"`

	ConnectAttempts uint64 `envconfig:"STORE_CONNECT_ATTEMPTS" default:"5"`
}

// ObjectsConfig holds flyer storage settings.
type ObjectsConfig struct {
	Type          string `envconfig:"OBJECTS_TYPE" default:"local"` // s3 or local
	Bucket        string `envconfig:"OBJECTS_BUCKET" default:"product-images"`
	Endpoint      string `envconfig:"OBJECTS_ENDPOINT" default:""`
	PublicBaseURL string `envconfig:"OBJECTS_PUBLIC_URL" default:""`
	Prefix        string `envconfig:"OBJECTS_PREFIX" default:"flyers"`
	LocalDir      string `envconfig:"OBJECTS_LOCAL_DIR" default:"./data/objects"`
}

// CacheConfig holds the optional Redis principal cache settings.
type CacheConfig struct {
	Enabled      bool          `envconfig:"CACHE_ENABLED" default:"false"`
	PrincipalTTL time.Duration `envconfig:"CACHE_PRINCIPAL_TTL" default:"5m"`
	KeyPrefix    string        `envconfig:"CACHE_KEY_PREFIX" default:"sellerboost:"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// EventsConfig holds the domain event queue settings. Empty queue URL disables publishing.
type EventsConfig struct {
	QueueURL string `envconfig:"EVENTS_QUEUE_URL" default:""`
}

// AWSConfig holds credentials shared by S3 and SQS. Empty keys fall back to the
// default credential chain.
type AWSConfig struct {
	Region          string `envconfig:"AWS_REGION" default:"us-east-1"`
	AccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID" default:""`
	SecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY" default:""`
}

// PostgresDSN returns the PostgreSQL connection string.
func (s *StoreConfig) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(s.User, s.Password),
		Host:     fmt.Sprintf("%s:%d", s.Host, s.Port),
		Path:     s.Name,
		RawQuery: "sslmode=" + s.SSLMode,
	}
	return u.String()
}

// MySQLDSN returns the MySQL data source name.
func (s *StoreConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		s.User, s.Password, s.Host, s.Port, s.Name)
}

// DSN returns the connection string for the configured SQL backend.
func (s *StoreConfig) DSN() string {
	switch s.Type {
	case "postgres":
		return s.PostgresDSN()
	case "mysql":
		return s.MySQLDSN()
	default:
		return s.Path
	}
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// Validate checks combinations envconfig cannot express.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Clerk.SecretKey) == "" {
		return fmt.Errorf("CLERK_SECRET_KEY is required")
	}

	switch c.Store.Type {
	case "sqlite", "postgres", "mysql":
	case "mongodb":
		if c.Store.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required when STORE_TYPE=mongodb")
		}
	default:
		return fmt.Errorf("unsupported STORE_TYPE %q", c.Store.Type)
	}

	switch c.Objects.Type {
	case "local":
	case "s3":
		if c.Objects.Bucket == "" {
			return fmt.Errorf("OBJECTS_BUCKET is required when OBJECTS_TYPE=s3")
		}
	default:
		return fmt.Errorf("unsupported OBJECTS_TYPE %q", c.Objects.Type)
	}

	c.Objects.PublicBaseURL = strings.TrimRight(c.Objects.PublicBaseURL, "/")
	return nil
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
