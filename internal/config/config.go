package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration. It is resolved once at startup
// and passed explicitly to the components that need it.
type Config struct {
	Env         string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	ServerPort  string `envconfig:"SERVER_PORT" default:"3000"`

	// PostgreSQL
	DBHost             string        `envconfig:"DB_HOST" required:"true"`
	DBPort             string        `envconfig:"DB_PORT" default:"5432"`
	DBUser             string        `envconfig:"DB_USER" required:"true"`
	DBName             string        `envconfig:"DB_NAME" required:"true"`
	DBSSLMode          string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConnections   int32         `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBMaxConnIdleTime  time.Duration `envconfig:"DB_MAX_CONN_IDLE_TIME" default:"5m"`
	DBQueryTimeout     time.Duration `envconfig:"DB_QUERY_TIMEOUT" default:"5s"`
	DBReadRetries      int           `envconfig:"DB_READ_RETRIES" default:"2"`
	DBConnectAttempts  int           `envconfig:"DB_CONNECT_ATTEMPTS" default:"5"`
	DBPassword         string        // secret file
	MigrationsDisabled bool          `envconfig:"MIGRATIONS_DISABLED" default:"false"`

	// Redis. Empty address disables token revocation and uses an in-memory rate limiter.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPassword string // optional secret file

	// RabbitMQ. Empty URL disables domain events.
	RabbitMQURL string `envconfig:"RABBITMQ_URL"`
	EventsQueue string `envconfig:"EVENTS_QUEUE" default:"marketplace_events"`

	// Blob storage
	GCSBucket          string        `envconfig:"GCS_BUCKET"`
	GCSCredentialsFile string        `envconfig:"GCS_CREDENTIALS_FILE"`
	UploadTimeout      time.Duration `envconfig:"UPLOAD_TIMEOUT" default:"30s"`
	MaxUploadSize      int64         `envconfig:"MAX_UPLOAD_SIZE" default:"5242880"`

	// Tokens and passwords
	JWTSecret      string // secret file
	PasswordPepper string // optional secret file
	TokenTTL       time.Duration `envconfig:"JWT_TOKEN_TTL" default:"4h"`
	TokenIssuer    string        `envconfig:"JWT_ISSUER" default:"marketplace-server"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	RateLimitPerMinute uint   `envconfig:"RATE_LIMIT_PER_MINUTE" default:"10"`

	SecretsDir string `envconfig:"SECRETS_DIR" default:"/run/secrets"`
}

// GetAllowedOrigins splits CORSAllowedOrigins into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if strings.TrimSpace(c.CORSAllowedOrigins) == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// DatabaseDSN returns the pgx connection string.
func (c *Config) DatabaseDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// RedisEnabled reports whether a redis address is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadConfig loads configuration from an optional .env file, the environment
// and secret files.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: could not load %s: %v", envFilePath, err)
			} else {
				log.Printf("Loaded configuration from %s", envFilePath)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: error checking %s: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}

	secrets := SecretReader{Dir: cfg.SecretsDir}

	var err error
	if cfg.DBPassword, err = secrets.Read("db_password"); err != nil {
		return nil, err
	}
	if cfg.JWTSecret, err = secrets.Read("jwt_secret"); err != nil {
		return nil, err
	}

	// optional
	cfg.PasswordPepper = secrets.ReadOptional("password_pepper")
	cfg.RedisPassword = secrets.ReadOptional("redis_password")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Println("Configuration loaded successfully")
	return &cfg, nil
}

// Validate checks value ranges envconfig cannot express.
func (c *Config) Validate() error {
	if c.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.DBQueryTimeout <= 0 {
		return fmt.Errorf("DB_QUERY_TIMEOUT must be positive, got %s", c.DBQueryTimeout)
	}
	if c.DBReadRetries < 0 {
		return fmt.Errorf("DB_READ_RETRIES must not be negative, got %d", c.DBReadRetries)
	}
	if c.UploadTimeout <= 0 {
		return fmt.Errorf("UPLOAD_TIMEOUT must be positive, got %s", c.UploadTimeout)
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive, got %d", c.MaxUploadSize)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt secret is empty")
	}
	return nil
}
