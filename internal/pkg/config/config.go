package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, retry budget, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	App        AppConfig
	DB         DBConfig
	CORS       CORSConfig
	Log        LogConfig
	JWT        JWTConfig
	Store      StoreConfig
	Ack        AckConfig
	Restore    RestoreConfig
	GooglePlay GooglePlayConfig
	Bridge     BridgeConfig
}

type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type AppConfig struct {
	Env Environment `envconfig:"APP_ENV" default:"development"`
}

func (c AppConfig) IsProduction() bool {
	return c.Env == EnvProduction
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// StoreConfig selects the platform flavor and the SKUs queried at connect time.
type StoreConfig struct {
	Platform         string   `envconfig:"STORE_PLATFORM" default:"android"`
	SubscriptionSKUs []string `envconfig:"CATALOG_SUBSCRIPTION_SKUS" default:"premiummonthly,premiumyearly"`
	OneTimeSKUs      []string `envconfig:"CATALOG_ONE_TIME_SKUS" default:"superlikepack5,boostpack3"`
}

// MaxAckAttempts bounds ACK_MAX_ATTEMPTS.
const MaxAckAttempts = 3

type AckConfig struct {
	MaxAttempts int           `envconfig:"ACK_MAX_ATTEMPTS" default:"3"`
	RetryDelay  time.Duration `envconfig:"ACK_RETRY_DELAY" default:"1s"`
}

type RestoreConfig struct {
	ItemTimeout time.Duration `envconfig:"RESTORE_ITEM_TIMEOUT" default:"10s"`
}

// BridgeConfig holds the shared secret the native bridge sends with platform events.
type BridgeConfig struct {
	Secret string `envconfig:"BRIDGE_SECRET"`
}

// GooglePlayConfig enables server-side acknowledgment through the Developer API
// when a service account is present.
type GooglePlayConfig struct {
	PackageName        string `envconfig:"GOOGLE_PLAY_PACKAGE_NAME"`
	ServiceAccountJSON string `envconfig:"GOOGLE_PLAY_SERVICE_ACCOUNT_JSON"`
	Endpoint           string `envconfig:"GOOGLE_PLAY_ENDPOINT"`
}

func (c GooglePlayConfig) Enabled() bool {
	return c.PackageName != "" && c.ServiceAccountJSON != ""
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c Config) Validate() error {
	switch c.App.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("invalid APP_ENV %q", c.App.Env)
	}
	switch c.Store.Platform {
	case "android", "ios":
	default:
		return fmt.Errorf("invalid STORE_PLATFORM %q", c.Store.Platform)
	}
	if c.Ack.MaxAttempts < 1 || c.Ack.MaxAttempts > MaxAckAttempts {
		return fmt.Errorf("ACK_MAX_ATTEMPTS must be between 1 and %d, got %d", MaxAckAttempts, c.Ack.MaxAttempts)
	}
	if c.App.IsProduction() && c.Bridge.Secret == "" {
		return fmt.Errorf("BRIDGE_SECRET is required when APP_ENV=%s", c.App.Env)
	}
	if c.Restore.ItemTimeout <= 0 {
		return fmt.Errorf("RESTORE_ITEM_TIMEOUT must be positive, got %s", c.Restore.ItemTimeout)
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		App: AppConfig{
			Env: EnvDevelopment,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
			MaxConns: 4,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Store: StoreConfig{
			Platform:         "android",
			SubscriptionSKUs: []string{"premiummonthly"},
			OneTimeSKUs:      []string{"superlikepack5"},
		},
		Ack: AckConfig{
			MaxAttempts: 3,
			RetryDelay:  time.Millisecond,
		},
		Restore: RestoreConfig{
			ItemTimeout: 50 * time.Millisecond,
		},
		Bridge: BridgeConfig{
			Secret: "test-bridge-secret",
		},
	}
}
