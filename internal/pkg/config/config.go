package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// - optional integrations (Redis, Kafka) are disabled when their address is empty
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	Payment PaymentConfig
	Cart    CartConfig
	Sweeper SweeperConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Cookie  CookieConfig
	Admin   AdminConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host          string `envconfig:"DB_HOST" default:"localhost"`
	Port          string `envconfig:"DB_PORT" default:"5432"`
	User          string `envconfig:"DB_USER" required:"true"`
	Password      string `envconfig:"DB_PASSWORD" required:"true"`
	DBName        string `envconfig:"DB_NAME" required:"true"`
	SSLMode       string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone      string `envconfig:"DB_TIMEZONE" default:"Asia/Jerusalem"`
	MaxConns      int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	MigrateOnBoot bool   `envconfig:"DB_MIGRATE_ON_BOOT" default:"true"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL time.Duration `envconfig:"REDIS_CART_CACHE_TTL" default:"5m"`
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_NOTIFICATION_TOPIC" default:"order-notifications"`
}

func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

type PaymentConfig struct {
	BaseURL    string        `envconfig:"PAYMENT_BASE_URL" required:"true"`
	PageCode   string        `envconfig:"PAYMENT_PAGE_CODE" required:"true"`
	UserID     string        `envconfig:"PAYMENT_USER_ID" required:"true"`
	SuccessURL string        `envconfig:"PAYMENT_SUCCESS_URL" required:"true"`
	CancelURL  string        `envconfig:"PAYMENT_CANCEL_URL" required:"true"`
	Timeout    time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"10s"`

	BreakerFailures uint32        `envconfig:"PAYMENT_BREAKER_FAILURES" default:"5"`
	BreakerCooldown time.Duration `envconfig:"PAYMENT_BREAKER_COOLDOWN" default:"30s"`
}

type CartConfig struct {
	TTL              time.Duration `envconfig:"CART_TTL" default:"15m"`
	OrderGrace       time.Duration `envconfig:"CART_ORDER_GRACE" default:"16m"`
	AdmissionTimeout time.Duration `envconfig:"CART_ADMISSION_TIMEOUT" default:"5s"`
}

type SweeperConfig struct {
	Enabled     bool          `envconfig:"SWEEPER_ENABLED" default:"true"`
	Interval    time.Duration `envconfig:"SWEEPER_INTERVAL" default:"10s"`
	BatchSize   int           `envconfig:"SWEEPER_BATCH_SIZE" default:"100"`
	Concurrency int           `envconfig:"SWEEPER_CONCURRENCY" default:"8"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Cart-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Cart-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Jerusalem"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"7200"` // 2*60*60
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"12h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string `envconfig:"COOKIE_SAMESITE" default:"Lax"`
}

// Admin seeds a single back-office account on boot when both values are set.
type AdminConfig struct {
	Username string `envconfig:"ADMIN_USERNAME"`
	Password string `envconfig:"ADMIN_PASSWORD"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// BuildMigrateURL returns the DSN in the scheme golang-migrate's pgx/v5 driver registers.
func (c *DBConfig) BuildMigrateURL() string {
	return fmt.Sprintf(
		"pgx5://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Jerusalem",
			MaxConns: 10,
		},
		Payment: PaymentConfig{
			BaseURL:    "http://localhost:18080",
			PageCode:   "test-page",
			UserID:     "test-user",
			SuccessURL: "http://localhost:3000/success",
			CancelURL:  "http://localhost:3000/cancel",
			Timeout:    2 * time.Second,

			BreakerFailures: 5,
			BreakerCooldown: time.Second,
		},
		Cart: CartConfig{
			TTL:              15 * time.Minute,
			OrderGrace:       16 * time.Minute,
			AdmissionTimeout: time.Second,
		},
		Sweeper: SweeperConfig{
			Enabled:     false, // tests drive sweeps explicitly
			Interval:    time.Second,
			BatchSize:   50,
			Concurrency: 4,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Jerusalem",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 7200,
		},
		JWT: JWTConfig{
			Secret:   "test-secret-key-for-admin-tokens",
			Duration: time.Hour,
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Admin: AdminConfig{
			Username: "admin",
			Password: "admin-password",
		},
	}
}
