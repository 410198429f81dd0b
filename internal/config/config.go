package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Cart session store backends.
const (
	CartStoreMemory = "memory"
	CartStoreRedis  = "redis"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	Cart   CartConfig
	Log    LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port            string `envconfig:"SERVER_PORT" default:"3000"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"30"` // seconds
	AllowOrigins    string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
}

// DBConfig holds database-related configuration.
// The default password is for local development only; set DB_PASSWORD and
// DB_SSLMODE=require (or verify-full) in production.
type DBConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        int    `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"storefront"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	MaxRetries  int    `envconfig:"DB_MAX_RETRIES" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// DSN returns the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d&pool_min_conns=%d",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode, c.MaxConns, c.MinConns)
}

// RedisConfig holds the connection settings of the Redis cart store.
type RedisConfig struct {
	Addr       string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password   string `envconfig:"REDIS_PASSWORD" default:""`
	DB         int    `envconfig:"REDIS_DB" default:"0"`
	MaxRetries int    `envconfig:"REDIS_MAX_RETRIES" default:"5"`
}

// CartConfig selects where shopper carts live between requests.
type CartConfig struct {
	Store string        `envconfig:"CART_STORE" default:"memory"`
	TTL   time.Duration `envconfig:"CART_TTL" default:"168h"`
}

// UseRedis reports whether carts are kept in Redis.
func (c CartConfig) UseRedis() bool {
	return strings.EqualFold(c.Store, CartStoreRedis)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// Load parses environment variables into the Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	switch strings.ToLower(cfg.Cart.Store) {
	case CartStoreMemory, CartStoreRedis:
	default:
		return nil, fmt.Errorf("invalid CART_STORE %q: must be %q or %q", cfg.Cart.Store, CartStoreMemory, CartStoreRedis)
	}
	if cfg.Cart.TTL <= 0 {
		return nil, fmt.Errorf("invalid CART_TTL %s: must be positive", cfg.Cart.TTL)
	}
	return &cfg, nil
}
