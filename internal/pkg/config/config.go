package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// InnerDistricts is the set of district names eligible for routed
	// delivery batching. Defaults to the six urban districts of Da Nang.
	InnerDistricts []string `env:"INNER_DISTRICTS, delimiter=|, default=Quận Hải Châu|Quận Cẩm Lệ|Quận Thanh Khê|Quận Liên Chiểu|Quận Ngũ Hành Sơn|Quận Sơn Trà"`

	ReportWorkers int `env:"REPORT_WORKERS, default=8"`

	Mongo MongoConfig
	Redis RedisConfig
	Map4D Map4DConfig
	SMTP  SMTPConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=delivery_system"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type Map4DConfig struct {
	APIKey  string        `env:"MAP4D_API_KEY"`
	BaseURL string        `env:"MAP4D_BASE_URL, default=https://api.map4d.vn"`
	Timeout time.Duration `env:"MAP4D_TIMEOUT,  default=10s"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=localhost"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM, default=no-reply@danang-express.vn"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
