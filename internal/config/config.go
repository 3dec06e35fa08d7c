// config предоставляет структуру конфигурации feed-сервиса и функции
// загрузки из файла/переменных окружения с предсказуемым приоритетом.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config — корневая конфигурация сервиса.
// Источники значений (по убыванию приоритета):
//  1. явный путь через флаг --config;
//  2. путь в переменной окружения CONFIG_PATH;
//  3. файл local.yaml из рабочей директории;
//  4. переменные окружения (cleanenv), дополненные файлом .env, если он есть.
type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	DB        DBConfig        `yaml:"db"`
	Auth      AuthConfig      `yaml:"auth"`
	CORS      CORSConfig      `yaml:"cors"`
	S3        S3Config        `yaml:"s3"`
	Upload    UploadConfig    `yaml:"upload"`
	Redis     RedisConfig     `yaml:"redis"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Limits    LimitsConfig    `yaml:"limits"`
	Timeouts  TimeoutConfig   `yaml:"timeouts"`
}

// HTTPConfig — сетевые настройки REST-сервера.
type HTTPConfig struct {
	Host     string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	BasePath string `yaml:"base_path" env:"HTTP_BASE_PATH"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// DBConfig — настройки подключения к базе данных.
type DBConfig struct {
	DatabaseURL string `yaml:"db_url" env:"DATABASE_URL" env-required:"true"`
	AutoMigrate bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"false"`
}

// AuthConfig содержит параметры выпуска и валидации токенов.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `yaml:"jwt_expiration_time" env:"JWT_EXPIRATION_TIME" env-default:"24h"`
	Issuer    string        `yaml:"issuer" env:"JWT_ISSUER" env-default:"feed-service"`
}

// CORSConfig — разрешённые источники для браузерного клиента.
type CORSConfig struct {
	Origins []string `yaml:"origins" env:"CORS_ORIGIN" env-separator:"," env-default:"http://localhost:3000"`
}

// S3Config — хранилище изображений (MinIO/S3).
type S3Config struct {
	Endpoint      string `yaml:"endpoint" env:"S3_ENDPOINT" env-required:"true"`
	RootUser      string `yaml:"root_user" env:"S3_ROOT_USER" env-required:"true"`
	RootPassword  string `yaml:"root_password" env:"S3_ROOT_PASSWORD" env-required:"true"`
	Bucket        string `yaml:"bucket" env:"S3_BUCKET" env-required:"true"`
	PublicBaseURL string `yaml:"public_base_url" env:"S3_PUBLIC_BASE_URL"`
}

// UploadConfig — ограничения на загружаемые изображения.
type UploadConfig struct {
	MaxSizeBytes        int64    `yaml:"max_size_bytes" env:"UPLOAD_MAX_SIZE_BYTES" env-default:"5242880"`
	AllowedContentTypes []string `yaml:"allowed_content_types" env:"UPLOAD_ALLOWED_CONTENT_TYPES" env-separator:"," env-default:"image/jpeg,image/png,image/gif,image/webp"`
}

// RedisConfig — опциональный Redis для ограничителя частоты логинов.
// Пустой URL — используется in-memory ограничитель.
type RedisConfig struct {
	URL string `yaml:"redis_url" env:"REDIS_URL"`
}

// RateLimitConfig — ограничение попыток входа с одного IP.
type RateLimitConfig struct {
	LoginLimit  int           `yaml:"login_limit" env:"LOGIN_RATE_LIMIT" env-default:"5"`
	LoginWindow time.Duration `yaml:"login_window" env:"LOGIN_RATE_WINDOW" env-default:"1m"`
}

// LimitsConfig — пагинация списков. Default == 0 — без ограничения.
type LimitsConfig struct {
	Default int `yaml:"default" env:"LIST_DEFAULT_LIMIT" env-default:"0"`
	Max     int `yaml:"max" env:"LIST_MAX_LIMIT" env-default:"100"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла ENV-переменные накладываются поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	readFile := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		if err := cfg.validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 1) --config.
	if path != "" {
		return readFile(path)
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return readFile(envPath)
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		return readFile("local.yaml")
	}

	// 4) Только ENV. Уже заданные переменные .env не перезаписывает.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DB.DatabaseURL == "" {
		return fmt.Errorf("db.db_url is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.jwt_expiration_time must be > 0")
	}

	if p, err := strconv.Atoi(c.HTTP.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("http.port must be a valid TCP port (1..65535)")
	}

	if c.S3.Endpoint == "" || c.S3.Bucket == "" {
		return fmt.Errorf("s3.endpoint and s3.bucket are required")
	}

	if c.Upload.MaxSizeBytes <= 0 {
		return fmt.Errorf("upload.max_size_bytes must be > 0")
	}

	if len(c.Upload.AllowedContentTypes) == 0 {
		return fmt.Errorf("upload.allowed_content_types must not be empty")
	}

	if c.RateLimit.LoginLimit <= 0 || c.RateLimit.LoginWindow <= 0 {
		return fmt.Errorf("rate_limit.login_limit and rate_limit.login_window must be > 0")
	}

	if c.Limits.Default < 0 || c.Limits.Max < 0 {
		return fmt.Errorf("limits must be >= 0")
	}

	return nil
}
