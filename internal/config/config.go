package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/YelzhanWeb/pancakes/internal/domain"
)

type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Log      LogConfig      `yaml:"log"`
	Store    StoreConfig    `yaml:"store"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Telegram TelegramConfig `yaml:"telegram"`
}

type ServiceConfig struct {
	Port            int      `yaml:"port"`
	Timezone        string   `yaml:"timezone"`
	CooldownMinutes int      `yaml:"cooldown_minutes"`
	Menu            []string `yaml:"menu"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Env   string `yaml:"env"`
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)

type StoreConfig struct {
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlite_path"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// URL is the postgres:// form used by the migrator.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Enabled is false when no broker is configured; events then stay in-process.
func (c RabbitMQConfig) Enabled() bool {
	return c.Host != ""
}

type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

func (c TelegramConfig) Enabled() bool {
	return c.Token != "" && c.ChatID != 0
}

func Default() Config {
	return Config{
		Service: ServiceConfig{
			Port:            3000,
			Timezone:        domain.DefaultLocation,
			CooldownMinutes: int(domain.DefaultCooldown / time.Minute),
			Menu:            append([]string(nil), domain.DefaultMenu...),
		},
		Log:   LogConfig{Level: "info", Env: "production"},
		Store: StoreConfig{Driver: StoreDriverPostgres, SQLitePath: "pancakes.db"},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "pancakes",
			Database: "pancakes",
			SSLMode:  "disable",
		},
		RabbitMQ: RabbitMQConfig{Port: 5672, User: "guest", Password: "guest"},
	}
}

// Load reads the YAML file at path (a missing file is not an error), then
// applies .env and environment overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverSQLite:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Service.CooldownMinutes <= 0 {
		return fmt.Errorf("service.cooldown_minutes must be positive")
	}
	if _, err := domain.LoadLocation(c.Service.Timezone); err != nil {
		return err
	}
	return nil
}

// Cooldown is the per-guest cooldown as a duration.
func (c ServiceConfig) Cooldown() time.Duration {
	return time.Duration(c.CooldownMinutes) * time.Minute
}

func applyEnv(cfg *Config) {
	setInt(&cfg.Service.Port, "PORT")
	setString(&cfg.Service.Timezone, "TIMEZONE")
	setInt(&cfg.Service.CooldownMinutes, "COOLDOWN_MINUTES")
	if v := os.Getenv("MENU"); v != "" {
		cfg.Service.Menu = splitList(v)
	}

	setString(&cfg.Log.Level, "LOG_LEVEL")
	setString(&cfg.Log.Env, "ENV")

	setString(&cfg.Store.Driver, "STORE_DRIVER")
	setString(&cfg.Store.SQLitePath, "SQLITE_PATH")

	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Database, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")

	setString(&cfg.RabbitMQ.Host, "RABBITMQ_HOST")
	setInt(&cfg.RabbitMQ.Port, "RABBITMQ_PORT")
	setString(&cfg.RabbitMQ.User, "RABBITMQ_USER")
	setString(&cfg.RabbitMQ.Password, "RABBITMQ_PASSWORD")

	setString(&cfg.Telegram.Token, "TELEGRAM_TOKEN")
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = n
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
