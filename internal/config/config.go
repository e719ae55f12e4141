package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yml"

const (
	StorageInMemory = "inmemory"
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Storage StorageConfig `yaml:"storage"`
	Store   StoreConfig   `yaml:"store"`
	Worker  WorkerConfig  `yaml:"worker"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Host            string        `yaml:"host"`
	LocalOnly       bool          `yaml:"local_only"`
	RateLimit       int           `yaml:"rate_limit"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LoggingConfig struct {
	Development bool   `yaml:"development"`
	File        string `yaml:"file"`
	MaxSizeMB   int    `yaml:"max_size_mb"`
	MaxBackups  int    `yaml:"max_backups"`
	MaxAgeDays  int    `yaml:"max_age_days"`
}

type StorageConfig struct {
	Type     string         `yaml:"type"` // inmemory, file, postgres или redis
	Dir      string         `yaml:"dir"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
}

type DatabaseConfig struct {
	URL            string        `yaml:"url"`
	MaxConnections int32         `yaml:"max_connections"`
	MinConnections int32         `yaml:"min_connections"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type StoreConfig struct {
	WriteTimeout time.Duration `yaml:"write_timeout"` // таймаут одной записи в хранилище
}

type WorkerConfig struct {
	Enabled       bool          `yaml:"enabled"`
	ResyncEvery   time.Duration `yaml:"resync_every"`
	ResyncTimeout time.Duration `yaml:"resync_timeout"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            "8080",
			LocalOnly:       true,
			RateLimit:       600,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Development: true,
			MaxSizeMB:   10,
			MaxBackups:  3,
			MaxAgeDays:  28,
		},
		Storage: StorageConfig{
			Type: StorageFile,
			Dir:  "data",
			Database: DatabaseConfig{
				MaxConnections: 4,
				MinConnections: 1,
				IdleTimeout:    5 * time.Minute,
			},
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "taskkeeper:",
			},
		},
		Store: StoreConfig{
			WriteTimeout: 5 * time.Second,
		},
		Worker: WorkerConfig{
			Enabled:       true,
			ResyncEvery:   30 * time.Second,
			ResyncTimeout: 10 * time.Second,
		},
	}
}

// Load читает YAML поверх значений по умолчанию, затем применяет переменные окружения.
// Отсутствующий файл конфигурации не считается ошибкой
func Load(path string) (*Config, error) {
	cfg := Default()

	// .env не обязателен
	_ = godotenv.Load()

	if path == "" {
		path = getEnv("TASKKEEPER_CONFIG", DefaultPath)
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("не могу открыть %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Server.Host = getEnv("TASKKEEPER_HOST", c.Server.Host)
	c.Server.Port = getEnv("TASKKEEPER_PORT", c.Server.Port)
	c.Storage.Type = getEnv("TASKKEEPER_STORAGE", c.Storage.Type)
	c.Storage.Dir = getEnv("TASKKEEPER_DATA_DIR", c.Storage.Dir)
	c.Storage.Database.URL = getEnv("TASKKEEPER_DATABASE_URL", c.Storage.Database.URL)
	c.Storage.Redis.Addr = getEnv("TASKKEEPER_REDIS_ADDR", c.Storage.Redis.Addr)
	c.Storage.Redis.Password = getEnv("TASKKEEPER_REDIS_PASSWORD", c.Storage.Redis.Password)
	c.Logging.File = getEnv("TASKKEEPER_LOG_FILE", c.Logging.File)

	if raw, ok := os.LookupEnv("TASKKEEPER_LOG_DEVELOPMENT"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("TASKKEEPER_LOG_DEVELOPMENT: %w", err)
		}
		c.Logging.Development = v
	}
	if raw, ok := os.LookupEnv("TASKKEEPER_REDIS_DB"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("TASKKEEPER_REDIS_DB: %w", err)
		}
		c.Storage.Redis.DB = v
	}
	return nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Type) {
	case StorageInMemory, StorageFile:
	case StoragePostgres:
		if c.Storage.Database.URL == "" {
			return errors.New("storage.database.url обязателен для postgres")
		}
	case StorageRedis:
		if c.Storage.Redis.Addr == "" {
			return errors.New("storage.redis.addr обязателен для redis")
		}
	default:
		return fmt.Errorf("неизвестный тип хранилища %q", c.Storage.Type)
	}
	c.Storage.Type = strings.ToLower(c.Storage.Type)

	if c.Storage.Type == StorageFile && c.Storage.Dir == "" {
		return errors.New("storage.dir обязателен для file")
	}
	if c.Store.WriteTimeout < 0 {
		return errors.New("store.write_timeout не может быть отрицательным")
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
