package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Dataset  DatasetConfig
	Map      MapConfig
	Session  SessionConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

// DatasetConfig - откуда берутся записи полей: file (json/yaml) или postgres
type DatasetConfig struct {
	Source string
	Path   string
}

type MapConfig struct {
	Convention      string
	OverlayColor    string
	TileURL         string
	TileAttribution string
	DefaultZoom     int
}

type SessionConfig struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

type CacheConfig struct {
	OverlayCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled         bool
	ConsumerGroup   string
	MaxBatch        int
	ShutdownTimeout time.Duration
}

const (
	DatasetSourceFile     = "file"
	DatasetSourcePostgres = "postgres"
)

// Load читает .env из текущей директории (если есть) и переменные окружения
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom читает конфигурацию из указанного env-файла и окружения.
// Отсутствие файла не считается ошибкой.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("API_HOST"),
			Port:        v.GetInt("API_PORT"),
			Env:         v.GetString("API_ENV"),
			CORSOrigins: v.GetString("CORS_ORIGINS"),
		},
		Dataset: DatasetConfig{
			Source: strings.ToLower(v.GetString("DATASET_SOURCE")),
			Path:   v.GetString("DATASET_PATH"),
		},
		Map: MapConfig{
			Convention:      strings.ToLower(v.GetString("RENDER_CONVENTION")),
			OverlayColor:    v.GetString("OVERLAY_COLOR"),
			TileURL:         v.GetString("TILE_URL"),
			TileAttribution: v.GetString("TILE_ATTRIBUTION"),
			DefaultZoom:     v.GetInt("MAP_DEFAULT_ZOOM"),
		},
		Session: SessionConfig{
			IdleTTL:       time.Duration(v.GetInt("SESSION_IDLE_TTL")) * time.Second,
			SweepInterval: time.Duration(v.GetInt("SESSION_SWEEP_INTERVAL")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			PoolSize: v.GetInt("REDIS_POOL_SIZE"),
		},
		Cache: CacheConfig{
			OverlayCacheTTL: time.Duration(v.GetInt("OVERLAY_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:         v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:   v.GetString("WORKER_CONSUMER_GROUP"),
			MaxBatch:        v.GetInt("WORKER_MAX_BATCH"),
			ShutdownTimeout: time.Duration(v.GetInt("WORKER_SHUTDOWN_TIMEOUT")) * time.Second,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DATASET_SOURCE", DatasetSourceFile)
	v.SetDefault("DATASET_PATH", "data/canchas.json")

	v.SetDefault("RENDER_CONVENTION", "latlng")
	v.SetDefault("OVERLAY_COLOR", "green")
	v.SetDefault("TILE_URL", "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png")
	v.SetDefault("TILE_ATTRIBUTION", `&copy; <a href="http://osm.org/copyright">OpenStreetMap</a> contributors`)
	v.SetDefault("MAP_DEFAULT_ZOOM", 17)

	v.SetDefault("SESSION_IDLE_TTL", 1800)
	v.SetDefault("SESSION_SWEEP_INTERVAL", 60)

	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_POOL_SIZE", 10)

	v.SetDefault("OVERLAY_CACHE_TTL", 3600)

	v.SetDefault("WORKER_CONSUMER_GROUP", "field-interaction-stats")
	v.SetDefault("WORKER_MAX_BATCH", 50)
	v.SetDefault("WORKER_SHUTDOWN_TIMEOUT", 30)
}

// Validate проверяет взаимосвязанные параметры
func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case DatasetSourceFile:
		if c.Dataset.Path == "" {
			return fmt.Errorf("DATASET_PATH is required for file dataset source")
		}
	case DatasetSourcePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for postgres dataset source")
		}
	default:
		return fmt.Errorf("unknown DATASET_SOURCE %q", c.Dataset.Source)
	}

	if c.Map.Convention != "latlng" && c.Map.Convention != "lnglat" {
		return fmt.Errorf("unknown RENDER_CONVENTION %q", c.Map.Convention)
	}
	if c.Session.IdleTTL <= 0 {
		return fmt.Errorf("SESSION_IDLE_TTL must be positive")
	}
	if c.Worker.Enabled && !c.Redis.Enabled {
		return fmt.Errorf("WORKER_ENABLED requires REDIS_ENABLED")
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}

// DSN собирает строку подключения в формате key=value (понимают pgx и lib/pq)
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return c.Redis.Addr()
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
