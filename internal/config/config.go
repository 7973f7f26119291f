package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/street-orientation/internal/pkg/validator"
)

type Config struct {
	Log         LogConfig
	Orientation OrientationConfig
	Nominatim   NominatimConfig
	Network     NetworkConfig
	OSMDB       DatabaseConfig
	PBF         PBFConfig
	Cache       CacheConfig
	Redis       RedisConfig
	SQLite      SQLiteConfig
	Render      RenderConfig
	Output      OutputConfig
	Composite   CompositeConfig
}

type LogConfig struct {
	Level  string
	Format string `validate:"oneof=json console"`
}

type OrientationConfig struct {
	Slices      int `validate:"min=1"`
	Weighted    bool
	ExcludeZero bool
}

type NominatimConfig struct {
	BaseURL        string `validate:"required,url"`
	UserAgent      string `validate:"required"`
	Email          string
	RequestTimeout int `validate:"min=1"` // seconds
}

type NetworkConfig struct {
	Provider string `validate:"oneof=postgis pbf"`
	Clip     bool
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

type PBFConfig struct {
	File string
}

type CacheConfig struct {
	Driver string `validate:"oneof=none redis sqlite"`
	TTL    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type SQLiteConfig struct {
	Path string
}

type RenderConfig struct {
	FontPath  string
	DPI       float64 `validate:"gt=0"`
	PanelSize float64 `validate:"gt=0"` // inches
	MapSize   float64 `validate:"gt=0"` // inches
	BarColor  string  `validate:"hexcolor"`
	BarAlpha  float64 `validate:"gte=0,lte=1"`
	Suptitle  string
	ShowStats bool
}

type OutputConfig struct {
	ImagesDir string `validate:"required"`
}

type CompositeConfig struct {
	Enabled bool
	Binary  string
}

// Флаги командной строки и соответствующие им ключи конфигурации
var flagKeys = map[string]string{
	"slices":       "ORIENTATION_SLICES",
	"weighted":     "ORIENTATION_WEIGHTED",
	"exclude-zero": "ORIENTATION_EXCLUDE_ZERO",
	"provider":     "NETWORK_PROVIDER",
	"images-dir":   "OUTPUT_IMAGES_DIR",
	"log-level":    "LOG_LEVEL",
	"cache":        "CACHE_DRIVER",
}

// RegisterFlags объявляет флаги CLI, которые перекрывают переменные окружения
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("env-file", ".env", "path to an optional .env file")
	fs.Int("slices", 36, "number of histogram slices")
	fs.Bool("weighted", false, "weight bearings by street length in meters")
	fs.Bool("exclude-zero", true, "drop edges whose bearing is exactly 0.0 (unweighted mode)")
	fs.String("provider", "postgis", "street network provider: postgis or pbf")
	fs.String("images-dir", "images", "directory for rendered images")
	fs.String("log-level", "info", "log level")
	fs.String("cache", "none", "cache driver: none, redis or sqlite")
}

// Load читает конфигурацию: .env (если есть) -> окружение -> флаги
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	envFile := ".env"
	if fs != nil {
		if f := fs.Lookup("env-file"); f != nil {
			envFile = f.Value.String()
		}
	}
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}
	v.AutomaticEnv()

	if fs != nil {
		for flagName, key := range flagKeys {
			f := fs.Lookup(flagName)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", flagName, err)
			}
		}
	}

	cfg := &Config{
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Orientation: OrientationConfig{
			Slices:      v.GetInt("ORIENTATION_SLICES"),
			Weighted:    v.GetBool("ORIENTATION_WEIGHTED"),
			ExcludeZero: v.GetBool("ORIENTATION_EXCLUDE_ZERO"),
		},
		Nominatim: NominatimConfig{
			BaseURL:        v.GetString("NOMINATIM_BASE_URL"),
			UserAgent:      v.GetString("NOMINATIM_USER_AGENT"),
			Email:          v.GetString("NOMINATIM_EMAIL"),
			RequestTimeout: v.GetInt("NOMINATIM_TIMEOUT"),
		},
		Network: NetworkConfig{
			Provider: v.GetString("NETWORK_PROVIDER"),
			Clip:     v.GetBool("NETWORK_CLIP"),
		},
		OSMDB: DatabaseConfig{
			Host:            v.GetString("OSM_DB_HOST"),
			Port:            v.GetInt("OSM_DB_PORT"),
			User:            v.GetString("OSM_DB_USER"),
			Password:        v.GetString("OSM_DB_PASSWORD"),
			DBName:          v.GetString("OSM_DB_NAME"),
			SSLMode:         v.GetString("OSM_DB_SSLMODE"),
			MaxConns:        v.GetInt("OSM_DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("OSM_DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("OSM_DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("OSM_DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		PBF: PBFConfig{
			File: v.GetString("PBF_FILE"),
		},
		Cache: CacheConfig{
			Driver: v.GetString("CACHE_DRIVER"),
			TTL:    time.Duration(v.GetInt("CACHE_TTL")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		SQLite: SQLiteConfig{
			Path: v.GetString("SQLITE_PATH"),
		},
		Render: RenderConfig{
			FontPath:  v.GetString("RENDER_FONT_PATH"),
			DPI:       v.GetFloat64("RENDER_DPI"),
			PanelSize: v.GetFloat64("RENDER_PANEL_SIZE"),
			MapSize:   v.GetFloat64("RENDER_MAP_SIZE"),
			BarColor:  v.GetString("RENDER_BAR_COLOR"),
			BarAlpha:  v.GetFloat64("RENDER_BAR_ALPHA"),
			Suptitle:  v.GetString("RENDER_SUPTITLE"),
			ShowStats: v.GetBool("RENDER_SHOW_STATS"),
		},
		Output: OutputConfig{
			ImagesDir: v.GetString("OUTPUT_IMAGES_DIR"),
		},
		Composite: CompositeConfig{
			Enabled: v.GetBool("COMPOSITE_ENABLED"),
			Binary:  v.GetString("COMPOSITE_BINARY"),
		},
	}

	// Set default values if not provided
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.OSMDB.Port == 0 {
		cfg.OSMDB.Port = 5432
	}
	if cfg.OSMDB.SSLMode == "" {
		cfg.OSMDB.SSLMode = "disable"
	}
	if cfg.OSMDB.MaxConns == 0 {
		cfg.OSMDB.MaxConns = 5
	}
	if cfg.OSMDB.MaxIdleConns == 0 {
		cfg.OSMDB.MaxIdleConns = 2
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 24 * time.Hour
	}

	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ORIENTATION_SLICES", 36)
	v.SetDefault("ORIENTATION_WEIGHTED", false)
	v.SetDefault("ORIENTATION_EXCLUDE_ZERO", true)
	v.SetDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("NOMINATIM_USER_AGENT", "street-orientation/1.0")
	v.SetDefault("NOMINATIM_TIMEOUT", 30)
	v.SetDefault("NETWORK_PROVIDER", "postgis")
	v.SetDefault("NETWORK_CLIP", true)
	v.SetDefault("OSM_DB_HOST", "localhost")
	v.SetDefault("OSM_DB_USER", "osmuser")
	v.SetDefault("OSM_DB_NAME", "osm")
	v.SetDefault("OSM_DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("OSM_DB_CONN_MAX_IDLE_TIME", 60)
	v.SetDefault("CACHE_DRIVER", "none")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("SQLITE_PATH", "cache/street-orientation.db")
	v.SetDefault("RENDER_DPI", 120)
	v.SetDefault("RENDER_PANEL_SIZE", 5)
	v.SetDefault("RENDER_MAP_SIZE", 12)
	v.SetDefault("RENDER_BAR_COLOR", "#003366")
	v.SetDefault("RENDER_BAR_ALPHA", 0.7)
	v.SetDefault("RENDER_SUPTITLE", "City Street Network Orientation")
	v.SetDefault("OUTPUT_IMAGES_DIR", "images")
	v.SetDefault("COMPOSITE_ENABLED", true)
	v.SetDefault("COMPOSITE_BINARY", "composite")
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.OSMDB.Host,
		c.OSMDB.Port,
		c.OSMDB.User,
		c.OSMDB.Password,
		c.OSMDB.DBName,
		c.OSMDB.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Nominatim.RequestTimeout) * time.Second
}
