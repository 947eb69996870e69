package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Database   DatabaseConfig   `mapstructure:"database"`
	SQL        SQLConfig        `mapstructure:"sql"`
	S3         S3Config         `mapstructure:"s3"`
	Session    SessionConfig    `mapstructure:"session"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Address     string   `mapstructure:"address"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// StorageConfig selects where the library, plan and resource slots live.
type StorageConfig struct {
	Backend      string `mapstructure:"backend"` // memory, mongo, sqlite, postgres, s3
	LibraryKey   string `mapstructure:"library_key"`
	PlansKey     string `mapstructure:"plans_key"`
	ResourcesKey string `mapstructure:"resources_key"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type SQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	Prefix          string `mapstructure:"prefix"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// SessionConfig controls where per-tab anonymous identities are kept.
type SessionConfig struct {
	Backend string        `mapstructure:"backend"` // memory or redis
	TTL     time.Duration `mapstructure:"ttl"`
	Key     string        `mapstructure:"key"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig defines JWT specific configuration.
// An empty secret disables authenticated sessions; every caller is anonymous.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

type EnrichmentConfig struct {
	OEmbedEndpoint string        `mapstructure:"oembed_endpoint"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RatePerSecond  float64       `mapstructure:"rate_per_second"`
	Burst          int           `mapstructure:"burst"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// LoadConfig reads configuration from file or environment variables.
// A .env file next to the config file is loaded first when present.
func LoadConfig(path string) (config Config, err error) {
	if err = godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})

	v.SetDefault("storage.backend", "memory")
	v.SetDefault("storage.library_key", "ht_library_v1")
	v.SetDefault("storage.plans_key", "ht_plans_v1")
	v.SetDefault("storage.resources_key", "hoops-trainer-resources")

	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "hoops_trainer")
	v.SetDefault("sql.dsn", "hoops.db")

	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.prefix", "")
	v.SetDefault("s3.use_ssl", true)
	// Bind so S3_* env vars are seen even without a config file
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")

	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.ttl", "12h")
	v.SetDefault("session.key", "ht_user_id")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", "")

	v.SetDefault("enrichment.oembed_endpoint", "https://www.youtube.com/oembed")
	v.SetDefault("enrichment.timeout", "10s")
	v.SetDefault("enrichment.rate_per_second", 2.0)
	v.SetDefault("enrichment.burst", 1)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
