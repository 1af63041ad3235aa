package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. EXAMTRIAGE_SERVER_PORT
const EnvPrefix = "EXAMTRIAGE"

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	ML        MLConfig        `mapstructure:"ml"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Balance   BalanceConfig   `mapstructure:"balance"`
	Messaging MessagingConfig `mapstructure:"messaging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxUploadMB  int64         `mapstructure:"max_upload_mb"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	Debug        bool   `mapstructure:"debug"`
}

// RedisConfig holds label cache configuration
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Addr returns the redis address
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MLConfig holds model service configuration
type MLConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	Tokenizer       string        `mapstructure:"tokenizer"`
	BinaryModel     string        `mapstructure:"binary_model"`
	MulticlassModel string        `mapstructure:"multiclass_model"`
	MaxLength       int           `mapstructure:"max_length"`
	BatchSize       int           `mapstructure:"batch_size"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKey       string `mapstructure:"access_key"`
	SecretKey       string `mapstructure:"secret_key"`
	Bucket          string `mapstructure:"bucket"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	RawPrefix       string `mapstructure:"raw_prefix"`
	ProcessedObject string `mapstructure:"processed_object"`
}

// BalanceConfig holds dataset preparation parameters
type BalanceConfig struct {
	Seed               uint64  `mapstructure:"seed"`
	MinSamples         int     `mapstructure:"min_samples"`
	AugmentProbability float64 `mapstructure:"augment_probability"`
}

// MessagingConfig holds outbound notification limits
type MessagingConfig struct {
	MaxMessages int `mapstructure:"max_messages"`
}

// Load reads configuration from defaults, an optional config.yaml and the environment
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.max_upload_mb", 32)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "examtriage")
	v.SetDefault("database.password", "examtriage")
	v.SetDefault("database.dbname", "examtriage")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.debug", false)

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("ml.base_url", "http://localhost:8000")
	v.SetDefault("ml.tokenizer", "config")
	v.SetDefault("ml.binary_model", "modelo_binario")
	v.SetDefault("ml.multiclass_model", "modelo_multiclasse")
	v.SetDefault("ml.max_length", 128)
	v.SetDefault("ml.batch_size", 32)
	v.SetDefault("ml.timeout", 30*time.Second)

	v.SetDefault("storage.endpoint", "localhost:9000")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.bucket", "exames")
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("storage.raw_prefix", "raw/")
	v.SetDefault("storage.processed_object", "processed/resultado_processado.csv")

	v.SetDefault("balance.seed", 42)
	v.SetDefault("balance.min_samples", 75)
	v.SetDefault("balance.augment_probability", 0.3)

	v.SetDefault("messaging.max_messages", 100)
}
