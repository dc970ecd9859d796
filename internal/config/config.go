package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Review       ReviewConfig       `mapstructure:"review"`
	Dictionaries DictionariesConfig `mapstructure:"dictionaries"`
	Translate    TranslateConfig    `mapstructure:"translate"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Log          LogConfig          `mapstructure:"log"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,origin"`
}

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=mysql postgres sqlite"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite"`
	MaxOpenConns    int               `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds" validate:"min=0"`
}

type ReviewConfig struct {
	DefaultLimit            int    `mapstructure:"default_limit" validate:"min=1,ltefield=MaxLimit"`
	DefaultMaxNewWords      int    `mapstructure:"default_max_new_words" validate:"min=0"`
	MaxLimit                int    `mapstructure:"max_limit" validate:"min=1"`
	MasteredReviewAfterDays int    `mapstructure:"mastered_review_after_days" validate:"min=0"`
	HistorySource           string `mapstructure:"history_source" validate:"oneof=events snapshot"`
	ConflictRetryAttempts   uint   `mapstructure:"conflict_retry_attempts" validate:"min=1"`
}

type DictionariesConfig struct {
	RapidAPI RapidAPIConfig `mapstructure:"rapidapi"`
}

type RapidAPIConfig struct {
	CacheDirectory    string  `mapstructure:"cache_directory" validate:"omitempty,dir"`
	Host              string  `mapstructure:"host"`
	Key               string  `mapstructure:"key"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`
}

type TranslateConfig struct {
	BaseURL          string `mapstructure:"base_url" validate:"omitempty,url"`
	SourceLanguage   string `mapstructure:"source_language"`
	TargetLanguage   string `mapstructure:"target_language"`
	MaxRetryAttempts uint   `mapstructure:"max_retry_attempts"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lexis")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	// A missing .env is normal outside local development
	_ = godotenv.Load()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "lexis")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.path", filepath.Join("data", "lexis.db"))
	v.SetDefault("review.default_limit", 20)
	v.SetDefault("review.default_max_new_words", 10)
	v.SetDefault("review.max_limit", 100)
	v.SetDefault("review.mastered_review_after_days", 0)
	v.SetDefault("review.history_source", "events")
	v.SetDefault("review.conflict_retry_attempts", 3)
	v.SetDefault("dictionaries.rapidapi.cache_directory", "")
	v.SetDefault("dictionaries.rapidapi.host", "wordsapiv1.p.rapidapi.com")
	v.SetDefault("dictionaries.rapidapi.requests_per_second", 2)
	v.SetDefault("translate.base_url", "https://translate.googleapis.com")
	v.SetDefault("translate.source_language", "en")
	v.SetDefault("translate.target_language", "vi")
	v.SetDefault("translate.max_retry_attempts", 2)
	v.SetDefault("auth.issuer", "lexis")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Secrets are bound to environment variables only (not from config file)
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("dictionaries.rapidapi.host", "RAPID_API_HOST"); err != nil {
		return nil, fmt.Errorf("failed to bind RAPID_API_HOST environment variable: %w", err)
	}
	if err := v.BindEnv("dictionaries.rapidapi.key", "RAPID_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind RAPID_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("auth.jwt_secret", "LEXIS_JWT_SECRET"); err != nil {
		return nil, fmt.Errorf("failed to bind LEXIS_JWT_SECRET environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
