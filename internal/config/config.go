// Package config loads and validates the learner's configuration.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/mfukuda/recall/internal/review"
	"github.com/mfukuda/recall/internal/scheduler"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
}

// SchedulerConfig holds the per-learner scheduling parameters. The engine
// never reads process-wide state; these values are passed explicitly into
// every queue build and review submission.
type SchedulerConfig struct {
	DailyReviewLimit  int     `mapstructure:"daily_review_limit" validate:"min=1"`
	NewItemsPerDay    int     `mapstructure:"new_items_per_day" validate:"min=0"`
	ReviewOrder       string  `mapstructure:"review_order" validate:"oneof=urgency random"`
	MinimumEaseFactor float64 `mapstructure:"minimum_ease_factor" validate:"gt=0"`
	InitialIntervals  []int   `mapstructure:"initial_intervals" validate:"len=2,dive,min=1"`
	RetentionDecay    float64 `mapstructure:"retention_decay" validate:"gt=0"`
}

// SchedulerParams converts the validated configuration into the parameter
// set the scheduling algorithm consumes.
func (c SchedulerConfig) SchedulerParams() scheduler.Params {
	params := scheduler.Params{
		MinimumEaseFactor: c.MinimumEaseFactor,
		RetentionDecay:    c.RetentionDecay,
	}
	if len(c.InitialIntervals) == 2 {
		params.InitialIntervals = [2]int{c.InitialIntervals[0], c.InitialIntervals[1]}
	}
	return params
}

func (c SchedulerConfig) SessionConfig() review.SessionConfig {
	return review.SessionConfig{
		DailyReviewLimit: c.DailyReviewLimit,
		NewItemsPerDay:   c.NewItemsPerDay,
		ReviewOrder:      review.Order(c.ReviewOrder),
	}
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend    string `mapstructure:"backend" validate:"oneof=yaml mysql"`
	ItemsFile  string `mapstructure:"items_file"`
	EventsFile string `mapstructure:"events_file"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/recall")
	}

	v.SetDefault("scheduler.daily_review_limit", 25)
	v.SetDefault("scheduler.new_items_per_day", 10)
	v.SetDefault("scheduler.review_order", "urgency")
	v.SetDefault("scheduler.minimum_ease_factor", 1.3)
	v.SetDefault("scheduler.initial_intervals", []int{1, 6})
	v.SetDefault("scheduler.retention_decay", 1.0)
	v.SetDefault("storage.backend", "yaml")
	v.SetDefault("storage.items_file", filepath.Join("data", "items.yml"))
	v.SetDefault("storage.events_file", filepath.Join("data", "review_events.yml"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "recall")
	v.SetDefault("database.username", "recall")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})

	// Bind the database password to an environment variable only (not from config file)
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
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

	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("newValidator() > %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, e.Translate(trans))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(msgs, ", "))
	}

	return &cfg, nil
}
