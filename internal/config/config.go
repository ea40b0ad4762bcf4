package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env        string `mapstructure:"env"`         // current application environment (local, dev, production)
	ServerPort string `mapstructure:"server_port"` // HTTP listen port
	DB         DB     `mapstructure:"database"`    // database configuration section
	SMTP       SMTP   `mapstructure:"smtp"`        // outgoing mail configuration section
	Auth       Auth   `mapstructure:"auth"`        // token and session policy section
	Quiz       Quiz   `mapstructure:"quiz"`        // quiz defaults section
}

// DB contains database-related configuration parameters.
type DB struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"-"` // loaded from environment
	Name     string `mapstructure:"name"`
}

// DSN returns the postgres connection string.
func (db DB) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		db.Host, db.Port, db.User, db.Password, db.Name,
	)
}

// SMTP contains the credentials used to send login-token emails.
type SMTP struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	From     string `mapstructure:"-"` // loaded from environment
	Password string `mapstructure:"-"` // loaded from environment
}

// Auth contains token lifetimes and the session security policy.
type Auth struct {
	LoginTokenTTL           time.Duration `mapstructure:"login_token_ttl"`
	AccessTokenTTL          time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL         time.Duration `mapstructure:"refresh_token_ttl"`
	MaxDevicesPerUser       int           `mapstructure:"max_devices_per_user"`
	DeviceBlocklist         []string      `mapstructure:"device_blocklist"`
	IPBlocklist             []string      `mapstructure:"ip_blocklist"`
	MaxDeviceSessionsPerDay int           `mapstructure:"max_device_sessions_per_day"`
	MaxIPRequestsPerHour    int           `mapstructure:"max_ip_requests_per_hour"`
}

// Quiz contains quiz creation defaults.
type Quiz struct {
	DefaultQuestionCount int `mapstructure:"default_question_count"`
}

// Development reports whether the app runs with relaxed security heuristics.
func (c *Config) Development() bool {
	return c.Env != "production"
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("server_port", "8080")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "arabiclearner")
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 465)
	v.SetDefault("auth.login_token_ttl", "15m")
	v.SetDefault("auth.access_token_ttl", "30m")
	v.SetDefault("auth.refresh_token_ttl", "720h")
	v.SetDefault("auth.max_devices_per_user", 5)
	v.SetDefault("auth.max_device_sessions_per_day", 20)
	v.SetDefault("auth.max_ip_requests_per_hour", 120)
	v.SetDefault("quiz.default_question_count", 10)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("server_port", "SERVER_PORT")
	_ = v.BindEnv("db_password", "DB_PASSWORD")
	_ = v.BindEnv("email", "EMAIL")
	_ = v.BindEnv("email_password", "EMAIL_PASSWORD")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.DB.Password = v.GetString("db_password")
	if cfg.DB.Password == "" {
		cfg.DB.Password = "postgres"
	}

	cfg.SMTP.From = v.GetString("email")
	cfg.SMTP.Password = v.GetString("email_password")
	if !cfg.Development() && (cfg.SMTP.From == "" || cfg.SMTP.Password == "") {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}
