package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	GRPCPort        int           `mapstructure:"grpc_port"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	HealthInterval  time.Duration `mapstructure:"health_interval"`
}

type DatabaseConfig struct {
	Driver         string `mapstructure:"driver"`
	SQLitePath     string `mapstructure:"sqlite_path"`
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	Name           string `mapstructure:"name"`
	SSLMode        string `mapstructure:"sslmode"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

type RabbitMQConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Queue    string `mapstructure:"queue"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// старые имена переменных окружения из docker-compose
var legacyEnv = map[string]string{
	"database.host":     "DB_HOST",
	"database.port":     "DB_PORT",
	"database.user":     "DB_USER",
	"database.password": "DB_PASSWORD",
	"database.name":     "DB_NAME",
	"rabbitmq.host":     "RABBITMQ_HOST",
	"rabbitmq.port":     "RABBITMQ_PORT",
	"rabbitmq.user":     "RABBITMQ_USER",
	"rabbitmq.password": "RABBITMQ_PASSWORD",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.grpc_port", 9090)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:5174"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.health_interval", 15*time.Second)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.sqlite_path", "pomodoro.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "pomodoro")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.migrations_path", "file://migrations")

	v.SetDefault("rabbitmq.enabled", false)
	v.SetDefault("rabbitmq.host", "localhost")
	v.SetDefault("rabbitmq.port", "5672")
	v.SetDefault("rabbitmq.user", "guest")
	v.SetDefault("rabbitmq.password", "guest")
	v.SetDefault("rabbitmq.queue", "pomodoro_audit_logs")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load читает конфиг: значения по умолчанию, YAML-файл (если есть), переменные окружения.
// path == "" - ищем config.yaml в текущей директории, отсутствие файла не ошибка.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix("POMODORO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range legacyEnv {
		// POMODORO_* имеет приоритет: BindEnv проверяет имена по порядку
		prefixed := "POMODORO_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return errors.New("database.sqlite_path is required for sqlite driver")
		}
	case DriverPostgres:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	if err := validPort("server.port", c.Server.Port); err != nil {
		return err
	}
	if err := validPort("server.grpc_port", c.Server.GRPCPort); err != nil {
		return err
	}
	if c.Server.Port == c.Server.GRPCPort {
		return errors.New("server.port and server.grpc_port must differ")
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	if c.RabbitMQ.Enabled && c.RabbitMQ.Queue == "" {
		return errors.New("rabbitmq.queue is required when rabbitmq is enabled")
	}
	return nil
}

func validPort(name string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", name, port)
	}
	return nil
}

func (c DatabaseConfig) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

func (c RabbitMQConfig) URL() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + c.Port,
		Path:   "/",
	}
	return u.String()
}

func (c ServerConfig) HTTPAddr() string { return fmt.Sprintf(":%d", c.Port) }

func (c ServerConfig) GRPCAddr() string { return fmt.Sprintf("localhost:%d", c.GRPCPort) }
