package config

import (
	"fmt"
	"os"
	"strings"

	httpapi "github.com/jekabolt/shopdesk-reports/internal/api/http"
	"github.com/jekabolt/shopdesk-reports/internal/auth/jwt"
	gerr "github.com/jekabolt/shopdesk-reports/internal/errors"
	"github.com/jekabolt/shopdesk-reports/internal/metrics"
	"github.com/jekabolt/shopdesk-reports/internal/store"
	"github.com/jekabolt/shopdesk-reports/log"
	"github.com/spf13/viper"
)

// Source kinds a snapshot can be read from.
const (
	SourceMySQL = "mysql"
	SourceFile  = "file"
)

// SourceConfig selects where report documents are read from.
type SourceConfig struct {
	Kind string `mapstructure:"kind"`
	Path string `mapstructure:"path"`
}

// Config represents the global configuration for the service.
type Config struct {
	DB      store.Config        `mapstructure:"mysql"`
	Logger  log.Config          `mapstructure:"logger"`
	HTTP    httpapi.Config      `mapstructure:"http"`
	Auth    jwt.Config          `mapstructure:"auth"`
	Source  SourceConfig        `mapstructure:"source"`
	Reports metrics.Config      `mapstructure:"reports"`
	Chart   httpapi.ChartConfig `mapstructure:"chart"`
	Locale  string              `mapstructure:"locale"`
}

func setDefaults(v *viper.Viper) {
	def := metrics.DefaultConfig()
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.request_timeout", "30s")
	v.SetDefault("auth.jwt_ttl", "12h")
	v.SetDefault("source.kind", SourceMySQL)
	v.SetDefault("reports.timezone", def.Timezone)
	v.SetDefault("reports.vip_min_value", def.VIPMinValue)
	v.SetDefault("reports.vip_min_orders", def.VIPMinOrders)
	v.SetDefault("reports.trend_tolerance", def.TrendTolerance)
	v.SetDefault("reports.completed_statuses", def.CompletedStatuses)
	v.SetDefault("chart.label_budget", 20)
	v.SetDefault("locale", "pt-BR")
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
// Env vars use underscores and uppercase, e.g., MYSQL_DSN, AUTH_JWT_SECRET
// Nested config keys use double underscore, e.g., MYSQL__DSN for mysql.dsn
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))
	bindEnvVars(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/config/shopdesk-reports")
		v.AddConfigPath("/etc/shopdesk-reports")
		_ = v.ReadInConfig()
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	if config.DB.DSN == "" {
		config.DB.DSN = dsnFromEnv()
	}

	switch config.Source.Kind {
	case SourceMySQL:
	case SourceFile:
		if config.Source.Path == "" {
			return nil, fmt.Errorf("source.path is required for a %s source", SourceFile)
		}
	default:
		return nil, fmt.Errorf("%w: %q", gerr.ErrUnknownSource, config.Source.Kind)
	}

	return &config, nil
}

// dsnFromEnv builds a DSN from MYSQL_HOST and friends. It returns "" unless
// host, user, password and database are all set.
func dsnFromEnv() string {
	host := os.Getenv("MYSQL_HOST")
	port := os.Getenv("MYSQL_PORT")
	user := os.Getenv("MYSQL_USER")
	password := os.Getenv("MYSQL_PASSWORD")
	database := os.Getenv("MYSQL_DATABASE")
	if host == "" || user == "" || password == "" || database == "" {
		return ""
	}
	if port == "" {
		port = "3306"
	}
	params := "charset=utf8mb4&parseTime=true"
	if os.Getenv("MYSQL_TLS_CA_PATH") != "" {
		params += "&tls=custom"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, password, host, port, database, params)
}

// bindEnvVars binds environment variables to config keys
// This allows using both nested keys (MYSQL__DSN) and flat keys (MYSQL_DSN)
func bindEnvVars(v *viper.Viper) {
	// MySQL
	v.BindEnv("mysql.dsn", "MYSQL_DSN")
	v.BindEnv("mysql.automigrate", "MYSQL_AUTOMIGRATE")
	v.BindEnv("mysql.max_open_connections", "MYSQL_MAX_OPEN_CONNECTIONS")
	v.BindEnv("mysql.max_idle_connections", "MYSQL_MAX_IDLE_CONNECTIONS")
	v.BindEnv("mysql.tls_ca_path", "MYSQL_TLS_CA_PATH")

	// Logger
	v.BindEnv("logger.level", "LOG_LEVEL")
	v.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	v.BindEnv("http.port", "HTTP_PORT")
	v.BindEnv("http.address", "HTTP_ADDRESS")
	v.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")
	v.BindEnv("http.rate_limit.window", "HTTP_RATE_LIMIT_WINDOW")
	v.BindEnv("http.rate_limit.max", "HTTP_RATE_LIMIT_MAX")

	// Auth
	v.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET")
	v.BindEnv("auth.jwt_ttl", "AUTH_JWT_TTL")

	// Source
	v.BindEnv("source.kind", "SOURCE_KIND")
	v.BindEnv("source.path", "SOURCE_PATH")

	// Reports
	v.BindEnv("reports.timezone", "REPORTS_TIMEZONE")
	v.BindEnv("reports.opening_balance", "REPORTS_OPENING_BALANCE")
	v.BindEnv("reports.include_closed_sessions", "REPORTS_INCLUDE_CLOSED_SESSIONS")
}
