package config

import (
	"os"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseDriver            string        `koanf:"database_driver"`
	DatabaseFilePath          string        `koanf:"database_file_path"`
	DatabaseURL               string        `koanf:"database_url"`
	ServerHost                string        `koanf:"server_host"`
	ServerPort                int           `koanf:"server_port"`
}

const (
	configFileENV     = "CONFIG_FILE"
	defaultConfigFile = "./config.yaml"
	envFileENV        = "ENV_FILE"
	defaultEnvFile    = ".env"
)

func defaultConfig() *Config {
	return &Config{
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseDriver:            DriverSQLite,
		ServerHost:                "0.0.0.0",
		ServerPort:                3689,
	}
}

// New loads the config from, in increasing order of precedence, the built-in
// defaults, the YAML file at $CONFIG_FILE, and the environment (including
// anything declared in a .env file).
func New() (*Config, error) {
	k := koanf.New(".")

	configFile := os.Getenv(configFileENV)
	if configFile == "" {
		configFile = defaultConfigFile
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", configFile)
		}
	}

	envFile := os.Getenv(envFileENV)
	if envFile == "" {
		envFile = defaultEnvFile
	}
	if _, err := os.Stat(envFile); err == nil {
		// godotenv.Load never overrides variables that are already set.
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.Wrapf(err, "failed to load env file %s", envFile)
		}
	}

	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := defaultConfig()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewForTest returns a config pointing at an in-memory SQLite database.
func NewForTest() *Config {
	cfg := defaultConfig()
	cfg.DatabaseFilePath = ":memory:"
	cfg.ServerHost = "127.0.0.1"
	cfg.DatabaseConnectRetryCount = 1
	cfg.DatabaseConnectRetryDelay = 0
	return cfg
}

func (cfg *Config) validate() error {
	switch cfg.DatabaseDriver {
	case DriverSQLite:
		if cfg.DatabaseFilePath == "" {
			return missingRequired("DatabaseFilePath")
		}
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return missingRequired("DatabaseURL")
		}
	default:
		return errors.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
	return nil
}

func missingRequired(field string) error {
	key := strcase.ToSnake(field)
	return errors.Errorf("missing required config: %s (%s)", strings.ToUpper(key), key)
}
