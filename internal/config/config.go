package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Поддерживаемые хранилища истории.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Файлы истории по умолчанию для каждого хранилища.
const (
	DefaultCSVFile    = "calc_history.csv"
	DefaultSQLiteFile = "calc_history.db"
)

// DotEnvFile читается из рабочего каталога перед разбором окружения.
const DotEnvFile = ".env"

// Config описывает параметры калькулятора. Собирается один раз при старте
// и дальше передается по значению.
type Config struct {
	App struct {
		Environment string `yaml:"environment" env:"ENVIRONMENT"`
		Prompt      string `yaml:"prompt" env:"CALC_PROMPT"`
	} `yaml:"app"`
	History struct {
		File      string `yaml:"file" env:"CALC_HISTORY_FILE"`
		Backend   string `yaml:"backend" env:"CALC_HISTORY_BACKEND"`
		ShowLimit int    `yaml:"show_limit" env:"CALC_HISTORY_SHOW_LIMIT"`
	} `yaml:"history"`
	Plugins struct {
		Disabled []string `yaml:"disabled" env:"CALC_PLUGINS_DISABLED" envSeparator:","`
	} `yaml:"plugins"`
	Log struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
		File   string `yaml:"file" env:"LOG_FILE"`
	} `yaml:"log"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() Config {
	var cfg Config
	cfg.App.Environment = "DEVELOPMENT"
	cfg.App.Prompt = ">>> "
	cfg.History.File = DefaultCSVFile
	cfg.History.Backend = BackendCSV
	cfg.History.ShowLimit = 5
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	return cfg
}

// Load читает YAML из path (если задан) поверх значений по умолчанию,
// затем применяет переменные окружения. Переменные из .env дополняют
// окружение процесса, но не перекрывают уже заданные.
// Если history.file не задан явно, он выбирается по history.backend.
func Load(path string) (Config, error) {
	cfg := Default()
	cfg.History.File = ""
	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- путь к конфигу задается доверенным оператором.
		if err != nil {
			return cfg, err
		}
		if len(data) == 0 {
			return cfg, errors.New("config file is empty")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.History.File == "" {
		cfg.History.File = defaultHistoryFile(cfg.History.Backend)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func defaultHistoryFile(backend string) string {
	if backend == BackendSQLite {
		return DefaultSQLiteFile
	}
	return DefaultCSVFile
}

// Validate проверяет согласованность значений.
func (c Config) Validate() error {
	switch c.History.Backend {
	case BackendCSV, BackendSQLite:
	default:
		return fmt.Errorf("history.backend %q is not supported", c.History.Backend)
	}
	if c.History.File == "" {
		return errors.New("history.file is empty")
	}
	if c.History.ShowLimit <= 0 {
		return fmt.Errorf("history.show_limit must be positive, got %d", c.History.ShowLimit)
	}
	return nil
}

// Environment возвращает тег окружения развертывания.
func (c Config) Environment() string { return c.App.Environment }

// PluginDisabled сообщает, отключен ли плагин конфигурацией.
func (c Config) PluginDisabled(name string) bool {
	for _, d := range c.Plugins.Disabled {
		if d == name {
			return true
		}
	}
	return false
}
