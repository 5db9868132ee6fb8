// Package config provides configuration structures for the survey service.
// It defines server, survey, storage and logging settings and loads them
// from a YAML file, a .env file and SURVEY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is prepended to every environment override, e.g. SURVEY_SERVER_PORT.
	EnvPrefix = "SURVEY"

	DriverJSON     = "json"
	DriverPostgres = "postgres"

	defaultConfigName = "survey"
)

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	Port         string `mapstructure:"port" json:"port"`
	Mode         string `mapstructure:"mode" json:"mode"`                   // gin mode: debug, release or test
	MaxBodyBytes int64  `mapstructure:"max_body_bytes" json:"max_body_bytes"` // request body limit
}

// SurveySettings configures the similarity views.
type SurveySettings struct {
	PageSize    int `mapstructure:"page_size" json:"page_size"`         // anchor candidates per /similarity page
	MaxPageSize int `mapstructure:"max_page_size" json:"max_page_size"` // upper bound for a page_size override
}

// StorageSettings selects where submissions are persisted.
type StorageSettings struct {
	Driver   string `mapstructure:"driver" json:"driver"`       // "json" or "postgres"
	DataFile string `mapstructure:"data_file" json:"data_file"` // used by the json driver
	DSN      string `mapstructure:"dsn" json:"-"`               // used by the postgres driver
}

// LogSettings configures the zap logger.
type LogSettings struct {
	JSON  bool `mapstructure:"json" json:"json"`
	Debug bool `mapstructure:"debug" json:"debug"`
}

// Settings is the complete service configuration.
type Settings struct {
	Server  ServerSettings  `mapstructure:"server" json:"server"`
	Survey  SurveySettings  `mapstructure:"survey" json:"survey"`
	Storage StorageSettings `mapstructure:"storage" json:"storage"`
	Log     LogSettings     `mapstructure:"log" json:"log"`
}

// SetDefaults registers default values on v. Every key must have a default
// for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.max_body_bytes", int64(1<<20))
	v.SetDefault("survey.page_size", 5)
	v.SetDefault("survey.max_page_size", 100)
	v.SetDefault("storage.driver", DriverJSON)
	v.SetDefault("storage.data_file", "survey_responses.json")
	v.SetDefault("storage.dsn", "")
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
}

// Load reads settings into v from (in increasing priority) defaults, the
// config file, a .env file in the working directory, and SURVEY_* variables.
// When cfgFile is empty, survey.yaml in the working directory is used if present.
func Load(v *viper.Viper, cfgFile string) (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid settings: %s", strings.Join(problems, "; "))
	}
	return &settings, nil
}

// Validate returns one message per invalid setting.
func (s *Settings) Validate() []string {
	var problems []string

	if strings.TrimSpace(s.Server.Port) == "" {
		problems = append(problems, "server.port cannot be empty")
	}
	switch s.Server.Mode {
	case "debug", "release", "test":
	default:
		problems = append(problems, "Invalid server.mode '"+s.Server.Mode+"' (must be 'debug', 'release' or 'test')")
	}
	if s.Server.MaxBodyBytes <= 0 {
		problems = append(problems, "server.max_body_bytes must be greater than 0")
	}

	if s.Survey.PageSize < 1 {
		problems = append(problems, "survey.page_size must be greater than 0")
	}
	if s.Survey.MaxPageSize < s.Survey.PageSize {
		problems = append(problems, "survey.max_page_size cannot be smaller than survey.page_size")
	}

	switch s.Storage.Driver {
	case DriverJSON:
		if strings.TrimSpace(s.Storage.DataFile) == "" {
			problems = append(problems, "storage.data_file is required for the json driver")
		}
	case DriverPostgres:
		if strings.TrimSpace(s.Storage.DSN) == "" {
			problems = append(problems, "storage.dsn is required for the postgres driver")
		}
	default:
		problems = append(problems, "Invalid storage.driver '"+s.Storage.Driver+"' (must be 'json' or 'postgres')")
	}

	return problems
}

// ApplyDefaults fills zero values left by a partial config file.
func (s *Settings) ApplyDefaults() {
	if s.Server.Port == "" {
		s.Server.Port = "5000"
	}
	if s.Server.Mode == "" {
		s.Server.Mode = "release"
	}
	if s.Server.MaxBodyBytes == 0 {
		s.Server.MaxBodyBytes = 1 << 20
	}
	if s.Survey.PageSize == 0 {
		s.Survey.PageSize = 5
	}
	if s.Survey.MaxPageSize == 0 {
		s.Survey.MaxPageSize = 100
	}
	if s.Storage.Driver == "" {
		s.Storage.Driver = DriverJSON
	}
	s.Storage.Driver = strings.ToLower(s.Storage.Driver)
	if s.Storage.Driver == DriverJSON && s.Storage.DataFile == "" {
		s.Storage.DataFile = "survey_responses.json"
	}
}
