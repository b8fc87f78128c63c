package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/piwi3910/chipcut/internal/model"
)

// EnvPrefix is prepended to every environment override, e.g. CHIPCUT_ENGINE_KERF.
const EnvPrefix = "CHIPCUT"

// Config is the full application configuration.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Engine EngineConfig `mapstructure:"engine" yaml:"engine"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format      string `mapstructure:"format" yaml:"format" validate:"oneof=json console"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size" validate:"gte=0"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups" validate:"gte=0"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age" validate:"gte=0"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// EngineConfig holds the defaults a placement run starts from. A job file
// or command flag may override kerf, margin and strategy.
type EngineConfig struct {
	Strategy              string  `mapstructure:"strategy" yaml:"strategy" validate:"oneof=aligned-guillotine best-area-fit"`
	Kerf                  float64 `mapstructure:"kerf" yaml:"kerf" validate:"gte=0"`
	Margin                float64 `mapstructure:"margin" yaml:"margin" validate:"gte=0"`
	MaxSheets             int     `mapstructure:"max_sheets" yaml:"max_sheets" validate:"gte=1"`
	ParallelDerive        bool    `mapstructure:"parallel_derive" yaml:"parallel_derive"`
	RemainderMinDimension float64 `mapstructure:"remainder_min_dimension" yaml:"remainder_min_dimension" validate:"gte=0"`
	RemainderMinArea      float64 `mapstructure:"remainder_min_area" yaml:"remainder_min_area" validate:"gte=0"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	defaults := model.DefaultSettings()

	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "chipcut")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", true)

	// -- Engine --
	v.SetDefault("engine.strategy", string(defaults.Strategy))
	v.SetDefault("engine.kerf", defaults.KerfWidth)
	v.SetDefault("engine.margin", 10.0)
	v.SetDefault("engine.max_sheets", defaults.MaxSheets)
	v.SetDefault("engine.parallel_derive", defaults.ParallelDerive)
	v.SetDefault("engine.remainder_min_dimension", model.MinRemainderDimension)
	v.SetDefault("engine.remainder_min_area", model.MinRemainderArea)
}

// Load reads configuration into v from path, or from ./chipcut.yaml when path
// is empty, then applies CHIPCUT_* environment overrides. A missing default
// config file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("error resolving config path: %w", err)
		}
		v.SetConfigFile(expanded)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("chipcut")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return NewConfigFromViper(v)
}

// NewConfigFromViper unmarshals and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s must satisfy %s=%s, got %v", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
		}
		return err
	}
	return nil
}

// ApplyToSettings copies the engine defaults into a CutSettings struct.
func (e EngineConfig) ApplyToSettings(s *model.CutSettings) {
	s.Strategy = model.Strategy(e.Strategy)
	s.KerfWidth = e.Kerf
	s.MaxSheets = e.MaxSheets
	s.ParallelDerive = e.ParallelDerive
}

// Settings returns CutSettings built from the engine defaults.
func (e EngineConfig) Settings() model.CutSettings {
	s := model.DefaultSettings()
	e.ApplyToSettings(&s)
	return s
}
