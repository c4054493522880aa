package config

import (
	"errors"
	"fmt"
	"strings"

	validator "github.com/asaskevich/govalidator"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigType = "yaml"
	ConfigName = ".fastform"
	ConfigEnv  = "FASTFORM"
)

// Config holds the CLI settings. Values come from flags, FASTFORM_*
// environment variables and an optional .fastform.yaml, in that precedence.
type Config struct {
	Catalog string `mapstructure:"catalog"`
	Format  string `mapstructure:"format" valid:"in(json|yaml|php),required"`
	Class   string `mapstructure:"class" valid:"matches(^[A-Za-z_][A-Za-z0-9_]*$),required"`
	Parent  string `mapstructure:"parent" valid:"matches(^[A-Za-z_][A-Za-z0-9_]*$),required"`
	Prefix  string `mapstructure:"prefix"`
	Indent  string `mapstructure:"indent"`
	Output  string `mapstructure:"output"`
	Debug   bool   `mapstructure:"debug"`
}

func init() {
	validator.SetFieldsRequiredByDefault(false)
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Format: "php",
		Class:  "MyForms",
		Parent: "Forms",
		Prefix: "my_",
		Indent: "  ",
	}
}

// Load resolves the configuration. configFile may be empty, in which case
// .fastform.yaml is looked up in the working directory and silently skipped
// when absent. Flags in flags whose names match Config keys take precedence.
func Load(flags *pflag.FlagSet, configFile string) (Config, error) {
	v := viper.New()
	defaults := Defaults()
	v.SetDefault("catalog", defaults.Catalog)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("class", defaults.Class)
	v.SetDefault("parent", defaults.Parent)
	v.SetDefault("prefix", defaults.Prefix)
	v.SetDefault("indent", defaults.Indent)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("debug", defaults.Debug)

	v.SetEnvPrefix(ConfigEnv)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigType(ConfigType)
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("config: bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct tags of cfg.
func Validate(cfg Config) error {
	if _, err := validator.ValidateStruct(cfg); err != nil {
		return fmt.Errorf("config: configuration is not correct: %w", err)
	}
	return nil
}
