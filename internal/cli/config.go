package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the CLI settings shared by every command.
type Config struct {
	// LogLevel enables logging to stderr ("debug", "info", "warn", "error"). Empty disables it.
	LogLevel string `mapstructure:"log_level"`
	// Format is the text format of the submitted document and of the editor ("yaml" or "json").
	Format string `mapstructure:"format"`
	// Strings is a YAML file overlaying the localization table.
	Strings string `mapstructure:"strings"`
	// MetricsAddr, when set, serves prometheus metrics on this address.
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"log-level":    "log_level",
	"format":       "format",
	"strings":      "strings",
	"metrics-addr": "metrics_addr",
}

// LoadConfig reads the configuration. Precedence: flags, FORMWIZARD_* env vars,
// config file, defaults. path selects the config file; when empty, formwizard.yaml
// is looked up in the working directory and in ~/.config/formwizard.
func LoadConfig(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "")
	v.SetDefault("format", "yaml")
	v.SetDefault("strings", "")
	v.SetDefault("metrics_addr", "")

	if path == "" {
		path = os.Getenv("FORMWIZARD_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("formwizard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "formwizard"))
		}
	}

	v.SetEnvPrefix("FORMWIZARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	switch c.Format {
	case "yaml", "json":
	default:
		return Config{}, fmt.Errorf("unsupported format %q (want yaml or json)", c.Format)
	}
	return c, nil
}
