package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Report defaults
	Language   string `mapstructure:"language" yaml:"language"`
	Theme      string `mapstructure:"theme" yaml:"theme"`
	XColumn    string `mapstructure:"x_column" yaml:"x_column"`
	YColumn    string `mapstructure:"y_column" yaml:"y_column"`
	SampleRows int    `mapstructure:"sample_rows" yaml:"sample_rows"`

	// Dashboard
	Addr        string `mapstructure:"addr" yaml:"addr"`
	MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`

	// OpenTelemetry metrics export
	OTelEnabled  bool   `mapstructure:"otel_enabled" yaml:"otel_enabled"`
	OTelEndpoint string `mapstructure:"otel_endpoint" yaml:"otel_endpoint"`
	OTelInsecure bool   `mapstructure:"otel_insecure" yaml:"otel_insecure"`
}

// Keys lists the settable configuration keys.
var Keys = []string{
	"language", "theme", "x_column", "y_column", "sample_rows",
	"addr", "max_upload_mb", "log_level",
	"otel_enabled", "otel_endpoint", "otel_insecure",
}

// Defaults returns the built-in configuration used when neither a config file
// nor the environment sets a key.
func Defaults() *Global {
	return &Global{
		Language:     "en",
		Theme:        "light",
		XColumn:      "X_TOTAL",
		YColumn:      "Y_TOTAL",
		SampleRows:   20,
		Addr:         ":8501",
		MaxUploadMB:  200,
		LogLevel:     "info",
		OTelEnabled:  false,
		OTelEndpoint: "localhost:4317",
		OTelInsecure: true,
	}
}

// Dir returns ~/.surveylens.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".surveylens"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.surveylens/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("SURVEYLENS")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("language", d.Language)
	v.SetDefault("theme", d.Theme)
	v.SetDefault("x_column", d.XColumn)
	v.SetDefault("y_column", d.YColumn)
	v.SetDefault("sample_rows", d.SampleRows)
	v.SetDefault("addr", d.Addr)
	v.SetDefault("max_upload_mb", d.MaxUploadMB)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("otel_enabled", d.OTelEnabled)
	v.SetDefault("otel_endpoint", d.OTelEndpoint)
	v.SetDefault("otel_insecure", d.OTelInsecure)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// MaxUploadBytes converts the configured upload limit to bytes.
func (c *Global) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 200 << 20
	}
	return int64(c.MaxUploadMB) << 20
}
