package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"github.com/Station-Manager/ddsctl/serial"
)

// DefaultSettleDelay is how long the device gets to answer a command before
// its reply is drained.
const DefaultSettleDelay = 100 * time.Millisecond

// Config represents the ddsctl configuration
type Config struct {
	// Serial is checked by serial.ValidateConfig.
	Serial serial.Config `yaml:"serial" validate:"-"`

	Driver struct {
		SettleDelay time.Duration `yaml:"settle_delay" validate:"min=0,max=10s"`
	} `yaml:"driver"`

	Logging Logging `yaml:"logging"`
}

type Logging struct {
	Level string `yaml:"level" validate:"oneof=trace debug info warn error disabled"`

	// File enables a rotated log file next to the console output.
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size" validate:"gte=0"`    // megabytes
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"` // number of backups
	MaxAge     int    `yaml:"max_age" validate:"gte=0"`     // days
	Compress   bool   `yaml:"compress"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{
		Serial: serial.DefaultConfig(),
		Logging: Logging{
			Level:      "warn",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
	c.Driver.SettleDelay = DefaultSettleDelay
	return c
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := serial.ValidateConfig(&c.Serial); err != nil {
		return fmt.Errorf("serial: %w", err)
	}

	err := validator.New().Struct(c)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fe := fieldErrs[0]
		return fmt.Errorf("%s: invalid value %v (%s=%s)", fe.Namespace(), fe.Value(), fe.Tag(), fe.Param())
	}
	return err
}
