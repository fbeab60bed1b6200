package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateInspector(); err != nil {
		return err
	}
	if err := c.validateDecode(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateInspector() error {
	if c.Inspector.Binary == "" {
		return errors.New("inspector.binary must be set")
	}
	if c.Inspector.TimeoutSeconds <= 0 {
		return errors.New("inspector.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateDecode() error {
	if c.Decode.FPSOverride < 0 {
		return errors.New("decode.fps_override must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
