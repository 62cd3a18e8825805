package config

import (
	"errors"
	"fmt"
	"strings"
)

var validHWAccelTypes = map[string]bool{
	"auto":  true,
	"nvenc": true,
	"qsv":   true,
	"amf":   true,
}

// Validate ensures the configuration is usable. The TMDB key is not required
// here; only the trailers command needs it and checks at invocation time.
func (c *Config) Validate() error {
	if err := c.validateConvert(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateConvert() error {
	if c.Convert.Workers < 1 {
		return errors.New("convert.workers must be at least 1")
	}
	if !validHWAccelTypes[c.Convert.HWAccelType] {
		return fmt.Errorf("convert.hw_accel_type: unsupported value %q (expected auto, nvenc, qsv, or amf)", c.Convert.HWAccelType)
	}
	if len(c.Convert.Extensions) == 0 {
		return errors.New("convert.extensions must name at least one extension")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
