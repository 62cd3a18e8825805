package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnvOverrides()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeConvert()
	c.normalizeTMDB()
	c.normalizeTrailers()
	c.normalizeLogging()
	return nil
}

// applyEnvOverrides fills unset fields from the environment. File values win
// only when the variable is absent; flags applied later win over both.
func (c *Config) applyEnvOverrides() {
	if value, ok := os.LookupEnv("TRACKSMITH_LIBRARY_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.LibraryDir = value
	}
	if value, ok := os.LookupEnv("TRACKSMITH_TRAILER_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.TrailerDir = value
	}
	if value, ok := os.LookupEnv("TRACKSMITH_TEMP_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.TempDir = value
	}
	if value, ok := os.LookupEnv("TRACKSMITH_WORKERS"); ok {
		if workers, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && workers > 0 {
			c.Convert.Workers = workers
		}
	}
	if value, ok := os.LookupEnv("TRACKSMITH_LANGUAGES"); ok && strings.TrimSpace(value) != "" {
		c.Convert.Languages = splitCommaList(value)
	}
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = value
		}
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TrailerDir) != "" {
		if c.Paths.TrailerDir, err = expandPath(c.Paths.TrailerDir); err != nil {
			return fmt.Errorf("paths.trailer_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.TempDir) != "" {
		if c.Paths.TempDir, err = expandPath(c.Paths.TempDir); err != nil {
			return fmt.Errorf("paths.temp_dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeConvert() {
	if c.Convert.Workers <= 0 {
		c.Convert.Workers = defaultConvertWorkers
	}
	c.Convert.HWAccelType = strings.ToLower(strings.TrimSpace(c.Convert.HWAccelType))
	if c.Convert.HWAccelType == "" {
		c.Convert.HWAccelType = defaultConvertHWAccelType
	}
	if len(c.Convert.Extensions) == 0 {
		c.Convert.Extensions = append([]string(nil), defaultConvertExtensions...)
	}
	normalized := make([]string, 0, len(c.Convert.Extensions))
	for _, ext := range c.Convert.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	c.Convert.Extensions = normalized
}

func (c *Config) normalizeTMDB() {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
}

func (c *Config) normalizeTrailers() {
	if len(c.Trailers.Patterns) == 0 {
		c.Trailers.Patterns = append([]string(nil), defaultTrailerPatterns...)
	}
	patterns := make([]string, 0, len(c.Trailers.Patterns))
	for _, pattern := range c.Trailers.Patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern != "" {
			patterns = append(patterns, pattern)
		}
	}
	c.Trailers.Patterns = patterns
	c.Trailers.CookiesBrowser = strings.TrimSpace(c.Trailers.CookiesBrowser)
	c.Trailers.CookiesFile = strings.TrimSpace(c.Trailers.CookiesFile)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func splitCommaList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
