package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeInspector()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Runs.DBPath) == "" {
		c.Runs.DBPath = defaultRunsDBPath
	}
	if c.Runs.DBPath, err = expandPath(c.Runs.DBPath); err != nil {
		return fmt.Errorf("runs.db_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeInspector() {
	c.Inspector.Binary = strings.TrimSpace(c.Inspector.Binary)
	if c.Inspector.Binary == "" {
		c.Inspector.Binary = defaultInspectorBinary
	}
	if c.Inspector.TimeoutSeconds <= 0 {
		c.Inspector.TimeoutSeconds = defaultInspectorTimeout
	}
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
