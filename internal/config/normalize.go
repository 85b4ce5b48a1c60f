package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeTimecode()
	c.normalizeExtract()
	return c.normalizeLogging()
}

func (c *Config) normalizeOutput() error {
	if value, ok := os.LookupEnv(encodingEnvOverride); ok && strings.TrimSpace(value) != "" {
		c.Output.Encoding = value
	}
	c.Output.Encoding = strings.ToLower(strings.TrimSpace(c.Output.Encoding))
	if c.Output.Encoding == "" {
		c.Output.Encoding = defaultEncoding
	}
	c.Output.LineEnding = strings.ToLower(strings.TrimSpace(c.Output.LineEnding))
	if c.Output.LineEnding == "" {
		c.Output.LineEnding = defaultLineEnding
	}
	c.Output.FilePrefix = strings.TrimSpace(c.Output.FilePrefix)
	c.Output.Extension = strings.TrimSpace(c.Output.Extension)
	if c.Output.Extension == "" {
		c.Output.Extension = defaultExtension
	}
	if !strings.HasPrefix(c.Output.Extension, ".") {
		c.Output.Extension = "." + c.Output.Extension
	}
	var err error
	if c.Output.Dir, err = expandPath(strings.TrimSpace(c.Output.Dir)); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTimecode() {
	c.Timecode.Format = strings.ToLower(strings.TrimSpace(c.Timecode.Format))
	if c.Timecode.Format == "" {
		c.Timecode.Format = defaultTimecodeFormat
	}
	if c.Timecode.FrameRate == 0 {
		c.Timecode.FrameRate = defaultFrameRate
	}
}

func (c *Config) normalizeExtract() {
	c.Extract.Parameter = strings.TrimSpace(c.Extract.Parameter)
	if c.Extract.Parameter == "" {
		c.Extract.Parameter = defaultParameter
	}
}

func (c *Config) normalizeLogging() error {
	if value, ok := os.LookupEnv(logLevelEnvOverride); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
