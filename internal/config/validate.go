package config

import (
	"errors"
	"fmt"
	"strings"

	"captionexport/internal/charset"
	"captionexport/internal/timecode"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateTimecode(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Extract.Parameter) == "" {
		return errors.New("extract.parameter must be set")
	}
	return c.validateLogging()
}

func (c *Config) validateOutput() error {
	enc, err := charset.Lookup(c.Output.Encoding)
	if err != nil {
		return fmt.Errorf("output.encoding: %w", err)
	}
	if c.Output.BOM {
		if _, err := charset.ByteOrderMark(enc); err != nil {
			return fmt.Errorf("output.bom is not supported for encoding %q", c.Output.Encoding)
		}
	}
	switch c.Output.LineEnding {
	case "crlf", "lf":
	default:
		return fmt.Errorf("output.line_ending must be crlf or lf, got %q", c.Output.LineEnding)
	}
	if strings.Trim(c.Output.Extension, ".") == "" {
		return errors.New("output.extension must name a file extension")
	}
	if strings.ContainsAny(c.Output.FilePrefix, `/\`) {
		return errors.New("output.file_prefix must not contain path separators")
	}
	return nil
}

func (c *Config) validateTimecode() error {
	format, err := timecode.ParseFormat(c.Timecode.Format)
	if err != nil {
		return fmt.Errorf("timecode.format: %w", err)
	}
	if _, err := timecode.New(format, c.Timecode.FrameRate); err != nil {
		return fmt.Errorf("timecode: %w", err)
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
