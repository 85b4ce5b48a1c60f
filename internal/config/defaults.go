package config

const (
	defaultConfigPath = "~/.config/captionexport/config.toml"
	projectConfigName = "captionexport.toml"

	defaultEncoding       = "shift_jis"
	defaultLineEnding     = "crlf"
	defaultFilePrefix     = "ExportTextEvent"
	defaultExtension      = ".txt"
	defaultTimecodeFormat = "smpte-drop"
	defaultFrameRate      = 29.97
	defaultParameter      = "Text"
	defaultLogFormat      = "console"
	defaultLogLevel       = "warn"
	encodingEnvOverride   = "CAPTIONEXPORT_ENCODING"
	logLevelEnvOverride   = "CAPTIONEXPORT_LOG_LEVEL"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Output: Output{
			Encoding:   defaultEncoding,
			LineEnding: defaultLineEnding,
			FilePrefix: defaultFilePrefix,
			Extension:  defaultExtension,
		},
		Timecode: Timecode{
			Format:    defaultTimecodeFormat,
			FrameRate: defaultFrameRate,
		},
		Extract: Extract{
			Parameter: defaultParameter,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
