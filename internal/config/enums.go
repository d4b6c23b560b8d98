package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// LogFormat selects how log lines are rendered.
type LogFormat int

const (
	LogFormatConsole LogFormat = iota
	LogFormatJSON
)

func (f LogFormat) String() string {
	switch f {
	case LogFormatConsole:
		return "console"
	case LogFormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseLogFormat parses a log format name, case-insensitively.
func ParseLogFormat(s string) (LogFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "console", "text":
		return LogFormatConsole, nil
	case "json":
		return LogFormatJSON, nil
	default:
		return 0, fmt.Errorf("unknown log format %q (want console or json)", s)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler for LogFormat.
func (f *LogFormat) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseLogFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
