package main

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
)

// Status record formats
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want json or yaml)", format)
	}
}

// encodeStatus renders v in format, newline terminated.
func encodeStatus(v any, format string) ([]byte, error) {
	switch format {
	case formatJSON:
		data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	case formatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	default:
		return nil, validateFormat(format)
	}
}
