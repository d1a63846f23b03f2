package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"

	"github.com/wesleyorama2/apitopy/dot"
)

// OutputFormat represents the available output formats
type OutputFormat string

const (
	// FormatText is indented JSON, colored on terminals
	FormatText OutputFormat = "text"
	// FormatJSON is indented JSON without color
	FormatJSON OutputFormat = "json"
	// FormatYAML converts the body to YAML
	FormatYAML OutputFormat = "yaml"
	// FormatRaw prints the body exactly as received
	FormatRaw OutputFormat = "raw"
)

// ParseFormat validates a format name. The empty string means FormatText.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatRaw:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json, yaml or raw)", s)
}

// FormatValue renders a decoded body. A nil value renders as "".
func (f *Formatter) FormatValue(v *dot.Value) (string, error) {
	if v == nil {
		return "", nil
	}
	return f.formatRaw([]byte(v.Raw()), v.Interface())
}

// FormatValues renders values emitted by a jq filter, one document each.
func (f *Formatter) FormatValues(values []interface{}) (string, error) {
	var buf strings.Builder
	for _, value := range values {
		if s, ok := value.(string); ok && f.Format != FormatYAML {
			// jq -r style: strings are printed bare
			buf.WriteString(s)
			buf.WriteString("\n")
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("failed to encode jq result: %w", err)
		}
		out, err := f.formatRaw(raw, value)
		if err != nil {
			return "", err
		}
		buf.WriteString(out)
		if f.Format == FormatYAML {
			buf.WriteString("---\n")
		}
	}
	return buf.String(), nil
}

func (f *Formatter) formatRaw(raw []byte, data interface{}) (string, error) {
	switch f.Format {
	case FormatRaw:
		return string(raw) + "\n", nil
	case FormatJSON:
		return string(pretty.Pretty(raw)), nil
	case FormatYAML:
		out, err := yaml.Marshal(data)
		if err != nil {
			return "", fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return string(out), nil
	default:
		out := pretty.Pretty(raw)
		if !f.NoColor {
			out = pretty.Color(out, nil)
		}
		return string(out), nil
	}
}
