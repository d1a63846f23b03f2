// Package jsonpath evaluates simple JSONPath expressions ($.a.b[0], $['k'])
// against response bodies by translating them to gjson paths.
package jsonpath

import (
	"fmt"
	"strings"

	"github.com/wesleyorama2/apitopy/dot"
)

// Extract extracts a value from a JSON string using a JSONPath expression.
// Objects and arrays are returned as JSON text and null as "null".
func Extract(json string, path string) (string, error) {
	if json == "" {
		return "", fmt.Errorf("empty JSON string")
	}

	doc, err := dot.Parse([]byte(json))
	if err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	value, err := Lookup(doc, path)
	if err != nil {
		return "", err
	}
	if value.IsNull() {
		return "null", nil
	}
	return value.String(), nil
}

// Lookup evaluates path against an already decoded value.
func Lookup(v *dot.Value, path string) (*dot.Value, error) {
	if path == "" {
		return nil, fmt.Errorf("empty JSONPath expression")
	}
	if !v.Exists() {
		return nil, fmt.Errorf("invalid or empty JSON document")
	}

	gpath, err := ToGjsonPath(path)
	if err != nil {
		return nil, err
	}

	result := v.Get(gpath)
	if !result.Exists() {
		return nil, fmt.Errorf("path not found: %s", path)
	}
	return result, nil
}

// ExtractMultiple extracts several named paths. Paths that fail are left out
// of the result and reported together in the error.
func ExtractMultiple(json string, paths map[string]string) (map[string]string, error) {
	if json == "" {
		return nil, fmt.Errorf("empty JSON string")
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no JSONPath expressions provided")
	}

	results := make(map[string]string)
	var errors []string

	for name, path := range paths {
		value, err := Extract(json, path)
		if err != nil {
			errors = append(errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		results[name] = value
	}

	if len(errors) > 0 {
		return results, fmt.Errorf("extraction errors: %s", strings.Join(errors, "; "))
	}

	return results, nil
}

// ToGjsonPath converts a JSONPath expression to gjson syntax:
//
//	$                 -> @this
//	$.items[0].name   -> items.0.name
//	$['a.b'].c        -> a\.b.c
func ToGjsonPath(path string) (string, error) {
	rest := strings.TrimPrefix(strings.TrimSpace(path), "$")
	if rest == "" {
		return "@this", nil
	}

	var parts []string
	for len(rest) > 0 {
		switch rest[0] {
		case '.':
			rest = rest[1:]
			end := strings.IndexAny(rest, ".[")
			if end < 0 {
				end = len(rest)
			}
			if end == 0 {
				return "", fmt.Errorf("invalid JSONPath %q: empty member name", path)
			}
			parts = append(parts, escape(rest[:end]))
			rest = rest[end:]
		case '[':
			closing := strings.IndexByte(rest, ']')
			if closing < 0 {
				return "", fmt.Errorf("invalid JSONPath %q: unterminated '['", path)
			}
			inner := rest[1:closing]
			if len(inner) >= 2 && (inner[0] == '\'' || inner[0] == '"') && inner[len(inner)-1] == inner[0] {
				inner = inner[1 : len(inner)-1]
			} else if inner == "*" {
				inner = "#"
			}
			if inner == "" {
				return "", fmt.Errorf("invalid JSONPath %q: empty index", path)
			}
			if inner == "#" {
				parts = append(parts, inner)
			} else {
				parts = append(parts, escape(inner))
			}
			rest = rest[closing+1:]
		default:
			// Bare paths without "$." are accepted as gjson already
			if len(parts) == 0 {
				rest = "." + rest
				continue
			}
			return "", fmt.Errorf("invalid JSONPath %q: unexpected %q", path, rest[0])
		}
	}
	return strings.Join(parts, "."), nil
}

func escape(component string) string {
	var b strings.Builder
	for _, r := range component {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
