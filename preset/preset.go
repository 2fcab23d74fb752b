// Package preset reads default option values from TOML, YAML or JSON files
// into the form accepted by argparse.Parser.Preset.
//
// Top-level keys are long option identifiers. Nested tables are flattened
// with '-', so [log] level = "debug" presets --log-level. Lists preset
// container options; every scalar is passed on as its textual form and
// converted by the parser like a command line value.
//
// FromEnv reads the same keys from prefixed environment variables, and Merge
// layers file and environment values before they reach the parser.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Values maps long identifiers to raw values.
type Values map[string][]string

// Format is a supported file format.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf guesses the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("preset: unsupported file extension %q", filepath.Ext(path))
}

// Load reads and decodes the file at path.
func Load(path string) (Values, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	defer f.Close()
	return Decode(f, format)
}

// Decode reads a document of the given format.
func Decode(r io.Reader, format Format) (Values, error) {
	doc := make(map[string]any)
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("preset: decode toml: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("preset: decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("preset: decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("preset: unknown format %q", format)
	}

	out := make(Values)
	if err := flatten("", doc, out); err != nil {
		return nil, err
	}
	return out, nil
}

// flatten converts nested maps to dashed keys (e.g., {"a":{"b":1}} => {"a-b":["1"]})
func flatten(prefix string, src map[string]any, dst Values) error {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key := k
		if prefix != "" {
			key = prefix + "-" + k
		}
		switch v := src[k].(type) {
		case map[string]any:
			if err := flatten(key, v, dst); err != nil {
				return err
			}
		case []any:
			list := make([]string, 0, len(v))
			for _, item := range v {
				s, err := text(key, item)
				if err != nil {
					return err
				}
				list = append(list, s)
			}
			dst[key] = list
		default:
			s, err := text(key, v)
			if err != nil {
				return err
			}
			dst[key] = []string{s}
		}
	}
	return nil
}

func text(key string, v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case json.Number:
		return v.String(), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	case nil:
		return "", fmt.Errorf("preset: key %q has no value", key)
	default:
		return "", fmt.Errorf("preset: key %q has unsupported value of type %T", key, v)
	}
}

// FromEnv collects the environment variables named prefix_NAME. NAME is
// lowercased with '_' turned into '-', so SERVE_LOG_LEVEL presets --log-level.
// Each variable yields a single value.
func FromEnv(prefix string) Values {
	return fromEnviron(prefix, os.Environ())
}

func fromEnviron(prefix string, environ []string) Values {
	out := make(Values)
	lead := strings.ToUpper(prefix) + "_"
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" || !strings.HasPrefix(name, lead) || len(name) == len(lead) {
			continue
		}
		key := strings.ToLower(strings.ReplaceAll(name[len(lead):], "_", "-"))
		out[key] = []string{value}
	}
	return out
}

// Merge layers sources from lowest to highest precedence. A key set by a later
// source replaces the earlier value as a whole, lists included.
func Merge(sources ...Values) Values {
	out := make(Values)
	for _, src := range sources {
		for k, v := range src {
			out[k] = slices.Clone(v)
		}
	}
	return out
}
