// Package parse decodes allow lists from the formats users keep them in.
package parse

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalidAllow signals an allow list that is not a list of strings.
var ErrInvalidAllow = errors.New("allow list must be a list of strings")

// listKeys are the object keys an allow list may live under.
var listKeys = []string{"allow", "words"}

// AllowList validates a generically decoded allow value.
// nil means "not given" and returns a nil slice.
func AllowList(v any) ([]string, error) {
	switch list := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: entry %d is %T", ErrInvalidAllow, i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidAllow, v)
	}
}

// JSON decodes a raw JSON allow value (a list, or null).
func JSON(raw json.RawMessage) ([]string, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAllow, err)
	}
	return AllowList(v)
}

// Decode reads an allow-list file body. The format follows the file
// extension: .json, .yaml/.yml and .toml hold either a bare list or an
// object with an "allow" (or "words") list; anything else is one entry
// per line, with blank lines and '#' comments skipped.
func Decode(data []byte, name string) ([]string, error) {
	var v any
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	case ".toml":
		m := map[string]any{}
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
		v = m
	default:
		return Lines(data), nil
	}

	inner, ok := unwrap(v)
	if !ok {
		return nil, fmt.Errorf("%w: no %q list in %s", ErrInvalidAllow, listKeys[0], name)
	}
	list, err := AllowList(inner)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}

// Lines splits a plain-text allow list.
func Lines(data []byte) []string {
	out := []string{}
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}

// unwrap returns the list held under one of listKeys, or v itself
// when v is not an object.
func unwrap(v any) (any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return v, true
	}
	for _, k := range listKeys {
		if list, ok := m[k]; ok {
			return list, true
		}
	}
	return nil, false
}
