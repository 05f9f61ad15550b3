// Package config provides the frozen key-path configuration document the
// core reads from. It is loaded once at startup and never re-read:
// file-watching is a concern of the presentation collaborator, not the
// core (see design notes on "configuration is read-mostly state").
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/oakmere/holdfast/internal/simlog"
	"gopkg.in/yaml.v3"
)

// Config is a key-path lookup over a frozen JSON-shaped document. A YAML
// decoder is used to parse it because YAML is a superset of JSON: the
// balance file may be authored as plain JSON or as YAML without a second
// parser in the dependency graph.
type Config struct {
	data map[string]any
	log  *simlog.Logger
}

// Load reads and parses the document at path. The returned Config never
// re-reads path again.
func Load(path string, log *simlog.Logger) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &Config{data: doc, log: log}, nil
}

// New wraps an already-decoded document, for callers that build
// configuration in-process (tests, defaults-only runs).
func New(doc map[string]any, log *simlog.Logger) *Config {
	if doc == nil {
		doc = map[string]any{}
	}
	return &Config{data: doc, log: log}
}

// Get resolves a dot-separated key path against the document. On any miss
// (absent key, wrong shape) it logs a SYSTEM warning and returns def.
func (c *Config) Get(keyPath string, def any) any {
	if c == nil || c.data == nil {
		return def
	}
	parts := strings.Split(keyPath, ".")
	var cur any = c.data
	for i, part := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			c.warnMiss(keyPath)
			return def
		}
		v, ok := m[part]
		if !ok {
			c.warnMiss(keyPath)
			return def
		}
		if i == len(parts)-1 {
			return v
		}
		cur = v
	}
	return def
}

func (c *Config) warnMiss(keyPath string) {
	if c.log != nil {
		c.log.Warn(simlog.System, "configuration key missing, using default", "key", keyPath)
	}
}

// GetFloat resolves a key path as a float64, accepting int/float YAML
// scalars and falling back to def on any other shape.
func (c *Config) GetFloat(keyPath string, def float64) float64 {
	v := c.Get(keyPath, def)
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return def
}

// GetInt resolves a key path as an int.
func (c *Config) GetInt(keyPath string, def int) int {
	v := c.Get(keyPath, def)
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	}
	return def
}

// GetString resolves a key path as a string.
func (c *Config) GetString(keyPath string, def string) string {
	v := c.Get(keyPath, def)
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

// GetFloatRange resolves a key path expected to hold a two-element
// [min, max] sequence, as used by crop yield tables.
func (c *Config) GetFloatRange(keyPath string, def [2]float64) [2]float64 {
	v := c.Get(keyPath, nil)
	seq, ok := v.([]any)
	if !ok || len(seq) != 2 {
		return def
	}
	lo, okLo := toFloat(seq[0])
	hi, okHi := toFloat(seq[1])
	if !okLo || !okHi {
		return def
	}
	return [2]float64{lo, hi}
}

// GetMap resolves a key path expected to hold a nested document, for
// callers that want to walk a whole section themselves (e.g. per-season
// or per-crop-kind tables keyed by name).
func (c *Config) GetMap(keyPath string) map[string]any {
	v := c.Get(keyPath, nil)
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

// GetIntSlice resolves a key path expected to hold a list of integers.
func (c *Config) GetIntSlice(keyPath string, def []int) []int {
	v := c.Get(keyPath, nil)
	seq, ok := v.([]any)
	if !ok {
		return def
	}
	out := make([]int, 0, len(seq))
	for _, item := range seq {
		switch n := item.(type) {
		case int:
			out = append(out, n)
		case float64:
			out = append(out, int(n))
		}
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
