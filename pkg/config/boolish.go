package config

import (
	"bytes"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// 🔘 Boolish is a flag and config value that is true for "1" or "true" in any
// case and false for anything else. It never fails to parse.
type Boolish bool

// ParseBoolish reports whether s is "1" or "true", ignoring case and surrounding space.
func ParseBoolish(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true":
		return true
	}
	return false
}

func (b *Boolish) String() string {
	return strconv.FormatBool(bool(*b))
}

// Set implements pflag.Value.
func (b *Boolish) Set(s string) error {
	*b = Boolish(ParseBoolish(s))
	return nil
}

// Type implements pflag.Value.
func (b *Boolish) Type() string {
	return "boolish"
}

// UnmarshalJSON accepts a JSON bool, number or string.
func (b *Boolish) UnmarshalJSON(data []byte) error {
	*b = Boolish(ParseBoolish(string(bytes.Trim(data, `"`))))
	return nil
}

// UnmarshalYAML accepts any scalar.
func (b *Boolish) UnmarshalYAML(node *yaml.Node) error {
	*b = Boolish(node.Kind == yaml.ScalarNode && ParseBoolish(node.Value))
	return nil
}
