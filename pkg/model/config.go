package model

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// HyphenMode selects which telephone/postal-code format variant is accepted.
// The zero value accepts both hyphenated and non-hyphenated input.
type HyphenMode int

const (
	HyphenEither HyphenMode = iota
	HyphenRequired
	HyphenForbidden
)

// HyphenModeFromBool maps the tri-state boolean form (nil = either).
func HyphenModeFromBool(allow *bool) HyphenMode {
	switch {
	case allow == nil:
		return HyphenEither
	case *allow:
		return HyphenRequired
	default:
		return HyphenForbidden
	}
}

// ParseHyphenMode decodes `true|false|null|either|required|forbidden`.
// Unrecognised input falls back to HyphenEither.
func ParseHyphenMode(raw string) HyphenMode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "required", "with", "hyphenated":
		return HyphenRequired
	case "false", "forbidden", "without", "plain":
		return HyphenForbidden
	default:
		return HyphenEither
	}
}

func (m HyphenMode) String() string {
	switch m {
	case HyphenRequired:
		return "required"
	case HyphenForbidden:
		return "forbidden"
	default:
		return "either"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m HyphenMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails.
func (m *HyphenMode) UnmarshalText(text []byte) error {
	*m = ParseHyphenMode(string(text))
	return nil
}

// UnmarshalJSON accepts booleans, null and the textual names.
func (m *HyphenMode) UnmarshalJSON(data []byte) error {
	var flag *bool
	if err := json.Unmarshal(data, &flag); err == nil {
		*m = HyphenModeFromBool(flag)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*m = ParseHyphenMode(raw)
		return nil
	}
	*m = HyphenEither
	return nil
}

// UnmarshalYAML accepts booleans, null and the textual names.
func (m *HyphenMode) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		*m = HyphenEither
		return nil
	}
	*m = ParseHyphenMode(node.Value)
	return nil
}

// Config carries the engine switches.
type Config struct {
	AllowHyphensInTel        HyphenMode `json:"allowHyphensInTel" yaml:"allowHyphensInTel" env:"ALLOW_HYPHENS_IN_TEL"`
	AllowHyphensInPostalCode HyphenMode `json:"allowHyphensInPostalCode" yaml:"allowHyphensInPostalCode" env:"ALLOW_HYPHENS_IN_POSTAL_CODE"`
	ShowCount                bool       `json:"showCount" yaml:"showCount" env:"SHOW_COUNT"`
	DisableSubmitOnError     bool       `json:"disableSubmitOnError" yaml:"disableSubmitOnError" env:"DISABLE_SUBMIT_ON_ERROR" envDefault:"true"`
	EnablePostalAutofill     bool       `json:"enablePostalAutofill" yaml:"enablePostalAutofill" env:"ENABLE_POSTAL_AUTOFILL"`
}

// DefaultConfig returns the engine defaults: both formats accepted, submit
// disabled while errors remain, counter and autofill off.
func DefaultConfig() Config {
	return Config{
		AllowHyphensInTel:        HyphenEither,
		AllowHyphensInPostalCode: HyphenEither,
		DisableSubmitOnError:     true,
	}
}

// switches maps each decoding key to the field it fills.
func (c *Config) switches() map[string]any {
	return map[string]any{
		"allowHyphensInTel":        &c.AllowHyphensInTel,
		"allowHyphensInPostalCode": &c.AllowHyphensInPostalCode,
		"showCount":                &c.ShowCount,
		"disableSubmitOnError":     &c.DisableSubmitOnError,
		"enablePostalAutofill":     &c.EnablePostalAutofill,
	}
}

// UnmarshalJSON decodes key by key over DefaultConfig. Omitted, unknown and
// malformed keys keep their defaults; it never fails.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = DefaultConfig()
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for key, target := range c.switches() {
		value, ok := raw[key]
		if !ok {
			continue
		}
		_ = decodeSwitch(target, func(out any) error { return json.Unmarshal(value, out) })
	}
	return nil
}

// UnmarshalYAML decodes key by key over DefaultConfig. Omitted, unknown and
// malformed keys keep their defaults; it never fails.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	*c = DefaultConfig()
	var raw map[string]yaml.Node
	if err := node.Decode(&raw); err != nil {
		return nil
	}
	for key, target := range c.switches() {
		value, ok := raw[key]
		if !ok {
			continue
		}
		_ = decodeSwitch(target, value.Decode)
	}
	return nil
}

// decodeSwitch decodes into a scratch copy and only stores it on success.
func decodeSwitch(target any, decode func(any) error) error {
	switch field := target.(type) {
	case *bool:
		value := *field
		if err := decode(&value); err != nil {
			return err
		}
		*field = value
	case *HyphenMode:
		value := HyphenEither
		if err := decode(&value); err != nil {
			return err
		}
		*field = value
	}
	return nil
}
