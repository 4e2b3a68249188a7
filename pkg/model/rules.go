package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// RuleName identifies a validation rule or a message hint declared on a
// field.
type RuleName string

// Executable rules.
const (
	RuleRequired   RuleName = "required"
	RuleTel        RuleName = "tel"
	RuleEmail      RuleName = "email"
	RuleEmailConf  RuleName = "emailConf"
	RulePostalCode RuleName = "postalCode"
	RuleNumber     RuleName = "number"
	RuleHiragana   RuleName = "hiragana"
	RuleKatakana   RuleName = "katakana"
	RulePassword   RuleName = "password"
)

// Message hints. They never run as rules; the required and group message
// tables inspect them.
const (
	HintName       RuleName = "name"
	HintFurigana   RuleName = "furigana"
	HintPostal     RuleName = "postal"
	HintText       RuleName = "text"
	HintAgree      RuleName = "agree"
	HintPostalAuto RuleName = "postal-auto"
)

var ruleAliases = map[string]RuleName{
	"email-conf":  RuleEmailConf,
	"emailconf":   RuleEmailConf,
	"postal-code": RulePostalCode,
	"postalcode":  RulePostalCode,
	"postal_code": RulePostalCode,
	"postalauto":  HintPostalAuto,
	"postal_auto": HintPostalAuto,
}

var customMessagePattern = regexp.MustCompile(`^emesse-?(\d{1,2})$`)

// CanonicalRuleName resolves markup aliases (`postal-code`, `email-conf`,
// `emesse-3`) into their canonical names. Unknown tokens are returned as-is
// so catalogs can register rules under new names.
func CanonicalRuleName(token string) RuleName {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	if alias, ok := ruleAliases[strings.ToLower(token)]; ok {
		return alias
	}
	if m := customMessagePattern.FindStringSubmatch(token); m != nil {
		return RuleName("emesse" + m[1])
	}
	return RuleName(token)
}

// CustomMessageKey returns the message key carried by an `emesseN` token.
func (n RuleName) CustomMessageKey() (string, bool) {
	if !customMessagePattern.MatchString(string(n)) {
		return "", false
	}
	return string(n), true
}

// RuleList is the ordered rule declaration of a field. It decodes from either
// a token string ("required,tel" or "required tel") or a list of tokens.
type RuleList []RuleName

// ParseRules splits a markup token string into canonical rule names. Commas
// and whitespace both separate tokens; duplicates keep their first position.
func ParseRules(raw string) RuleList {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	return NewRuleList(tokens...)
}

// NewRuleList canonicalises the supplied tokens, dropping blanks and
// duplicates.
func NewRuleList(tokens ...string) RuleList {
	if len(tokens) == 0 {
		return nil
	}
	out := make(RuleList, 0, len(tokens))
	seen := make(map[RuleName]struct{}, len(tokens))
	for _, token := range tokens {
		name := CanonicalRuleName(token)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Has reports whether the list declares name.
func (l RuleList) Has(name RuleName) bool {
	for _, candidate := range l {
		if candidate == name {
			return true
		}
	}
	return false
}

// CustomMessageKey returns the first `emesseN` key declared in the list.
func (l RuleList) CustomMessageKey() (string, bool) {
	for _, name := range l {
		if key, ok := name.CustomMessageKey(); ok {
			return key, true
		}
	}
	return "", false
}

// String renders the list back into the comma separated markup form.
func (l RuleList) String() string {
	parts := make([]string, len(l))
	for i, name := range l {
		parts[i] = string(name)
	}
	return strings.Join(parts, ",")
}

// UnmarshalJSON accepts a token string or an array of tokens.
func (l *RuleList) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*l = ParseRules(raw)
		return nil
	}
	var tokens []string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return fmt.Errorf("model: rules must be a string or list of strings: %w", err)
	}
	*l = NewRuleList(tokens...)
	return nil
}

// UnmarshalYAML accepts a token string or a sequence of tokens.
func (l *RuleList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = ParseRules(node.Value)
		return nil
	case yaml.SequenceNode:
		var tokens []string
		if err := node.Decode(&tokens); err != nil {
			return fmt.Errorf("model: decode rules: %w", err)
		}
		*l = NewRuleList(tokens...)
		return nil
	default:
		return fmt.Errorf("model: rules must be a string or list of strings (line %d)", node.Line)
	}
}
