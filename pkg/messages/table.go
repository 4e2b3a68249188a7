package messages

import (
	"html"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Table maps message keys to display strings. The zero value behaves like
// the default built-in table.
type Table struct {
	locale  string
	entries map[Key]string
}

// Defaults returns the built-in table for DefaultLocale.
func Defaults() Table {
	return Builtin(DefaultLocale)
}

// Builtin returns the built-in table for locale ("ja", "en", "en-US", ...).
// Unknown locales resolve to DefaultLocale.
func Builtin(locale string) Table {
	resolved := ResolveLocale(locale)
	source := builtins[resolved]
	entries := make(map[Key]string, len(source))
	for key, msg := range source {
		entries[key] = msg
	}
	return Table{locale: resolved, entries: entries}
}

// New builds a table from the locale defaults merged with overrides.
func New(locale string, overrides map[string]string) Table {
	return Builtin(locale).Merge(overrides)
}

// Locale reports the locale of the built-in table the table started from.
func (t Table) Locale() string {
	if t.locale == "" {
		return DefaultLocale
	}
	return t.locale
}

// Merge returns a copy with overrides applied key by key. Markup is stripped
// from override values; blank values are ignored so they cannot erase a
// built-in message.
func (t Table) Merge(overrides map[string]string) Table {
	merged := Table{locale: t.Locale(), entries: make(map[Key]string, len(t.base())+len(overrides))}
	for key, msg := range t.base() {
		merged.entries[key] = msg
	}
	for rawKey, msg := range overrides {
		key := Key(strings.TrimSpace(rawKey))
		if key == "" {
			continue
		}
		cleaned := sanitize(msg)
		if cleaned == "" {
			continue
		}
		merged.entries[key] = cleaned
	}
	return merged
}

// Lookup returns the message for key.
func (t Table) Lookup(key Key) (string, bool) {
	msg, ok := t.base()[key]
	return msg, ok
}

// Message returns the message for key, falling back to the generic required
// message when the key is unknown.
func (t Table) Message(key Key) string {
	return t.Resolve(key, Required)
}

// Resolve returns the message for key, or the message for fallback when key
// is unknown.
func (t Table) Resolve(key, fallback Key) string {
	if msg, ok := t.Lookup(key); ok {
		return msg
	}
	if msg, ok := t.Lookup(fallback); ok {
		return msg
	}
	return t.base()[Required]
}

// Keys returns the keys present in the table, sorted.
func (t Table) Keys() []Key {
	entries := t.base()
	keys := make([]Key, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (t Table) base() map[Key]string {
	if t.entries == nil {
		return builtins[DefaultLocale]
	}
	return t.entries
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

func sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := textSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
