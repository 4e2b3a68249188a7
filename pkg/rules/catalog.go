package rules

import (
	"sort"
	"sync"

	"github.com/goliatone/go-formvalidator/pkg/model"
	"github.com/goliatone/go-formvalidator/pkg/normalize"
)

// Rule checks a single value.
type Rule interface {
	Check(value string, env Env) Result
}

// RuleFunc adapts a function into a Rule.
type RuleFunc func(value string, env Env) Result

// Check delegates to the underlying function.
func (fn RuleFunc) Check(value string, env Env) Result {
	return fn(value, env)
}

// Entry is a registered rule.
type Entry struct {
	Name      model.RuleName
	Rule      Rule
	Normalize bool
}

// EntryOption tweaks an entry at registration time.
type EntryOption func(*Entry)

// WithNormalize marks the rule as operating on normalized input.
func WithNormalize() EntryOption {
	return func(e *Entry) {
		e.Normalize = true
	}
}

// Catalog resolves rule names to rules. Registering an existing name
// replaces it. A nil catalog resolves nothing.
type Catalog struct {
	mu      sync.RWMutex
	entries map[model.RuleName]Entry
}

// NewCatalog constructs a catalog with the built-in rules registered.
func NewCatalog() *Catalog {
	c := &Catalog{entries: make(map[model.RuleName]Entry)}
	c.registerBuiltins()
	return c
}

// Register adds or replaces the rule stored under name.
func (c *Catalog) Register(name model.RuleName, rule Rule, options ...EntryOption) {
	if c == nil || rule == nil || name == "" {
		return
	}
	entry := Entry{Name: name, Rule: rule}
	for _, opt := range options {
		if opt != nil {
			opt(&entry)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[model.RuleName]Entry)
	}
	c.entries[name] = entry
}

// Lookup returns the entry registered under name.
func (c *Catalog) Lookup(name model.RuleName) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[name]
	return entry, ok
}

// Names returns the registered rule names, sorted.
func (c *Catalog) Names() []model.RuleName {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	names := make([]model.RuleName, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	c.mu.RUnlock()
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Prepare returns the value the rule list should see: normalized when any
// declared rule asks for it, untouched otherwise.
func (c *Catalog) Prepare(list model.RuleList, value string) string {
	for _, name := range list {
		if entry, ok := c.Lookup(name); ok && entry.Normalize {
			return normalize.Normalize(value)
		}
	}
	return value
}

// Outcome records a full evaluation of one rule list.
type Outcome struct {
	Result
	// FailedAt names the rule that failed; empty when valid.
	FailedAt model.RuleName
	// Ran lists the rules that executed, in order.
	Ran []model.RuleName
	// Skipped lists declared names with no registered rule.
	Skipped []model.RuleName
}

// Evaluate runs list in declared order against value and stops at the first
// failure. value is expected to have gone through Prepare.
func (c *Catalog) Evaluate(list model.RuleList, value string, env Env) Outcome {
	out := Outcome{Result: Pass()}
	for _, name := range list {
		entry, ok := c.Lookup(name)
		if !ok {
			out.Skipped = append(out.Skipped, name)
			continue
		}
		out.Ran = append(out.Ran, name)
		result := entry.Rule.Check(value, env)
		if !result.Valid {
			out.Result = result
			out.FailedAt = name
			return out
		}
	}
	return out
}
