package orchestrator

import (
	"io"
	"log/slog"

	"github.com/goliatone/go-formvalidator/pkg/messages"
	"github.com/goliatone/go-formvalidator/pkg/model"
	"github.com/goliatone/go-formvalidator/pkg/rules"
)

// PostalLookup resolves a normalized postal code into an address. onResolved
// may be called synchronously or later from another goroutine; a zero
// Address reports a miss.
type PostalLookup interface {
	LookupPostalCode(code string, onResolved func(model.Address))
}

// PostalLookupFunc adapts a function into a PostalLookup.
type PostalLookupFunc func(code string, onResolved func(model.Address))

// LookupPostalCode calls the wrapped function when non-nil.
func (fn PostalLookupFunc) LookupPostalCode(code string, onResolved func(model.Address)) {
	if fn == nil {
		return
	}
	fn(code, onResolved)
}

// Option customises the orchestrator.
type Option func(*Orchestrator)

// WithConfig replaces the engine switches. Without it the form's own config
// block is used, falling back to model.DefaultConfig.
func WithConfig(cfg model.Config) Option {
	return func(o *Orchestrator) {
		o.config = cfg
		o.configSet = true
	}
}

// WithLocale selects the built-in message table.
func WithLocale(locale string) Option {
	return func(o *Orchestrator) {
		o.locale = locale
	}
}

// WithMessageTable supplies a prepared message table, for example one loaded
// with messages.LoadFS. Form and WithMessages overrides merge on top.
func WithMessageTable(table messages.Table) Option {
	return func(o *Orchestrator) {
		o.baseTable = &table
	}
}

// WithMessages merges message overrides key by key. Later calls win.
func WithMessages(overrides map[string]string) Option {
	return func(o *Orchestrator) {
		if len(overrides) == 0 {
			return
		}
		o.overrides = append(o.overrides, overrides)
	}
}

// WithCatalog swaps the rule catalog.
func WithCatalog(catalog *rules.Catalog) Option {
	return func(o *Orchestrator) {
		if catalog != nil {
			o.catalog = catalog
		}
	}
}

// WithPostalLookup registers the postal autofill collaborator. Lookups only
// run when the config enables postal autofill.
func WithPostalLookup(lookup PostalLookup) Option {
	return func(o *Orchestrator) {
		o.lookup = lookup
	}
}

// WithEffectSink registers the receiver for updates produced by lookup
// callbacks.
func WithEffectSink(sink EffectSink) Option {
	return func(o *Orchestrator) {
		o.sink = sink
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
