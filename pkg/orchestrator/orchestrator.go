package orchestrator

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/goliatone/go-formvalidator/pkg/messages"
	"github.com/goliatone/go-formvalidator/pkg/model"
	"github.com/goliatone/go-formvalidator/pkg/rules"
	"github.com/goliatone/go-formvalidator/pkg/tracker"
)

// Orchestrator evaluates one form. It is safe for concurrent use; events are
// processed one at a time.
type Orchestrator struct {
	form      model.Form
	config    model.Config
	configSet bool
	locale    string
	baseTable *messages.Table
	overrides []map[string]string
	table     messages.Table
	catalog   *rules.Catalog
	lookup    PostalLookup
	sink      EffectSink
	logger    *slog.Logger

	// primaries maps confirmation field ids to their email field.
	primaries map[string]string
	// confirms maps email field ids to their confirmation fields.
	confirms map[string][]string

	mu    sync.Mutex
	state State
}

// New validates the declaration, resolves email pairs and applies options.
// Every declaration problem is reported in the returned error.
func New(form model.Form, options ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		form:   form,
		logger: discardLogger(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}

	if err := form.Validate(); err != nil {
		o.logger.Error("orchestrator: invalid declaration", "form", form.ID, "error", err)
		return nil, fmt.Errorf("orchestrator: form %q: %w", form.ID, err)
	}
	pairs, err := form.ResolvePairs()
	if err != nil {
		o.logger.Error("orchestrator: unresolved email pairing", "form", form.ID, "error", err)
		return nil, fmt.Errorf("orchestrator: form %q: %w", form.ID, err)
	}

	o.applyDefaults()
	o.primaries = pairs
	o.confirms = make(map[string][]string, len(pairs))
	for _, field := range form.Fields {
		if primary, ok := pairs[field.ID]; ok {
			o.confirms[primary] = append(o.confirms[primary], field.ID)
		}
	}
	o.logUnknownRules()
	o.state = o.emptyState()
	return o, nil
}

func (o *Orchestrator) applyDefaults() {
	if !o.configSet {
		o.config = model.DefaultConfig()
		if o.form.Config != nil {
			o.config = *o.form.Config
		}
	}
	if o.catalog == nil {
		o.catalog = rules.NewCatalog()
	}

	table := messages.Builtin(o.locale)
	if o.baseTable != nil {
		table = *o.baseTable
	}
	table = table.Merge(o.form.Messages)
	for _, overrides := range o.overrides {
		table = table.Merge(overrides)
	}
	o.table = table
}

func (o *Orchestrator) logUnknownRules() {
	seen := make(map[model.RuleName]struct{})
	for _, field := range o.form.Fields {
		for _, name := range field.Rules {
			if _, ok := seen[name]; ok || isHint(name) {
				continue
			}
			seen[name] = struct{}{}
			if _, ok := o.catalog.Lookup(name); !ok {
				o.logger.Debug("orchestrator: unknown rule skipped", "form", o.form.ID, "rule", string(name))
			}
		}
	}
}

func isHint(name model.RuleName) bool {
	switch name {
	case model.HintName, model.HintFurigana, model.HintPostal, model.HintText, model.HintAgree, model.HintPostalAuto:
		return true
	}
	_, custom := name.CustomMessageKey()
	return custom
}

func (o *Orchestrator) emptyState() State {
	state := State{Fields: make(map[string]model.FieldState, len(o.form.Fields))}
	for _, field := range o.form.Fields {
		state.Fields[field.ID] = model.FieldState{}
	}
	o.rescan(&state)
	return state
}

// Form returns the declaration the orchestrator was built from.
func (o *Orchestrator) Form() model.Form {
	return o.form
}

// Config returns the effective engine switches.
func (o *Orchestrator) Config() model.Config {
	return o.config
}

// Messages returns the effective message table.
func (o *Orchestrator) Messages() messages.Table {
	return o.table
}

// State returns a copy of the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.Clone()
}

// Init seeds the state from snapshot, evaluating every field once against
// its current value. Failures on empty fields are counted but not displayed,
// so the returned effects only flag filled fields that fail.
func (o *Orchestrator) Init(snapshot Snapshot) Update {
	o.mu.Lock()
	defer o.mu.Unlock()

	state := State{Fields: make(map[string]model.FieldState, len(o.form.Fields))}
	o.state = state

	var effects []Effect
	for _, field := range o.form.Fields {
		current := snapshot[field.ID].Clone()
		current.HasError = false
		current.Message = ""
		current.Touched = false
		state.Fields[field.ID] = current
	}
	for _, field := range o.form.Fields {
		current := state.Fields[field.ID]
		if field.Kind().IsGroup() || current.Value == "" {
			continue
		}
		outcome, prepared := o.check(field, current.Value)
		if prepared != current.Value {
			effects = append(effects, SetValue{FieldID: field.ID, Value: prepared})
		}
		current.Value = prepared
		o.apply(&current, outcome.Result)
		state.Fields[field.ID] = current
		if current.HasError {
			effects = append(effects, SetError{FieldID: field.ID, HasError: true, Message: current.Message})
		}
	}

	o.rescan(&o.state)
	effects = append(effects, o.gateEffects(o.state)...)
	o.logger.Debug("orchestrator: initialised", "form", o.form.ID, "errors", o.state.Total(), "gate_open", o.state.GateOpen)
	return Update{State: o.state.Clone(), Effects: effects}
}

// Handle processes one event and returns the resulting update. Postal
// lookups requested by the event run after the state lock is released.
func (o *Orchestrator) Handle(ev Event) Update {
	o.mu.Lock()
	run := newCycle(o)
	switch e := ev.(type) {
	case FieldChanged:
		run.fieldChanged(e)
	case GroupChanged:
		run.groupChanged(e)
	case PostalResolved:
		run.postalResolved(e)
	case ErrorReported:
		run.errorReported(e)
	default:
		o.logger.Warn("orchestrator: unsupported event", "type", fmt.Sprintf("%T", ev))
	}
	update := run.finish()
	lookup := run.lookupCode
	o.mu.Unlock()

	if lookup != "" {
		o.requestAddress(lookup)
	}
	return update
}

func (o *Orchestrator) requestAddress(code string) {
	if o.lookup == nil {
		return
	}
	o.logger.Debug("orchestrator: postal lookup", "form", o.form.ID, "code", code)
	o.lookup.LookupPostalCode(code, func(address model.Address) {
		update := o.Handle(PostalResolved{Address: address})
		if o.sink != nil {
			o.sink.Apply(update)
		}
	})
}

func (o *Orchestrator) rescan(state *State) {
	state.Counters = tracker.ScanAll(o.form.Fields, state.Fields)
	state.GateOpen = tracker.ComputeGateOpen(o.config.DisableSubmitOnError, state.Counters.Flags())
}

func (o *Orchestrator) gateEffects(state State) []Effect {
	effects := []Effect{SetSubmitDisabled{Disabled: !state.GateOpen}}
	if o.config.ShowCount {
		effects = append(effects, SetErrorCount{Count: state.Total()})
	}
	return effects
}
