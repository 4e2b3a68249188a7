package orchestrator

// Effect is an instruction for the boundary layer.
type Effect interface {
	effect()
}

// SetError updates the error display of a field. HasError false clears it.
type SetError struct {
	FieldID  string
	HasError bool
	Message  string
}

// SetValue rewrites the displayed value of a field (normalized input or an
// autofilled address part).
type SetValue struct {
	FieldID string
	Value   string
}

// SetSubmitDisabled toggles the submit control.
type SetSubmitDisabled struct {
	Disabled bool
}

// SetErrorCount updates the visible error counter. Only emitted when the
// counter is enabled.
type SetErrorCount struct {
	Count int
}

func (SetError) effect()          {}
func (SetValue) effect()          {}
func (SetSubmitDisabled) effect() {}
func (SetErrorCount) effect()     {}

// EffectSink receives updates produced outside a direct Handle call, namely
// the ones triggered by postal lookup callbacks.
type EffectSink interface {
	Apply(Update)
}

// EffectSinkFunc adapts a function into an EffectSink.
type EffectSinkFunc func(Update)

// Apply calls the wrapped function when non-nil.
func (fn EffectSinkFunc) Apply(update Update) {
	if fn == nil {
		return
	}
	fn(update)
}
