package orchestrator

import (
	"github.com/goliatone/go-formvalidator/pkg/model"
	"github.com/goliatone/go-formvalidator/pkg/tracker"
)

// Address is the record produced by the postal lookup collaborator.
type Address = model.Address

// Snapshot supplies the initial field states keyed by field id. Missing
// fields start empty.
type Snapshot map[string]model.FieldState

// State is the complete validation state of a form.
type State struct {
	Fields   map[string]model.FieldState `json:"fields"`
	Counters tracker.Counters            `json:"counters"`
	GateOpen bool                        `json:"gateOpen"`
}

// Field returns the state of one field.
func (s State) Field(id string) model.FieldState {
	return s.Fields[id]
}

// Total is the visible counter value.
func (s State) Total() int {
	return s.Counters.Total()
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := State{Counters: s.Counters, GateOpen: s.GateOpen}
	if s.Fields != nil {
		out.Fields = make(map[string]model.FieldState, len(s.Fields))
		for id, field := range s.Fields {
			out.Fields[id] = field.Clone()
		}
	}
	return out
}

// Update is the result of processing one event.
type Update struct {
	State   State
	Effects []Effect
}
