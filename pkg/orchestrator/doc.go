// Package orchestrator runs the evaluation cycle for one form: normalize the
// changed value, run its rule list with short-circuit semantics, update the
// field state, rescan every category and recompute the submit gate.
//
// The orchestrator owns an explicit State. Each Handle call processes one
// Event to completion under a mutex and returns the new State together with
// the Effects the boundary layer should apply (error text, rewritten values,
// submit control availability, visible counter). No UI framework is involved.
//
// Cross-field behaviour is handled here rather than in the rules: an email
// change re-checks its non-empty confirmation field, and a valid postal code
// clears errors on filled autofill targets and asks the PostalLookup
// collaborator for an address. The lookup callback re-enters Handle with a
// PostalResolved event and the resulting Update is delivered to the
// configured EffectSink.
package orchestrator
