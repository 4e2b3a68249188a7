// Package rules implements the rule catalog: named, stateless predicates over
// a field's current value paired with the message key reported on failure.
//
// A Catalog maps rule names to rules. Evaluate walks a field's declared rule
// list in order and stops at the first failing rule; later rules are not run.
// Names without a registered rule (message hints such as `name` or `agree`,
// or simply unknown tokens) are skipped. Rules that opt into normalization
// (`tel`, `postalCode`) have their input folded to half-width first, see
// Catalog.Prepare.
//
// The message shown when `required` fails depends on the other names the
// field declares; RequiredMessageKey evaluates that precedence table top to
// bottom.
package rules
