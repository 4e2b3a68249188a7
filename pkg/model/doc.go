// Package model defines the typed form declaration and runtime field state
// consumed by the rule catalog, the category tracker and the orchestrator.
// Fields are declared with an ordered list of rule names parsed from markup
// tokens (`required,tel`, `required name`, `email-conf`). Tokens that do not
// name an executable rule (`name`, `furigana`, `postal`, `text`, `agree`,
// `postal-auto`, `emesse1`..`emesse99`) stay in the list as message hints so
// the required-message precedence table can inspect them. Config mirrors the
// runtime switches of the engine; `null` hyphen modes mean "accept either
// format" and decode from JSON, YAML or environment text.
package model
