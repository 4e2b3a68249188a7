package rules

import "github.com/goliatone/go-formvalidator/pkg/messages"

// Result is the outcome of one rule check.
type Result struct {
	Valid    bool
	Key      messages.Key
	Fallback messages.Key
}

// Pass is the valid result.
func Pass() Result {
	return Result{Valid: true}
}

// Fail reports an invalid result with the supplied message key.
func Fail(key messages.Key) Result {
	return Result{Key: key}
}

// FailWithFallback reports an invalid result whose key may be missing from
// the message table (custom `emesseN` keys); fallback is shown instead.
func FailWithFallback(key, fallback messages.Key) Result {
	return Result{Key: key, Fallback: fallback}
}

// Message resolves the display text for the result. Valid results have no
// message.
func (r Result) Message(table messages.Table) string {
	if r.Valid {
		return ""
	}
	fallback := r.Fallback
	if fallback == "" {
		fallback = messages.Required
	}
	return table.Resolve(r.Key, fallback)
}
