package rules

import (
	"github.com/goliatone/go-formvalidator/pkg/messages"
	"github.com/goliatone/go-formvalidator/pkg/model"
)

// requiredBranch pairs a predicate over the declared rules with the message
// shown when the required check fails.
type requiredBranch struct {
	match func(model.RuleList) bool
	key   messages.Key
}

func declares(names ...model.RuleName) func(model.RuleList) bool {
	return func(list model.RuleList) bool {
		for _, name := range names {
			if !list.Has(name) {
				return false
			}
		}
		return true
	}
}

// requiredTable is evaluated top to bottom; the first match wins.
var requiredTable = []requiredBranch{
	{match: declares(model.HintName), key: messages.RequiredName},
	{match: declares(model.HintFurigana, model.RuleHiragana), key: messages.RequiredFuriganaHira},
	{match: declares(model.HintFurigana, model.RuleKatakana), key: messages.RequiredFuriganaKana},
	{match: declares(model.RulePostalCode), key: messages.RequiredPostalCode},
	{match: declares(model.HintPostal), key: messages.RequiredPostal},
	{match: declares(model.RuleTel), key: messages.RequiredTel},
	{match: declares(model.RuleEmailConf), key: messages.RequiredEmailConf},
	{match: declares(model.RuleEmail), key: messages.RequiredEmail},
	{match: declares(model.RulePassword), key: messages.RequiredPassword},
	{match: declares(model.HintText), key: messages.RequiredText},
}

// RequiredMessageKey picks the message for an empty required text field.
// Custom `emesseN` keys apply only when no built-in branch matches.
func RequiredMessageKey(list model.RuleList) messages.Key {
	return requiredResult(list).Key
}

func requiredResult(list model.RuleList) Result {
	for _, branch := range requiredTable {
		if branch.match(list) {
			return Fail(branch.key)
		}
	}
	if key, ok := list.CustomMessageKey(); ok {
		return FailWithFallback(messages.Key(key), messages.Required)
	}
	return Fail(messages.Required)
}

// GroupResult returns the failure reported for a required select, checkbox
// group or radio group with nothing selected.
func GroupResult(category model.Category, list model.RuleList) Result {
	switch category {
	case model.CategoryCheckbox:
		if list.Has(model.HintAgree) {
			return Fail(messages.Agree)
		}
		if key, ok := list.CustomMessageKey(); ok {
			return FailWithFallback(messages.Key(key), messages.Checkbox)
		}
		return Fail(messages.Checkbox)
	case model.CategoryRadio:
		if key, ok := list.CustomMessageKey(); ok {
			return FailWithFallback(messages.Key(key), messages.Radiobox)
		}
		return Fail(messages.Radiobox)
	default:
		return requiredResult(list)
	}
}
