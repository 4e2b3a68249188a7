package rules

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-formvalidator/pkg/messages"
	"github.com/goliatone/go-formvalidator/pkg/model"
)

func (c *Catalog) registerBuiltins() {
	c.Register(model.RuleRequired, RuleFunc(checkRequired))
	c.Register(model.RuleTel, RuleFunc(checkTel), WithNormalize())
	c.Register(model.RulePostalCode, RuleFunc(checkPostalCode), WithNormalize())
	c.Register(model.RuleEmail, RuleFunc(checkEmail))
	c.Register(model.RuleEmailConf, RuleFunc(checkEmailConf))
	c.Register(model.RuleNumber, RuleFunc(checkNumber))
	c.Register(model.RuleHiragana, patternRule(hiraganaPattern, messages.Hiragana))
	c.Register(model.RuleKatakana, patternRule(katakanaPattern, messages.Katakana))
	c.Register(model.RulePassword, RuleFunc(checkPassword))
}

func checkRequired(value string, env Env) Result {
	if strings.TrimSpace(value) != "" {
		return Pass()
	}
	return requiredResult(env.Field.Rules)
}

// formatVariant describes the hyphenated/plain pattern pair of a format rule
// and the messages reported for each hyphen mode.
type formatVariant struct {
	withHyphens    *regexp.Regexp
	withoutHyphens *regexp.Regexp
	generic        messages.Key
	hyphenated     messages.Key
	plain          messages.Key
}

var (
	telVariant = formatVariant{
		withHyphens:    telWithHyphens,
		withoutHyphens: telWithoutHyphens,
		generic:        messages.Tel,
		hyphenated:     messages.TelWithHyphens,
		plain:          messages.TelWithoutHyphens,
	}
	postalCodeVariant = formatVariant{
		withHyphens:    postalCodeWithHyphens,
		withoutHyphens: postalCodeWithoutHyphens,
		generic:        messages.PostalCode,
		hyphenated:     messages.PostalCodeWithHyphens,
		plain:          messages.PostalCodeWithoutHyphens,
	}
)

func (v formatVariant) check(value string, mode model.HyphenMode) Result {
	if value == "" {
		return Pass()
	}
	if !halfWidthDigits.MatchString(value) {
		return Fail(messages.HalfWidth)
	}

	var ok bool
	switch mode {
	case model.HyphenRequired:
		ok = v.withHyphens.MatchString(value)
	case model.HyphenForbidden:
		ok = v.withoutHyphens.MatchString(value)
	default:
		ok = v.withHyphens.MatchString(value) || v.withoutHyphens.MatchString(value)
	}
	if ok {
		return Pass()
	}

	switch mode {
	case model.HyphenRequired:
		return Fail(v.hyphenated)
	case model.HyphenForbidden:
		return Fail(v.plain)
	default:
		return Fail(v.generic)
	}
}

func checkTel(value string, env Env) Result {
	return telVariant.check(value, env.Config.AllowHyphensInTel)
}

func checkPostalCode(value string, env Env) Result {
	return postalCodeVariant.check(value, env.Config.AllowHyphensInPostalCode)
}

func checkEmail(value string, _ Env) Result {
	if value == "" || emailPattern.MatchString(value) {
		return Pass()
	}
	return Fail(messages.Email)
}

func checkEmailConf(value string, env Env) Result {
	if value == "" {
		return Pass()
	}
	primary, ok := env.Sibling(env.Primary)
	if !ok || primary == value {
		return Pass()
	}
	return Fail(messages.EmailMismatch)
}

func checkNumber(value string, _ Env) Result {
	if value == "" {
		return Pass()
	}
	if !halfWidthDigits.MatchString(value) {
		return Fail(messages.HalfWidth)
	}
	if !digitsOnly.MatchString(value) {
		return Fail(messages.Number)
	}
	return Pass()
}

func checkPassword(value string, _ Env) Result {
	if value == "" {
		return Pass()
	}
	if passwordCharset.MatchString(value) && passwordLetter.MatchString(value) && passwordDigit.MatchString(value) {
		return Pass()
	}
	return Fail(messages.Password)
}

func patternRule(pattern *regexp.Regexp, key messages.Key) Rule {
	return RuleFunc(func(value string, _ Env) Result {
		if value == "" || pattern.MatchString(value) {
			return Pass()
		}
		return Fail(key)
	})
}
