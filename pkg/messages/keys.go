package messages

// Key identifies a message in a Table.
type Key string

const (
	Required             Key = "required"
	RequiredName         Key = "requiredName"
	RequiredFuriganaHira Key = "requiredFuriganaHira"
	RequiredFuriganaKana Key = "requiredFuriganaKana"
	RequiredPostalCode   Key = "requiredPostalCode"
	RequiredPostal       Key = "requiredPostal"
	RequiredTel          Key = "requiredTel"
	RequiredEmail        Key = "requiredEmail"
	RequiredEmailConf    Key = "requiredEmailConf"
	RequiredPassword     Key = "requiredPassword"
	RequiredText         Key = "requiredText"

	Tel                      Key = "tel"
	TelWithHyphens           Key = "telWithHyphens"
	TelWithoutHyphens        Key = "telWithoutHyphens"
	Email                    Key = "email"
	EmailMismatch            Key = "emailMismatch"
	PostalCode               Key = "postalCode"
	PostalCodeWithHyphens    Key = "postalCodeWithHyphens"
	PostalCodeWithoutHyphens Key = "postalCodeWithoutHyphens"
	Number                   Key = "number"
	HalfWidth                Key = "halfWidth"
	Hiragana                 Key = "hiragana"
	Katakana                 Key = "katakana"
	Password                 Key = "password"

	Checkbox Key = "checkbox"
	Radiobox Key = "radiobox"
	Agree    Key = "agree"
)
