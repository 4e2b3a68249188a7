package messages

import "strings"

// DefaultLocale is used when no locale, or an unknown one, is requested.
const DefaultLocale = "ja"

var builtinJA = map[Key]string{
	Required:             "この項目は入力必須です。",
	RequiredName:         "お名前を入力してください。",
	RequiredFuriganaHira: "ふりがなを入力してください。",
	RequiredFuriganaKana: "フリガナを入力してください。",
	RequiredPostalCode:   "郵便番号を入力してください。",
	RequiredPostal:       "住所を入力してください。",
	RequiredTel:          "電話番号を入力してください。",
	RequiredEmail:        "メールアドレスを入力してください。",
	RequiredEmailConf:    "確認用メールアドレスを入力してください。",
	RequiredPassword:     "パスワードを入力してください。",
	RequiredText:         "お問い合わせ内容を入力してください。",

	Tel:                      "電話番号の形式が正しくありません。",
	TelWithHyphens:           "電話番号はハイフン付きの形式で入力してください。",
	TelWithoutHyphens:        "電話番号はハイフンなしの形式で入力してください。",
	Email:                    "メールアドレスの形式が正しくありません。",
	EmailMismatch:            "メールアドレスが一致しません。",
	PostalCode:               "郵便番号の形式が正しくありません。",
	PostalCodeWithHyphens:    "郵便番号はハイフン付きの形式で入力してください。",
	PostalCodeWithoutHyphens: "郵便番号はハイフンなしの形式で入力してください。",
	Number:                   "半角数字で入力してください。",
	HalfWidth:                "半角数字で入力してください。",
	Hiragana:                 "全角ひらがなで入力してください。",
	Katakana:                 "全角カタカナで入力してください。",
	Password:                 "半角英数字をそれぞれ含む8文字以上16文字以下で入力してください。",

	Checkbox: "チェックボックスを選択してください。",
	Radiobox: "ラジオボタンを選択してください。",
	Agree:    "個人情報保護方針の同意にチェックを入れてください。",
}

var builtinEN = map[Key]string{
	Required:             "This field is required.",
	RequiredName:         "Please enter your name.",
	RequiredFuriganaHira: "Please enter the reading in hiragana.",
	RequiredFuriganaKana: "Please enter the reading in katakana.",
	RequiredPostalCode:   "Please enter your postal code.",
	RequiredPostal:       "Please enter your address.",
	RequiredTel:          "Please enter your phone number.",
	RequiredEmail:        "Please enter your email address.",
	RequiredEmailConf:    "Please confirm your email address.",
	RequiredPassword:     "Please enter a password.",
	RequiredText:         "Please enter your message.",

	Tel:                      "The phone number format is invalid.",
	TelWithHyphens:           "Enter the phone number with hyphens.",
	TelWithoutHyphens:        "Enter the phone number without hyphens.",
	Email:                    "The email address format is invalid.",
	EmailMismatch:            "The email addresses do not match.",
	PostalCode:               "The postal code format is invalid.",
	PostalCodeWithHyphens:    "Enter the postal code with a hyphen.",
	PostalCodeWithoutHyphens: "Enter the postal code without a hyphen.",
	Number:                   "Enter half-width digits only.",
	HalfWidth:                "Enter half-width digits only.",
	Hiragana:                 "Enter full-width hiragana only.",
	Katakana:                 "Enter full-width katakana only.",
	Password:                 "Use 8 to 16 half-width letters and digits, including at least one of each.",

	Checkbox: "Please select at least one option.",
	Radiobox: "Please choose an option.",
	Agree:    "Please agree to the privacy policy.",
}

var builtins = map[string]map[Key]string{
	"ja": builtinJA,
	"en": builtinEN,
}

// Locales lists the built-in locales.
func Locales() []string {
	return []string{"en", "ja"}
}

// ResolveLocale maps a requested locale ("en-US", "ja_JP") onto a built-in
// locale, defaulting to DefaultLocale.
func ResolveLocale(locale string) string {
	locale = strings.ToLower(strings.TrimSpace(locale))
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		locale = locale[:idx]
	}
	if _, ok := builtins[locale]; ok {
		return locale
	}
	return DefaultLocale
}
