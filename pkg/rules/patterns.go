package rules

import "regexp"

var (
	telWithHyphens           = regexp.MustCompile(`^0(((\d{1}-\d{4}|\d{2}-\d{3,4}|\d{3}-\d{2,3}|\d{4}-\d{1})-\d{4})|\d{3}-\d{3}-\d{3})$`)
	telWithoutHyphens        = regexp.MustCompile(`^0\d{9,10}$`)
	emailPattern             = regexp.MustCompile(`^([a-zA-Z0-9])+([a-zA-Z0-9._-])*@([a-zA-Z0-9_-])+([a-zA-Z0-9._-]+)+$`)
	postalCodeWithHyphens    = regexp.MustCompile(`^\d{3}-\d{4}$`)
	postalCodeWithoutHyphens = regexp.MustCompile(`^\d{7}$`)
	digitsOnly               = regexp.MustCompile(`^\d+$`)
	halfWidthDigits          = regexp.MustCompile(`^[0-9\-]+$`)
	hiraganaPattern          = regexp.MustCompile(`^[ぁ-んー・　 ]+$`)
	katakanaPattern          = regexp.MustCompile(`^[ァ-ヶー・　 ]+$`)
	passwordCharset          = regexp.MustCompile(`^[a-zA-Z0-9]{8,16}$`)
	passwordLetter           = regexp.MustCompile(`[a-zA-Z]`)
	passwordDigit            = regexp.MustCompile(`[0-9]`)
)
