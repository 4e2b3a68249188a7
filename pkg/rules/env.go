package rules

import "github.com/goliatone/go-formvalidator/pkg/model"

// Env carries everything a rule may consult besides the value itself.
type Env struct {
	Config model.Config
	Field  model.Field
	// Primary is the email field paired with a confirmation field.
	Primary string
	// Values resolves sibling field values by id.
	Values func(id string) (string, bool)
}

// Sibling returns the current value of another field.
func (e Env) Sibling(id string) (string, bool) {
	if e.Values == nil || id == "" {
		return "", false
	}
	return e.Values(id)
}
