package model

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidDeclaration wraps struct-level declaration problems.
	ErrInvalidDeclaration = errors.New("model: invalid declaration")
	// ErrDuplicateField is returned when two fields share an id.
	ErrDuplicateField = errors.New("model: duplicate field id")
	// ErrUnknownField is returned when a pair references an undeclared field.
	ErrUnknownField = errors.New("model: unknown field")
	// ErrMissingPair is returned when a confirmation field has no primary
	// email field to compare against.
	ErrMissingPair = errors.New("model: confirmation field has no primary email field")
	// ErrAmbiguousPair is returned when the primary email field cannot be
	// resolved without an explicit pair.
	ErrAmbiguousPair = errors.New("model: ambiguous email pairing")
)

var (
	structValidatorOnce sync.Once
	structValidator     *validator.Validate
)

func declarationValidator() *validator.Validate {
	structValidatorOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
	})
	return structValidator
}

// Validate checks the declaration: struct tags, unique ids and pair
// references. Every problem is reported; the returned error joins them.
func (f Form) Validate() error {
	var errs []error

	if err := declarationValidator().Struct(f); err != nil {
		errs = append(errs, translateValidationErrors(err)...)
	}

	seen := make(map[string]struct{}, len(f.Fields))
	for _, field := range f.Fields {
		if field.ID == "" {
			continue
		}
		if _, ok := seen[field.ID]; ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateField, field.ID))
			continue
		}
		seen[field.ID] = struct{}{}
	}

	for _, pair := range f.Pairs {
		for _, id := range []string{pair.Primary, pair.Confirm} {
			if id == "" {
				continue
			}
			if _, ok := seen[id]; !ok {
				errs = append(errs, fmt.Errorf("%w: pair references %q", ErrUnknownField, id))
			}
		}
	}

	return errors.Join(errs...)
}

// ResolvePairs returns the email/confirmation relationships keyed by the
// confirmation field id. Explicit pairs win; otherwise a single email field
// and any confirmation fields are paired implicitly.
func (f Form) ResolvePairs() (map[string]string, error) {
	pairs := make(map[string]string)
	for _, pair := range f.Pairs {
		pairs[pair.Confirm] = pair.Primary
	}

	var primaries, confirms []string
	for _, field := range f.Fields {
		switch {
		case field.Rules.Has(RuleEmailConf):
			confirms = append(confirms, field.ID)
		case field.Rules.Has(RuleEmail):
			primaries = append(primaries, field.ID)
		}
	}

	var errs []error
	for _, confirm := range confirms {
		if _, ok := pairs[confirm]; ok {
			continue
		}
		switch len(primaries) {
		case 0:
			errs = append(errs, fmt.Errorf("%w: %q", ErrMissingPair, confirm))
		case 1:
			pairs[confirm] = primaries[0]
		default:
			errs = append(errs, fmt.Errorf("%w: %q could pair with %s", ErrAmbiguousPair, confirm, strings.Join(primaries, ", ")))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return pairs, nil
}

func translateValidationErrors(err error) []error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []error{fmt.Errorf("%w: %v", ErrInvalidDeclaration, err)}
	}
	out := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		detail := fe.Tag()
		if param := fe.Param(); param != "" {
			detail += "=" + param
		}
		out = append(out, fmt.Errorf("%w: %s failed %q (value %v)", ErrInvalidDeclaration, fe.Namespace(), detail, fe.Value()))
	}
	return out
}
