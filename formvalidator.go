// Package formvalidator is the convenience entry point: load declarations,
// then build an orchestrator per form.
//
//	set, err := formvalidator.LoadForms(os.DirFS("forms"))
//	form, _ := set.Form("contact")
//	o, err := formvalidator.New(form, orchestrator.WithLocale("en"))
//	update := o.Init(nil)
//	update = o.Handle(orchestrator.FieldChanged{FieldID: "tel", Value: "090-1234-5678"})
package formvalidator

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formvalidator/pkg/declare"
	"github.com/goliatone/go-formvalidator/pkg/model"
	"github.com/goliatone/go-formvalidator/pkg/orchestrator"
)

// Form aliases model.Form for callers that only import the root package.
type Form = model.Form

// Config aliases model.Config.
type Config = model.Config

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return model.DefaultConfig()
}

// New builds an orchestrator for form.
func New(form Form, options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	return orchestrator.New(form, options...)
}

// LoadForms reads every JSON/YAML declaration file in fsys.
func LoadForms(fsys fs.FS) (*declare.Set, error) {
	return declare.LoadFS(fsys)
}

// FormFromOpenAPI builds a declaration from an OpenAPI operation.
func FormFromOpenAPI(ctx context.Context, data []byte, operationID string) (Form, error) {
	return declare.FromOpenAPI(ctx, data, operationID)
}

// NewFromSet builds an orchestrator for the form with the supplied id.
func NewFromSet(set *declare.Set, id string, options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	form, ok := set.Form(id)
	if !ok {
		return nil, fmt.Errorf("formvalidator: form %q not found", id)
	}
	return orchestrator.New(form, options...)
}
