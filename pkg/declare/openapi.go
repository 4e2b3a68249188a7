package declare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formvalidator/pkg/model"
)

// ExtensionKey is the OpenAPI extension read on request-body properties and
// on operations.
const ExtensionKey = "x-formvalidate"

var requestMediaTypes = []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"}

// fieldExtension is the object form of the property extension. The string
// form is shorthand for Rules.
type fieldExtension struct {
	Rules    model.RuleList    `json:"rules"`
	Category model.Category    `json:"category"`
	Members  []string          `json:"members"`
	Autofill model.AddressPart `json:"autofill"`
	Label    string            `json:"label"`
	Order    *int              `json:"order"`
}

// operationExtension carries form-level settings on the operation.
type operationExtension struct {
	Config   *model.Config     `json:"config"`
	Messages map[string]string `json:"messages"`
	Pairs    []model.Pair      `json:"pairs"`
}

// FromOpenAPI builds the declaration for operationID from an OpenAPI 3
// document. Request-body properties become fields; properties listed in the
// schema's `required` array get the `required` rule first.
func FromOpenAPI(ctx context.Context, data []byte, operationID string) (model.Form, error) {
	if ctx == nil {
		return model.Form{}, errors.New("declare: context is required")
	}
	if strings.TrimSpace(operationID) == "" {
		return model.Form{}, errors.New("declare: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return model.Form{}, fmt.Errorf("declare: load openapi document: %w", err)
	}

	op := findOperation(doc, operationID)
	if op == nil {
		return model.Form{}, fmt.Errorf("declare: operation %q not found", operationID)
	}

	schema := requestSchema(op.RequestBody)
	if schema == nil {
		return model.Form{}, fmt.Errorf("declare: operation %q has no request body schema", operationID)
	}

	form := model.Form{ID: operationID}
	if raw, ok := op.Extensions[ExtensionKey]; ok {
		var ext operationExtension
		if err := decodeExtension(raw, &ext); err != nil {
			return model.Form{}, fmt.Errorf("declare: operation %q %s: %w", operationID, ExtensionKey, err)
		}
		form.Config = ext.Config
		form.Messages = ext.Messages
		form.Pairs = ext.Pairs
	}

	fields, err := fieldsFromSchema(schema)
	if err != nil {
		return model.Form{}, fmt.Errorf("declare: operation %q: %w", operationID, err)
	}
	form.Fields = fields

	if err := form.Validate(); err != nil {
		return model.Form{}, fmt.Errorf("declare: operation %q: %w", operationID, err)
	}
	return form, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range requestMediaTypes {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

type orderedField struct {
	field model.Field
	order int
	set   bool
}

func fieldsFromSchema(schema *openapi3.Schema) ([]model.Field, error) {
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	var (
		collected []orderedField
		errs      []error
	)
	for name, ref := range schema.Properties {
		if ref == nil || ref.Value == nil {
			continue
		}
		entry, err := fieldFromProperty(name, ref.Value, required[name])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		collected = append(collected, entry)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sort.SliceStable(collected, func(i, j int) bool {
		a, b := collected[i], collected[j]
		if a.set != b.set {
			return a.set
		}
		if a.set && a.order != b.order {
			return a.order < b.order
		}
		return a.field.ID < b.field.ID
	})

	fields := make([]model.Field, len(collected))
	for i, entry := range collected {
		fields[i] = entry.field
	}
	return fields, nil
}

func fieldFromProperty(name string, prop *openapi3.Schema, required bool) (orderedField, error) {
	var ext fieldExtension
	if raw, ok := prop.Extensions[ExtensionKey]; ok {
		if text, isString := extensionString(raw); isString {
			ext.Rules = model.ParseRules(text)
		} else if err := decodeExtension(raw, &ext); err != nil {
			return orderedField{}, fmt.Errorf("property %q %s: %w", name, ExtensionKey, err)
		}
	}

	field := model.Field{
		ID:       name,
		Category: ext.Category,
		Rules:    ext.Rules,
		Members:  ext.Members,
		Autofill: ext.Autofill,
		Label:    ext.Label,
	}
	if field.Label == "" {
		field.Label = prop.Title
	}
	if field.Category == "" {
		field.Category, field.Members = inferCategory(prop, field.Members)
	}
	if required && !field.Rules.Has(model.RuleRequired) {
		field.Rules = append(model.RuleList{model.RuleRequired}, field.Rules...)
	}

	entry := orderedField{field: field}
	if ext.Order != nil {
		entry.order = *ext.Order
		entry.set = true
	}
	return entry, nil
}

// inferCategory maps enumerations onto selects and array enumerations onto
// checkbox groups.
func inferCategory(prop *openapi3.Schema, members []string) (model.Category, []string) {
	switch {
	case prop.Type != nil && prop.Type.Is(openapi3.TypeArray) && prop.Items != nil && prop.Items.Value != nil && len(prop.Items.Value.Enum) > 0:
		if len(members) == 0 {
			members = enumStrings(prop.Items.Value.Enum)
		}
		return model.CategoryCheckbox, members
	case len(prop.Enum) > 0:
		return model.CategorySelect, members
	case prop.Type != nil && prop.Type.Is(openapi3.TypeBoolean):
		if len(members) == 0 {
			members = []string{"true"}
		}
		return model.CategoryCheckbox, members
	default:
		return model.CategoryText, members
	}
}

func enumStrings(values []any) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, fmt.Sprint(value))
	}
	return out
}

func extensionString(raw any) (string, bool) {
	switch value := raw.(type) {
	case string:
		return value, true
	case json.RawMessage:
		var text string
		if err := json.Unmarshal(value, &text); err == nil {
			return text, true
		}
	}
	return "", false
}

func decodeExtension(raw any, target any) error {
	if message, ok := raw.(json.RawMessage); ok {
		return json.Unmarshal(message, target)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}
