package model

// Category is the field grouping tracked independently for error aggregation.
type Category string

const (
	CategoryText     Category = "text"
	CategorySelect   Category = "select"
	CategoryCheckbox Category = "checkboxGroup"
	CategoryRadio    Category = "radioGroup"
)

// Categories lists every category in scan order.
var Categories = []Category{CategoryText, CategorySelect, CategoryCheckbox, CategoryRadio}

// IsGroup reports whether the category derives its value from member checked
// states instead of a free-text value.
func (c Category) IsGroup() bool {
	return c == CategoryCheckbox || c == CategoryRadio
}

// AddressPart identifies which component of a resolved postal address a field
// receives when postal autofill runs.
type AddressPart string

const (
	AddressRegionID AddressPart = "regionId"
	AddressRegion   AddressPart = "region"
	AddressLocality AddressPart = "locality"
	AddressStreet   AddressPart = "street"
	AddressExtended AddressPart = "extended"
)

// Address is the record handed back by the postal-autofill collaborator. The
// zero value represents a lookup miss.
type Address struct {
	RegionID string `json:"regionId"`
	Region   string `json:"region"`
	Locality string `json:"locality"`
	Street   string `json:"street"`
	Extended string `json:"extended"`
}

// Part returns the address component mapped to the supplied part.
func (a Address) Part(part AddressPart) string {
	switch part {
	case AddressRegionID:
		return a.RegionID
	case AddressRegion:
		return a.Region
	case AddressLocality:
		return a.Locality
	case AddressStreet:
		return a.Street
	case AddressExtended:
		return a.Extended
	default:
		return ""
	}
}

// IsZero reports whether the address carries no data (lookup miss).
func (a Address) IsZero() bool {
	return a == Address{}
}

// Field declares one validated control. Rules keep their declared order; the
// orchestrator evaluates them top to bottom and stops at the first failure.
type Field struct {
	ID       string      `json:"id" yaml:"id" validate:"required"`
	Category Category    `json:"category,omitempty" yaml:"category,omitempty" validate:"omitempty,oneof=text select checkboxGroup radioGroup"`
	Rules    RuleList    `json:"rules,omitempty" yaml:"rules,omitempty"`
	Members  []string    `json:"members,omitempty" yaml:"members,omitempty"`
	Autofill AddressPart `json:"autofill,omitempty" yaml:"autofill,omitempty" validate:"omitempty,oneof=regionId region locality street extended"`
	Label    string      `json:"label,omitempty" yaml:"label,omitempty"`
}

// Kind returns the declared category, defaulting to free text.
func (f Field) Kind() Category {
	if f.Category == "" {
		return CategoryText
	}
	return f.Category
}

// Required reports whether the field declares the required rule.
func (f Field) Required() bool {
	return f.Rules.Has(RuleRequired)
}

// PostalAuto reports whether the field is an autofill target whose error is
// cleared once a postal code validates.
func (f Field) PostalAuto() bool {
	return f.Autofill != "" || f.Rules.Has(HintPostalAuto)
}

// Pair links an email field to its confirmation field.
type Pair struct {
	Primary string `json:"primary" yaml:"primary" validate:"required"`
	Confirm string `json:"confirm" yaml:"confirm" validate:"required"`
}

// Form is a complete declaration: the ordered fields plus explicit
// relationships. Config and Messages are optional per-form overrides applied
// by loaders; the orchestrator receives them through options.
type Form struct {
	ID       string            `json:"id,omitempty" yaml:"id,omitempty"`
	Fields   []Field           `json:"fields" yaml:"fields" validate:"dive"`
	Pairs    []Pair            `json:"pairs,omitempty" yaml:"pairs,omitempty" validate:"dive"`
	Config   *Config           `json:"config,omitempty" yaml:"config,omitempty"`
	Messages map[string]string `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// Clone returns a copy that shares no slices or maps with f.
func (f Form) Clone() Form {
	out := f
	out.Fields = make([]Field, len(f.Fields))
	for i, field := range f.Fields {
		field.Rules = append(RuleList(nil), field.Rules...)
		field.Members = append([]string(nil), field.Members...)
		out.Fields[i] = field
	}
	out.Pairs = append([]Pair(nil), f.Pairs...)
	if f.Config != nil {
		cfg := *f.Config
		out.Config = &cfg
	}
	if f.Messages != nil {
		out.Messages = make(map[string]string, len(f.Messages))
		for key, value := range f.Messages {
			out.Messages[key] = value
		}
	}
	return out
}

// Field returns the declaration with the supplied id.
func (f Form) Field(id string) (Field, bool) {
	for _, field := range f.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return Field{}, false
}

// FieldsIn returns the fields declared with the supplied category in
// declaration order.
func (f Form) FieldsIn(category Category) []Field {
	var out []Field
	for _, field := range f.Fields {
		if field.Kind() == category {
			out = append(out, field)
		}
	}
	return out
}

// FieldState is the runtime state of one field: its current input plus the
// outcome of its last evaluation.
type FieldState struct {
	Value    string `json:"value,omitempty"`
	Checked  []bool `json:"checked,omitempty"`
	HasError bool   `json:"hasError"`
	Message  string `json:"message,omitempty"`
	Touched  bool   `json:"touched,omitempty"`
}

// AnyChecked reports whether at least one group member is checked.
func (s FieldState) AnyChecked() bool {
	for _, checked := range s.Checked {
		if checked {
			return true
		}
	}
	return false
}

// Clone returns a copy that does not share the Checked slice.
func (s FieldState) Clone() FieldState {
	if s.Checked != nil {
		s.Checked = append([]bool(nil), s.Checked...)
	}
	return s
}
