// Package tracker recomputes per-category error flags and counts from the
// current field states and derives the submit gate from them.
package tracker

import "github.com/goliatone/go-formvalidator/pkg/model"

// Counter is the scan result for one category.
type Counter struct {
	Flag  bool `json:"flag"`
	Count int  `json:"count"`
}

// Counters holds one Counter per category.
type Counters struct {
	Text     Counter `json:"text"`
	Select   Counter `json:"select"`
	Checkbox Counter `json:"checkbox"`
	Radio    Counter `json:"radio"`
}

// Flags is the aggregator input.
type Flags struct {
	Text     bool
	Select   bool
	Checkbox bool
	Radio    bool
}

// Get returns the counter for category.
func (c Counters) Get(category model.Category) Counter {
	switch category {
	case model.CategorySelect:
		return c.Select
	case model.CategoryCheckbox:
		return c.Checkbox
	case model.CategoryRadio:
		return c.Radio
	default:
		return c.Text
	}
}

// Set replaces the counter for category.
func (c *Counters) Set(category model.Category, counter Counter) {
	switch category {
	case model.CategorySelect:
		c.Select = counter
	case model.CategoryCheckbox:
		c.Checkbox = counter
	case model.CategoryRadio:
		c.Radio = counter
	default:
		c.Text = counter
	}
}

// Flags returns the per-category flags.
func (c Counters) Flags() Flags {
	return Flags{
		Text:     c.Text.Flag,
		Select:   c.Select.Flag,
		Checkbox: c.Checkbox.Flag,
		Radio:    c.Radio.Flag,
	}
}

// Total is the visible counter value: the sum of the four counts.
func (c Counters) Total() int {
	return c.Text.Count + c.Select.Count + c.Checkbox.Count + c.Radio.Count
}

// Erroneous reports whether a single field counts against its category.
//
// Text fields count when required and empty. Selects count when required and
// left on the empty option. Checkbox and radio groups count when required and
// nothing is checked. Any field also counts while it carries an error flag,
// e.g. one reported by the host.
func Erroneous(field model.Field, state model.FieldState) bool {
	switch field.Kind() {
	case model.CategorySelect:
		return (field.Required() && state.Value == "") || state.HasError
	case model.CategoryCheckbox, model.CategoryRadio:
		return (field.Required() && !state.AnyChecked()) || state.HasError
	default:
		return (field.Required() && state.Value == "") || state.HasError
	}
}

// Scan recomputes the counter of one category from scratch.
func Scan(category model.Category, fields []model.Field, states map[string]model.FieldState) Counter {
	var counter Counter
	for _, field := range fields {
		if field.Kind() != category {
			continue
		}
		if Erroneous(field, states[field.ID]) {
			counter.Count++
		}
	}
	counter.Flag = counter.Count > 0
	return counter
}

// ScanAll recomputes every category.
func ScanAll(fields []model.Field, states map[string]model.FieldState) Counters {
	var counters Counters
	for _, category := range model.Categories {
		counters.Set(category, Scan(category, fields, states))
	}
	return counters
}

// ComputeGateOpen reports whether submission is allowed. With disableOnError off
// the gate is always open; otherwise it opens only when no flag is raised.
func ComputeGateOpen(disableOnError bool, flags Flags) bool {
	if !disableOnError {
		return true
	}
	return !flags.Text && !flags.Select && !flags.Checkbox && !flags.Radio
}
