package orchestrator

import (
	"github.com/goliatone/go-formvalidator/pkg/messages"
	"github.com/goliatone/go-formvalidator/pkg/model"
	"github.com/goliatone/go-formvalidator/pkg/rules"
)

// check runs the field's rule list against value and returns the outcome and
// the value the rules saw.
func (o *Orchestrator) check(field model.Field, value string) (rules.Outcome, string) {
	switch field.Kind() {
	case model.CategorySelect:
		if field.Required() && value == "" {
			return rules.Outcome{Result: rules.GroupResult(model.CategorySelect, field.Rules), FailedAt: model.RuleRequired}, value
		}
		return rules.Outcome{Result: rules.Pass()}, value
	case model.CategoryCheckbox, model.CategoryRadio:
		return rules.Outcome{Result: rules.Pass()}, value
	}

	prepared := o.catalog.Prepare(field.Rules, value)
	env := rules.Env{
		Config:  o.config,
		Field:   field,
		Primary: o.primaries[field.ID],
		Values:  o.value,
	}
	return o.catalog.Evaluate(field.Rules, prepared, env), prepared
}

func (o *Orchestrator) checkGroup(field model.Field, checked []bool) rules.Result {
	state := model.FieldState{Checked: checked}
	if field.Required() && !state.AnyChecked() {
		return rules.GroupResult(field.Kind(), field.Rules)
	}
	return rules.Pass()
}

// value resolves sibling values for cross-field rules. Callers hold o.mu.
func (o *Orchestrator) value(id string) (string, bool) {
	state, ok := o.state.Fields[id]
	if !ok {
		return "", false
	}
	return state.Value, true
}

func (o *Orchestrator) apply(current *model.FieldState, result rules.Result) {
	current.HasError = !result.Valid
	current.Message = result.Message(o.table)
}

// cycle accumulates the changes of one Handle call.
type cycle struct {
	o          *Orchestrator
	before     map[string]model.FieldState
	trigger    string
	values     []Effect
	lookupCode string
}

func newCycle(o *Orchestrator) *cycle {
	before := make(map[string]model.FieldState, len(o.state.Fields))
	for id, state := range o.state.Fields {
		before[id] = state
	}
	return &cycle{o: o, before: before}
}

func (c *cycle) field(id string) (model.Field, bool) {
	field, ok := c.o.form.Field(id)
	if !ok {
		c.o.logger.Warn("orchestrator: event for undeclared field", "form", c.o.form.ID, "field", id)
	}
	return field, ok
}

func (c *cycle) fieldChanged(e FieldChanged) {
	field, ok := c.field(e.FieldID)
	if !ok {
		return
	}
	if field.Kind().IsGroup() {
		c.o.logger.Warn("orchestrator: value change for group field", "form", c.o.form.ID, "field", field.ID)
		return
	}
	c.trigger = field.ID

	current := c.o.state.Fields[field.ID]
	current.Touched = true
	current.Value = e.Value
	c.o.state.Fields[field.ID] = current

	outcome := c.evaluate(field, e.Value)
	if field.Kind() != model.CategoryText {
		return
	}
	passed := outcome.Valid
	// An empty or required-failed value skips the pair comparison.
	filled := c.o.state.Fields[field.ID].Value != "" && outcome.FailedAt != model.RuleRequired

	if field.Rules.Has(model.RuleEmail) && filled {
		c.recheckConfirms(field.ID)
	}
	if _, ok := c.o.primaries[field.ID]; ok && filled {
		c.checkPairedConfirm(field)
	}
	if field.Rules.Has(model.RuleEmailConf) && passed {
		c.clearPrimaryMismatch(field.ID)
	}
	if field.Rules.Has(model.RulePostalCode) && passed {
		c.postalCodeAccepted(c.o.state.Fields[field.ID].Value)
	}
}

// evaluate runs the rules for field against raw, stores the result and
// returns the outcome.
func (c *cycle) evaluate(field model.Field, raw string) rules.Outcome {
	outcome, prepared := c.o.check(field, raw)
	current := c.o.state.Fields[field.ID]
	if prepared != raw {
		c.values = append(c.values, SetValue{FieldID: field.ID, Value: prepared})
	}
	current.Value = prepared
	c.o.apply(&current, outcome.Result)
	c.o.state.Fields[field.ID] = current
	return outcome
}

func (c *cycle) recheckConfirms(primaryID string) {
	for _, confirmID := range c.o.confirms[primaryID] {
		confirm, ok := c.o.form.Field(confirmID)
		if !ok {
			continue
		}
		current := c.o.state.Fields[confirmID]
		if current.Value == "" {
			continue
		}
		if c.evaluate(confirm, current.Value).Valid && !confirm.Rules.Has(model.RuleEmailConf) {
			c.compareWithPrimary(confirmID, primaryID)
		}
	}
}

// compareWithPrimary covers explicit pairs whose confirmation field does not
// declare the emailConf rule itself.
func (c *cycle) compareWithPrimary(confirmID, primaryID string) {
	confirm := c.o.state.Fields[confirmID]
	if confirm.Value == c.o.state.Fields[primaryID].Value {
		return
	}
	c.o.apply(&confirm, rules.Fail(messages.EmailMismatch))
	c.o.state.Fields[confirmID] = confirm
}

// checkPairedConfirm compares an explicitly paired confirmation that does not
// declare the emailConf rule after its own rules passed.
func (c *cycle) checkPairedConfirm(confirm model.Field) {
	if confirm.Rules.Has(model.RuleEmailConf) || c.o.state.Fields[confirm.ID].HasError {
		return
	}
	c.compareWithPrimary(confirm.ID, c.o.primaries[confirm.ID])
}

func (c *cycle) clearPrimaryMismatch(confirmID string) {
	primaryID := c.o.primaries[confirmID]
	primary, ok := c.o.form.Field(primaryID)
	if !ok {
		return
	}
	current := c.o.state.Fields[primaryID]
	if !current.HasError || current.Message != c.o.table.Message(messages.EmailMismatch) {
		return
	}
	c.evaluate(primary, current.Value)
}

func (c *cycle) postalCodeAccepted(code string) {
	if !c.o.config.EnablePostalAutofill || code == "" {
		return
	}
	for _, field := range c.o.form.Fields {
		if !field.PostalAuto() {
			continue
		}
		current := c.o.state.Fields[field.ID]
		if current.Value == "" || !current.HasError {
			continue
		}
		current.HasError = false
		current.Message = ""
		c.o.state.Fields[field.ID] = current
	}
	if c.o.lookup != nil {
		c.lookupCode = code
	}
}

func (c *cycle) groupChanged(e GroupChanged) {
	field, ok := c.field(e.FieldID)
	if !ok {
		return
	}
	if !field.Kind().IsGroup() {
		c.o.logger.Warn("orchestrator: checked change for non-group field", "form", c.o.form.ID, "field", field.ID)
		return
	}
	c.trigger = field.ID

	current := c.o.state.Fields[field.ID]
	current.Touched = true
	current.Checked = append([]bool(nil), e.Checked...)
	c.o.apply(&current, c.o.checkGroup(field, current.Checked))
	c.o.state.Fields[field.ID] = current
}

func (c *cycle) postalResolved(e PostalResolved) {
	if e.Address.IsZero() {
		c.o.logger.Debug("orchestrator: postal lookup miss", "form", c.o.form.ID)
		return
	}
	for _, field := range c.o.form.Fields {
		if field.Autofill == "" {
			continue
		}
		value := e.Address.Part(field.Autofill)
		current := c.o.state.Fields[field.ID]
		current.Value = value
		c.o.state.Fields[field.ID] = current
		c.values = append(c.values, SetValue{FieldID: field.ID, Value: value})
		if value != "" {
			c.evaluate(field, value)
		}
	}
}

func (c *cycle) errorReported(e ErrorReported) {
	if _, ok := c.field(e.FieldID); !ok {
		return
	}
	c.trigger = e.FieldID
	current := c.o.state.Fields[e.FieldID]
	current.HasError = e.Message != ""
	current.Message = e.Message
	c.o.state.Fields[e.FieldID] = current
}

// finish rescans every category, recomputes the gate and collects effects.
func (c *cycle) finish() Update {
	c.o.rescan(&c.o.state)

	effects := append([]Effect(nil), c.values...)
	for _, field := range c.o.form.Fields {
		after := c.o.state.Fields[field.ID]
		before := c.before[field.ID]
		if field.ID != c.trigger && before.HasError == after.HasError && before.Message == after.Message {
			continue
		}
		effects = append(effects, SetError{FieldID: field.ID, HasError: after.HasError, Message: after.Message})
	}
	effects = append(effects, c.o.gateEffects(c.o.state)...)
	return Update{State: c.o.state.Clone(), Effects: effects}
}
