package orchestrator_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalidator/pkg/messages"
	"github.com/goliatone/go-formvalidator/pkg/model"
	"github.com/goliatone/go-formvalidator/pkg/orchestrator"
)

func contactForm() model.Form {
	return model.Form{
		ID: "contact",
		Fields: []model.Field{
			{ID: "name", Rules: model.ParseRules("required name")},
			{ID: "tel", Rules: model.ParseRules("required tel")},
			{ID: "email", Rules: model.ParseRules("required email")},
			{ID: "email_conf", Rules: model.ParseRules("required email-conf")},
			{ID: "note"},
			{ID: "pref", Category: model.CategorySelect, Rules: model.ParseRules("required")},
			{ID: "topics", Category: model.CategoryCheckbox, Rules: model.ParseRules("required"), Members: []string{"a", "b"}},
			{ID: "plan", Category: model.CategoryRadio, Rules: model.ParseRules("required"), Members: []string{"x", "y"}},
		},
	}
}

func mustNew(t *testing.T, form model.Form, options ...orchestrator.Option) *orchestrator.Orchestrator {
	t.Helper()
	o, err := orchestrator.New(form, options...)
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}
	return o
}

func errorEffect(update orchestrator.Update, id string) (orchestrator.SetError, bool) {
	for _, effect := range update.Effects {
		if e, ok := effect.(orchestrator.SetError); ok && e.FieldID == id {
			return e, true
		}
	}
	return orchestrator.SetError{}, false
}

func submitDisabled(t *testing.T, update orchestrator.Update) bool {
	t.Helper()
	for _, effect := range update.Effects {
		if e, ok := effect.(orchestrator.SetSubmitDisabled); ok {
			return e.Disabled
		}
	}
	t.Fatalf("update carries no submit effect: %#v", update.Effects)
	return false
}

func TestNew_ReportsConfigurationErrors(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{ID: "conf", Rules: model.ParseRules("email-conf")},
		{ID: "conf", Rules: model.ParseRules("required")},
	}}
	_, err := orchestrator.New(form)
	if !errors.Is(err, model.ErrDuplicateField) {
		t.Fatalf("expected duplicate field error, got %v", err)
	}

	form.Fields = form.Fields[:1]
	if _, err := orchestrator.New(form); !errors.Is(err, model.ErrMissingPair) {
		t.Fatalf("expected missing pair error, got %v", err)
	}
}

func TestInit_CountsPristineFieldsWithoutFlaggingThem(t *testing.T) {
	o := mustNew(t, contactForm())
	update := o.Init(orchestrator.Snapshot{
		"tel":  {Value: "abc"},
		"note": {Value: "hello"},
	})

	if _, ok := errorEffect(update, "name"); ok {
		t.Fatalf("empty required field should not be flagged at init")
	}
	tel, ok := errorEffect(update, "tel")
	if !ok || !tel.HasError || tel.Message != messages.Defaults().Message(messages.HalfWidth) {
		t.Fatalf("expected tel halfWidth error, got %#v", tel)
	}
	if !submitDisabled(t, update) {
		t.Fatalf("expected submit disabled")
	}

	// name, tel, email, email_conf required; pref; topics; plan.
	if got := update.State.Counters.Text.Count; got != 4 {
		t.Fatalf("expected 4 text errors, got %d", got)
	}
	if got := update.State.Total(); got != 7 {
		t.Fatalf("expected total 7, got %d", got)
	}
	if update.State.Field("name").HasError {
		t.Fatalf("pristine field should stay clean")
	}
}

func TestHandle_EmailConfirmationMismatch(t *testing.T) {
	o := mustNew(t, contactForm())
	o.Init(nil)

	o.Handle(orchestrator.FieldChanged{FieldID: "email", Value: "a@b.com"})
	update := o.Handle(orchestrator.FieldChanged{FieldID: "email_conf", Value: "a@b.co"})
	conf, ok := errorEffect(update, "email_conf")
	if !ok || !conf.HasError || conf.Message != messages.Defaults().Message(messages.EmailMismatch) {
		t.Fatalf("expected email mismatch, got %#v", conf)
	}

	update = o.Handle(orchestrator.FieldChanged{FieldID: "email_conf", Value: "a@b.com"})
	if conf, _ := errorEffect(update, "email_conf"); conf.HasError {
		t.Fatalf("expected confirmation cleared, got %#v", conf)
	}
	for _, id := range []string{"email", "email_conf"} {
		if state := update.State.Field(id); state.HasError {
			t.Fatalf("expected %s clean, got %#v", id, state)
		}
	}
}

func TestHandle_PrimaryChangeRechecksConfirmation(t *testing.T) {
	o := mustNew(t, contactForm())
	o.Init(orchestrator.Snapshot{"email": {Value: "a@b.com"}, "email_conf": {Value: "a@b.com"}})

	update := o.Handle(orchestrator.FieldChanged{FieldID: "email", Value: "x@b.com"})
	conf, ok := errorEffect(update, "email_conf")
	if !ok || !conf.HasError {
		t.Fatalf("expected confirmation flagged by primary change, got %#v", update.Effects)
	}

	update = o.Handle(orchestrator.FieldChanged{FieldID: "email", Value: "a@b.com"})
	if conf, ok := errorEffect(update, "email_conf"); !ok || conf.HasError {
		t.Fatalf("expected confirmation cleared by primary change, got %#v", update.Effects)
	}
}

func TestHandle_CheckboxGroupAnyMember(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{ID: "topics", Category: model.CategoryCheckbox, Rules: model.ParseRules("required"), Members: []string{"a", "b"}},
	}}
	o := mustNew(t, form)
	o.Init(nil)

	update := o.Handle(orchestrator.GroupChanged{FieldID: "topics", Checked: []bool{false, false}})
	group, ok := errorEffect(update, "topics")
	if !ok || group.Message != messages.Defaults().Message(messages.Checkbox) {
		t.Fatalf("expected checkbox error, got %#v", group)
	}
	if !update.State.Counters.Checkbox.Flag || !submitDisabled(t, update) {
		t.Fatalf("expected checkbox flag and closed gate, got %#v", update.State)
	}

	for _, checked := range [][]bool{{true, false}, {false, true}} {
		update = o.Handle(orchestrator.GroupChanged{FieldID: "topics", Checked: checked})
		if update.State.Counters.Checkbox.Flag || submitDisabled(t, update) {
			t.Fatalf("checking %v should clear the group", checked)
		}
		o.Handle(orchestrator.GroupChanged{FieldID: "topics", Checked: []bool{false, false}})
	}
}

func TestHandle_RadioErrorMarksRadioGroup(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{ID: "topics", Category: model.CategoryCheckbox, Members: []string{"a"}},
		{ID: "plan", Category: model.CategoryRadio, Rules: model.ParseRules("required emesse4"), Members: []string{"x", "y"}},
	}}
	o := mustNew(t, form, orchestrator.WithMessages(map[string]string{"emesse4": "Pick a plan"}))
	o.Init(nil)

	update := o.Handle(orchestrator.GroupChanged{FieldID: "plan", Checked: []bool{false, false}})
	want := []orchestrator.Effect{
		orchestrator.SetError{FieldID: "plan", HasError: true, Message: "Pick a plan"},
		orchestrator.SetSubmitDisabled{Disabled: true},
	}
	if diff := cmp.Diff(want, update.Effects); diff != "" {
		t.Fatalf("effects mismatch (-want +got):\n%s", diff)
	}
}

func TestHandle_IdempotentReevaluation(t *testing.T) {
	o := mustNew(t, contactForm())
	o.Init(nil)

	first := o.Handle(orchestrator.FieldChanged{FieldID: "tel", Value: "12-34"})
	second := o.Handle(orchestrator.FieldChanged{FieldID: "tel", Value: "12-34"})
	if diff := cmp.Diff(first.State, second.State); diff != "" {
		t.Fatalf("state drifted (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.Effects, second.Effects); diff != "" {
		t.Fatalf("effects drifted (-first +second):\n%s", diff)
	}
}

func TestHandle_ReportedErrorCountedByLaterScans(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{ID: "note"},
		{ID: "name", Rules: model.ParseRules("required")},
	}}
	o := mustNew(t, form, orchestrator.WithConfig(model.Config{DisableSubmitOnError: true, ShowCount: true}))
	o.Init(orchestrator.Snapshot{"name": {Value: "Taro"}})

	update := o.Handle(orchestrator.ErrorReported{FieldID: "note", Message: "rejected by server"})
	if !update.State.Counters.Text.Flag || update.State.Total() != 1 {
		t.Fatalf("expected reported error counted, got %#v", update.State.Counters)
	}

	update = o.Handle(orchestrator.FieldChanged{FieldID: "name", Value: "Hanako"})
	if update.State.Counters.Text.Count != 1 || !submitDisabled(t, update) {
		t.Fatalf("expected forced error to survive other events, got %#v", update.State.Counters)
	}
	var count *orchestrator.SetErrorCount
	for _, effect := range update.Effects {
		if e, ok := effect.(orchestrator.SetErrorCount); ok {
			count = &e
		}
	}
	if count == nil || count.Count != 1 {
		t.Fatalf("expected visible count 1, got %#v", update.Effects)
	}

	update = o.Handle(orchestrator.ErrorReported{FieldID: "note"})
	if update.State.Counters.Text.Flag || submitDisabled(t, update) {
		t.Fatalf("expected cleared error to open the gate, got %#v", update.State)
	}
}

func TestHandle_GateAlwaysOpenWhenDisablingIsOff(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.DisableSubmitOnError = false
	o := mustNew(t, contactForm(), orchestrator.WithConfig(cfg))
	update := o.Init(nil)
	if submitDisabled(t, update) || !update.State.GateOpen {
		t.Fatalf("expected open gate")
	}
	if update.State.Total() == 0 {
		t.Fatalf("counts are still tracked with the gate open")
	}
}

func TestHandle_NormalizedValueIsWrittenBack(t *testing.T) {
	o := mustNew(t, contactForm())
	o.Init(nil)

	update := o.Handle(orchestrator.FieldChanged{FieldID: "tel", Value: "０９０ー１２３４ー５６７８"})
	if diff := cmp.Diff(orchestrator.SetValue{FieldID: "tel", Value: "090-1234-5678"}, update.Effects[0]); diff != "" {
		t.Fatalf("value effect mismatch (-want +got):\n%s", diff)
	}
	if state := update.State.Field("tel"); state.HasError || state.Value != "090-1234-5678" {
		t.Fatalf("unexpected tel state %#v", state)
	}
}

func TestHandle_UndeclaredFieldIsIgnored(t *testing.T) {
	o := mustNew(t, contactForm())
	before := o.Init(nil)
	update := o.Handle(orchestrator.FieldChanged{FieldID: "missing", Value: "x"})
	if diff := cmp.Diff(before.State, update.State); diff != "" {
		t.Fatalf("state changed (-want +got):\n%s", diff)
	}
}

func TestHandle_ClearedPrimaryLeavesConfirmationAlone(t *testing.T) {
	o := mustNew(t, contactForm())
	before := o.Init(orchestrator.Snapshot{"email": {Value: "a@b.com"}, "email_conf": {Value: "a@b.com"}})

	update := o.Handle(orchestrator.FieldChanged{FieldID: "email", Value: ""})
	if state := update.State.Field("email_conf"); state.HasError {
		t.Fatalf("expected confirmation untouched, got %#v", state)
	}
	if _, ok := errorEffect(update, "email_conf"); ok {
		t.Fatalf("expected no confirmation effect, got %#v", update.Effects)
	}
	if got, want := update.State.Counters.Text.Count, before.State.Counters.Text.Count+1; got != want {
		t.Fatalf("expected text count %d, got %d", want, got)
	}

	update = o.Handle(orchestrator.FieldChanged{FieldID: "email", Value: "a@b"})
	if conf, ok := errorEffect(update, "email_conf"); !ok || !conf.HasError {
		t.Fatalf("expected a filled primary to recheck the confirmation, got %#v", update.Effects)
	}
}

func TestHandle_ExplicitPairWithoutConfirmationRule(t *testing.T) {
	form := model.Form{
		Fields: []model.Field{
			{ID: "email", Rules: model.ParseRules("required email")},
			{ID: "backup", Rules: model.ParseRules("required")},
		},
		Pairs: []model.Pair{{Primary: "email", Confirm: "backup"}},
	}
	o := mustNew(t, form)
	o.Init(orchestrator.Snapshot{"email": {Value: "a@b.com"}})

	update := o.Handle(orchestrator.FieldChanged{FieldID: "backup", Value: "x@b.com"})
	conf, ok := errorEffect(update, "backup")
	if !ok || !conf.HasError || conf.Message != messages.Defaults().Message(messages.EmailMismatch) {
		t.Fatalf("expected mismatch on confirmation change, got %#v", conf)
	}

	update = o.Handle(orchestrator.FieldChanged{FieldID: "backup", Value: "a@b.com"})
	if conf, ok := errorEffect(update, "backup"); !ok || conf.HasError {
		t.Fatalf("expected matching confirmation to clear, got %#v", conf)
	}
}

func TestHandle_ReportedErrorOnGroupCounts(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{ID: "topics", Category: model.CategoryCheckbox, Rules: model.ParseRules("required"), Members: []string{"a", "b"}},
		{ID: "pref", Category: model.CategorySelect},
	}}
	o := mustNew(t, form)
	o.Init(orchestrator.Snapshot{"topics": {Checked: []bool{true, false}}, "pref": {Value: "tokyo"}})

	update := o.Handle(orchestrator.ErrorReported{FieldID: "topics", Message: "server says no"})
	if got := update.State.Counters.Checkbox; !got.Flag || got.Count != 1 {
		t.Fatalf("expected reported group error counted, got %+v", got)
	}
	if !submitDisabled(t, update) {
		t.Fatalf("expected closed gate")
	}

	update = o.Handle(orchestrator.ErrorReported{FieldID: "pref", Message: "unavailable"})
	if got := update.State.Counters.Select; !got.Flag || got.Count != 1 {
		t.Fatalf("expected reported select error counted, got %+v", got)
	}

	o.Handle(orchestrator.FieldChanged{FieldID: "pref", Value: "osaka"})
	update = o.Handle(orchestrator.GroupChanged{FieldID: "topics", Checked: []bool{false, true}})
	if update.State.Total() != 0 || submitDisabled(t, update) {
		t.Fatalf("expected valid changes to clear reported errors, got %#v", update.State)
	}
}
