package orchestrator_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalidator/pkg/model"
	"github.com/goliatone/go-formvalidator/pkg/orchestrator"
)

func addressForm() model.Form {
	return model.Form{
		ID:     "address",
		Config: &model.Config{DisableSubmitOnError: true, EnablePostalAutofill: true},
		Fields: []model.Field{
			{ID: "zip", Rules: model.ParseRules("required postal-code")},
			{ID: "region", Rules: model.ParseRules("required postal"), Autofill: model.AddressRegion},
			{ID: "city", Rules: model.ParseRules("required postal postal-auto"), Autofill: model.AddressLocality},
			{ID: "street", Rules: model.ParseRules("postal-auto"), Autofill: model.AddressStreet},
		},
	}
}

func TestPostal_AcceptedCodeClearsFilledTargetsAndResolves(t *testing.T) {
	var codes []string
	lookup := orchestrator.PostalLookupFunc(func(code string, onResolved func(model.Address)) {
		codes = append(codes, code)
		onResolved(model.Address{RegionID: "13", Region: "東京都", Locality: "千代田区", Street: "千代田"})
	})
	var delivered []orchestrator.Update
	sink := orchestrator.EffectSinkFunc(func(update orchestrator.Update) {
		delivered = append(delivered, update)
	})

	o := mustNew(t, addressForm(), orchestrator.WithPostalLookup(lookup), orchestrator.WithEffectSink(sink))
	o.Init(nil)
	o.Handle(orchestrator.ErrorReported{FieldID: "city", Message: "stale"})
	o.Handle(orchestrator.FieldChanged{FieldID: "city", Value: "old"})
	o.Handle(orchestrator.ErrorReported{FieldID: "city", Message: "stale"})

	update := o.Handle(orchestrator.FieldChanged{FieldID: "zip", Value: "１００ー０００１"})
	if diff := cmp.Diff([]string{"100-0001"}, codes); diff != "" {
		t.Fatalf("lookup codes mismatch (-want +got):\n%s", diff)
	}
	city, ok := errorEffect(update, "city")
	if !ok || city.HasError {
		t.Fatalf("expected filled postal-auto field cleared, got %#v", update.Effects)
	}

	if len(delivered) != 1 {
		t.Fatalf("expected one delivered update, got %d", len(delivered))
	}
	resolved := delivered[0]
	wantValues := []orchestrator.Effect{
		orchestrator.SetValue{FieldID: "region", Value: "東京都"},
		orchestrator.SetValue{FieldID: "city", Value: "千代田区"},
		orchestrator.SetValue{FieldID: "street", Value: "千代田"},
	}
	if diff := cmp.Diff(wantValues, resolved.Effects[:3]); diff != "" {
		t.Fatalf("autofill effects mismatch (-want +got):\n%s", diff)
	}
	if !resolved.State.GateOpen {
		t.Fatalf("expected gate open after autofill, got %#v", resolved.State.Counters)
	}
	if got := o.State().Field("region").Value; got != "東京都" {
		t.Fatalf("expected region filled, got %q", got)
	}
}

func TestPostal_NoLookupWhenAutofillDisabledOrInvalid(t *testing.T) {
	calls := 0
	lookup := orchestrator.PostalLookupFunc(func(string, func(model.Address)) { calls++ })

	form := addressForm()
	form.Config = nil
	o := mustNew(t, form, orchestrator.WithPostalLookup(lookup))
	o.Init(nil)
	o.Handle(orchestrator.FieldChanged{FieldID: "zip", Value: "1000001"})
	if calls != 0 {
		t.Fatalf("expected no lookup with autofill disabled, got %d", calls)
	}

	o = mustNew(t, addressForm(), orchestrator.WithPostalLookup(lookup))
	o.Init(nil)
	o.Handle(orchestrator.FieldChanged{FieldID: "zip", Value: "12"})
	if calls != 0 {
		t.Fatalf("expected no lookup for invalid code, got %d", calls)
	}
}

func TestPostal_MissLeavesFieldsUntouched(t *testing.T) {
	o := mustNew(t, addressForm())
	o.Init(orchestrator.Snapshot{"city": {Value: "old"}})
	update := o.Handle(orchestrator.PostalResolved{})
	if got := update.State.Field("city").Value; got != "old" {
		t.Fatalf("expected city untouched, got %q", got)
	}
	for _, effect := range update.Effects {
		if _, ok := effect.(orchestrator.SetValue); ok {
			t.Fatalf("miss should not write values: %#v", update.Effects)
		}
	}
}
