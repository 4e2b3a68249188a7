package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formvalidator/pkg/declare"
	"github.com/goliatone/go-formvalidator/pkg/model"
	"github.com/goliatone/go-formvalidator/pkg/orchestrator"
)

// MustLoadForms reads every declaration under dir. Testing helpers fail the
// test on error to keep scenario tests concise.
func MustLoadForms(t *testing.T, dir string) *declare.Set {
	t.Helper()

	set, err := LoadForms(dir)
	if err != nil {
		t.Fatalf("load forms: %v", err)
	}
	return set
}

// LoadForms returns the declarations under dir without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadForms(dir string) (*declare.Set, error) {
	if dir == "" {
		return nil, errors.New("testsupport: forms directory is required")
	}
	set, err := declare.LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, fmt.Errorf("testsupport: load forms: %w", err)
	}
	return set, nil
}

// MustForm returns the declaration id from set.
func MustForm(t *testing.T, set *declare.Set, id string) model.Form {
	t.Helper()

	form, ok := set.Form(id)
	if !ok {
		t.Fatalf("form %q not declared (have %v)", id, set.IDs())
	}
	return form
}

// MustOrchestrator builds an orchestrator for the fixture form id in dir.
func MustOrchestrator(t *testing.T, dir, id string, options ...orchestrator.Option) *orchestrator.Orchestrator {
	t.Helper()

	o, err := orchestrator.New(MustForm(t, MustLoadForms(t, dir), id), options...)
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}
	return o
}

// Replay feeds events to o and returns every update in order.
func Replay(o *orchestrator.Orchestrator, events ...orchestrator.Event) []orchestrator.Update {
	updates := make([]orchestrator.Update, 0, len(events))
	for _, event := range events {
		updates = append(updates, o.Handle(event))
	}
	return updates
}

// ErrorEffect returns the SetError effect for id, if any.
func ErrorEffect(update orchestrator.Update, id string) (orchestrator.SetError, bool) {
	for _, effect := range update.Effects {
		if e, ok := effect.(orchestrator.SetError); ok && e.FieldID == id {
			return e, true
		}
	}
	return orchestrator.SetError{}, false
}

// CompareEffects returns a diff string if the effect lists differ. Nil and
// empty lists compare equal.
func CompareEffects(want, got []orchestrator.Effect) string {
	return cmp.Diff(want, got, cmpopts.EquateEmpty())
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got, cmpopts.EquateEmpty())
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// MustReadGolden decodes a JSON golden file into out.
func MustReadGolden(t *testing.T, path string, out any) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("unmarshal golden: %v", err)
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
