package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-formvalidator/pkg/model"
	"github.com/goliatone/go-formvalidator/pkg/orchestrator"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	selectIdx    []int
	multiIdx     [][]int
	infoMessages []string
	inputPos     int
	passPos      int
	selectPos    int
	multiPos     int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newTestSession(t *testing.T, driver *stubDriver, form model.Form) *session {
	t.Helper()
	sess := newSession(driver)
	orch, err := orchestrator.New(form, orchestrator.WithLocale("en"), orchestrator.WithEffectSink(sess))
	if err != nil {
		t.Fatalf("new orchestrator: %v", err)
	}
	sess.orch = orch
	return sess
}

func TestSession_RetriesUntilValid(t *testing.T) {
	form := model.Form{Fields: []model.Field{
		{ID: "name", Rules: model.ParseRules("required name")},
		{ID: "tel", Rules: model.ParseRules("required tel")},
		{ID: "pref", Category: model.CategorySelect, Rules: model.ParseRules("required"), Members: []string{"tokyo", "osaka"}},
		{ID: "plan", Category: model.CategoryRadio, Rules: model.ParseRules("required"), Members: []string{"free", "pro"}},
		{ID: "topics", Category: model.CategoryCheckbox, Rules: model.ParseRules("required"), Members: []string{"news", "events"}},
		{ID: "secret", Rules: model.ParseRules("required password")},
	}}
	driver := &stubDriver{
		inputs:    []string{"", "Taro", "abc", "０９０ー１２３４ー５６７８"},
		passwords: []string{"abc12345"},
		selectIdx: []int{2, 0},
		multiIdx:  [][]int{{1}},
	}
	sess := newTestSession(t, driver, form)

	ok, err := sess.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !ok {
		t.Fatalf("expected form to be submittable, info: %v", driver.infoMessages)
	}
	if driver.inputPos != 4 || driver.passPos != 1 || driver.selectPos != 2 || driver.multiPos != 1 {
		t.Fatalf("unexpected prompt usage %+v", driver)
	}

	joined := strings.Join(driver.infoMessages, "\n")
	for _, want := range []string{"✗ name:", "✗ tel:", "tel = 090-1234-5678", "form is ready to submit"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in output:\n%s", want, joined)
		}
	}

	state := sess.orch.State()
	if got := state.Field("pref").Value; got != "osaka" {
		t.Fatalf("expected pref osaka, got %q", got)
	}
	if got := state.Field("topics").Checked; len(got) != 2 || got[0] || !got[1] {
		t.Fatalf("unexpected topics %v", got)
	}
}

func TestSession_GivesUpAfterAttempts(t *testing.T) {
	form := model.Form{Fields: []model.Field{{ID: "name", Rules: model.ParseRules("required")}}}
	driver := &stubDriver{inputs: []string{"", " ", ""}}
	sess := newTestSession(t, driver, form)

	ok, err := sess.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if ok {
		t.Fatalf("expected form to stay blocked")
	}
	if driver.inputPos != defaultAttempts {
		t.Fatalf("expected %d attempts, got %d", defaultAttempts, driver.inputPos)
	}
	if last := driver.infoMessages[len(driver.infoMessages)-1]; last != "submit disabled: 1 error(s) remaining" {
		t.Fatalf("unexpected final message %q", last)
	}
}
