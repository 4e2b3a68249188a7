package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-formvalidator/pkg/model"
	"github.com/goliatone/go-formvalidator/pkg/orchestrator"
)

const defaultAttempts = 3

// session walks a form field by field, feeding answers to the orchestrator
// and printing the effects it returns.
type session struct {
	driver   PromptDriver
	orch     *orchestrator.Orchestrator
	attempts int

	mu      sync.Mutex
	values  map[string]string
	pending []string
}

func newSession(driver PromptDriver) *session {
	return &session{
		driver:   driver,
		attempts: defaultAttempts,
		values:   make(map[string]string),
	}
}

// Apply implements orchestrator.EffectSink for autofill updates.
func (s *session) Apply(update orchestrator.Update) {
	s.apply(update)
}

func (s *session) apply(update orchestrator.Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, effect := range update.Effects {
		switch e := effect.(type) {
		case orchestrator.SetValue:
			s.values[e.FieldID] = e.Value
			s.pending = append(s.pending, fmt.Sprintf("  %s = %s", e.FieldID, e.Value))
		case orchestrator.SetError:
			if e.HasError {
				s.pending = append(s.pending, fmt.Sprintf("  ✗ %s: %s", e.FieldID, e.Message))
			}
		case orchestrator.SetErrorCount:
			s.pending = append(s.pending, fmt.Sprintf("  errors remaining: %d", e.Count))
		}
	}
}

func (s *session) flush(ctx context.Context) error {
	s.mu.Lock()
	lines := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, line := range lines {
		if err := s.driver.Info(ctx, line); err != nil {
			return err
		}
	}
	return nil
}

// Run prompts every field and reports whether the form may be submitted.
func (s *session) Run(ctx context.Context, snapshot orchestrator.Snapshot) (bool, error) {
	s.apply(s.orch.Init(snapshot))
	for id, state := range snapshot {
		if state.Value != "" {
			s.values[id] = state.Value
		}
	}
	if err := s.flush(ctx); err != nil {
		return false, err
	}

	for _, field := range s.orch.Form().Fields {
		for attempt := 0; attempt < s.attempts; attempt++ {
			event, err := s.ask(ctx, field)
			if err != nil {
				return false, err
			}
			s.apply(s.orch.Handle(event))
			if err := s.flush(ctx); err != nil {
				return false, err
			}
			if !s.orch.State().Field(field.ID).HasError {
				break
			}
		}
	}

	state := s.orch.State()
	if state.GateOpen {
		return true, s.driver.Info(ctx, "form is ready to submit")
	}
	return false, s.driver.Info(ctx, fmt.Sprintf("submit disabled: %d error(s) remaining", state.Total()))
}

func (s *session) ask(ctx context.Context, field model.Field) (orchestrator.Event, error) {
	message := field.Label
	if message == "" {
		message = field.ID
	}
	if field.Required() {
		message += " *"
	}

	s.mu.Lock()
	current := s.values[field.ID]
	s.mu.Unlock()

	switch field.Kind() {
	case model.CategorySelect:
		if len(field.Members) == 0 {
			break
		}
		options := append([]string{""}, field.Members...)
		idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: options, DefaultIndex: indexOf(options, current)})
		if err != nil {
			return nil, err
		}
		value := ""
		if idx > 0 {
			value = options[idx]
		}
		s.remember(field.ID, value)
		return orchestrator.FieldChanged{FieldID: field.ID, Value: value}, nil
	case model.CategoryCheckbox:
		picked, err := s.driver.MultiSelect(ctx, SelectConfig{Message: message, Options: field.Members})
		if err != nil {
			return nil, err
		}
		return orchestrator.GroupChanged{FieldID: field.ID, Checked: checkedFrom(len(field.Members), picked...)}, nil
	case model.CategoryRadio:
		idx, err := s.driver.Select(ctx, SelectConfig{Message: message, Options: field.Members, DefaultIndex: -1})
		if err != nil {
			return nil, err
		}
		return orchestrator.GroupChanged{FieldID: field.ID, Checked: checkedFrom(len(field.Members), idx)}, nil
	}

	var (
		value string
		err   error
	)
	if field.Rules.Has(model.RulePassword) {
		value, err = s.driver.Password(ctx, InputConfig{Message: message})
	} else {
		value, err = s.driver.Input(ctx, InputConfig{Message: message, Default: current})
	}
	if err != nil {
		return nil, err
	}
	s.remember(field.ID, value)
	return orchestrator.FieldChanged{FieldID: field.ID, Value: value}, nil
}

func (s *session) remember(id, value string) {
	s.mu.Lock()
	s.values[id] = value
	s.mu.Unlock()
}

func checkedFrom(size int, picked ...int) []bool {
	checked := make([]bool, size)
	for _, idx := range picked {
		if idx >= 0 && idx < size {
			checked[idx] = true
		}
	}
	return checked
}
