package declare

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formvalidator/pkg/model"
)

// Set holds the declarations loaded from one or more files.
type Set struct {
	forms   map[string]model.Form
	sources map[string]string
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{forms: make(map[string]model.Form), sources: make(map[string]string)}
}

// Form returns the declaration with the supplied id.
func (s *Set) Form(id string) (model.Form, bool) {
	if s == nil {
		return model.Form{}, false
	}
	form, ok := s.forms[id]
	return form, ok
}

// IDs returns the declared form ids, sorted.
func (s *Set) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Source reports the file a form was loaded from.
func (s *Set) Source(id string) string {
	if s == nil {
		return ""
	}
	return s.sources[id]
}

// Empty reports whether the set holds any forms.
func (s *Set) Empty() bool {
	return s == nil || len(s.forms) == 0
}

// Add registers a form. Form ids must be unique across the set.
func (s *Set) Add(form model.Form, source string) error {
	id := strings.TrimSpace(form.ID)
	if id == "" {
		return fmt.Errorf("declare: file %s defines an empty form id", source)
	}
	if previous, exists := s.sources[id]; exists {
		return fmt.Errorf("declare: duplicate form %q (file %s, first defined in %s)", id, source, previous)
	}
	form.ID = id
	s.forms[id] = form
	s.sources[id] = source
	return nil
}

// Decorate applies decorators to every form in id order. A decorated form
// must still validate; the first failure aborts and leaves the set unchanged.
func (s *Set) Decorate(decorators ...model.Decorator) error {
	if s == nil || len(decorators) == 0 {
		return nil
	}
	updated := make(map[string]model.Form, len(s.forms))
	for _, id := range s.IDs() {
		form := s.forms[id].Clone()
		for _, decorator := range decorators {
			if decorator == nil {
				continue
			}
			if err := decorator.Decorate(&form); err != nil {
				return fmt.Errorf("declare: decorate form %q: %w", id, err)
			}
		}
		if form.ID != id {
			return fmt.Errorf("declare: decorator renamed form %q to %q", id, form.ID)
		}
		if err := form.Validate(); err != nil {
			return fmt.Errorf("declare: decorated form %q: %w", id, err)
		}
		updated[id] = form
	}
	s.forms = updated
	return nil
}

// LoadFS walks fsys and parses every JSON/YAML declaration file. Each form is
// validated; all problems are reported together. A nil fsys yields an empty
// set.
func LoadFS(fsys fs.FS) (*Set, error) {
	set := NewSet()
	if fsys == nil {
		return set, nil
	}

	var problems []error
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDeclarationFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("declare: read %s: %w", path, err)
		}
		forms, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, form := range forms {
			if err := form.Validate(); err != nil {
				problems = append(problems, fmt.Errorf("declare: form %q (file %s): %w", form.ID, path, err))
				continue
			}
			if err := set.Add(form, path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}
	return set, nil
}

type documentFile struct {
	Forms map[string]formFile `json:"forms" yaml:"forms"`
}

type formFile struct {
	Config   *model.Config     `json:"config" yaml:"config"`
	Messages map[string]string `json:"messages" yaml:"messages"`
	Pairs    []model.Pair      `json:"pairs" yaml:"pairs"`
	Fields   []model.Field     `json:"fields" yaml:"fields"`
}

// Parse decodes a declaration document, trying JSON first and YAML second.
// Forms are returned sorted by id.
func Parse(data []byte, source string) ([]model.Form, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("declare: file %s is empty", source)
	}

	var doc documentFile
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = documentFile{}
		if yerr := yaml.Unmarshal(data, &doc); yerr != nil {
			return nil, fmt.Errorf("declare: parse %s: invalid JSON or YAML: %w", source, yerr)
		}
	}
	if len(doc.Forms) == 0 {
		return nil, fmt.Errorf("declare: file %s declares no forms", source)
	}

	ids := make([]string, 0, len(doc.Forms))
	for id := range doc.Forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	forms := make([]model.Form, 0, len(ids))
	for _, id := range ids {
		raw := doc.Forms[id]
		trimmed := strings.TrimSpace(id)
		if trimmed == "" {
			return nil, fmt.Errorf("declare: file %s defines an empty form id", source)
		}
		forms = append(forms, model.Form{
			ID:       trimmed,
			Fields:   raw.Fields,
			Pairs:    raw.Pairs,
			Config:   raw.Config,
			Messages: raw.Messages,
		})
	}
	return forms, nil
}

func isDeclarationFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
