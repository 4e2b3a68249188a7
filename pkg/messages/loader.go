package messages

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a message override document.
type File struct {
	Locale   string            `json:"locale" yaml:"locale"`
	Messages map[string]string `json:"messages" yaml:"messages"`
}

// Table builds the table described by the file.
func (f File) Table() Table {
	return New(f.Locale, f.Messages)
}

// Parse decodes a JSON or YAML override document. source names the document
// in error messages.
func Parse(data []byte, source string) (File, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return File{}, fmt.Errorf("messages: file %s is empty", source)
	}

	var doc File
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return File{}, fmt.Errorf("messages: parse %s: invalid JSON or YAML", source)
}

// LoadFS reads and parses an override document from fsys.
func LoadFS(fsys fs.FS, path string) (Table, error) {
	if fsys == nil {
		return Table{}, fmt.Errorf("messages: file system is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Table{}, fmt.Errorf("messages: read %s: %w", path, err)
	}
	doc, err := Parse(data, path)
	if err != nil {
		return Table{}, err
	}
	return doc.Table(), nil
}
