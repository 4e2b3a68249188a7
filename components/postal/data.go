package postal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formvalidator/pkg/model"
	"github.com/goliatone/go-formvalidator/pkg/normalize"
)

var (
	ErrInvalidCode = errors.New("postal: code must have 7 digits")
	ErrNotFound    = errors.New("postal: code not found")
	ErrMalformed   = errors.New("postal: malformed data file")
)

// CanonicalCode folds full-width digits and dashes, drops hyphens and
// returns the 7-digit code.
func CanonicalCode(code string) (string, error) {
	folded := strings.ReplaceAll(normalize.Normalize(strings.TrimSpace(code)), "-", "")
	if len(folded) != 7 {
		return "", fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	for _, r := range folded {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q", ErrInvalidCode, code)
		}
	}
	return folded, nil
}

// unwrapJSONP extracts the object passed to `$yubin(...)`.
func unwrapJSONP(body []byte) ([]byte, error) {
	start := bytes.IndexByte(body, '(')
	end := bytes.LastIndexByte(body, ')')
	if start < 0 || end <= start {
		trimmed := bytes.TrimSpace(body)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			return trimmed, nil
		}
		return nil, ErrMalformed
	}
	return bytes.TrimSpace(body[start+1 : end]), nil
}

// prefixData maps 7-digit codes to `[prefectureID, locality, street,
// extended]` entries.
type prefixData map[string][]any

func parsePrefixData(payload []byte) (prefixData, error) {
	var data prefixData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return data, nil
}

// address resolves one code. Entries without a prefecture or locality are
// treated as misses.
func (d prefixData) address(code string) (model.Address, bool) {
	entry, ok := d[code]
	if !ok || len(entry) < 2 {
		return model.Address{}, false
	}
	id := entryInt(entry[0])
	region, ok := Prefecture(id)
	locality := entryString(entry, 1)
	if !ok || locality == "" {
		return model.Address{}, false
	}
	return model.Address{
		RegionID: strconv.Itoa(id),
		Region:   region,
		Locality: locality,
		Street:   entryString(entry, 2),
		Extended: entryString(entry, 3),
	}, true
}

func entryInt(value any) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func entryString(entry []any, index int) string {
	if index >= len(entry) {
		return ""
	}
	if s, ok := entry[index].(string); ok {
		return s
	}
	return ""
}
