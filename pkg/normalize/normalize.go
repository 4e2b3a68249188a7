// Package normalize folds the full-width digits and dash variants commonly
// typed through Japanese input methods into their half-width ASCII forms so
// telephone and postal-code patterns can match.
package normalize

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

var fullWidthDigits = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: '０', Hi: '９', Stride: 1}},
}

// dashes maps to ASCII hyphen-minus. The prolonged sound mark counts as a
// dash in number input.
var dashes = map[rune]struct{}{
	'\u30fc': {}, // prolonged sound mark
	'\uff0d': {}, // full-width hyphen-minus
	'\u2010': {}, // hyphen
	'\u2011': {}, // non-breaking hyphen
	'\u2012': {}, // figure dash
	'\u2013': {}, // en dash
	'\u2014': {}, // em dash
	'\u2015': {}, // horizontal bar
	'\u2212': {}, // minus sign
	'\uff70': {}, // half-width prolonged sound mark
}

func newTransformer() transform.Transformer {
	return transform.Chain(
		runes.If(runes.In(fullWidthDigits), width.Narrow, nil),
		runes.Map(func(r rune) rune {
			if _, ok := dashes[r]; ok {
				return '-'
			}
			return r
		}),
	)
}

// Normalize replaces full-width digits with ASCII digits and dash variants
// with '-'. Every other rune is left untouched. Normalize is idempotent.
func Normalize(text string) string {
	if text == "" {
		return text
	}
	out, _, err := transform.String(newTransformer(), text)
	if err != nil {
		return text
	}
	return out
}

// Changed reports whether Normalize would alter text.
func Changed(text string) bool {
	return Normalize(text) != text
}
