package compile

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"stc/template"
)

// MarkerBase is the first code point of the reserved marker range. The rune
// at the base always stands for the generated class name; expression
// occurrences take the following code points in first-appearance order.
// Literal template text must stay below this range; encode fails closed when
// it does not.
const MarkerBase rune = 230

// markerTable maps marker runes to the expression occurrences of a single
// compilation. A table never outlives one Compile call.
type markerTable struct {
	exprs []any
}

// add assigns the next marker rune to one expression occurrence.
// Occurrences, not expressions, are the unit: the same expression appearing
// twice gets two markers.
func (t *markerTable) add(expr any) rune {
	t.exprs = append(t.exprs, expr)
	return MarkerBase + rune(len(t.exprs))
}

// lookup resolves a rune found in processed text. class reports the reserved
// class-name marker, otherwise expr is the originating occurrence index.
func (t *markerTable) lookup(r rune) (expr int, class, ok bool) {
	if r == MarkerBase {
		return 0, true, true
	}
	i := int(r-MarkerBase) - 1
	if i < 0 || i >= len(t.exprs) {
		return 0, false, false
	}
	return i, false, true
}

func isMarker(r rune) bool {
	return r >= MarkerBase
}

// encode flattens segments into one text blob, substituting every expression
// occurrence with its assigned marker rune. Concatenating the literals and
// markers in order reproduces the returned text exactly.
func encode(segs []template.Segment) (string, *markerTable, error) {
	tbl := &markerTable{}
	var b strings.Builder
	for _, seg := range segs {
		switch seg.Kind {
		case template.SegmentExpr:
			b.WriteRune(tbl.add(seg.Expr))
		default:
			if i := strings.IndexFunc(seg.Text, isMarker); i >= 0 {
				r, _ := utf8.DecodeRuneInString(seg.Text[i:])
				return "", nil, fmt.Errorf("%w: %q", ErrReservedCodePoint, r)
			}
			b.WriteString(seg.Text)
		}
	}
	return b.String(), tbl, nil
}
