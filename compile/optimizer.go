package compile

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// markerWidth is the encoded size of the class marker rune.
var markerWidth = utf8.RuneLen(MarkerBase)

// selectShape picks the most compact legal representation of the classified
// blocks and builds it. Selection order is fixed: keyframe mode never falls
// through, static and collapsed are tried before the functional fallback.
func selectShape(blocks []string, classified [][]Term, tbl *markerTable, slots *slotTable, keyframes bool) (*Output, error) {
	if keyframes {
		return keyframeShape(classified, tbl, slots)
	}
	if len(tbl.exprs) == 0 && allClassMarkerFirst(blocks) {
		if len(blocks) == 1 && collapsible(blocks[0]) {
			return collapsedShape(blocks[0])
		}
		return staticShape(blocks)
	}
	return functionShape(classified, tbl, slots), nil
}

// keyframeShape renders the single keyframe block as one concatenation.
// Keyframes have no class concept, so any reference promoted to a named
// slot means the author interpolated where only literal names can go.
func keyframeShape(classified [][]Term, tbl *markerTable, slots *slotTable) (*Output, error) {
	if len(slots.slots) > 0 {
		construct := "expression in keyframe selector"
		if slots.kinds[0] == refAnimation {
			construct = "expression as animation name"
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKeyframeReference, construct)
	}
	if len(classified) != 1 {
		return nil, fmt.Errorf("%w: keyframe body split into %d blocks", ErrShapeInvariant, len(classified))
	}
	for _, t := range classified[0] {
		if t.Kind == TermClass {
			return nil, fmt.Errorf("%w: class marker inside keyframe body", ErrShapeInvariant)
		}
	}
	return &Output{
		Kind:  ShapeKeyframes,
		Terms: classified[0],
		Args:  tbl.exprs,
	}, nil
}

// allClassMarkerFirst reports whether every block carries the class marker
// exactly once, as its first character.
func allClassMarkerFirst(blocks []string) bool {
	for _, b := range blocks {
		count := 0
		for i, r := range b {
			if r != MarkerBase {
				continue
			}
			if i != 0 {
				return false
			}
			count++
		}
		if count != 1 {
			return false
		}
	}
	return true
}

// collapsible reports whether a single static block has no selector text
// between the class marker and its body.
func collapsible(block string) bool {
	rest := block[markerWidth:]
	return len(rest) > 0 && rest[0] == '{'
}

// collapsedShape strips the class marker and the block braces, leaving a
// bare declaration body.
func collapsedShape(block string) (*Output, error) {
	rest := strings.TrimPrefix(block, string(MarkerBase))
	if rest == block || len(rest) < 2 || rest[0] != '{' || rest[len(rest)-1] != '}' {
		return nil, fmt.Errorf("%w: block %q cannot collapse", ErrShapeInvariant, firstLine(block))
	}
	return &Output{
		Kind: ShapeCollapsed,
		Text: rest[1 : len(rest)-1],
	}, nil
}

// staticShape renders every block as a plain literal. The leading class
// marker is dropped: the class is applied by the caller, not interpolated.
func staticShape(blocks []string) (*Output, error) {
	out := &Output{Kind: ShapeStatic, Strings: make([]string, 0, len(blocks))}
	for _, b := range blocks {
		rest := strings.TrimPrefix(b, string(MarkerBase))
		if rest == b {
			return nil, fmt.Errorf("%w: block %q does not start with the class marker", ErrShapeInvariant, firstLine(b))
		}
		out.Strings = append(out.Strings, rest)
	}
	return out, nil
}

// functionShape renders the blocks as term lists with a formal parameter
// list: the class name first, then each named slot in first-binding order.
func functionShape(classified [][]Term, tbl *markerTable, slots *slotTable) *Output {
	params := make([]string, 0, 1+len(slots.slots))
	params = append(params, "cls")
	for _, s := range slots.slots {
		params = append(params, s.Name)
	}
	return &Output{
		Kind:   ShapeFunction,
		Blocks: classified,
		Params: params,
		Slots:  slots.slots,
		Args:   tbl.exprs,
	}
}
