package compile

import (
	"fmt"
	"strings"
	"unicode"
)

// position is the classification state for one character of a rule block.
type position int

const (
	posNone position = iota
	posSelector
	posDeclarationBody
	posMediaSelector
)

func (p position) String() string {
	switch p {
	case posNone:
		return "none"
	case posSelector:
		return "selector"
	case posDeclarationBody:
		return "declaration-body"
	case posMediaSelector:
		return "media-selector"
	default:
		return fmt.Sprintf("position(%d)", int(p))
	}
}

// nextPosition advances the four-state position machine by one character.
// Space and closing braces in the none state are residue from a previously
// closed nested rule and cause no transition. A declaration body closing
// returns to none so the next selector inside the same block (one level of
// media nesting) reclassifies from scratch.
func nextPosition(p position, r rune) position {
	switch p {
	case posNone:
		switch {
		case r == '@':
			return posMediaSelector
		case r == '{' || r == '}' || unicode.IsSpace(r):
			return posNone
		default:
			return posSelector
		}
	case posMediaSelector:
		if r == '{' {
			return posSelector
		}
	case posSelector:
		if r == '{' {
			return posDeclarationBody
		}
	case posDeclarationBody:
		if r == '}' {
			return posNone
		}
	}
	return p
}

// refKind records why an expression occurrence was promoted to a named slot.
type refKind int

const (
	refSelector refKind = iota
	refAnimation
)

// slotTable interns named argument slots across all blocks of one
// compilation, keyed by marker rune, so an expression referenced from
// several positions yields a single function parameter.
type slotTable struct {
	byMarker map[rune]int
	slots    []Slot
	kinds    []refKind
}

func newSlotTable() *slotTable {
	return &slotTable{byMarker: make(map[rune]int)}
}

// bind returns the slot index for a marker, allocating a new slot named
// after its binding order on first use.
func (s *slotTable) bind(r rune, expr any, kind refKind) int {
	if i, ok := s.byMarker[r]; ok {
		return i
	}
	i := len(s.slots)
	s.byMarker[r] = i
	s.slots = append(s.slots, Slot{Name: fmt.Sprintf("expr%d", i), Expr: expr})
	s.kinds = append(s.kinds, kind)
	return i
}

func (s *slotTable) bound(r rune) (int, bool) {
	i, ok := s.byMarker[r]
	return i, ok
}

// classifyBlock walks one rule block, classifies every marker by the
// position it occupies and returns the block as a term list. Selector
// references and animation names bind named slots in the shared table;
// everything else is inlined.
func classifyBlock(block string, tbl *markerTable, slots *slotTable) ([]Term, error) {
	var (
		terms []Term
		text  strings.Builder
		pos   = posNone

		// selEmpty is true while a selector run opened by an at-rule block
		// has seen nothing but whitespace. An at-keyword in that spot would
		// open an at-rule inside the enclosing at-rule block.
		selEmpty bool
	)

	flush := func() {
		if text.Len() > 0 {
			terms = append(terms, Term{Kind: TermText, Text: text.String()})
			text.Reset()
		}
	}

	for _, r := range block {
		prev := pos
		pos = nextPosition(pos, r)

		if !isMarker(r) {
			if pos == posSelector && prev == posSelector && selEmpty && !unicode.IsSpace(r) {
				if r == '@' {
					return nil, fmt.Errorf("%w: %q", ErrNestedAtRule, firstLine(block))
				}
				selEmpty = false
			}
			if prev != posSelector && pos == posSelector {
				selEmpty = prev == posMediaSelector
			}
			text.WriteRune(r)
			continue
		}

		occ, class, ok := tbl.lookup(r)
		if !ok {
			return nil, fmt.Errorf("%w: unknown marker %q in processed css", ErrShapeInvariant, r)
		}

		switch {
		case class:
			flush()
			terms = append(terms, Term{Kind: TermClass})
		case pos == posSelector:
			// A selector reference stands for a class name: exactly one dot
			// separates it from the preceding selector text, whether the
			// author wrote one or not.
			pending := text.String()
			if !strings.HasSuffix(pending, ".") {
				text.WriteByte('.')
			}
			flush()
			terms = append(terms, Term{Kind: TermSlot, Slot: slots.bind(r, tbl.exprs[occ], refSelector)})
		default:
			if i, ok := slots.bound(r); ok {
				flush()
				terms = append(terms, Term{Kind: TermSlot, Slot: i})
			} else if pos == posDeclarationBody && isAnimationProperty(text.String()) {
				flush()
				terms = append(terms, Term{Kind: TermSlot, Slot: slots.bind(r, tbl.exprs[occ], refAnimation)})
			} else {
				flush()
				terms = append(terms, Term{Kind: TermExpr, Expr: tbl.exprs[occ]})
			}
		}
		if pos == posSelector {
			selEmpty = false
		}
	}
	flush()
	return terms, nil
}

// isAnimationProperty reports whether the pending declaration text ends with
// the animation or animation-name property followed by a colon, meaning the
// next value token is an animation name.
func isAnimationProperty(pending string) bool {
	s := strings.TrimRight(pending, " \t\r\n")
	if !strings.HasSuffix(s, ":") {
		return false
	}
	s = strings.TrimRight(s[:len(s)-1], " \t\r\n")

	var prop string
	switch ls := strings.ToLower(s); {
	case strings.HasSuffix(ls, "animation-name"):
		prop = "animation-name"
	case strings.HasSuffix(ls, "animation"):
		prop = "animation"
	default:
		return false
	}

	rest := s[:len(s)-len(prop)]
	if rest == "" {
		return true
	}
	switch rest[len(rest)-1] {
	case '{', ';', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	const limit = 60
	if len(s) > limit {
		s = s[:limit]
	}
	return strings.TrimSpace(s)
}
