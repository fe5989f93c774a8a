// Package template models the literal/expression structure of tagged styling
// templates and its flattened segment form.
package template

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedTemplate indicates a template tree of an unexpected shape.
	ErrMalformedTemplate = errors.New("malformed template")

	// ErrSegmentMismatch indicates a segment list that cannot be folded back
	// into the template shape it came from.
	ErrSegmentMismatch = errors.New("segment mismatch")
)

// Node is the native tree form of a tagged template: a head literal followed
// by (expression, trailing literal) spans. Nodes are owned by the caller and
// never modified by this package.
type Node struct {
	Head  string
	Spans []Span
}

// Span is one embedded expression and the literal text that follows it.
type Span struct {
	Expr any
	Text string
}

// String renders the template back in ${name} interpolation syntax. Intended
// for logging and dumps, not for round-tripping escaped input.
func (n *Node) String() string {
	var b strings.Builder
	b.WriteString(n.Head)
	for _, sp := range n.Spans {
		fmt.Fprintf(&b, "${%v}", sp.Expr)
		b.WriteString(sp.Text)
	}
	return b.String()
}

// SegmentKind discriminates Segment variants.
type SegmentKind int

const (
	SegmentLiteral SegmentKind = iota
	SegmentExpr
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentLiteral:
		return "literal"
	case SegmentExpr:
		return "expr"
	default:
		return fmt.Sprintf("segment(%d)", int(k))
	}
}

// Segment is one element of the flattened template: either a run of literal
// text or a single opaque expression occurrence.
type Segment struct {
	Kind SegmentKind
	Text string // literal text when Kind is SegmentLiteral
	Expr any    // expression handle when Kind is SegmentExpr
}

// Literal builds a literal segment.
func Literal(text string) Segment {
	return Segment{Kind: SegmentLiteral, Text: text}
}

// Expr builds an expression segment.
func Expr(ref any) Segment {
	return Segment{Kind: SegmentExpr, Expr: ref}
}
