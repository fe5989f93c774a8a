package template

import "fmt"

// Extract flattens a template tree into its ordered segment list: the head
// literal, then one expression segment and one literal segment per span.
// Count and order are preserved exactly so Recreate can fold the list back.
func Extract(n *Node) ([]Segment, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: no template node", ErrMalformedTemplate)
	}
	segs := make([]Segment, 0, 1+2*len(n.Spans))
	segs = append(segs, Literal(n.Head))
	for i, sp := range n.Spans {
		if sp.Expr == nil {
			return nil, fmt.Errorf("%w: span %d has no expression", ErrMalformedTemplate, i)
		}
		segs = append(segs, Expr(sp.Expr), Literal(sp.Text))
	}
	return segs, nil
}

// Recreate folds a segment list back into a template with the structure of
// shape: a literal for the head, then an expression and a literal for every
// span. The list must be consumed exactly to completion; any kind mismatch
// or leftover segment means data would be lost and is reported as
// ErrSegmentMismatch.
func Recreate(shape *Node, segs []Segment) (*Node, error) {
	if shape == nil {
		return nil, fmt.Errorf("%w: no template node", ErrMalformedTemplate)
	}

	next := func(k SegmentKind) (Segment, error) {
		if len(segs) == 0 {
			return Segment{}, fmt.Errorf("%w: ran out of segments", ErrSegmentMismatch)
		}
		s := segs[0]
		if s.Kind != k {
			return Segment{}, fmt.Errorf("%w: expected %s segment, got %s", ErrSegmentMismatch, k, s.Kind)
		}
		segs = segs[1:]
		return s, nil
	}

	head, err := next(SegmentLiteral)
	if err != nil {
		return nil, err
	}
	out := &Node{Head: head.Text}
	for range shape.Spans {
		e, err := next(SegmentExpr)
		if err != nil {
			return nil, err
		}
		l, err := next(SegmentLiteral)
		if err != nil {
			return nil, err
		}
		out.Spans = append(out.Spans, Span{Expr: e.Expr, Text: l.Text})
	}
	if len(segs) != 0 {
		return nil, fmt.Errorf("%w: %d segments left over", ErrSegmentMismatch, len(segs))
	}
	return out, nil
}
