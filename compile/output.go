package compile

import "fmt"

// ShapeKind identifies the output representation the optimizer settled on.
// Numbering follows selection order: keyframes never falls through, static
// and collapsed are tried before function.
type ShapeKind int

const (
	ShapeKeyframes ShapeKind = iota + 1
	ShapeStatic
	ShapeCollapsed
	ShapeFunction
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeKeyframes:
		return "keyframes"
	case ShapeStatic:
		return "static"
	case ShapeCollapsed:
		return "collapsed"
	case ShapeFunction:
		return "function"
	default:
		return fmt.Sprintf("shape(%d)", int(k))
	}
}

// TermKind discriminates Term variants.
type TermKind int

const (
	TermText TermKind = iota
	TermClass
	TermSlot
	TermExpr
)

func (k TermKind) String() string {
	switch k {
	case TermText:
		return "text"
	case TermClass:
		return "class"
	case TermSlot:
		return "slot"
	case TermExpr:
		return "expr"
	default:
		return fmt.Sprintf("term(%d)", int(k))
	}
}

// Term is one piece of a rendered rule: literal text, the generated class
// name, a named parameter slot, or a directly spliced expression occurrence.
type Term struct {
	Kind TermKind
	Text string // literal text when Kind is TermText
	Slot int    // index into Output.Slots when Kind is TermSlot
	Expr any    // occurrence handle when Kind is TermExpr
}

// Slot is a named runtime argument bound to one expression occurrence. The
// same slot is referenced from every position that needs the occurrence.
type Slot struct {
	Name string
	Expr any
}

// Output is the compiled artifact. Exactly the fields belonging to Kind are
// populated:
//
//	ShapeKeyframes: Terms, Args
//	ShapeStatic:    Strings
//	ShapeCollapsed: Text
//	ShapeFunction:  Blocks, Params, Slots, Args
//
// Args always lists every expression occurrence in original template order;
// Params is the class-name parameter followed by the slot names in
// first-binding order.
type Output struct {
	Kind ShapeKind

	Terms   []Term   // keyframe body as one concatenation
	Strings []string // one literal per rule block, class marker dropped
	Text    string   // single collapsed declaration body
	Blocks  [][]Term // terms per rule block

	Params []string
	Slots  []Slot
	Args   []any
}
