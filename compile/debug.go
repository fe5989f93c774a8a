package compile

import (
	"strings"

	"stc/utils/debug"
)

// BuildDebugTree renders a compiled output as an indented tree for dumps
// and troubleshooting.
func BuildDebugTree(out *Output) string {
	tw := debug.NewTreeWriter()

	tw.Line(0, "compiled %s", out.Kind)

	switch out.Kind {
	case ShapeKeyframes:
		tw.Line(1, "terms=%d", len(out.Terms))
		writeTerms(tw, 2, out.Terms)
	case ShapeStatic:
		tw.Line(1, "rules=%d", len(out.Strings))
		for _, s := range out.Strings {
			tw.TextBlock(2, "rule", s)
		}
	case ShapeCollapsed:
		tw.TextBlock(1, "body", out.Text)
	case ShapeFunction:
		tw.Line(1, "params=(%s)", strings.Join(out.Params, ", "))
		tw.Line(1, "blocks=%d", len(out.Blocks))
		for i, terms := range out.Blocks {
			tw.Line(2, "block %d", i)
			writeTerms(tw, 3, terms)
		}
	}

	if len(out.Args) > 0 {
		tw.Line(1, "args=%d", len(out.Args))
		for _, a := range out.Args {
			tw.Line(2, "%v", a)
		}
	}
	return tw.String()
}

func writeTerms(tw *debug.TreeWriter, depth int, terms []Term) {
	for _, t := range terms {
		switch t.Kind {
		case TermText:
			tw.TextBlock(depth, "text", t.Text)
		case TermClass:
			tw.Line(depth, "class")
		case TermSlot:
			tw.Line(depth, "slot=%d", t.Slot)
		case TermExpr:
			tw.Line(depth, "expr=%v", t.Expr)
		}
	}
}

