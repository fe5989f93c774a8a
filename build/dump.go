package build

import (
	"encoding/json"
	"fmt"
	"strings"

	"stc/common"
	"stc/compile"
	"stc/css"
)

// renderDump serializes one compiled template in the requested format.
func renderDump(out *compile.Output, values Values, format common.DumpFmt) ([]byte, error) {
	switch format {
	case common.DumpFmtText:
		return renderText(out, values), nil
	case common.DumpFmtJson:
		return renderJSON(out, values)
	case common.DumpFmtTree:
		return []byte(compile.BuildDebugTree(out)), nil
	case common.DumpFmtCss:
		return []byte(css.Format(renderCSS(out, values.Class))), nil
	default:
		// this should never happen
		panic("unsupported dump format requested")
	}
}

// renderCSS reassembles the compiled rules into a stylesheet. Runtime values
// are rendered as custom property references named after their slot, which
// keeps the result parseable.
func renderCSS(out *compile.Output, class string) string {
	var b strings.Builder
	switch out.Kind {
	case compile.ShapeKeyframes:
		b.WriteString("@keyframes ")
		b.WriteString(class)
		b.WriteString("{")
		writeRenderedTerms(&b, out, out.Terms, class)
		b.WriteString("}")
	case compile.ShapeStatic:
		for _, s := range out.Strings {
			b.WriteString(".")
			b.WriteString(class)
			b.WriteString(s)
		}
	case compile.ShapeCollapsed:
		b.WriteString(".")
		b.WriteString(class)
		b.WriteString("{")
		b.WriteString(out.Text)
		b.WriteString("}")
	case compile.ShapeFunction:
		for _, block := range out.Blocks {
			writeRenderedTerms(&b, out, block, class)
		}
	}
	return b.String()
}

func writeRenderedTerms(b *strings.Builder, out *compile.Output, terms []compile.Term, class string) {
	for _, t := range terms {
		switch t.Kind {
		case compile.TermText:
			b.WriteString(t.Text)
		case compile.TermClass:
			b.WriteString(".")
			b.WriteString(class)
		case compile.TermSlot:
			fmt.Fprintf(b, "var(--%s)", out.Slots[t.Slot].Name)
		case compile.TermExpr:
			fmt.Fprintf(b, "var(--%v)", t.Expr)
		}
	}
}

func renderText(out *compile.Output, values Values) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "template: %s\n", values.Name)
	fmt.Fprintf(&b, "class: %s\n", values.Class)
	fmt.Fprintf(&b, "kind: %s\n", values.Kind)
	fmt.Fprintf(&b, "shape: %s\n", out.Kind)
	if len(out.Params) > 0 {
		fmt.Fprintf(&b, "params: (%s)\n", strings.Join(out.Params, ", "))
	}
	if len(out.Args) > 0 {
		fmt.Fprintf(&b, "args: %d\n", len(out.Args))
	}

	rendered := renderCSS(out, values.Class)
	if formatted := css.Format(rendered); formatted != "" {
		b.WriteString("\n")
		b.WriteString(formatted)
	}

	stats := css.Measure(rendered)
	fmt.Fprintf(&b, "\nrules: %d, at-rules: %d, declarations: %d\n", stats.Rules, stats.AtRules, stats.Declarations)
	return []byte(b.String())
}

type dumpTerm struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
	Slot *int   `json:"slot,omitempty"`
	Expr string `json:"expr,omitempty"`
}

type dumpSlot struct {
	Name string `json:"name"`
	Expr string `json:"expr"`
}

type dumpDoc struct {
	Name    string       `json:"name"`
	Class   string       `json:"class"`
	Kind    string       `json:"kind"`
	Shape   string       `json:"shape"`
	Params  []string     `json:"params,omitempty"`
	Slots   []dumpSlot   `json:"slots,omitempty"`
	Args    []string     `json:"args,omitempty"`
	Terms   []dumpTerm   `json:"terms,omitempty"`
	Strings []string     `json:"strings,omitempty"`
	Text    string       `json:"text,omitempty"`
	Blocks  [][]dumpTerm `json:"blocks,omitempty"`
	CSS     string       `json:"css"`
}

func renderJSON(out *compile.Output, values Values) ([]byte, error) {
	doc := dumpDoc{
		Name:    values.Name,
		Class:   values.Class,
		Kind:    values.Kind,
		Shape:   out.Kind.String(),
		Params:  out.Params,
		Strings: out.Strings,
		Text:    out.Text,
		CSS:     renderCSS(out, values.Class),
	}
	for _, s := range out.Slots {
		doc.Slots = append(doc.Slots, dumpSlot{Name: s.Name, Expr: fmt.Sprintf("%v", s.Expr)})
	}
	for _, a := range out.Args {
		doc.Args = append(doc.Args, fmt.Sprintf("%v", a))
	}
	if len(out.Terms) > 0 {
		doc.Terms = dumpTerms(out.Terms)
	}
	for _, block := range out.Blocks {
		doc.Blocks = append(doc.Blocks, dumpTerms(block))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("unable to marshal compiled template: %w", err)
	}
	return append(data, '\n'), nil
}

func dumpTerms(terms []compile.Term) []dumpTerm {
	result := make([]dumpTerm, 0, len(terms))
	for _, t := range terms {
		dt := dumpTerm{Kind: t.Kind.String()}
		switch t.Kind {
		case compile.TermText:
			dt.Text = t.Text
		case compile.TermSlot:
			slot := t.Slot
			dt.Slot = &slot
		case compile.TermExpr:
			dt.Expr = fmt.Sprintf("%v", t.Expr)
		}
		result = append(result, dt)
	}
	return result
}
