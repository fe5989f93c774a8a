package build

import (
	"encoding/json"
	"strings"
	"testing"

	"stc/common"
	"stc/compile"
	"stc/template"
)

func TestRenderCSS_Collapsed(t *testing.T) {
	out := &compile.Output{Kind: compile.ShapeCollapsed, Text: "color:red;"}

	got := renderCSS(out, "sc-button")
	want := ".sc-button{color:red;}"
	if got != want {
		t.Errorf("renderCSS() = %q, want %q", got, want)
	}
}

func TestRenderCSS_Static(t *testing.T) {
	out := &compile.Output{
		Kind:    compile.ShapeStatic,
		Strings: []string{"{color:red;}", ":hover{color:blue;}"},
	}

	got := renderCSS(out, "sc-button")
	want := ".sc-button{color:red;}.sc-button:hover{color:blue;}"
	if got != want {
		t.Errorf("renderCSS() = %q, want %q", got, want)
	}
}

func TestRenderCSS_Keyframes(t *testing.T) {
	out := &compile.Output{
		Kind: compile.ShapeKeyframes,
		Terms: []compile.Term{
			{Kind: compile.TermText, Text: "from{opacity:0;}to{opacity:1;}"},
		},
	}

	got := renderCSS(out, "sc-spin")
	want := "@keyframes sc-spin{from{opacity:0;}to{opacity:1;}}"
	if got != want {
		t.Errorf("renderCSS() = %q, want %q", got, want)
	}
}

func TestRenderCSS_Function(t *testing.T) {
	out := &compile.Output{
		Kind: compile.ShapeFunction,
		Blocks: [][]compile.Term{
			{
				{Kind: compile.TermClass},
				{Kind: compile.TermText, Text: "{color:"},
				{Kind: compile.TermSlot, Slot: 0},
				{Kind: compile.TermText, Text: ";width:"},
				{Kind: compile.TermExpr, Expr: template.Ident("width")},
				{Kind: compile.TermText, Text: ";}"},
			},
		},
		Params: []string{"color"},
		Slots:  []compile.Slot{{Name: "color", Expr: template.Ident("color")}},
	}

	got := renderCSS(out, "sc-button")
	want := ".sc-button{color:var(--color);width:var(--width);}"
	if got != want {
		t.Errorf("renderCSS() = %q, want %q", got, want)
	}
}

func TestRenderText(t *testing.T) {
	out := &compile.Output{Kind: compile.ShapeCollapsed, Text: "color:red;"}
	values := Values{Name: "button", Class: "sc-button", Kind: "style"}

	got := string(renderText(out, values))

	for _, want := range []string{
		"template: button\n",
		"class: sc-button\n",
		"kind: style\n",
		"shape: collapsed\n",
		"rules: 1, at-rules: 0, declarations: 1",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("renderText() = %q, missing %q", got, want)
		}
	}
	if strings.Contains(got, "params:") {
		t.Errorf("renderText() = %q, params line not expected for collapsed shape", got)
	}
}

func TestRenderText_FunctionShape(t *testing.T) {
	out := &compile.Output{
		Kind: compile.ShapeFunction,
		Blocks: [][]compile.Term{
			{
				{Kind: compile.TermClass},
				{Kind: compile.TermText, Text: "{color:"},
				{Kind: compile.TermSlot, Slot: 0},
				{Kind: compile.TermText, Text: ";}"},
			},
		},
		Params: []string{"color"},
		Slots:  []compile.Slot{{Name: "color", Expr: template.Ident("color")}},
	}
	values := Values{Name: "button", Class: "sc-button", Kind: "style"}

	got := string(renderText(out, values))

	if !strings.Contains(got, "params: (color)\n") {
		t.Errorf("renderText() = %q, missing params line", got)
	}
	if !strings.Contains(got, "var(--color)") {
		t.Errorf("renderText() = %q, missing slot reference", got)
	}
}

func TestRenderJSON(t *testing.T) {
	out := &compile.Output{Kind: compile.ShapeCollapsed, Text: "color:red;"}
	values := Values{Name: "button", Class: "sc-button", Kind: "style"}

	data, err := renderJSON(out, values)
	if err != nil {
		t.Fatalf("renderJSON() error = %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if doc["name"] != "button" {
		t.Errorf("name = %v, want %q", doc["name"], "button")
	}
	if doc["class"] != "sc-button" {
		t.Errorf("class = %v, want %q", doc["class"], "sc-button")
	}
	if doc["shape"] != "collapsed" {
		t.Errorf("shape = %v, want %q", doc["shape"], "collapsed")
	}
	if doc["text"] != "color:red;" {
		t.Errorf("text = %v, want %q", doc["text"], "color:red;")
	}
	if doc["css"] != ".sc-button{color:red;}" {
		t.Errorf("css = %v, want %q", doc["css"], ".sc-button{color:red;}")
	}
}

func TestRenderJSON_SlotZeroSurvives(t *testing.T) {
	out := &compile.Output{
		Kind: compile.ShapeFunction,
		Blocks: [][]compile.Term{
			{
				{Kind: compile.TermClass},
				{Kind: compile.TermText, Text: "{color:"},
				{Kind: compile.TermSlot, Slot: 0},
				{Kind: compile.TermText, Text: ";}"},
			},
		},
		Params: []string{"color"},
		Slots:  []compile.Slot{{Name: "color", Expr: template.Ident("color")}},
	}
	values := Values{Name: "button", Class: "sc-button", Kind: "style"}

	data, err := renderJSON(out, values)
	if err != nil {
		t.Fatalf("renderJSON() error = %v", err)
	}

	var doc struct {
		Blocks [][]map[string]any `json:"blocks"`
		Slots  []map[string]any   `json:"slots"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(doc.Blocks) != 1 {
		t.Fatalf("len(blocks) = %d, want 1", len(doc.Blocks))
	}

	found := false
	for _, term := range doc.Blocks[0] {
		if term["kind"] == "slot" {
			found = true
			if slot, ok := term["slot"].(float64); !ok || slot != 0 {
				t.Errorf("slot = %v, want 0", term["slot"])
			}
		}
	}
	if !found {
		t.Error("slot term not present in serialized block")
	}
	if len(doc.Slots) != 1 || doc.Slots[0]["name"] != "color" {
		t.Errorf("slots = %v, want single slot named color", doc.Slots)
	}
}

func TestRenderDump(t *testing.T) {
	out := &compile.Output{Kind: compile.ShapeCollapsed, Text: "color:red;"}
	values := Values{Name: "button", Class: "sc-button", Kind: "style"}

	tests := []struct {
		name   string
		format common.DumpFmt
		want   string
	}{
		{"text", common.DumpFmtText, "template: button"},
		{"json", common.DumpFmtJson, "\"class\": \"sc-button\""},
		{"tree", common.DumpFmtTree, "compiled collapsed"},
		{"css", common.DumpFmtCss, ".sc-button"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := renderDump(out, values, tt.format)
			if err != nil {
				t.Fatalf("renderDump() error = %v", err)
			}
			if len(data) == 0 {
				t.Fatal("renderDump() produced no output")
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("renderDump() = %q, missing %q", string(data), tt.want)
			}
		})
	}
}

func TestRenderDump_PanicOnInvalidFormat(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for invalid dump format, but didn't panic")
		}
	}()

	out := &compile.Output{Kind: compile.ShapeCollapsed, Text: "color:red;"}
	_, _ = renderDump(out, Values{}, common.DumpFmt(99))
}
