package compile

import (
	"errors"
	"reflect"
	"testing"
)

func TestNextPosition(t *testing.T) {
	tests := []struct {
		name string
		pos  position
		r    rune
		want position
	}{
		{"at-rule opens media selector", posNone, '@', posMediaSelector},
		{"letter opens selector", posNone, 'a', posSelector},
		{"dot opens selector", posNone, '.', posSelector},
		{"space stays none", posNone, ' ', posNone},
		{"open brace stays none", posNone, '{', posNone},
		{"close brace stays none", posNone, '}', posNone},
		{"media prelude continues", posMediaSelector, 'x', posMediaSelector},
		{"media closing residue", posMediaSelector, ')', posMediaSelector},
		{"media opens selector", posMediaSelector, '{', posSelector},
		{"selector continues", posSelector, ':', posSelector},
		{"selector opens body", posSelector, '{', posDeclarationBody},
		{"body continues", posDeclarationBody, ';', posDeclarationBody},
		{"body keeps open brace", posDeclarationBody, '{', posDeclarationBody},
		{"body closes to none", posDeclarationBody, '}', posNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextPosition(tt.pos, tt.r); got != tt.want {
				t.Errorf("nextPosition(%s, %q) = %s, want %s", tt.pos, tt.r, got, tt.want)
			}
		})
	}
}

func TestIsAnimationProperty(t *testing.T) {
	tests := []struct {
		name    string
		pending string
		want    bool
	}{
		{"animation after brace", "{animation: ", true},
		{"animation-name after brace", "{animation-name: ", true},
		{"animation after semicolon", "{color: red; animation: ", true},
		{"space before colon", "{animation : ", true},
		{"no pending text", "animation:", true},
		{"uppercase", "{ANIMATION: ", true},
		{"no colon yet", "{animation ", false},
		{"different property", "{background: ", false},
		{"longer property name", "{animation-duration: ", false},
		{"embedded suffix", "{myanimation: ", false},
		{"vendor prefixed", "{-webkit-animation: ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isAnimationProperty(tt.pending); got != tt.want {
				t.Errorf("isAnimationProperty(%q) = %v, want %v", tt.pending, got, tt.want)
			}
		})
	}
}

func TestClassifyBlock_Positions(t *testing.T) {
	tbl := &markerTable{exprs: []any{"first", "second"}}

	tests := []struct {
		name  string
		block string
		want  []Term
	}{
		{
			name:  "class marker stands alone",
			block: cls + "{color: red;}",
			want:  []Term{{Kind: TermClass}, {Kind: TermText, Text: "{color: red;}"}},
		},
		{
			name:  "selector reference binds a slot",
			block: cls + "." + m0 + "{x}",
			want: []Term{
				{Kind: TermClass},
				{Kind: TermText, Text: "."},
				{Kind: TermSlot, Slot: 0},
				{Kind: TermText, Text: "{x}"},
			},
		},
		{
			name:  "missing dot is inserted",
			block: cls + " " + m0 + "{x}",
			want: []Term{
				{Kind: TermClass},
				{Kind: TermText, Text: " ."},
				{Kind: TermSlot, Slot: 0},
				{Kind: TermText, Text: "{x}"},
			},
		},
		{
			name:  "body marker stays inline",
			block: cls + "{color: " + m0 + ";}",
			want: []Term{
				{Kind: TermClass},
				{Kind: TermText, Text: "{color: "},
				{Kind: TermExpr, Expr: "first"},
				{Kind: TermText, Text: ";}"},
			},
		},
		{
			name:  "media prelude marker stays inline",
			block: "@media (min-width: " + m1 + "px){" + cls + "{x}}",
			want: []Term{
				{Kind: TermText, Text: "@media (min-width: "},
				{Kind: TermExpr, Expr: "second"},
				{Kind: TermText, Text: "px){"},
				{Kind: TermClass},
				{Kind: TermText, Text: "{x}}"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classifyBlock(tt.block, tbl, newSlotTable())
			if err != nil {
				t.Fatalf("classify failed: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("terms = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClassifyBlock_SlotReuseInBody(t *testing.T) {
	// A marker bound in selector position reuses its slot when the same
	// marker later shows up in a declaration body.
	tbl := &markerTable{exprs: []any{"v"}}
	slots := newSlotTable()

	first, err := classifyBlock(cls+"."+m0+"{x}", tbl, slots)
	if err != nil {
		t.Fatalf("first block failed: %v", err)
	}
	second, err := classifyBlock(cls+"{content: "+m0+";}", tbl, slots)
	if err != nil {
		t.Fatalf("second block failed: %v", err)
	}

	if len(slots.slots) != 1 {
		t.Fatalf("slots = %d, want 1", len(slots.slots))
	}
	if first[2].Kind != TermSlot || first[2].Slot != 0 {
		t.Errorf("selector term = %+v, want slot 0", first[2])
	}
	if second[2].Kind != TermSlot || second[2].Slot != 0 {
		t.Errorf("body term = %+v, want reused slot 0", second[2])
	}
}

func TestClassifyBlock_NestedAtRule(t *testing.T) {
	tbl := &markerTable{}
	block := "@media screen{@supports (display: grid){" + cls + "{x}}}"
	if _, err := classifyBlock(block, tbl, newSlotTable()); !errors.Is(err, ErrNestedAtRule) {
		t.Errorf("err = %v, want ErrNestedAtRule", err)
	}
}

func TestClassifyBlock_SelectorAfterMediaAllowed(t *testing.T) {
	// Whitespace between the media brace and the inner selector must not
	// trip the nested at-rule check.
	tbl := &markerTable{}
	block := "@media screen{ " + cls + "{x} }"
	terms, err := classifyBlock(block, tbl, newSlotTable())
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}
	if len(terms) != 3 || terms[1].Kind != TermClass {
		t.Errorf("terms = %+v, want text, class, text", terms)
	}
}

func TestClassifyBlock_UnknownMarker(t *testing.T) {
	tbl := &markerTable{}
	block := cls + "{color: " + string(MarkerBase+7) + ";}"
	if _, err := classifyBlock(block, tbl, newSlotTable()); !errors.Is(err, ErrShapeInvariant) {
		t.Errorf("err = %v, want ErrShapeInvariant", err)
	}
}
