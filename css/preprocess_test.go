package css

import (
	"testing"

	"go.uber.org/zap"
)

func TestPreprocess_Nesting(t *testing.T) {
	p := NewPreprocessor(zap.NewNop())

	tests := []struct {
		name     string
		selector string
		input    string
		want     string
	}{
		{
			"context declarations",
			".g", "color: red;",
			".g{color: red;}",
		},
		{
			"parent selector rule",
			".g", "color: red; &:hover { color: blue; }",
			".g{color: red;}.g:hover{color: blue;}",
		},
		{
			"compound parent selector",
			".g", "&.active { outline: none; }",
			".g.active{outline: none;}",
		},
		{
			"descendant rule",
			".g", "span { font-weight: bold; }",
			".g span{font-weight: bold;}",
		},
		{
			"comma selectors",
			".g", "&:hover, & span { color: blue; }",
			".g:hover, .g span{color: blue;}",
		},
		{
			"two levels deep",
			".g", "a { b { color: red; } }",
			".g a b{color: red;}",
		},
		{
			"media wraps context rule",
			".g", "@media (min-width: 600px) { color: red; }",
			"@media (min-width: 600px){.g{color: red;}}",
		},
		{
			"media wraps nested rule",
			".g", "@media print { & span { display: none; } }",
			"@media print{.g span{display: none;}}",
		},
		{
			"comments dropped",
			".g", "color: red; /* note */ &:hover { color: blue; }",
			".g{color: red;}.g:hover{color: blue;}",
		},
		{
			"braces inside strings",
			".g", `content: "}{"; span { x: y; }`,
			`.g{content: "}{";}.g span{x: y;}`,
		},
		{
			"empty input",
			".g", "",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Preprocess(tt.selector, tt.input); got != tt.want {
				t.Errorf("got  %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestPreprocess_Stylesheet(t *testing.T) {
	p := NewPreprocessor(zap.NewNop())

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"top-level declarations dropped",
			"color: red; .a { x: y; }",
			".a{x: y;}",
		},
		{
			"keyframes kept verbatim",
			"@keyframes spin{0% { opacity: 0; } 100% { opacity: 1; }}",
			"@keyframes spin{0%{opacity: 0;}100%{opacity: 1;}}",
		},
		{
			"font-face kept verbatim",
			"@font-face { font-family: X; src: url(a.woff); }",
			"@font-face{font-family: X;src: url(a.woff);}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Preprocess("", tt.input); got != tt.want {
				t.Errorf("got  %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestPreprocess_StableOnFlatOutput(t *testing.T) {
	p := NewPreprocessor(zap.NewNop())

	flat := p.Preprocess(".g", "color: red; &:hover { color: blue; } @media x { margin: 0; }")
	again := p.Preprocess("", flat)
	if again != flat {
		t.Errorf("flat output changed on second pass:\nfirst  %q\nsecond %q", flat, again)
	}
}

func TestPreprocess_MarkersSurvive(t *testing.T) {
	const cls, m = "æ", "ç"
	p := NewPreprocessor(zap.NewNop())

	got := p.Preprocess(cls, "color: "+m+"; &."+m+" { x: y; }")
	want := cls + "{color: " + m + ";}" + cls + "." + m + "{x: y;}"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestPreprocess_KeyframeWrapper(t *testing.T) {
	// The wrapped form used for keyframe templates must come back with its
	// opening sequence byte for byte.
	const cls = "æ"
	p := NewPreprocessor(zap.NewNop())

	got := p.Preprocess("", "@keyframes "+cls+"{0% { opacity: 0; } 100% { opacity: 1; }}")
	want := "@keyframes " + cls + "{0%{opacity: 0;}100%{opacity: 1;}}"
	if got != want {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

func TestSplitTop(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain", "a, b", []string{"a", " b"}},
		{"inside parens", "a:not(.x, .y), b", []string{"a:not(.x, .y)", " b"}},
		{"inside quotes", `a[title="x, y"], b`, []string{`a[title="x, y"]`, " b"}},
		{"no separator", "a b", []string{"a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitTop(tt.input, ',')
			if len(got) != len(tt.want) {
				t.Fatalf("parts = %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("part %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
