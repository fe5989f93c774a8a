package template

import (
	"errors"
	"testing"
)

func TestParse_PlainText(t *testing.T) {
	n, err := Parse("color: red;")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if n.Head != "color: red;" || len(n.Spans) != 0 {
		t.Errorf("unexpected node: %+v", n)
	}
}

func TestParse_Interpolations(t *testing.T) {
	n, err := Parse("color: ${main}; background: ${back};")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if n.Head != "color: " {
		t.Errorf("expected head 'color: ', got %q", n.Head)
	}
	if len(n.Spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(n.Spans))
	}
	if n.Spans[0].Expr != Ident("main") || n.Spans[0].Text != "; background: " {
		t.Errorf("unexpected first span: %+v", n.Spans[0])
	}
	if n.Spans[1].Expr != Ident("back") || n.Spans[1].Text != ";" {
		t.Errorf("unexpected second span: %+v", n.Spans[1])
	}
}

func TestParse_LeadingInterpolation(t *testing.T) {
	n, err := Parse("${child} { color: red; }")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if n.Head != "" {
		t.Errorf("expected empty head, got %q", n.Head)
	}
	if len(n.Spans) != 1 || n.Spans[0].Expr != Ident("child") {
		t.Fatalf("unexpected spans: %+v", n.Spans)
	}
}

func TestParse_Escape(t *testing.T) {
	n, err := Parse("content: '$${notexpr}';")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if n.Head != "content: '${notexpr}';" || len(n.Spans) != 0 {
		t.Errorf("escape not honored: %+v", n)
	}
}

func TestParse_Errors(t *testing.T) {
	for _, text := range []string{"color: ${main", "color: ${};", "color: ${  };"} {
		if _, err := Parse(text); !errors.Is(err, ErrMalformedTemplate) {
			t.Errorf("%q: expected ErrMalformedTemplate, got %v", text, err)
		}
	}
}

func TestParse_StringRendersBack(t *testing.T) {
	const text = "border: ${width}px solid ${color};"
	n, err := Parse(text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := n.String(); got != text {
		t.Errorf("expected %q, got %q", text, got)
	}
}
