package build

import (
	"strings"
	"testing"
)

func TestNamerClassName(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		template string
		want     string
	}{
		{
			name:     "simple name",
			prefix:   "sc",
			template: "button",
			want:     "sc-button",
		},
		{
			name:     "name with spaces and case",
			prefix:   "sc",
			template: "Primary Button",
			want:     "sc-primary-button",
		},
		{
			name:     "name with punctuation",
			prefix:   "app",
			template: "card/header!",
			want:     "app-card-header",
		},
		{
			name:     "empty prefix",
			prefix:   "",
			template: "button",
			want:     "button",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewNamer(tt.prefix, true).ClassName(tt.template)
			if got != tt.want {
				t.Errorf("ClassName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNamerDeterministicStable(t *testing.T) {
	n := NewNamer("sc", true)
	first := n.ClassName("button")
	second := n.ClassName("button")
	if first != second {
		t.Errorf("ClassName() not stable in deterministic mode: %q != %q", first, second)
	}
}

func TestNamerRandomTail(t *testing.T) {
	n := NewNamer("sc", false)

	got := n.ClassName("button")
	if !strings.HasPrefix(got, "sc-button-") {
		t.Fatalf("ClassName() = %q, want %q prefix", got, "sc-button-")
	}
	if tail := strings.TrimPrefix(got, "sc-button-"); len(tail) != 8 {
		t.Errorf("ClassName() tail = %q, want 8 characters", tail)
	}

	if other := n.ClassName("button"); other == got {
		t.Errorf("ClassName() repeated call produced same name %q, expected fresh tail", got)
	}
}
