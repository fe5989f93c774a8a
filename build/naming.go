package build

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// Namer produces class names for compiled style templates and animation
// names for compiled keyframes.
type Namer struct {
	prefix        string
	deterministic bool
}

func NewNamer(prefix string, deterministic bool) *Namer {
	return &Namer{prefix: prefix, deterministic: deterministic}
}

// ClassName builds a name from the configured prefix, the slugified template
// name and a random tail. Deterministic mode drops the tail so repeated runs
// produce identical output.
func (n *Namer) ClassName(template string) string {
	parts := make([]string, 0, 3)
	if n.prefix != "" {
		parts = append(parts, n.prefix)
	}
	if s := slug.Make(template); s != "" {
		parts = append(parts, s)
	}
	if !n.deterministic {
		parts = append(parts, uuid.NewString()[:8])
	}
	return strings.Join(parts, "-")
}
