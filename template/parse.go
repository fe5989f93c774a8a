package template

import (
	"fmt"
	"strings"
)

// Ident is the expression handle used when templates come from plain text:
// the identifier written between ${ and }.
type Ident string

// Parse builds a template node from text using ${name} interpolation syntax.
// Doubling the dollar sign ($${name}) escapes the interpolation and yields
// the literal text ${name}.
func Parse(text string) (*Node, error) {
	n := &Node{}
	var buf strings.Builder

	closeRun := func() {
		if len(n.Spans) == 0 {
			n.Head = buf.String()
		} else {
			n.Spans[len(n.Spans)-1].Text = buf.String()
		}
		buf.Reset()
	}

	for i := 0; i < len(text); {
		j := strings.Index(text[i:], "${")
		if j < 0 {
			buf.WriteString(text[i:])
			break
		}
		j += i
		if j > i && text[j-1] == '$' {
			buf.WriteString(text[i : j-1])
			buf.WriteString("${")
			i = j + 2
			continue
		}
		end := strings.IndexByte(text[j+2:], '}')
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated interpolation at offset %d", ErrMalformedTemplate, j)
		}
		name := strings.TrimSpace(text[j+2 : j+2+end])
		if name == "" {
			return nil, fmt.Errorf("%w: empty interpolation at offset %d", ErrMalformedTemplate, j)
		}
		buf.WriteString(text[i:j])
		closeRun()
		n.Spans = append(n.Spans, Span{Expr: Ident(name)})
		i = j + 2 + end + 1
	}
	closeRun()
	return n, nil
}
