package css

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Format pretty-prints compact CSS for dumps: one declaration per line,
// blocks indented by two spaces. Whitespace is normalized, everything else
// is preserved.
func Format(cssText string) string {
	var b strings.Builder
	depth := 0
	lineStart, pendingSpace := true, false

	writeIndent := func() {
		if lineStart {
			for i := 0; i < depth; i++ {
				b.WriteString("  ")
			}
			lineStart, pendingSpace = false, false
		}
	}

	l := css.NewLexer(parse.NewInputString(cssText))
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			out := strings.TrimRight(b.String(), "\n")
			if out == "" {
				return ""
			}
			return out + "\n"
		case css.LeftBraceToken:
			if lineStart {
				writeIndent()
			} else {
				b.WriteByte(' ')
			}
			b.WriteString("{\n")
			depth++
			lineStart = true
		case css.RightBraceToken:
			if !lineStart {
				b.WriteByte('\n')
				lineStart = true
			}
			if depth > 0 {
				depth--
			}
			writeIndent()
			b.WriteString("}\n")
			lineStart = true
		case css.SemicolonToken:
			b.WriteString(";\n")
			lineStart = true
		case css.WhitespaceToken:
			if !lineStart {
				pendingSpace = true
			}
		case css.CommentToken:
			writeIndent()
			b.Write(data)
			b.WriteByte('\n')
			lineStart = true
		default:
			writeIndent()
			if pendingSpace {
				b.WriteByte(' ')
				pendingSpace = false
			}
			b.Write(data)
		}
	}
}
