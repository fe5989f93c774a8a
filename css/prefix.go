package css

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// prefixProperties maps properties to the vendor prefixes still worth
// emitting for them. Prefixed copies go in front of the standard
// declaration so the cascade settles on the unprefixed form.
var prefixProperties = map[string][]string{
	"animation":            {"-webkit-"},
	"animation-name":       {"-webkit-"},
	"appearance":           {"-webkit-", "-moz-"},
	"backdrop-filter":      {"-webkit-"},
	"box-decoration-break": {"-webkit-"},
	"clip-path":            {"-webkit-"},
	"columns":              {"-webkit-"},
	"hyphens":              {"-webkit-", "-ms-"},
	"mask":                 {"-webkit-"},
	"tab-size":             {"-moz-"},
	"text-size-adjust":     {"-webkit-", "-ms-"},
	"transform":            {"-webkit-", "-ms-"},
	"transition":           {"-webkit-"},
	"user-select":          {"-webkit-", "-moz-", "-ms-"},
}

// Prefixer adds vendor-prefixed copies of declarations to processed CSS.
// Declarations containing a rune at or above the reserved threshold are
// left alone: duplicating such a character would corrupt downstream
// bookkeeping that relies on one occurrence per rune.
type Prefixer struct {
	log      *zap.Logger
	reserved rune
}

// NewPrefixer creates a prefixer. reserved is the first rune of the range
// that must never be duplicated; zero disables the guard.
func NewPrefixer(reserved rune, log *zap.Logger) *Prefixer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Prefixer{log: log.Named("css-prefix"), reserved: reserved}
}

// Prefix rewrites cssText with vendor-prefixed declaration copies added.
// Everything else passes through byte for byte.
func (p *Prefixer) Prefix(cssText string) string {
	var b strings.Builder
	var decl strings.Builder
	depth, added := 0, 0

	flush := func(semi bool) {
		d := decl.String()
		decl.Reset()
		if depth > 0 {
			for _, e := range p.expand(d) {
				b.WriteString(e)
				b.WriteByte(';')
				added++
			}
		}
		b.WriteString(d)
		if semi {
			b.WriteByte(';')
		}
	}

	l := css.NewLexer(parse.NewInputString(cssText))
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			b.WriteString(decl.String())
			if added > 0 {
				p.log.Debug("Added vendor prefixes", zap.Int("declarations", added))
			}
			return b.String()
		case css.LeftBraceToken:
			// the pending run was a selector or at-rule prelude
			b.WriteString(decl.String())
			decl.Reset()
			depth++
			b.WriteByte('{')
		case css.RightBraceToken:
			flush(false)
			if depth > 0 {
				depth--
			}
			b.WriteByte('}')
		case css.SemicolonToken:
			flush(true)
		default:
			decl.Write(data)
		}
	}
}

// expand returns the prefixed declarations to emit in front of decl.
func (p *Prefixer) expand(decl string) []string {
	if p.reserved > 0 && strings.ContainsFunc(decl, func(r rune) bool { return r >= p.reserved }) {
		return nil
	}
	prop, val, ok := strings.Cut(decl, ":")
	if !ok {
		return nil
	}
	key := strings.ToLower(strings.TrimSpace(prop))

	var out []string
	for _, pre := range prefixProperties[key] {
		out = append(out, pre+key+":"+val)
	}

	replaceValue := func(from string, to ...string) {
		for _, t := range to {
			if v := strings.Replace(val, from, t, 1); v != val {
				out = append(out, key+":"+v)
			}
		}
	}
	switch key {
	case "display":
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "flex":
			replaceValue("flex", "-webkit-flex", "-ms-flexbox")
		case "inline-flex":
			replaceValue("inline-flex", "-webkit-inline-flex")
		}
	case "position":
		if strings.ToLower(strings.TrimSpace(val)) == "sticky" {
			replaceValue("sticky", "-webkit-sticky")
		}
	}
	return out
}
