// Package css implements the CSS half of template compilation: resolving
// nested rules under a selector context, adding vendor prefixes, and small
// formatting and measuring helpers for build output.
package css

import (
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Preprocessor resolves SCSS-like nesting into a flat stylesheet. It is
// stateless between calls and safe for concurrent use.
type Preprocessor struct {
	log *zap.Logger
}

// NewPreprocessor creates a new nesting preprocessor.
func NewPreprocessor(log *zap.Logger) *Preprocessor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Preprocessor{log: log.Named("css-preprocess")}
}

// nestRule is one node of the authored rule tree. The root node has an empty
// prelude and holds the top-level declarations and rules.
type nestRule struct {
	prelude  string
	atRule   bool
	decls    []string
	children []*nestRule
}

// Preprocess flattens cssText into plain top-level rules. A non-empty
// selector is the context for top-level declarations and the replacement
// for the nesting selector "&"; with an empty selector the text is treated
// as a complete stylesheet and top-level declarations are dropped.
//
// Output is canonical: every rule is "selector{decl;decl;}" with conditional
// at-rule wrappers around it, no whitespace between rules. Character data
// passes through verbatim, so marker characters survive untouched.
func (p *Preprocessor) Preprocess(selector, cssText string) string {
	root := parseNested(cssText)

	var b strings.Builder
	var parents []string
	if selector != "" {
		parents = []string{selector}
		if len(root.decls) > 0 {
			writeRule(&b, nil, selector, root.decls)
		}
	} else if len(root.decls) > 0 {
		p.log.Debug("Dropping declarations without a selector context", zap.Int("count", len(root.decls)))
	}
	p.emitRules(&b, root.children, parents, nil)

	out := b.String()
	p.log.Debug("Resolved nesting", zap.Int("in", len(cssText)), zap.Int("out", len(out)))
	return out
}

// parseNested builds the rule tree with the CSS tokenizer, so braces inside
// strings, urls and comments cannot derail block tracking. Token data is
// copied immediately; it is only valid until the next Next call.
func parseNested(cssText string) *nestRule {
	root := &nestRule{}
	stack := []*nestRule{root}
	var run strings.Builder

	closeDecl := func() {
		if s := strings.TrimSpace(run.String()); s != "" {
			top := stack[len(stack)-1]
			top.decls = append(top.decls, s)
		}
		run.Reset()
	}

	l := css.NewLexer(parse.NewInputString(cssText))
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			closeDecl()
			return root
		case css.LeftBraceToken:
			top := stack[len(stack)-1]
			child := &nestRule{prelude: strings.TrimSpace(run.String())}
			child.atRule = strings.HasPrefix(child.prelude, "@")
			run.Reset()
			top.children = append(top.children, child)
			stack = append(stack, child)
		case css.RightBraceToken:
			closeDecl()
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case css.SemicolonToken:
			closeDecl()
		case css.CommentToken:
			// comments do not survive preprocessing
		default:
			run.Write(data)
		}
	}
}

// emitRules renders a list of sibling rules resolved against the parent
// selectors, wrapping them in the enclosing conditional at-rule preludes.
// A rule's own declarations are written before its nested rules.
func (p *Preprocessor) emitRules(b *strings.Builder, rules []*nestRule, parents, media []string) {
	for _, r := range rules {
		switch {
		case r.atRule && isConditional(r.prelude):
			inner := make([]string, len(media)+1)
			copy(inner, media)
			inner[len(media)] = r.prelude
			if len(r.decls) > 0 {
				if len(parents) > 0 {
					writeRule(b, inner, strings.Join(parents, ", "), r.decls)
				} else {
					p.log.Debug("Dropping conditional declarations without a selector context",
						zap.String("prelude", r.prelude), zap.Int("count", len(r.decls)))
				}
			}
			p.emitRules(b, r.children, parents, inner)
		case r.atRule:
			// @keyframes, @font-face and the like keep their body as-is.
			writeVerbatim(b, media, r)
		default:
			sels := resolveSelectors(parents, splitTop(r.prelude, ','))
			if len(r.decls) > 0 {
				writeRule(b, media, strings.Join(sels, ", "), r.decls)
			}
			p.emitRules(b, r.children, sels, media)
		}
	}
}

func writeRule(b *strings.Builder, media []string, selector string, decls []string) {
	for _, m := range media {
		b.WriteString(m)
		b.WriteByte('{')
	}
	b.WriteString(selector)
	b.WriteByte('{')
	for _, d := range decls {
		b.WriteString(d)
		b.WriteByte(';')
	}
	b.WriteByte('}')
	for range media {
		b.WriteByte('}')
	}
}

// writeVerbatim renders an at-rule subtree without selector resolution.
// Nested preludes (keyframe offsets, font-face has none) stay untouched.
func writeVerbatim(b *strings.Builder, media []string, r *nestRule) {
	for _, m := range media {
		b.WriteString(m)
		b.WriteByte('{')
	}
	writeRaw(b, r)
	for range media {
		b.WriteByte('}')
	}
}

func writeRaw(b *strings.Builder, r *nestRule) {
	b.WriteString(r.prelude)
	b.WriteByte('{')
	for _, d := range r.decls {
		b.WriteString(d)
		b.WriteByte(';')
	}
	for _, c := range r.children {
		writeRaw(b, c)
	}
	b.WriteByte('}')
}

// resolveSelectors combines every own selector with every parent. An "&"
// substitutes the parent in place, anything else becomes a descendant.
func resolveSelectors(parents, own []string) []string {
	if len(parents) == 0 {
		out := make([]string, 0, len(own))
		for _, o := range own {
			out = append(out, strings.TrimSpace(o))
		}
		return out
	}
	out := make([]string, 0, len(parents)*len(own))
	for _, o := range own {
		o = strings.TrimSpace(o)
		for _, parent := range parents {
			if strings.ContainsRune(o, '&') {
				out = append(out, strings.ReplaceAll(o, "&", parent))
			} else {
				out = append(out, parent+" "+o)
			}
		}
	}
	return out
}

// splitTop splits on a separator at paren, bracket and quote depth zero.
func splitTop(s string, sep byte) []string {
	var parts []string
	var quote byte
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// isConditional reports whether an at-rule prelude opens a conditional
// group rule, the kind that wraps resolved rules instead of owning them.
func isConditional(prelude string) bool {
	switch atKeyword(prelude) {
	case "@media", "@supports", "@container":
		return true
	}
	return false
}

// atKeyword extracts the lowercased at-keyword from a prelude.
func atKeyword(prelude string) string {
	for i, r := range prelude {
		if r == ' ' || r == '\t' || r == '\n' || r == '(' {
			return strings.ToLower(prelude[:i])
		}
	}
	return strings.ToLower(prelude)
}
