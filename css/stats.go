package css

import (
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Stats summarizes a stylesheet for build reports.
type Stats struct {
	Rules        int
	AtRules      int
	Declarations int
}

// Measure counts rules and declarations in cssText. Parse errors end the
// count early rather than failing; the numbers are informational.
func Measure(cssText string) Stats {
	var st Stats
	parser := css.NewParser(parse.NewInputString(cssText), false)
	for {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return st
		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar:
			st.Rules++
		case css.BeginAtRuleGrammar, css.AtRuleGrammar:
			st.AtRules++
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			st.Declarations++
		}
	}
}
