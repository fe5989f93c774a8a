package compile

import (
	"fmt"
	"strings"
)

// PreprocessFunc resolves CSS nesting under a selector context. An empty
// context means cssText is already a complete stylesheet. Implementations
// must be pure and deterministic and must not reorder or duplicate marker
// characters.
type PreprocessFunc func(selectorContext, cssText string) string

// PrefixFunc adds vendor prefixes to processed CSS under the same purity
// contract as PreprocessFunc.
type PrefixFunc func(cssText string) string

// compileCSS runs flat template text through the external collaborators.
// Keyframe bodies are wrapped in a synthetic @keyframes rule for the
// duration of the preprocess call; the wrapper must come back intact or the
// output cannot be trusted. Non-keyframe text is preprocessed under the
// class-name marker acting as the selector context, then vendor-prefixed.
func (c *Compiler) compileCSS(flat string, keyframes bool) (string, error) {
	if keyframes {
		open := "@keyframes " + string(MarkerBase) + "{"
		processed := c.preprocess("", open+flat+"}")
		body, ok := strings.CutPrefix(processed, open)
		if !ok {
			return "", fmt.Errorf("%w: missing %q prefix", ErrUnexpectedKeyframeOutput, open)
		}
		body, ok = strings.CutSuffix(body, "}")
		if !ok {
			return "", fmt.Errorf("%w: missing closing brace", ErrUnexpectedKeyframeOutput)
		}
		return body, nil
	}
	return c.prefix(c.preprocess(string(MarkerBase), flat)), nil
}
