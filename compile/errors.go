package compile

import "errors"

// Errors surfaced by the compilation pipeline. All of them are deterministic
// functions of the input, so retrying an identical compilation reproduces the
// identical error. None of them is ever logged and swallowed.
var (
	// ErrReservedCodePoint indicates literal template text containing a
	// character from the marker range. Authors must keep such characters out
	// of templates (CSS escape sequences are the portable alternative).
	ErrReservedCodePoint = errors.New("literal text contains reserved code point")

	// ErrUnbalancedRules indicates processed CSS whose braces do not close
	// back to the top level exactly at the end of the text.
	ErrUnbalancedRules = errors.New("unbalanced rules in processed css")

	// ErrUnexpectedKeyframeOutput indicates that the preprocessor did not
	// return a keyframe body wrapped the same way it was handed over.
	ErrUnexpectedKeyframeOutput = errors.New("unexpected keyframe output")

	// ErrNestedAtRule indicates an at-rule opened inside another at-rule
	// block. The classifier refuses to guess positions there.
	ErrNestedAtRule = errors.New("nested at-rule")

	// ErrUnsupportedKeyframeReference indicates an expression used as a
	// keyframe selector or animation name, where no class concept exists.
	ErrUnsupportedKeyframeReference = errors.New("unsupported expression reference in keyframes")

	// ErrShapeInvariant indicates a structural assumption about processed
	// CSS that did not hold while building the output shape.
	ErrShapeInvariant = errors.New("shape invariant violated")
)
