// Package compile turns tagged styling templates into optimized CSS rule
// output: expressions are encoded as reserved marker characters, the
// combined text is run through an external nesting preprocessor and vendor
// prefixer, and the processed rules are classified and folded into the most
// compact of four output shapes.
package compile

import (
	"go.uber.org/zap"

	"stc/template"
)

// Compiler compiles one template per Compile call. It holds only the two
// collaborator functions and a logger, keeps no state between calls and is
// safe for concurrent use.
type Compiler struct {
	log        *zap.Logger
	preprocess PreprocessFunc
	prefix     PrefixFunc
}

// NewCompiler creates a compiler around the external preprocess and prefix
// collaborators. Both must be non-nil.
func NewCompiler(preprocess PreprocessFunc, prefix PrefixFunc, log *zap.Logger) *Compiler {
	if preprocess == nil || prefix == nil {
		panic("compile: preprocess and prefix collaborators are required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Compiler{
		log:        log.Named("compiler"),
		preprocess: preprocess,
		prefix:     prefix,
	}
}

// Compile extracts the template's segments, encodes them into marker text,
// runs the CSS pipeline and folds the processed rules into an Output.
// keyframes marks the template as the body of an animation definition.
// Compilation of one template either succeeds completely or fails with one
// of the package errors; there is no partial output.
func (c *Compiler) Compile(node *template.Node, keyframes bool) (*Output, error) {
	segs, err := template.Extract(node)
	if err != nil {
		return nil, err
	}

	flat, tbl, err := encode(segs)
	if err != nil {
		return nil, err
	}
	c.log.Debug("Encoded template",
		zap.Int("segments", len(segs)), zap.Int("expressions", len(tbl.exprs)), zap.Bool("keyframes", keyframes))

	processed, err := c.compileCSS(flat, keyframes)
	if err != nil {
		return nil, err
	}

	blocks, err := splitRules(processed, keyframes)
	if err != nil {
		return nil, err
	}

	slots := newSlotTable()
	classified := make([][]Term, 0, len(blocks))
	for _, b := range blocks {
		terms, err := classifyBlock(b, tbl, slots)
		if err != nil {
			return nil, err
		}
		classified = append(classified, terms)
	}

	out, err := selectShape(blocks, classified, tbl, slots, keyframes)
	if err != nil {
		return nil, err
	}
	c.log.Debug("Compiled template",
		zap.Stringer("shape", out.Kind), zap.Int("blocks", len(blocks)), zap.Int("params", len(out.Params)))
	return out, nil
}
