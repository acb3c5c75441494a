// Package parser builds gecko ASTs from the pair trees produced by package
// grammar. Expressions are grouped with a precedence climber.
package parser

import (
	"errors"

	"github.com/gecko-lang/gecko/internal/ast"
	"github.com/gecko-lang/gecko/internal/diag"
	"github.com/gecko-lang/gecko/internal/grammar"
	"github.com/gecko-lang/gecko/internal/source"
)

type Option func(*options)

type options struct {
	filename string
}

// WithFilename configures the parser to attribute all emitted spans to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// Parse recognizes src and builds its AST. Any failure is returned as *Error.
func Parse(src string, opts ...Option) (*ast.File, error) {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	idx := source.NewIndex(cfg.filename, src)
	root, err := grammar.Parse(src)
	if err != nil {
		var syntaxErr *grammar.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fromSyntaxError(idx, syntaxErr)
		}
		return nil, err
	}
	return Build(root, idx)
}

// Build converts a file pair into an AST. idx must index the same text the
// pair was recognized from.
func Build(root *grammar.Pair, idx *source.Index) (*ast.File, error) {
	b := &builder{idx: idx}
	if root == nil {
		return nil, b.fail(StructuralAssertionError, diag.CodeStructuralAssertion, grammar.RuleFile,
			source.Span{}, "no file pair to build")
	}
	if root.Rule() != grammar.RuleFile {
		return nil, b.unexpected(grammar.RuleFile, root, grammar.RuleFile)
	}
	return b.buildFile(root)
}

// builder holds the state shared by the per-rule build routines. It is
// single use and not safe for concurrent use.
type builder struct {
	idx *source.Index
}

func (b *builder) span(p *grammar.Pair) source.Span {
	return b.idx.Span(p.Start(), p.End())
}

func (b *builder) tokenFrom(p *grammar.Pair) *ast.Token {
	return ast.NewToken(p.Text(), b.span(p))
}

func (b *builder) identFrom(p *grammar.Pair) *ast.Ident {
	return ast.NewIdent(p.Text(), b.span(p))
}

// next consumes the next child of parent and checks it is one of want.
func (b *builder) next(c *grammar.Pairs, parent *grammar.Pair, want ...grammar.Rule) (*grammar.Pair, error) {
	p, ok := c.Next()
	if !ok {
		return nil, b.missing(parent, want[0])
	}
	for _, r := range want {
		if p.Rule() == r {
			return p, nil
		}
	}
	return nil, b.unexpected(parent.Rule(), p, want...)
}

// delimiter consumes a required punctuation child. Its absence means the
// pair tree disagrees with the grammar.
func (b *builder) delimiter(c *grammar.Pairs, parent *grammar.Pair, want grammar.Rule) (*ast.Token, error) {
	p, ok := c.Peek()
	if !ok || p.Rule() != want {
		err := b.missing(parent, want)
		if ok {
			err.Found = p.Rule().String()
			err.Span = b.span(p)
		}
		return nil, err
	}
	c.Next()
	return b.tokenFrom(p), nil
}

// done asserts that parent has no children left.
func (b *builder) done(c *grammar.Pairs, parent *grammar.Pair) error {
	if p, ok := c.Peek(); ok {
		return b.fail(ParseError, diag.CodeUnexpectedRule, parent.Rule(), b.span(p),
			"in %s: unexpected trailing %s", parent.Rule(), p.Rule())
	}
	return nil
}
