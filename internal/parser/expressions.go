package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gecko-lang/gecko/internal/ast"
	"github.com/gecko-lang/gecko/internal/diag"
	"github.com/gecko-lang/gecko/internal/grammar"
)

func (b *builder) buildExpression(p *grammar.Pair) (ast.Expr, error) {
	if p.Rule() != grammar.RuleExpression {
		return nil, b.unexpected(grammar.RuleExpression, p, grammar.RuleExpression)
	}

	c := &climber{b: b, parent: p, pairs: p.Children().Rest()}
	expr, err := c.climb(precedenceAssign)
	if err != nil {
		return nil, err
	}
	if c.pos != len(c.pairs) {
		return nil, b.fail(StructuralAssertionError, diag.CodeStructuralAssertion, p.Rule(),
			b.span(c.pairs[c.pos]), "expression has unconsumed %s", c.pairs[c.pos].Rule())
	}
	return expr, nil
}

// buildTerm handles both a term pair and a bare value pair.
func (b *builder) buildTerm(p *grammar.Pair) (ast.Expr, error) {
	if p.Rule() != grammar.RuleTerm {
		return b.buildValue(p)
	}

	c := p.Children()
	first, ok := c.Peek()
	if !ok {
		return nil, b.missing(p, grammar.RuleExpression)
	}
	if first.Rule() != grammar.RuleLParen {
		c.Next()
		value, err := b.buildValue(first)
		if err != nil {
			return nil, err
		}
		if err := b.done(c, p); err != nil {
			return nil, err
		}
		return value, nil
	}

	lparen, err := b.delimiter(c, p, grammar.RuleLParen)
	if err != nil {
		return nil, err
	}
	inner, err := b.next(c, p, grammar.RuleExpression)
	if err != nil {
		return nil, err
	}
	expr, err := b.buildExpression(inner)
	if err != nil {
		return nil, err
	}
	rparen, err := b.delimiter(c, p, grammar.RuleRParen)
	if err != nil {
		return nil, err
	}
	if err := b.done(c, p); err != nil {
		return nil, err
	}
	return ast.NewTerm(lparen, expr, rparen), nil
}

func (b *builder) buildValue(p *grammar.Pair) (ast.Expr, error) {
	span := b.span(p)
	text := p.Text()

	switch p.Rule() {
	case grammar.RuleIdentifier:
		return b.identFrom(p), nil
	case grammar.RuleBoolean:
		return ast.NewBoolLit(text == "true", span), nil
	case grammar.RuleInteger:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, b.fail(ParseError, diag.CodeInvalidLiteral, p.Rule(), span,
				"integer literal %s does not fit in 64 bits", text)
		}
		return ast.NewIntegerLit(v, text, span), nil
	case grammar.RuleFloat:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, b.fail(ParseError, diag.CodeInvalidLiteral, p.Rule(), span,
				"invalid float literal %s", text)
		}
		return ast.NewFloatLit(v, text, span), nil
	case grammar.RuleCharacter:
		decoded, ok := unescape(strings.TrimSuffix(strings.TrimPrefix(text, "'"), "'"))
		if !ok || utf8.RuneCountInString(decoded) != 1 {
			return nil, b.fail(ParseError, diag.CodeInvalidLiteral, p.Rule(), span,
				"invalid character literal %s", text)
		}
		r, _ := utf8.DecodeRuneInString(decoded)
		return ast.NewCharLit(r, text, span), nil
	case grammar.RuleString:
		decoded, ok := unescape(strings.TrimSuffix(strings.TrimPrefix(text, `"`), `"`))
		if !ok {
			return nil, b.fail(ParseError, diag.CodeInvalidLiteral, p.Rule(), span,
				"invalid escape sequence in string literal %s", text)
		}
		return ast.NewStringLit(decoded, text, span), nil
	default:
		return nil, b.unexpected(grammar.RuleTerm, p,
			grammar.RuleLParen, grammar.RuleFloat, grammar.RuleInteger, grammar.RuleCharacter,
			grammar.RuleString, grammar.RuleBoolean, grammar.RuleIdentifier)
	}
}

// unescape decodes the backslash escapes gecko literals support.
func unescape(s string) (string, bool) {
	if !strings.ContainsRune(s, '\\') {
		return s, true
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' {
			sb.WriteByte(ch)
			continue
		}
		i++
		if i >= len(s) {
			return "", false
		}
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		case '\\', '\'', '"':
			sb.WriteByte(s[i])
		default:
			return "", false
		}
	}
	return sb.String(), true
}
