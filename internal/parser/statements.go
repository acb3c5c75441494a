package parser

import (
	"github.com/gecko-lang/gecko/internal/ast"
	"github.com/gecko-lang/gecko/internal/grammar"
)

func (b *builder) buildFile(p *grammar.Pair) (*ast.File, error) {
	var stmts []ast.Stmt
	c := p.Children()
	for {
		child, ok := c.Next()
		if !ok || child.Rule() == grammar.RuleEOI {
			break
		}
		stmt, err := b.buildStatement(child)
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return ast.NewFile(stmts, b.span(p)), nil
}

// buildStatement dispatches on the statement rule. Rules without an AST
// form, such as imports, yield a nil statement and are dropped.
func (b *builder) buildStatement(p *grammar.Pair) (ast.Stmt, error) {
	switch p.Rule() {
	case grammar.RuleFunctionDefinition:
		return b.buildFunctionDefinition(p)
	case grammar.RuleVariableDeclaration:
		return b.buildVariableDeclaration(p)
	case grammar.RuleVariableInitialisation:
		return b.buildVariableInitialisation(p)
	case grammar.RuleReturnStatement:
		return b.buildReturnStatement(p)
	case grammar.RuleExpressionStatement:
		return b.buildExpressionStatement(p)
	default:
		return nil, nil
	}
}

func (b *builder) buildBlock(p *grammar.Pair) (*ast.Block, error) {
	c := p.Children()
	lbrace, err := b.delimiter(c, p, grammar.RuleLBrace)
	if err != nil {
		return nil, err
	}

	var stmts []ast.Stmt
	for {
		child, ok := c.Peek()
		if !ok {
			return nil, b.missing(p, grammar.RuleRBrace)
		}
		if child.Rule() == grammar.RuleRBrace {
			break
		}
		c.Next()
		stmt, err := b.buildStatement(child)
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	rbrace, err := b.delimiter(c, p, grammar.RuleRBrace)
	if err != nil {
		return nil, err
	}
	if err := b.done(c, p); err != nil {
		return nil, err
	}
	return ast.NewBlock(lbrace, stmts, rbrace, b.span(p)), nil
}

func (b *builder) buildParameterList(p *grammar.Pair) (*ast.ParameterList, error) {
	c := p.Children()
	lparen, err := b.delimiter(c, p, grammar.RuleLParen)
	if err != nil {
		return nil, err
	}

	var entries []ast.ParameterEntry
	for {
		child, ok := c.Peek()
		if !ok {
			return nil, b.missing(p, grammar.RuleRParen)
		}
		if child.Rule() == grammar.RuleRParen {
			break
		}
		if child.Rule() != grammar.RuleParameter {
			return nil, b.unexpected(p.Rule(), child, grammar.RuleParameter, grammar.RuleRParen)
		}
		c.Next()

		param, err := b.buildParameter(child)
		if err != nil {
			return nil, err
		}
		entry := ast.ParameterEntry{Param: param}

		// Every parameter but the last is followed by its comma.
		if next, ok := c.Peek(); ok && next.Rule() == grammar.RuleComma {
			c.Next()
			entry.Comma = b.tokenFrom(next)
		} else if ok && next.Rule() == grammar.RuleParameter {
			return nil, b.missing(child, grammar.RuleComma)
		}
		entries = append(entries, entry)
	}

	rparen, err := b.delimiter(c, p, grammar.RuleRParen)
	if err != nil {
		return nil, err
	}
	if err := b.done(c, p); err != nil {
		return nil, err
	}
	return ast.NewParameterList(lparen, entries, rparen, b.span(p)), nil
}

func (b *builder) buildParameter(p *grammar.Pair) (*ast.Parameter, error) {
	c := p.Children()
	name, err := b.next(c, p, grammar.RuleIdentifier)
	if err != nil {
		return nil, err
	}
	colon, err := b.delimiter(c, p, grammar.RuleColon)
	if err != nil {
		return nil, err
	}
	typ, err := b.buildTypeSpecifier(c, p)
	if err != nil {
		return nil, err
	}
	if err := b.done(c, p); err != nil {
		return nil, err
	}
	return ast.NewParameter(b.identFrom(name), colon, typ, b.span(p)), nil
}

func (b *builder) buildOutput(p *grammar.Pair) (*ast.Output, error) {
	c := p.Children()
	arrow, err := b.delimiter(c, p, grammar.RuleRArrow)
	if err != nil {
		return nil, err
	}
	typ, err := b.buildTypeSpecifier(c, p)
	if err != nil {
		return nil, err
	}
	if err := b.done(c, p); err != nil {
		return nil, err
	}
	return ast.NewOutput(arrow, typ, b.span(p)), nil
}

func (b *builder) buildTypeSpecifier(c *grammar.Pairs, parent *grammar.Pair) (*ast.TypeSpecifier, error) {
	id, err := b.next(c, parent, grammar.RuleIdentifier)
	if err != nil {
		return nil, err
	}
	return ast.NewTypeSpecifier(b.identFrom(id)), nil
}

func (b *builder) buildFunctionDefinition(p *grammar.Pair) (*ast.FunctionDefinition, error) {
	c := p.Children()
	fn, err := b.delimiter(c, p, grammar.RuleFuncToken)
	if err != nil {
		return nil, err
	}
	name, err := b.next(c, p, grammar.RuleIdentifier)
	if err != nil {
		return nil, err
	}

	paramsPair, err := b.next(c, p, grammar.RuleParameterList)
	if err != nil {
		return nil, err
	}
	params, err := b.buildParameterList(paramsPair)
	if err != nil {
		return nil, err
	}

	outputPair, err := b.next(c, p, grammar.RuleOutput)
	if err != nil {
		return nil, err
	}
	output, err := b.buildOutput(outputPair)
	if err != nil {
		return nil, err
	}

	bodyPair, err := b.next(c, p, grammar.RuleBlock)
	if err != nil {
		return nil, err
	}
	body, err := b.buildBlock(bodyPair)
	if err != nil {
		return nil, err
	}
	if err := b.done(c, p); err != nil {
		return nil, err
	}

	sig := ast.NewSignature(fn, b.identFrom(name), params, output)
	return ast.NewFunctionDefinition(sig, body, b.span(p)), nil
}

func (b *builder) buildVariableDeclaration(p *grammar.Pair) (*ast.VariableDeclaration, error) {
	c := p.Children()
	let, err := b.delimiter(c, p, grammar.RuleLetToken)
	if err != nil {
		return nil, err
	}
	name, err := b.next(c, p, grammar.RuleIdentifier)
	if err != nil {
		return nil, err
	}
	colon, err := b.delimiter(c, p, grammar.RuleColon)
	if err != nil {
		return nil, err
	}
	typ, err := b.buildTypeSpecifier(c, p)
	if err != nil {
		return nil, err
	}
	semi, err := b.delimiter(c, p, grammar.RuleSemicolon)
	if err != nil {
		return nil, err
	}
	if err := b.done(c, p); err != nil {
		return nil, err
	}
	return ast.NewVariableDeclaration(let, b.identFrom(name), colon, typ, semi, b.span(p)), nil
}

// buildVariableInitialisation accepts the three annotation shapes:
//
//	let x: int = 1;
//	let x: = 1;
//	let x = 1;
func (b *builder) buildVariableInitialisation(p *grammar.Pair) (*ast.VariableInitialisation, error) {
	c := p.Children()
	let, err := b.delimiter(c, p, grammar.RuleLetToken)
	if err != nil {
		return nil, err
	}
	name, err := b.next(c, p, grammar.RuleIdentifier)
	if err != nil {
		return nil, err
	}

	var (
		colon *ast.Token
		typ   *ast.TypeSpecifier
	)
	if next, ok := c.Peek(); ok && next.Rule() == grammar.RuleColon {
		c.Next()
		colon = b.tokenFrom(next)
		if next, ok := c.Peek(); ok && next.Rule() == grammar.RuleIdentifier {
			if typ, err = b.buildTypeSpecifier(c, p); err != nil {
				return nil, err
			}
		}
	}

	equals, err := b.delimiter(c, p, grammar.RuleEquals)
	if err != nil {
		return nil, err
	}
	valuePair, err := b.next(c, p, grammar.RuleExpression)
	if err != nil {
		return nil, err
	}
	value, err := b.buildExpression(valuePair)
	if err != nil {
		return nil, err
	}
	semi, err := b.delimiter(c, p, grammar.RuleSemicolon)
	if err != nil {
		return nil, err
	}
	if err := b.done(c, p); err != nil {
		return nil, err
	}
	return ast.NewVariableInitialisation(let, b.identFrom(name), colon, typ, equals, value, semi, b.span(p)), nil
}

func (b *builder) buildReturnStatement(p *grammar.Pair) (*ast.ReturnStatement, error) {
	c := p.Children()
	ret, err := b.delimiter(c, p, grammar.RuleReturnToken)
	if err != nil {
		return nil, err
	}
	value, semi, err := b.buildTerminatedExpression(c, p)
	if err != nil {
		return nil, err
	}
	return ast.NewReturnStatement(ret, value, semi, b.span(p)), nil
}

func (b *builder) buildExpressionStatement(p *grammar.Pair) (*ast.ExpressionStatement, error) {
	value, semi, err := b.buildTerminatedExpression(p.Children(), p)
	if err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(value, semi, b.span(p)), nil
}

// buildTerminatedExpression builds the `expression ;` tail shared by return
// and expression statements.
func (b *builder) buildTerminatedExpression(c *grammar.Pairs, p *grammar.Pair) (ast.Expr, *ast.Token, error) {
	exprPair, err := b.next(c, p, grammar.RuleExpression)
	if err != nil {
		return nil, nil, err
	}
	value, err := b.buildExpression(exprPair)
	if err != nil {
		return nil, nil, err
	}
	semi, err := b.delimiter(c, p, grammar.RuleSemicolon)
	if err != nil {
		return nil, nil, err
	}
	if err := b.done(c, p); err != nil {
		return nil, nil, err
	}
	return value, semi, nil
}
