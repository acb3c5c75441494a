package parser

import (
	"github.com/gecko-lang/gecko/internal/ast"
	"github.com/gecko-lang/gecko/internal/diag"
	"github.com/gecko-lang/gecko/internal/grammar"
)

type associativity int

const (
	assocLeft associativity = iota
	assocRight
)

type operatorInfo struct {
	precedence int
	assoc      associativity
}

const (
	precedenceAssign = iota + 1
	precedenceOr
	precedenceAnd
	precedenceEquality
	precedenceComparison
	precedenceBitXor
	precedenceBitOr
	precedenceBitAnd
	precedenceShift
	precedenceSum
	precedenceProduct
	precedenceExponent
	precedenceCast
)

// operators is the binary operator table, loosest binding first.
var operators = map[grammar.Rule]operatorInfo{
	grammar.RuleAssignment:         {precedenceAssign, assocRight},
	grammar.RuleLogicalOr:          {precedenceOr, assocLeft},
	grammar.RuleLogicalAnd:         {precedenceAnd, assocLeft},
	grammar.RuleEqual:              {precedenceEquality, assocLeft},
	grammar.RuleNotEqual:           {precedenceEquality, assocLeft},
	grammar.RuleGreaterThan:        {precedenceComparison, assocLeft},
	grammar.RuleLessThan:           {precedenceComparison, assocLeft},
	grammar.RuleGreaterThanOrEqual: {precedenceComparison, assocLeft},
	grammar.RuleLessThanOrEqual:    {precedenceComparison, assocLeft},
	grammar.RuleBitwiseXor:         {precedenceBitXor, assocLeft},
	grammar.RuleBitwiseOr:          {precedenceBitOr, assocLeft},
	grammar.RuleBitwiseAnd:         {precedenceBitAnd, assocLeft},
	grammar.RuleShiftLeft:          {precedenceShift, assocLeft},
	grammar.RuleShiftRight:         {precedenceShift, assocLeft},
	grammar.RulePlus:               {precedenceSum, assocLeft},
	grammar.RuleMinus:              {precedenceSum, assocLeft},
	grammar.RuleMultiply:           {precedenceProduct, assocLeft},
	grammar.RuleDivide:             {precedenceProduct, assocLeft},
	grammar.RuleExponent:           {precedenceExponent, assocRight},
	grammar.RuleCast:               {precedenceCast, assocLeft},
}

// climber folds the flat `term (operator term)*` children of an expression
// pair into a binary operator tree.
type climber struct {
	b      *builder
	parent *grammar.Pair
	pairs  []*grammar.Pair
	pos    int
}

func (c *climber) operand() (ast.Expr, error) {
	if c.pos >= len(c.pairs) {
		return nil, c.b.missing(c.parent, grammar.RuleTerm)
	}
	p := c.pairs[c.pos]
	c.pos++
	return c.b.buildTerm(p)
}

// climb parses operands joined by operators binding at least as tightly as
// minPrec. Left-associative operators parse their right side one level
// tighter so equal-precedence chains fold to the left.
func (c *climber) climb(minPrec int) (ast.Expr, error) {
	left, err := c.operand()
	if err != nil {
		return nil, err
	}

	for c.pos < len(c.pairs) {
		opPair := c.pairs[c.pos]
		info, ok := operators[opPair.Rule()]
		if !ok {
			return nil, c.b.fail(ParseError, diag.CodeNotAnOperator, grammar.RuleExpression,
				c.b.span(opPair), "rule %s isn't an operator", opPair.Rule())
		}
		if info.precedence < minPrec {
			break
		}
		c.pos++

		next := info.precedence + 1
		if info.assoc == assocRight {
			next = info.precedence
		}
		right, err := c.climb(next)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOperator(left, c.b.tokenFrom(opPair), right)
	}

	return left, nil
}
