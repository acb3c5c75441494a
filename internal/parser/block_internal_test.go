package parser

import (
	"testing"

	"github.com/gecko-lang/gecko/internal/grammar"
	"github.com/gecko-lang/gecko/internal/source"
)

func TestBuildBlockRequiresClosingBrace(t *testing.T) {
	const in = "{ 1; "
	stmt := grammar.NewPair(grammar.RuleExpressionStatement, in, 2, 4,
		grammar.NewPair(grammar.RuleExpression, in, 2, 3,
			grammar.NewPair(grammar.RuleTerm, in, 2, 3,
				grammar.NewPair(grammar.RuleInteger, in, 2, 3))),
		grammar.NewPair(grammar.RuleSemicolon, in, 3, 4))
	block := grammar.NewPair(grammar.RuleBlock, in, 0, 5,
		grammar.NewPair(grammar.RuleLBrace, in, 0, 1),
		stmt)

	b := &builder{idx: source.NewIndex("", in)}
	_, err := b.buildBlock(block)
	if err == nil {
		t.Fatalf("expected error for block without closing brace")
	}
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if perr.Kind != StructuralAssertionError {
		t.Fatalf("expected StructuralAssertionError, got %s", perr.Kind)
	}
	if perr.Message != "block is missing its rbrace" {
		t.Fatalf("unexpected message %q", perr.Message)
	}
}

func TestBuildParameterListRequiresCommas(t *testing.T) {
	const in = "(a: int b: int)"
	param := func(start int) *grammar.Pair {
		return grammar.NewPair(grammar.RuleParameter, in, start, start+6,
			grammar.NewPair(grammar.RuleIdentifier, in, start, start+1),
			grammar.NewPair(grammar.RuleColon, in, start+1, start+2),
			grammar.NewPair(grammar.RuleIdentifier, in, start+3, start+6))
	}
	list := grammar.NewPair(grammar.RuleParameterList, in, 0, 15,
		grammar.NewPair(grammar.RuleLParen, in, 0, 1),
		param(1),
		param(8),
		grammar.NewPair(grammar.RuleRParen, in, 14, 15))

	b := &builder{idx: source.NewIndex("", in)}
	_, err := b.buildParameterList(list)
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if perr.Kind != StructuralAssertionError || perr.Message != "parameter is missing its comma" {
		t.Fatalf("unexpected error %s: %q", perr.Kind, perr.Message)
	}
}

func TestOperatorTableIsOrdered(t *testing.T) {
	tighter := [][2]grammar.Rule{
		{grammar.RuleLogicalOr, grammar.RuleAssignment},
		{grammar.RuleLogicalAnd, grammar.RuleLogicalOr},
		{grammar.RuleEqual, grammar.RuleLogicalAnd},
		{grammar.RuleLessThan, grammar.RuleEqual},
		{grammar.RuleBitwiseXor, grammar.RuleLessThan},
		{grammar.RuleBitwiseOr, grammar.RuleBitwiseXor},
		{grammar.RuleBitwiseAnd, grammar.RuleBitwiseOr},
		{grammar.RuleShiftLeft, grammar.RuleBitwiseAnd},
		{grammar.RulePlus, grammar.RuleShiftLeft},
		{grammar.RuleMultiply, grammar.RulePlus},
		{grammar.RuleExponent, grammar.RuleMultiply},
		{grammar.RuleCast, grammar.RuleExponent},
	}
	for _, pair := range tighter {
		if operators[pair[0]].precedence <= operators[pair[1]].precedence {
			t.Errorf("expected %s to bind tighter than %s", pair[0], pair[1])
		}
	}
	for _, r := range []grammar.Rule{grammar.RuleAssignment, grammar.RuleExponent} {
		if operators[r].assoc != assocRight {
			t.Errorf("expected %s to be right-associative", r)
		}
	}
}
