// Package grammar recognizes gecko source text and exposes the result as a
// tree of rule pairs. It validates syntax only; building the AST from the
// pairs is the job of package parser.
package grammar

// Parse recognizes src as a gecko file and returns the root file pair.
func Parse(src string) (*Pair, error) {
	lx := NewLexer(src)

	var toks []Token
	for {
		tok := lx.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}
	if len(lx.Errors) > 0 {
		return nil, lx.Errors[0]
	}

	r := &recognizer{input: src, toks: toks}
	return r.file()
}

type recognizer struct {
	input string
	toks  []Token
	pos   int
}

func (r *recognizer) cur() Token {
	return r.toks[r.pos]
}

func (r *recognizer) peekType(n int) TokenType {
	if r.pos+n >= len(r.toks) {
		return EOF
	}
	return r.toks[r.pos+n].Type
}

func (r *recognizer) leaf(rule Rule) *Pair {
	tok := r.cur()
	if tok.Type != EOF {
		r.pos++
	}
	return &Pair{rule: rule, start: tok.Start, end: tok.End, input: r.input}
}

func (r *recognizer) node(rule Rule, children []*Pair) *Pair {
	p := &Pair{rule: rule, input: r.input, children: children}
	if len(children) > 0 {
		p.start = children[0].start
		p.end = children[len(children)-1].end
	} else {
		p.start = r.cur().Start
		p.end = p.start
	}
	return p
}

func (r *recognizer) fail(rule Rule, expected ...string) *SyntaxError {
	tok := r.cur()
	found := "'" + tok.Literal + "'"
	if tok.Type == EOF {
		found = EOF.describe()
	}
	return &SyntaxError{
		Offset:   tok.Start,
		End:      tok.End,
		Rule:     rule,
		Expected: expected,
		Found:    found,
	}
}

// expect consumes a token of type tt as a leaf of the given rule.
func (r *recognizer) expect(parent Rule, tt TokenType, rule Rule) (*Pair, error) {
	if r.cur().Type != tt {
		return nil, r.fail(parent, tt.describe())
	}
	return r.leaf(rule), nil
}

func (r *recognizer) file() (*Pair, error) {
	var children []*Pair
	for r.cur().Type != EOF {
		stmt, err := r.statement(RuleFile)
		if err != nil {
			return nil, err
		}
		children = append(children, stmt)
	}
	children = append(children, r.leaf(RuleEOI))

	p := r.node(RuleFile, children)
	p.start = 0
	p.end = len(r.input)
	return p, nil
}

func (r *recognizer) statement(parent Rule) (*Pair, error) {
	switch r.cur().Type {
	case FUNC:
		return r.functionDefinition()
	case LET:
		return r.let()
	case RETURN:
		return r.sequence(RuleReturnStatement, func(add func(*Pair)) error {
			add(r.leaf(RuleReturnToken))
			expr, err := r.expression()
			if err != nil {
				return err
			}
			add(expr)
			return r.terminate(RuleReturnStatement, add)
		})
	case IMPORT:
		return r.sequence(RuleImportStatement, func(add func(*Pair)) error {
			add(r.leaf(RuleImportToken))
			path, err := r.expect(RuleImportStatement, STRING, RuleString)
			if err != nil {
				return err
			}
			add(path)
			return r.terminate(RuleImportStatement, add)
		})
	case USE:
		return r.useStatement()
	case RBRACE, EOF:
		return nil, r.fail(parent, "statement")
	}

	return r.sequence(RuleExpressionStatement, func(add func(*Pair)) error {
		expr, err := r.expression()
		if err != nil {
			return err
		}
		add(expr)
		return r.terminate(RuleExpressionStatement, add)
	})
}

// sequence collects the children emitted by fn into a pair of the given rule.
func (r *recognizer) sequence(rule Rule, fn func(add func(*Pair)) error) (*Pair, error) {
	var children []*Pair
	if err := fn(func(p *Pair) { children = append(children, p) }); err != nil {
		return nil, err
	}
	return r.node(rule, children), nil
}

func (r *recognizer) terminate(rule Rule, add func(*Pair)) error {
	semi, err := r.expect(rule, SEMICOLON, RuleSemicolon)
	if err != nil {
		return err
	}
	add(semi)
	return nil
}

func (r *recognizer) functionDefinition() (*Pair, error) {
	return r.sequence(RuleFunctionDefinition, func(add func(*Pair)) error {
		add(r.leaf(RuleFuncToken))

		id, err := r.expect(RuleFunctionDefinition, IDENT, RuleIdentifier)
		if err != nil {
			return err
		}
		add(id)

		params, err := r.parameterList()
		if err != nil {
			return err
		}
		add(params)

		output, err := r.sequence(RuleOutput, func(add func(*Pair)) error {
			arrow, err := r.expect(RuleOutput, ARROW, RuleRArrow)
			if err != nil {
				return err
			}
			add(arrow)
			ty, err := r.expect(RuleOutput, IDENT, RuleIdentifier)
			if err != nil {
				return err
			}
			add(ty)
			return nil
		})
		if err != nil {
			return err
		}
		add(output)

		block, err := r.block()
		if err != nil {
			return err
		}
		add(block)
		return nil
	})
}

func (r *recognizer) parameterList() (*Pair, error) {
	return r.sequence(RuleParameterList, func(add func(*Pair)) error {
		lparen, err := r.expect(RuleParameterList, LPAREN, RuleLParen)
		if err != nil {
			return err
		}
		add(lparen)

		if r.cur().Type == IDENT {
			for {
				param, err := r.parameter()
				if err != nil {
					return err
				}
				add(param)
				if r.cur().Type != COMMA {
					break
				}
				add(r.leaf(RuleComma))
			}
		}

		if r.cur().Type != RPAREN {
			if r.cur().Type == IDENT {
				return r.fail(RuleParameterList, COMMA.describe(), RPAREN.describe())
			}
			return r.fail(RuleParameterList, "parameter", RPAREN.describe())
		}
		add(r.leaf(RuleRParen))
		return nil
	})
}

func (r *recognizer) parameter() (*Pair, error) {
	return r.sequence(RuleParameter, func(add func(*Pair)) error {
		add(r.leaf(RuleIdentifier))
		colon, err := r.expect(RuleParameter, COLON, RuleColon)
		if err != nil {
			return err
		}
		add(colon)
		ty, err := r.expect(RuleParameter, IDENT, RuleIdentifier)
		if err != nil {
			return err
		}
		add(ty)
		return nil
	})
}

func (r *recognizer) block() (*Pair, error) {
	return r.sequence(RuleBlock, func(add func(*Pair)) error {
		lbrace, err := r.expect(RuleBlock, LBRACE, RuleLBrace)
		if err != nil {
			return err
		}
		add(lbrace)

		for r.cur().Type != RBRACE {
			if r.cur().Type == EOF {
				return r.fail(RuleBlock, "statement", RBRACE.describe())
			}
			stmt, err := r.statement(RuleBlock)
			if err != nil {
				return err
			}
			add(stmt)
		}
		add(r.leaf(RuleRBrace))
		return nil
	})
}

// let distinguishes declarations from initialisations:
//
//	let x: int;
//	let x: int = 1;
//	let x := 1;
//	let x = 1;
func (r *recognizer) let() (*Pair, error) {
	rule := RuleVariableInitialisation
	switch {
	case r.peekType(2) == COLON && r.peekType(3) == IDENT && r.peekType(4) == SEMICOLON:
		rule = RuleVariableDeclaration
	}

	return r.sequence(rule, func(add func(*Pair)) error {
		add(r.leaf(RuleLetToken))

		id, err := r.expect(rule, IDENT, RuleIdentifier)
		if err != nil {
			return err
		}
		add(id)

		annotated := false
		if r.cur().Type == COLON {
			add(r.leaf(RuleColon))
			if r.cur().Type == IDENT {
				add(r.leaf(RuleIdentifier))
				annotated = true
			}
		}
		if rule == RuleVariableDeclaration {
			return r.terminate(rule, add)
		}

		if r.cur().Type != ASSIGN {
			if annotated {
				return r.fail(rule, ASSIGN.describe(), SEMICOLON.describe())
			}
			return r.fail(rule, COLON.describe(), ASSIGN.describe())
		}
		add(r.leaf(RuleEquals))

		expr, err := r.expression()
		if err != nil {
			return err
		}
		add(expr)
		return r.terminate(rule, add)
	})
}

func (r *recognizer) useStatement() (*Pair, error) {
	return r.sequence(RuleUseStatement, func(add func(*Pair)) error {
		add(r.leaf(RuleUseToken))
		for {
			id, err := r.expect(RuleUseStatement, IDENT, RuleIdentifier)
			if err != nil {
				return err
			}
			add(id)
			if r.cur().Type != DOUBLE_COLON {
				break
			}
			add(r.leaf(RuleScopeResolution))
		}
		return r.terminate(RuleUseStatement, add)
	})
}

// expression recognizes a flat `term (operator term)*` sequence; grouping by
// precedence is left to the consumer.
func (r *recognizer) expression() (*Pair, error) {
	return r.sequence(RuleExpression, func(add func(*Pair)) error {
		for {
			term, err := r.term()
			if err != nil {
				return err
			}
			add(term)

			op, ok := operatorRules[r.cur().Type]
			if !ok {
				return nil
			}
			add(r.leaf(op))
		}
	})
}

func (r *recognizer) term() (*Pair, error) {
	var rule Rule
	switch r.cur().Type {
	case LPAREN:
		return r.sequence(RuleTerm, func(add func(*Pair)) error {
			add(r.leaf(RuleLParen))
			expr, err := r.expression()
			if err != nil {
				return err
			}
			add(expr)
			rparen, err := r.expect(RuleTerm, RPAREN, RuleRParen)
			if err != nil {
				return err
			}
			add(rparen)
			return nil
		})
	case IDENT:
		rule = RuleIdentifier
	case INT:
		rule = RuleInteger
	case FLOAT:
		rule = RuleFloat
	case CHAR:
		rule = RuleCharacter
	case STRING:
		rule = RuleString
	case TRUE, FALSE:
		rule = RuleBoolean
	default:
		return nil, r.fail(RuleTerm, "expression")
	}
	return r.node(RuleTerm, []*Pair{r.leaf(rule)}), nil
}
