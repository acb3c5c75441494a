package ast

import "github.com/gecko-lang/gecko/internal/source"

// Node represents any AST node with an associated source span. The set of
// node types is closed: only types in this package implement Node.
type Node interface {
	Span() source.Span
	astNode()
}

// Expr represents an expression node. Expressions carry the type resolved for
// them by the checker.
type Expr interface {
	Node
	ResolvedType() (Type, bool)
	SetResolvedType(Type)
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// typeSlot stores the checker's annotation for an expression.
type typeSlot struct {
	typ      Type
	resolved bool
}

// ResolvedType returns the annotated type and whether the checker set one.
func (s *typeSlot) ResolvedType() (Type, bool) { return s.typ, s.resolved }

// SetResolvedType records the type of the expression.
func (s *typeSlot) SetResolvedType(t Type) {
	s.typ = t
	s.resolved = true
}

// Token is a piece of matched source text such as a keyword or delimiter.
type Token struct {
	Value string
	span  source.Span
}

// NewToken constructs a token.
func NewToken(value string, span source.Span) *Token {
	return &Token{Value: value, span: span}
}

// Span returns the token span.
func (t *Token) Span() source.Span { return t.span }

func (*Token) astNode() {}

// File is the root of a compilation unit.
type File struct {
	Stmts []Stmt
	span  source.Span
}

// NewFile constructs a file node with the provided span.
func NewFile(stmts []Stmt, span source.Span) *File {
	return &File{Stmts: stmts, span: span}
}

// Span returns the span covering the entire file.
func (f *File) Span() source.Span { return f.span }

func (*File) astNode() {}

// Block is a brace-delimited statement sequence.
type Block struct {
	LBrace *Token
	Stmts  []Stmt
	RBrace *Token
	span   source.Span
}

// NewBlock constructs a block node.
func NewBlock(lbrace *Token, stmts []Stmt, rbrace *Token, span source.Span) *Block {
	return &Block{
		LBrace: lbrace,
		Stmts:  stmts,
		RBrace: rbrace,
		span:   span,
	}
}

// Span returns the block span.
func (b *Block) Span() source.Span { return b.span }

func (*Block) astNode() {}

// TypeSpecifier names a type in a declaration or signature.
type TypeSpecifier struct {
	Ident *Ident
	span  source.Span
}

// NewTypeSpecifier constructs a type specifier spanning its identifier.
func NewTypeSpecifier(id *Ident) *TypeSpecifier {
	return &TypeSpecifier{Ident: id, span: id.Span()}
}

// Span returns the specifier span.
func (t *TypeSpecifier) Span() source.Span { return t.span }

func (*TypeSpecifier) astNode() {}

// Parameter is a typed function parameter, `name: type`.
type Parameter struct {
	Ident *Ident
	Colon *Token
	Type  *TypeSpecifier
	span  source.Span
}

// NewParameter constructs a parameter node.
func NewParameter(id *Ident, colon *Token, typ *TypeSpecifier, span source.Span) *Parameter {
	return &Parameter{
		Ident: id,
		Colon: colon,
		Type:  typ,
		span:  span,
	}
}

// Span returns the parameter span.
func (p *Parameter) Span() source.Span { return p.span }

func (*Parameter) astNode() {}

// ParameterEntry pairs a parameter with the comma that follows it, if any.
type ParameterEntry struct {
	Param *Parameter
	Comma *Token
}

// ParameterList is the parenthesised parameter list of a signature.
type ParameterList struct {
	LParen  *Token
	Entries []ParameterEntry
	RParen  *Token
	span    source.Span
}

// NewParameterList constructs a parameter list node.
func NewParameterList(lparen *Token, entries []ParameterEntry, rparen *Token, span source.Span) *ParameterList {
	return &ParameterList{
		LParen:  lparen,
		Entries: entries,
		RParen:  rparen,
		span:    span,
	}
}

// Span returns the list span.
func (l *ParameterList) Span() source.Span { return l.span }

// Params returns the parameters in declaration order.
func (l *ParameterList) Params() []*Parameter {
	params := make([]*Parameter, 0, len(l.Entries))
	for _, e := range l.Entries {
		params = append(params, e.Param)
	}
	return params
}

func (*ParameterList) astNode() {}

// Output is the `-> type` part of a signature.
type Output struct {
	Arrow *Token
	Type  *TypeSpecifier
	span  source.Span
}

// NewOutput constructs an output node.
func NewOutput(arrow *Token, typ *TypeSpecifier, span source.Span) *Output {
	return &Output{Arrow: arrow, Type: typ, span: span}
}

// Span returns the output span.
func (o *Output) Span() source.Span { return o.span }

func (*Output) astNode() {}

// Signature is everything in a function definition before its body.
type Signature struct {
	Func   *Token
	Ident  *Ident
	Params *ParameterList
	Output *Output
	span   source.Span
}

// NewSignature constructs a signature spanning from the func keyword to the
// end of the output.
func NewSignature(fn *Token, id *Ident, params *ParameterList, output *Output) *Signature {
	return &Signature{
		Func:   fn,
		Ident:  id,
		Params: params,
		Output: output,
		span:   source.Merge(fn.Span(), output.Span()),
	}
}

// Span returns the signature span.
func (s *Signature) Span() source.Span { return s.span }

func (*Signature) astNode() {}

// FunctionDefinition represents `func name(params) -> type { ... }`.
type FunctionDefinition struct {
	Signature *Signature
	Body      *Block
	span      source.Span
}

// NewFunctionDefinition constructs a function definition node.
func NewFunctionDefinition(sig *Signature, body *Block, span source.Span) *FunctionDefinition {
	return &FunctionDefinition{
		Signature: sig,
		Body:      body,
		span:      span,
	}
}

// Span returns the definition span.
func (d *FunctionDefinition) Span() source.Span { return d.span }

// Name returns the function name.
func (d *FunctionDefinition) Name() string { return d.Signature.Ident.Name }

func (*FunctionDefinition) astNode()  {}
func (*FunctionDefinition) stmtNode() {}

// ReturnStatement represents `return expr;`.
type ReturnStatement struct {
	Return    *Token
	Value     Expr
	Semicolon *Token
	span      source.Span
}

// NewReturnStatement constructs a return statement node.
func NewReturnStatement(ret *Token, value Expr, semi *Token, span source.Span) *ReturnStatement {
	return &ReturnStatement{
		Return:    ret,
		Value:     value,
		Semicolon: semi,
		span:      span,
	}
}

// Span returns the statement span.
func (s *ReturnStatement) Span() source.Span { return s.span }

func (*ReturnStatement) astNode()  {}
func (*ReturnStatement) stmtNode() {}

// ExpressionStatement is an expression evaluated for its effect.
type ExpressionStatement struct {
	Expr      Expr
	Semicolon *Token
	span      source.Span
}

// NewExpressionStatement constructs an expression statement node.
func NewExpressionStatement(expr Expr, semi *Token, span source.Span) *ExpressionStatement {
	return &ExpressionStatement{Expr: expr, Semicolon: semi, span: span}
}

// Span returns the statement span.
func (s *ExpressionStatement) Span() source.Span { return s.span }

func (*ExpressionStatement) astNode()  {}
func (*ExpressionStatement) stmtNode() {}

// VariableDeclaration represents `let name: type;`.
type VariableDeclaration struct {
	Let       *Token
	Ident     *Ident
	Colon     *Token
	Type      *TypeSpecifier
	Semicolon *Token
	span      source.Span
}

// NewVariableDeclaration constructs a declaration node.
func NewVariableDeclaration(let *Token, id *Ident, colon *Token, typ *TypeSpecifier, semi *Token, span source.Span) *VariableDeclaration {
	return &VariableDeclaration{
		Let:       let,
		Ident:     id,
		Colon:     colon,
		Type:      typ,
		Semicolon: semi,
		span:      span,
	}
}

// Span returns the statement span.
func (s *VariableDeclaration) Span() source.Span { return s.span }

func (*VariableDeclaration) astNode()  {}
func (*VariableDeclaration) stmtNode() {}

// VariableInitialisation represents `let name[: [type]] = expr;`. Colon and
// Type are nil when absent.
type VariableInitialisation struct {
	Let       *Token
	Ident     *Ident
	Colon     *Token
	Type      *TypeSpecifier
	Equals    *Token
	Value     Expr
	Semicolon *Token
	span      source.Span
}

// NewVariableInitialisation constructs an initialisation node.
func NewVariableInitialisation(let *Token, id *Ident, colon *Token, typ *TypeSpecifier, equals *Token, value Expr, semi *Token, span source.Span) *VariableInitialisation {
	return &VariableInitialisation{
		Let:       let,
		Ident:     id,
		Colon:     colon,
		Type:      typ,
		Equals:    equals,
		Value:     value,
		Semicolon: semi,
		span:      span,
	}
}

// Span returns the statement span.
func (s *VariableInitialisation) Span() source.Span { return s.span }

func (*VariableInitialisation) astNode()  {}
func (*VariableInitialisation) stmtNode() {}

// Ident represents an identifier.
type Ident struct {
	typeSlot
	Name string
	span source.Span
}

// NewIdent constructs an identifier node.
func NewIdent(name string, span source.Span) *Ident {
	return &Ident{Name: name, span: span}
}

// Span returns the identifier span.
func (i *Ident) Span() source.Span { return i.span }

func (*Ident) astNode()  {}
func (*Ident) exprNode() {}

// BoolLit represents `true` or `false`.
type BoolLit struct {
	typeSlot
	Value bool
	span  source.Span
}

// NewBoolLit constructs a boolean literal node.
func NewBoolLit(value bool, span source.Span) *BoolLit {
	return &BoolLit{Value: value, span: span}
}

// Span returns the literal span.
func (l *BoolLit) Span() source.Span { return l.span }

func (*BoolLit) astNode()  {}
func (*BoolLit) exprNode() {}

// CharLit represents a single-quoted character.
type CharLit struct {
	typeSlot
	Value rune
	Raw   string
	span  source.Span
}

// NewCharLit constructs a character literal node.
func NewCharLit(value rune, raw string, span source.Span) *CharLit {
	return &CharLit{Value: value, Raw: raw, span: span}
}

// Span returns the literal span.
func (l *CharLit) Span() source.Span { return l.span }

func (*CharLit) astNode()  {}
func (*CharLit) exprNode() {}

// IntegerLit represents a decimal integer literal.
type IntegerLit struct {
	typeSlot
	Value int64
	Text  string
	span  source.Span
}

// NewIntegerLit constructs an integer literal node.
func NewIntegerLit(value int64, text string, span source.Span) *IntegerLit {
	return &IntegerLit{Value: value, Text: text, span: span}
}

// Span returns the literal span.
func (l *IntegerLit) Span() source.Span { return l.span }

func (*IntegerLit) astNode()  {}
func (*IntegerLit) exprNode() {}

// FloatLit represents a floating-point literal.
type FloatLit struct {
	typeSlot
	Value float64
	Text  string
	span  source.Span
}

// NewFloatLit constructs a float literal node.
func NewFloatLit(value float64, text string, span source.Span) *FloatLit {
	return &FloatLit{Value: value, Text: text, span: span}
}

// Span returns the literal span.
func (l *FloatLit) Span() source.Span { return l.span }

func (*FloatLit) astNode()  {}
func (*FloatLit) exprNode() {}

// StringLit represents a double-quoted string. Value is decoded; Raw keeps
// the quotes and escapes as written.
type StringLit struct {
	typeSlot
	Value string
	Raw   string
	span  source.Span
}

// NewStringLit constructs a string literal node.
func NewStringLit(value, raw string, span source.Span) *StringLit {
	return &StringLit{Value: value, Raw: raw, span: span}
}

// Span returns the literal span.
func (l *StringLit) Span() source.Span { return l.span }

func (*StringLit) astNode()  {}
func (*StringLit) exprNode() {}

// BinaryOperator represents `left op right`.
type BinaryOperator struct {
	typeSlot
	Left  Expr
	Op    *Token
	Right Expr
	span  source.Span
}

// NewBinaryOperator constructs a binary expression spanning both operands.
func NewBinaryOperator(left Expr, op *Token, right Expr) *BinaryOperator {
	return &BinaryOperator{
		Left:  left,
		Op:    op,
		Right: right,
		span:  source.Merge(left.Span(), right.Span()),
	}
}

// Span returns the expression span.
func (e *BinaryOperator) Span() source.Span { return e.span }

func (*BinaryOperator) astNode()  {}
func (*BinaryOperator) exprNode() {}

// Term is a parenthesised expression.
type Term struct {
	typeSlot
	LParen *Token
	Expr   Expr
	RParen *Token
	span   source.Span
}

// NewTerm constructs a parenthesised expression node.
func NewTerm(lparen *Token, expr Expr, rparen *Token) *Term {
	return &Term{
		LParen: lparen,
		Expr:   expr,
		RParen: rparen,
		span:   source.Merge(lparen.Span(), rparen.Span()),
	}
}

// Span returns the expression span.
func (e *Term) Span() source.Span { return e.span }

func (*Term) astNode()  {}
func (*Term) exprNode() {}
