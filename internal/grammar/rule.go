package grammar

import "strconv"

// Rule identifies the grammar rule a Pair was recognized by.
type Rule int

const (
	RuleUnknown Rule = iota

	RuleFile
	RuleEOI

	// Statements
	RuleFunctionDefinition
	RuleVariableDeclaration
	RuleVariableInitialisation
	RuleReturnStatement
	RuleExpressionStatement
	RuleImportStatement
	RuleUseStatement

	// Structure
	RuleBlock
	RuleParameterList
	RuleParameter
	RuleOutput
	RuleExpression
	RuleTerm

	// Values
	RuleIdentifier
	RuleInteger
	RuleFloat
	RuleCharacter
	RuleString
	RuleBoolean

	// Keywords and punctuation
	RuleFuncToken
	RuleLetToken
	RuleReturnToken
	RuleImportToken
	RuleUseToken
	RuleRArrow
	RuleLParen
	RuleRParen
	RuleLBrace
	RuleRBrace
	RuleColon
	RuleComma
	RuleEquals
	RuleSemicolon
	RuleScopeResolution

	// Binary operators
	RuleAssignment
	RuleLogicalOr
	RuleLogicalAnd
	RuleEqual
	RuleNotEqual
	RuleGreaterThanOrEqual
	RuleLessThanOrEqual
	RuleGreaterThan
	RuleLessThan
	RuleBitwiseXor
	RuleBitwiseOr
	RuleBitwiseAnd
	RuleShiftRight
	RuleShiftLeft
	RulePlus
	RuleMinus
	RuleMultiply
	RuleDivide
	RuleExponent
	RuleCast
)

var ruleNames = map[Rule]string{
	RuleUnknown:                "unknown",
	RuleFile:                   "file",
	RuleEOI:                    "EOI",
	RuleFunctionDefinition:     "function_definition",
	RuleVariableDeclaration:    "variable_declaration",
	RuleVariableInitialisation: "variable_initialisation",
	RuleReturnStatement:        "return_statement",
	RuleExpressionStatement:    "expression_statement",
	RuleImportStatement:        "import_statement",
	RuleUseStatement:           "use_statement",
	RuleBlock:                  "block",
	RuleParameterList:          "parameter_list",
	RuleParameter:              "parameter",
	RuleOutput:                 "output",
	RuleExpression:             "expression",
	RuleTerm:                   "term",
	RuleIdentifier:             "identifier",
	RuleInteger:                "integer",
	RuleFloat:                  "float",
	RuleCharacter:              "character",
	RuleString:                 "string",
	RuleBoolean:                "boolean",
	RuleFuncToken:              "func_token",
	RuleLetToken:               "let_token",
	RuleReturnToken:            "return_token",
	RuleImportToken:            "import_token",
	RuleUseToken:               "use_token",
	RuleRArrow:                 "rarrow",
	RuleLParen:                 "lparen",
	RuleRParen:                 "rparen",
	RuleLBrace:                 "lbrace",
	RuleRBrace:                 "rbrace",
	RuleColon:                  "colon",
	RuleComma:                  "comma",
	RuleEquals:                 "equals",
	RuleSemicolon:              "semicolon",
	RuleScopeResolution:        "scope_resolution",
	RuleAssignment:             "assignment",
	RuleLogicalOr:              "logical_or",
	RuleLogicalAnd:             "logical_and",
	RuleEqual:                  "equal",
	RuleNotEqual:               "not_equal",
	RuleGreaterThanOrEqual:     "greater_than_or_equal",
	RuleLessThanOrEqual:        "less_than_or_equal",
	RuleGreaterThan:            "greater_than",
	RuleLessThan:               "less_than",
	RuleBitwiseXor:             "bitwise_xor",
	RuleBitwiseOr:              "bitwise_or",
	RuleBitwiseAnd:             "bitwise_and",
	RuleShiftRight:             "shift_right",
	RuleShiftLeft:              "shift_left",
	RulePlus:                   "plus",
	RuleMinus:                  "minus",
	RuleMultiply:               "multiply",
	RuleDivide:                 "divide",
	RuleExponent:               "exponent",
	RuleCast:                   "cast",
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return "rule(" + strconv.Itoa(int(r)) + ")"
}

// operatorRules maps operator tokens to the rule they are recognized as.
var operatorRules = map[TokenType]Rule{
	ASSIGN:   RuleAssignment,
	OR:       RuleLogicalOr,
	AND:      RuleLogicalAnd,
	EQ:       RuleEqual,
	NOT_EQ:   RuleNotEqual,
	GE:       RuleGreaterThanOrEqual,
	LE:       RuleLessThanOrEqual,
	GT:       RuleGreaterThan,
	LT:       RuleLessThan,
	BIT_XOR:  RuleBitwiseXor,
	BIT_OR:   RuleBitwiseOr,
	BIT_AND:  RuleBitwiseAnd,
	SHR:      RuleShiftRight,
	SHL:      RuleShiftLeft,
	PLUS:     RulePlus,
	MINUS:    RuleMinus,
	ASTERISK: RuleMultiply,
	SLASH:    RuleDivide,
	POWER:    RuleExponent,
	AS:       RuleCast,
}
