package syntax

// Kind tags a token or a node with its grammar category.
type Kind uint16

const (
	// Tombstone marks an abandoned node in the parser event stream.
	// It never appears in a finished tree.
	Tombstone Kind = iota
	// EOF is a lexer-only kind; it is never stored in a tree.
	EOF

	// trivia
	Whitespace
	Comment

	// tokens
	ErrorToken
	Ident
	IntNumber
	String

	FnKw
	LetKw
	StructKw
	IfKw
	ElseKw
	WhileKw
	ReturnKw
	TrueKw
	FalseKw

	LCurly // {
	RCurly // }
	LParen // (
	RParen // )
	Semi   // ;
	Comma  // ,
	Colon  // :
	Dot    // .
	Eq     // =
	EqEq   // ==
	Neq    // !=
	Lt     // <
	LtEq   // <=
	Gt     // >
	GtEq   // >=
	Plus   // +
	Minus  // -
	Star   // *
	Slash  // /
	Bang   // !
	AmpAmp // &&
	PipePipe
	ThinArrow // ->

	// nodes
	SourceFile
	FnDef
	StructDef
	Name
	NameRef
	ParamList
	Param
	RetType
	FieldList
	Field
	Block
	LetStmt
	ExprStmt
	ReturnStmt
	Literal
	PathExpr
	CallExpr
	ArgList
	ParenExpr
	BinExpr
	PrefixExpr
	IfExpr
	ElseBranch
	WhileExpr
	BlockExpr
	Error

	kindCount
)

var kindNames = [kindCount]string{
	Tombstone:  "TOMBSTONE",
	EOF:        "EOF",
	Whitespace: "WHITESPACE",
	Comment:    "COMMENT",
	ErrorToken: "ERROR_TOKEN",
	Ident:      "IDENT",
	IntNumber:  "INT_NUMBER",
	String:     "STRING",
	FnKw:       "FN_KW",
	LetKw:      "LET_KW",
	StructKw:   "STRUCT_KW",
	IfKw:       "IF_KW",
	ElseKw:     "ELSE_KW",
	WhileKw:    "WHILE_KW",
	ReturnKw:   "RETURN_KW",
	TrueKw:     "TRUE_KW",
	FalseKw:    "FALSE_KW",
	LCurly:     "L_CURLY",
	RCurly:     "R_CURLY",
	LParen:     "L_PAREN",
	RParen:     "R_PAREN",
	Semi:       "SEMI",
	Comma:      "COMMA",
	Colon:      "COLON",
	Dot:        "DOT",
	Eq:         "EQ",
	EqEq:       "EQEQ",
	Neq:        "NEQ",
	Lt:         "L_ANGLE",
	LtEq:       "LTEQ",
	Gt:         "R_ANGLE",
	GtEq:       "GTEQ",
	Plus:       "PLUS",
	Minus:      "MINUS",
	Star:       "STAR",
	Slash:      "SLASH",
	Bang:       "EXCL",
	AmpAmp:     "AMPAMP",
	PipePipe:   "PIPEPIPE",
	ThinArrow:  "THIN_ARROW",
	SourceFile: "SOURCE_FILE",
	FnDef:      "FN_DEF",
	StructDef:  "STRUCT_DEF",
	Name:       "NAME",
	NameRef:    "NAME_REF",
	ParamList:  "PARAM_LIST",
	Param:      "PARAM",
	RetType:    "RET_TYPE",
	FieldList:  "FIELD_LIST",
	Field:      "FIELD",
	Block:      "BLOCK",
	LetStmt:    "LET_STMT",
	ExprStmt:   "EXPR_STMT",
	ReturnStmt: "RETURN_STMT",
	Literal:    "LITERAL",
	PathExpr:   "PATH_EXPR",
	CallExpr:   "CALL_EXPR",
	ArgList:    "ARG_LIST",
	ParenExpr:  "PAREN_EXPR",
	BinExpr:    "BIN_EXPR",
	PrefixExpr: "PREFIX_EXPR",
	IfExpr:     "IF_EXPR",
	ElseBranch: "ELSE_BRANCH",
	WhileExpr:  "WHILE_EXPR",
	BlockExpr:  "BLOCK_EXPR",
	Error:      "ERROR",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// IsTrivia reports whether tokens of this kind carry no syntax.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == Comment
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= FnKw && k <= FalseKw
}

// IsToken reports whether k is produced by the lexer rather than the parser.
func (k Kind) IsToken() bool {
	return k > EOF && k < SourceFile
}

// IsNode reports whether k is a composite node kind.
func (k Kind) IsNode() bool {
	return k >= SourceFile && k < kindCount
}

var keywords = map[string]Kind{
	"fn":     FnKw,
	"let":    LetKw,
	"struct": StructKw,
	"if":     IfKw,
	"else":   ElseKw,
	"while":  WhileKw,
	"return": ReturnKw,
	"true":   TrueKw,
	"false":  FalseKw,
}

// MaxKeywordLen is the length of the longest keyword.
const MaxKeywordLen = 6

// LookupKeyword returns the keyword kind for ident. Keywords are
// case-sensitive.
func LookupKeyword(ident []byte) (Kind, bool) {
	if len(ident) > MaxKeywordLen {
		return 0, false
	}
	k, ok := keywords[string(ident)]
	return k, ok
}
