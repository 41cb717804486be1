package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Unknown indicates an unrecognized piece of input; lexing continues past it.
	Unknown Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Number represents a numeric literal (decimal, float, hex, octal, binary).
	Number
	// String represents a string literal (single, double, or triple quoted).
	String

	// Keywords: the union of the legacy and modern dialects.

	// KwAnd represents the 'and' keyword.
	KwAnd // and
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwAssert represents the 'assert' keyword.
	KwAssert // assert
	// KwAsync represents the 'async' keyword (modern dialect only).
	KwAsync // async
	// KwAwait represents the 'await' keyword (modern dialect only).
	KwAwait // await
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwClass represents the 'class' keyword.
	KwClass // class
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwDef represents the 'def' keyword.
	KwDef // def
	// KwDel represents the 'del' keyword.
	KwDel // del
	// KwElif represents the 'elif' keyword.
	KwElif // elif
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwExcept represents the 'except' keyword.
	KwExcept // except
	// KwExec represents the 'exec' keyword (legacy dialect only).
	KwExec // exec
	// KwFinally represents the 'finally' keyword.
	KwFinally // finally
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwFrom represents the 'from' keyword.
	KwFrom // from
	// KwGlobal represents the 'global' keyword.
	KwGlobal // global
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwIs represents the 'is' keyword.
	KwIs // is
	// KwLambda represents the 'lambda' keyword.
	KwLambda // lambda
	// KwNonlocal represents the 'nonlocal' keyword (modern dialect only).
	KwNonlocal // nonlocal
	// KwNot represents the 'not' keyword.
	KwNot // not
	// KwOr represents the 'or' keyword.
	KwOr // or
	// KwPass represents the 'pass' keyword.
	KwPass // pass
	// KwPrint represents the 'print' keyword (a statement in the legacy dialect).
	KwPrint // print
	// KwRaise represents the 'raise' keyword.
	KwRaise // raise
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwTry represents the 'try' keyword.
	KwTry // try
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwWith represents the 'with' keyword.
	KwWith // with
	// KwYield represents the 'yield' keyword.
	KwYield // yield
	// KwNone represents the 'None' literal keyword.
	KwNone // None
	// KwTrue represents the 'True' literal keyword.
	KwTrue // True
	// KwFalse represents the 'False' literal keyword.
	KwFalse // False

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// SlashSlash represents the floor-division operator token.
	SlashSlash // //
	// Percent represents the modulo operator token.
	Percent // %
	// StarStar represents the power operator token.
	StarStar // **

	// EqEq represents the equality operator token.
	EqEq // ==
	// BangEq represents the inequality operator token.
	BangEq // !=
	// LtGt represents the legacy inequality operator token.
	LtGt // <>
	// Lt represents the less-than operator token.
	Lt // <
	// LtEq represents the less-or-equal operator token.
	LtEq // <=
	// Gt represents the greater-than operator token.
	Gt // >
	// GtEq represents the greater-or-equal operator token.
	GtEq // >=

	// Assign represents the assignment operator token.
	Assign // =
	// PlusAssign represents the '+=' operator token.
	PlusAssign // +=
	// MinusAssign represents the '-=' operator token.
	MinusAssign // -=
	// StarAssign represents the '*=' operator token.
	StarAssign // *=
	// SlashAssign represents the '/=' operator token.
	SlashAssign // /=
	// PercentAssign represents the '%=' operator token.
	PercentAssign // %=

	// Arrow represents the '->' annotation token (modern dialect only).
	Arrow // ->

	// LParen represents the '(' delimiter.
	LParen // (
	// RParen represents the ')' delimiter.
	RParen // )
	// LBracket represents the '[' delimiter.
	LBracket // [
	// RBracket represents the ']' delimiter.
	RBracket // ]
	// LBrace represents the '{' delimiter.
	LBrace // {
	// RBrace represents the '}' delimiter.
	RBrace // }
	// Comma represents the ',' delimiter.
	Comma // ,
	// Colon represents the ':' delimiter.
	Colon // :
	// Semicolon represents the ';' delimiter.
	Semicolon // ;
	// Dot represents the '.' delimiter.
	Dot // .

	// Newline marks the end of a logical line.
	Newline
	// Indent marks the opening of an indentation-delimited block.
	Indent
	// Dedent marks the closing of an indentation-delimited block.
	Dedent

	kindCount
)

var kindNames = [kindCount]string{
	Unknown:       "Unknown",
	EOF:           "EOF",
	Ident:         "Ident",
	Number:        "Number",
	String:        "String",
	KwAnd:         "and",
	KwAs:          "as",
	KwAssert:      "assert",
	KwAsync:       "async",
	KwAwait:       "await",
	KwBreak:       "break",
	KwClass:       "class",
	KwContinue:    "continue",
	KwDef:         "def",
	KwDel:         "del",
	KwElif:        "elif",
	KwElse:        "else",
	KwExcept:      "except",
	KwExec:        "exec",
	KwFinally:     "finally",
	KwFor:         "for",
	KwFrom:        "from",
	KwGlobal:      "global",
	KwIf:          "if",
	KwImport:      "import",
	KwIn:          "in",
	KwIs:          "is",
	KwLambda:      "lambda",
	KwNonlocal:    "nonlocal",
	KwNot:         "not",
	KwOr:          "or",
	KwPass:        "pass",
	KwPrint:       "print",
	KwRaise:       "raise",
	KwReturn:      "return",
	KwTry:         "try",
	KwWhile:       "while",
	KwWith:        "with",
	KwYield:       "yield",
	KwNone:        "None",
	KwTrue:        "True",
	KwFalse:       "False",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	SlashSlash:    "//",
	Percent:       "%",
	StarStar:      "**",
	EqEq:          "==",
	BangEq:        "!=",
	LtGt:          "<>",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	Arrow:         "->",
	LParen:        "(",
	RParen:        ")",
	LBracket:      "[",
	RBracket:      "]",
	LBrace:        "{",
	RBrace:        "}",
	Comma:         ",",
	Colon:         ":",
	Semicolon:     ";",
	Dot:           ".",
	Newline:       "Newline",
	Indent:        "Indent",
	Dedent:        "Dedent",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}
