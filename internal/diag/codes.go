package diag

import (
	"fmt"
)

// Code identifies a diagnostic kind. Ranges are reserved per stage:
// 1000 lexical, 2000 syntactic, 3000 semantic, 4000 driver.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar          Code = 1001
	LexUnterminatedString   Code = 1002
	LexBadNumber            Code = 1003
	LexInconsistentIndent   Code = 1004
	LexInvalidIdentifier    Code = 1005

	// Syntactic
	SynUnexpectedToken    Code = 2001
	SynExpectColon        Code = 2002
	SynExpectNewline      Code = 2003
	SynExpectIndent       Code = 2004
	SynExpectDedent       Code = 2005
	SynExpectIdentifier   Code = 2006
	SynExpectExpression   Code = 2007
	SynUnclosedParen      Code = 2008
	SynUnclosedBracket    Code = 2009
	SynUnclosedBrace      Code = 2010
	SynPrintMissingComma  Code = 2011
	SynTooDeeplyNested    Code = 2012
	SynStuckStatement     Code = 2013
	SynBadCallTarget      Code = 2014

	// Semantic
	SemUndeclaredIdentifier    Code = 3001
	SemArgumentCountMismatch   Code = 3002
	SemDuplicateArgument       Code = 3003
	SemReturnOutsideFunction   Code = 3004
	SemBreakOutsideLoop        Code = 3005
	SemContinueOutsideLoop     Code = 3006
	SemConstDivisionByZero     Code = 3007
	SemRedefinitionBuiltin     Code = 3008

	// Driver
	DrvLoadFile      Code = 4001
	DrvAlreadyModern Code = 4002
	DrvTimings       Code = 4003
)

var codeIDs = map[Code]string{
	UnknownCode: "UNKNOWN",

	LexUnknownChar:        "LEX_UNKNOWN_CHAR",
	LexUnterminatedString: "LEX_UNTERMINATED_STRING",
	LexBadNumber:          "LEX_BAD_NUMBER",
	LexInconsistentIndent: "LEX_INCONSISTENT_INDENT",
	LexInvalidIdentifier:  "LEX_INVALID_IDENTIFIER",

	SynUnexpectedToken:   "SYN_UNEXPECTED_TOKEN",
	SynExpectColon:       "SYN_EXPECT_COLON",
	SynExpectNewline:     "SYN_EXPECT_NEWLINE",
	SynExpectIndent:      "SYN_EXPECT_INDENT",
	SynExpectDedent:      "SYN_EXPECT_DEDENT",
	SynExpectIdentifier:  "SYN_EXPECT_IDENTIFIER",
	SynExpectExpression:  "SYN_EXPECT_EXPRESSION",
	SynUnclosedParen:     "SYN_UNCLOSED_PAREN",
	SynUnclosedBracket:   "SYN_UNCLOSED_BRACKET",
	SynUnclosedBrace:     "SYN_UNCLOSED_BRACE",
	SynPrintMissingComma: "SYN_PRINT_MISSING_COMMA",
	SynTooDeeplyNested:   "SYN_TOO_DEEPLY_NESTED",
	SynStuckStatement:    "SYN_STUCK_STATEMENT",
	SynBadCallTarget:     "SYN_BAD_CALL_TARGET",

	SemUndeclaredIdentifier:  "UNDECLARED_IDENTIFIER",
	SemArgumentCountMismatch: "ARGUMENT_COUNT_MISMATCH",
	SemDuplicateArgument:     "DUPLICATE_ARGUMENT",
	SemReturnOutsideFunction: "RETURN_OUTSIDE_FUNCTION",
	SemBreakOutsideLoop:      "BREAK_OUTSIDE_LOOP",
	SemContinueOutsideLoop:   "CONTINUE_OUTSIDE_LOOP",
	SemConstDivisionByZero:   "CONST_DIVISION_BY_ZERO",
	SemRedefinitionBuiltin:   "REDEFINITION_BUILTIN",

	DrvLoadFile:      "LOAD_FILE",
	DrvAlreadyModern: "ALREADY_MODERN",
	DrvTimings:       "TIMINGS",
}

// ID returns the stable symbolic name of the code.
func (c Code) ID() string {
	if id, ok := codeIDs[c]; ok {
		return id
	}
	return fmt.Sprintf("CODE_%04d", uint16(c))
}

func (c Code) String() string {
	return fmt.Sprintf("PL%04d", uint16(c))
}

// Stage returns which pipeline stage owns the code.
func (c Code) Stage() string {
	switch {
	case c >= 1000 && c < 2000:
		return "lexical"
	case c >= 2000 && c < 3000:
		return "syntactic"
	case c >= 3000 && c < 4000:
		return "semantic"
	case c >= 4000 && c < 5000:
		return "driver"
	default:
		return "unknown"
	}
}
