package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// RuleLexer tokenizes .bbrules ruleset files, including the CountExpr
// values in use(...)/induct(...) substitutions. Init and final configs stay
// single String tokens here; they are re-parsed with ExprLexer.
var RuleLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	// TNF matches a whole transition-table string ("1RB1LB_1LA1RZ"): one
	// or more 3-char transitions (digit, L/R, state letter) or "---",
	// rows joined by "_". It must be tried before Ident/Integer, since a
	// TNF string starts with a digit and would otherwise split into a
	// leading Integer token followed by a trailing Ident token.
	{Name: "TNF", Pattern: `(?:[0-9][LR][A-Za-z]|---)+(?:_(?:[0-9][LR][A-Za-z]|---)+)*`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Integer", Pattern: `[0-9]+`},
	{Name: "Assign", Pattern: `:=`},
	{Name: "Arrow", Pattern: `->`},
	{Name: "Punct", Pattern: `[{}():,^<>+]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

// ExprLexer tokenizes a bare Config or CountExpr string (the contents of
// a quoted block in a .bbrules file, or a config typed at the REPL's
// config command).
var ExprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Integer", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[<>^+]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})
