package grammar

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"
)

var ruleSetParser = participle.MustBuild[RuleSetFile](
	participle.Lexer(RuleLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(4),
)

var configParser = participle.MustBuild[ConfigNode](
	participle.Lexer(ExprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(4),
)

var countExprParser = participle.MustBuild[CountExprNode](
	participle.Lexer(ExprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(4),
)

// ParseRuleSetFile reads and parses a .bbrules file.
func ParseRuleSetFile(path string) (*RuleSetFile, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("grammar: reading %s: %w", path, err)
	}
	rsf, err := ruleSetParser.ParseString(path, string(source))
	if err != nil {
		reportParseError(string(source), err)
		return nil, err
	}
	return rsf, nil
}

// ParseRuleSetSource parses .bbrules source text already in memory,
// tagging diagnostics with filename (used for its own error messages only).
func ParseRuleSetSource(filename, source string) (*RuleSetFile, error) {
	return ruleSetParser.ParseString(filename, source)
}

// ParseConfigText parses spec.md §6's Config textual form, e.g.
// `0^inf 1 Z> 0 1^12 0^inf`.
func ParseConfigText(s string) (*ConfigNode, error) {
	return configParser.ParseString("", s)
}

// ParseCountExprText parses spec.md §6's count-expression textual form,
// e.g. `3n+5` or `inf`.
func ParseCountExprText(s string) (*CountExprNode, error) {
	return countExprParser.ParseString("", s)
}

// reportParseError prints a caret-style parse error message, matching the
// teacher's grammar.reportParseError.
func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("-> %s\n", pe.Message())
}
