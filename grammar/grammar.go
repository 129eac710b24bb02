// Package grammar provides the participle lexer and grammar structs for
// this project's textual forms: the CountExpr and Config expression
// grammars of spec.md §6, and the .bbrules ruleset file format this
// project defines (SPEC_FULL.md §5). It mirrors the teacher's
// Program -> SourceElement* -> Module{Uses, Structs, Functions} shape:
// a RuleSetFile is a flat sequence of top-level declarations, each a
// small nested grammar of its own.
package grammar

// RuleSetFile is the top-level .bbrules document: one TM line followed by
// the rules that cite it.
type RuleSetFile struct {
	TM    string      `"tm" @TNF`
	Rules []*RuleDecl `@@*`
}

// RuleDecl is one "rule N: init -> final { proof }" declaration. Init and
// Final retain their surrounding quotes; callers unquote them before
// handing the contents to ParseConfigText.
type RuleDecl struct {
	ID    int        `"rule" @Integer ":"`
	Init  string     `@String "->"`
	Final string     `@String "{"`
	Proof *ProofBlock `@@ "}"`
}

// ProofBlock is either a flat step sequence (a SimpleProof) or an
// induction block (an InductiveProof).
type ProofBlock struct {
	Induction *InductionBlock `  @@`
	Steps     []*StepStmt     `| @@*`
}

// InductionBlock is "induction VAR { base { ... } step { ... } }".
type InductionBlock struct {
	Var  string      `"induction" @Ident "{"`
	Base []*StepStmt `"base" "{" @@* "}"`
	Step []*StepStmt `"step" "{" @@* "}" "}"`
}

// StepStmt is one proof step: exactly one of its fields is populated.
type StepStmt struct {
	TMSteps *TMStepsNode    `  @@`
	Use     *UseStepNode    `| @@`
	Induct  *InductStepNode `| @@`
	Admit   *AdmitNode      `| @@`
}

// TMStepsNode is "steps(K)".
type TMStepsNode struct {
	K int `"steps" "(" @Integer ")"`
}

// UseStepNode is "use(ruleID, var := expr, ...)".
type UseStepNode struct {
	RuleID int           `"use" "(" @Integer`
	Substs []*SubstItem  `{ "," @@ } ")"`
}

// InductStepNode is "induct(var := expr, ...)".
type InductStepNode struct {
	Substs []*SubstItem `"induct" "(" @@ { "," @@ } ")"`
}

// AdmitNode is the bare "admit" keyword.
type AdmitNode struct {
	Present bool `@"admit"`
}

// SubstItem is one "var := expr" binding inside a use(...) or induct(...).
type SubstItem struct {
	Var  string         `@Ident ":="`
	Expr *CountExprNode `@@`
}

// CountExprNode is the grammar for spec.md §6's count-expression text:
// "inf", or a sum of terms joined by "+".
type CountExprNode struct {
	Inf   bool        `  @"inf"`
	Terms []*TermNode `| @@ { "+" @@ }`
}

// TermNode is one summand: a bare natural, or an optionally-coefficed
// variable.
type TermNode struct {
	VarTerm *VarTerm `  @@`
	Bare    *int     `| @Integer`
}

// VarTerm is "coef? var", e.g. "2x" or "x". An identifier directly
// followed by ">" is a facing-right head ("1^2 Z>"), not a variable.
type VarTerm struct {
	Coef *int   `[ @Integer ]`
	Var  string `@Ident (?! ">")`
}

// ConfigNode is the grammar for spec.md §6's Config text:
// "<left_tape> <head> <right_tape>".
type ConfigNode struct {
	Left  []*BlockNode `{ @@ }`
	Head  *HeadNode    `@@`
	Right []*BlockNode `{ @@ }`
}

// BlockNode is one tape block: a digit-string symbol pattern with an
// optional "^count" (count defaults to 1 when omitted).
type BlockNode struct {
	Symbols string         `@Integer`
	Count   *CountExprNode `[ "^" @@ ]`
}

// HeadNode is the head token: "<STATE" (facing left) or "STATE>" (facing
// right). Exactly one of FacingLeft/FacingRight is populated.
type HeadNode struct {
	FacingLeft  *FacingLeftHead  `  @@`
	FacingRight *FacingRightHead `| @@`
}

type FacingLeftHead struct {
	State string `"<" @Ident`
}

type FacingRightHead struct {
	State string `@Ident ">"`
}
