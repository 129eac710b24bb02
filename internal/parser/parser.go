// Package parser turns parsed grammar.* values into the domain values
// internal/validate checks: internal/tm.Machine, internal/config.Config,
// internal/count.CountExpr, and internal/rule.RuleSet.
package parser

import (
	"fmt"
	"strconv"

	"github.com/sligocki/busy-beaver/grammar"
	"github.com/sligocki/busy-beaver/internal/config"
	"github.com/sligocki/busy-beaver/internal/count"
	"github.com/sligocki/busy-beaver/internal/rule"
	"github.com/sligocki/busy-beaver/internal/tape"
	"github.com/sligocki/busy-beaver/internal/tm"
)

// LoadRuleSetFile reads and parses a .bbrules file into a rule.RuleSet,
// ready for internal/validate.
func LoadRuleSetFile(path string) (*rule.RuleSet, error) {
	rsf, err := grammar.ParseRuleSetFile(path)
	if err != nil {
		return nil, err
	}
	return BuildRuleSet(rsf)
}

// BuildRuleSet converts a parsed .bbrules document into a rule.RuleSet.
func BuildRuleSet(rsf *grammar.RuleSetFile) (*rule.RuleSet, error) {
	m, err := tm.Parse(rsf.TM)
	if err != nil {
		return nil, fmt.Errorf("parser: tm line %q: %w", rsf.TM, err)
	}

	rules := make([]rule.Rule, len(rsf.Rules))
	for i, decl := range rsf.Rules {
		r, err := buildRule(decl)
		if err != nil {
			return nil, fmt.Errorf("parser: rule %d: %w", decl.ID, err)
		}
		rules[i] = r
	}
	return &rule.RuleSet{TM: m, Rules: rules}, nil
}

func buildRule(decl *grammar.RuleDecl) (rule.Rule, error) {
	init, err := ConfigFromQuotedText(decl.Init)
	if err != nil {
		return rule.Rule{}, fmt.Errorf("init config: %w", err)
	}
	final, err := ConfigFromQuotedText(decl.Final)
	if err != nil {
		return rule.Rule{}, fmt.Errorf("final config: %w", err)
	}
	proof, err := buildProof(decl.Proof)
	if err != nil {
		return rule.Rule{}, err
	}
	return rule.Rule{Init: init, Final: final, Proof: proof}, nil
}

func buildProof(pb *grammar.ProofBlock) (rule.Proof, error) {
	if pb.Induction != nil {
		v, err := count.ParseVariable(pb.Induction.Var)
		if err != nil {
			return nil, fmt.Errorf("induction variable: %w", err)
		}
		base, err := buildSteps(pb.Induction.Base)
		if err != nil {
			return nil, fmt.Errorf("base branch: %w", err)
		}
		ind, err := buildSteps(pb.Induction.Step)
		if err != nil {
			return nil, fmt.Errorf("induction branch: %w", err)
		}
		return &rule.InductiveProof{InductionVar: v, Base: base, Inductive: ind}, nil
	}
	steps, err := buildSteps(pb.Steps)
	if err != nil {
		return nil, err
	}
	return &rule.SimpleProof{Steps: steps}, nil
}

func buildSteps(stmts []*grammar.StepStmt) ([]rule.ProofStep, error) {
	steps := make([]rule.ProofStep, len(stmts))
	for i, s := range stmts {
		step, err := buildStep(s)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps[i] = step
	}
	return steps, nil
}

func buildStep(s *grammar.StepStmt) (rule.ProofStep, error) {
	switch {
	case s.TMSteps != nil:
		return rule.TMSteps{K: s.TMSteps.K}, nil
	case s.Use != nil:
		sigma, err := buildSubstitution(s.Use.Substs)
		if err != nil {
			return nil, err
		}
		return rule.RuleStep{RuleID: s.Use.RuleID, Subst: sigma}, nil
	case s.Induct != nil:
		sigma, err := buildSubstitution(s.Induct.Substs)
		if err != nil {
			return nil, err
		}
		return rule.InductiveStep{Subst: sigma}, nil
	case s.Admit != nil:
		return rule.Admit{}, nil
	default:
		return nil, fmt.Errorf("empty proof step")
	}
}

func buildSubstitution(items []*grammar.SubstItem) (count.Substitution, error) {
	sigma := make(count.Substitution, len(items))
	for _, item := range items {
		v, err := count.ParseVariable(item.Var)
		if err != nil {
			return nil, fmt.Errorf("substitution variable: %w", err)
		}
		e, err := countExprFromNode(item.Expr)
		if err != nil {
			return nil, fmt.Errorf("substitution value for %s: %w", item.Var, err)
		}
		sigma[v] = e
	}
	return sigma, nil
}

// ConfigFromQuotedText unquotes a grammar.RuleDecl.Init/Final string
// literal (still carrying its surrounding quotes) and parses its Config
// text.
func ConfigFromQuotedText(quoted string) (config.Config, error) {
	s, err := strconv.Unquote(quoted)
	if err != nil {
		return config.Config{}, fmt.Errorf("parser: %q is not a valid string literal: %w", quoted, err)
	}
	return ConfigFromText(s)
}

// ConfigFromText parses spec.md §6's Config text into a config.Config.
func ConfigFromText(s string) (config.Config, error) {
	node, err := grammar.ParseConfigText(s)
	if err != nil {
		return config.Config{}, err
	}
	return configFromNode(node)
}

func configFromNode(n *grammar.ConfigNode) (config.Config, error) {
	left, err := blocksToHalfTape(n.Left)
	if err != nil {
		return config.Config{}, fmt.Errorf("left tape: %w", err)
	}
	right, err := blocksToHalfTape(n.Right)
	if err != nil {
		return config.Config{}, fmt.Errorf("right tape: %w", err)
	}
	// The right half-tape is printed head-to-edge (nearest the head
	// first), the reverse of HalfTape's outward-edge-to-head internal
	// order, so the parsed block order is reversed here.
	reverseBlocks(right)

	state, facing, err := headFromNode(n.Head)
	if err != nil {
		return config.Config{}, err
	}

	return config.Config{
		Tape:   tape.Tape{Left: left, Right: right},
		State:  state,
		Facing: facing,
	}, nil
}

func reverseBlocks(blocks tape.HalfTape) {
	for i, j := 0, len(blocks)-1; i < j; i, j = i+1, j-1 {
		blocks[i], blocks[j] = blocks[j], blocks[i]
	}
}

func blocksToHalfTape(nodes []*grammar.BlockNode) (tape.HalfTape, error) {
	out := make(tape.HalfTape, len(nodes))
	for i, b := range nodes {
		block, err := blockFromNode(b)
		if err != nil {
			return nil, err
		}
		out[i] = block
	}
	return out, nil
}

func blockFromNode(b *grammar.BlockNode) (tape.RepBlock, error) {
	syms := make([]tm.Symbol, len(b.Symbols))
	for i := 0; i < len(b.Symbols); i++ {
		ch := b.Symbols[i]
		if ch < '0' || ch > '9' {
			return tape.RepBlock{}, fmt.Errorf("invalid tape symbol %q", ch)
		}
		syms[i] = tm.Symbol(ch - '0')
	}

	rep := count.FiniteN(1)
	if b.Count != nil {
		r, err := countOrInfFromNode(b.Count)
		if err != nil {
			return tape.RepBlock{}, err
		}
		rep = r
	}
	return tape.RepBlock{Symbols: syms, Rep: rep}, nil
}

func headFromNode(h *grammar.HeadNode) (tm.State, tm.Dir, error) {
	switch {
	case h.FacingLeft != nil:
		st, err := stateFromLetters(h.FacingLeft.State)
		return st, tm.Left, err
	case h.FacingRight != nil:
		st, err := stateFromLetters(h.FacingRight.State)
		return st, tm.Right, err
	default:
		return tm.State{}, tm.Left, fmt.Errorf("config head is neither facing-left nor facing-right")
	}
}

func stateFromLetters(s string) (tm.State, error) {
	if len(s) != 1 {
		return tm.State{}, fmt.Errorf("state name must be a single letter: %q", s)
	}
	if s == "Z" {
		return tm.HaltState, nil
	}
	c := s[0]
	if c < 'A' || c > 'Y' {
		return tm.State{}, fmt.Errorf("invalid state letter: %q", s)
	}
	return tm.RunStateOf(tm.RunState(c - 'A')), nil
}

// countOrInfFromNode converts a tape block's "^expr" into a
// count.CountOrInf, where expr may be the literal "inf".
func countOrInfFromNode(n *grammar.CountExprNode) (count.CountOrInf, error) {
	if n.Inf {
		return count.Infinity(), nil
	}
	sum, err := sumTerms(n.Terms)
	if err != nil {
		return count.CountOrInf{}, err
	}
	return count.Finite(sum), nil
}

// countExprFromNode converts a substitution value's expr text into a
// count.CountExpr. Infinity has no meaning as a substitution value.
func countExprFromNode(n *grammar.CountExprNode) (count.CountExpr, error) {
	if n.Inf {
		return nil, fmt.Errorf("'inf' is not a valid substitution value")
	}
	return sumTerms(n.Terms)
}

func sumTerms(terms []*grammar.TermNode) (count.CountExpr, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("empty count expression")
	}
	sum, err := termToVarSum(terms[0])
	if err != nil {
		return nil, err
	}
	for _, t := range terms[1:] {
		next, err := termToVarSum(t)
		if err != nil {
			return nil, err
		}
		combined, ok := count.CheckedAdd(sum, next)
		if !ok {
			return nil, fmt.Errorf("cannot add terms in count expression")
		}
		sum = combined
	}
	return sum, nil
}

func termToVarSum(t *grammar.TermNode) (count.CountExpr, error) {
	switch {
	case t.Bare != nil:
		return count.Const(int64(*t.Bare)), nil
	case t.VarTerm != nil:
		v, err := count.ParseVariable(t.VarTerm.Var)
		if err != nil {
			return nil, err
		}
		coef := int64(1)
		if t.VarTerm.Coef != nil {
			coef = int64(*t.VarTerm.Coef)
		}
		return count.VarScaled(v, coef, 0), nil
	default:
		return nil, fmt.Errorf("empty term")
	}
}
