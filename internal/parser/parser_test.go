package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sligocki/busy-beaver/grammar"
	"github.com/sligocki/busy-beaver/internal/parser"
	"github.com/sligocki/busy-beaver/internal/rule"
	"github.com/sligocki/busy-beaver/internal/tm"
)

func TestConfigFromTextBB2Halt(t *testing.T) {
	cfg, err := parser.ConfigFromText("0^inf 1^2 Z> 1^2 0^inf")
	require.NoError(t, err)
	assert.Equal(t, tm.HaltState, cfg.State)
	assert.Equal(t, tm.Right, cfg.Facing)
	require.Len(t, cfg.Tape.Left, 2)
	require.Len(t, cfg.Tape.Right, 2)

	// Right tape is printed head-to-edge; internal order is edge-to-head,
	// so the infinite blank block ends up first.
	assert.Equal(t, []tm.Symbol{0}, cfg.Tape.Right[0].Symbols)
	assert.True(t, cfg.Tape.Right[0].Rep.Inf)
	assert.Equal(t, []tm.Symbol{1}, cfg.Tape.Right[1].Symbols)
}

func TestConfigFromTextFacingLeftWithVariable(t *testing.T) {
	cfg, err := parser.ConfigFromText("0^inf <A 1^n 0^inf")
	require.NoError(t, err)
	assert.Equal(t, tm.RunStateOf(0), cfg.State)
	assert.Equal(t, tm.Left, cfg.Facing)
	require.Len(t, cfg.Tape.Right, 2)
	assert.Equal(t, "0^inf 1^n", cfg.Tape.Right.String())
}

func TestBuildRuleSetParsesChainRule(t *testing.T) {
	src := `tm 1RB1LD_1RC1RB_1LC1LA_0RC0RD
rule 0: "0 <A" -> "<A" {
	steps(3)
}
rule 1: "0^n <A" -> "<A 1^n" {
	induction n {
		base {
			admit
		}
		step {
			use(0, n := n)
			induct(n := n)
		}
	}
}
`
	rsf, err := grammar.ParseRuleSetSource("chain.bbrules", src)
	require.NoError(t, err)

	rs, err := parser.BuildRuleSet(rsf)
	require.NoError(t, err)
	assert.Equal(t, "1RB1LD_1RC1RB_1LC1LA_0RC0RD", rs.TM.String())
	require.Len(t, rs.Rules, 2)

	simple, ok := rs.Rules[0].Proof.(*rule.SimpleProof)
	require.True(t, ok)
	require.Len(t, simple.Steps, 1)
	assert.Equal(t, rule.TMSteps{K: 3}, simple.Steps[0])

	inductive, ok := rs.Rules[1].Proof.(*rule.InductiveProof)
	require.True(t, ok)
	assert.Equal(t, "n", inductive.InductionVar.String())
	require.Len(t, inductive.Base, 1)
	_, ok = inductive.Base[0].(rule.Admit)
	assert.True(t, ok)

	require.Len(t, inductive.Inductive, 2)
	useStep, ok := inductive.Inductive[0].(rule.RuleStep)
	require.True(t, ok)
	assert.Equal(t, 0, useStep.RuleID)

	inductStep, ok := inductive.Inductive[1].(rule.InductiveStep)
	require.True(t, ok)
	assert.Contains(t, inductStep.Subst, inductive.InductionVar)
}
