package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sligocki/busy-beaver/grammar"
)

func TestParseRuleSetSourceTrivial(t *testing.T) {
	src := `tm 1RB1LB_1LA1RZ
rule 0: "A>" -> "1 Z>" {
	steps(1)
}
`
	rsf, err := grammar.ParseRuleSetSource("test.bbrules", src)
	require.NoError(t, err)
	assert.Equal(t, "1RB1LB_1LA1RZ", rsf.TM)
	require.Len(t, rsf.Rules, 1)

	rule := rsf.Rules[0]
	assert.Equal(t, 0, rule.ID)
	assert.Equal(t, `"A>"`, rule.Init)
	assert.Equal(t, `"1 Z>"`, rule.Final)
	require.NotNil(t, rule.Proof)
	require.Len(t, rule.Proof.Steps, 1)
	require.NotNil(t, rule.Proof.Steps[0].TMSteps)
	assert.Equal(t, 1, rule.Proof.Steps[0].TMSteps.K)
}

func TestParseRuleSetSourceUseAndInduct(t *testing.T) {
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
	require.Len(t, rsf.Rules, 2)

	induct := rsf.Rules[1]
	require.NotNil(t, induct.Proof.Induction)
	assert.Equal(t, "n", induct.Proof.Induction.Var)
	require.Len(t, induct.Proof.Induction.Base, 1)
	require.NotNil(t, induct.Proof.Induction.Base[0].Admit)

	require.Len(t, induct.Proof.Induction.Step, 2)
	useStep := induct.Proof.Induction.Step[0]
	require.NotNil(t, useStep.Use)
	assert.Equal(t, 0, useStep.Use.RuleID)
	require.Len(t, useStep.Use.Substs, 1)
	assert.Equal(t, "n", useStep.Use.Substs[0].Var)

	inductStep := induct.Proof.Induction.Step[1]
	require.NotNil(t, inductStep.Induct)
	require.Len(t, inductStep.Induct.Substs, 1)
	assert.Equal(t, "n", inductStep.Induct.Substs[0].Var)
}

func TestParseConfigTextBlankBB2Halt(t *testing.T) {
	cfg, err := grammar.ParseConfigText("0^inf 1^2 Z> 1^2 0^inf")
	require.NoError(t, err)
	require.Len(t, cfg.Left, 2)
	require.NotNil(t, cfg.Head.FacingRight)
	assert.Equal(t, "Z", cfg.Head.FacingRight.State)
	require.Len(t, cfg.Right, 2)
}

func TestParseConfigTextFacingLeft(t *testing.T) {
	cfg, err := grammar.ParseConfigText("0^inf <A 1^n 0^inf")
	require.NoError(t, err)
	require.NotNil(t, cfg.Head.FacingLeft)
	assert.Equal(t, "A", cfg.Head.FacingLeft.State)
	require.Len(t, cfg.Right, 2)
}

func TestParseCountExprTextSumOfTerms(t *testing.T) {
	expr, err := grammar.ParseCountExprText("3n+5")
	require.NoError(t, err)
	assert.False(t, expr.Inf)
	require.Len(t, expr.Terms, 2)

	first := expr.Terms[0]
	require.NotNil(t, first.VarTerm)
	require.NotNil(t, first.VarTerm.Coef)
	assert.Equal(t, 3, *first.VarTerm.Coef)
	assert.Equal(t, "n", first.VarTerm.Var)

	second := expr.Terms[1]
	require.NotNil(t, second.Bare)
	assert.Equal(t, 5, *second.Bare)
}

func TestParseCountExprTextInf(t *testing.T) {
	expr, err := grammar.ParseCountExprText("inf")
	require.NoError(t, err)
	assert.True(t, expr.Inf)
	assert.Empty(t, expr.Terms)
}

func TestParseRuleSetSourceRejectsGarbage(t *testing.T) {
	_, err := grammar.ParseRuleSetSource("bad.bbrules", "this is not a ruleset")
	assert.Error(t, err)
}
