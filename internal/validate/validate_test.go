package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sligocki/busy-beaver/internal/config"
	"github.com/sligocki/busy-beaver/internal/count"
	"github.com/sligocki/busy-beaver/internal/rule"
	"github.com/sligocki/busy-beaver/internal/tape"
	"github.com/sligocki/busy-beaver/internal/tm"
	"github.com/sligocki/busy-beaver/internal/validate"
)

func block(sym byte, rep count.CountOrInf) tape.RepBlock {
	return tape.RepBlock{Symbols: []tm.Symbol{tm.Symbol(sym)}, Rep: rep}
}

func blankConfig(state tm.RunState) config.Config {
	return config.Config{
		Tape: tape.Tape{
			Left:  tape.HalfTape{block(0, count.Infinity())},
			Right: tape.HalfTape{block(0, count.Infinity())},
		},
		State:  tm.RunStateOf(state),
		Facing: tm.Right,
	}
}

func TestTrivialRuleValidates(t *testing.T) {
	c := blankConfig(0)
	rs := &rule.RuleSet{
		TM: mustParse(t, "1RB1LB_1LA1RZ"),
		Rules: []rule.Rule{
			{Init: c, Final: c, Proof: &rule.SimpleProof{}},
		},
	}
	assert.NoError(t, validate.Validate(rs))
}

func mustParse(t *testing.T, s string) *tm.Machine {
	t.Helper()
	m, err := tm.Parse(s)
	require.NoError(t, err)
	return m
}

// TestBB2Halts6Steps mirrors spec scenario 1: the 2-state busy beaver
// champion halts after 6 steps leaving two 1s on each side of the head.
func TestBB2Halts6Steps(t *testing.T) {
	rs := &rule.RuleSet{
		TM: mustParse(t, "1RB1LB_1LA1RZ"),
		Rules: []rule.Rule{
			{
				Init: blankConfig(0),
				Final: config.Config{
					Tape: tape.Tape{
						Left:  tape.HalfTape{block(0, count.Infinity()), block(1, count.FiniteN(2))},
						Right: tape.HalfTape{block(0, count.Infinity()), block(1, count.FiniteN(2))},
					},
					State:  tm.HaltState,
					Facing: tm.Right,
				},
				Proof: &rule.SimpleProof{Steps: []rule.ProofStep{rule.TMSteps{K: 6}}},
			},
		},
	}
	assert.NoError(t, validate.Validate(rs))
}

// TestBB2WrongStepCountFails mirrors scenario 6: the same rule with
// TMSteps(5) has not yet halted, so it mismatches the declared final.
func TestBB2WrongStepCountFails(t *testing.T) {
	rs := &rule.RuleSet{
		TM: mustParse(t, "1RB1LB_1LA1RZ"),
		Rules: []rule.Rule{
			{
				Init: blankConfig(0),
				Final: config.Config{
					Tape: tape.Tape{
						Left:  tape.HalfTape{block(0, count.Infinity()), block(1, count.FiniteN(2))},
						Right: tape.HalfTape{block(0, count.Infinity()), block(1, count.FiniteN(2))},
					},
					State:  tm.HaltState,
					Facing: tm.Right,
				},
				Proof: &rule.SimpleProof{Steps: []rule.ProofStep{rule.TMSteps{K: 5}}},
			},
		},
	}
	err := validate.Validate(rs)
	require.Error(t, err)
	var ve *validate.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, validate.Simple, ve.Err.Branch)
	var mismatch *validate.FinalConfigMismatch
	assert.ErrorAs(t, err, &mismatch)
}

// TestBB4Halts107Steps mirrors spec scenario 2.
func TestBB4Halts107Steps(t *testing.T) {
	rs := &rule.RuleSet{
		TM: mustParse(t, "1RB1LB_1LA0LC_1RZ1LD_1RD0RA"),
		Rules: []rule.Rule{
			{
				Init: blankConfig(0),
				Final: config.Config{
					Tape: tape.Tape{
						Left: tape.HalfTape{block(0, count.Infinity()), block(1, count.FiniteN(1))},
						Right: tape.HalfTape{
							block(0, count.Infinity()),
							block(1, count.FiniteN(12)),
							block(0, count.FiniteN(1)),
						},
					},
					State:  tm.HaltState,
					Facing: tm.Right,
				},
				Proof: &rule.SimpleProof{Steps: []rule.ProofStep{rule.TMSteps{K: 107}}},
			},
		},
	}
	assert.NoError(t, validate.Validate(rs))
}

// chainRule builds the "0^n <C ⇒ <C 1^n" rule from spec scenario 3 for the
// TM 1RB1LD_1RC1RB_1LC1LA_0RC0RD, with an inductive proof invoking its own
// hypothesis at n.
func chainRule(n count.Variable) rule.Rule {
	init := config.Config{
		Tape:   tape.Tape{Left: tape.HalfTape{block(0, count.Finite(count.VarPlus(n, 0)))}},
		State:  tm.RunStateOf(2),
		Facing: tm.Left,
	}
	final := config.Config{
		Tape:   tape.Tape{Right: tape.HalfTape{block(1, count.Finite(count.VarPlus(n, 0)))}},
		State:  tm.RunStateOf(2),
		Facing: tm.Left,
	}
	return rule.Rule{
		Init:  init,
		Final: final,
		Proof: &rule.InductiveProof{
			InductionVar: n,
			Base:         nil,
			Inductive: []rule.ProofStep{
				rule.TMSteps{K: 1},
				rule.InductiveStep{Subst: count.Identity(n)},
			},
		},
	}
}

func TestChainRuleValidates(t *testing.T) {
	n := count.InductionVar
	rs := &rule.RuleSet{
		TM:    mustParse(t, "1RB1LD_1RC1RB_1LC1LA_0RC0RD"),
		Rules: []rule.Rule{chainRule(n)},
	}
	assert.NoError(t, validate.Validate(rs))
}

// TestChainRuleBrokenInductionFails mirrors scenario 5: binding σ(n) to
// n+1 instead of n does not strictly decrease, so it's rejected.
func TestChainRuleBrokenInductionFails(t *testing.T) {
	n := count.InductionVar
	r := chainRule(n)
	r.Proof = &rule.InductiveProof{
		InductionVar: n,
		Base:         nil,
		Inductive: []rule.ProofStep{
			rule.TMSteps{K: 1},
			rule.InductiveStep{Subst: count.Substitution{n: count.VarPlus(n, 1)}},
		},
	}
	rs := &rule.RuleSet{
		TM:    mustParse(t, "1RB1LD_1RC1RB_1LC1LA_0RC0RD"),
		Rules: []rule.Rule{r},
	}
	err := validate.Validate(rs)
	require.Error(t, err)
	var bad *validate.InductionVarNotDecreasing
	assert.ErrorAs(t, err, &bad)
}

// TestRuleCitingItselfFails mirrors the declaration-order rule: a
// RuleStep citing the current rule's own id (or a later one) must fail,
// even though an InductiveStep invoking the same rule is legal.
func TestRuleCitingItselfFails(t *testing.T) {
	c := blankConfig(0)
	rs := &rule.RuleSet{
		TM: mustParse(t, "1RB1LB_1LA1RZ"),
		Rules: []rule.Rule{
			{
				Init:  c,
				Final: c,
				Proof: &rule.SimpleProof{Steps: []rule.ProofStep{
					rule.RuleStep{RuleID: 0, Subst: count.Substitution{}},
				}},
			},
		},
	}
	err := validate.Validate(rs)
	require.Error(t, err)
	var notYet *validate.RuleNotYetDefined
	assert.ErrorAs(t, err, &notYet)
}

// TestAdmitIsSoftFailure checks that an Admit treats the rule as proven
// for chaining purposes while still failing the overall run.
func TestAdmitIsSoftFailure(t *testing.T) {
	c := blankConfig(0)
	rs := &rule.RuleSet{
		TM: mustParse(t, "1RB1LB_1LA1RZ"),
		Rules: []rule.Rule{
			{
				Init:  c,
				Final: c,
				Proof: &rule.SimpleProof{Steps: []rule.ProofStep{rule.Admit{}}},
			},
		},
	}
	err := validate.Validate(rs)
	require.Error(t, err)
	assert.True(t, validate.IsAdmitted(err))
}

// TestValidateRuleIsolatesFailureToOneRule checks that ValidateRule reports
// each rule's own outcome rather than the aggregated Validate result: a
// broken rule 1 should not make ValidateRule(rs, 0) fail, and a sound rule 0
// should not make ValidateRule(rs, 1) pass.
func TestValidateRuleIsolatesFailureToOneRule(t *testing.T) {
	c := blankConfig(0)
	wrong := blankConfig(1)
	rs := &rule.RuleSet{
		TM: mustParse(t, "1RB1LB_1LA1RZ"),
		Rules: []rule.Rule{
			{Init: c, Final: c, Proof: &rule.SimpleProof{}},
			{Init: c, Final: wrong, Proof: &rule.SimpleProof{}},
		},
	}
	v := &validate.Validator{}
	assert.NoError(t, v.ValidateRule(rs, 0))
	assert.Error(t, v.ValidateRule(rs, 1))
}

// TestValidateRuleAllowsCitingEarlierRule checks that a RuleStep citation of
// an earlier, already-valid rule still resolves correctly when validating a
// single later rule in isolation (ValidateRule must not lose access to the
// cited rule's Init/Final, which only rs.Rules as a whole provides).
func TestValidateRuleAllowsCitingEarlierRule(t *testing.T) {
	c := blankConfig(0)
	rs := &rule.RuleSet{
		TM: mustParse(t, "1RB1LB_1LA1RZ"),
		Rules: []rule.Rule{
			{Init: c, Final: c, Proof: &rule.SimpleProof{}},
			{
				Init:  c,
				Final: c,
				Proof: &rule.SimpleProof{Steps: []rule.ProofStep{
					rule.RuleStep{RuleID: 0, Subst: count.Substitution{}},
				}},
			},
		},
	}
	v := &validate.Validator{}
	assert.NoError(t, v.ValidateRule(rs, 1))
}
