// Package validate implements the proof validator: it applies each rule's
// proof steps against its init config, enforces induction-variable
// discipline and declaration-order rule citation, and compares the
// resulting config against the declared final config.
package validate

import (
	"fmt"

	"github.com/sligocki/busy-beaver/internal/config"
	"github.com/sligocki/busy-beaver/internal/count"
	"github.com/sligocki/busy-beaver/internal/rule"
)

// DefaultMaxTotalSteps bounds the sum of all TMSteps(k) applied across an
// entire rule-set validation run, guarding against runaway step counts in
// a malformed or adversarial rule file.
const DefaultMaxTotalSteps = 1_000_000_000

// Validator checks a rule.RuleSet against the rules of §4.3.
type Validator struct {
	// MaxTotalSteps bounds cumulative TMSteps across every rule's proof.
	// Zero means DefaultMaxTotalSteps.
	MaxTotalSteps int
}

// Validate checks rs with default settings.
func Validate(rs *rule.RuleSet) error {
	return (&Validator{}).Validate(rs)
}

// Validate processes rs.Rules in declaration order. Rule i is verified
// against rules 0..i-1. A hard error short-circuits immediately; an
// Admitted soft error lets validation continue so later hard errors are
// still caught, but the first Admitted seen is what Validate ultimately
// returns if nothing harder turns up.
func (v *Validator) Validate(rs *rule.RuleSet) error {
	maxSteps := v.MaxTotalSteps
	if maxSteps == 0 {
		maxSteps = DefaultMaxTotalSteps
	}

	totalSteps := 0
	var firstSoft error
	for i := range rs.Rules {
		err := v.validateRule(rs, i, maxSteps, &totalSteps)
		if err == nil {
			continue
		}
		if IsAdmitted(err) {
			if firstSoft == nil {
				firstSoft = err
			}
			continue
		}
		return err
	}
	return firstSoft
}

// ValidateRule checks a single rule (ruleID) in isolation, assuming
// rules 0..ruleID-1 already validate (rs.Rules must still hold all of
// them, since a RuleStep citation needs their init/final configs). Its
// step budget is private to this call, not shared with any other
// ValidateRule or Validate call; it exists for per-rule reporting
// (cmd/bbproof's pass/fail-per-rule output), not for enforcing a
// whole-rule-set budget.
func (v *Validator) ValidateRule(rs *rule.RuleSet, ruleID int) error {
	maxSteps := v.MaxTotalSteps
	if maxSteps == 0 {
		maxSteps = DefaultMaxTotalSteps
	}
	totalSteps := 0
	return v.validateRule(rs, ruleID, maxSteps, &totalSteps)
}

// stepResult is the outcome of running a proof-step sequence: either a
// computed config, or an early stop at an Admit step.
type stepResult struct {
	cfg       config.Config
	admitted  bool
	admitStep int
}

func wrapErr(ruleID int, branch Branch, perr *ProofValidationError) *ValidationError {
	return &ValidationError{RuleID: ruleID, Err: &RuleValidationError{Branch: branch, Err: perr}}
}

func (v *Validator) validateRule(rs *rule.RuleSet, ruleID, maxSteps int, totalSteps *int) error {
	r := rs.Rules[ruleID]

	switch p := r.Proof.(type) {
	case *rule.SimpleProof:
		res, perr := v.runSteps(rs, ruleID, r.Init, p.Steps, false, 0, maxSteps, totalSteps)
		if perr != nil {
			return wrapErr(ruleID, Simple, perr)
		}
		if res.admitted {
			return wrapErr(ruleID, Simple, &ProofValidationError{StepNum: res.admitStep, Err: &Admitted{}})
		}
		if !res.cfg.EquivalentTo(r.Final) {
			return wrapErr(ruleID, Simple, &ProofValidationError{
				StepNum: len(p.Steps),
				Err:     &FinalConfigMismatch{Got: res.cfg, Want: r.Final},
			})
		}
		return nil

	case *rule.InductiveProof:
		return v.validateInductive(rs, ruleID, p, maxSteps, totalSteps)

	default:
		return fmt.Errorf("validate: unknown proof type %T", r.Proof)
	}
}

func (v *Validator) validateInductive(rs *rule.RuleSet, ruleID int, p *rule.InductiveProof, maxSteps int, totalSteps *int) error {
	r := rs.Rules[ruleID]
	n := p.InductionVar

	sigma0 := count.Substitution{n: count.Const(0)}
	init0, err := r.Init.Subst(sigma0)
	if err != nil {
		return wrapErr(ruleID, Base, &ProofValidationError{Err: &VarSubstError{Err: err}})
	}
	final0, err := r.Final.Subst(sigma0)
	if err != nil {
		return wrapErr(ruleID, Base, &ProofValidationError{Err: &VarSubstError{Err: err}})
	}

	baseRes, perr := v.runSteps(rs, ruleID, init0, p.Base, false, n, maxSteps, totalSteps)
	if perr != nil {
		return wrapErr(ruleID, Base, perr)
	}

	var baseAdmit *ProofValidationError
	switch {
	case baseRes.admitted:
		baseAdmit = &ProofValidationError{StepNum: baseRes.admitStep, Err: &Admitted{}}
	case !baseRes.cfg.EquivalentTo(final0):
		return wrapErr(ruleID, Base, &ProofValidationError{
			StepNum: len(p.Base),
			Err:     &FinalConfigMismatch{Got: baseRes.cfg, Want: final0},
		})
	}

	sigmaInd := count.Substitution{n: count.VarPlus(n, 1)}
	initN, err := r.Init.Subst(sigmaInd)
	if err != nil {
		return wrapErr(ruleID, Induction, &ProofValidationError{Err: &VarSubstError{Err: err}})
	}
	finalN, err := r.Final.Subst(sigmaInd)
	if err != nil {
		return wrapErr(ruleID, Induction, &ProofValidationError{Err: &VarSubstError{Err: err}})
	}

	indRes, perr := v.runSteps(rs, ruleID, initN, p.Inductive, true, n, maxSteps, totalSteps)
	if perr != nil {
		return wrapErr(ruleID, Induction, perr)
	}
	if indRes.admitted {
		return wrapErr(ruleID, Induction, &ProofValidationError{StepNum: indRes.admitStep, Err: &Admitted{}})
	}
	if !indRes.cfg.EquivalentTo(finalN) {
		return wrapErr(ruleID, Induction, &ProofValidationError{
			StepNum: len(p.Inductive),
			Err:     &FinalConfigMismatch{Got: indRes.cfg, Want: finalN},
		})
	}

	if baseAdmit != nil {
		return wrapErr(ruleID, Base, baseAdmit)
	}
	return nil
}

// runSteps applies steps in order starting from start, returning the
// resulting config or the step at which an Admit was hit. ruleID is the
// rule currently being proven (its own Init/Final are what InductiveStep
// substitutes into); allowInductive gates whether InductiveStep is legal.
func (v *Validator) runSteps(
	rs *rule.RuleSet,
	ruleID int,
	start config.Config,
	steps []rule.ProofStep,
	allowInductive bool,
	inductionVar count.Variable,
	maxSteps int,
	totalSteps *int,
) (stepResult, *ProofValidationError) {
	cur := start
	for idx, step := range steps {
		switch s := step.(type) {
		case rule.TMSteps:
			*totalSteps += s.K
			if *totalSteps > maxSteps {
				return stepResult{}, &ProofValidationError{StepNum: idx, Err: &BudgetExceeded{MaxTotalSteps: maxSteps}}
			}
			next, err := cur.StepN(rs.TM, s.K)
			if err != nil {
				return stepResult{}, &ProofValidationError{StepNum: idx, Err: &TMStepError{Config: cur, Err: err}}
			}
			cur = next

		case rule.RuleStep:
			if s.RuleID >= ruleID {
				return stepResult{}, &ProofValidationError{
					StepNum: idx,
					Err:     &RuleNotYetDefined{CitedRuleID: s.RuleID, CurrentRuleID: ruleID},
				}
			}
			cited := rs.Rules[s.RuleID]
			next, perr := applyRuleStep(cur, cited.Init, cited.Final, s.Subst, idx)
			if perr != nil {
				return stepResult{}, perr
			}
			cur = next

		case rule.InductiveStep:
			if !allowInductive {
				return stepResult{}, &ProofValidationError{StepNum: idx, Err: &InductiveStepInNonInductiveProof{}}
			}
			bound, ok := s.Subst[inductionVar]
			if !ok || !count.KnownEqual(bound, count.VarPlus(inductionVar, 0)) {
				return stepResult{}, &ProofValidationError{
					StepNum: idx,
					Err:     &InductionVarNotDecreasing{InductionVar: inductionVar, Subst: s.Subst},
				}
			}
			r := rs.Rules[ruleID]
			next, perr := applyRuleStep(cur, r.Init, r.Final, s.Subst, idx)
			if perr != nil {
				return stepResult{}, perr
			}
			cur = next

		case rule.Admit:
			return stepResult{cfg: cur, admitted: true, admitStep: idx}, nil

		default:
			return stepResult{}, &ProofValidationError{StepNum: idx, Err: fmt.Errorf("validate: unknown proof step %T", step)}
		}
	}
	return stepResult{cfg: cur}, nil
}

// applyRuleStep substitutes σ into (init, final), then replaces that
// head-aligned prefix of cur with final, used by both RuleStep and
// InductiveStep (which differ only in which rule's init/final apply and
// in the discipline check on σ).
func applyRuleStep(cur config.Config, init, final config.Config, sigma count.Substitution, stepIdx int) (config.Config, *ProofValidationError) {
	substInit, err := init.Subst(sigma)
	if err != nil {
		return config.Config{}, &ProofValidationError{StepNum: stepIdx, Err: &VarSubstError{Err: err}}
	}
	substFinal, err := final.Subst(sigma)
	if err != nil {
		return config.Config{}, &ProofValidationError{StepNum: stepIdx, Err: &VarSubstError{Err: err}}
	}
	next, ok := cur.Replace(substInit, substFinal)
	if !ok {
		return config.Config{}, &ProofValidationError{
			StepNum: stepIdx,
			Err:     &RuleConfigMismatch{Current: cur, Init: substInit},
		}
	}
	return next, nil
}
