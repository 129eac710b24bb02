package validate

import (
	"errors"
	"fmt"

	"github.com/sligocki/busy-beaver/internal/config"
	"github.com/sligocki/busy-beaver/internal/count"
)

// TMStepError reports that a primitive TM step failed: ambiguous pop,
// undefined transition, or stepping from the halt state.
type TMStepError struct {
	Config config.Config
	Err    error
}

func (e *TMStepError) Error() string {
	return fmt.Sprintf("tm step failed at %s: %v", e.Config, e.Err)
}
func (e *TMStepError) Unwrap() error { return e.Err }

// VarSubstError reports that a substitution produced an ill-formed
// expression: it wraps the error internal/count's Subst returned (for
// example ErrMultipleRecursiveSubst or ErrExprTooLarge).
type VarSubstError struct {
	Err error
}

func (e *VarSubstError) Error() string { return fmt.Sprintf("invalid substitution: %v", e.Err) }
func (e *VarSubstError) Unwrap() error { return e.Err }

// RuleNotYetDefined reports a RuleStep citing a rule id that is not
// strictly less than the rule currently being validated.
type RuleNotYetDefined struct {
	CitedRuleID   int
	CurrentRuleID int
}

func (e *RuleNotYetDefined) Error() string {
	return fmt.Sprintf("rule %d cites rule %d, which is not yet defined", e.CurrentRuleID, e.CitedRuleID)
}

// InductionVarNotDecreasing reports an InductiveStep whose substitution
// did not bind the induction variable to itself (σ(n) = n), i.e. did not
// invoke the hypothesis at a strictly smaller value.
type InductionVarNotDecreasing struct {
	InductionVar count.Variable
	Subst        count.Substitution
}

func (e *InductionVarNotDecreasing) Error() string {
	return fmt.Sprintf("inductive step must bind %s to itself, got %s", e.InductionVar, e.Subst)
}

// InductiveStepInNonInductiveProof reports an InductiveStep appearing in a
// SimpleProof or the base branch of an InductiveProof.
type InductiveStepInNonInductiveProof struct{}

func (e *InductiveStepInNonInductiveProof) Error() string {
	return "inductive step used outside the inductive branch"
}

// RuleConfigMismatch reports that a cited rule's substituted init config
// did not match as a head-aligned prefix of the current config.
type RuleConfigMismatch struct {
	Current config.Config
	Init    config.Config
}

func (e *RuleConfigMismatch) Error() string {
	return fmt.Sprintf("config %s does not match cited rule's init %s", e.Current, e.Init)
}

// FinalConfigMismatch reports that the config computed after all proof
// steps is not equivalent to the rule's declared final config.
type FinalConfigMismatch struct {
	Got, Want config.Config
}

func (e *FinalConfigMismatch) Error() string {
	return fmt.Sprintf("computed final %s is not equivalent to declared final %s", e.Got, e.Want)
}

// Admitted is a soft error: the proof was deliberately cut short by an
// Admit step. The rule is still treated as proven for rules that cite it,
// but the overall rule-set result is failure.
type Admitted struct{}

func (e *Admitted) Error() string { return "proof admitted, not fully verified" }

// BudgetExceeded reports that the total primitive-step budget across the
// whole rule-set validation run was exceeded. Distinct from Admitted: it
// reflects a resource limit, not a deliberate proof hole.
type BudgetExceeded struct {
	MaxTotalSteps int
}

func (e *BudgetExceeded) Error() string {
	return fmt.Sprintf("total step budget of %d exceeded", e.MaxTotalSteps)
}

// Branch tags which half of an inductive proof an error occurred in (or
// Simple, for a non-inductive proof).
type Branch int

const (
	Simple Branch = iota
	Base
	Induction
)

func (b Branch) String() string {
	switch b {
	case Base:
		return "base"
	case Induction:
		return "induction"
	default:
		return "simple"
	}
}

// ProofValidationError wraps a step-level error with the index of the
// proof step (within its branch) that produced it.
type ProofValidationError struct {
	StepNum int
	Err     error
}

func (e *ProofValidationError) Error() string {
	return fmt.Sprintf("step %d: %v", e.StepNum, e.Err)
}
func (e *ProofValidationError) Unwrap() error { return e.Err }

// RuleValidationError wraps a ProofValidationError with the branch it
// occurred in.
type RuleValidationError struct {
	Branch Branch
	Err    *ProofValidationError
}

func (e *RuleValidationError) Error() string {
	return fmt.Sprintf("%s branch: %v", e.Branch, e.Err)
}
func (e *RuleValidationError) Unwrap() error { return e.Err }

// ValidationError is the top-level error Validate returns: a rule id
// paired with the RuleValidationError that rule produced.
type ValidationError struct {
	RuleID int
	Err    *RuleValidationError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("rule %d: %v", e.RuleID, e.Err)
}
func (e *ValidationError) Unwrap() error { return e.Err }

// IsAdmitted reports whether err's chain bottoms out in an Admitted soft
// error rather than a hard validation failure.
func IsAdmitted(err error) bool {
	var a *Admitted
	return errors.As(err, &a)
}
