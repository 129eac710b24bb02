// Package rule defines the proof-carrying rule and rule-set types that
// internal/validate checks: a rule asserts init ⇒ final under a proof,
// either a flat sequence of steps or a base/inductive pair recursing on a
// designated induction variable.
package rule

import (
	"fmt"

	"github.com/sligocki/busy-beaver/internal/config"
	"github.com/sligocki/busy-beaver/internal/count"
	"github.com/sligocki/busy-beaver/internal/tm"
)

// ProofStep is one step of a proof: a primitive TM step count, a citation
// of an earlier rule, an invocation of the current rule's own induction
// hypothesis, or a deliberate admission that the proof is incomplete.
type ProofStep interface {
	isProofStep()
	String() string
}

// TMSteps applies step_n(K) to the current config.
type TMSteps struct {
	K int
}

func (TMSteps) isProofStep() {}
func (s TMSteps) String() string {
	return fmt.Sprintf("steps(%d)", s.K)
}

// RuleStep cites an earlier rule by id, under a variable substitution.
type RuleStep struct {
	RuleID int
	Subst  count.Substitution
}

func (RuleStep) isProofStep() {}
func (s RuleStep) String() string {
	return fmt.Sprintf("use(%d, %s)", s.RuleID, s.Subst)
}

// InductiveStep invokes the current rule's own induction hypothesis. Only
// valid inside the inductive branch of an InductiveProof.
type InductiveStep struct {
	Subst count.Substitution
}

func (InductiveStep) isProofStep() {}
func (s InductiveStep) String() string {
	return fmt.Sprintf("induct(%s)", s.Subst)
}

// Admit marks a proof as deliberately incomplete at this point. The rule
// is still treated as proven for the purposes of later rules citing it,
// but the overall rule-set result is failure.
type Admit struct{}

func (Admit) isProofStep() {}
func (Admit) String() string { return "admit" }

// Proof is either a flat sequence of steps or an induction over a
// designated variable.
type Proof interface {
	isProof()
}

// SimpleProof proves init ⇒ final directly via a linear step sequence.
type SimpleProof struct {
	Steps []ProofStep
}

func (*SimpleProof) isProof() {}

// InductiveProof proves init ⇒ final by induction on InductionVar: Base
// proves the n := 0 instance, Inductive proves the n := n+1 instance,
// permitted to invoke the rule itself only via InductiveStep with σ(n) = n.
type InductiveProof struct {
	InductionVar count.Variable
	Base         []ProofStep
	Inductive    []ProofStep
}

func (*InductiveProof) isProof() {}

// Rule asserts Init ⇒ Final under the TM, justified by Proof.
type Rule struct {
	Init  config.Config
	Final config.Config
	Proof Proof
}

// RuleSet is a TM paired with its rules in declaration order: rule i's
// proof may only cite rules 0..i-1 (and itself, via InductiveStep).
type RuleSet struct {
	TM    *tm.Machine
	Rules []Rule
}
