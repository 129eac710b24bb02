package count

import "fmt"

// RecursiveExpr denotes func^num_repeats(base): func applied iteratively
// num_repeats times to base. It may nest arbitrarily; no invariant is
// enforced on construction.
type RecursiveExpr struct {
	Func       *Function
	NumRepeats CountExpr
	Base       CountExpr
}

func (r *RecursiveExpr) isCountExpr() {}

// IsZero is always false: a recursive expression is the literal constant
// zero only in degenerate cases this algebra does not attempt to detect
// (that would require evaluating the iteration), so it conservatively
// reports false, matching the "sound but incomplete" design of the algebra.
func (r *RecursiveExpr) IsZero() bool {
	return false
}

// Decrement is never defined for a RecursiveExpr: without evaluating the
// iteration there's no sound way to guarantee the result is non-negative
// for every variable assignment once NumRepeats is symbolic. Callers that
// need to decrement a recursive expression should Normalize it first; a
// NumRepeats that normalizes away leaves a VarSum, which can decrement.
func (r *RecursiveExpr) Decrement() (CountExpr, bool) {
	return nil, false
}

func (r *RecursiveExpr) String() string {
	return fmt.Sprintf("%s^%s(%s)", r.Func.Body, r.NumRepeats, r.Base)
}

// Subst substitutes into Func.Body with σ restricted by removing the bound
// variable (capture avoidance), and substitutes unconditionally into
// NumRepeats and Base.
func (r *RecursiveExpr) Subst(sigma Substitution) (CountExpr, error) {
	bodySigma := sigma.Without(r.Func.Bound)
	newBody, err := r.Func.Body.Subst(bodySigma)
	if err != nil {
		return nil, err
	}
	newNumRepeats, err := r.NumRepeats.Subst(sigma)
	if err != nil {
		return nil, err
	}
	newBase, err := r.Base.Subst(sigma)
	if err != nil {
		return nil, err
	}
	out := &RecursiveExpr{
		Func:       &Function{Bound: r.Func.Bound, Body: newBody},
		NumRepeats: newNumRepeats,
		Base:       newBase,
	}
	if Size(out) > MaxExprSize {
		return nil, ErrExprTooLarge
	}
	return out.Normalize(), nil
}

// Normalize normalizes the components; a repeat count of 0 reduces to the
// base, a repeat count of 1 beta-reduces to func.body[bound := base] when
// that substitution succeeds. An identity body reduces to the base; a
// VarSum body applied to a recursive base stays a redex, since VarSum.Subst
// would only rebuild the same redex.
func (r *RecursiveExpr) Normalize() CountExpr {
	numRepeats := r.NumRepeats.Normalize()
	base := r.Base.Normalize()
	fn := &Function{Bound: r.Func.Bound, Body: r.Func.Body.Normalize()}

	if numRepeats.IsZero() {
		return base
	}
	if isOne(numRepeats) {
		bodySum, bodyIsSum := fn.Body.(*VarSum)
		if bodyIsSum && bodySum.Equal(VarPlus(fn.Bound, 0)) {
			return base
		}
		if _, baseIsRec := base.(*RecursiveExpr); !(bodyIsSum && baseIsRec) {
			if reduced, err := fn.Apply(base); err == nil {
				return reduced.Normalize()
			}
		}
	}
	return &RecursiveExpr{Func: fn, NumRepeats: numRepeats, Base: base}
}

func isOne(e CountExpr) bool {
	vs, ok := e.(*VarSum)
	if !ok {
		return false
	}
	return vs.IsConst() && vs.Constant.Sign() > 0 && vs.Constant.Cmp(Const(1).Constant) == 0
}
