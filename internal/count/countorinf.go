package count

// CountOrInf adds an Infinity element to CountExpr, used for block
// repetition counts: an infinite-blank tape edge is represented with
// Inf set rather than any finite expression.
//
// The ∞ − ∞ = 0 convention below is sound only because infinities are
// introduced exclusively as matching blank-edge padding (see §4.1.4 of
// the design notes): every pair of infinite reps ever subtracted from one
// another represents the same infinite suffix. This is an invariant of how
// HalfTape.Replace uses CheckedSub, not a general arithmetic fact.
type CountOrInf struct {
	Expr CountExpr
	Inf  bool
}

// Finite wraps a finite CountExpr.
func Finite(e CountExpr) CountOrInf {
	return CountOrInf{Expr: e}
}

// Infinity is the infinite count.
func Infinity() CountOrInf {
	return CountOrInf{Inf: true}
}

// FiniteN is shorthand for a finite concrete natural.
func FiniteN(n int64) CountOrInf {
	return Finite(Const(n))
}

func (c CountOrInf) IsZero() bool {
	if c.Inf {
		return false
	}
	return c.Expr.IsZero()
}

// Decrement implements ∞.decrement() = ∞ and otherwise delegates to the
// wrapped expression.
func (c CountOrInf) Decrement() (CountOrInf, bool) {
	if c.Inf {
		return Infinity(), true
	}
	e, ok := c.Expr.Decrement()
	if !ok {
		return CountOrInf{}, false
	}
	return Finite(e), true
}

func (c CountOrInf) Normalize() CountOrInf {
	if c.Inf {
		return c
	}
	return Finite(c.Expr.Normalize())
}

func (c CountOrInf) Subst(sigma Substitution) (CountOrInf, error) {
	if c.Inf {
		return c, nil
	}
	e, err := c.Expr.Subst(sigma)
	if err != nil {
		return CountOrInf{}, err
	}
	return Finite(e), nil
}

func (c CountOrInf) String() string {
	if c.Inf {
		return "inf"
	}
	return c.Expr.String()
}

// CheckedSubOrInf implements the table from §4.1.4:
//
//	finite - finite: delegate to CountExpr.CheckedSub
//	inf    - finite: inf
//	inf    - inf:    0
//	finite - inf:    undefined (None)
func CheckedSubOrInf(a, b CountOrInf) (CountOrInf, bool) {
	switch {
	case a.Inf && b.Inf:
		return FiniteN(0), true
	case a.Inf && !b.Inf:
		return Infinity(), true
	case !a.Inf && b.Inf:
		return CountOrInf{}, false
	default:
		r, ok := CheckedSub(a.Expr, b.Expr)
		if !ok {
			return CountOrInf{}, false
		}
		return Finite(r), true
	}
}

// AddOrInf adds two reps, used when HalfTape normalization merges adjacent
// blocks with identical symbol patterns. Infinity absorbs any finite
// addend; two finite sides add only when both are VarSums (the only case
// CheckedAdd handles) — a RecursiveExpr operand makes the sum
// unrepresentable and the merge is skipped rather than forced.
func AddOrInf(a, b CountOrInf) (CountOrInf, bool) {
	if a.Inf || b.Inf {
		return Infinity(), true
	}
	sum, ok := CheckedAdd(a.Expr, b.Expr)
	if !ok {
		return CountOrInf{}, false
	}
	return Finite(sum), true
}

// KnownEqualOrInf reports whether a and b are known-equal, where two
// infinities are always equal and an infinity is never equal to a finite.
func KnownEqualOrInf(a, b CountOrInf) bool {
	if a.Inf || b.Inf {
		return a.Inf == b.Inf
	}
	return KnownEqual(a.Expr, b.Expr)
}
