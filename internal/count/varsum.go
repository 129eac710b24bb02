package count

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// VarSum is a linear combination Σ cᵢ·xᵢ + k of distinct variables xᵢ with
// positive natural coefficients cᵢ and a natural constant k. The zero
// coefficient map keys are never stored: Terms is kept normalized by
// construction, see Normalize.
type VarSum struct {
	Terms    map[Variable]*big.Int
	Constant *big.Int
}

// Const builds a bare constant VarSum (no free variables).
func Const(n int64) *VarSum {
	return &VarSum{Terms: map[Variable]*big.Int{}, Constant: big.NewInt(n)}
}

// ConstBig builds a bare constant VarSum from an arbitrary-precision value.
func ConstBig(n *big.Int) *VarSum {
	return &VarSum{Terms: map[Variable]*big.Int{}, Constant: new(big.Int).Set(n)}
}

// VarPlus builds the single-term sum `1*v + k`.
func VarPlus(v Variable, k int64) *VarSum {
	return &VarSum{Terms: map[Variable]*big.Int{v: big.NewInt(1)}, Constant: big.NewInt(k)}
}

// VarScaled builds the single-term sum `c*v + k`.
func VarScaled(v Variable, c, k int64) *VarSum {
	return &VarSum{Terms: map[Variable]*big.Int{v: big.NewInt(c)}, Constant: big.NewInt(k)}
}

func (s *VarSum) isCountExpr() {}

func (s *VarSum) clone() *VarSum {
	terms := make(map[Variable]*big.Int, len(s.Terms))
	for v, c := range s.Terms {
		terms[v] = new(big.Int).Set(c)
	}
	return &VarSum{Terms: terms, Constant: new(big.Int).Set(s.Constant)}
}

// IsZero reports whether this sum is the literal constant zero with no
// free variables.
func (s *VarSum) IsZero() bool {
	return len(s.Terms) == 0 && s.Constant.Sign() == 0
}

// IsConst reports whether this sum has no free variables.
func (s *VarSum) IsConst() bool {
	return len(s.Terms) == 0
}

// Decrement returns self - 1 when the constant term is guaranteed to
// cover it (constant >= 1); it fails when the only way to make the result
// non-negative would require a free variable to be positive, since a free
// variable may always be instantiated to 0.
func (s *VarSum) Decrement() (CountExpr, bool) {
	if s.Constant.Sign() <= 0 {
		return nil, false
	}
	out := s.clone()
	out.Constant.Sub(out.Constant, big.NewInt(1))
	return out, true
}

// Normalize drops zero-coefficient terms. VarSums are constructed already
// normalized by every operation in this file, so Normalize is idempotent
// and mostly serves callers holding a VarSum built by hand.
func (s *VarSum) Normalize() CountExpr {
	out := s.clone()
	for v, c := range out.Terms {
		if c.Sign() == 0 {
			delete(out.Terms, v)
		}
	}
	return out
}

// Subst applies σ to every term. A term mapped to another VarSum is folded
// directly into the result; a term mapped to a RecursiveExpr is deferred
// and the whole result is wrapped as a beta-redex (λ x. rest) recursive_value
// once every plain-VarSum term has been folded in. At most one term may
// substitute to a RecursiveExpr — if more than one does, the substitution
// is rejected (see ErrMultipleRecursiveSubst) rather than silently dropped.
func (s *VarSum) Subst(sigma Substitution) (CountExpr, error) {
	scratch := ConstBig(s.Constant)

	var pendingVar Variable
	var pendingCoef *big.Int
	var pendingValue *RecursiveExpr
	havePending := false

	// Iterate in a stable order so error messages (and any future
	// structural sharing) are deterministic.
	vars := make([]Variable, 0, len(s.Terms))
	for v := range s.Terms {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })

	for _, v := range vars {
		c := s.Terms[v]
		val, ok := sigma[v]
		if !ok {
			scratch = addTerm(scratch, v, c)
			continue
		}
		switch t := val.(type) {
		case *VarSum:
			scratch = addScaled(scratch, t, c)
		case *RecursiveExpr:
			if havePending {
				return nil, fmt.Errorf("%w: variables %s and %s both substitute to recursive expressions in the same sum", ErrMultipleRecursiveSubst, pendingVar, v)
			}
			havePending = true
			pendingVar = v
			pendingCoef = new(big.Int).Set(c)
			pendingValue = t
		default:
			return nil, fmt.Errorf("%w: unsupported substitution value of type %T", ErrVarSubst, val)
		}
	}

	if !havePending {
		return scratch.Normalize(), nil
	}

	body := addTerm(scratch, pendingVar, pendingCoef)
	fn := &Function{Bound: pendingVar, Body: body}
	redex := &RecursiveExpr{Func: fn, NumRepeats: Const(1), Base: pendingValue}
	return redex.Normalize(), nil
}

// CheckedSub computes self - other via natural (non-negative) subtraction
// of the constant and of every variable's coefficient. It fails (returns
// false) whenever any intermediate value would go negative, since that
// cannot be guaranteed safe for every variable assignment.
func (s *VarSum) CheckedSub(other *VarSum) (*VarSum, bool) {
	out := s.clone()
	if out.Constant.Cmp(other.Constant) < 0 {
		return nil, false
	}
	out.Constant.Sub(out.Constant, other.Constant)
	for v, c := range other.Terms {
		cur, ok := out.Terms[v]
		if !ok || cur.Cmp(c) < 0 {
			return nil, false
		}
		next := new(big.Int).Sub(cur, c)
		if next.Sign() == 0 {
			delete(out.Terms, v)
		} else {
			out.Terms[v] = next
		}
	}
	return out, true
}

// CheckedAdd computes self + other.
func (s *VarSum) CheckedAdd(other *VarSum) *VarSum {
	out := s.clone()
	out.Constant.Add(out.Constant, other.Constant)
	for v, c := range other.Terms {
		out = addTerm(out, v, c)
	}
	return out
}

// Equal reports structural equality: identical coefficient maps and
// constant, after normalization. This is exact, not up to any algebraic
// rewriting.
func (s *VarSum) Equal(other *VarSum) bool {
	a := s.Normalize().(*VarSum)
	b := other.Normalize().(*VarSum)
	if a.Constant.Cmp(b.Constant) != 0 {
		return false
	}
	if len(a.Terms) != len(b.Terms) {
		return false
	}
	for v, c := range a.Terms {
		oc, ok := b.Terms[v]
		if !ok || c.Cmp(oc) != 0 {
			return false
		}
	}
	return true
}

func (s *VarSum) String() string {
	vars := make([]Variable, 0, len(s.Terms))
	for v := range s.Terms {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })

	var parts []string
	for _, v := range vars {
		c := s.Terms[v]
		switch {
		case c.Cmp(big.NewInt(1)) == 0:
			parts = append(parts, v.String())
		default:
			parts = append(parts, fmt.Sprintf("%s%s", c.String(), v.String()))
		}
	}
	if s.Constant.Sign() != 0 || len(parts) == 0 {
		parts = append(parts, s.Constant.String())
	}
	return strings.Join(parts, "+")
}

// addTerm returns s with c added to v's coefficient (mutates and returns a
// clone, never the original).
func addTerm(s *VarSum, v Variable, c *big.Int) *VarSum {
	out := s.clone()
	if cur, ok := out.Terms[v]; ok {
		cur.Add(cur, c)
	} else {
		out.Terms[v] = new(big.Int).Set(c)
	}
	return out
}

// addScaled returns s + coef*other.
func addScaled(s *VarSum, other *VarSum, coef *big.Int) *VarSum {
	out := s.clone()
	out.Constant.Add(out.Constant, new(big.Int).Mul(coef, other.Constant))
	for v, c := range other.Terms {
		out = addTerm(out, v, new(big.Int).Mul(coef, c))
	}
	return out
}
