package count_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sligocki/busy-beaver/internal/count"
)

func TestCheckedSubSelfIsZero(t *testing.T) {
	n := count.InductionVar
	exprs := []count.CountExpr{
		count.Const(0),
		count.Const(13),
		count.VarPlus(n, 0),
		count.VarPlus(n, 7),
		count.VarScaled(n, 3, 5),
	}
	for _, e := range exprs {
		got, ok := count.CheckedSub(e, e)
		require.True(t, ok, "checked_sub(%s, %s) should succeed", e, e)
		assert.True(t, got.IsZero(), "checked_sub(%s, %s) = %s, want 0", e, e, got)
	}
}

func TestCheckedSubAddition(t *testing.T) {
	n := count.InductionVar
	a := count.VarPlus(n, 3)
	b := count.Const(5)
	sum, ok := count.CheckedAdd(a, b)
	require.True(t, ok)

	got, ok := count.CheckedSub(sum, b)
	require.True(t, ok)
	assert.True(t, count.KnownEqual(got, a))
}

func TestInfinityMinusInfinityIsZeroNotX(t *testing.T) {
	// Documented, intentionally surprising behaviour: infinity absorbs any
	// finite part it was padding, so inf-inf is 0 even though the "true"
	// residual of an unbounded blank suffix minus itself is not generally
	// a meaningful finite quantity x. The invariant that makes this sound
	// is that every infinity ever subtracted here represents the same
	// blank-edge suffix (see CountOrInf's doc comment).
	x := count.VarPlus(count.NewVariable(1), 0)

	result, ok := count.CheckedSubOrInf(count.Infinity(), count.Infinity())
	require.True(t, ok)
	assert.True(t, result.IsZero())
	assert.False(t, count.KnownEqualOrInf(result, count.Finite(x)))
}

func TestDecrementSoundness(t *testing.T) {
	n := count.InductionVar

	// Zero cannot be decremented.
	_, ok := count.Const(0).Decrement()
	assert.False(t, ok)

	// A bare variable cannot be decremented: it might be 0.
	_, ok = count.VarPlus(n, 0).Decrement()
	assert.False(t, ok)

	// n+1 decrements sound to n+0.
	dec, ok := count.VarPlus(n, 1).Decrement()
	require.True(t, ok)
	assert.True(t, count.KnownEqual(dec, count.VarPlus(n, 0)))

	dec, ok = count.Const(13).Decrement()
	require.True(t, ok)
	assert.True(t, count.KnownEqual(dec, count.Const(12)))
}

func TestNormalizeIdempotent(t *testing.T) {
	n := count.InductionVar
	f := &count.Function{Bound: n, Body: count.VarPlus(n, 1)}
	rec := &count.RecursiveExpr{Func: f, NumRepeats: count.Const(0), Base: count.Const(5)}

	once := rec.Normalize()
	twice := once.Normalize()
	assert.True(t, count.KnownEqual(once, twice))
	assert.True(t, count.KnownEqual(once, count.Const(5)))
}

func TestRecursiveExprNumRepeatsOneBetaReduces(t *testing.T) {
	n := count.InductionVar
	f := &count.Function{Bound: n, Body: count.VarScaled(n, 2, 1)} // λn. 2n+1
	rec := &count.RecursiveExpr{Func: f, NumRepeats: count.Const(1), Base: count.Const(3)}

	got := rec.Normalize()
	assert.True(t, count.KnownEqual(got, count.Const(7))) // 2*3+1
}

func TestKnownEqualAcrossOpaqueRecursiveExprs(t *testing.T) {
	n := count.InductionVar
	a := count.NewVariable(1)
	f := &count.Function{Bound: n, Body: &count.RecursiveExpr{
		Func:       &count.Function{Bound: n, Body: count.VarPlus(n, 1)},
		NumRepeats: count.Const(1),
		Base:       count.VarPlus(n, 0),
	}}
	// f^(k+1)(x) known-equal to f(f^k(x))
	k := count.NewVariable(2)
	lhs := &count.RecursiveExpr{Func: f, NumRepeats: count.VarPlus(k, 1), Base: count.VarPlus(a, 0)}
	inner := &count.RecursiveExpr{Func: f, NumRepeats: count.VarPlus(k, 0), Base: count.VarPlus(a, 0)}
	rhs, err := f.Apply(inner)
	require.NoError(t, err)

	assert.True(t, count.KnownEqual(lhs, rhs))
}

func TestSubstWithRecursiveValue(t *testing.T) {
	n := count.InductionVar
	x := count.NewVariable(1)
	sum := count.VarScaled(n, 2, 3) // 2n+3

	rec := &count.RecursiveExpr{
		Func:       &count.Function{Bound: n, Body: count.VarPlus(n, 1)},
		NumRepeats: count.VarPlus(x, 0),
		Base:       count.Const(0),
	}

	got, err := sum.Subst(count.Substitution{n: rec})
	require.NoError(t, err)

	// 2*(rec)+3 stays the beta-redex (λn. 2n+3) applied once to rec; spot
	// check it's a RecursiveExpr, not an error.
	_, isRecursive := got.(*count.RecursiveExpr)
	assert.True(t, isRecursive)
}

func TestMultipleRecursiveSubstitutionsRejected(t *testing.T) {
	n := count.InductionVar
	x := count.NewVariable(1)
	sum := count.VarPlus(n, 0).CheckedAdd(count.VarPlus(x, 0))

	rec := &count.RecursiveExpr{
		Func:       &count.Function{Bound: n, Body: count.VarPlus(n, 1)},
		NumRepeats: count.Const(2),
		Base:       count.Const(0),
	}

	_, err := sum.Subst(count.Substitution{n: rec, x: rec})
	assert.ErrorIs(t, err, count.ErrMultipleRecursiveSubst)
}
