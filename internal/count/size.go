package count

// MaxExprSize bounds the number of nodes a CountExpr tree may grow to
// during substitution. Repeated substitution into a RecursiveExpr can grow
// an expression super-polynomially (§5 of the design notes); rather than
// let that run away into unbounded memory, Subst on a RecursiveExpr checks
// the result against this budget and fails with ErrExprTooLarge.
//
// The default is generous enough for any proof in the corpus this checker
// was built to verify; callers proving something unusually deep can raise
// it.
var MaxExprSize = 1 << 20

// Size counts the nodes in a CountExpr tree.
func Size(e CountExpr) int {
	switch v := e.(type) {
	case *VarSum:
		return 1 + len(v.Terms)
	case *RecursiveExpr:
		return 1 + Size(v.Func.Body) + Size(v.NumRepeats) + Size(v.Base)
	default:
		return 1
	}
}
