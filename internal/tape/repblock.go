// Package tape implements the symbolic half-tape model: repetition blocks,
// half-tapes built from them, and the two-sided Tape pair, along with
// pop/push, normalization, prefix replacement, and equivalence.
package tape

import (
	"strings"

	"github.com/sligocki/busy-beaver/internal/count"
	"github.com/sligocki/busy-beaver/internal/tm"
)

// RepBlock is a symbol pattern annotated with a symbolic repetition count:
// Symbols repeated Rep times. Symbols is ordered so its last element is
// nearest the TM head within each repetition.
type RepBlock struct {
	Symbols []tm.Symbol
	Rep     count.CountOrInf
}

func (b RepBlock) String() string {
	var sb strings.Builder
	for _, s := range b.Symbols {
		sb.WriteString(s.String())
	}
	if b.Rep.Inf {
		sb.WriteString("^inf")
	} else if !isOneExpr(b.Rep.Expr) {
		sb.WriteString("^")
		sb.WriteString(b.Rep.String())
	}
	return sb.String()
}

func isOneExpr(e count.CountExpr) bool {
	vs, ok := e.(*count.VarSum)
	if !ok {
		return false
	}
	return vs.IsConst() && vs.Constant.Sign() > 0 && vs.Constant.Cmp(count.Const(1).Constant) == 0
}

// sameSymbols reports whether two symbol patterns are identical.
func sameSymbols(a, b []tm.Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cloneSymbols(s []tm.Symbol) []tm.Symbol {
	out := make([]tm.Symbol, len(s))
	copy(out, s)
	return out
}
