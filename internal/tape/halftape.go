package tape

import (
	"strings"

	"github.com/sligocki/busy-beaver/internal/count"
	"github.com/sligocki/busy-beaver/internal/tm"
)

// HalfTape is an ordered sequence of RepBlock, the last one nearest the
// head. It reads outward-edge to head as block0 block1 ... blockN-1.
type HalfTape []RepBlock

func (h HalfTape) String() string {
	parts := make([]string, len(h))
	for i, b := range h {
		parts[i] = b.String()
	}
	return strings.Join(parts, " ")
}

func (h HalfTape) clone() HalfTape {
	out := make(HalfTape, len(h))
	copy(out, h)
	return out
}

// PushSymbol appends a fresh block ([s], 1) nearest the head. Merging with
// an existing top block is deliberately not attempted here: Normalize is
// the single place block-merging logic lives, and simplicity during
// simulation is preferred over speed (see design notes §4.2.1).
func (h HalfTape) PushSymbol(s tm.Symbol) HalfTape {
	out := h.clone()
	return append(out, RepBlock{Symbols: []tm.Symbol{s}, Rep: count.FiniteN(1)})
}

// PopSymbol removes and returns the single symbol nearest the head. It
// soundly fails (returns ok=false) when the top block's repetition count
// cannot be safely decremented and the rotation rescue of §4.2.3 also
// fails to resolve the ambiguity.
func (h HalfTape) PopSymbol() (tm.Symbol, HalfTape, bool) {
	if len(h) == 0 {
		return 0, h, false
	}
	top := h[len(h)-1]
	below := h[:len(h)-1]

	if rep2, ok := top.Rep.Decrement(); ok {
		patLen := len(top.Symbols)
		if patLen == 0 {
			return 0, h, false
		}
		popped := top.Symbols[patLen-1]
		residual := top.Symbols[:patLen-1]

		out := below.clone()
		if !rep2.IsZero() {
			out = append(out, RepBlock{Symbols: top.Symbols, Rep: rep2})
		}
		if len(residual) > 0 {
			out = append(out, RepBlock{Symbols: cloneSymbols(residual), Rep: count.FiniteN(1)})
		}
		return popped, out, true
	}

	return h.rotationRescue(below, top)
}

// rotationRescue implements §4.2.3: when the top block's count can't be
// decremented, peek one symbol below it. If that symbol matches the last
// symbol of the top block's pattern, the blocks are aligned: rotate the
// top pattern right by one and treat the peeked symbol as popped.
func (h HalfTape) rotationRescue(below HalfTape, top RepBlock) (tm.Symbol, HalfTape, bool) {
	patLen := len(top.Symbols)
	if patLen == 0 {
		return 0, h, false
	}
	belowSym, belowRest, ok := below.PopSymbol()
	if !ok {
		return 0, h, false
	}
	lastPatSym := top.Symbols[patLen-1]
	if belowSym != lastPatSym {
		return 0, h, false
	}

	rotated := make([]tm.Symbol, patLen)
	rotated[0] = lastPatSym
	copy(rotated[1:], top.Symbols[:patLen-1])

	out := belowRest.clone()
	out = append(out, RepBlock{Symbols: rotated, Rep: top.Rep})
	return lastPatSym, out, true
}

// Normalize drops blocks with empty symbol lists or zero rep, and merges
// adjacent blocks sharing a symbol pattern by summing their reps (when
// that sum is representable). Repeated application is idempotent.
func (h HalfTape) Normalize() HalfTape {
	var out HalfTape
	for _, b := range h {
		if len(b.Symbols) == 0 || b.Rep.IsZero() {
			continue
		}
		if len(out) > 0 {
			last := out[len(out)-1]
			if sameSymbols(last.Symbols, b.Symbols) {
				if sum, ok := count.AddOrInf(last.Rep, b.Rep); ok {
					out[len(out)-1] = RepBlock{Symbols: last.Symbols, Rep: sum}
					continue
				}
			}
		}
		out = append(out, b)
	}
	return out
}

// Replace treats self and old as streams aligned at the head and peels
// matching prefixes (from the head inward) until old is exhausted. The
// remainder of self is the "left context"; it is concatenated with
// replacement to produce the result. Replace soundly fails when old is
// longer than self, or when a mismatch or ambiguity is found.
func (h HalfTape) Replace(old, replacement HalfTape) (HalfTape, bool) {
	self := h.Normalize()
	rest := old.Normalize()

	for len(rest) > 0 {
		if len(self) == 0 {
			return nil, false
		}
		selfTop := self[len(self)-1]
		oldTop := rest[len(rest)-1]

		if sameSymbols(selfTop.Symbols, oldTop.Symbols) {
			if diff, ok := count.CheckedSubOrInf(selfTop.Rep, oldTop.Rep); ok {
				rest = rest[:len(rest)-1]
				if diff.IsZero() {
					self = self[:len(self)-1]
				} else {
					self = append(self[:len(self)-1:len(self)-1], RepBlock{Symbols: selfTop.Symbols, Rep: diff})
				}
				continue
			}
		}

		oldSym, oldRest, ok1 := rest.PopSymbol()
		if !ok1 {
			return nil, false
		}
		selfSym, selfRest, ok2 := self.PopSymbol()
		if !ok2 {
			return nil, false
		}
		if oldSym != selfSym {
			return nil, false
		}
		rest = oldRest
		self = selfRest
	}

	result := append(self.clone(), replacement...)
	return result.Normalize(), true
}

// EquivalentTo reports whether h and other denote the same symbolic tape
// content, regardless of differing block compression: h.Replace(other, ∅)
// succeeds with an empty residual.
func (h HalfTape) EquivalentTo(other HalfTape) bool {
	result, ok := h.Replace(other, nil)
	return ok && len(result) == 0
}
