package tape

import (
	"github.com/sligocki/busy-beaver/internal/count"
	"github.com/sligocki/busy-beaver/internal/tm"
)

// Tape is a pair of half-tapes, one per direction.
type Tape struct {
	Left, Right HalfTape
}

// Side returns the half-tape on the given side.
func (t Tape) Side(d tm.Dir) HalfTape {
	if d == tm.Left {
		return t.Left
	}
	return t.Right
}

// WithSide returns a copy of t with the half-tape on side d replaced.
func (t Tape) WithSide(d tm.Dir, h HalfTape) Tape {
	if d == tm.Left {
		return Tape{Left: h, Right: t.Right}
	}
	return Tape{Left: t.Left, Right: h}
}

// Normalize normalizes both half-tapes.
func (t Tape) Normalize() Tape {
	return Tape{Left: t.Left.Normalize(), Right: t.Right.Normalize()}
}

// Subst substitutes σ into both half-tapes.
func (t Tape) Subst(sigma count.Substitution) (Tape, error) {
	l, err := t.Left.Subst(sigma)
	if err != nil {
		return Tape{}, err
	}
	r, err := t.Right.Subst(sigma)
	if err != nil {
		return Tape{}, err
	}
	return Tape{Left: l, Right: r}, nil
}

// EquivalentTo reports whether both sides are pairwise equivalent.
func (t Tape) EquivalentTo(other Tape) bool {
	return t.Left.EquivalentTo(other.Left) && t.Right.EquivalentTo(other.Right)
}
