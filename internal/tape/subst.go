package tape

import "github.com/sligocki/busy-beaver/internal/count"

// Subst substitutes σ into the block's repetition count; the symbol
// pattern itself has no variables.
func (b RepBlock) Subst(sigma count.Substitution) (RepBlock, error) {
	rep, err := b.Rep.Subst(sigma)
	if err != nil {
		return RepBlock{}, err
	}
	return RepBlock{Symbols: cloneSymbols(b.Symbols), Rep: rep}, nil
}

// Subst substitutes σ into every block of the half-tape.
func (h HalfTape) Subst(sigma count.Substitution) (HalfTape, error) {
	out := make(HalfTape, len(h))
	for i, b := range h {
		sb, err := b.Subst(sigma)
		if err != nil {
			return nil, err
		}
		out[i] = sb
	}
	return out, nil
}
