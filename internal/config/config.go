// Package config implements the symbolic machine configuration: a tape
// paired with a run state and the direction the head currently faces, and
// the one-step and n-step simulation rules that advance it.
package config

import (
	"errors"
	"fmt"

	"github.com/sligocki/busy-beaver/internal/count"
	"github.com/sligocki/busy-beaver/internal/tape"
	"github.com/sligocki/busy-beaver/internal/tm"
)

// Config is (tape, state, facing): facing records which half-tape holds
// the symbol to be read next.
type Config struct {
	Tape   tape.Tape
	State  tm.State
	Facing tm.Dir
}

// ErrHalted is returned by Step when State is already the halt state.
var ErrHalted = errors.New("config: machine has halted")

// ErrUndefined is returned by Step when the machine has no transition for
// (State, symbol read).
var ErrUndefined = errors.New("config: transition undefined")

// ErrAmbiguousPop is returned by Step when the front half-tape's leading
// symbol can't be determined without more information (its block's
// repetition count might be zero and the rotation rescue also failed).
var ErrAmbiguousPop = errors.New("config: leading symbol is ambiguous")

// String prints the config in physical tape order: the left half-tape
// edge-to-head, the head, then the right half-tape head-to-edge (the
// reverse of its internal order).
func (c Config) String() string {
	rev := make(tape.HalfTape, len(c.Tape.Right))
	for i, b := range c.Tape.Right {
		rev[len(rev)-1-i] = b
	}
	left, right := c.Tape.Left.String(), rev.String()
	if c.Facing == tm.Right {
		return fmt.Sprintf("%s %s> %s", left, c.State, right)
	}
	return fmt.Sprintf("%s <%s %s", left, c.State, right)
}

// Step advances the configuration by exactly one transition.
//
// It pops the leading symbol off the front half-tape (the side Facing
// points to), looks up the transition for (State, that symbol), and on
// success writes the transition's symbol onto what is now the back
// half-tape, updates State, and sets Facing to the direction moved.
func (c Config) Step(m *tm.Machine) (Config, error) {
	if c.State.Halt {
		return Config{}, ErrHalted
	}

	front := c.Tape.Side(c.Facing)
	sym, rest, ok := front.PopSymbol()
	if !ok {
		return Config{}, ErrAmbiguousPop
	}

	trans, ok := m.Trans(c.State, sym)
	if !ok {
		return Config{}, ErrUndefined
	}

	newFacing := trans.Dir
	backSide := newFacing.Opp()

	newTape := c.Tape.WithSide(c.Facing, rest)
	newTape = newTape.WithSide(backSide, newTape.Side(backSide).PushSymbol(trans.Symbol))

	return Config{Tape: newTape, State: trans.State, Facing: newFacing}, nil
}

// StepError reports the step index (0-based) at which StepN failed.
type StepError struct {
	Step int
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("config: step %d: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// StepN applies Step k times, normalizing the tape after each step so
// block counts stay collapsed. It stops and reports the failing step
// index the first time Step errors.
func (c Config) StepN(m *tm.Machine, k int) (Config, error) {
	cur := c
	for i := 0; i < k; i++ {
		next, err := cur.Step(m)
		if err != nil {
			return Config{}, &StepError{Step: i, Err: err}
		}
		cur = Config{Tape: next.Tape.Normalize(), State: next.State, Facing: next.Facing}
	}
	return cur, nil
}

// Subst substitutes σ into the tape; State and Facing carry no variables.
func (c Config) Subst(sigma count.Substitution) (Config, error) {
	t, err := c.Tape.Subst(sigma)
	if err != nil {
		return Config{}, err
	}
	return Config{Tape: t, State: c.State, Facing: c.Facing}, nil
}

// EquivalentTo reports whether c and other denote the same configuration:
// same state, same facing, and pairwise-equivalent tapes.
func (c Config) EquivalentTo(other Config) bool {
	return c.State == other.State && c.Facing == other.Facing && c.Tape.EquivalentTo(other.Tape)
}

// Replace is config-level prefix replacement, used to apply a cited rule
// (or the current rule's own induction hypothesis): if c's state and
// facing match init's, and c's tape has init's tape as a head-aligned
// prefix on both sides, the matched prefix is replaced by final's tape
// and the resulting config takes on final's state and facing.
func (c Config) Replace(init, final Config) (Config, bool) {
	if c.State != init.State || c.Facing != init.Facing {
		return Config{}, false
	}
	left, ok := c.Tape.Left.Replace(init.Tape.Left, final.Tape.Left)
	if !ok {
		return Config{}, false
	}
	right, ok := c.Tape.Right.Replace(init.Tape.Right, final.Tape.Right)
	if !ok {
		return Config{}, false
	}
	return Config{
		Tape:   tape.Tape{Left: left, Right: right},
		State:  final.State,
		Facing: final.Facing,
	}, true
}
