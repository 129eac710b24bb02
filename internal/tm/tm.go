// Package tm implements the Turing-machine base types and the standard
// transition-table notation (TNF): symbol, direction, run/halt state, and
// the transition table itself, indexed by (state, symbol).
package tm

import (
	"fmt"
	"strings"
)

// Symbol is a tape symbol. The standard notation uses single digits 0-9.
type Symbol byte

func (s Symbol) String() string {
	return fmt.Sprintf("%d", byte(s))
}

// Dir is the direction the head moves after a transition.
type Dir int

const (
	Left Dir = iota
	Right
)

// Opp returns the opposite direction.
func (d Dir) Opp() Dir {
	if d == Left {
		return Right
	}
	return Left
}

func (d Dir) String() string {
	if d == Left {
		return "L"
	}
	return "R"
}

// RunState indexes a non-halting machine state (0 = A, 1 = B, ...).
type RunState int

// State is either a running state or Halt. The zero value is Run(0) ("A"),
// matching the convention that the first declared row is the start state.
type State struct {
	Halt bool
	Run  RunState
}

// HaltState is the distinguished halting state, printed as "Z".
var HaltState = State{Halt: true}

// RunStateOf builds a running state.
func RunStateOf(r RunState) State {
	return State{Run: r}
}

func (s State) String() string {
	if s.Halt {
		return "Z"
	}
	return string(rune('A' + int(s.Run)))
}

// Transition is the result of reading one symbol in one state: the symbol
// to write, the direction to move, and the state to transition to.
type Transition struct {
	Symbol Symbol
	Dir    Dir
	State  State
}

// Machine is a transition table indexed by (state, symbol). A missing
// entry is Undefined.
type Machine struct {
	// rows[state][symbol] is the transition, or nil if undefined.
	rows [][]*Transition
}

// NumStates returns the number of run states the machine has transitions
// for.
func (m *Machine) NumStates() int { return len(m.rows) }

// NumSymbols returns the number of symbols the machine distinguishes.
func (m *Machine) NumSymbols() int {
	if len(m.rows) == 0 {
		return 0
	}
	return len(m.rows[0])
}

// Trans looks up the transition for (state, symbol). The second return
// value is false when the transition is undefined or when state is the
// halt state (which has no outgoing transitions).
func (m *Machine) Trans(state State, sym Symbol) (Transition, bool) {
	if state.Halt {
		return Transition{}, false
	}
	r := int(state.Run)
	if r < 0 || r >= len(m.rows) || int(sym) >= len(m.rows[r]) {
		return Transition{}, false
	}
	t := m.rows[r][sym]
	if t == nil {
		return Transition{}, false
	}
	return *t, true
}

// New builds a Machine from an explicit transition table, primarily for
// use by the grammar package and tests; rows[i][j] is the transition from
// run state i on symbol j, or nil if undefined.
func New(rows [][]*Transition) *Machine {
	return &Machine{rows: rows}
}

// Parse reads the standard TNF notation: rows (one per state) separated by
// "_", each row a concatenation of 3-character transitions "symDirState"
// or "---" for undefined, one per symbol column.
func Parse(s string) (*Machine, error) {
	rows := strings.Split(strings.TrimSpace(s), "_")
	table := make([][]*Transition, len(rows))
	for i, row := range rows {
		if len(row)%3 != 0 {
			return nil, fmt.Errorf("tm: row %d has length %d, not a multiple of 3: %q", i, len(row), row)
		}
		numCols := len(row) / 3
		cols := make([]*Transition, numCols)
		for j := 0; j < numCols; j++ {
			chunk := row[j*3 : j*3+3]
			t, err := parseTransition(chunk)
			if err != nil {
				return nil, fmt.Errorf("tm: row %d col %d: %w", i, j, err)
			}
			cols[j] = t
		}
		table[i] = cols
	}
	return &Machine{rows: table}, nil
}

func parseTransition(chunk string) (*Transition, error) {
	if chunk == "---" {
		return nil, nil
	}
	if len(chunk) != 3 {
		return nil, fmt.Errorf("transition must be 3 characters: %q", chunk)
	}
	symCh, dirCh, stateCh := chunk[0], chunk[1], chunk[2]
	if symCh < '0' || symCh > '9' {
		return nil, fmt.Errorf("invalid symbol %q in transition %q", symCh, chunk)
	}
	var dir Dir
	switch dirCh {
	case 'L':
		dir = Left
	case 'R':
		dir = Right
	default:
		return nil, fmt.Errorf("invalid direction %q in transition %q", dirCh, chunk)
	}
	var state State
	switch {
	case stateCh == 'Z' || stateCh == 'H':
		state = HaltState
	case stateCh >= 'A' && stateCh <= 'Y':
		state = RunStateOf(RunState(stateCh - 'A'))
	default:
		return nil, fmt.Errorf("invalid state %q in transition %q", stateCh, chunk)
	}
	return &Transition{Symbol: Symbol(symCh - '0'), Dir: dir, State: state}, nil
}

func (t Transition) String() string {
	return fmt.Sprintf("%s%s%s", t.Symbol, t.Dir, t.State)
}

// String renders the machine back into standard TNF notation, always
// writing the halt state as "Z". Parse and String round-trip for any
// machine Parse accepts that writes halt as "Z" rather than "H".
func (m *Machine) String() string {
	rows := make([]string, len(m.rows))
	for i, row := range m.rows {
		var b strings.Builder
		for _, t := range row {
			if t == nil {
				b.WriteString("---")
			} else {
				b.WriteString(t.String())
			}
		}
		rows[i] = b.String()
	}
	return strings.Join(rows, "_")
}
