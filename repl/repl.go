// Package repl implements an interactive stepper: load a machine and a
// config, then single-step it and watch the tape evolve.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sligocki/busy-beaver/internal/config"
	"github.com/sligocki/busy-beaver/internal/diag"
	"github.com/sligocki/busy-beaver/internal/parser"
	"github.com/sligocki/busy-beaver/internal/tm"
	"github.com/sligocki/busy-beaver/internal/validate"
)

const PROMPT = ">> "

// session holds the REPL's mutable state between commands.
type session struct {
	out     io.Writer
	machine *tm.Machine
	current *config.Config
}

// Start runs the REPL loop against in, writing prompts and output to out,
// until in is exhausted (EOF) or a "quit"/"exit" command is entered.
func Start(in io.Reader, out io.Writer) {
	s := &session{out: out}
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, "bbproof stepper. Type 'help' for commands.")
	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := s.dispatch(line); quit {
			return
		}
	}
}

// dispatch runs one command line and reports whether the REPL should exit.
func (s *session) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd, rest := fields[0], strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		s.help()
	case "tm":
		s.cmdTM(rest)
	case "config":
		s.cmdConfig(rest)
	case "step":
		s.cmdStep(rest)
	case "show":
		s.cmdShow()
	case "validate":
		s.cmdValidate(rest)
	default:
		fmt.Fprintf(s.out, "unknown command %q (try 'help')\n", cmd)
	}
	return false
}

func (s *session) help() {
	fmt.Fprint(s.out, `commands:
  tm <TNF>         load a transition table, e.g. tm 1RB1LB_1LA1RZ
  config <text>    set the current config, e.g. config 0^inf A> 0^inf
  step [n]         advance the current config by n steps (default 1)
  show             print the current config
  validate <path>  validate a .bbrules file and print pass/fail per rule
  quit             exit
`)
}

func (s *session) cmdTM(arg string) {
	if arg == "" {
		fmt.Fprintln(s.out, "usage: tm <TNF>")
		return
	}
	m, err := tm.Parse(arg)
	if err != nil {
		fmt.Fprintln(s.out, "error:", err)
		return
	}
	s.machine = m
	s.current = nil
	fmt.Fprintln(s.out, "machine loaded:", m.String())
}

func (s *session) cmdConfig(arg string) {
	if arg == "" {
		fmt.Fprintln(s.out, "usage: config <text>")
		return
	}
	cfg, err := parser.ConfigFromText(arg)
	if err != nil {
		fmt.Fprintln(s.out, "error:", err)
		return
	}
	s.current = &cfg
	fmt.Fprintln(s.out, s.current.String())
}

func (s *session) cmdStep(arg string) {
	if s.machine == nil {
		fmt.Fprintln(s.out, "no machine loaded, use 'tm' first")
		return
	}
	if s.current == nil {
		fmt.Fprintln(s.out, "no config set, use 'config' first")
		return
	}
	k := 1
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintln(s.out, "error: step count must be an integer:", err)
			return
		}
		k = n
	}

	next, err := s.current.StepN(s.machine, k)
	if err != nil {
		fmt.Fprintln(s.out, "error:", err)
		return
	}
	s.current = &next
	fmt.Fprintln(s.out, s.current.String())
}

func (s *session) cmdShow() {
	if s.current == nil {
		fmt.Fprintln(s.out, "no config set, use 'config' first")
		return
	}
	fmt.Fprintln(s.out, s.current.String())
}

func (s *session) cmdValidate(path string) {
	if path == "" {
		fmt.Fprintln(s.out, "usage: validate <path>")
		return
	}
	rs, err := parser.LoadRuleSetFile(path)
	if err != nil {
		fmt.Fprintln(s.out, "error:", err)
		return
	}

	reporter := &diag.Reporter{}
	v := &validate.Validator{}
	for i := range rs.Rules {
		if err := v.ValidateRule(rs, i); err != nil {
			fmt.Fprint(s.out, reporter.Render(diag.FromError(err)))
			continue
		}
		fmt.Fprint(s.out, reporter.RenderSuccess(i))
	}
}
