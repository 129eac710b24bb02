// Package diag renders internal/validate's structured errors as Rust-like
// colored diagnostics, adapted from the teacher's internal/errors.Reporter.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/sligocki/busy-beaver/internal/validate"
)

// Level mirrors the teacher's ErrorLevel: severity of a rendered diagnostic.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelHelp    Level = "help"
)

// Position is a line:column location within a .bbrules source file. Zero
// value means "unknown" (e.g. a diagnostic built directly from in-memory
// rule.Rule values, with no source span attached).
type Position struct {
	Line, Column int
}

func (p Position) known() bool { return p.Line > 0 }

// Diagnostic is a validate error flattened into renderable fields.
type Diagnostic struct {
	Level    Level
	Code     string
	Message  string
	RuleID   int
	Branch   string
	StepNum  int
	Position Position
	Help     string
}

// codeFor maps a validate error kind to a stable diagnostic code, in the
// teacher's E-number style (internal/errors/codes.go).
func codeFor(err error) string {
	switch {
	case errAs[*validate.TMStepError](err):
		return "E1001"
	case errAs[*validate.VarSubstError](err):
		return "E1002"
	case errAs[*validate.RuleNotYetDefined](err):
		return "E1003"
	case errAs[*validate.InductionVarNotDecreasing](err):
		return "E1004"
	case errAs[*validate.InductiveStepInNonInductiveProof](err):
		return "E1005"
	case errAs[*validate.RuleConfigMismatch](err):
		return "E1006"
	case errAs[*validate.FinalConfigMismatch](err):
		return "E1007"
	case errAs[*validate.Admitted](err):
		return "W1008"
	case errAs[*validate.BudgetExceeded](err):
		return "E1009"
	default:
		return "E1000"
	}
}

func errAs[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

func helpFor(err error) string {
	switch {
	case errAs[*validate.RuleNotYetDefined](err):
		return "only rules 0..i are in scope here; cite an earlier rule or remove this use"
	case errAs[*validate.InductionVarNotDecreasing](err):
		return "bind the induction variable to itself (n := n) to invoke the hypothesis at a strictly smaller value"
	case errAs[*validate.InductiveStepInNonInductiveProof](err):
		return "induct(...) is only valid inside the inductive branch of an induction { ... } proof"
	case errAs[*validate.Admitted](err):
		return "replace admit with a complete proof before relying on this rule"
	default:
		return ""
	}
}

// FromError flattens a validate error chain (ValidationError ->
// RuleValidationError -> ProofValidationError -> leaf kind) into a
// Diagnostic. Position is left unknown; callers with source-span
// information (internal/parser, internal/lspsrv) should set it after.
func FromError(err error) *Diagnostic {
	if err == nil {
		return nil
	}
	d := &Diagnostic{Level: LevelError, Code: codeFor(err), Message: err.Error(), Help: helpFor(err)}

	var ve *validate.ValidationError
	if errors.As(err, &ve) {
		d.RuleID = ve.RuleID
		if ve.Err != nil {
			d.Branch = ve.Err.Branch.String()
			if ve.Err.Err != nil {
				d.StepNum = ve.Err.Err.StepNum
			}
		}
	}
	if errAs[*validate.Admitted](err) {
		d.Level = LevelWarning
	}
	return d
}

// Reporter renders Diagnostics. NoColor forces plain output regardless of
// fatih/color's own isatty auto-detection (set by cmd/bbproof's -no-color
// flag, or when stdout isn't a terminal per mattn/go-isatty).
type Reporter struct {
	NoColor bool
}

func (r *Reporter) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if r.NoColor {
		c.DisableColor()
	}
	return c
}

// Render formats d in the teacher's "error[E0001]: message" / "--> ..." /
// help style. It prints no source line or caret: the location line names
// the rule, branch and step, plus "(line:col)" when Position is known.
func (r *Reporter) Render(d *Diagnostic) string {
	var b strings.Builder

	levelAttr := color.FgRed
	if d.Level == LevelWarning {
		levelAttr = color.FgYellow
	}
	levelColor := r.color(levelAttr, color.Bold)
	dimColor := r.color(color.Faint)

	fmt.Fprintf(&b, "%s[%s]: %s\n", levelColor.Sprint(string(d.Level)), d.Code, d.Message)

	loc := fmt.Sprintf("rule %d", d.RuleID)
	if d.Branch != "" {
		loc += fmt.Sprintf(", %s branch", d.Branch)
	}
	loc += fmt.Sprintf(", step %d", d.StepNum)
	if d.Position.known() {
		loc += fmt.Sprintf(" (%d:%d)", d.Position.Line, d.Position.Column)
	}
	fmt.Fprintf(&b, "%s %s\n", dimColor.Sprint("-->"), loc)

	if d.Help != "" {
		helpColor := r.color(color.FgGreen)
		fmt.Fprintf(&b, "%s %s %s\n", dimColor.Sprint("|"), helpColor.Sprint("help:"), d.Help)
	}
	return b.String()
}

// RenderSuccess formats a pass banner for a rule, used by cmd/bbproof.
func (r *Reporter) RenderSuccess(ruleID int) string {
	ok := r.color(color.FgGreen, color.Bold)
	return fmt.Sprintf("%s rule %d\n", ok.Sprint("ok"), ruleID)
}
