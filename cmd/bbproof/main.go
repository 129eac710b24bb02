// SPDX-License-Identifier: Apache-2.0
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/sligocki/busy-beaver/internal/diag"
	"github.com/sligocki/busy-beaver/internal/parser"
	"github.com/sligocki/busy-beaver/internal/validate"
)

// ruleResult is one rule's pass/fail outcome, used for -json output.
type ruleResult struct {
	RuleID int    `json:"rule_id"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bbproof", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "optional YAML config file (max_steps, no_color, json)")
	maxSteps := fs.Int("max-steps", 0, "cumulative TMSteps budget per rule (0 = default)")
	noColor := fs.Bool("no-color", false, "disable colored diagnostics")
	jsonOut := fs.Bool("json", false, "emit machine-readable JSON instead of colored text")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: bbproof [flags] <file.bbrules>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	cfg := cliConfig{}
	if *configPath != "" {
		loaded, err := loadCLIConfig(*configPath)
		if err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return 1
		}
		cfg = *loaded
	}
	if *maxSteps != 0 {
		cfg.MaxSteps = *maxSteps
	}
	if *noColor {
		cfg.NoColor = true
	}
	if *jsonOut {
		cfg.JSON = true
	}

	rs, err := parser.LoadRuleSetFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	v := &validate.Validator{MaxTotalSteps: cfg.MaxSteps}
	results := make([]ruleResult, len(rs.Rules))
	errs := make([]error, len(rs.Rules))
	allOK := true
	for i := range rs.Rules {
		err := v.ValidateRule(rs, i)
		errs[i] = err
		if err != nil {
			allOK = false
			results[i] = ruleResult{RuleID: i, OK: false, Error: err.Error()}
		} else {
			results[i] = ruleResult{RuleID: i, OK: true}
		}
	}

	if cfg.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return 1
		}
	} else {
		noColor := cfg.NoColor
		if f, ok := stdout.(*os.File); ok && !noColor {
			noColor = !isatty.IsTerminal(f.Fd())
		}
		reporter := &diag.Reporter{NoColor: noColor}
		for i := range rs.Rules {
			if results[i].OK {
				fmt.Fprint(stdout, reporter.RenderSuccess(i))
				continue
			}
			fmt.Fprint(stdout, reporter.Render(diag.FromError(errs[i])))
		}
	}

	if !allOK {
		return 1
	}
	return 0
}
