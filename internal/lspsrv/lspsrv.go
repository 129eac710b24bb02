// Package lspsrv implements the language server for .bbrules files:
// publishing live validation diagnostics and hovers listing the machine and
// its rules' configs, adapted from the teacher's internal/lsp.
package lspsrv

import (
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/segmentio/ksuid"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/sligocki/busy-beaver/grammar"
	"github.com/sligocki/busy-beaver/internal/diag"
	"github.com/sligocki/busy-beaver/internal/parser"
	"github.com/sligocki/busy-beaver/internal/rule"
	"github.com/sligocki/busy-beaver/internal/validate"
)

// Handler implements the LSP server for .bbrules documents. Each open
// document gets a session id (via ksuid), so log lines from concurrent
// validation requests for different documents can be told apart.
type Handler struct {
	mu       sync.RWMutex
	content  map[string]string
	ruleSets map[string]*rule.RuleSet
	sessions map[string]ksuid.KSUID
}

// NewHandler creates an empty Handler.
func NewHandler() *Handler {
	return &Handler{
		content:  make(map[string]string),
		ruleSets: make(map[string]*rule.RuleSet),
		sessions: make(map[string]ksuid.KSUID),
	}
}

func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("bbrules LSP Initialize called")
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			HoverProvider: &protocol.HoverOptions{},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("bbrules LSP Initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("bbrules LSP Shutdown")
	return nil
}

func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	h.newSession(uri)
	log.Printf("[%s] opened %s\n", h.sessionFor(uri), uri)

	diagnostics, err := h.revalidate(uri, params.TextDocument.Text)
	if err != nil {
		return fmt.Errorf("update ruleset: %w", err)
	}
	publishDiagnostics(ctx, uri, diagnostics)
	return nil
}

func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Printf("[%s] changed %s\n", h.sessionFor(uri), uri)

	if len(params.ContentChanges) == 0 {
		return nil
	}
	full, ok := params.ContentChanges[len(params.ContentChanges)-1].(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return fmt.Errorf("lspsrv: expected a full-document change event")
	}

	diagnostics, err := h.revalidate(uri, full.Text)
	if err != nil {
		return fmt.Errorf("update ruleset: %w", err)
	}
	publishDiagnostics(ctx, uri, diagnostics)
	return nil
}

func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Printf("[%s] closed %s\n", h.sessionFor(uri), uri)

	path, err := uriToPath(uri)
	if err != nil {
		return fmt.Errorf("convert uri %s: %w", uri, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.ruleSets, path)
	delete(h.sessions, uri)
	return nil
}

// TextDocumentHover shows the loaded machine and every rule's init and
// final config, as last parsed, wherever the cursor is; it does not target
// the rule under the cursor and does not normalize the configs.
func (h *Handler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("convert uri %s: %w", params.TextDocument.URI, err)
	}

	h.mu.RLock()
	rs, ok := h.ruleSets[path]
	h.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	// Rule declarations don't currently carry a source span (grammar has
	// no lexer.Position fields), so the hover always shows the whole
	// document's rule list rather than targeting one declaration.
	var b strings.Builder
	fmt.Fprintf(&b, "machine: %s\n\n", rs.TM.String())
	for i, r := range rs.Rules {
		fmt.Fprintf(&b, "rule %d: %s -> %s\n", i, r.Init.String(), r.Final.String())
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindPlainText,
			Value: b.String(),
		},
	}, nil
}

// revalidate reparses and revalidates source, caching the resulting
// RuleSet on success and returning the diagnostics to publish (a parse
// error, or one diagnostic per rule that fails ValidateRule, or none when
// the whole document validates clean).
func (h *Handler) revalidate(uri protocol.DocumentUri, source string) ([]protocol.Diagnostic, error) {
	path, err := uriToPath(uri)
	if err != nil {
		return nil, err
	}

	rsf, err := grammar.ParseRuleSetSource(path, source)
	if err != nil {
		return []protocol.Diagnostic{parseErrorDiagnostic(err)}, nil
	}

	rs, err := parser.BuildRuleSet(rsf)
	if err != nil {
		return []protocol.Diagnostic{parseErrorDiagnostic(err)}, nil
	}

	h.mu.Lock()
	h.content[path] = source
	h.ruleSets[path] = rs
	h.mu.Unlock()

	var diagnostics []protocol.Diagnostic
	v := &validate.Validator{}
	for i := range rs.Rules {
		if err := v.ValidateRule(rs, i); err != nil {
			diagnostics = append(diagnostics, diagnosticFrom(diag.FromError(err)))
		}
	}
	return diagnostics, nil
}

func (h *Handler) newSession(uri protocol.DocumentUri) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[uri] = ksuid.New()
}

func (h *Handler) sessionFor(uri protocol.DocumentUri) ksuid.KSUID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.sessions[uri]
}

// diagnosticFrom renders a diag.Diagnostic as an LSP Diagnostic. Rule
// validation errors carry a rule id and step number, not a byte span, so
// the range always spans line 0 with the location folded into the message.
func diagnosticFrom(d *diag.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	if d.Level == diag.LevelWarning {
		severity = protocol.DiagnosticSeverityWarning
	}
	msg := fmt.Sprintf("[%s] rule %d", d.Code, d.RuleID)
	if d.Branch != "" {
		msg += fmt.Sprintf(" (%s branch)", d.Branch)
	}
	msg += fmt.Sprintf(", step %d: %s", d.StepNum, d.Message)
	if d.Help != "" {
		msg += "\nhelp: " + d.Help
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 0, Character: 1},
		},
		Severity: &severity,
		Source:   ptrString("bbrules-validate"),
		Message:  msg,
	}
}

func parseErrorDiagnostic(err error) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 0, Character: 1},
		},
		Severity: &severity,
		Source:   ptrString("bbrules-parser"),
		Message:  err.Error(),
	}
}

func publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path), nil
}

func ptrBool(b bool) *bool                                         { return &b }
func ptrString(s string) *string                                   { return &s }
func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
