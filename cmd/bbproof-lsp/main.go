// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/sligocki/busy-beaver/internal/lspsrv"
)

const lsName = "bbproof"

var version = "0.0.1"

func main() {
	commonlog.Configure(1, nil)

	h := lspsrv.NewHandler()
	handler := protocol.Handler{
		Initialize:            h.Initialize,
		Initialized:           h.Initialized,
		Shutdown:              h.Shutdown,
		TextDocumentDidOpen:   h.TextDocumentDidOpen,
		TextDocumentDidChange: h.TextDocumentDidChange,
		TextDocumentDidClose:  h.TextDocumentDidClose,
		TextDocumentHover:     h.TextDocumentHover,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting bbproof LSP server...")
	if err := s.RunStdio(); err != nil {
		log.Println("Error starting bbproof LSP server:", err)
		os.Exit(1)
	}
}
