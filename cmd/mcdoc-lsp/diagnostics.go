package main

import (
	"context"
	"sync"

	"go.lsp.dev/protocol"

	"github.com/mcdocval/mcdoc/schema"
	"github.com/mcdocval/mcdoc/token"
)

// documentStore mirrors the teacher's tony-lsp documentStore: a
// mutex-guarded map from document URI to the last-parsed state, so
// concurrent DidOpen/DidChange notifications from the editor never race.
type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32
	unit    *schema.Unit
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri, content string, version int32) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = &document{
		uri:     uri,
		content: content,
		version: version,
		unit:    schema.Parse([]byte(content), modulePathFromURI(uri)),
	}
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

// modulePathFromURI derives a module path good enough for single-document
// diagnostics; cross-module resolution needs the whole workspace, which a
// single-file diagnostics pass can't see, so resolve errors here are
// necessarily confined to what one module's own declarations can surface
// (duplicate declarations, spread cycles within the file, syntax errors).
func modulePathFromURI(uri string) string {
	return uri
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}
	diagnostics := validateDocument(doc)
	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diagnostics,
		})
	}
}

func validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.unit == nil {
		return diagnostics
	}
	for _, e := range doc.unit.Errors {
		diagnostics = append(diagnostics, toDiagnostic(e))
	}

	idx := schema.Resolve([]*schema.Unit{doc.unit})
	for _, e := range idx.Errors {
		diagnostics = append(diagnostics, toDiagnostic(e))
	}
	return diagnostics
}

// toDiagnostic turns a parse or resolve error into a single-character LSP
// diagnostic; positions carried by schema.SyntaxError/SchemaError are
// 1-based line/column, LSP ranges are 0-based.
func toDiagnostic(err error) protocol.Diagnostic {
	var pos *token.Pos
	switch e := err.(type) {
	case *schema.SyntaxError:
		pos = e.Pos
	case *schema.SchemaError:
		pos = e.Pos
	}

	line, col := 0, 0
	if pos != nil {
		l, c := pos.LineCol()
		if l > 0 {
			line, col = l-1, c-1
		}
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(line), Character: uint32(col)},
			End:   protocol.Position{Line: uint32(line), Character: uint32(col + 1)},
		},
		Severity: protocol.DiagnosticSeverityError,
		Source:   "mcdoc",
		Message:  err.Error(),
	}
}
