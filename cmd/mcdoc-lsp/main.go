// Command mcdoc-lsp is a minimal Language Server exposing MCDOC parse and
// resolve diagnostics over stdio, the way the teacher's cmd/tony-lsp
// exposes tony parse diagnostics for editors.
package main

import (
	"context"
	"io"
	"os"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
)

// Server implements the subset of protocol.Server mcdoc-lsp actually
// supports. Embedding the (nil) interface, rather than a generated
// no-op base, lets unimplemented methods panic loudly instead of
// silently mis-behaving if a client calls one we haven't wired.
type Server struct {
	protocol.Server

	conn jsonrpc2.Conn
	docs *documentStore
}

func (s *Server) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncKindFull,
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    "mcdoc-lsp",
			Version: "0.1.0",
		},
	}, nil
}

func (s *Server) Initialized(ctx context.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error { return nil }

func (s *Server) Exit(ctx context.Context) error {
	os.Exit(0)
	return nil
}

type stdioRWC struct {
	io.Reader
	io.Writer
}

func (stdioRWC) Close() error { return nil }

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	ctx := context.Background()
	stream := jsonrpc2.NewStream(stdioRWC{Reader: os.Stdin, Writer: os.Stdout})

	server := &Server{docs: &documentStore{docs: map[string]*document{}}}
	ctx, conn, _ := protocol.NewServer(ctx, server, stream, logger)
	server.conn = conn

	<-conn.Done()
	if err := conn.Err(); err != nil {
		logger.Error("connection closed", zap.Error(err))
	}
}
