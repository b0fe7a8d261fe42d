package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/AOx0/toml-lsp-1/internal/syntax"
	"github.com/AOx0/toml-lsp-1/internal/text"
)

// Server is a toml LSP server with an in-memory snapshot store. It
// serves exactly the lifecycle and document-sync methods needed to
// keep a document-to-tree mapping current and publish diagnostics
// (§6 "Language-server collaborator"): initialize, shutdown, exit,
// $/cancelRequest, textDocument/{didOpen,didChange,didClose}.
type Server struct {
	store *SnapshotStore

	mu            sync.Mutex
	shutdown      bool
	exitRequested bool

	reqMu            sync.Mutex
	requestCancels   map[string]context.CancelFunc
	pendingCancelled map[string]struct{}
}

// NewServer creates a new LSP server instance.
func NewServer() *Server {
	return &Server{
		store:            NewSnapshotStore(),
		requestCancels:   make(map[string]context.CancelFunc),
		pendingCancelled: make(map[string]struct{}),
	}
}

// Store returns the backing snapshot store (primarily for tests).
func (s *Server) Store() *SnapshotStore {
	return s.store
}

// RunStdio serves LSP over stdin/stdout using Content-Length framing.
func (s *Server) RunStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	return s.Run(ctx, in, out)
}

// Run serves JSON-RPC/LSP messages using Content-Length framing.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	br := bufio.NewReader(in)
	bw := bufio.NewWriter(out)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		body, err := readFramedMessage(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			_ = s.writeErrorResponse(bw, nil, jsonRPCParseError, err.Error())
			_ = bw.Flush()
			continue
		}
		if len(body) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(body, &req); err != nil {
			_ = s.writeErrorResponse(bw, nil, jsonRPCParseError, err.Error())
			_ = bw.Flush()
			continue
		}
		if req.JSONRPC != "" && req.JSONRPC != JSONRPCVersion {
			_ = s.writeErrorResponse(bw, req.ID, jsonRPCInvalidRequest, "unsupported jsonrpc version")
			_ = bw.Flush()
			continue
		}
		if req.Method == "" {
			continue // client response or unknown envelope; ignored
		}

		if err := s.dispatch(ctx, bw, req); err != nil {
			if errors.Is(err, ErrShutdownRequested) {
				return nil
			}
			return err
		}
		if err := bw.Flush(); err != nil {
			return err
		}
	}
}

func (s *Server) dispatch(ctx context.Context, w *bufio.Writer, req Request) error {
	isRequest := len(req.ID) != 0
	if isRequest {
		var cancel context.CancelFunc
		ctx, cancel = s.beginRequestContext(ctx, req.ID)
		defer cancel()
		defer s.endRequestContext(req.ID)
	}

	writeResp := func(result any) error {
		if !isRequest {
			return nil
		}
		return s.writeResponse(w, Response{JSONRPC: JSONRPCVersion, ID: req.ID, Result: result})
	}
	writeErr := func(code int, msg string) error {
		if !isRequest {
			return nil
		}
		return s.writeErrorResponse(w, req.ID, code, msg)
	}

	switch req.Method {
	case "initialize":
		var p InitializeParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &p); err != nil {
				return writeErr(jsonRPCInvalidParams, err.Error())
			}
		}
		return writeResp(s.Initialize(p))
	case "shutdown":
		s.Shutdown()
		return writeResp(struct{}{})
	case "exit":
		s.Exit()
		return ErrShutdownRequested
	case "$/cancelRequest":
		var p CancelParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return writeErr(jsonRPCInvalidParams, err.Error())
		}
		s.cancelRequest(p)
		return nil
	case "textDocument/didOpen":
		var p DidOpenParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return writeErr(jsonRPCInvalidParams, err.Error())
		}
		s.DidOpen(p)
		return s.publishDiagnosticsForURI(w, p.TextDocument.URI)
	case "textDocument/didChange":
		var p DidChangeParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return writeErr(jsonRPCInvalidParams, err.Error())
		}
		if err := s.DidChange(p); err != nil {
			code := jsonRPCInternalError
			if errors.Is(err, ErrDocumentNotOpen) {
				code = jsonRPCInvalidParams
			}
			return writeErr(code, err.Error())
		}
		return s.publishDiagnosticsForURI(w, p.TextDocument.URI)
	case "textDocument/didClose":
		var p DidCloseParams
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return writeErr(jsonRPCInvalidParams, err.Error())
		}
		s.DidClose(p)
		return s.publishClearedDiagnostics(w, p.TextDocument.URI)
	default:
		return writeErr(jsonRPCMethodNotFound, "method not found")
	}
}

// Initialize handles the LSP initialize request.
func (s *Server) Initialize(_ InitializeParams) InitializeResult {
	return InitializeResult{Capabilities: DefaultServerCapabilities()}
}

// Shutdown handles the LSP shutdown request. It is idempotent.
func (s *Server) Shutdown() {
	s.mu.Lock()
	s.shutdown = true
	s.mu.Unlock()
}

// Exit handles the LSP exit notification.
func (s *Server) Exit() {
	s.mu.Lock()
	s.exitRequested = true
	s.mu.Unlock()
}

// DidOpen parses and stores the opened document snapshot.
func (s *Server) DidOpen(p DidOpenParams) {
	s.store.Open(p.TextDocument.URI, p.TextDocument.Version, p.TextDocument.Text)
}

// DidChange fully re-parses the latest document text and replaces the
// snapshot (§6: no incremental re-parsing).
func (s *Server) DidChange(p DidChangeParams) error {
	_, err := s.store.Change(p.TextDocument.URI, p.TextDocument.Version, p.ContentChanges)
	return err
}

// DidClose removes the document snapshot if present.
func (s *Server) DidClose(p DidCloseParams) {
	s.store.Close(p.TextDocument.URI)
}

func (s *Server) writeResponse(w *bufio.Writer, resp Response) error {
	body, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return writeFramedMessage(w, body)
}

func (s *Server) writeErrorResponse(w *bufio.Writer, id json.RawMessage, code int, msg string) error {
	return s.writeResponse(w, Response{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error:   &ResponseError{Code: code, Message: msg},
	})
}

func (s *Server) publishDiagnosticsForURI(w *bufio.Writer, uri string) error {
	snap, ok := s.store.Snapshot(uri)
	if !ok {
		return nil
	}
	diags := lspDiagnosticsFromSyntax(snap.LineIndex, snap.Diagnostics)
	version := snap.Version
	return s.writeNotification(w, "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         uri,
		Version:     &version,
		Diagnostics: diags,
	})
}

func (s *Server) publishClearedDiagnostics(w *bufio.Writer, uri string) error {
	return s.writeNotification(w, "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []Diagnostic{},
	})
}

func (s *Server) writeNotification(w *bufio.Writer, method string, params any) error {
	body, err := json.Marshal(struct {
		JSONRPC string `json:"jsonrpc"`
		Method  string `json:"method"`
		Params  any    `json:"params,omitempty"`
	}{
		JSONRPC: JSONRPCVersion,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}
	return writeFramedMessage(w, body)
}

// cancelRequest records or triggers cancellation for a request id.
//
// The server processes messages sequentially, so $/cancelRequest can
// only cancel a request before dispatch begins (or a future handler
// that checks ctx mid-flight); this keeps cancellation non-fatal.
func (s *Server) cancelRequest(p CancelParams) {
	key := requestIDKey(p.ID)
	if key == "" {
		return
	}
	s.reqMu.Lock()
	cancel := s.requestCancels[key]
	if cancel != nil {
		delete(s.requestCancels, key)
	}
	s.pendingCancelled[key] = struct{}{}
	s.reqMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (s *Server) beginRequestContext(parent context.Context, id json.RawMessage) (context.Context, context.CancelFunc) {
	key := requestIDKey(id)
	if key == "" {
		return context.WithCancel(parent)
	}
	ctx, cancel := context.WithCancel(parent)
	s.reqMu.Lock()
	s.requestCancels[key] = cancel
	if _, ok := s.pendingCancelled[key]; ok {
		delete(s.pendingCancelled, key)
		cancel()
	}
	s.reqMu.Unlock()
	return ctx, cancel
}

func (s *Server) endRequestContext(id json.RawMessage) {
	key := requestIDKey(id)
	if key == "" {
		return
	}
	s.reqMu.Lock()
	delete(s.requestCancels, key)
	delete(s.pendingCancelled, key)
	s.reqMu.Unlock()
}

func requestIDKey(id json.RawMessage) string {
	if len(id) == 0 {
		return ""
	}
	return string(id)
}

func lspDiagnosticsFromSyntax(li *text.LineIndex, diagnostics []syntax.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		out = append(out, Diagnostic{
			Range:    lspRangeFromSpan(li, d.Span),
			Severity: SeverityError,
			Source:   "toml",
			Message:  d.Message(),
		})
	}
	return out
}

// lspRangeFromSpan converts a character span to a zero-based UTF-16 LSP
// range, clamping to the document bounds (a stale span past the end of
// a just-shrunk document should not be a hard error here).
func lspRangeFromSpan(li *text.LineIndex, sp text.Span) Range {
	sp = clampSpanToSource(sp, li.Len())
	start, err := li.OffsetToUTF16Position(sp.Start)
	if err != nil {
		start = text.UTF16Position{}
	}
	end, err := li.OffsetToUTF16Position(sp.End)
	if err != nil {
		end = start
	}
	return Range{
		Start: Position{Line: start.Line, Character: start.Character},
		End:   Position{Line: end.Line, Character: end.Character},
	}
}

func clampSpanToSource(sp text.Span, srcLen text.Offset) text.Span {
	if sp.Start < 0 {
		sp.Start = 0
	}
	if sp.End < sp.Start {
		sp.End = sp.Start
	}
	if sp.Start > srcLen {
		sp.Start = srcLen
	}
	if sp.End > srcLen {
		sp.End = srcLen
	}
	return sp
}

func readFramedMessage(r *bufio.Reader) ([]byte, error) {
	contentLen := -1
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		if line == "\r\n" || line == "\n" {
			break
		}
		line = strings.TrimRight(line, "\r\n")
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("invalid header line %q", line)
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			var n int
			if _, err := fmt.Sscanf(strings.TrimSpace(value), "%d", &n); err != nil || n < 0 {
				return nil, fmt.Errorf("invalid Content-Length %q", value)
			}
			contentLen = n
		}
	}
	if contentLen < 0 {
		return nil, errors.New("missing Content-Length")
	}
	body := make([]byte, contentLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return body, nil
}

func writeFramedMessage(w io.Writer, body []byte) error {
	if _, err := fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(body)); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}
