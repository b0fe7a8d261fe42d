package lsp

import "errors"

const (
	jsonRPCParseError     = -32700
	jsonRPCInvalidRequest = -32600
	jsonRPCMethodNotFound = -32601
	jsonRPCInvalidParams  = -32602
	jsonRPCInternalError  = -32603

	// lspErrorRequestCancelled indicates cancellation via $/cancelRequest.
	lspErrorRequestCancelled = -32800
)

var (
	// ErrShutdownRequested is returned internally after exit is handled.
	ErrShutdownRequested = errors.New("lsp server exit requested")
	// ErrDocumentNotOpen indicates a request referenced an untracked document.
	ErrDocumentNotOpen = errors.New("document is not open")
)
