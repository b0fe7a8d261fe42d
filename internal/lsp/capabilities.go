package lsp

// DefaultServerCapabilities returns the server's advertised capability
// set: full-document sync only, no incremental re-parsing (§6).
func DefaultServerCapabilities() ServerCapabilities {
	return ServerCapabilities{
		TextDocumentSync: TextDocumentSyncOptions{
			OpenClose: true,
			Change:    TextDocumentSyncKindFull,
		},
	}
}
