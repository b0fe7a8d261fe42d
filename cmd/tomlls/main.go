// Package main provides the tomlls LSP server entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/AOx0/toml-lsp-1/internal/lsp"
)

func main() {
	srv := lsp.NewServer()
	if err := srv.RunStdio(context.Background(), os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "tomlls:", err)
		os.Exit(1)
	}
}
