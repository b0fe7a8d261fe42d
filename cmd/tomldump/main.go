// Package main provides the tomldump CLI entry point: reads a file,
// parses it, and prints the token stream and/or concrete syntax tree
// for developer inspection (§6 "CLI collaborator").
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagTokens bool
	flagTree   bool
)

var cmdRoot = &cobra.Command{
	Use:          "tomldump [flags] path/to/file.toml",
	Short:        "parse a TOML-like file and print its tokens and tree",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dump(cmd.OutOrStdout(), args[0], flagTokens, flagTree)
	},
}

func main() {
	cmdRoot.Flags().BoolVar(&flagTokens, "tokens", false, "dump the lexer token stream")
	cmdRoot.Flags().BoolVar(&flagTree, "tree", true, "dump the concrete syntax tree")

	if err := cmdRoot.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tomldump:", err)
		os.Exit(1)
	}
}
