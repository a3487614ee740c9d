// Package main provides the entry point for the accountmap CLI tool.
package main

import "github.com/syncdesk/accountmap/cmd/accountmap/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cmd.Execute(version, commit)
}
