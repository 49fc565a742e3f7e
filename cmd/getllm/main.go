// cmd/getllm/main.go
package main

import (
	cmd "github.com/getllm/getllm/internal/cli"
)

// Build-time variables injected via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// function aliases allow tests to verify wiring without running commands.
var (
	setVersionInfo = cmd.SetVersionInfo
	executeCmd     = cmd.Execute
)

// main starts the getllm CLI application by delegating to the
// cobra root command defined in the getllm package. It does not
// take any arguments and does not return a value.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
