package main

import (
	"os"

	"github.com/Prot10/MyMacCleaner-sub003/cmd"
)

// Build-time version information, set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
