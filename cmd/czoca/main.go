/*
Copyright © 2024 huimingz

czoca - OCA commit message convention for the command line
*/
package main

import (
	"os"

	"github.com/huimingz/cz-oca-go/internal/cli"
)

// Version information (injected at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	cli.SetVersionInfo(Version, GitCommit, BuildTime)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
