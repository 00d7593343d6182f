// tether - Find colours and text that are not bound to a design system
//
// tether audits design documents for fills, strokes and typography set by
// hand and binds them to the closest matching styles and variables.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/tether/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
