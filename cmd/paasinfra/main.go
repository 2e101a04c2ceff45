// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// paasinfra declares a fixed Azure PaaS resource topology and applies
// it through Azure Resource Manager.
package main

import (
	"fmt"
	"os"

	"github.com/clco-group6/paasinfra/internal/cli"
)

func main() {
	if err := cli.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR %v\n", err)
		os.Exit(1)
	}
}
