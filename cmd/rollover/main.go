package main

import (
	"os"

	"github.com/finance-automation/rollover/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
