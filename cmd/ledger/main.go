package main

import (
	"os"

	"ledger/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
