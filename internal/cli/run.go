package cli

import (
	"context"
	"fmt"
	"os"

	"ledger/internal/config"
	"ledger/internal/log"
)

const usageText = `Usage: ledger <command> [arguments]

Commands:
  import <csv-file>             import transactions from a CSV export
  split <id> Cat=amt[:memo]...  replace a transaction's split set
  list                          list transactions
  show <id>                     show one transaction with its splits
  export <year> <month>         write monthly summary and transaction CSVs
  delete <id>                   delete a transaction and its splits
  hide <id> | unhide <id>       toggle a transaction's hidden flag
  stats                         show database statistics
  init                          create the database and run migrations
`

func usage() {
	fmt.Fprint(os.Stderr, usageText)
}

// Run dispatches the command line and returns the process exit code.
func Run(args []string) int {
	LoadEnvFile()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	logger := SetupLogger(level).WithComponent(log.ComponentCLI)

	if len(args) == 0 {
		usage()
		return 2
	}

	ctx := context.Background()
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "import":
		err = runImport(ctx, cfg, logger, rest)
	case "split":
		err = runSplit(ctx, cfg, logger, rest)
	case "list":
		err = runList(ctx, cfg, logger, rest)
	case "show":
		err = runShow(ctx, cfg, logger, rest)
	case "export":
		err = runExport(ctx, cfg, logger, rest)
	case "delete":
		err = runDelete(ctx, cfg, logger, rest)
	case "hide":
		err = runSetHidden(ctx, cfg, logger, rest, true)
	case "unhide":
		err = runSetHidden(ctx, cfg, logger, rest, false)
	case "stats":
		err = runStats(ctx, cfg, logger, rest)
	case "init":
		err = runInit(cfg, logger)
	case "help", "-h", "--help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command %q\n\n", cmd)
		usage()
		return 2
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
