package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"ledger/internal/config"
	"ledger/internal/core"
	"ledger/internal/exporter"
	"ledger/internal/importer"
	"ledger/internal/log"
)

func runImport(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	account := fs.String("account", cfg.DefaultAccount, "account to use when the CSV has no account column")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: ledger import [-account NAME] <csv-file>")
	}

	store, err := OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	imp := importer.New(store, logger, *account)
	res, err := imp.ImportFile(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d transactions, %d duplicates skipped, %d pending skipped\n",
		res.Imported, res.Duplicates, res.Pending)
	return nil
}

func runSplit(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: ledger split <id> Category=amount[:memo]...")
	}
	id := args[0]

	splits, err := ParseSplitSpecs(args[1:])
	if err != nil {
		return err
	}

	store, err := OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ReplaceSplits(ctx, id, splits); err != nil {
		var sumErr *core.SplitSumError
		if errors.As(err, &sumErr) {
			return fmt.Errorf("splits must sum to the transaction amount: expected %s, got %s",
				core.FormatAmount(sumErr.Expected), core.FormatAmount(sumErr.Actual))
		}
		return err
	}

	if len(splits) == 0 {
		fmt.Printf("Cleared splits on %s\n", id)
	} else {
		fmt.Printf("Split %s into %d parts\n", id, len(splits))
	}
	return nil
}

func runList(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	var (
		from          = fs.String("from", "", "start date (YYYY-MM-DD)")
		to            = fs.String("to", "", "end date (YYYY-MM-DD)")
		account       = fs.String("account", "", "filter by account")
		category      = fs.String("category", "", "filter by split category")
		uncategorized = fs.Bool("uncategorized", false, "only transactions without splits")
		includeHidden = fs.Bool("include-hidden", false, "include hidden transactions")
		limit         = fs.Int("limit", 20, "number of transactions to show")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	filter := core.QueryFilter{
		Account:           *account,
		Category:          *category,
		UncategorizedOnly: *uncategorized,
		IncludeHidden:     *includeHidden,
	}
	var err error
	if *from != "" {
		if filter.From, err = core.ParseDate(*from); err != nil {
			return err
		}
	}
	if *to != "" {
		if filter.To, err = core.ParseDate(*to); err != nil {
			return err
		}
	}

	store, err := OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	txs, err := store.Query(ctx, filter)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		fmt.Println("No transactions found.")
		return nil
	}

	if len(txs) > *limit {
		txs = txs[:*limit]
	}
	for _, t := range txs {
		printTransaction(t)
	}
	return nil
}

func runShow(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ledger show <id>")
	}

	store, err := OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	t, err := store.Get(ctx, args[0])
	if err != nil {
		return err
	}
	printTransaction(t)
	return nil
}

func printTransaction(t core.Transaction) {
	fmt.Printf("%s  %s  %10s  %s (%s)\n",
		t.ID, t.Date.Format(core.DateLayout), core.FormatAmount(t.Amount), t.Description, t.Account)
	if t.Hidden {
		fmt.Println("    HIDDEN")
	}
	for _, sp := range t.ResolvedSplits() {
		line := fmt.Sprintf("    %10s  %s", core.FormatAmount(sp.Amount), sp.Category)
		if sp.Memo != "" {
			line += "  (" + sp.Memo + ")"
		}
		fmt.Println(line)
	}
}

func runExport(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: ledger export <year> <month>")
	}
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid year %q", args[0])
	}
	month, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid month %q", args[1])
	}

	store, err := OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.MonthSummary(ctx, year, month)
	if err != nil {
		return err
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	txs, err := store.Query(ctx, core.QueryFilter{From: first, To: first.AddDate(0, 1, -1)})
	if err != nil {
		return err
	}

	summaryPath := filepath.Join(cfg.ExportDir, fmt.Sprintf("summary-%04d-%02d.csv", year, month))
	txPath := filepath.Join(cfg.ExportDir, fmt.Sprintf("transactions-%04d-%02d.csv", year, month))

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return writeCSVFile(summaryPath, func(f *os.File) error {
			return exporter.WriteMonthSummary(f, summary)
		})
	})
	g.Go(func() error {
		return writeCSVFile(txPath, func(f *os.File) error {
			return exporter.WriteTransactions(f, txs)
		})
	})
	if err := g.Wait(); err != nil {
		return err
	}

	logger.InfoContext(ctx, "Export written",
		log.FieldYear, year,
		log.FieldMonth, month,
		log.FieldPath, cfg.ExportDir)
	fmt.Printf("Wrote %s and %s\n", summaryPath, txPath)
	return nil
}

func writeCSVFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func runDelete(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ledger delete <id>")
	}

	store, err := OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(ctx, args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}

func runSetHidden(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string, hidden bool) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: ledger hide|unhide <id>")
	}

	store, err := OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SetHidden(ctx, args[0], hidden); err != nil {
		return err
	}
	if hidden {
		fmt.Printf("Hid %s\n", args[0])
	} else {
		fmt.Printf("Unhid %s\n", args[0])
	}
	return nil
}

func runStats(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("usage: ledger stats")
	}

	store, err := OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Database statistics:")
	fmt.Printf("  Transactions:       %d\n", st.Transactions)
	fmt.Printf("  Hidden:             %d\n", st.Hidden)
	fmt.Printf("  With splits:        %d\n", st.WithSplits)
	fmt.Printf("  Split rows:         %d\n", st.SplitRows)
	return nil
}

func runInit(cfg *config.Config, logger *log.Logger) error {
	store, err := OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Printf("Database initialized at %s\n", cfg.DBPath)
	return nil
}
