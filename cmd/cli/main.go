package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/iho/ledgerd/internal/domain"
	"github.com/iho/ledgerd/internal/infrastructure/logger"
	"github.com/iho/ledgerd/internal/infrastructure/metrics"
	"github.com/iho/ledgerd/internal/journal"
	"github.com/iho/ledgerd/internal/ledgercli"
	"github.com/iho/ledgerd/internal/usecase"
)

var (
	journalPath string
	ledgerBin   string
	logLevel    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledgerd-cli",
		Short: "Ledgerd CLI tool",
		Long:  `A command line interface for a plain-text ledger journal.`,
	}

	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", "ledger.dat", "Path to the journal file")
	rootCmd.PersistentFlags().StringVar(&ledgerBin, "ledger-bin", ledgercli.DefaultBin, "Ledger binary to delegate to")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level")

	var (
		addDate     string
		addPayee    string
		addNote     string
		addPostings []string
		addAmend    bool
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Append an entry to the journal",
		Long: `Append an entry to the journal. Each --posting is either a bare
account name or "account=amount [currency]".`,
		Run: func(cmd *cobra.Command, args []string) {
			addEntry(addDate, addPayee, addNote, addPostings, addAmend)
		},
	}
	addCmd.Flags().StringVar(&addDate, "date", "", "Entry date (YYYY-MM-DD)")
	addCmd.Flags().StringVar(&addPayee, "payee", "", "Entry payee")
	addCmd.Flags().StringVar(&addNote, "note", "", "Entry note")
	addCmd.Flags().StringArrayVar(&addPostings, "posting", nil, "Posting line (repeatable)")
	addCmd.Flags().BoolVar(&addAmend, "amend", false, "Replace the previous append")
	addCmd.MarkFlagRequired("date")
	addCmd.MarkFlagRequired("payee")
	addCmd.MarkFlagRequired("posting")
	rootCmd.AddCommand(addCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "revert",
		Short: "Undo the most recent append",
		Run: func(cmd *cobra.Command, args []string) {
			revertEntry()
		},
	})

	var (
		listFilter string
		listCount  int
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		Run: func(cmd *cobra.Command, args []string) {
			listEntries(listFilter, listCount)
		},
	}
	listCmd.Flags().StringVar(&listFilter, "filter", "", "Keep entries containing the string")
	listCmd.Flags().IntVar(&listCount, "count", 25, "Entries to show, 0 for all")
	rootCmd.AddCommand(listCmd)

	for _, q := range []string{"accounts", "payees", "commodities"} {
		query := q
		rootCmd.AddCommand(&cobra.Command{
			Use:   query,
			Short: fmt.Sprintf("List %s known to the ledger engine", query),
			Run: func(cmd *cobra.Command, args []string) {
				listNames(query)
			},
		})
	}

	var balanceFilter string
	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Per-account, per-currency sums",
		Run: func(cmd *cobra.Command, args []string) {
			showBalance(balanceFilter)
		},
	}
	balanceCmd.Flags().StringVar(&balanceFilter, "filter", "", "Account name regexp")
	rootCmd.AddCommand(balanceCmd)

	var registerFilter string
	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Posting register with running totals",
		Run: func(cmd *cobra.Command, args []string) {
			showRegister(registerFilter)
		},
	}
	registerCmd.Flags().StringVar(&registerFilter, "filter", "", "Account name regexp")
	rootCmd.AddCommand(registerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func openJournal() (*usecase.JournalUseCase, *usecase.ReportUseCase) {
	log := logger.New(logger.Config{Level: logLevel, Format: "console", Output: os.Stderr})

	jrnl, err := journal.New(context.Background(), journal.Config{
		Path:   journalPath,
		Engine: ledgercli.NewRunner(ledgerBin, journalPath),
		Logger: log,
	})
	if err != nil {
		fmt.Printf("Error opening journal: %v\n", err)
		os.Exit(1)
	}

	m := metrics.New(prometheus.NewRegistry())
	return usecase.NewJournalUseCase(jrnl, m, log), usecase.NewReportUseCase(jrnl)
}

// parsePosting splits "account=amount [currency]" on the first equals
// sign; a value with no equals sign is a bare balancing posting.
func parsePosting(value string) usecase.PostingSpec {
	name, token, found := strings.Cut(value, "=")
	if !found {
		return usecase.PostingSpec{Name: strings.TrimSpace(value)}
	}

	amount, currency, _ := strings.Cut(strings.TrimSpace(token), " ")
	return usecase.PostingSpec{
		Name:     strings.TrimSpace(name),
		Amount:   amount,
		Currency: currency,
	}
}

func addEntry(date, payee, note string, postings []string, amend bool) {
	journalUC, _ := openJournal()

	specs := make([]usecase.PostingSpec, 0, len(postings))
	for _, p := range postings {
		specs = append(specs, parsePosting(p))
	}

	result, err := journalUC.Submit(usecase.SubmitInput{
		Date:     date,
		Payee:    payee,
		Note:     note,
		Postings: specs,
		Amend:    amend,
	})
	if err != nil {
		fmt.Printf("Error appending entry: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Appended at offset %d:%s\n", result.OldOffset, result.Text)
}

func revertEntry() {
	journalUC, _ := openJournal()

	if err := journalUC.Revert(); err != nil {
		fmt.Printf("Error reverting: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Reverted the last append.")
}

func listEntries(filter string, count int) {
	journalUC, _ := openJournal()

	result, err := journalUC.List(usecase.ListInput{
		Filter:  filter,
		Count:   count,
		Reverse: true,
	})
	if err != nil {
		fmt.Printf("Error listing entries: %v\n", err)
		os.Exit(1)
	}

	for _, entry := range result.Entries {
		fmt.Println(entry.Body)
		fmt.Println()
	}
	fmt.Printf("%d entries\n", len(result.Entries))
}

func listNames(query string) {
	journalUC, _ := openJournal()
	ctx := context.Background()

	var (
		items []string
		err   error
	)
	switch query {
	case "accounts":
		items, err = journalUC.Accounts(ctx)
	case "payees":
		items, err = journalUC.Payees(ctx)
	case "commodities":
		items, err = journalUC.Commodities(ctx)
	}
	if err != nil {
		var cliErr *domain.LedgerCliError
		if errors.As(err, &cliErr) {
			fmt.Printf("Ledger engine failed:\n%s\n", cliErr.Stderr)
		} else {
			fmt.Printf("Error querying %s: %v\n", query, err)
		}
		os.Exit(1)
	}

	for _, item := range items {
		fmt.Println(item)
	}
}

func showBalance(filter string) {
	_, reportUC := openJournal()

	lines, err := reportUC.Balance(context.Background(), filter)
	if err != nil {
		fmt.Printf("Error computing balance: %v\n", err)
		os.Exit(1)
	}

	for _, line := range lines {
		fmt.Printf("%-40s %12s %s\n", line.Account, line.Amount.StringFixed(2), line.Currency)
	}
}

func showRegister(filter string) {
	_, reportUC := openJournal()

	result, err := reportUC.Register(context.Background(), filter)
	if err != nil {
		fmt.Printf("Error computing register: %v\n", err)
		os.Exit(1)
	}

	for _, line := range result.Lines {
		fmt.Printf("%s %-24s %-32s %10s %s %12s\n",
			line.Date, line.Payee, line.Account,
			line.Amount.StringFixed(2), line.Currency, line.Total.StringFixed(2))
	}
	if result.CurrencyCount > 1 {
		fmt.Printf("Totals mix %d currencies.\n", result.CurrencyCount)
	}
}
