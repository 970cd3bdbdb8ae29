package journal

import (
	"context"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/ledgerd/internal/domain"
	"github.com/iho/ledgerd/internal/infrastructure/metrics"
	"github.com/iho/ledgerd/internal/ledgercli"
)

// Engine abstracts the external ledger process. Implemented by
// ledgercli.Runner; tests supply fakes.
type Engine interface {
	Run(ctx context.Context, subcommand string, args ...string) (string, error)
}

// LastAppend records the byte window occupied by the most recent append.
// It is only a cached claim about file state: both revert paths re-verify
// it against actual bytes before acting.
type LastAppend struct {
	Entry     *domain.Entry
	OldOffset int64
	NewOffset int64
}

// Config holds Journal construction parameters.
type Config struct {
	Path   string
	Engine Engine
	// Rules defaults to domain.DefaultCurrencyRules when nil.
	Rules domain.CurrencyRules
	// LastAppend carries a prior session's undo window, if the caller
	// persisted one.
	LastAppend *LastAppend
	Logger     zerolog.Logger
	// Metrics is optional; when set, iteration counts skipped blocks on
	// it.
	Metrics *metrics.Metrics
}

// Journal reads and writes one plain-text ledger file. The file on disk
// is the sole source of truth; Journal holds no buffers across calls.
type Journal struct {
	path    string
	engine  Engine
	rules   domain.CurrencyRules
	logger  zerolog.Logger
	metrics *metrics.Metrics

	lastAppend *LastAppend

	accounts   map[string]struct{}
	payees     map[string]struct{}
	currencies map[string]struct{}
}

// New constructs a Journal and populates the account/payee/currency
// snapshots from one engine csv dump. The snapshots are static: later
// appends do not refresh them.
func New(ctx context.Context, cfg Config) (*Journal, error) {
	rules := cfg.Rules
	if rules == nil {
		rules = domain.DefaultCurrencyRules
	}

	j := &Journal{
		path:       cfg.Path,
		engine:     cfg.Engine,
		rules:      rules,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		lastAppend: cfg.LastAppend,
		accounts:   make(map[string]struct{}),
		payees:     make(map[string]struct{}),
		currencies: make(map[string]struct{}),
	}

	dump, err := j.Csv(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := ledgercli.ParseDump(dump)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		j.accounts[row.Account] = struct{}{}
		j.payees[row.Payee] = struct{}{}
		j.currencies[row.Currency] = struct{}{}
	}

	return j, nil
}

// Path returns the journal file location.
func (j *Journal) Path() string {
	return j.path
}

// Rules returns the currency rules entries are rendered with.
func (j *Journal) Rules() domain.CurrencyRules {
	return j.rules
}

// KnownAccounts returns the distinct accounts seen at construction time,
// sorted.
func (j *Journal) KnownAccounts() []string {
	return sortedKeys(j.accounts)
}

// KnownPayees returns the distinct payees seen at construction time,
// sorted.
func (j *Journal) KnownPayees() []string {
	return sortedKeys(j.payees)
}

// KnownCurrencies returns the distinct currencies seen at construction
// time, sorted.
func (j *Journal) KnownCurrencies() []string {
	return sortedKeys(j.currencies)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Accounts returns the engine's raw `accounts` output.
func (j *Journal) Accounts(ctx context.Context) (string, error) {
	return j.engine.Run(ctx, "accounts")
}

// Payees returns the engine's raw `payees` output.
func (j *Journal) Payees(ctx context.Context) (string, error) {
	return j.engine.Run(ctx, "payees")
}

// Currencies returns the engine's raw `commodities` output.
func (j *Journal) Currencies(ctx context.Context) (string, error) {
	return j.engine.Run(ctx, "commodities")
}

// Csv returns the engine's raw csv dump, optionally narrowed by extra
// engine arguments.
func (j *Journal) Csv(ctx context.Context, args ...string) (string, error) {
	return j.engine.Run(ctx, "csv", args...)
}

// Append writes the entry's canonical rendering plus a trailing newline
// to the end of the journal and records the byte window it occupied.
// Only the most recent append is revertible: the new window overwrites
// any previous one. Returns the window's start and end offsets.
func (j *Journal) Append(entry *domain.Entry) (int64, int64, error) {
	file, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	oldOffset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, 0, err
	}

	n, err := file.WriteString(entry.Render(j.rules) + "\n")
	if err != nil {
		return 0, 0, err
	}
	newOffset := oldOffset + int64(n)

	j.lastAppend = &LastAppend{
		Entry:     entry,
		OldOffset: oldOffset,
		NewOffset: newOffset,
	}

	j.logger.Info().
		Str("payee", entry.Payee).
		Str("date", entry.Date).
		Int64("old_offset", oldOffset).
		Int64("new_offset", newOffset).
		Msg("entry appended")

	return oldOffset, newOffset, nil
}

// LastAppend returns a copy of the pending undo window, or nil when
// there is none. Callers may persist it to keep undo across restarts.
func (j *Journal) LastAppend() *LastAppend {
	if j.lastAppend == nil {
		return nil
	}
	last := *j.lastAppend
	return &last
}

// CanRevert reports whether the last append is still intact on disk:
// the file must end exactly at the recorded offset and the recorded
// entry's rendering must still occupy the window. I/O failures
// propagate rather than masquerading as false.
func (j *Journal) CanRevert() (bool, error) {
	if j.lastAppend == nil {
		return false, nil
	}

	file, err := os.Open(j.path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	ok, err := j.windowIntact(file)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Revert undoes the last append by truncating the file at the recorded
// start offset. The window checks are re-executed here rather than
// trusting a prior CanRevert: the file is a shared resource and may have
// changed in between. Any check failure is domain.ErrCannotRevert and
// leaves the file untouched. A successful revert consumes the record.
func (j *Journal) Revert() error {
	if j.lastAppend == nil {
		return domain.ErrCannotRevert
	}

	file, err := os.OpenFile(j.path, os.O_RDWR, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	ok, err := j.windowIntact(file)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCannotRevert
	}

	if err := file.Truncate(j.lastAppend.OldOffset); err != nil {
		return err
	}

	j.logger.Info().
		Int64("offset", j.lastAppend.OldOffset).
		Msg("last append reverted")
	j.lastAppend = nil

	return nil
}

// windowIntact runs the two revert pre-condition checks against the open
// file: current size equals the recorded end offset, and the bytes from
// the recorded start offset to EOF still match the recorded entry.
func (j *Journal) windowIntact(file *os.File) (bool, error) {
	info, err := file.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() != j.lastAppend.NewOffset {
		return false, nil
	}

	if _, err := file.Seek(j.lastAppend.OldOffset, io.SeekStart); err != nil {
		return false, err
	}
	actual, err := io.ReadAll(file)
	if err != nil {
		return false, err
	}

	stored := strings.TrimRight(j.lastAppend.Entry.Render(j.rules), " \t\r\n")
	return strings.TrimRight(string(actual), " \t\r\n") == stored, nil
}
