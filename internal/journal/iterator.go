package journal

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/iho/ledgerd/internal/domain"
)

// ParsedEntry is one block of the journal file as seen by iteration.
// Note is "" when the block has no comment line; postings are not parsed
// here, that detail belongs to the engine's csv dump.
type ParsedEntry struct {
	Body  string
	Date  string
	Payee string
	Note  string
}

var (
	headerPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}|\d{4}/\d{2}/\d{2})( [!*])?\s+(.*)$`)
	notePattern   = regexp.MustCompile(`^\s*;\s*(.*)$`)
)

// EntryIterator walks the journal file block by block in the
// bufio.Scanner style. Each Entries call opens the file afresh, so
// iteration is restartable and never serves stale buffers.
type EntryIterator struct {
	file    *os.File
	scanner *bufio.Scanner
	journal *Journal

	current *ParsedEntry
	err     error
	skipped int
}

// Entries opens the journal file for iteration. The caller owns the
// returned iterator and must Close it.
func (j *Journal) Entries() (*EntryIterator, error) {
	file, err := os.Open(j.path)
	if err != nil {
		return nil, err
	}

	return &EntryIterator{
		file:    file,
		scanner: bufio.NewScanner(file),
		journal: j,
	}, nil
}

// Next advances to the next well-formed entry. Blocks whose header does
// not match the date/payee shape are skipped and counted rather than
// aborting the rest of the file; foreign tools and manual edits produce
// such blocks routinely.
func (it *EntryIterator) Next() bool {
	if it.err != nil {
		return false
	}

	var block []string
	flush := func() bool {
		entry, err := parseBlock(block)
		block = block[:0]
		if err != nil {
			it.skipped++
			if it.journal.metrics != nil {
				it.journal.metrics.MalformedBlocks.Inc()
			}
			it.journal.logger.Warn().Err(err).Msg("skipping malformed journal block")
			return false
		}
		it.current = entry
		return true
	}

	for it.scanner.Scan() {
		line := strings.TrimSpace(it.scanner.Text())
		if line != "" {
			block = append(block, line)
			continue
		}
		if len(block) > 0 && flush() {
			return true
		}
	}

	if err := it.scanner.Err(); err != nil {
		it.err = err
		return false
	}

	// Final block when the file lacks a trailing blank line.
	if len(block) > 0 && flush() {
		return true
	}

	return false
}

// Entry returns the entry produced by the last successful Next.
func (it *EntryIterator) Entry() *ParsedEntry {
	return it.current
}

// Err returns the first I/O error hit during iteration, if any.
func (it *EntryIterator) Err() error {
	return it.err
}

// Skipped returns how many malformed blocks were passed over so far.
func (it *EntryIterator) Skipped() int {
	return it.skipped
}

// Close releases the underlying file handle.
func (it *EntryIterator) Close() error {
	return it.file.Close()
}

func parseBlock(lines []string) (*ParsedEntry, error) {
	header := headerPattern.FindStringSubmatch(lines[0])
	if header == nil {
		return nil, fmt.Errorf("%q: %w", lines[0], domain.ErrMalformedEntry)
	}

	note := ""
	if len(lines) > 1 {
		if m := notePattern.FindStringSubmatch(lines[1]); m != nil {
			note = m[1]
		}
	}

	return &ParsedEntry{
		Body:  strings.Join(lines, "\n"),
		Date:  header[1],
		Payee: header[3],
		Note:  note,
	}, nil
}
