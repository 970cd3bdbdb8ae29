package ledgercli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/iho/ledgerd/internal/domain"
)

// DefaultBin is the ledger executable looked up on PATH when no explicit
// binary is configured.
const DefaultBin = "ledger"

// Runner invokes the external ledger engine against one journal file.
// Calls block until the engine exits; callers wanting a bound on that use
// a context with a deadline.
type Runner struct {
	bin  string
	path string
}

// NewRunner creates a Runner for the journal at path. An empty bin falls
// back to DefaultBin.
func NewRunner(bin, path string) *Runner {
	if bin == "" {
		bin = DefaultBin
	}
	return &Runner{bin: bin, path: path}
}

// Run executes `<bin> -f <path> <subcommand> [args...]` and returns its
// standard output. A non-zero exit is reported as *domain.LedgerCliError
// carrying the captured standard error; failures to start the process at
// all (missing binary, context cancelled) propagate as-is.
func (r *Runner) Run(ctx context.Context, subcommand string, args ...string) (string, error) {
	cmdArgs := append([]string{"-f", r.path, subcommand}, args...)
	cmd := exec.CommandContext(ctx, r.bin, cmdArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &domain.LedgerCliError{
				Stderr: strings.TrimSpace(stderr.String()),
				Err:    err,
			}
		}
		return "", fmt.Errorf("run %s: %w", r.bin, err)
	}

	return stdout.String(), nil
}
