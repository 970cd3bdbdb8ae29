package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.JournalPath != "ledger.dat" {
		t.Errorf("expected default journal path, got %q", cfg.JournalPath)
	}
	if cfg.LedgerBin != "ledger" {
		t.Errorf("expected default ledger binary, got %q", cfg.LedgerBin)
	}
	if cfg.EntryCount != 25 {
		t.Errorf("expected default entry count 25, got %d", cfg.EntryCount)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.HTTPPort)
	}
	if cfg.HTTPReadTimeout != 30*time.Second {
		t.Errorf("expected default read timeout, got %v", cfg.HTTPReadTimeout)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("LEDGER_PATH", "/var/lib/ledgerd/journal.dat")
	t.Setenv("LEDGER_BIN", "/usr/local/bin/ledger")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.JournalPath != "/var/lib/ledgerd/journal.dat" {
		t.Errorf("expected env journal path, got %q", cfg.JournalPath)
	}
	if cfg.LedgerBin != "/usr/local/bin/ledger" {
		t.Errorf("expected env ledger binary, got %q", cfg.LedgerBin)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected env log level, got %q", cfg.LogLevel)
	}
}
