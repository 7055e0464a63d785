package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/dgallion1/docform/internal/structure"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "WORKER_COUNT", "CACHE_ENTRIES", "LOG_LEVEL", "JOB_TTL", "RULES_FILE"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.WorkerCount)
	}
	if cfg.CacheEntries != 1024 {
		t.Errorf("expected 1024 cache entries, got %d", cfg.CacheEntries)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected 1h TTL, got %v", cfg.JobTTL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("WORKER_COUNT", "-3")
	t.Setenv("CACHE_ENTRIES", "-1")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("JOB_TTL", "90s")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "false")
	t.Setenv("RULES_FILE", "/etc/docform/rules.yaml")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected invalid worker count clamped to 4, got %d", cfg.WorkerCount)
	}
	if cfg.CacheEntries != -1 {
		t.Errorf("expected negative cache size kept, got %d", cfg.CacheEntries)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
	if cfg.JobTTL != 90*time.Second {
		t.Errorf("expected 90s TTL, got %v", cfg.JobTTL)
	}
	if cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback disabled")
	}
	if cfg.RulesFile != "/etc/docform/rules.yaml" {
		t.Errorf("unexpected rules file %q", cfg.RulesFile)
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{}).Validate(); err == nil {
		t.Error("expected error without keys")
	}
	if err := (Config{PathstoreAPIKey: "a"}).Validate(); err == nil {
		t.Error("expected error without docform key")
	}
	if err := (Config{PathstoreAPIKey: "a", DocformAPIKey: "b"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadRulesEmptyPath(t *testing.T) {
	rules, err := LoadRules("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(rules, structure.DefaultRules()) {
		t.Errorf("expected default rules, got %+v", rules)
	}
}

func TestLoadRulesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `callout_prefixes:
  - summary
  - in brief
attribution_phrase: adapted with permission from
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(rules.CalloutPrefixes, []string{"summary", "in brief"}) {
		t.Errorf("unexpected callout prefixes %q", rules.CalloutPrefixes)
	}
	if rules.AttributionPhrase != "adapted with permission from" {
		t.Errorf("unexpected attribution phrase %q", rules.AttributionPhrase)
	}
	if !reflect.DeepEqual(rules.SuppressedSections, structure.DefaultRules().SuppressedSections) {
		t.Errorf("expected suppressed sections to keep defaults, got %q", rules.SuppressedSections)
	}
}

func TestParseRulesErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "callout_prefix: [x]\n"},
		{"bad pattern", "suppressed_sections: ['(unclosed']\n"},
		{"wrong type", "callout_prefixes: 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRules([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseRulesEmptyDocument(t *testing.T) {
	rules, err := ParseRules(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(rules, structure.DefaultRules()) {
		t.Errorf("expected defaults for empty document")
	}
}

func TestLoadRulesMissingFile(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
