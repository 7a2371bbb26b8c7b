package rules

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apprules "github.com/otorrinoweb/triagem-go/internal/application/rules"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	t.Setenv("TRIAGEM_RULES", "")
	t.Chdir(t.TempDir())

	doc, err := NewFileLoader("").Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Version == "" {
		t.Error("embedded document has no version")
	}
	if doc.Domains.Len() == 0 {
		t.Error("embedded document declares no domains")
	}
	if errs := apprules.Validate(doc); len(errs) != 0 {
		t.Errorf("embedded document failed validation: %v", errs)
	}
}

func TestLoadExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	writeMinimalDocument(t, path, "9.9.9")

	doc, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Version != "9.9.9" {
		t.Errorf("version = %q, want 9.9.9", doc.Version)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	writeMinimalDocument(t, path, "env")
	t.Setenv("TRIAGEM_RULES", path)
	t.Chdir(t.TempDir())

	doc, err := NewFileLoader("").Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Version != "env" {
		t.Errorf("version = %q, want the TRIAGEM_RULES document", doc.Version)
	}
}

func TestLoadWorkingDirectoryDocument(t *testing.T) {
	t.Setenv("TRIAGEM_RULES", "")
	dir := t.TempDir()
	writeMinimalDocument(t, filepath.Join(dir, DefaultFileName), "cwd")
	t.Chdir(dir)

	doc, err := NewFileLoader("").Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.Version != "cwd" {
		t.Errorf("version = %q, want the working directory document", doc.Version)
	}
}

func TestLoadReportsMissingFile(t *testing.T) {
	_, err := NewFileLoader(filepath.Join(t.TempDir(), "missing.json")).Load(context.Background())
	if err == nil {
		t.Fatal("Load succeeded on a missing file")
	}
	if !strings.Contains(err.Error(), "could not load rules document") {
		t.Errorf("error %q lacks the load prefix", err)
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"version": `)); err == nil {
		t.Fatal("Parse accepted truncated JSON")
	}
}

func writeMinimalDocument(t *testing.T, path, version string) {
	t.Helper()
	doc := `{"version": "` + version + `", "locale": "pt-BR", "domains": {}, "logic": {"answer_options": ["Sim", "Não"]}}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write rules file: %v", err)
	}
}
