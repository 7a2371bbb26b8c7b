package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/otorrinoweb/triagem-go/assets"
)

func runValidateOn(t *testing.T, path string) (string, error) {
	t.Helper()
	cmd := newValidateCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{path})
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCommandAcceptsDefaultDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, assets.DefaultRulesJSON, 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	out, err := runValidateOn(t, path)
	if err != nil {
		t.Fatalf("validate failed: %v\n%s", err, out)
	}
	if strings.TrimSpace(out) != "" {
		t.Errorf("valid document produced diagnostics:\n%s", out)
	}
}

func TestValidateCommandReportsViolations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	broken := `{"version": "1", "domains": {}, "logic": {"answer_options": ["Talvez"], "pain_escalation_threshold": 15}}`
	if err := os.WriteFile(path, []byte(broken), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	out, err := runValidateOn(t, path)
	if err == nil {
		t.Fatal("validate succeeded on an invalid document")
	}
	for _, want := range []string{
		"chaves obrigatórias ausentes",
		"logic.answer_options deve conter",
		"pain_escalation_threshold fora do intervalo",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestValidateCommandReportsMissingFile(t *testing.T) {
	out, err := runValidateOn(t, filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("validate succeeded on a missing file")
	}
	if !strings.Contains(out, "não foi possível carregar o arquivo") {
		t.Errorf("output missing load error:\n%s", out)
	}
}

func TestValidateCommandReportsParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(`{"version":`), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	out, err := runValidateOn(t, path)
	if err == nil {
		t.Fatal("validate succeeded on malformed JSON")
	}
	if !strings.Contains(out, "could not load rules document") {
		t.Errorf("output missing parse error:\n%s", out)
	}
}
