package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDomainMapKeepsDeclarationOrder(t *testing.T) {
	data := `{
		"zebra": {"red_flags": []},
		"alfa": {"red_flags": []},
		"meio": {"red_flags": []}
	}`
	var m DomainMap
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []string{"zebra", "alfa", "meio"}
	if diff := cmp.Diff(want, m.IDs()); diff != "" {
		t.Errorf("declaration order lost (-want +got):\n%s", diff)
	}
}

func TestKeywordMapKeepsDeclarationOrder(t *testing.T) {
	data := `{"ouvido": ["ouvido"], "nariz": ["nariz"], "garganta": ["garganta"]}`
	var m KeywordMap
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []string{"ouvido", "nariz", "garganta"}
	if diff := cmp.Diff(want, m.IDs()); diff != "" {
		t.Errorf("declaration order lost (-want +got):\n%s", diff)
	}
	if got := m.Get("nariz"); len(got) != 1 || got[0] != "nariz" {
		t.Errorf("Get(nariz) = %v", got)
	}
}

func TestDecodeOrderedRejectsNonObject(t *testing.T) {
	var m DomainMap
	if err := json.Unmarshal([]byte(`["lista"]`), &m); err == nil {
		t.Fatal("unmarshal accepted a JSON array")
	}
}

func TestHasTracksDeclaredKeys(t *testing.T) {
	data := `{"version": "1", "locale": "pt-BR", "guidelines": {}}`
	var doc RulesDocument
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"version", "locale", "guidelines"} {
		if !doc.Has(key) {
			t.Errorf("Has(%q) = false for a declared key", key)
		}
	}
	for _, key := range []string{"legal", "intake", "domains", "logic"} {
		if doc.Has(key) {
			t.Errorf("Has(%q) = true for an undeclared key", key)
		}
	}
}

func TestHasFallsBackToZeroValueHeuristics(t *testing.T) {
	doc := RulesDocument{
		Version: "1",
		Logic:   Logic{AnswerOptions: []string{AnswerYes, AnswerNo}},
	}
	if !doc.Has("version") || !doc.Has("logic") {
		t.Error("Has() missed populated fields on a code-built document")
	}
	if doc.Has("locale") || doc.Has("guidelines") {
		t.Error("Has() reported empty fields as declared")
	}
}

func TestFieldLookups(t *testing.T) {
	min, max := 0, 10
	doc := RulesDocument{Intake: Intake{Sections: []IntakeSection{{
		ID: "sintomas",
		Fields: []IntakeField{
			{ID: "symptom_checklist", Type: FieldTypeSymptomChecklist, Choices: []string{"Tosse"}},
			{ID: "pain_scale", Type: FieldTypePainScale, Min: &min, Max: &max},
		},
	}}}}

	checklist, ok := doc.SymptomChecklist()
	if !ok || len(checklist.Choices) != 1 {
		t.Errorf("SymptomChecklist() = %+v, %v", checklist, ok)
	}
	pain, ok := doc.PainScaleField()
	if !ok || pain.Min == nil || *pain.Max != 10 {
		t.Errorf("PainScaleField() = %+v, %v", pain, ok)
	}
}

func TestRedFlagsForFallsBackToGlobal(t *testing.T) {
	global := []RedFlagQuestion{{ID: "global_febre", Question: "Febre?"}}
	doc := RulesDocument{
		Domains: NewDomainMap([]string{"ouvido", "vazio"}, map[string]DomainRule{
			"ouvido": {RedFlags: []RedFlagQuestion{{ID: "ouvido_secrecao"}}},
			"vazio":  {},
		}),
		GlobalRedFlags: global,
	}

	if flags := doc.RedFlagsFor("ouvido"); len(flags) != 1 || flags[0].ID != "ouvido_secrecao" {
		t.Errorf("RedFlagsFor(ouvido) = %v", flags)
	}
	if flags := doc.RedFlagsFor("vazio"); len(flags) != 1 || flags[0].ID != "global_febre" {
		t.Errorf("RedFlagsFor(vazio) = %v, want global fallback", flags)
	}
	if flags := doc.RedFlagsFor("desconhecido"); len(flags) != 1 || flags[0].ID != "global_febre" {
		t.Errorf("RedFlagsFor(desconhecido) = %v, want global fallback", flags)
	}
}

func TestIsPatternSpec(t *testing.T) {
	tests := []struct {
		spec string
		want bool
	}{
		{"/ouvid[oa]/", true},
		{"//", true},
		{"ouvido", false},
		{"/semfechar", false},
		{"semabrir/", false},
		{"/", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsPatternSpec(tt.spec); got != tt.want {
			t.Errorf("IsPatternSpec(%q) = %v, want %v", tt.spec, got, tt.want)
		}
	}
}
