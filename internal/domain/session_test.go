package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewSessionStartsInGreet(t *testing.T) {
	s := NewSession("abc")
	if s.State != StateGreet {
		t.Errorf("state = %s, want %s", s.State, StateGreet)
	}
	if s.ID != "abc" {
		t.Errorf("id = %q, want abc", s.ID)
	}
}

func TestRecordSymptomKeepsSetSemantics(t *testing.T) {
	s := NewSession("abc")
	for _, label := range []string{"Tosse", "Zumbido", "Tosse", "Zumbido", "Tosse"} {
		s.RecordSymptom(label)
	}
	want := []string{"Tosse", "Zumbido"}
	if diff := cmp.Diff(want, s.AnsweredSymptoms); diff != "" {
		t.Errorf("answered symptoms mismatch (-want +got):\n%s", diff)
	}
}

func TestResetKeepsIDAndClearsAnswers(t *testing.T) {
	s := NewSession("abc")
	s.State = StateAskFlags
	s.Domain = "ouvido"
	s.RecordSymptom("Zumbido")
	score := 7
	s.PainScore = &score
	s.RedFlagCursor = 2
	s.Escalated = true

	s.Reset()

	if s.ID != "abc" {
		t.Errorf("id = %q, want abc kept across Reset", s.ID)
	}
	if s.State != StateGreet {
		t.Errorf("state = %s, want %s", s.State, StateGreet)
	}
	if s.Domain != "" || s.AnsweredSymptoms != nil || s.PainScore != nil {
		t.Error("Reset left answers behind")
	}
	if s.RedFlagCursor != 0 || s.Escalated {
		t.Error("Reset left screening progress behind")
	}
}
