package transcript

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/otorrinoweb/triagem-go/internal/domain"
)

func testRecord(text string, escalated bool) domain.TranscriptRecord {
	return domain.TranscriptRecord{
		SessionID: "11112222-3333-4444-5555-666677778888",
		Timestamp: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
		Speaker:   domain.SpeakerBot,
		Text:      text,
		State:     domain.StateEnd,
		Domain:    "nariz",
		Escalated: escalated,
	}
}

func TestFileStoreSaveAndList(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "lines.jsonl"))

	for _, text := range []string{"primeira", "segunda", "terceira"} {
		if err := store.Save(testRecord(text, false)); err != nil {
			t.Fatalf("Save(%q): %v", text, err)
		}
	}

	records, err := store.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("List returned %d records, want 3", len(records))
	}
	if records[0].Text != "terceira" {
		t.Errorf("records[0].Text = %q, want newest first", records[0].Text)
	}
	if records[0].Domain != "nariz" || records[0].Speaker != domain.SpeakerBot {
		t.Errorf("record fields lost in round trip: %+v", records[0])
	}
}

func TestFileStoreListLimit(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "lines.jsonl"))
	for _, text := range []string{"a", "b", "c"} {
		if err := store.Save(testRecord(text, false)); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	records, err := store.List(2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("List(2) returned %d records", len(records))
	}
	if records[0].Text != "c" || records[1].Text != "b" {
		t.Errorf("List(2) = %q,%q, want the two newest", records[0].Text, records[1].Text)
	}
}

func TestFileStoreEmptyList(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.jsonl"))
	records, err := store.List(0)
	if err != nil {
		t.Fatalf("List on missing file: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("List on missing file = %v, want none", records)
	}
}

func TestFileStoreClear(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "lines.jsonl"))
	if err := store.Save(testRecord("apagar", true)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	records, err := store.List(0)
	if err != nil {
		t.Fatalf("List after Clear: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("List after Clear = %v, want none", records)
	}
	// Clearing an already empty store is not an error.
	if err := store.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}
