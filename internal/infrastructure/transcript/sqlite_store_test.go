package transcript

import (
	"path/filepath"
	"testing"

	"github.com/otorrinoweb/triagem-go/internal/domain"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "transcripts.db"))

	if err := store.Save(testRecord("bom dia", false)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(testRecord("até logo", true)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	records, err := store.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("List returned %d records, want 2", len(records))
	}
	last := records[0]
	if last.Text != "até logo" || !last.Escalated {
		t.Errorf("newest record = %+v, want the escalated farewell", last)
	}
	if last.Speaker != domain.SpeakerBot || last.State != domain.StateEnd {
		t.Errorf("record fields lost in round trip: %+v", last)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	records, err = store.List(0)
	if err != nil {
		t.Fatalf("List after Clear: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("List after Clear = %v, want none", records)
	}
}
