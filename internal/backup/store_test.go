package backup

import (
	"testing"
	"time"

	"github.com/purelife/compass/internal/lead"
)

func testPayload(email string) lead.SubmissionRequest {
	return lead.SubmissionRequest{
		Contact: lead.Contact{
			FirstName: "Test",
			LastName:  "User",
			Email:     email,
			CustomFields: lead.CustomFields{
				QuizScore:     40,
				ResultType:    "BUILDER",
				SectionScores: map[string]int{"vision": 8, "action": 8, "resilience": 8, "alignment": 8, "community": 8},
			},
		},
		Metadata: lead.Metadata{QuizVersion: lead.QuizVersion, Timestamp: 1},
	}
}

func TestMemoryStoreAddFillsDefaults(t *testing.T) {
	s := NewMemoryStore()
	rec, err := s.Add(Record{RequestID: "req_1", Payload: testPayload("a@b.c")})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("ID not generated")
	}
	if rec.Timestamp.IsZero() {
		t.Fatal("Timestamp not filled")
	}
}

func TestMemoryStoreListReturnsSnapshot(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Add(Record{RequestID: "req_1", Payload: testPayload("a@b.c")}); err != nil {
		t.Fatal(err)
	}
	first, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Add(Record{RequestID: "req_2", Payload: testPayload("d@e.f")}); err != nil {
		t.Fatal(err)
	}
	if len(first) != 1 {
		t.Fatalf("snapshot grew: %d records", len(first))
	}
	second, _ := s.List()
	if len(second) != 2 {
		t.Fatalf("expected 2 records, got %d", len(second))
	}
}

func TestMemoryStorePurge(t *testing.T) {
	s := NewMemoryStore()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	s.Add(Record{RequestID: "old", Timestamp: base.Add(-48 * time.Hour), Payload: testPayload("old@b.c")})
	s.Add(Record{RequestID: "fresh", Timestamp: base.Add(-time.Hour), Payload: testPayload("new@b.c")})

	removed, err := s.Purge(24 * time.Hour)
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed=%d, want 1", removed)
	}
	recs, _ := s.List()
	if len(recs) != 1 || recs[0].RequestID != "fresh" {
		t.Fatalf("unexpected survivors: %+v", recs)
	}
}
