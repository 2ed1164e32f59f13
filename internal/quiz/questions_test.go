package quiz

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultBankShape(t *testing.T) {
	bank := DefaultBank()
	if err := bank.Validate(); err != nil {
		t.Fatalf("default bank invalid: %v", err)
	}
	if len(bank.Questions) != 15 {
		t.Fatalf("expected 15 questions, got %d", len(bank.Questions))
	}
	if len(bank.Sections) != 5 {
		t.Fatalf("expected 5 sections, got %d", len(bank.Sections))
	}
	perSection := map[string]int{}
	for _, q := range bank.Questions {
		perSection[q.Section]++
		if len(q.Options) != 5 {
			t.Fatalf("question %d has %d options, want 5", q.ID, len(q.Options))
		}
	}
	for _, s := range bank.Sections {
		if perSection[s.Key] != 3 {
			t.Fatalf("section %s has %d questions, want 3", s.Key, perSection[s.Key])
		}
	}
}

func TestSectionDisplay(t *testing.T) {
	bank := DefaultBank()
	if got := bank.SectionDisplay("vision"); got != "Vision & Purpose" {
		t.Fatalf("SectionDisplay(vision)=%q", got)
	}
	if got := bank.SectionDisplay("nope"); got != "nope" {
		t.Fatalf("SectionDisplay(nope)=%q", got)
	}
}

const testBankYAML = `
sections:
  - key: focus
    display: Focus
questions:
  - id: 1
    section: focus
    text: "How focused are you?"
    options:
      - {text: "Very", value: 5}
      - {text: "Not at all", value: 1}
`

func TestLoadBank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	if err := os.WriteFile(path, []byte(testBankYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	bank, err := LoadBank(path)
	if err != nil {
		t.Fatalf("LoadBank: %v", err)
	}
	if len(bank.Questions) != 1 || bank.Questions[0].Section != "focus" {
		t.Fatalf("unexpected bank: %+v", bank)
	}
	res, err := bank.Score(map[int]int{1: 5})
	if err != nil {
		t.Fatalf("Score on loaded bank: %v", err)
	}
	if res.TotalScore != 5 {
		t.Fatalf("total=%d, want 5", res.TotalScore)
	}
}

func TestLoadBankRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"empty":           "questions: []",
		"bad section":     "sections: []\nquestions:\n  - {id: 1, section: ghost, text: q}",
		"duplicate id":    "sections: [{key: s, display: S}]\nquestions:\n  - {id: 1, section: s, text: a}\n  - {id: 1, section: s, text: b}",
		"option range":    "sections: [{key: s, display: S}]\nquestions:\n  - id: 1\n    section: s\n    text: q\n    options: [{text: bad, value: 9}]",
		"not yaml at all": "{{{{",
	}
	for name, content := range cases {
		path := filepath.Join(t.TempDir(), "bank.yaml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadBank(path); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
