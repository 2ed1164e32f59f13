package quiz

import (
	"errors"
	"testing"
)

var testUser = Respondent{FirstName: "Test", LastName: "User", Email: "test@example.com"}

func TestSessionHappyPath(t *testing.T) {
	bank := DefaultBank()
	s := NewSession(bank)
	if s.Step != StepEmailCapture {
		t.Fatalf("new session step=%v", s.Step)
	}

	s, err := s.Start(testUser)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Step != StepQuestion || s.Current != 0 {
		t.Fatalf("after Start: step=%v current=%d", s.Step, s.Current)
	}

	for range bank.Questions {
		if s, err = s.Answer(4); err != nil {
			t.Fatalf("Answer: %v", err)
		}
		if s, err = s.Next(); err != nil {
			t.Fatalf("Next: %v", err)
		}
	}
	if s.Step != StepResults {
		t.Fatalf("after last question: step=%v", s.Step)
	}

	res, err := s.Complete()
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if res.TotalScore != 60 || res.Bucket != BucketDriver {
		t.Fatalf("total=%d bucket=%s", res.TotalScore, res.Bucket)
	}
}

func TestSessionRequiresUserInfo(t *testing.T) {
	s := NewSession(DefaultBank())
	if _, err := s.Start(Respondent{FirstName: "x"}); !errors.Is(err, ErrNoUserInfo) {
		t.Fatalf("expected ErrNoUserInfo, got %v", err)
	}
}

func TestSessionNextRequiresAnswer(t *testing.T) {
	s := NewSession(DefaultBank())
	s, _ = s.Start(testUser)
	if _, err := s.Next(); !errors.Is(err, ErrNoAnswer) {
		t.Fatalf("expected ErrNoAnswer, got %v", err)
	}
}

func TestSessionPrevKeepsAnswers(t *testing.T) {
	s := NewSession(DefaultBank())
	s, _ = s.Start(testUser)
	s, _ = s.Answer(3)
	s, _ = s.Next()

	if _, err := s.Prev(); err != nil {
		t.Fatalf("Prev: %v", err)
	}
	s, _ = s.Prev()
	if s.Current != 0 {
		t.Fatalf("current=%d, want 0", s.Current)
	}
	if s.Answers[s.CurrentQuestion().ID] != 3 {
		t.Fatalf("answer lost after Prev")
	}
	if _, err := s.Prev(); !errors.Is(err, ErrAtStart) {
		t.Fatalf("expected ErrAtStart, got %v", err)
	}
}

func TestSessionAnswerOverwrites(t *testing.T) {
	s := NewSession(DefaultBank())
	s, _ = s.Start(testUser)
	s, _ = s.Answer(2)
	s, _ = s.Answer(5)
	if got := s.Answers[s.CurrentQuestion().ID]; got != 5 {
		t.Fatalf("answer=%d, want 5", got)
	}
}

func TestSessionRejectsWrongStepOps(t *testing.T) {
	s := NewSession(DefaultBank())
	if _, err := s.Answer(3); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("Answer before Start: %v", err)
	}
	if _, err := s.Complete(); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("Complete before results: %v", err)
	}
	s, _ = s.Start(testUser)
	if _, err := s.Start(testUser); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("double Start: %v", err)
	}
}

func TestSessionTransitionsDoNotShareAnswerMaps(t *testing.T) {
	s := NewSession(DefaultBank())
	s, _ = s.Start(testUser)
	before := s
	after, _ := s.Answer(4)
	if len(before.Answers) != 0 {
		t.Fatalf("earlier state mutated: %v", before.Answers)
	}
	if len(after.Answers) != 1 {
		t.Fatalf("answer not recorded: %v", after.Answers)
	}
}
