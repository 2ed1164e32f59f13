package quiz

import (
	"errors"
	"fmt"
)

// Step enumerates the stages of a quiz run.
type Step int

const (
	StepEmailCapture Step = iota
	StepQuestion
	StepResults
)

func (s Step) String() string {
	switch s {
	case StepEmailCapture:
		return "email_capture"
	case StepQuestion:
		return "question"
	case StepResults:
		return "results"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Respondent is the contact info captured before the first question.
type Respondent struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// Session is the state of one quiz run. Transitions return a new Session
// value; callers own rendering and persistence. Current indexes into the
// bank's question order and is only meaningful at StepQuestion.
type Session struct {
	Step    Step
	Current int
	Answers map[int]int
	User    Respondent

	bank *Bank
}

var (
	ErrWrongStep  = errors.New("operation not valid at this step")
	ErrNoAnswer   = errors.New("current question is unanswered")
	ErrAtStart    = errors.New("already at the first question")
	ErrNoUserInfo = errors.New("respondent info is required")
)

// NewSession starts a run at the email-capture step.
func NewSession(bank *Bank) Session {
	return Session{Step: StepEmailCapture, Answers: map[int]int{}, bank: bank}
}

// CurrentQuestion returns the question at the cursor, or nil outside
// StepQuestion.
func (s Session) CurrentQuestion() *Question {
	if s.Step != StepQuestion || s.Current < 0 || s.Current >= len(s.bank.Questions) {
		return nil
	}
	return &s.bank.Questions[s.Current]
}

// Start captures respondent info and moves to the first question.
func (s Session) Start(user Respondent) (Session, error) {
	if s.Step != StepEmailCapture {
		return s, ErrWrongStep
	}
	if user.FirstName == "" || user.LastName == "" || user.Email == "" {
		return s, ErrNoUserInfo
	}
	s.User = user
	s.Step = StepQuestion
	s.Current = 0
	return s, nil
}

// Answer records a value for the current question. Re-answering overwrites.
func (s Session) Answer(value int) (Session, error) {
	q := s.CurrentQuestion()
	if q == nil {
		return s, ErrWrongStep
	}
	if value < minAnswer || value > maxAnswer {
		return s, fmt.Errorf("%w: %d", ErrAnswerOutOfRange, value)
	}
	answers := make(map[int]int, len(s.Answers)+1)
	for k, v := range s.Answers {
		answers[k] = v
	}
	answers[q.ID] = value
	s.Answers = answers
	return s, nil
}

// Next advances to the following question, or to results after the last one.
// The current question must be answered first.
func (s Session) Next() (Session, error) {
	q := s.CurrentQuestion()
	if q == nil {
		return s, ErrWrongStep
	}
	if _, ok := s.Answers[q.ID]; !ok {
		return s, ErrNoAnswer
	}
	if s.Current+1 < len(s.bank.Questions) {
		s.Current++
		return s, nil
	}
	s.Step = StepResults
	return s, nil
}

// Prev moves back one question; earlier answers are kept.
func (s Session) Prev() (Session, error) {
	if s.Step != StepQuestion {
		return s, ErrWrongStep
	}
	if s.Current == 0 {
		return s, ErrAtStart
	}
	s.Current--
	return s, nil
}

// Complete scores the run. Valid only once every question is answered.
func (s Session) Complete() (*Result, error) {
	if s.Step != StepResults {
		return nil, ErrWrongStep
	}
	return s.bank.Score(s.Answers)
}
