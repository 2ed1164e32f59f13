package quiz

import (
	"errors"
	"fmt"
	"sort"
)

// Persona buckets, in ascending score order.
const (
	BucketDreamer = "DREAMER"
	BucketBuilder = "BUILDER"
	BucketDriver  = "DRIVER"
	BucketLeader  = "LEADER"
)

const (
	// MinScore and MaxScore bound the total for a complete answer set.
	MinScore = 0
	MaxScore = 75

	minAnswer = 1
	maxAnswer = 5
)

var (
	// ErrIncompleteAnswers is returned when required questions are unanswered.
	// Missing answers abort scoring rather than counting as zero; a partial
	// total would silently drop the respondent into a lower bucket.
	ErrIncompleteAnswers = errors.New("answer set is incomplete")
	// ErrAnswerOutOfRange is returned for values outside the 1..5 scale.
	ErrAnswerOutOfRange = errors.New("answer value out of range")
	// ErrUnknownQuestion is returned for answers to question IDs not in the bank.
	ErrUnknownQuestion = errors.New("unknown question id")
)

// Result is the outcome of scoring a complete answer set.
type Result struct {
	TotalScore    int            `json:"total_score"`
	SectionScores map[string]int `json:"section_scores"`
	Bucket        string         `json:"bucket"`
}

// bucketRanges partitions [0,75] with no gaps or overlaps. Boundary values
// belong to the bucket whose range ends there (25 is DREAMER, 26 is BUILDER).
var bucketRanges = []struct {
	max    int
	bucket string
}{
	{25, BucketDreamer},
	{50, BucketBuilder},
	{65, BucketDriver},
	{75, BucketLeader},
}

// BucketFor maps a total score to its persona bucket.
func BucketFor(total int) string {
	for _, r := range bucketRanges {
		if total <= r.max {
			return r.bucket
		}
	}
	return BucketLeader
}

// Score computes the total score, per-section scores, and persona bucket for
// a complete answer set over the bank's questions. It is pure: no side
// effects, deterministic for a given bank and answer map.
func (b *Bank) Score(answers map[int]int) (*Result, error) {
	for qid, v := range answers {
		if b.question(qid) == nil {
			return nil, fmt.Errorf("%w: %d", ErrUnknownQuestion, qid)
		}
		if v < minAnswer || v > maxAnswer {
			return nil, fmt.Errorf("%w: question %d has value %d", ErrAnswerOutOfRange, qid, v)
		}
	}

	var missing []int
	for _, q := range b.Questions {
		if _, ok := answers[q.ID]; !ok {
			missing = append(missing, q.ID)
		}
	}
	if len(missing) > 0 {
		sort.Ints(missing)
		return nil, fmt.Errorf("%w: missing questions %v", ErrIncompleteAnswers, missing)
	}

	sections := make(map[string]int, len(b.Sections))
	for _, s := range b.Sections {
		sections[s.Key] = 0
	}
	total := 0
	for _, q := range b.Questions {
		v := answers[q.ID]
		total += v
		sections[q.Section] += v
	}

	return &Result{
		TotalScore:    total,
		SectionScores: sections,
		Bucket:        BucketFor(total),
	}, nil
}
