package lead

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/purelife/compass/internal/quiz"
)

// QuizVersion tags every submission built by this release of the funnel.
const QuizVersion = "1.0"

// Environment captures the signals the client observed when the quiz was
// taken: where the visitor came from and what they ran the quiz on.
type Environment struct {
	Query            url.Values
	Referrer         string
	PageURL          string
	UserAgent        string
	ScreenResolution string
	Timezone         string
	SessionID        string
}

// Builder assembles immutable submission payloads from a scored quiz run.
type Builder struct {
	now   func() time.Time
	newID func() string
}

func NewBuilder() *Builder {
	return &Builder{
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:12] },
	}
}

// Build produces the submission for a completed, scored run. The persona is
// derived from the total score; tags and the personalized message come from
// it.
func (b *Builder) Build(user quiz.Respondent, res *quiz.Result, elapsed time.Duration, env Environment) *SubmissionRequest {
	persona := quiz.PersonaFor(res.TotalScore)
	now := b.now()

	sessionID := env.SessionID
	if sessionID == "" {
		sessionID = b.newID()
	}

	return &SubmissionRequest{
		Contact: Contact{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			Phone:     user.Phone,
			Tags:      append([]string(nil), persona.Tags...),
			CustomFields: CustomFields{
				QuizScore:           res.TotalScore,
				ResultType:          persona.Type,
				SectionScores:       res.SectionScores,
				CompletionDate:      now.Format(time.RFC3339),
				ReferrerSource:      ReferrerSource(env.Query, env.Referrer),
				TimeTakenSeconds:    int(elapsed / time.Second),
				PersonalizedMessage: persona.PersonalizedMessage,
				StrongestSection:    StrongestSection(res.SectionScores),
				WeakestSection:      WeakestSection(res.SectionScores),
				QuizVersion:         QuizVersion,
			},
		},
		Metadata: Metadata{
			QuizVersion:      QuizVersion,
			Timestamp:        now.UnixMilli(),
			UserAgent:        env.UserAgent,
			ScreenResolution: env.ScreenResolution,
			Timezone:         env.Timezone,
			Referrer:         env.Referrer,
			PageURL:          env.PageURL,
			SessionID:        sessionID,
		},
	}
}

// StrongestSection returns the section with the highest score. Ties resolve
// to the first key in sorted order; which of the tied sections wins is
// arbitrary but stable.
func StrongestSection(scores map[string]int) string {
	best, bestScore := "", -1
	for _, k := range sortedKeys(scores) {
		if scores[k] > bestScore {
			best, bestScore = k, scores[k]
		}
	}
	return best
}

// WeakestSection returns the section with the lowest score; ties as above.
func WeakestSection(scores map[string]int) string {
	worst := ""
	worstScore := int(^uint(0) >> 1)
	for _, k := range sortedKeys(scores) {
		if scores[k] < worstScore {
			worst, worstScore = k, scores[k]
		}
	}
	return worst
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
