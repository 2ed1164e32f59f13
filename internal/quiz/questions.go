package quiz

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Section groups three questions under one of the five compass dimensions.
type Section struct {
	Key     string `yaml:"key" json:"key"`
	Display string `yaml:"display" json:"display"`
}

// Option is one selectable answer with its Likert value.
type Option struct {
	Text  string `yaml:"text" json:"text"`
	Value int    `yaml:"value" json:"value"`
}

// Question is a single quiz item.
type Question struct {
	ID      int      `yaml:"id" json:"id"`
	Section string   `yaml:"section" json:"section"`
	Text    string   `yaml:"text" json:"text"`
	Options []Option `yaml:"options" json:"options"`
}

// Bank is the fixed question set a quiz run is scored against.
type Bank struct {
	Sections  []Section  `yaml:"sections" json:"sections"`
	Questions []Question `yaml:"questions" json:"questions"`

	byID map[int]*Question
}

func (b *Bank) index() {
	b.byID = make(map[int]*Question, len(b.Questions))
	for i := range b.Questions {
		b.byID[b.Questions[i].ID] = &b.Questions[i]
	}
}

func (b *Bank) question(id int) *Question {
	if b.byID == nil {
		b.index()
	}
	return b.byID[id]
}

// SectionDisplay returns the display name for a section key, or the key
// itself when unknown.
func (b *Bank) SectionDisplay(key string) string {
	for _, s := range b.Sections {
		if s.Key == key {
			return s.Display
		}
	}
	return key
}

// Validate checks the bank's structural invariants: unique question IDs,
// every question in a declared section, and every option value on the scale.
func (b *Bank) Validate() error {
	if len(b.Questions) == 0 {
		return fmt.Errorf("question bank is empty")
	}
	sections := map[string]bool{}
	for _, s := range b.Sections {
		sections[s.Key] = true
	}
	seen := map[int]bool{}
	for _, q := range b.Questions {
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %d", q.ID)
		}
		seen[q.ID] = true
		if !sections[q.Section] {
			return fmt.Errorf("question %d references undeclared section %q", q.ID, q.Section)
		}
		for _, o := range q.Options {
			if o.Value < minAnswer || o.Value > maxAnswer {
				return fmt.Errorf("question %d option value %d outside %d..%d", q.ID, o.Value, minAnswer, maxAnswer)
			}
		}
	}
	return nil
}

// LoadBank reads a question bank from a YAML content file. It lets the quiz
// copy be edited without a rebuild; DefaultBank is the embedded fallback.
func LoadBank(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b := &Bank{}
	if err := yaml.NewDecoder(f).Decode(b); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid question bank %s: %w", path, err)
	}
	b.index()
	return b, nil
}

// DefaultBank returns the built-in Pure Life Compass question set: fifteen
// questions, three per section, five sections.
func DefaultBank() *Bank {
	b := &Bank{
		Sections: []Section{
			{Key: "vision", Display: "Vision & Purpose"},
			{Key: "action", Display: "Action & Execution"},
			{Key: "resilience", Display: "Resilience & Growth"},
			{Key: "alignment", Display: "Alignment & Balance"},
			{Key: "community", Display: "Community & Support"},
		},
		Questions: []Question{
			{
				ID: 1, Section: "vision",
				Text: "How clear are you about your life's ultimate purpose and the legacy you want to leave?",
				Options: []Option{
					{Text: "I have a crystal-clear vision that guides all my decisions", Value: 5},
					{Text: "I have a general sense of direction but need more clarity", Value: 4},
					{Text: "I have some ideas but they're not well-defined", Value: 3},
					{Text: "I have vague notions but struggle with specificity", Value: 2},
					{Text: "I'm completely unsure about my life's purpose", Value: 1},
				},
			},
			{
				ID: 2, Section: "vision",
				Text: "When you imagine your ideal life 5 years from now, how vivid and detailed is that vision?",
				Options: []Option{
					{Text: "Extremely vivid - I can see, feel, and describe it in detail", Value: 5},
					{Text: "Pretty clear with most important elements defined", Value: 4},
					{Text: "Somewhat clear but missing key details", Value: 3},
					{Text: "Vague with only general concepts", Value: 2},
					{Text: "Completely unclear or non-existent", Value: 1},
				},
			},
			{
				ID: 3, Section: "vision",
				Text: "How often do you review and refine your long-term goals to ensure they align with your deepest values?",
				Options: []Option{
					{Text: "Weekly or monthly - it's a consistent practice", Value: 5},
					{Text: "Quarterly - I make it a seasonal priority", Value: 4},
					{Text: "A few times per year when I remember", Value: 3},
					{Text: "Rarely - maybe once a year or less", Value: 2},
					{Text: "Never - I don't have this practice", Value: 1},
				},
			},
			{
				ID: 4, Section: "action",
				Text: "When you commit to a goal, how consistent are you with taking daily action toward achieving it?",
				Options: []Option{
					{Text: "Extremely consistent - I take action every single day", Value: 5},
					{Text: "Very consistent - I rarely miss more than a day", Value: 4},
					{Text: "Moderately consistent - I act most days", Value: 3},
					{Text: "Inconsistent - I act sporadically", Value: 2},
					{Text: "Very inconsistent - I struggle to maintain momentum", Value: 1},
				},
			},
			{
				ID: 5, Section: "action",
				Text: "How quickly do you move from idea to implementation when you identify something important?",
				Options: []Option{
					{Text: "Immediately - I start taking action within hours", Value: 5},
					{Text: "Very quickly - within a day or two", Value: 4},
					{Text: "Reasonably fast - within a week", Value: 3},
					{Text: "Slowly - it takes weeks to start", Value: 2},
					{Text: "Very slowly or never - I often don't follow through", Value: 1},
				},
			},
			{
				ID: 6, Section: "action",
				Text: "How effectively do you break down large goals into smaller, manageable daily actions?",
				Options: []Option{
					{Text: "Expertly - I have a systematic approach that works", Value: 5},
					{Text: "Well - I'm good at creating actionable steps", Value: 4},
					{Text: "Adequately - I can do it but need to improve", Value: 3},
					{Text: "Poorly - I struggle with breaking things down", Value: 2},
					{Text: "Not at all - I'm overwhelmed by large goals", Value: 1},
				},
			},
			{
				ID: 7, Section: "resilience",
				Text: "When you face a significant setback or failure, how do you typically respond?",
				Options: []Option{
					{Text: "I quickly learn from it and get back to pursuing my goals", Value: 5},
					{Text: "I take some time to process, then come back stronger", Value: 4},
					{Text: "I eventually recover but it takes some effort", Value: 3},
					{Text: "I struggle for a while but eventually move forward", Value: 2},
					{Text: "I get stuck and have trouble recovering", Value: 1},
				},
			},
			{
				ID: 8, Section: "resilience",
				Text: "How do you view challenges and obstacles in your path to achieving your goals?",
				Options: []Option{
					{Text: "As opportunities to grow and proof of my progress", Value: 5},
					{Text: "As normal parts of the journey that I can handle", Value: 4},
					{Text: "As manageable difficulties that I work through", Value: 3},
					{Text: "As frustrating barriers that slow me down", Value: 2},
					{Text: "As signs that maybe I should give up or change direction", Value: 1},
				},
			},
			{
				ID: 9, Section: "resilience",
				Text: "How well do you maintain your motivation and energy during difficult or stressful periods?",
				Options: []Option{
					{Text: "Exceptionally well - I actually thrive under pressure", Value: 5},
					{Text: "Well - I stay motivated with some extra effort", Value: 4},
					{Text: "Adequately - I manage but it's challenging", Value: 3},
					{Text: "Poorly - I lose steam when things get tough", Value: 2},
					{Text: "Very poorly - stress completely derails me", Value: 1},
				},
			},
			{
				ID: 10, Section: "alignment",
				Text: "How well do your daily actions and decisions align with your core values and long-term vision?",
				Options: []Option{
					{Text: "Perfectly - every decision reflects my values and vision", Value: 5},
					{Text: "Very well - most of my actions are aligned", Value: 4},
					{Text: "Fairly well - I'm aligned more often than not", Value: 3},
					{Text: "Inconsistently - sometimes aligned, sometimes not", Value: 2},
					{Text: "Poorly - I often act against my values and vision", Value: 1},
				},
			},
			{
				ID: 11, Section: "alignment",
				Text: "How effectively do you balance pursuing ambitious goals with taking care of your physical and mental well-being?",
				Options: []Option{
					{Text: "Masterfully - I optimize both performance and well-being", Value: 5},
					{Text: "Well - I maintain good balance most of the time", Value: 4},
					{Text: "Adequately - I manage both but could improve", Value: 3},
					{Text: "Poorly - one often suffers for the other", Value: 2},
					{Text: "Terribly - I sacrifice well-being or neglect goals", Value: 1},
				},
			},
			{
				ID: 12, Section: "alignment",
				Text: "How satisfied are you with the integration of different life areas (career, relationships, health, personal growth)?",
				Options: []Option{
					{Text: "Extremely satisfied - everything flows together beautifully", Value: 5},
					{Text: "Very satisfied - most areas support each other", Value: 4},
					{Text: "Moderately satisfied - some areas work well together", Value: 3},
					{Text: "Somewhat unsatisfied - areas often conflict", Value: 2},
					{Text: "Very unsatisfied - different areas are completely disconnected", Value: 1},
				},
			},
			{
				ID: 13, Section: "community",
				Text: "How strong is your network of people who truly support your growth and hold you accountable to your highest potential?",
				Options: []Option{
					{Text: "Extremely strong - I have multiple mentors and growth partners", Value: 5},
					{Text: "Strong - I have several key people who support my growth", Value: 4},
					{Text: "Moderate - I have some supportive relationships", Value: 3},
					{Text: "Weak - I have few people who truly support my growth", Value: 2},
					{Text: "Very weak or non-existent - I'm mostly on my own", Value: 1},
				},
			},
			{
				ID: 14, Section: "community",
				Text: "How actively do you seek out and contribute to communities of like-minded individuals pursuing similar growth?",
				Options: []Option{
					{Text: "Very actively - I regularly engage and contribute to multiple communities", Value: 5},
					{Text: "Actively - I participate in communities and add value", Value: 4},
					{Text: "Moderately - I participate but could contribute more", Value: 3},
					{Text: "Passively - I consume more than I contribute", Value: 2},
					{Text: "Not at all - I avoid or don't seek out such communities", Value: 1},
				},
			},
			{
				ID: 15, Section: "community",
				Text: "How comfortable are you with asking for help, feedback, or guidance when you need it?",
				Options: []Option{
					{Text: "Extremely comfortable - I actively seek help and feedback", Value: 5},
					{Text: "Comfortable - I ask for help when I recognize the need", Value: 4},
					{Text: "Moderately comfortable - I ask sometimes but hesitate", Value: 3},
					{Text: "Uncomfortable - I struggle to ask even when I need help", Value: 2},
					{Text: "Very uncomfortable - I almost never ask for help", Value: 1},
				},
			},
		},
	}
	b.index()
	return b
}
