package questionnaire

// QuestionType tags how a question is asked and what answer shape it takes.
type QuestionType string

const (
	TypeText         QuestionType = "text"
	TypeDate         QuestionType = "date"
	TypeSingleChoice QuestionType = "single_choice"
	TypeMultiSelect  QuestionType = "multi_select"
	TypeGroup        QuestionType = "group"
)

// Option is a bilingual option label. PT is the canonical label stored in
// answers; EN is display-only.
type Option struct {
	PT string `json:"pt"`
	EN string `json:"en"`
}

// Question is a single static questionnaire entry. Options is only set for
// choice, multi-select and group types; for group questions the options name
// the sub-fields.
type Question struct {
	ID       string       `json:"id"`
	PromptPT string       `json:"prompt_pt"`
	PromptEN string       `json:"prompt_en"`
	Type     QuestionType `json:"type"`
	Options  []Option     `json:"options,omitempty"`
}

// HasOption reports whether label is one of the question's option labels.
func (q Question) HasOption(label string) bool {
	for _, opt := range q.Options {
		if opt.PT == label {
			return true
		}
	}
	return false
}

// Set is an ordered, versioned collection of questions.
type Set struct {
	Version   string     `json:"version"`
	Questions []Question `json:"questions"`
}

// Len returns the number of questions in the set.
func (s *Set) Len() int { return len(s.Questions) }

// At returns the question at position i.
func (s *Set) At(i int) Question { return s.Questions[i] }

// Question returns the question with the given id.
func (s *Set) Question(id string) (Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
