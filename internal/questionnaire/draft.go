package questionnaire

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AnswerInput carries one answer interaction for the draft's current
// question. Exactly one of the fields applies, depending on the question
// type: Text for text and date questions, Label for choice and multi-select
// questions, Fields for group questions.
type AnswerInput struct {
	Text   *string           `json:"text,omitempty"`
	Label  *string           `json:"label,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Draft is an in-progress questionnaire walk for one patient. The caller
// advances one question at a time and answers accumulate until Save or
// Cancel; cancelling discards everything.
type Draft struct {
	ID        uuid.UUID `json:"id"`
	PatientID uuid.UUID `json:"patient_id"`
	Version   string    `json:"version"`
	StartedBy uuid.UUID `json:"started_by"`
	StartedAt time.Time `json:"started_at"`

	mu      sync.Mutex
	index   int
	answers AnswerSet
}

// NewDraft starts a draft at the first question of the given version.
func NewDraft(patientID, startedBy uuid.UUID, version string) (*Draft, error) {
	if _, err := GetSet(version); err != nil {
		return nil, err
	}
	return &Draft{
		ID:        uuid.New(),
		PatientID: patientID,
		Version:   version,
		StartedBy: startedBy,
		StartedAt: time.Now(),
		answers:   AnswerSet{},
	}, nil
}

// Index returns the current question position.
func (d *Draft) Index() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.index
}

// Current returns the question at the draft's position.
func (d *Draft) Current() (Question, error) {
	set, err := GetSet(d.Version)
	if err != nil {
		return Question{}, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return set.At(d.index), nil
}

// AtEnd reports whether the draft is positioned on the last question; Save is
// only valid there.
func (d *Draft) AtEnd() bool {
	set, err := GetSet(d.Version)
	if err != nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.index == set.Len()-1
}

// Next advances one question, clamped at the last index.
func (d *Draft) Next() {
	set, err := GetSet(d.Version)
	if err != nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.index+1 < set.Len() {
		d.index++
	}
}

// Previous steps back one question, clamped at zero.
func (d *Draft) Previous() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.index > 0 {
		d.index--
	}
}

// Apply records an answer interaction against the current question.
// Scalar answers overwrite, choice selections replace, multi-select labels
// toggle, group fields merge.
func (d *Draft) Apply(input AnswerInput) error {
	set, err := GetSet(d.Version)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	q := set.At(d.index)
	switch q.Type {
	case TypeText:
		if input.Text == nil {
			return fmt.Errorf("question %s expects a text value", q.ID)
		}
		d.answers[q.ID] = TextAnswer(*input.Text)
	case TypeDate:
		if input.Text == nil {
			return fmt.Errorf("question %s expects a date value", q.ID)
		}
		d.answers[q.ID] = DateAnswer(*input.Text)
	case TypeSingleChoice:
		if input.Label == nil {
			return fmt.Errorf("question %s expects an option label", q.ID)
		}
		if !q.HasOption(*input.Label) {
			return fmt.Errorf("question %s has no option %q", q.ID, *input.Label)
		}
		d.answers[q.ID] = ChoiceAnswer(*input.Label)
	case TypeMultiSelect:
		if input.Label == nil {
			return fmt.Errorf("question %s expects an option label", q.ID)
		}
		if !q.HasOption(*input.Label) {
			return fmt.Errorf("question %s has no option %q", q.ID, *input.Label)
		}
		d.answers[q.ID] = d.answers[q.ID].Toggle(*input.Label)
	case TypeGroup:
		if len(input.Fields) == 0 {
			return fmt.Errorf("question %s expects sub-field values", q.ID)
		}
		for label := range input.Fields {
			if !q.HasOption(label) {
				return fmt.Errorf("question %s has no sub-field %q", q.ID, label)
			}
		}
		d.answers[q.ID] = d.answers[q.ID].Merge(input.Fields)
	default:
		return fmt.Errorf("unknown question type %q", q.Type)
	}
	return nil
}

// Answer returns the collected answer for a question id.
func (d *Draft) Answer(questionID string) (Answer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ans, ok := d.answers[questionID]
	return ans, ok
}

// Answers returns a copy of everything collected so far.
func (d *Draft) Answers() AnswerSet {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.answers.Clone()
}
