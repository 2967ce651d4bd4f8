package questionnaire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AnswerKind tags the representation of a collected answer.
type AnswerKind string

const (
	KindText   AnswerKind = "text"
	KindDate   AnswerKind = "date"
	KindChoice AnswerKind = "choice"
	KindMulti  AnswerKind = "multi"
	KindGroup  AnswerKind = "group"
)

// Answer is a tagged union over the answer shapes a question can take:
// a scalar (text, date, selected choice label), a list of selected option
// labels, or a map from sub-field label to free text. The JSON encoding is
// the bare shape, without the tag.
type Answer struct {
	Kind   AnswerKind
	Text   string
	Labels []string
	Fields map[string]string
}

func TextAnswer(text string) Answer   { return Answer{Kind: KindText, Text: text} }
func DateAnswer(date string) Answer   { return Answer{Kind: KindDate, Text: date} }
func ChoiceAnswer(label string) Answer { return Answer{Kind: KindChoice, Text: label} }

func MultiAnswer(labels ...string) Answer {
	return Answer{Kind: KindMulti, Labels: append([]string(nil), labels...)}
}

func GroupAnswer(fields map[string]string) Answer {
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return Answer{Kind: KindGroup, Fields: copied}
}

func (a Answer) scalar() bool {
	return a.Kind == KindText || a.Kind == KindDate || a.Kind == KindChoice
}

// Matches reports whether the answer shape is valid for the question type.
func (a Answer) Matches(q Question) bool {
	switch q.Type {
	case TypeText, TypeDate, TypeSingleChoice:
		return a.scalar()
	case TypeMultiSelect:
		return a.Kind == KindMulti
	case TypeGroup:
		return a.Kind == KindGroup
	default:
		return false
	}
}

// HasLabel reports whether a multi-select answer contains the label.
func (a Answer) HasLabel(label string) bool {
	for _, l := range a.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// Toggle returns the answer with the label's membership flipped. Removal
// filters by inequality; addition appends, so label order reflects selection
// order.
func (a Answer) Toggle(label string) Answer {
	if a.Kind != KindMulti {
		a = MultiAnswer()
	}
	if a.HasLabel(label) {
		kept := make([]string, 0, len(a.Labels))
		for _, l := range a.Labels {
			if l != label {
				kept = append(kept, l)
			}
		}
		return Answer{Kind: KindMulti, Labels: kept}
	}
	return Answer{Kind: KindMulti, Labels: append(append([]string(nil), a.Labels...), label)}
}

// Merge returns the group answer with the given sub-fields merged in,
// preserving sub-fields not mentioned.
func (a Answer) Merge(fields map[string]string) Answer {
	merged := make(map[string]string, len(a.Fields)+len(fields))
	for k, v := range a.Fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return Answer{Kind: KindGroup, Fields: merged}
}

// MarshalJSON encodes the bare answer shape.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case KindText, KindDate, KindChoice:
		return json.Marshal(a.Text)
	case KindMulti:
		if a.Labels == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.Labels)
	case KindGroup:
		if a.Fields == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(a.Fields)
	default:
		return nil, fmt.Errorf("unknown answer kind %q", a.Kind)
	}
}

// UnmarshalJSON decodes an answer from its bare shape. Scalars decode as
// KindText; the precise scalar kind is only known against a question set.
func (a *Answer) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty answer")
	}
	switch trimmed[0] {
	case '"':
		a.Kind = KindText
		a.Labels = nil
		a.Fields = nil
		return json.Unmarshal(trimmed, &a.Text)
	case '[':
		a.Kind = KindMulti
		a.Text = ""
		a.Fields = nil
		a.Labels = []string{}
		return json.Unmarshal(trimmed, &a.Labels)
	case '{':
		a.Kind = KindGroup
		a.Text = ""
		a.Labels = nil
		a.Fields = map[string]string{}
		return json.Unmarshal(trimmed, &a.Fields)
	default:
		return fmt.Errorf("unsupported answer shape: %s", string(trimmed))
	}
}

// AnswerSet maps question id to collected answer.
type AnswerSet map[string]Answer

// Normalize checks every answer against the set's declared question types and
// assigns the precise scalar kind. Answers for unknown question ids and
// partial submissions are accepted unchanged.
func (as AnswerSet) Normalize(set *Set) error {
	for id, ans := range as {
		q, ok := set.Question(id)
		if !ok {
			continue
		}
		if !ans.Matches(q) {
			return fmt.Errorf("answer for question %s does not match type %s", id, q.Type)
		}
		switch q.Type {
		case TypeDate:
			ans.Kind = KindDate
		case TypeSingleChoice:
			ans.Kind = KindChoice
		case TypeText:
			ans.Kind = KindText
		}
		as[id] = ans
	}
	return nil
}

// Clone returns a deep copy of the answer set.
func (as AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(as))
	for id, ans := range as {
		copied := ans
		if ans.Labels != nil {
			copied.Labels = append([]string(nil), ans.Labels...)
		}
		if ans.Fields != nil {
			copied.Fields = make(map[string]string, len(ans.Fields))
			for k, v := range ans.Fields {
				copied.Fields[k] = v
			}
		}
		out[id] = copied
	}
	return out
}
