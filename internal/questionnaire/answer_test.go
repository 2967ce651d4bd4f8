package questionnaire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerToggle(t *testing.T) {
	ans := MultiAnswer()

	ans = ans.Toggle("Alimentar")
	ans = ans.Toggle("Ambiental")
	assert.Equal(t, []string{"Alimentar", "Ambiental"}, ans.Labels)

	ans = ans.Toggle("Alimentar")
	assert.Equal(t, []string{"Ambiental"}, ans.Labels)

	ans = ans.Toggle("Alimentar")
	assert.Equal(t, []string{"Ambiental", "Alimentar"}, ans.Labels)
}

func TestAnswerToggleOnNonMulti(t *testing.T) {
	ans := TextAnswer("hello").Toggle("Sim")
	assert.Equal(t, KindMulti, ans.Kind)
	assert.Equal(t, []string{"Sim"}, ans.Labels)
}

func TestAnswerMergePreservesFields(t *testing.T) {
	ans := GroupAnswer(map[string]string{"Nome(s)": "Maria", "Telefone": "123"})
	ans = ans.Merge(map[string]string{"Telefone": "456", "Email": "m@x.org"})

	assert.Equal(t, map[string]string{
		"Nome(s)":  "Maria",
		"Telefone": "456",
		"Email":    "m@x.org",
	}, ans.Fields)
}

func TestAnswerJSONShapes(t *testing.T) {
	tests := []struct {
		name string
		ans  Answer
		want string
	}{
		{"text", TextAnswer("free text"), `"free text"`},
		{"choice", ChoiceAnswer("Sim"), `"Sim"`},
		{"multi", MultiAnswer("Alimentar", "Ambiental"), `["Alimentar","Ambiental"]`},
		{"empty multi", MultiAnswer(), `[]`},
		{"group", GroupAnswer(map[string]string{"Email": "a@b.c"}), `{"Email":"a@b.c"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.ans)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestAnswerUnmarshalSniffsShape(t *testing.T) {
	var ans Answer

	require.NoError(t, json.Unmarshal([]byte(`"Sim"`), &ans))
	assert.Equal(t, KindText, ans.Kind)
	assert.Equal(t, "Sim", ans.Text)

	require.NoError(t, json.Unmarshal([]byte(`["Alimentar"]`), &ans))
	assert.Equal(t, KindMulti, ans.Kind)
	assert.Equal(t, []string{"Alimentar"}, ans.Labels)
	assert.Empty(t, ans.Text)

	require.NoError(t, json.Unmarshal([]byte(`{"Email":"a@b.c"}`), &ans))
	assert.Equal(t, KindGroup, ans.Kind)
	assert.Equal(t, map[string]string{"Email": "a@b.c"}, ans.Fields)
	assert.Nil(t, ans.Labels)

	assert.Error(t, json.Unmarshal([]byte(`42`), &ans))
}

func TestAnswerSetNormalize(t *testing.T) {
	set, err := GetSet(VersionV1)
	require.NoError(t, err)

	answers := AnswerSet{
		"5":  TextAnswer("Sim"),
		"12": MultiAnswer("Alimentar"),
		"99": TextAnswer("ignored, unknown question"),
	}
	require.NoError(t, answers.Normalize(set))

	assert.Equal(t, KindChoice, answers["5"].Kind)
	assert.Equal(t, KindMulti, answers["12"].Kind)
	assert.Equal(t, KindText, answers["99"].Kind)
}

func TestAnswerSetNormalizeRejectsShapeMismatch(t *testing.T) {
	set, err := GetSet(VersionV1)
	require.NoError(t, err)

	answers := AnswerSet{"12": TextAnswer("Alimentar")}
	assert.Error(t, answers.Normalize(set))
}

func TestAnswerSetClone(t *testing.T) {
	orig := AnswerSet{
		"12": MultiAnswer("Alimentar"),
		"1":  GroupAnswer(map[string]string{"Nome(s)": "Maria"}),
	}
	clone := orig.Clone()

	clone["12"].Labels[0] = "mutated"
	clone["1"].Fields["Nome(s)"] = "mutated"

	assert.Equal(t, "Alimentar", orig["12"].Labels[0])
	assert.Equal(t, "Maria", orig["1"].Fields["Nome(s)"])
}
