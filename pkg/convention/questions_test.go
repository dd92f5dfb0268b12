package convention

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestions_Order(t *testing.T) {
	qs := Questions(MustGrammar())
	require.Len(t, qs, 4)

	names := make([]string, len(qs))
	for i, q := range qs {
		names[i] = q.Name
	}
	assert.Equal(t, []string{FieldPrefix, FieldModule, FieldSubject, FieldBody}, names)

	assert.Equal(t, KindList, qs[0].Kind)
	assert.Equal(t, KindInput, qs[1].Kind)
	assert.True(t, qs[3].Multiline)
}

func TestQuestions_PrefixChoices(t *testing.T) {
	qs := Questions(MustGrammar())
	choices := qs[0].Choices
	require.Len(t, choices, 5)
	assert.Equal(t, Choice{Value: "FIX", Name: "fix: A bug fix."}, choices[0])
	assert.Equal(t, "IMP", choices[1].Value)
	assert.Equal(t, "REF", choices[2].Value)
	assert.Equal(t, "MIG", choices[3].Value)
	assert.Equal(t, "OU", choices[4].Value)
}

func TestRequired(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: " \t \n", wantErr: true},
		{name: "padded", input: "  hello  ", want: "hello"},
		{name: "plain", input: "base", want: "base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Required(tt.input)
			if tt.wantErr {
				var ve *ValidationError
				require.True(t, errors.As(err, &ve))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMultiLineJoin(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "only blank lines", input: "\n  \n", want: ""},
		{name: "single line", input: "closes issue #12", want: "closes issue #12"},
		{name: "drops blank lines", input: "line one\n\n  line two  \n", want: "line one\nline two"},
		{name: "whitespace-only line between", input: "a\n   \nb", want: "a\nb"},
		{name: "tab-only line", input: "a\n\t\nb", want: "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MultiLineJoin(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFieldSpec_ApplyTagsField(t *testing.T) {
	qs := Questions(MustGrammar())

	_, err := qs[1].Apply("   ")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, FieldModule, ve.Field)
	assert.Contains(t, err.Error(), "module:")
}

func TestFieldSpec_PrefixNormalizer(t *testing.T) {
	prefix := Questions(MustGrammar())[0]

	got, err := prefix.Apply("improvement")
	require.NoError(t, err)
	assert.Equal(t, "IMP", got)

	_, err = prefix.Apply("FEAT")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, FieldPrefix, ve.Field)
}
