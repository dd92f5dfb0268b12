package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huimingz/cz-oca-go/pkg/convention"
)

func TestAskQuestions(t *testing.T) {
	specs := convention.Questions(convention.MustGrammar())

	t.Run("full answer set", func(t *testing.T) {
		input := strings.NewReader("2\nsale\nadd margin on lines\nfirst line\n  second line  \n\n")
		output := &bytes.Buffer{}

		answers, err := AskQuestions(specs, input, output)
		require.NoError(t, err)
		assert.Equal(t, convention.Answers{
			Prefix:  "IMP",
			Module:  "sale",
			Subject: "add margin on lines",
			Body:    "first line\nsecond line",
		}, answers)

		out := output.String()
		assert.Contains(t, out, "Select the type of change you are committing")
		assert.Contains(t, out, "Module modified")
	})

	t.Run("default type and skipped body", func(t *testing.T) {
		input := strings.NewReader("\nbase\ncorrect minor typos in code\n\n")
		output := &bytes.Buffer{}

		answers, err := AskQuestions(specs, input, output)
		require.NoError(t, err)
		assert.Equal(t, "FIX", answers.Prefix)
		assert.Empty(t, answers.Body)
		assert.Equal(t, "[FIX] base: correct minor typos in code", convention.BuildMessage(answers))
	})

	t.Run("rejected answer is asked again", func(t *testing.T) {
		input := strings.NewReader("1\n   \nstock\nfix rounding\n\n")
		output := &bytes.Buffer{}

		answers, err := AskQuestions(specs, input, output)
		require.NoError(t, err)
		assert.Equal(t, "stock", answers.Module)
		assert.Contains(t, output.String(), "module: a value is required")
		assert.Equal(t, 2, strings.Count(output.String(), "Module modified"))
	})

	t.Run("input ends early", func(t *testing.T) {
		input := strings.NewReader("1\n")
		output := &bytes.Buffer{}

		_, err := AskQuestions(specs, input, output)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading module")
	})
}
