package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/huimingz/cz-oca-go/pkg/convention"
)

// NewInput returns the reader all prompts of one session should share.
// A terminal is returned unchanged so that line editing stays available.
func NewInput(r io.Reader) io.Reader {
	if isTerminal(r) {
		return r
	}
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func lineReader(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}

// readLine reads one line without its terminator. A final line without a
// newline is returned before io.EOF.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Ask prints message and reads a single line of input
func Ask(message string, input io.Reader, output io.Writer) (string, error) {
	bold := color.New(color.Bold)

	if isTerminal(input) && output == os.Stdout {
		_, _ = bold.Fprintf(output, "\n? %s\n", message)
		return readSingleLine()
	}

	if _, err := bold.Fprintf(output, "\n? %s\n> ", message); err != nil {
		return "", err
	}
	return readLine(lineReader(input))
}

func readSingleLine() (string, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "^D",
	})
	if err != nil {
		return readLine(lineReader(os.Stdin))
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) {
			return "", ErrInterrupted
		}
		return "", err
	}
	return line, nil
}

// AskQuestions runs specs in order and returns the normalized answers.
// A rejected answer prints the reason and asks the same question again.
func AskQuestions(specs []convention.FieldSpec, input io.Reader, output io.Writer) (convention.Answers, error) {
	input = NewInput(input)
	yellow := color.New(color.FgYellow)
	values := make(map[string]string, len(specs))

	for _, spec := range specs {
		for {
			raw, err := askField(spec, input, output)
			if err != nil {
				return convention.Answers{}, fmt.Errorf("reading %s: %w", spec.Name, err)
			}

			value, err := spec.Apply(raw)
			if err != nil {
				var ve *convention.ValidationError
				if errors.As(err, &ve) {
					if _, werr := yellow.Fprintf(output, "⚠️  %s\n", ve.Error()); werr != nil {
						return convention.Answers{}, werr
					}
					continue
				}
				return convention.Answers{}, err
			}

			values[spec.Name] = value
			break
		}
	}

	return convention.NewAnswers(values), nil
}

func askField(spec convention.FieldSpec, input io.Reader, output io.Writer) (string, error) {
	switch {
	case spec.Kind == convention.KindList:
		names := make([]string, len(spec.Choices))
		for i, c := range spec.Choices {
			names[i] = c.Name
		}
		idx, err := SelectOption(spec.Message, names, 0, input, output)
		if err != nil {
			return "", err
		}
		return spec.Choices[idx].Value, nil

	case spec.Multiline:
		prompt := &MultilinePrompt{
			Prompt: spec.Message,
			Hint:   "Finish with an empty line.",
		}
		text, err := prompt.Show(input, output)
		if errors.Is(err, ErrEmptyInput) || errors.Is(err, io.EOF) {
			return "", nil
		}
		return text, err

	default:
		return Ask(spec.Message, input, output)
	}
}
