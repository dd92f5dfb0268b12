package ui

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// ErrNoOptions is returned by SelectOption when there is nothing to choose from
var ErrNoOptions = errors.New("no options to select from")

// Confirm asks the user for a yes/no confirmation
// Default is no (returns false on empty input)
func Confirm(message string, input io.Reader, output io.Writer) (bool, error) {
	return ConfirmWithDefault(message, false, input, output)
}

// ConfirmWithDefault asks the user for a yes/no confirmation with a specified default
func ConfirmWithDefault(message string, defaultYes bool, input io.Reader, output io.Writer) (bool, error) {
	reader := lineReader(input)

	var prompt string
	if defaultYes {
		prompt = fmt.Sprintf("%s [Y/n]: ", message)
	} else {
		prompt = fmt.Sprintf("%s [y/N]: ", message)
	}

	for {
		_, err := fmt.Fprint(output, prompt)
		if err != nil {
			return false, err
		}

		line, err := readLine(reader)
		if err != nil {
			return false, err
		}

		response := strings.TrimSpace(strings.ToLower(line))

		switch response {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			_, err := fmt.Fprintln(output, "Please enter 'y' or 'n'")
			if err != nil {
				return false, err
			}
		}
	}
}

// SelectOption shows a numbered list and returns the zero-based index picked.
// Empty input picks defaultIndex; an out of range default falls back to the first option.
func SelectOption(message string, options []string, defaultIndex int, input io.Reader, output io.Writer) (int, error) {
	if len(options) == 0 {
		return -1, ErrNoOptions
	}
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}

	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	dim := color.New(color.FgHiBlack)

	if _, err := bold.Fprintf(output, "\n? %s\n", message); err != nil {
		return -1, err
	}
	for i, option := range options {
		marker := " "
		if i == defaultIndex {
			marker = "»"
		}
		if _, err := cyan.Fprintf(output, " %s %2d) ", marker, i+1); err != nil {
			return -1, err
		}
		if _, err := fmt.Fprintln(output, option); err != nil {
			return -1, err
		}
	}

	reader := lineReader(input)
	for {
		if _, err := dim.Fprintf(output, "Enter a number [%d]: ", defaultIndex+1); err != nil {
			return -1, err
		}

		line, err := readLine(reader)
		if err != nil {
			return -1, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			return defaultIndex, nil
		}

		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}

		if _, err := fmt.Fprintf(output, "Please enter a number between 1 and %d\n", len(options)); err != nil {
			return -1, err
		}
	}
}

// ShowCommitMessage displays a formatted commit message
func ShowCommitMessage(message string, output io.Writer) error {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	_, err := bold.Fprintln(output, "\n📝 Commit Message:")
	if err != nil {
		return err
	}

	_, err = cyan.Fprintln(output, "─────────────────────────────")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(output, message)
	if err != nil {
		return err
	}

	_, err = cyan.Fprintln(output, "─────────────────────────────")
	return err
}
