package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	// ErrEmptyInput is returned when the user provides no input
	ErrEmptyInput = errors.New("empty input")

	// ErrInterrupted is returned when the user interrupts input with Ctrl+C
	ErrInterrupted = errors.New("input interrupted")

	// ErrTimeout is returned when input times out
	ErrTimeout = errors.New("input timeout")
)

// MultilinePrompt represents a multi-line input prompt with hints and examples
type MultilinePrompt struct {
	Prompt   string   // The main prompt message
	Hint     string   // Hint text shown to help users
	Examples []string // Example inputs to show users
}

// Show displays the prompt and collects multi-line input from the user
// Input is terminated by an empty line, Ctrl+D (EOF) or Ctrl+C (interrupt)
func (p *MultilinePrompt) Show(input io.Reader, output io.Writer) (string, error) {
	return p.ShowWithContext(context.Background(), input, output)
}

// ShowWithContext displays the prompt with context support for cancellation and timeout
func (p *MultilinePrompt) ShowWithContext(ctx context.Context, input io.Reader, output io.Writer) (string, error) {
	if err := ctxErr(ctx); err != nil {
		return "", err
	}

	if err := p.displayPrompt(output); err != nil {
		return "", err
	}

	if isTerminal(input) && output == os.Stdout {
		return p.readWithReadline(ctx)
	}

	if input == os.Stdin {
		return p.readWithSignalHandling(ctx, input, output)
	}

	return p.readInput(ctx, input)
}

func ctxErr(ctx context.Context) error {
	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.Canceled) {
			return ErrInterrupted
		}
		return ErrTimeout
	default:
		return nil
	}
}

// displayPrompt shows the prompt, hint, and examples
func (p *MultilinePrompt) displayPrompt(output io.Writer) error {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	dim := color.New(color.FgHiBlack)
	green := color.New(color.FgGreen)

	_, err := bold.Fprintf(output, "\n? %s\n", p.Prompt)
	if err != nil {
		return err
	}

	if p.Hint != "" {
		_, err = dim.Fprintf(output, "  %s\n", p.Hint)
		if err != nil {
			return err
		}
	}

	if len(p.Examples) > 0 {
		_, err = cyan.Fprintln(output, "\n  Examples:")
		if err != nil {
			return err
		}

		for _, example := range p.Examples {
			_, err = green.Fprintf(output, "  • %s\n", example)
			if err != nil {
				return err
			}
		}
	}

	_, err = fmt.Fprint(output, "> ")
	return err
}

// readWithSignalHandling reads input with support for Ctrl+C interruption
func (p *MultilinePrompt) readWithSignalHandling(ctx context.Context, input io.Reader, output io.Writer) (string, error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	resultChan := make(chan inputResult, 1)

	go func() {
		result, err := p.readInput(context.Background(), input)
		resultChan <- inputResult{result: result, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrTimeout
	case <-sigChan:
		_, _ = fmt.Fprintln(output, "\n\nInput cancelled.")
		return "", ErrInterrupted
	case result := <-resultChan:
		return result.result, result.err
	}
}

// inputResult holds the result from reading input
type inputResult struct {
	result string
	err    error
}

// collector accumulates lines until an empty line or Ctrl+D
type collector struct {
	lines []string
	seen  bool
}

// add records line and reports whether input is complete
func (c *collector) add(line string) bool {
	c.seen = true
	if before, _, found := strings.Cut(line, "\x04"); found {
		if before != "" {
			c.lines = append(c.lines, before)
		}
		return true
	}
	if strings.TrimSpace(line) == "" {
		return true
	}
	c.lines = append(c.lines, line)
	return false
}

func (c *collector) result() (string, error) {
	result := strings.Join(c.lines, "\n")
	if strings.TrimSpace(result) == "" {
		if c.seen {
			return "", ErrEmptyInput
		}
		return "", io.EOF
	}
	return result, nil
}

// readInput reads lines until an empty line or EOF (Ctrl+D)
func (p *MultilinePrompt) readInput(ctx context.Context, input io.Reader) (string, error) {
	reader := lineReader(input)
	var c collector

	for {
		if err := ctxErr(ctx); err != nil {
			return "", err
		}

		line, err := readLine(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}

		if c.add(line) {
			break
		}
	}

	return c.result()
}

// readWithReadline uses readline for line editing and history on a terminal
func (p *MultilinePrompt) readWithReadline(ctx context.Context) (string, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "^D",
	})
	if err != nil {
		return p.readInput(ctx, os.Stdin)
	}
	defer rl.Close()

	var c collector

	for {
		if err := ctxErr(ctx); err != nil {
			return "", err
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				fmt.Println("\nInput cancelled.")
				return "", ErrInterrupted
			} else if errors.Is(err, io.EOF) {
				break
			}
			return "", err
		}

		if c.add(line) {
			break
		}
	}

	return c.result()
}
