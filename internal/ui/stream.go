package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// ExecutionStats holds statistics about a draft run
type ExecutionStats struct {
	StartTime        time.Time
	EndTime          time.Time
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Duration returns the execution duration
func (s *ExecutionStats) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// StreamPrinterOption is a functional option for StreamPrinter
type StreamPrinterOption func(*StreamPrinter)

// WithColor enables or disables color output
func WithColor(enabled bool) StreamPrinterOption {
	return func(p *StreamPrinter) {
		p.colorEnabled = enabled
	}
}

// WithVerbose enables or disables verbose mode
func WithVerbose(verbose bool) StreamPrinterOption {
	return func(p *StreamPrinter) {
		p.verbose = verbose
	}
}

// StreamPrinter reports the progress of a draft while the LLM streams
type StreamPrinter struct {
	writer       io.Writer
	colorEnabled bool
	verbose      bool
}

// NewStreamPrinter creates a new StreamPrinter
func NewStreamPrinter(writer io.Writer, opts ...StreamPrinterOption) *StreamPrinter {
	p := &StreamPrinter{
		writer:       writer,
		colorEnabled: true,
		verbose:      false,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *StreamPrinter) printf(attr color.Attribute, format string, args ...interface{}) error {
	if p.colorEnabled {
		_, err := color.New(attr).Fprintf(p.writer, format, args...)
		return err
	}
	_, err := fmt.Fprintf(p.writer, format, args...)
	return err
}

// PrintToolCall prints the name of a tool the model is calling
func (p *StreamPrinter) PrintToolCall(name string) error {
	return p.printf(color.FgCyan, "\n🔧 Calling tool: %s\n", name)
}

// PrintStep prints a step in the process
func (p *StreamPrinter) PrintStep(step int, message string) error {
	return p.printf(color.FgBlue, "📋 Step %d: %s\n", step, message)
}

// PrintProgress prints a progress message
func (p *StreamPrinter) PrintProgress(message string) error {
	return p.printf(color.FgYellow, "⏳ %s\n", message)
}

// PrintInfo prints an info message
func (p *StreamPrinter) PrintInfo(message string) error {
	return p.printf(color.FgCyan, "ℹ️  %s\n", message)
}

// PrintSuccess prints a success message
func (p *StreamPrinter) PrintSuccess(message string) error {
	return p.printf(color.FgGreen, "✅ %s\n", message)
}

// Flusher is an interface for writers that support flushing
type Flusher interface {
	Flush() error
}

// PrintLLMContent prints streamed model text and flushes the writer when it
// supports it
func (p *StreamPrinter) PrintLLMContent(content string) error {
	err := p.printf(color.FgWhite, "%s", content)

	if f, ok := p.writer.(Flusher); ok {
		_ = f.Flush()
	}

	return err
}

// PrintStats prints token usage and duration. The token breakdown is only
// shown in verbose mode.
func (p *StreamPrinter) PrintStats(stats *ExecutionStats) error {
	if stats == nil {
		return nil
	}

	duration := formatDuration(stats.Duration())
	if p.verbose {
		return p.printf(color.FgHiBlack, "\n📊 Stats: %d tokens (prompt: %d, completion: %d) | Time: %s\n",
			stats.TotalTokens, stats.PromptTokens, stats.CompletionTokens, duration)
	}
	return p.printf(color.FgHiBlack, "\n📊 Stats: %d tokens | Time: %s\n", stats.TotalTokens, duration)
}

// Newline prints a newline
func (p *StreamPrinter) Newline() error {
	_, err := fmt.Fprintln(p.writer)
	return err
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
