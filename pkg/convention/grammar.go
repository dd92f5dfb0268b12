package convention

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

//go:embed info.txt
var embeddedInfo string

const (
	schema = "[<type>] <module>: <subject>\n" +
		"<BLANK LINE>\n" +
		"<body>\n" +
		"<BLANK LINE>\n"

	example = "[FIX] base: correct minor typos in code\n" +
		"\n" +
		"see the issue for details on the typos fixed\n" +
		"\n" +
		"closes issue #12"
)

// Names of the capture groups in the recognition pattern
const (
	GroupPrefix  = "prefix"
	GroupModule  = "module"
	GroupSubject = "subject"
)

// Grammar is the single source of truth for the message format. It is built
// once and shared read-only.
type Grammar struct {
	types     []ChangeType
	pattern   *regexp.Regexp
	changelog *regexp.Regexp
	helpText  string
}

// GrammarOption configures NewGrammar
type GrammarOption func(*grammarOptions)

type grammarOptions struct {
	helpFile string
	helpText *string
}

// WithHelpFile loads the help text from a file instead of the embedded resource
func WithHelpFile(path string) GrammarOption {
	return func(o *grammarOptions) {
		o.helpFile = path
	}
}

// WithHelpText sets the help text directly
func WithHelpText(text string) GrammarOption {
	return func(o *grammarOptions) {
		o.helpText = &text
	}
}

// NewGrammar builds the grammar. A help file that cannot be read yields a
// *ConfigurationError.
func NewGrammar(opts ...GrammarOption) (*Grammar, error) {
	var o grammarOptions
	for _, opt := range opts {
		opt(&o)
	}

	help := embeddedInfo
	switch {
	case o.helpText != nil:
		help = *o.helpText
	case o.helpFile != "":
		text, err := readHelpFile(o.helpFile)
		if err != nil {
			return nil, &ConfigurationError{Resource: o.helpFile, Err: err}
		}
		help = text
	}

	types := ChangeTypes()
	codes := make([]string, len(types))
	for i, t := range types {
		codes[i] = regexp.QuoteMeta(t.Code())
	}
	alternation := strings.Join(codes, "|")

	return &Grammar{
		types: types,
		pattern: regexp.MustCompile(fmt.Sprintf(
			`^\[(?P<%s>%s)\] (?P<%s>[^\n]+?):[ \t]+(?P<%s>[^\n]*)`,
			GroupPrefix, alternation, GroupModule, GroupSubject,
		)),
		changelog: regexp.MustCompile(`^\[(` + alternation + `)\]`),
		helpText:  help,
	}, nil
}

// MustGrammar is NewGrammar with the embedded help text; it cannot fail.
func MustGrammar() *Grammar {
	g, err := NewGrammar()
	if err != nil {
		panic(err)
	}
	return g
}

func readHelpFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ChangeTypes returns the change types this grammar recognizes
func (g *Grammar) ChangeTypes() []ChangeType {
	out := make([]ChangeType, len(g.types))
	copy(out, g.types)
	return out
}

// Schema returns the abstract description of the format
func (g *Grammar) Schema() string {
	return schema
}

// Example returns a canonical conforming message
func (g *Grammar) Example() string {
	return example
}

// Pattern returns the recognition pattern in RE2 syntax
func (g *Grammar) Pattern() string {
	return g.pattern.String()
}

// ChangelogPattern returns the pattern selecting commits that belong in a changelog
func (g *Grammar) ChangelogPattern() string {
	return g.changelog.String()
}

// HelpText returns the help resource verbatim
func (g *Grammar) HelpText() string {
	return g.helpText
}
