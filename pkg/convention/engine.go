package convention

// Convention is the contract a commit tooling host uses to drive a commit
// message convention.
type Convention interface {
	Name() string
	ListChangeTypes() []Choice
	QuestionSpecs() []FieldSpec
	BuildMessage(a Answers) string
	Schema() string
	Example() string
	HelpText() string
	RecognitionPattern() string
	Parse(raw string) (string, bool)
	EnrichChangelogEntry(entry *ChangelogEntry, revision string) *ChangelogEntry
}

// Engine implements Convention for the OCA format
type Engine struct {
	grammar *Grammar
}

var _ Convention = (*Engine)(nil)

// NewEngine creates an Engine over g
func NewEngine(g *Grammar) *Engine {
	return &Engine{grammar: g}
}

// Grammar returns the grammar the engine was built with
func (e *Engine) Grammar() *Grammar {
	return e.grammar
}

// Name returns the convention name
func (e *Engine) Name() string {
	return "cz_oca"
}

// ListChangeTypes returns the change types as prompt choices
func (e *Engine) ListChangeTypes() []Choice {
	types := e.grammar.ChangeTypes()
	out := make([]Choice, len(types))
	for i, t := range types {
		out[i] = Choice{Value: t.Code(), Name: t.Label()}
	}
	return out
}

// QuestionSpecs returns the ordered questions
func (e *Engine) QuestionSpecs() []FieldSpec {
	return Questions(e.grammar)
}

// BuildMessage assembles a commit message from normalized answers
func (e *Engine) BuildMessage(a Answers) string {
	return BuildMessage(a)
}

// Schema returns the abstract format description
func (e *Engine) Schema() string {
	return e.grammar.Schema()
}

// Example returns a canonical conforming message
func (e *Engine) Example() string {
	return e.grammar.Example()
}

// HelpText returns the help resource
func (e *Engine) HelpText() string {
	return e.grammar.HelpText()
}

// RecognitionPattern returns the pattern conforming messages match
func (e *Engine) RecognitionPattern() string {
	return e.grammar.Pattern()
}

// Parse returns the subject of a conforming message, or false
func (e *Engine) Parse(raw string) (string, bool) {
	return e.grammar.Parse(raw)
}

// EnrichChangelogEntry appends the short revision to the entry message
func (e *Engine) EnrichChangelogEntry(entry *ChangelogEntry, revision string) *ChangelogEntry {
	return EnrichChangelogEntry(entry, revision)
}
