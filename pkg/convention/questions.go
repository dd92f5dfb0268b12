package convention

import (
	"errors"
	"strings"
)

// FieldKind is the input kind of a question
type FieldKind string

const (
	// KindList asks the user to pick one of the choices
	KindList FieldKind = "list"
	// KindInput asks for free text
	KindInput FieldKind = "input"
)

// Field names of the answer set
const (
	FieldPrefix  = "prefix"
	FieldModule  = "module"
	FieldSubject = "subject"
	FieldBody    = "body"
)

// Choice is one selectable value of a list question
type Choice struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

// Normalizer turns raw input into the stored answer or rejects it with a *ValidationError
type Normalizer func(string) (string, error)

// FieldSpec describes one question. Hosts own the collection loop.
type FieldSpec struct {
	Name      string
	Kind      FieldKind
	Message   string
	Choices   []Choice
	Multiline bool
	Normalize Normalizer
}

// Apply runs the normalizer, tagging validation failures with the field name
func (f FieldSpec) Apply(raw string) (string, error) {
	if f.Normalize == nil {
		return raw, nil
	}
	v, err := f.Normalize(raw)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) && ve.Field == "" {
			return "", &ValidationError{Field: f.Name, Message: ve.Message}
		}
		return "", err
	}
	return v, nil
}

// Questions returns the ordered questions for g
func Questions(g *Grammar) []FieldSpec {
	types := g.ChangeTypes()
	choices := make([]Choice, len(types))
	for i, t := range types {
		choices[i] = Choice{Value: t.Code(), Name: t.Label()}
	}

	return []FieldSpec{
		{
			Name:      FieldPrefix,
			Kind:      KindList,
			Message:   "Select the type of change you are committing",
			Choices:   choices,
			Normalize: changeTypeNormalizer(g),
		},
		{
			Name:      FieldModule,
			Kind:      KindInput,
			Message:   "Module modified",
			Normalize: Required,
		},
		{
			Name:      FieldSubject,
			Kind:      KindInput,
			Message:   "Write a short and imperative summary of the code changes: (lower case and no period)",
			Normalize: Required,
		},
		{
			Name:      FieldBody,
			Kind:      KindInput,
			Message:   "Provide additional contextual information about the code changes: (press [enter] to skip)",
			Multiline: true,
			Normalize: MultiLineJoin,
		},
	}
}

// Required trims the input and rejects it when nothing is left
func Required(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", &ValidationError{Message: "a value is required"}
	}
	return v, nil
}

// MultiLineJoin trims every line, drops the empty ones and joins the rest
// with a line break. An empty result is valid.
func MultiLineJoin(value string) (string, error) {
	var lines []string
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func changeTypeNormalizer(g *Grammar) Normalizer {
	return func(value string) (string, error) {
		c, err := ParseChangeType(value)
		if err != nil {
			return "", &ValidationError{Message: err.Error()}
		}
		for _, t := range g.types {
			if t == c {
				return c.Code(), nil
			}
		}
		return "", &ValidationError{Message: "unsupported change type: " + c.Code()}
	}
}
