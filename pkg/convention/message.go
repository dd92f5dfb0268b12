package convention

import "fmt"

// Answers holds one value per question
type Answers struct {
	Prefix  string `json:"prefix"`
	Module  string `json:"module"`
	Subject string `json:"subject"`
	Body    string `json:"body,omitempty"`
}

// NewAnswers builds Answers from a host answer map keyed by field name
func NewAnswers(m map[string]string) Answers {
	return Answers{
		Prefix:  m[FieldPrefix],
		Module:  m[FieldModule],
		Subject: m[FieldSubject],
		Body:    m[FieldBody],
	}
}

// Map returns the answers keyed by field name
func (a Answers) Map() map[string]string {
	return map[string]string{
		FieldPrefix:  a.Prefix,
		FieldModule:  a.Module,
		FieldSubject: a.Subject,
		FieldBody:    a.Body,
	}
}

// Normalize runs every question's normalizer and returns the normalized answers.
// The first failure is returned as a *ValidationError.
func (a Answers) Normalize(g *Grammar) (Answers, error) {
	raw := a.Map()
	out := make(map[string]string, len(raw))
	for _, q := range Questions(g) {
		v, err := q.Apply(raw[q.Name])
		if err != nil {
			return Answers{}, err
		}
		out[q.Name] = v
	}
	return NewAnswers(out), nil
}

// BuildMessage assembles the commit message. The answers are assumed to be
// normalized already.
func BuildMessage(a Answers) string {
	body := a.Body
	if body != "" {
		body = "\n\n" + body
	}
	return fmt.Sprintf("[%s] %s: %s%s", a.Prefix, a.Module, a.Subject, body)
}
