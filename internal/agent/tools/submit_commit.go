package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/huimingz/cz-oca-go/pkg/convention"
)

// SubmitCommitName is the name the model calls the tool by
const SubmitCommitName = "submit_commit"

// SubmitCommitParams represents the parameters for the submit_commit tool
// This tool is used by LLM to submit the answers of the commit questions
type SubmitCommitParams struct {
	// Prefix is the change type code (required)
	Prefix string `json:"prefix"`

	// Module is the technical name of the module changed (required)
	Module string `json:"module"`

	// Subject is the short imperative summary (required)
	Subject string `json:"subject"`

	// Body is the additional context (optional, may span lines)
	Body string `json:"body,omitempty"`
}

// ParseSubmitCommitArgs decodes the JSON arguments of a tool call
func ParseSubmitCommitArgs(args string) (*SubmitCommitParams, error) {
	var p SubmitCommitParams
	if err := json.Unmarshal([]byte(args), &p); err != nil {
		return nil, fmt.Errorf("invalid submit_commit arguments: %w", err)
	}
	return &p, nil
}

// Answers returns the params as a raw answer set
func (p *SubmitCommitParams) Answers() convention.Answers {
	return convention.Answers{
		Prefix:  p.Prefix,
		Module:  p.Module,
		Subject: p.Subject,
		Body:    p.Body,
	}
}

// Normalize runs the question normalizers of g over the params
func (p *SubmitCommitParams) Normalize(g *convention.Grammar) (convention.Answers, error) {
	return p.Answers().Normalize(g)
}

// SubmitCommitToolInfo describes the tool to the chat model
func SubmitCommitToolInfo(g *convention.Grammar) *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: SubmitCommitName,
		Desc: "Submit the answers of the commit questions. The message is assembled as " + g.Schema(),
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"prefix": {
				Type:     schema.String,
				Desc:     "Change type code. One of: " + describeTypes(g),
				Enum:     typeCodes(g),
				Required: true,
			},
			"module": {
				Type:     schema.String,
				Desc:     "Technical name of the module modified, e.g. sale_margin",
				Required: true,
			},
			"subject": {
				Type:     schema.String,
				Desc:     "Short and imperative summary of the code changes, lower case and no period",
				Required: true,
			},
			"body": {
				Type:     schema.String,
				Desc:     "Additional contextual information about the code changes (optional, may span lines)",
				Required: false,
			},
		}),
	}
}

func typeCodes(g *convention.Grammar) []string {
	types := g.ChangeTypes()
	codes := make([]string, len(types))
	for i, t := range types {
		codes[i] = t.Code()
	}
	return codes
}

func describeTypes(g *convention.Grammar) string {
	var parts []string
	for _, t := range g.ChangeTypes() {
		parts = append(parts, fmt.Sprintf("%s (%s)", t.Code(), t.Label()))
	}
	return strings.Join(parts, ", ")
}

// SubmitCommitCallback is called with the normalized answers
type SubmitCommitCallback func(answers convention.Answers) error

// SubmitCommitTool is a tool for submitting structured commit information
type SubmitCommitTool struct {
	grammar  *convention.Grammar
	callback SubmitCommitCallback
}

// NewSubmitCommitTool creates a new SubmitCommitTool
func NewSubmitCommitTool(g *convention.Grammar, callback SubmitCommitCallback) *SubmitCommitTool {
	return &SubmitCommitTool{grammar: g, callback: callback}
}

// Name returns the tool name
func (t *SubmitCommitTool) Name() string {
	return SubmitCommitName
}

// Info returns the tool description for binding
func (t *SubmitCommitTool) Info() *schema.ToolInfo {
	return SubmitCommitToolInfo(t.grammar)
}

// Execute runs the tool with the given parameters
func (t *SubmitCommitTool) Execute(ctx context.Context, params interface{}) (string, error) {
	p, ok := params.(*SubmitCommitParams)
	if !ok {
		return "", fmt.Errorf("invalid parameters type")
	}

	answers, err := p.Normalize(t.grammar)
	if err != nil {
		return "", err
	}

	if t.callback != nil {
		if err := t.callback(answers); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("Commit information submitted successfully:\n%s", convention.BuildMessage(answers)), nil
}
