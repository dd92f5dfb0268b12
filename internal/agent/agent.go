package agent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/cloudwego/eino/schema"

	"github.com/huimingz/cz-oca-go/internal/agent/tools"
	"github.com/huimingz/cz-oca-go/internal/config"
	"github.com/huimingz/cz-oca-go/internal/git"
	"github.com/huimingz/cz-oca-go/internal/llm"
	"github.com/huimingz/cz-oca-go/internal/log"
	"github.com/huimingz/cz-oca-go/internal/ui"
	"github.com/huimingz/cz-oca-go/pkg/convention"
	"github.com/huimingz/cz-oca-go/pkg/lang"
)

// DraftRequest represents a request to draft a commit message
type DraftRequest struct {
	Language string // Output language
	Context  string // User-provided context (optional)
}

// DraftResponse represents the drafted commit message
type DraftResponse struct {
	Answers          convention.Answers // Normalized answers
	Message          string             // Complete commit message
	PromptTokens     int                // Number of tokens in the prompt
	CompletionTokens int                // Number of tokens in the completion
	TotalTokens      int                // Total tokens used
}

// DraftAgentOptions contains configuration for DraftAgent
type DraftAgentOptions struct {
	Language    string              // Output language (default: "en")
	Grammar     *convention.Grammar // Grammar the draft must follow (default: built-in)
	GitExecutor git.Executor        // Git executor for running git commands
	LLMProvider llm.Provider        // LLM provider for drafting messages
	Retry       *config.RetryConfig // Retry policy for opening the LLM stream (optional)
	Printer     *ui.StreamPrinter   // Stream printer for output (optional)
	Output      io.Writer           // Output writer (used if Printer is nil)
	Debug       bool                // Enable debug mode
}

// Validate validates the options and sets defaults
func (o *DraftAgentOptions) Validate() error {
	if o.LLMProvider == nil {
		return fmt.Errorf("LLM provider is required")
	}
	if o.GitExecutor == nil {
		return fmt.Errorf("Git executor is required")
	}
	if o.Language == "" {
		o.Language = "en"
	}
	if o.Grammar == nil {
		o.Grammar = convention.MustGrammar()
	}
	return nil
}

// getPrinter returns the printer or creates a default one
func (o *DraftAgentOptions) getPrinter() *ui.StreamPrinter {
	if o.Printer != nil {
		return o.Printer
	}
	if o.Output != nil {
		return ui.NewStreamPrinter(o.Output, ui.WithVerbose(o.Debug))
	}
	return nil
}

// DraftAgent drafts commit message answers from the staged diff
type DraftAgent struct {
	opts DraftAgentOptions
}

// NewDraftAgent creates a new DraftAgent instance
func NewDraftAgent(opts DraftAgentOptions) (*DraftAgent, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	return &DraftAgent{
		opts: opts,
	}, nil
}

// BuildSystemPrompt generates the system prompt for drafting
func BuildSystemPrompt(g *convention.Grammar, language, context string) string {
	tmpl, err := template.New("system_prompt").Parse(DraftSystemPrompt)
	if err != nil {
		return DraftSystemPrompt
	}

	data := struct {
		Schema   string
		Example  string
		Types    []convention.Choice
		Language string
		Context  string
	}{
		Schema:   g.Schema(),
		Example:  g.Example(),
		Types:    convention.NewEngine(g).ListChangeTypes(),
		Language: lang.Describe(language),
		Context:  context,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return DraftSystemPrompt
	}

	return buf.String()
}

// BuildUserMessage lays out the status overview and the staged diff
func BuildUserMessage(status, diff string) string {
	var b strings.Builder
	b.WriteString("Please analyze the following staged changes and answer the commit questions.\n\n")

	b.WriteString("## Git Status Overview\n")
	b.WriteString("```\n")
	b.WriteString(status)
	b.WriteString("\n```\n\n")

	b.WriteString("## Staged Changes (Diff)\n")
	b.WriteString("```diff\n")
	b.WriteString(diff)
	b.WriteString("\n```\n")

	return b.String()
}

// Draft drafts a commit message for the staged changes
func (a *DraftAgent) Draft(ctx context.Context, req DraftRequest) (*DraftResponse, error) {
	printer := a.opts.getPrinter()
	g := a.opts.Grammar

	printStep := func(step int, msg string) {
		if printer != nil {
			_ = printer.PrintStep(step, msg)
		}
		log.Debug("Step %d: %s", step, msg)
	}

	printProgress := func(msg string) {
		if printer != nil {
			_ = printer.PrintProgress(msg)
		}
		log.Debug("%s", msg)
	}

	printToolCall := func(name string) {
		if printer != nil {
			_ = printer.PrintToolCall(name)
		}
		log.Debug("Tool call: %s", name)
	}

	printSuccess := func(msg string) {
		if printer != nil {
			_ = printer.PrintSuccess(msg)
		}
	}

	printInfo := func(msg string) {
		if printer != nil {
			_ = printer.PrintInfo(msg)
		}
	}

	language := req.Language
	if language == "" {
		language = a.opts.Language
	}

	providerName := a.opts.LLMProvider.Name()
	modelName := a.opts.LLMProvider.GetConfig().Model
	printProgress(fmt.Sprintf("Initializing LLM provider (%s/%s)...", providerName, modelName))

	chatModel, err := a.opts.LLMProvider.CreateChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is nil (provider: %s)", providerName)
	}

	printStep(1, "Getting git status overview...")
	status, err := a.opts.GitExecutor.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get git status: %w", err)
	}

	printStep(2, "Getting staged diff details...")
	diff, err := a.opts.GitExecutor.DiffCached(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get staged changes: %w", err)
	}
	if diff == "" {
		return nil, fmt.Errorf("no staged changes found")
	}
	printSuccess(fmt.Sprintf("Staged diff retrieved (%d bytes)", len(diff)))

	printStep(3, "Analyzing changes and drafting the commit message...")
	printInfo(fmt.Sprintf("Language: %s", language))
	if req.Context != "" {
		printInfo(fmt.Sprintf("Context: %s", req.Context))
	}

	var submitted *convention.Answers
	submitTool := tools.NewSubmitCommitTool(g, func(answers convention.Answers) error {
		submitted = &answers
		return nil
	})

	if err := chatModel.BindTools([]*schema.ToolInfo{submitTool.Info()}); err != nil {
		return nil, fmt.Errorf("failed to bind tools: %w", err)
	}

	messages := []*schema.Message{
		schema.SystemMessage(BuildSystemPrompt(g, language, req.Context)),
		schema.UserMessage(BuildUserMessage(status, diff)),
	}

	printProgress("Sending request to LLM (streaming)...")

	streamReader, err := llm.Retry(ctx, a.opts.Retry, func() (*schema.StreamReader[*schema.Message], error) {
		return chatModel.Stream(ctx, messages)
	})
	if err != nil {
		return nil, fmt.Errorf("LLM stream failed: %w", err)
	}
	defer streamReader.Close()

	var fullContent strings.Builder
	var toolCalls []*schema.ToolCall
	var promptTokens, completionTokens, totalTokens int

	for {
		chunk, err := streamReader.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("stream read error: %w", err)
		}

		if chunk.Content != "" {
			fullContent.WriteString(chunk.Content)
			if printer != nil {
				_ = printer.PrintLLMContent(chunk.Content)
			}
		}

		for _, tc := range chunk.ToolCalls {
			idx := 0
			if tc.Index != nil {
				idx = *tc.Index
			}

			for len(toolCalls) <= idx {
				toolCalls = append(toolCalls, &schema.ToolCall{})
			}

			if tc.Function.Name != "" {
				if toolCalls[idx].Function.Name == "" {
					printToolCall(tc.Function.Name)
				}
				toolCalls[idx].Function.Name = tc.Function.Name
			}
			toolCalls[idx].Function.Arguments += tc.Function.Arguments
		}

		if chunk.ResponseMeta != nil && chunk.ResponseMeta.Usage != nil {
			usage := chunk.ResponseMeta.Usage
			promptTokens = max(promptTokens, usage.PromptTokens)
			completionTokens = max(completionTokens, usage.CompletionTokens)
			totalTokens = max(totalTokens, usage.TotalTokens)
		}
	}

	if printer != nil {
		_ = printer.Newline()
	}
	log.DebugTokenUsage(promptTokens, completionTokens, totalTokens)

	for _, toolCall := range toolCalls {
		if toolCall.Function.Name != tools.SubmitCommitName {
			continue
		}
		log.DebugToolCall(toolCall.Function.Name, toolCall.Function.Arguments)

		params, err := tools.ParseSubmitCommitArgs(toolCall.Function.Arguments)
		if err != nil {
			log.Debug("%v", err)
			continue
		}
		if _, err := submitTool.Execute(ctx, params); err != nil {
			log.Debug("Rejected submit_commit answers: %v", err)
			continue
		}
		break
	}

	if submitted == nil && fullContent.Len() > 0 {
		printInfo("Parsing text response (fallback mode)...")
		answers, err := parseTextResponse(g, fullContent.String())
		if err != nil {
			return nil, err
		}
		submitted = &answers
	}

	if submitted == nil {
		return nil, fmt.Errorf("failed to draft commit message: no valid response from LLM")
	}

	printSuccess("Commit message drafted")
	return &DraftResponse{
		Answers:          *submitted,
		Message:          convention.BuildMessage(*submitted),
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      totalTokens,
	}, nil
}

// parseTextResponse recovers the answers when the model wrote the message as text
func parseTextResponse(g *convention.Grammar, content string) (convention.Answers, error) {
	text := strings.TrimSpace(content)
	text = strings.TrimPrefix(text, "```text")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	pc, ok := g.ParseCommit(text)
	if !ok {
		return convention.Answers{}, fmt.Errorf("failed to parse commit message: %w", &convention.NoMatchError{Message: text})
	}

	answers := convention.Answers{
		Prefix:  pc.Type.Code(),
		Module:  pc.Module,
		Subject: pc.Subject,
		Body:    pc.Body,
	}
	return answers.Normalize(g)
}
