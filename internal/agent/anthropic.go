package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultAnthropicModel     = "claude-sonnet-4-5-20250929"
	defaultAnthropicMaxTokens = 2048
)

// systemPrompt tells the model to answer every instruction with one JSON
// object whose fields match what the hosted agent returns.
const systemPrompt = `You are InboxPilot, an email management agent.
Carry out the user's instruction and answer with exactly one JSON object and nothing else.
Use these optional fields as appropriate:
- "action_type": short name of what you did (e.g. "fetch", "summarize", "send", "schedule")
- "status": "success" or "error"
- "message": a short human-readable result
- "summary": a concise markdown summary of an email thread
- "draft_reply": a reply draft ready to send
- "category": one of customer, internal, admin, marketing, personal
- "emails": an array of objects with sender, sender_email, subject, preview, category, timestamp, thread_id
If you cannot perform an action, set "status" to "error" and explain in "message".`

// AnthropicAgent drives the Anthropic Messages API directly, standing in for
// a hosted agent. The agent identifier is recorded in the request metadata.
type AnthropicAgent struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicAgent creates an SDK-backed agent. baseURL may be empty.
func NewAnthropicAgent(apiKey, baseURL, modelName string, maxTokens int) (*AnthropicAgent, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}
	if modelName == "" {
		modelName = defaultAnthropicModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(apiKey),
	}
	if base := strings.TrimSpace(baseURL); base != "" {
		opts = append(opts, anthropicoption.WithBaseURL(base))
	}

	return &AnthropicAgent{
		client:    anthropic.NewClient(opts...),
		model:     modelName,
		maxTokens: maxTokens,
	}, nil
}

// Call implements Agent.
func (a *AnthropicAgent) Call(ctx context.Context, instruction, agentID string) (*Response, error) {
	params := anthropic.MessageNewParams{
		MaxTokens: int64(a.maxTokens),
		Model:     anthropic.Model(a.model),
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(instruction)),
		},
		Metadata: anthropic.MetadataParam{
			UserID: anthropic.String(agentID),
		},
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return nil, &APIError{StatusCode: apiErr.StatusCode, Message: apiErr.Error()}
		}
		return nil, fmt.Errorf("calling anthropic: %w", err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			if text.Len() > 0 {
				text.WriteString("\n")
			}
			text.WriteString(tb.Text)
		}
	}

	result := ResultFromText(text.String())
	resp := &Response{
		Success: true,
		Status:  result.Status(),
		Result:  result,
	}
	if result == nil {
		resp.Success = false
		resp.Error = "agent returned an empty response"
	}
	if strings.EqualFold(result.Status(), "error") {
		resp.Success = false
		resp.Error = result.Message()
	}
	return resp, nil
}
