package llm

import (
	"context"
	"encoding/json"
)

const (
	IMAGE_TAG_CANVAS_SELECTION   = "canvas_selection"
	IMAGE_TAG_UPLOADED_REFERENCE = "uploaded_reference"
)

type Message struct {
	Role    string
	Content string
	Images  []TaggedImage
}

// TaggedImage carries the provenance tag alongside the URL so the prompt can
// tell the model whether it is looking at a canvas cutout or an uploaded
// reference.
type TaggedImage struct {
	URL string
	Tag string
}

type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

type ToolResult struct {
	CallID  string
	Content string
	IsError bool
}

// ChatRequest drives one streamed completion. OnChunk fires for every text
// delta in emission order; ExecuteTool runs a tool call and its result is fed
// back to the model before streaming resumes.
type ChatRequest struct {
	Model        string
	SystemPrompt string
	Messages     []Message
	Temperature  *float32
	MaxTokens    *int
	Tools        []ToolDefinition
	OnChunk      func(text string)
	ExecuteTool  func(ctx context.Context, call ToolCall) ToolResult
}

type ChatResult struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

func (cr *ChatResult) TotalTokens() int64 {
	return int64(cr.PromptTokens + cr.CompletionTokens)
}

// CompletionProvider is the pluggable chat backend. Implementations own
// their retry policy; this core never retries.
type CompletionProvider interface {
	StreamChat(ctx context.Context, req *ChatRequest) (*ChatResult, error)
}
