package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	openai "github.com/sashabaranov/go-openai"
)

// maxToolRounds caps the tool-call loop so a misbehaving model cannot spin
// the turn forever.
const maxToolRounds = 16

type OpenAIProvider struct {
	client *openai.Client
}

func NewOpenAIProvider(apiKey string, baseURL string) *OpenAIProvider {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
	}
}

func (op *OpenAIProvider) StreamChat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	messages := buildMessages(req)
	tools := buildTools(req.Tools)

	result := &ChatResult{}

	for round := 0; round < maxToolRounds; round++ {
		chatReq := openai.ChatCompletionRequest{
			Model:         req.Model,
			Messages:      messages,
			Tools:         tools,
			Stream:        true,
			StreamOptions: &openai.StreamOptions{IncludeUsage: true},
		}
		if req.Temperature != nil {
			chatReq.Temperature = *req.Temperature
		}
		if req.MaxTokens != nil {
			chatReq.MaxTokens = *req.MaxTokens
		}

		stream, err := op.client.CreateChatCompletionStream(ctx, chatReq)
		if err != nil {
			return nil, err
		}

		text, toolCalls, err := op.drainStream(stream, req, result)
		stream.Close()
		if err != nil {
			return nil, err
		}
		result.Text += text

		if len(toolCalls) == 0 {
			return result, nil
		}

		// Feed the assistant turn with its tool calls back, then one tool
		// message per call, and let the model continue.
		messages = append(messages, openai.ChatCompletionMessage{
			Role:      openai.ChatMessageRoleAssistant,
			Content:   text,
			ToolCalls: toolCalls,
		})
		for _, tc := range toolCalls {
			call := ToolCall{ID: tc.ID, Name: tc.Function.Name, Arguments: []byte(tc.Function.Arguments)}
			toolResult := req.ExecuteTool(ctx, call)
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    toolResult.Content,
				ToolCallID: toolResult.CallID,
			})
		}
	}

	return nil, fmt.Errorf("completion exceeded %d tool rounds", maxToolRounds)
}

func (op *OpenAIProvider) drainStream(stream *openai.ChatCompletionStream, req *ChatRequest, result *ChatResult) (string, []openai.ToolCall, error) {
	var text string
	var toolCalls []openai.ToolCall

	for {
		response, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", nil, err
		}

		if response.Usage != nil {
			result.PromptTokens += response.Usage.PromptTokens
			result.CompletionTokens += response.Usage.CompletionTokens
		}
		if len(response.Choices) == 0 {
			continue
		}

		delta := response.Choices[0].Delta
		if delta.Content != "" {
			text += delta.Content
			if req.OnChunk != nil {
				req.OnChunk(delta.Content)
			}
		}
		for _, tc := range delta.ToolCalls {
			toolCalls = mergeToolCallDelta(toolCalls, tc)
		}
	}

	return text, toolCalls, nil
}

// Streaming splits one tool call across many deltas keyed by index; stitch
// the argument fragments back together.
func mergeToolCallDelta(calls []openai.ToolCall, delta openai.ToolCall) []openai.ToolCall {
	index := 0
	if delta.Index != nil {
		index = *delta.Index
	}
	for len(calls) <= index {
		calls = append(calls, openai.ToolCall{Type: openai.ToolTypeFunction})
	}
	call := &calls[index]
	if delta.ID != "" {
		call.ID = delta.ID
	}
	if delta.Function.Name != "" {
		call.Function.Name = delta.Function.Name
	}
	call.Function.Arguments += delta.Function.Arguments
	return calls
}

func buildMessages(req *ChatRequest) []openai.ChatCompletionMessage {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
	}
	for _, msg := range req.Messages {
		role := openai.ChatMessageRoleUser
		if msg.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		if len(msg.Images) == 0 {
			messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
			continue
		}
		parts := []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: msg.Content},
		}
		for _, img := range msg.Images {
			parts = append(parts,
				openai.ChatMessagePart{
					Type: openai.ChatMessagePartTypeText,
					Text: fmt.Sprintf("The next image is a %s.", imageTagLabel(img.Tag)),
				},
				openai.ChatMessagePart{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: img.URL},
				},
			)
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, MultiContent: parts})
	}
	return messages
}

func imageTagLabel(tag string) string {
	switch tag {
	case IMAGE_TAG_CANVAS_SELECTION:
		return "selection cut from the current canvas"
	case IMAGE_TAG_UPLOADED_REFERENCE:
		return "reference image uploaded by the user"
	default:
		log.Printf("Unknown image tag: %v", tag)
		return "attached image"
	}
}

func buildTools(defs []ToolDefinition) []openai.Tool {
	tools := make([]openai.Tool, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        def.Name,
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}
	return tools
}
