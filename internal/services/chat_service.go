package services

import (
	"context"
	"log"

	"canvasChat/internal/enums"
	"canvasChat/internal/interfaces"
	"canvasChat/internal/llm"
	"canvasChat/internal/models"
	"canvasChat/internal/models/socket"
	"canvasChat/internal/msgs"
	"canvasChat/internal/tools"
)

// Emitter delivers events to the connection that started the turn.
type Emitter interface {
	SendEvent(eventType string, data any)
}

// ChatService runs one conversational turn end-to-end: history in, provider
// streaming with the tool registry bound, persisted turn out. Whatever
// happens after chat_starting, a chat_completed always follows so the
// client's turn indicator clears.
type ChatService struct {
	history       interfaces.ChatHistoryStore
	provider      llm.CompletionProvider
	engine        *tools.Engine
	tokens        interfaces.TokenMeter
	historyWindow int
	defaultModel  string
}

func NewChatService(
	history interfaces.ChatHistoryStore,
	provider llm.CompletionProvider,
	engine *tools.Engine,
	tokens interfaces.TokenMeter,
	historyWindow int,
	defaultModel string,
) *ChatService {
	return &ChatService{
		history:       history,
		provider:      provider,
		engine:        engine,
		tokens:        tokens,
		historyWindow: historyWindow,
		defaultModel:  defaultModel,
	}
}

func (cs *ChatService) RunTurn(ctx context.Context, emitter Emitter, userID uint, payload *socket.ChatMessagePayload) {
	usageBefore, err := cs.tokens.Usage(ctx, userID)
	if err != nil {
		// A meter outage must not take chat down; run the turn unmetered.
		log.Printf("Error reading token usage for user %v: %v", userID, err)
		usageBefore = nil
	}
	if usageBefore != nil && usageBefore.Blocked() {
		emitter.SendEvent(enums.SOCKET_EVENT_TOKEN_BLOCKED, tokenUsagePayload(usageBefore))
		return
	}

	emitter.SendEvent(enums.SOCKET_EVENT_CHAT_STARTING, socket.ChatStartingPayload{BoardID: payload.BoardID})

	request, err := cs.buildRequest(emitter, payload)
	if err != nil {
		log.Printf("Error loading history for board %v: %v", payload.BoardID, err)
		cs.failTurn(emitter, payload.BoardID, msgs.MsgAssistantUnavailable)
		return
	}

	session := cs.engine.Bind(userID, payload.BoardID)
	request.Tools = session.Definitions()
	request.ExecuteTool = session.Execute

	result, err := cs.provider.StreamChat(ctx, request)
	if err != nil {
		log.Printf("Provider error on board %v: %v", payload.BoardID, err)
		cs.failTurn(emitter, payload.BoardID, msgs.MsgAssistantUnavailable)
		return
	}

	human := &models.ChatMessage{SenderID: userID, Content: payload.Message}
	assistant := &models.ChatMessage{Content: result.Text}
	if err := cs.history.AppendTurn(payload.BoardID, human, assistant); err != nil {
		// The reply was produced; losing it silently is worse than the error.
		log.Printf("Error persisting turn on board %v: %v", payload.BoardID, err)
		cs.failTurn(emitter, payload.BoardID, msgs.MsgReplyGeneratedNotSaved)
		return
	}

	emitter.SendEvent(enums.SOCKET_EVENT_CHAT_COMPLETED, socket.ChatCompletedPayload{
		BoardID:        payload.BoardID,
		Message:        result.Text,
		HumanMessageID: human.ID,
		AiMessageID:    assistant.ID,
	})

	cs.settleTokens(ctx, emitter, userID, usageBefore, result)
}

func (cs *ChatService) buildRequest(emitter Emitter, payload *socket.ChatMessagePayload) (*llm.ChatRequest, error) {
	history, err := cs.history.GetBoardMessages(payload.BoardID, cs.historyWindow)
	if err != nil {
		return nil, err
	}

	messages := make([]llm.Message, 0, len(history)+1)
	for _, msg := range history {
		role := "user"
		if msg.Role == models.CHAT_ROLE_ASSISTANT {
			role = "assistant"
		}
		messages = append(messages, llm.Message{Role: role, Content: msg.Content})
	}

	current := llm.Message{Role: "user", Content: payload.Message}
	if payload.Metadata != nil {
		for _, url := range payload.Metadata.ShapeImageURLs {
			current.Images = append(current.Images, llm.TaggedImage{URL: url, Tag: llm.IMAGE_TAG_CANVAS_SELECTION})
		}
		for _, url := range payload.Metadata.UploadedImageURLs {
			current.Images = append(current.Images, llm.TaggedImage{URL: url, Tag: llm.IMAGE_TAG_UPLOADED_REFERENCE})
		}
	}
	messages = append(messages, current)

	model := payload.ActiveModel
	if model == "" {
		model = cs.defaultModel
	}

	boardID := payload.BoardID
	return &llm.ChatRequest{
		Model:        model,
		SystemPrompt: buildSystemPrompt(boardID, payload.ActiveTheme),
		Messages:     messages,
		Temperature:  payload.Temperature,
		MaxTokens:    payload.MaxTokens,
		OnChunk: func(text string) {
			emitter.SendEvent(enums.SOCKET_EVENT_CHAT_RESPONSE, socket.ChatResponsePayload{
				BoardID: boardID,
				Message: text,
			})
		},
	}, nil
}

// failTurn surfaces the error and still completes the turn: the indicator on
// the client side clears on chat_completed, never on error alone.
func (cs *ChatService) failTurn(emitter Emitter, boardID uint, message string) {
	emitter.SendEvent(enums.SOCKET_EVENT_ERROR, socket.ErrorPayload{Message: message})
	emitter.SendEvent(enums.SOCKET_EVENT_CHAT_COMPLETED, socket.ChatCompletedPayload{BoardID: boardID})
}

func (cs *ChatService) settleTokens(ctx context.Context, emitter Emitter, userID uint, before *models.TokenUsage, result *llm.ChatResult) {
	// before is nil when the meter was unreachable at the start of the turn.
	if before == nil || result.TotalTokens() == 0 {
		return
	}
	after, err := cs.tokens.Consume(ctx, userID, result.TotalTokens())
	if err != nil {
		log.Printf("Error consuming tokens for user %v: %v", userID, err)
		return
	}
	if cs.tokens.WarningCrossed(before, after) {
		emitter.SendEvent(enums.SOCKET_EVENT_TOKEN_WARNING, tokenUsagePayload(after))
	}
}

func tokenUsagePayload(usage *models.TokenUsage) socket.TokenUsagePayload {
	return socket.TokenUsagePayload{
		ConsumedTokens: usage.ConsumedTokens,
		TotalLimit:     usage.TotalLimit,
		Percentage:     usage.Percentage,
		ResetDate:      usage.ResetDate.Format("2006-01-02"),
	}
}
