package socket

// ChatMessagePayload is the data of an inbound chat_message frame.
type ChatMessagePayload struct {
	BoardID     uint          `json:"board_id"`
	Message     string        `json:"message"`
	ActiveModel string        `json:"active_model"`
	Temperature *float32      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	ActiveTheme string        `json:"active_theme"`
	Metadata    *ChatMetadata `json:"metadata,omitempty"`
}

// ChatMetadata distinguishes images cut out of the canvas from images the
// user uploaded; the assistant treats the two differently.
type ChatMetadata struct {
	ShapeImageURLs    []string `json:"shape_image_urls,omitempty"`
	UploadedImageURLs []string `json:"uploaded_image_urls,omitempty"`
}

type ChatStartingPayload struct {
	BoardID uint `json:"board_id"`
}

type ChatResponsePayload struct {
	BoardID uint   `json:"board_id"`
	Message string `json:"message"`
}

type ChatCompletedPayload struct {
	BoardID        uint   `json:"board_id"`
	Message        string `json:"message"`
	HumanMessageID uint   `json:"human_message_id"`
	AiMessageID    uint   `json:"ai_message_id"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type TokenUsagePayload struct {
	ConsumedTokens int64   `json:"consumed_tokens"`
	TotalLimit     int64   `json:"total_limit"`
	Percentage     float64 `json:"percentage"`
	ResetDate      string  `json:"reset_date"`
}
