package validators

import (
	"strings"

	"canvasChat/internal/errs"
	"canvasChat/internal/models/socket"
)

func ValidateChatMessage(payload *socket.ChatMessagePayload) []error {
	var errors []error
	if payload.BoardID == 0 {
		errors = append(errors, errs.ErrInvalidBoardId)
	}
	if strings.TrimSpace(payload.Message) == "" {
		errors = append(errors, errs.ErrEmptyMessage)
	}
	return errors
}
