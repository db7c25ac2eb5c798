package interfaces

import "canvasChat/internal/models"

// ChatHistoryStore persists finished turns. AppendTurn writes the human and
// assistant halves together; a turn is never persisted piecemeal.
type ChatHistoryStore interface {
	GetBoardMessages(boardID uint, limit int) ([]models.ChatMessage, error)
	AppendTurn(boardID uint, human *models.ChatMessage, assistant *models.ChatMessage) error
}
