package repositories

import (
	"gorm.io/gorm"

	"canvasChat/internal/models"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{
		db: db,
	}
}

// GetBoardMessages returns the newest `limit` messages in chronological
// order, the window the orchestrator feeds to the provider.
func (chr *ChatRepository) GetBoardMessages(boardID uint, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := chr.db.
		Where("board_id = ?", boardID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// AppendTurn writes both halves of a finished turn in one transaction so a
// human message never lands without its assistant reply.
func (chr *ChatRepository) AppendTurn(boardID uint, human *models.ChatMessage, assistant *models.ChatMessage) error {
	human.BoardID = boardID
	human.Role = models.CHAT_ROLE_HUMAN
	assistant.BoardID = boardID
	assistant.Role = models.CHAT_ROLE_ASSISTANT

	return chr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(human).Error; err != nil {
			return err
		}
		if err := tx.Create(assistant).Error; err != nil {
			return err
		}
		return nil
	})
}
