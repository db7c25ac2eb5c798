package repositories

import (
	"errors"

	"gorm.io/gorm"

	"canvasChat/internal/errs"
	"canvasChat/internal/models"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{
		db: db,
	}
}

func (br *BoardRepository) GetBoard(boardID uint) (*models.Board, error) {
	var board models.Board
	if err := br.db.First(&board, boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrBoardNotFound
		}
		return nil, err
	}
	return &board, nil
}

func (br *BoardRepository) UpdateTitle(boardID uint, newTitle string) error {
	result := br.db.Model(&models.Board{}).Where("id = ?", boardID).Update("title", newTitle)
	if err := result.Error; err != nil {
		return err
	}
	if result.RowsAffected == 0 {
		return errs.ErrBoardNotFound
	}
	return nil
}
