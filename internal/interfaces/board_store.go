package interfaces

import "canvasChat/internal/models"

type BoardStore interface {
	GetBoard(boardID uint) (*models.Board, error)
	UpdateTitle(boardID uint, newTitle string) error
}
