package interfaces

import "canvasChat/internal/models"

// ShapeStore is the durable shape repository. Implementations are hit
// directly by concurrent tool calls with no in-process locking, so
// NextAnnotationNumber (max existing + 1) can race under concurrent creates
// on one board. Known, accepted risk: a correct fix needs an atomic counter
// or a unique constraint with retry at the storage layer.
type ShapeStore interface {
	GetBoardShapes(boardID uint) ([]models.Shape, error)
	GetShapesByIds(ids []string) ([]models.Shape, error)
	UpsertShape(boardID uint, shape *models.Shape) error
	DeleteShape(boardID uint, shapeID string) error
	DeleteShapesNotIn(boardID uint, ids []string) error
	NextAnnotationNumber(boardID uint) (int, error)
}
