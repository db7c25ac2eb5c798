package services

import (
	"context"

	"canvasChat/internal/interfaces"
	"canvasChat/internal/models"
)

// BoardService backs the REST surface: initial canvas load and the
// "keep only this id set" reconciliation after bulk client edits.
type BoardService struct {
	shapes    interfaces.ShapeStore
	boards    interfaces.BoardStore
	snapshots interfaces.SnapshotCache
}

func NewBoardService(shapes interfaces.ShapeStore, boards interfaces.BoardStore, snapshots interfaces.SnapshotCache) *BoardService {
	return &BoardService{
		shapes:    shapes,
		boards:    boards,
		snapshots: snapshots,
	}
}

func (bs *BoardService) GetBoard(boardID uint) (*models.Board, error) {
	return bs.boards.GetBoard(boardID)
}

func (bs *BoardService) GetBoardShapes(boardID uint) ([]models.Shape, error) {
	return bs.shapes.GetBoardShapes(boardID)
}

// SyncShapes persists the client's current shape set: upserts every shape it
// sends and deletes the rest, then invalidates the snapshot cache once.
// Annotation numbers are assigned once at creation and never change, so for
// ids already on the board the stored number wins over whatever the client
// sent; fresh numbers go only to genuinely new ids.
func (bs *BoardService) SyncShapes(ctx context.Context, boardID uint, shapes []models.Shape) error {
	existing, err := bs.shapes.GetBoardShapes(boardID)
	if err != nil {
		return err
	}
	numbers := make(map[string]int, len(existing))
	for _, shape := range existing {
		numbers[shape.ID] = shape.AnnotationNumber
	}

	keep := make([]string, 0, len(shapes))
	for i := range shapes {
		shape := &shapes[i]
		if number, ok := numbers[shape.ID]; ok {
			shape.AnnotationNumber = number
		} else if shape.AnnotationNumber == 0 {
			number, err := bs.shapes.NextAnnotationNumber(boardID)
			if err != nil {
				return err
			}
			shape.AnnotationNumber = number
		}
		if err := bs.shapes.UpsertShape(boardID, shape); err != nil {
			return err
		}
		keep = append(keep, shape.ID)
	}
	if err := bs.shapes.DeleteShapesNotIn(boardID, keep); err != nil {
		return err
	}
	return bs.snapshots.InvalidateBoard(ctx, boardID)
}
