package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"canvasChat/internal/models"
)

type ShapeRepository struct {
	db *gorm.DB
}

func NewShapeRepository(db *gorm.DB) *ShapeRepository {
	return &ShapeRepository{
		db: db,
	}
}

func (sr *ShapeRepository) GetBoardShapes(boardID uint) ([]models.Shape, error) {
	var shapes []models.Shape
	if err := sr.db.
		Where("board_id = ?", boardID).
		Order("annotation_number ASC").
		Find(&shapes).Error; err != nil {
		return nil, err
	}
	return shapes, nil
}

func (sr *ShapeRepository) GetShapesByIds(ids []string) ([]models.Shape, error) {
	var shapes []models.Shape
	if err := sr.db.Where("id IN ?", ids).Find(&shapes).Error; err != nil {
		return nil, err
	}
	return shapes, nil
}

func (sr *ShapeRepository) UpsertShape(boardID uint, shape *models.Shape) error {
	shape.BoardID = boardID
	// Create with an assigned id; on conflict update the mutable columns
	// only. The annotation number is assigned once and never rewritten.
	return sr.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"type", "attributes", "render_url", "updated_at"}),
		}).
		Create(shape).Error
}

func (sr *ShapeRepository) DeleteShape(boardID uint, shapeID string) error {
	return sr.db.
		Where("board_id = ? AND id = ?", boardID, shapeID).
		Delete(&models.Shape{}).Error
}

func (sr *ShapeRepository) DeleteShapesNotIn(boardID uint, ids []string) error {
	query := sr.db.Where("board_id = ?", boardID)
	if len(ids) > 0 {
		query = query.Where("id NOT IN ?", ids)
	}
	return query.Delete(&models.Shape{}).Error
}

// NextAnnotationNumber reads the board's current max and adds one. The scan
// is unscoped so soft-deleted shapes still pin their numbers: a number, once
// assigned, is never reused or compacted. Concurrent creates on one board
// can race this read, see the note on interfaces.ShapeStore.
func (sr *ShapeRepository) NextAnnotationNumber(boardID uint) (int, error) {
	var max int
	err := sr.db.
		Unscoped().
		Model(&models.Shape{}).
		Where("board_id = ?", boardID).
		Select("COALESCE(MAX(annotation_number), 0)").
		Scan(&max).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	return max + 1, nil
}
