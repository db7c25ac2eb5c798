package socket

import "canvasChat/internal/models"

type ShapeStartPayload struct {
	BoardID uint `json:"board_id"`
}

type ShapeCreatedPayload struct {
	BoardID uint          `json:"board_id"`
	Shape   *models.Shape `json:"shape"`
}

type ShapeUpdatedPayload struct {
	BoardID uint          `json:"board_id"`
	Shape   *models.Shape `json:"shape"`
}

type ShapeDeletedPayload struct {
	BoardID uint   `json:"board_id"`
	ShapeID string `json:"shape_id"`
}

type BoardRenamedPayload struct {
	BoardID uint   `json:"board_id"`
	NewName string `json:"new_name"`
}
