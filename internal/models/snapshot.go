package models

import "time"

// AnnotatedSnapshot is the derived board view handed to the assistant: the
// rendered board image with numbered badges plus a minimal shape index. It is
// cached per (user, board) and rebuilt after any mutation on the board.
type AnnotatedSnapshot struct {
	BoardID     uint                `json:"board_id"`
	ImageURL    string              `json:"image_url"`
	Shapes      []SnapshotShapeInfo `json:"shapes"`
	GeneratedAt time.Time           `json:"generated_at"`
}

type SnapshotShapeInfo struct {
	ID               string `json:"id"`
	Type             string `json:"type"`
	AnnotationNumber int    `json:"annotation_number"`
}
