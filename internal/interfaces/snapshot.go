package interfaces

import (
	"context"

	"canvasChat/internal/models"
)

// SnapshotRenderer composes the base board image with one numbered badge per
// shape, in creation order, and returns a public URL for the result. Pixel
// work lives behind this interface; only the numbering contract is ours.
type SnapshotRenderer interface {
	RenderAnnotated(ctx context.Context, boardID uint, shapes []models.Shape) (string, error)
}

// SnapshotCache serves AnnotatedSnapshots keyed by (user, board) and drops
// every entry for a board when any of its shapes change.
type SnapshotCache interface {
	GetBoardSnapshot(ctx context.Context, userID, boardID uint) (*models.AnnotatedSnapshot, error)
	InvalidateBoard(ctx context.Context, boardID uint) error
}
