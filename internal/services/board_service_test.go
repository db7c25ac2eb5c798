package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canvasChat/internal/enums"
	"canvasChat/internal/models"
)

func newBoardFixture(t *testing.T) (*BoardService, *mapShapeStore, *sequenceCache) {
	t.Helper()
	store := newMapShapeStore()
	boards := &mapBoardStore{boards: map[uint]*models.Board{1: {Title: "Board", OwnerID: 7}}}
	cache := &sequenceCache{}
	return NewBoardService(store, boards, cache), store, cache
}

func TestSyncShapesPreservesStoredAnnotationNumbers(t *testing.T) {
	service, store, cache := newBoardFixture(t)

	existing := &models.Shape{ID: "shape-1", Type: enums.SHAPE_TYPE_CIRCLE, Attributes: models.Attributes{"r": 40.0}, AnnotationNumber: 3}
	require.NoError(t, store.UpsertShape(1, existing))
	store.highest = 3

	// The client re-sends the existing shape with the number omitted and
	// adds a brand new one.
	incoming := []models.Shape{
		{ID: "shape-1", Type: enums.SHAPE_TYPE_CIRCLE, Attributes: models.Attributes{"r": 55.0}},
		{ID: "shape-2", Type: enums.SHAPE_TYPE_RECTANGLE, Attributes: models.Attributes{"w": 10.0, "h": 10.0}},
	}
	require.NoError(t, service.SyncShapes(context.Background(), 1, incoming))

	shapes, err := store.GetShapesByIds([]string{"shape-1", "shape-2"})
	require.NoError(t, err)
	require.Len(t, shapes, 2)
	assert.Equal(t, 3, shapes[0].AnnotationNumber, "existing shape keeps its number")
	assert.Equal(t, 55.0, shapes[0].Attributes["r"], "attribute edits still land")
	assert.Equal(t, 4, shapes[1].AnnotationNumber, "new shape gets the next number")
	assert.Equal(t, []string{"invalidate"}, cache.calls, "one invalidation per sync")
}

func TestSyncShapesIgnoresForgedAnnotationNumber(t *testing.T) {
	service, store, _ := newBoardFixture(t)

	existing := &models.Shape{ID: "shape-1", Type: enums.SHAPE_TYPE_CIRCLE, Attributes: models.Attributes{"r": 40.0}, AnnotationNumber: 2}
	require.NoError(t, store.UpsertShape(1, existing))
	store.highest = 2

	incoming := []models.Shape{
		{ID: "shape-1", Type: enums.SHAPE_TYPE_CIRCLE, Attributes: models.Attributes{"r": 40.0}, AnnotationNumber: 99},
	}
	require.NoError(t, service.SyncShapes(context.Background(), 1, incoming))

	shapes, err := store.GetShapesByIds([]string{"shape-1"})
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Equal(t, 2, shapes[0].AnnotationNumber, "stored number wins over the client's")
}
