package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canvasChat/internal/enums"
	"canvasChat/internal/models"
)

// listShapeStore serves a mutable shape list; only the reads the snapshot
// path touches are implemented.
type listShapeStore struct {
	mu     sync.Mutex
	shapes []models.Shape
}

func (l *listShapeStore) GetBoardShapes(boardID uint) ([]models.Shape, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	shapes := make([]models.Shape, len(l.shapes))
	copy(shapes, l.shapes)
	return shapes, nil
}

func (l *listShapeStore) setShapes(shapes []models.Shape) {
	l.mu.Lock()
	l.shapes = shapes
	l.mu.Unlock()
}

func (l *listShapeStore) GetShapesByIds(ids []string) ([]models.Shape, error) { return nil, nil }
func (l *listShapeStore) UpsertShape(boardID uint, shape *models.Shape) error { return nil }
func (l *listShapeStore) DeleteShape(boardID uint, shapeID string) error      { return nil }
func (l *listShapeStore) DeleteShapesNotIn(boardID uint, ids []string) error  { return nil }
func (l *listShapeStore) NextAnnotationNumber(boardID uint) (int, error)      { return 1, nil }

type countingRenderer struct {
	mu      sync.Mutex
	renders int
}

func (c *countingRenderer) RenderAnnotated(ctx context.Context, boardID uint, shapes []models.Shape) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renders++
	return fmt.Sprintf("http://files/board-%d-v%d.png", boardID, c.renders), nil
}

func newSnapshotFixture(t *testing.T) (*SnapshotService, *listShapeStore, *countingRenderer) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	store := &listShapeStore{}
	renderer := &countingRenderer{}
	return NewSnapshotService(client, store, renderer, time.Hour), store, renderer
}

func TestSnapshotCacheHitSkipsRender(t *testing.T) {
	service, store, renderer := newSnapshotFixture(t)
	store.setShapes([]models.Shape{
		{ID: "s1", BoardID: 1, Type: enums.SHAPE_TYPE_CIRCLE, AnnotationNumber: 1},
	})

	first, err := service.GetBoardSnapshot(context.Background(), 7, 1)
	require.NoError(t, err)
	second, err := service.GetBoardSnapshot(context.Background(), 7, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, renderer.renders)
	assert.Equal(t, first.ImageURL, second.ImageURL)
	require.Len(t, second.Shapes, 1)
	assert.Equal(t, "s1", second.Shapes[0].ID)
	assert.Equal(t, 1, second.Shapes[0].AnnotationNumber)
}

func TestSnapshotIsCachedPerUser(t *testing.T) {
	service, store, renderer := newSnapshotFixture(t)
	store.setShapes([]models.Shape{{ID: "s1", BoardID: 1, Type: enums.SHAPE_TYPE_TEXT, AnnotationNumber: 1}})

	_, err := service.GetBoardSnapshot(context.Background(), 7, 1)
	require.NoError(t, err)
	_, err = service.GetBoardSnapshot(context.Background(), 8, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, renderer.renders)
}

func TestInvalidateDropsEveryUsersEntryForBoard(t *testing.T) {
	service, store, renderer := newSnapshotFixture(t)
	store.setShapes([]models.Shape{{ID: "s1", BoardID: 1, Type: enums.SHAPE_TYPE_TEXT, AnnotationNumber: 1}})

	_, err := service.GetBoardSnapshot(context.Background(), 7, 1)
	require.NoError(t, err)
	_, err = service.GetBoardSnapshot(context.Background(), 8, 1)
	require.NoError(t, err)

	require.NoError(t, service.InvalidateBoard(context.Background(), 1))

	_, err = service.GetBoardSnapshot(context.Background(), 7, 1)
	require.NoError(t, err)
	_, err = service.GetBoardSnapshot(context.Background(), 8, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, renderer.renders)
}

func TestFetchAfterMutationReflectsIt(t *testing.T) {
	service, store, _ := newSnapshotFixture(t)
	store.setShapes([]models.Shape{{ID: "s1", BoardID: 1, Type: enums.SHAPE_TYPE_CIRCLE, AnnotationNumber: 1}})

	before, err := service.GetBoardSnapshot(context.Background(), 7, 1)
	require.NoError(t, err)
	require.Len(t, before.Shapes, 1)

	store.setShapes([]models.Shape{
		{ID: "s1", BoardID: 1, Type: enums.SHAPE_TYPE_CIRCLE, AnnotationNumber: 1},
		{ID: "s2", BoardID: 1, Type: enums.SHAPE_TYPE_ARROW, AnnotationNumber: 2},
	})
	require.NoError(t, service.InvalidateBoard(context.Background(), 1))

	after, err := service.GetBoardSnapshot(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Len(t, after.Shapes, 2)
}
