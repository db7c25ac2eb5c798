package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"canvasChat/internal/interfaces"
	"canvasChat/internal/models"
)

// SnapshotService caches AnnotatedSnapshots in redis, one entry per
// (user, board), with a per-board key set so any mutation can drop every
// user's entry for that board in one pass. Each rebuild reads the full shape
// list in one store call, so a snapshot is always internally consistent: a
// fetch racing a mutation sees the board entirely before or entirely after
// the change.
type SnapshotService struct {
	redis    *redis.Client
	shapes   interfaces.ShapeStore
	renderer interfaces.SnapshotRenderer
	ttl      time.Duration
}

func NewSnapshotService(redisClient *redis.Client, shapes interfaces.ShapeStore, renderer interfaces.SnapshotRenderer, ttl time.Duration) *SnapshotService {
	return &SnapshotService{
		redis:    redisClient,
		shapes:   shapes,
		renderer: renderer,
		ttl:      ttl,
	}
}

func (ss *SnapshotService) GetBoardSnapshot(ctx context.Context, userID, boardID uint) (*models.AnnotatedSnapshot, error) {
	key := snapshotKey(boardID, userID)

	cached, err := ss.redis.Get(ctx, key).Result()
	if err == nil {
		var snapshot models.AnnotatedSnapshot
		if err := json.Unmarshal([]byte(cached), &snapshot); err == nil {
			return &snapshot, nil
		}
		log.Printf("Corrupt snapshot cache entry %v, rebuilding", key)
	}

	snapshot, err := ss.buildSnapshot(ctx, boardID)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}
	pipe := ss.redis.TxPipeline()
	pipe.Set(ctx, key, raw, ss.ttl)
	pipe.SAdd(ctx, snapshotKeySet(boardID), key)
	if _, err := pipe.Exec(ctx); err != nil {
		// The snapshot itself is good; a cache write failure only costs the
		// next caller a rebuild.
		log.Printf("Error caching snapshot %v: %v", key, err)
	}

	return snapshot, nil
}

func (ss *SnapshotService) InvalidateBoard(ctx context.Context, boardID uint) error {
	setKey := snapshotKeySet(boardID)
	keys, err := ss.redis.SMembers(ctx, setKey).Result()
	if err != nil {
		return err
	}
	keys = append(keys, setKey)
	return ss.redis.Del(ctx, keys...).Err()
}

func (ss *SnapshotService) buildSnapshot(ctx context.Context, boardID uint) (*models.AnnotatedSnapshot, error) {
	shapes, err := ss.shapes.GetBoardShapes(boardID)
	if err != nil {
		return nil, err
	}

	imageURL, err := ss.renderer.RenderAnnotated(ctx, boardID, shapes)
	if err != nil {
		return nil, err
	}

	infos := make([]models.SnapshotShapeInfo, 0, len(shapes))
	for _, shape := range shapes {
		infos = append(infos, models.SnapshotShapeInfo{
			ID:               shape.ID,
			Type:             shape.Type,
			AnnotationNumber: shape.AnnotationNumber,
		})
	}

	return &models.AnnotatedSnapshot{
		BoardID:     boardID,
		ImageURL:    imageURL,
		Shapes:      infos,
		GeneratedAt: time.Now(),
	}, nil
}

func snapshotKey(boardID, userID uint) string {
	return fmt.Sprintf("snapshot:%d:%d", boardID, userID)
}

func snapshotKeySet(boardID uint) string {
	return fmt.Sprintf("snapshot:keys:%d", boardID)
}
