package tools

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canvasChat/internal/enums"
	"canvasChat/internal/errs"
	"canvasChat/internal/llm"
	"canvasChat/internal/models"
)

// memoryShapeStore reserves annotation numbers atomically on read, so it
// upholds the uniqueness property the production store only approximates.
type memoryShapeStore struct {
	mu      sync.Mutex
	shapes  map[string]models.Shape
	highest map[uint]int
}

func newMemoryShapeStore() *memoryShapeStore {
	return &memoryShapeStore{
		shapes:  make(map[string]models.Shape),
		highest: make(map[uint]int),
	}
}

func (m *memoryShapeStore) GetBoardShapes(boardID uint) ([]models.Shape, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var shapes []models.Shape
	for _, shape := range m.shapes {
		if shape.BoardID == boardID {
			shapes = append(shapes, shape)
		}
	}
	return shapes, nil
}

func (m *memoryShapeStore) GetShapesByIds(ids []string) ([]models.Shape, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var shapes []models.Shape
	for _, id := range ids {
		if shape, ok := m.shapes[id]; ok {
			shapes = append(shapes, shape)
		}
	}
	return shapes, nil
}

func (m *memoryShapeStore) UpsertShape(boardID uint, shape *models.Shape) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	shape.BoardID = boardID
	m.shapes[shape.ID] = *shape
	return nil
}

func (m *memoryShapeStore) DeleteShape(boardID uint, shapeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.shapes, shapeID)
	return nil
}

func (m *memoryShapeStore) DeleteShapesNotIn(boardID uint, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	for id, shape := range m.shapes {
		if shape.BoardID == boardID && !keep[id] {
			delete(m.shapes, id)
		}
	}
	return nil
}

func (m *memoryShapeStore) NextAnnotationNumber(boardID uint) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.highest[boardID]++
	return m.highest[boardID], nil
}

type memoryBoardStore struct {
	boards map[uint]*models.Board
}

func (m *memoryBoardStore) GetBoard(boardID uint) (*models.Board, error) {
	board, ok := m.boards[boardID]
	if !ok {
		return nil, errs.ErrBoardNotFound
	}
	return board, nil
}

func (m *memoryBoardStore) UpdateTitle(boardID uint, newTitle string) error {
	board, ok := m.boards[boardID]
	if !ok {
		return errs.ErrBoardNotFound
	}
	board.Title = newTitle
	return nil
}

type fakeSnapshotCache struct {
	mu            sync.Mutex
	fetches       int
	invalidations []uint
	calls         []string
}

func (f *fakeSnapshotCache) GetBoardSnapshot(ctx context.Context, userID, boardID uint) (*models.AnnotatedSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	f.calls = append(f.calls, "fetch")
	return &models.AnnotatedSnapshot{BoardID: boardID, ImageURL: "http://files/board.png"}, nil
}

func (f *fakeSnapshotCache) InvalidateBoard(ctx context.Context, boardID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidations = append(f.invalidations, boardID)
	f.calls = append(f.calls, "invalidate")
	return nil
}

type recordedEvent struct {
	Type string
	Data any
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *recordingBroadcaster) BroadcastEvent(eventType string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{Type: eventType, Data: data})
}

func (r *recordingBroadcaster) typesSeen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, 0, len(r.events))
	for _, event := range r.events {
		types = append(types, event.Type)
	}
	return types
}

type engineFixture struct {
	store       *memoryShapeStore
	boards      *memoryBoardStore
	cache       *fakeSnapshotCache
	broadcaster *recordingBroadcaster
	session     *Session
}

func newEngineFixture(t *testing.T, userID, boardID uint) *engineFixture {
	t.Helper()
	store := newMemoryShapeStore()
	boards := &memoryBoardStore{boards: map[uint]*models.Board{
		boardID: {Title: "My board", OwnerID: userID},
	}}
	cache := &fakeSnapshotCache{}
	broadcaster := &recordingBroadcaster{}
	engine := NewEngine(store, boards, cache, broadcaster)
	return &engineFixture{
		store:       store,
		boards:      boards,
		cache:       cache,
		broadcaster: broadcaster,
		session:     engine.Bind(userID, boardID),
	}
}

func toolCall(t *testing.T, name string, args any) llm.ToolCall {
	t.Helper()
	raw, err := json.Marshal(args)
	require.NoError(t, err)
	return llm.ToolCall{ID: "call-1", Name: name, Arguments: raw}
}

func (f *engineFixture) create(t *testing.T, shapeType string, fields map[string]any) map[string]any {
	t.Helper()
	result := f.session.Execute(context.Background(), toolCall(t, ToolCreateShape, map[string]any{
		"board_id": 1, "type": shapeType, "fields": fields,
	}))
	require.False(t, result.IsError, "create failed: %v", result.Content)
	var detail map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Content), &detail))
	return detail
}

func TestCreateShapeAssignsIncreasingAnnotationNumbers(t *testing.T) {
	f := newEngineFixture(t, 7, 1)

	first := f.create(t, enums.SHAPE_TYPE_RECTANGLE, map[string]any{"width": 100, "height": 50})
	second := f.create(t, enums.SHAPE_TYPE_CIRCLE, map[string]any{"radius": 20})

	assert.Equal(t, float64(1), first["annotation_number"])
	assert.Equal(t, float64(2), second["annotation_number"])
	assert.Equal(t, []string{
		enums.SOCKET_EVENT_SHAPE_START, enums.SOCKET_EVENT_SHAPE_CREATED,
		enums.SOCKET_EVENT_SHAPE_START, enums.SOCKET_EVENT_SHAPE_CREATED,
	}, f.broadcaster.typesSeen())
}

func TestAnnotationNumberInvariantAcrossUpdates(t *testing.T) {
	f := newEngineFixture(t, 7, 1)
	detail := f.create(t, enums.SHAPE_TYPE_RECTANGLE, map[string]any{"width": 100, "height": 50})
	shapeID := detail["shape_id"].(string)

	for _, width := range []int{120, 240} {
		result := f.session.Execute(context.Background(), toolCall(t, ToolUpdateShape, map[string]any{
			"board_id": 1, "shape_id": shapeID, "fields": map[string]any{"width": width},
		}))
		require.False(t, result.IsError)
		var updated map[string]any
		require.NoError(t, json.Unmarshal([]byte(result.Content), &updated))
		assert.Equal(t, detail["annotation_number"], updated["annotation_number"])
	}
}

func TestAnnotationNumberNeverReusedAfterDelete(t *testing.T) {
	f := newEngineFixture(t, 7, 1)
	detail := f.create(t, enums.SHAPE_TYPE_CIRCLE, map[string]any{"radius": 10})
	shapeID := detail["shape_id"].(string)

	result := f.session.Execute(context.Background(), toolCall(t, ToolDeleteShape, map[string]any{
		"board_id": 1, "shape_id": shapeID,
	}))
	require.False(t, result.IsError)

	replacement := f.create(t, enums.SHAPE_TYPE_CIRCLE, map[string]any{"radius": 10})
	assert.Equal(t, float64(2), replacement["annotation_number"])
}

func TestConcurrentCreatesGetUniqueNumbers(t *testing.T) {
	f := newEngineFixture(t, 7, 1)

	raw, err := json.Marshal(map[string]any{
		"board_id": 1, "type": enums.SHAPE_TYPE_CIRCLE, "fields": map[string]any{"radius": 5},
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	failures := make(chan string, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := f.session.Execute(context.Background(), llm.ToolCall{ID: "c", Name: ToolCreateShape, Arguments: raw})
			if result.IsError {
				failures <- result.Content
			}
		}()
	}
	wg.Wait()
	close(failures)
	for failure := range failures {
		t.Errorf("concurrent create failed: %v", failure)
	}

	shapes, err := f.store.GetBoardShapes(1)
	require.NoError(t, err)
	require.Len(t, shapes, 20)
	seen := make(map[int]bool)
	for _, shape := range shapes {
		assert.False(t, seen[shape.AnnotationNumber], "number %d assigned twice", shape.AnnotationNumber)
		seen[shape.AnnotationNumber] = true
	}
}

func TestUpdateShapeMergesOnlySuppliedFields(t *testing.T) {
	f := newEngineFixture(t, 7, 1)
	detail := f.create(t, enums.SHAPE_TYPE_RECTANGLE, map[string]any{
		"width": 100, "height": 50, "fill": "#ff0000",
	})
	shapeID := detail["shape_id"].(string)

	result := f.session.Execute(context.Background(), toolCall(t, ToolUpdateShape, map[string]any{
		"board_id": 1, "shape_id": shapeID, "fields": map[string]any{"width": 200},
	}))
	require.False(t, result.IsError)

	shapes, err := f.store.GetShapesByIds([]string{shapeID})
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	// Stored attributes use the short on-wire keys.
	assert.Equal(t, float64(200), shapes[0].Attributes["w"])
	assert.Equal(t, float64(50), shapes[0].Attributes["h"])
	assert.Equal(t, "#ff0000", shapes[0].Attributes["fill"])
}

func TestGetShapeDetailUsesSpelledOutFieldNames(t *testing.T) {
	f := newEngineFixture(t, 7, 1)
	detail := f.create(t, enums.SHAPE_TYPE_RECTANGLE, map[string]any{"width": 100, "height": 50})
	shapeID := detail["shape_id"].(string)

	result := f.session.Execute(context.Background(), toolCall(t, ToolGetShapeDetail, map[string]any{
		"shape_id": shapeID,
	}))
	require.False(t, result.IsError)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Content), &got))
	fields := got["fields"].(map[string]any)
	assert.Equal(t, float64(100), fields["width"])
	assert.Equal(t, float64(50), fields["height"])
}

func TestCreateShapeRejectsUnknownType(t *testing.T) {
	f := newEngineFixture(t, 7, 1)

	result := f.session.Execute(context.Background(), toolCall(t, ToolCreateShape, map[string]any{
		"board_id": 1, "type": "hexagon", "fields": map[string]any{},
	}))

	assert.True(t, result.IsError)
	assert.NotContains(t, f.broadcaster.typesSeen(), enums.SOCKET_EVENT_SHAPE_CREATED)
	assert.Empty(t, f.cache.invalidations)
}

func TestCreateShapeRequiresTypeSpecificFields(t *testing.T) {
	f := newEngineFixture(t, 7, 1)

	cases := []struct {
		name      string
		shapeType string
		fields    map[string]any
	}{
		{"path without path data", enums.SHAPE_TYPE_PATH, map[string]any{"stroke": "#000"}},
		{"path with empty path data", enums.SHAPE_TYPE_PATH, map[string]any{"path": ""}},
		{"text without text", enums.SHAPE_TYPE_TEXT, map[string]any{"x": 1, "y": 2}},
		{"circle without radius", enums.SHAPE_TYPE_CIRCLE, map[string]any{"x": 1}},
		{"polygon with empty points", enums.SHAPE_TYPE_POLYGON, map[string]any{"points": []any{}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := f.session.Execute(context.Background(), toolCall(t, ToolCreateShape, map[string]any{
				"board_id": 1, "type": tc.shapeType, "fields": tc.fields,
			}))
			assert.True(t, result.IsError)
			assert.Contains(t, result.Content, errs.ErrMissingShapeField.Error())
		})
	}
}

func TestDeleteNonExistentShapeIsNotFoundAndSilent(t *testing.T) {
	f := newEngineFixture(t, 7, 1)

	result := f.session.Execute(context.Background(), toolCall(t, ToolDeleteShape, map[string]any{
		"board_id": 1, "shape_id": "no-such-shape",
	}))

	assert.True(t, result.IsError)
	assert.Contains(t, result.Content, errs.ErrShapeNotFound.Error())
	assert.NotContains(t, f.broadcaster.typesSeen(), enums.SOCKET_EVENT_SHAPE_DELETED)
	assert.Empty(t, f.cache.invalidations)
}

func TestEveryMutationInvalidatesSnapshotCache(t *testing.T) {
	f := newEngineFixture(t, 7, 1)
	detail := f.create(t, enums.SHAPE_TYPE_CIRCLE, map[string]any{"radius": 10})
	shapeID := detail["shape_id"].(string)

	f.session.Execute(context.Background(), toolCall(t, ToolUpdateShape, map[string]any{
		"board_id": 1, "shape_id": shapeID, "fields": map[string]any{"fill": "#00f"},
	}))
	f.session.Execute(context.Background(), toolCall(t, ToolDeleteShape, map[string]any{
		"board_id": 1, "shape_id": shapeID,
	}))

	assert.Equal(t, []uint{1, 1, 1}, f.cache.invalidations)
}

func TestRenameBoardChecksOwnership(t *testing.T) {
	f := newEngineFixture(t, 7, 1)
	intruder := NewEngine(f.store, f.boards, f.cache, f.broadcaster).Bind(99, 1)

	result := intruder.Execute(context.Background(), toolCall(t, ToolRenameBoard, map[string]any{
		"board_id": 1, "new_name": "stolen",
	}))
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content, errs.ErrNotBoardOwner.Error())

	result = f.session.Execute(context.Background(), toolCall(t, ToolRenameBoard, map[string]any{
		"board_id": 1, "new_name": "Q3 roadmap",
	}))
	require.False(t, result.IsError)
	board, err := f.boards.GetBoard(1)
	require.NoError(t, err)
	assert.Equal(t, "Q3 roadmap", board.Title)
	assert.Contains(t, f.broadcaster.typesSeen(), enums.SOCKET_EVENT_BOARD_RENAMED)
}

func TestFetchBoardSnapshotReadsThroughCache(t *testing.T) {
	f := newEngineFixture(t, 7, 1)

	result := f.session.Execute(context.Background(), toolCall(t, ToolFetchBoardSnapshot, map[string]any{
		"board_id": 1,
	}))
	require.False(t, result.IsError)

	var snapshot models.AnnotatedSnapshot
	require.NoError(t, json.Unmarshal([]byte(result.Content), &snapshot))
	assert.Equal(t, uint(1), snapshot.BoardID)
	assert.Equal(t, 1, f.cache.fetches)
}

func TestUnknownToolIsRejected(t *testing.T) {
	f := newEngineFixture(t, 7, 1)

	result := f.session.Execute(context.Background(), toolCall(t, "drop_table", map[string]any{}))

	assert.True(t, result.IsError)
	assert.Contains(t, result.Content, errs.ErrUnknownTool.Error())
}
