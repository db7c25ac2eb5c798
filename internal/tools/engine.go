package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"

	"github.com/google/uuid"

	"canvasChat/internal/enums"
	"canvasChat/internal/errs"
	"canvasChat/internal/interfaces"
	"canvasChat/internal/llm"
	"canvasChat/internal/models"
	"canvasChat/internal/models/socket"
)

// Broadcaster fans an event out to every live connection.
type Broadcaster interface {
	BroadcastEvent(eventType string, data any)
}

// Engine holds the fixed registry of operations the provider may call
// mid-turn. Every mutating operation runs persist → invalidate → broadcast,
// in that order, and stops at the first failure.
type Engine struct {
	shapes      interfaces.ShapeStore
	boards      interfaces.BoardStore
	snapshots   interfaces.SnapshotCache
	broadcaster Broadcaster
}

func NewEngine(
	shapes interfaces.ShapeStore,
	boards interfaces.BoardStore,
	snapshots interfaces.SnapshotCache,
	broadcaster Broadcaster,
) *Engine {
	return &Engine{
		shapes:      shapes,
		boards:      boards,
		snapshots:   snapshots,
		broadcaster: broadcaster,
	}
}

// Session binds the engine to the user and board of one turn.
type Session struct {
	engine  *Engine
	userID  uint
	boardID uint
}

func (e *Engine) Bind(userID, boardID uint) *Session {
	return &Session{
		engine:  e,
		userID:  userID,
		boardID: boardID,
	}
}

func (s *Session) Definitions() []llm.ToolDefinition {
	return toolDefinitions()
}

// Execute runs one tool call and packages the outcome for the provider.
// Failures become tool results, never turn failures: the model sees the
// error and can recover.
func (s *Session) Execute(ctx context.Context, call llm.ToolCall) llm.ToolResult {
	payload, err := s.dispatch(ctx, call)
	if err != nil {
		log.Printf("Tool %v failed for user %v on board %v: %v", call.Name, s.userID, s.boardID, err)
		return llm.ToolResult{
			CallID:  call.ID,
			Content: fmt.Sprintf(`{"error": %q}`, err.Error()),
			IsError: true,
		}
	}
	content, err := json.Marshal(payload)
	if err != nil {
		return llm.ToolResult{
			CallID:  call.ID,
			Content: fmt.Sprintf(`{"error": %q}`, err.Error()),
			IsError: true,
		}
	}
	return llm.ToolResult{CallID: call.ID, Content: string(content)}
}

func (s *Session) dispatch(ctx context.Context, call llm.ToolCall) (any, error) {
	switch call.Name {
	case ToolFetchBoardSnapshot:
		var args fetchBoardSnapshotArgs
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, errs.ErrInvalidToolArguments
		}
		return s.fetchBoardSnapshot(ctx, args)
	case ToolCreateShape:
		var args createShapeArgs
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, errs.ErrInvalidToolArguments
		}
		return s.createShape(ctx, args)
	case ToolUpdateShape:
		var args updateShapeArgs
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, errs.ErrInvalidToolArguments
		}
		return s.updateShape(ctx, args)
	case ToolDeleteShape:
		var args deleteShapeArgs
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, errs.ErrInvalidToolArguments
		}
		return s.deleteShape(ctx, args)
	case ToolGetShapeDetail:
		var args getShapeDetailArgs
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, errs.ErrInvalidToolArguments
		}
		return s.getShapeDetail(args)
	case ToolRenameBoard:
		var args renameBoardArgs
		if err := json.Unmarshal(call.Arguments, &args); err != nil {
			return nil, errs.ErrInvalidToolArguments
		}
		return s.renameBoard(args)
	default:
		return nil, errs.ErrUnknownTool
	}
}

type fetchBoardSnapshotArgs struct {
	BoardID uint `json:"board_id"`
}

type createShapeArgs struct {
	BoardID uint           `json:"board_id"`
	Type    string         `json:"type"`
	Fields  map[string]any `json:"fields"`
}

type updateShapeArgs struct {
	BoardID uint           `json:"board_id"`
	ShapeID string         `json:"shape_id"`
	Fields  map[string]any `json:"fields"`
}

type deleteShapeArgs struct {
	BoardID uint   `json:"board_id"`
	ShapeID string `json:"shape_id"`
}

type getShapeDetailArgs struct {
	ShapeID string `json:"shape_id"`
}

type renameBoardArgs struct {
	BoardID uint   `json:"board_id"`
	NewName string `json:"new_name"`
}

func (s *Session) fetchBoardSnapshot(ctx context.Context, args fetchBoardSnapshotArgs) (any, error) {
	return s.engine.snapshots.GetBoardSnapshot(ctx, s.userID, args.BoardID)
}

func (s *Session) createShape(ctx context.Context, args createShapeArgs) (any, error) {
	if !slices.Contains(enums.ShapeTypes, args.Type) {
		return nil, fmt.Errorf("%w: %v", errs.ErrUnknownShapeType, args.Type)
	}
	for _, field := range requiredShapeFields[args.Type] {
		if !fieldPresent(args.Fields, field) {
			return nil, fmt.Errorf("%w: %v requires %v", errs.ErrMissingShapeField, args.Type, field)
		}
	}

	s.engine.broadcaster.BroadcastEvent(enums.SOCKET_EVENT_SHAPE_START, socket.ShapeStartPayload{BoardID: args.BoardID})

	number, err := s.engine.shapes.NextAnnotationNumber(args.BoardID)
	if err != nil {
		return nil, err
	}
	shape := &models.Shape{
		ID:               uuid.NewString(),
		BoardID:          args.BoardID,
		Type:             args.Type,
		Attributes:       ToWireAttributes(args.Fields),
		AnnotationNumber: number,
	}
	if err := s.engine.shapes.UpsertShape(args.BoardID, shape); err != nil {
		return nil, err
	}
	if err := s.engine.snapshots.InvalidateBoard(ctx, args.BoardID); err != nil {
		return nil, err
	}
	s.engine.broadcaster.BroadcastEvent(enums.SOCKET_EVENT_SHAPE_CREATED, socket.ShapeCreatedPayload{
		BoardID: args.BoardID,
		Shape:   shape,
	})

	return shapeDetail(shape), nil
}

func (s *Session) updateShape(ctx context.Context, args updateShapeArgs) (any, error) {
	shape, err := s.loadBoardShape(args.BoardID, args.ShapeID)
	if err != nil {
		return nil, err
	}

	s.engine.broadcaster.BroadcastEvent(enums.SOCKET_EVENT_SHAPE_UPDATE_START, socket.ShapeStartPayload{BoardID: args.BoardID})

	// Merge only the supplied fields; everything else stays as stored.
	merged := shape.Attributes.Clone()
	for key, value := range ToWireAttributes(args.Fields) {
		merged[key] = value
	}
	shape.Attributes = merged

	if err := s.engine.shapes.UpsertShape(args.BoardID, shape); err != nil {
		return nil, err
	}
	if err := s.engine.snapshots.InvalidateBoard(ctx, args.BoardID); err != nil {
		return nil, err
	}
	s.engine.broadcaster.BroadcastEvent(enums.SOCKET_EVENT_SHAPE_UPDATED, socket.ShapeUpdatedPayload{
		BoardID: args.BoardID,
		Shape:   shape,
	})

	return shapeDetail(shape), nil
}

func (s *Session) deleteShape(ctx context.Context, args deleteShapeArgs) (any, error) {
	if _, err := s.loadBoardShape(args.BoardID, args.ShapeID); err != nil {
		return nil, err
	}
	if err := s.engine.shapes.DeleteShape(args.BoardID, args.ShapeID); err != nil {
		return nil, err
	}
	if err := s.engine.snapshots.InvalidateBoard(ctx, args.BoardID); err != nil {
		return nil, err
	}
	s.engine.broadcaster.BroadcastEvent(enums.SOCKET_EVENT_SHAPE_DELETED, socket.ShapeDeletedPayload{
		BoardID: args.BoardID,
		ShapeID: args.ShapeID,
	})

	return map[string]any{"deleted": true, "shape_id": args.ShapeID}, nil
}

func (s *Session) getShapeDetail(args getShapeDetailArgs) (any, error) {
	shapes, err := s.engine.shapes.GetShapesByIds([]string{args.ShapeID})
	if err != nil {
		return nil, err
	}
	if len(shapes) == 0 {
		return nil, errs.ErrShapeNotFound
	}
	return shapeDetail(&shapes[0]), nil
}

func (s *Session) renameBoard(args renameBoardArgs) (any, error) {
	board, err := s.engine.boards.GetBoard(args.BoardID)
	if err != nil {
		return nil, err
	}
	if board.OwnerID != s.userID {
		return nil, errs.ErrNotBoardOwner
	}
	if err := s.engine.boards.UpdateTitle(args.BoardID, args.NewName); err != nil {
		return nil, err
	}
	s.engine.broadcaster.BroadcastEvent(enums.SOCKET_EVENT_BOARD_RENAMED, socket.BoardRenamedPayload{
		BoardID: args.BoardID,
		NewName: args.NewName,
	})

	return map[string]any{"board_id": args.BoardID, "new_name": args.NewName}, nil
}

func (s *Session) loadBoardShape(boardID uint, shapeID string) (*models.Shape, error) {
	shapes, err := s.engine.shapes.GetShapesByIds([]string{shapeID})
	if err != nil {
		return nil, err
	}
	if len(shapes) == 0 || shapes[0].BoardID != boardID {
		return nil, errs.ErrShapeNotFound
	}
	return &shapes[0], nil
}

// shapeDetail is what the model reads back: the spelled-out field names, not
// the short stored keys.
func shapeDetail(shape *models.Shape) map[string]any {
	return map[string]any{
		"shape_id":          shape.ID,
		"board_id":          shape.BoardID,
		"type":              shape.Type,
		"annotation_number": shape.AnnotationNumber,
		"fields":            ToToolFields(shape.Attributes),
	}
}

func fieldPresent(fields map[string]any, name string) bool {
	value, ok := fields[name]
	if !ok || value == nil {
		return false
	}
	switch v := value.(type) {
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	default:
		return true
	}
}
