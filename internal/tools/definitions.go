package tools

import (
	"canvasChat/internal/enums"
	"canvasChat/internal/llm"
)

// Tool names the provider may call mid-turn.
const (
	ToolFetchBoardSnapshot = "fetch_board_snapshot"
	ToolCreateShape        = "create_shape"
	ToolUpdateShape        = "update_shape"
	ToolDeleteShape        = "delete_shape"
	ToolGetShapeDetail     = "get_shape_detail"
	ToolRenameBoard        = "rename_board"
)

// requiredShapeFields lists, per shape type, the tool-call fields that must
// be present and non-empty on create.
var requiredShapeFields = map[string][]string{
	enums.SHAPE_TYPE_RECTANGLE: {"width", "height"},
	enums.SHAPE_TYPE_CIRCLE:    {"radius"},
	enums.SHAPE_TYPE_ELLIPSE:   {"width", "height"},
	enums.SHAPE_TYPE_LINE:      {"points"},
	enums.SHAPE_TYPE_ARROW:     {"points"},
	enums.SHAPE_TYPE_POLYGON:   {"points"},
	enums.SHAPE_TYPE_PATH:      {"path"},
	enums.SHAPE_TYPE_TEXT:      {"text"},
	enums.SHAPE_TYPE_SVG_PATH:  {"path"},
	enums.SHAPE_TYPE_FRAME:     {"width", "height"},
}

var shapeFieldSchema = map[string]any{
	"type":        "object",
	"description": "Shape fields. Use spelled-out names: width, height, radius, x, y, points, path, text, fill, stroke, strokeWidth, fontSize, fontFamily, rotation.",
	"additionalProperties": true,
}

func toolDefinitions() []llm.ToolDefinition {
	return []llm.ToolDefinition{
		{
			Name:        ToolFetchBoardSnapshot,
			Description: "Fetch the current board snapshot: a rendered image with a numbered badge on every shape plus the list of shape ids, types and numbers. Always call this before updating or deleting an existing shape.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"board_id": map[string]any{"type": "integer"},
				},
				"required": []string{"board_id"},
			},
		},
		{
			Name:        ToolCreateShape,
			Description: "Create a new shape on the board. The shape type is fixed at creation.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"board_id": map[string]any{"type": "integer"},
					"type":     map[string]any{"type": "string", "enum": enums.ShapeTypes},
					"fields":   shapeFieldSchema,
				},
				"required": []string{"board_id", "type", "fields"},
			},
		},
		{
			Name:        ToolUpdateShape,
			Description: "Update an existing shape. Only the fields you pass are changed; everything else is left untouched.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"board_id": map[string]any{"type": "integer"},
					"shape_id": map[string]any{"type": "string"},
					"fields":   shapeFieldSchema,
				},
				"required": []string{"board_id", "shape_id", "fields"},
			},
		},
		{
			Name:        ToolDeleteShape,
			Description: "Delete a shape from the board.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"board_id": map[string]any{"type": "integer"},
					"shape_id": map[string]any{"type": "string"},
				},
				"required": []string{"board_id", "shape_id"},
			},
		},
		{
			Name:        ToolGetShapeDetail,
			Description: "Get the full current field map of one shape, independent of any snapshot. Use this before relative edits such as resizing by a factor.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"shape_id": map[string]any{"type": "string"},
				},
				"required": []string{"shape_id"},
			},
		},
		{
			Name:        ToolRenameBoard,
			Description: "Rename the board. Only the board owner may rename it.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"board_id": map[string]any{"type": "integer"},
					"new_name": map[string]any{"type": "string"},
				},
				"required": []string{"board_id", "new_name"},
			},
		},
	}
}
