package enums

const (
	SHAPE_TYPE_RECTANGLE = "rectangle"
	SHAPE_TYPE_CIRCLE    = "circle"
	SHAPE_TYPE_ELLIPSE   = "ellipse"
	SHAPE_TYPE_LINE      = "line"
	SHAPE_TYPE_ARROW     = "arrow"
	SHAPE_TYPE_POLYGON   = "polygon"
	SHAPE_TYPE_PATH      = "path"
	SHAPE_TYPE_TEXT      = "text"
	SHAPE_TYPE_SVG_PATH  = "svg_path"
	SHAPE_TYPE_FRAME     = "frame"
)

// ShapeTypes is the closed set accepted by the tool engine.
var ShapeTypes = []string{
	SHAPE_TYPE_RECTANGLE,
	SHAPE_TYPE_CIRCLE,
	SHAPE_TYPE_ELLIPSE,
	SHAPE_TYPE_LINE,
	SHAPE_TYPE_ARROW,
	SHAPE_TYPE_POLYGON,
	SHAPE_TYPE_PATH,
	SHAPE_TYPE_TEXT,
	SHAPE_TYPE_SVG_PATH,
	SHAPE_TYPE_FRAME,
}
