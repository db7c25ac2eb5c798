package tools

import "canvasChat/internal/models"

// Tool calls use spelled-out field names while stored shape attributes use
// the short keys the canvas renderer reads. The engine translates at the
// boundary in both directions.
var toolToWireKeys = map[string]string{
	"width":  "w",
	"height": "h",
	"radius": "r",
}

var wireToToolKeys = func() map[string]string {
	inverse := make(map[string]string, len(toolToWireKeys))
	for tool, wire := range toolToWireKeys {
		inverse[wire] = tool
	}
	return inverse
}()

func ToWireAttributes(fields map[string]any) models.Attributes {
	attrs := make(models.Attributes, len(fields))
	for key, value := range fields {
		if wire, ok := toolToWireKeys[key]; ok {
			key = wire
		}
		attrs[key] = value
	}
	return attrs
}

func ToToolFields(attrs models.Attributes) map[string]any {
	fields := make(map[string]any, len(attrs))
	for key, value := range attrs {
		if tool, ok := wireToToolKeys[key]; ok {
			key = tool
		}
		fields[key] = value
	}
	return fields
}
