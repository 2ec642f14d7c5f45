// Package diagrams holds the DivTracker architecture diagrams.
//
// Each diagram is a [generator.Generator]; [All] returns them in the order a
// batch run processes them.
package diagrams

import (
	"github.com/rafiki18/archviz/pkg/diagram"
	"github.com/rafiki18/archviz/pkg/generator"
)

// Generator names.
const (
	AWSArchitecture    = "aws_architecture"
	BackendComponents  = "backend_components"
	DataFlow           = "data_flow"
	FCMFlow            = "fcm_flow"
	EntityRelationship = "entity_relationship"
)

// All returns every diagram in batch order.
func All() []generator.Generator {
	return []generator.Generator{
		awsArchitecture(),
		backendComponents(),
		dataFlow(),
		fcmFlow(),
		entityRelationship(),
	}
}

// Edge colours used to tell flows apart.
const (
	blue   = "blue"
	green  = "green"
	purple = "purple"
	orange = "orange"
	red    = "red"
)

// baseGraphAttrs are shared by the DivTracker builder diagrams.
func baseGraphAttrs(fontsize string) diagram.Attrs {
	return diagram.Attrs{
		"fontsize": fontsize,
		"bgcolor":  "white",
		"pad":      "0.5",
	}
}

// flow returns the attributes of a numbered step in a coloured flow.
func flow(label, color string, extra ...diagram.Attr) []diagram.Attr {
	return append([]diagram.Attr{diagram.Label(label), diagram.Color(color), diagram.FontColor(color)}, extra...)
}
