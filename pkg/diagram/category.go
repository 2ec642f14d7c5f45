package diagram

// Category tags a node with the kind of thing it depicts.
// It only selects a visual style.
type Category int

const (
	CategoryGeneric Category = iota
	CategoryUsers
	CategoryExternalAPI
	CategoryCompute
	CategoryBeanstalk
	CategoryDatabase
	CategoryNetwork
	CategoryGateway
	CategorySecurity
	CategoryMonitoring
	CategoryMessaging
	CategoryFramework
	CategoryJava
	CategoryKotlin
)

// Style is the set of node attributes a category contributes.
type Style struct {
	Shape     string
	FillColor string
	FontColor string
}

// Attrs returns the style as DOT node attributes.
func (s Style) Attrs() Attrs {
	return Attrs{
		"shape":     s.Shape,
		"style":     "rounded,filled",
		"fillcolor": s.FillColor,
		"fontcolor": s.FontColor,
	}
}

type categoryInfo struct {
	name  string
	style Style
}

const defaultFontColor = "#2D3436"

var categories = map[Category]categoryInfo{
	CategoryGeneric:     {"generic", Style{"box", "#ECEFF1", defaultFontColor}},
	CategoryUsers:       {"users", Style{"ellipse", "#FFE0B2", defaultFontColor}},
	CategoryExternalAPI: {"external-api", Style{"component", "#E1BEE7", defaultFontColor}},
	CategoryCompute:     {"compute", Style{"box3d", "#FFCC80", defaultFontColor}},
	CategoryBeanstalk:   {"beanstalk", Style{"box3d", "#FFB74D", defaultFontColor}},
	CategoryDatabase:    {"database", Style{"cylinder", "#90CAF9", defaultFontColor}},
	CategoryNetwork:     {"network", Style{"hexagon", "#B2DFDB", defaultFontColor}},
	CategoryGateway:     {"gateway", Style{"house", "#80CBC4", defaultFontColor}},
	CategorySecurity:    {"security", Style{"octagon", "#EF9A9A", defaultFontColor}},
	CategoryMonitoring:  {"monitoring", Style{"note", "#F8BBD0", defaultFontColor}},
	CategoryMessaging:   {"messaging", Style{"cds", "#FFE082", defaultFontColor}},
	CategoryFramework:   {"framework", Style{"box", "#C5E1A5", defaultFontColor}},
	CategoryJava:        {"java", Style{"box", "#FFCCBC", defaultFontColor}},
	CategoryKotlin:      {"kotlin", Style{"box", "#D1C4E9", defaultFontColor}},
}

// Style returns the visual style for c. Unknown categories get the generic style.
func (c Category) Style() Style {
	if info, ok := categories[c]; ok {
		return info.style
	}
	return categories[CategoryGeneric].style
}

// String returns the category name.
func (c Category) String() string {
	if info, ok := categories[c]; ok {
		return info.name
	}
	return "unknown"
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}
