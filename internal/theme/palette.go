package theme

// AccentOption is one entry of the curated accent palette. Light is
// the pale companion tone used for subdued backgrounds; it is derived
// here once so callers never pick secondary colors independently.
type AccentOption struct {
	Name  string
	Value string
	Light string
}

// DefaultAccent is used when no customization was saved.
const DefaultAccent = "#1e293b"

// Palette is the fixed set of selectable accent colors. Loaded once at
// init and never mutated.
var Palette = []AccentOption{
	{Name: "Midnight", Value: "#0f172a", Light: "#f1f5f9"},
	{Name: "Dark Charcoal", Value: "#1e293b", Light: "#f1f5f9"},
	{Name: "Ocean Blue", Value: "#3b82f6", Light: "#dbeafe"},
	{Name: "Deep Navy", Value: "#1e3a8a", Light: "#dbeafe"},
	{Name: "Sky Blue", Value: "#0ea5e9", Light: "#e0f2fe"},
	{Name: "Indigo", Value: "#4f46e5", Light: "#e0e7ff"},
	{Name: "Emerald", Value: "#10b981", Light: "#d1fae5"},
	{Name: "Forest Green", Value: "#059669", Light: "#d1fae5"},
	{Name: "Teal", Value: "#14b8a6", Light: "#ccfbf1"},
	{Name: "Lime", Value: "#84cc16", Light: "#ecfccb"},
	{Name: "Royal Purple", Value: "#7c3aed", Light: "#ede9fe"},
	{Name: "Violet", Value: "#8b5cf6", Light: "#ede9fe"},
	{Name: "Pink", Value: "#ec4899", Light: "#fce7f3"},
	{Name: "Rose", Value: "#f43f5e", Light: "#ffe4e6"},
	{Name: "Slate Gray", Value: "#475569", Light: "#f1f5f9"},
	{Name: "Zinc", Value: "#52525b", Light: "#f4f4f5"},
	{Name: "Crimson", Value: "#dc2626", Light: "#fee2e2"},
	{Name: "Orange", Value: "#f97316", Light: "#ffedd5"},
	{Name: "Amber", Value: "#f59e0b", Light: "#fef3c7"},
	{Name: "Yellow", Value: "#eab308", Light: "#fef9c3"},
}

func paletteOption(value string) (AccentOption, bool) {
	for _, opt := range Palette {
		if opt.Value == value {
			return opt, true
		}
	}
	return AccentOption{}, false
}
