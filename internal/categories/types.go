package categories

// DefaultCategory is assigned when an upload names no category
const DefaultCategory = "general"

// Category describes one document discipline in the project register
// (drawings, specifications, RFIs, ...).
type Category struct {
	// Key identifier (set during YAML unmarshaling from the map key)
	Key string `yaml:"-" json:"key"`

	DisplayName string `yaml:"display_name" json:"display_name"`
	Description string `yaml:"description" json:"description"`

	// Extensions lists the file extensions typically uploaded for this
	// category. Advisory only; uploads are never rejected on extension.
	Extensions []string `yaml:"extensions" json:"extensions"`

	// Transmittable marks categories that can be issued in a transmittal
	Transmittable bool `yaml:"transmittable" json:"transmittable"`
}

// categoryFile is the top-level YAML document shape
type categoryFile struct {
	Categories map[string]Category `yaml:"categories"`
}
