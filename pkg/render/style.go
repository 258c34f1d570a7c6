package render

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Style holds every tunable constant used by text metrics, layout, and
// routing. It is threaded explicitly through the pipeline rather than
// read from package-level variables, so that a single process can
// compile diagrams under different styles without any shared state.
type Style struct {
	// CharWidth is the monospace character advance at the configured
	// font size.
	CharWidth float64 `yaml:"charWidth" json:"charWidth"`

	// LineHeight is the vertical advance between column rows.
	LineHeight float64 `yaml:"lineHeight" json:"lineHeight"`

	// Padding is the interior box padding applied on each side.
	Padding float64 `yaml:"padding" json:"padding"`

	// HeaderHeight is the height of an entity box's name band.
	HeaderHeight float64 `yaml:"headerHeight" json:"headerHeight"`

	// BoxWidthMultiple rounds every computed box width up to the next
	// multiple of this value.
	BoxWidthMultiple float64 `yaml:"boxWidthMultiple" json:"boxWidthMultiple"`

	// GapX is the horizontal gap between adjacent grid columns.
	GapX float64 `yaml:"gapX" json:"gapX"`

	// GapY is the vertical gap between adjacent grid rows.
	GapY float64 `yaml:"gapY" json:"gapY"`

	// Margin is the canvas margin applied on all sides.
	Margin float64 `yaml:"margin" json:"margin"`

	// ParallelStride is the separation distance between anchor points
	// of edges that share the same endpoint pair.
	ParallelStride float64 `yaml:"parallelStride" json:"parallelStride"`

	// LoopRadius is the base extent of a self-loop's rectangular detour.
	LoopRadius float64 `yaml:"loopRadius" json:"loopRadius"`

	// LoopStep extends LoopRadius for each nested parallel self-loop.
	LoopStep float64 `yaml:"loopStep" json:"loopStep"`

	// MarkerOffset is the distance a cardinality marker is drawn inward
	// from its anchor point, along the edge direction.
	MarkerOffset float64 `yaml:"markerOffset" json:"markerOffset"`

	// MarkerSize is the half-length of a marker's short segments.
	MarkerSize float64 `yaml:"markerSize" json:"markerSize"`
}

// DefaultStyle returns the style used when no override file is given.
func DefaultStyle() Style {
	return Style{
		CharWidth:        7.2,
		LineHeight:       18,
		Padding:          8,
		HeaderHeight:     24,
		BoxWidthMultiple: 8,
		GapX:             80,
		GapY:             60,
		Margin:           40,
		ParallelStride:   14,
		LoopRadius:       40,
		LoopStep:         12,
		MarkerOffset:     12,
		MarkerSize:       6,
	}
}

// LoadStyle reads and validates a YAML style override file.
func LoadStyle(path string) (Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, fmt.Errorf("reading style file: %w", err)
	}
	return LoadStyleFromBytes(data)
}

// LoadStyleFromBytes parses a YAML style document, starting from
// DefaultStyle so a partial override file only needs to name the fields
// it changes.
func LoadStyleFromBytes(data []byte) (Style, error) {
	style := DefaultStyle()
	if err := yaml.Unmarshal(data, &style); err != nil {
		return Style{}, fmt.Errorf("parsing style YAML: %w", err)
	}
	if err := style.Validate(); err != nil {
		return Style{}, fmt.Errorf("validating style: %w", err)
	}
	return style, nil
}

// Validate checks that every constant is strictly positive.
func (s Style) Validate() error {
	fields := map[string]float64{
		"charWidth":        s.CharWidth,
		"lineHeight":       s.LineHeight,
		"padding":          s.Padding,
		"headerHeight":     s.HeaderHeight,
		"boxWidthMultiple": s.BoxWidthMultiple,
		"gapX":             s.GapX,
		"gapY":             s.GapY,
		"margin":           s.Margin,
		"parallelStride":   s.ParallelStride,
		"loopRadius":       s.LoopRadius,
		"loopStep":         s.LoopStep,
		"markerOffset":     s.MarkerOffset,
		"markerSize":       s.MarkerSize,
	}
	for name, v := range fields {
		if v <= 0 {
			return fmt.Errorf("%s must be > 0, got %v", name, v)
		}
	}
	return nil
}

// ToYAML serializes the style to YAML bytes.
func (s Style) ToYAML() ([]byte, error) {
	return yaml.Marshal(s)
}
