// Package transition maps the horizontal offset of a page to the visual
// properties used to render it.
//
// Everything here is a pure function of its arguments; the package holds no
// state and never reaches back into the carousel.
package transition

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// Style selects which property follows the page offset.
type Style int

const (
	// Scale shrinks pages as they move away from the centre.
	Scale Style = iota
	// Rotate3D rotates pages around the vertical axis.
	Rotate3D
	// Opacity fades pages as they move away from the centre.
	Opacity
)

// String returns the configuration name of the style.
func (s Style) String() string {
	switch s {
	case Scale:
		return "scale"
	case Rotate3D:
		return "rotate3d"
	case Opacity:
		return "opacity"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// ParseStyle converts a configuration name into a Style.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scale":
		return Scale, nil
	case "rotate3d", "rotation3d", "rotate-3d":
		return Rotate3D, nil
	case "opacity":
		return Opacity, nil
	default:
		return 0, fmt.Errorf("unknown transition %q (use scale, rotate3d or opacity)", s)
	}
}

// MarshalYAML encodes the style by name.
func (s Style) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML decodes a style name.
func (s *Style) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseStyle(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = parsed
	return nil
}

// Visual holds the render properties for one page.
type Visual struct {
	// RotationY is the rotation around the vertical axis in degrees.
	RotationY float64
	// Opacity is in [0, 1].
	Opacity float64
	// Scale is in [0, 1].
	Scale float64
}

// Identity is the visual of a settled page.
var Identity = Visual{RotationY: 0, Opacity: 1, Scale: 1}

// Render computes the visual for a page displaced by offset on a screen of
// the given width. The scale style only applies while scaleEnabled is true.
func Render(offset, width float64, style Style, scaleEnabled bool) Visual {
	v := Identity
	switch style {
	case Rotate3D:
		v.RotationY = Rotation(offset)
	case Opacity:
		v.Opacity = Falloff(offset, width)
	case Scale:
		if scaleEnabled {
			v.Scale = Falloff(offset, width)
		}
	}
	return v
}

// Rotation returns the rotation angle in degrees for offset.
func Rotation(offset float64) float64 {
	return offset / -10
}

// Falloff returns 1 - |offset/width| clamped to [0, 1]. A non-positive width
// yields 1.
func Falloff(offset, width float64) float64 {
	if width <= 0 {
		return 1
	}
	v := 1 - math.Abs(offset/width)
	return math.Max(0, math.Min(1, v))
}
