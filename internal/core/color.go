package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorBrightWhite
	ColorGray
	ColorDarkGray
)

// String returns the color's name, used by the YAML config and sprite headers.
func (c Color) String() string {
	for name, v := range colorNames {
		if v == c {
			return name
		}
	}
	return "default"
}

var colorNames = map[string]Color{
	"default":       ColorDefault,
	"black":         ColorBlack,
	"red":           ColorRed,
	"green":         ColorGreen,
	"yellow":        ColorYellow,
	"blue":          ColorBlue,
	"white":         ColorWhite,
	"bright_red":    ColorBrightRed,
	"bright_yellow": ColorBrightYellow,
	"bright_white":  ColorBrightWhite,
	"gray":          ColorGray,
	"dark_gray":     ColorDarkGray,
}

// ParseColor resolves a color name. Unknown names map to ColorDefault.
func ParseColor(name string) (Color, bool) {
	c, ok := colorNames[name]
	return c, ok
}
