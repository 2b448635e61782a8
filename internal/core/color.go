package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorOrange
	ColorGray
)

// Roles used by the lander renderer.
const (
	ColorTerrain = ColorGray
	ColorPad     = ColorBrightGreen
	ColorHull    = ColorBrightYellow
	ColorLegs    = ColorYellow
	ColorFlame   = ColorOrange
	ColorHUD     = ColorCyan
	ColorAlert   = ColorBrightRed
)
