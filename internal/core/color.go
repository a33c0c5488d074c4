package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI colors in the platform renderer.
type Color uint8

// Colors used by the breakout renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)
