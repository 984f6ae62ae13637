// Package common holds small helpers shared across packages.
package common

import (
	"image/color"
)

// NeutralColor is used for unowned markers.
var NeutralColor = color.RGBA{120, 120, 120, 255}

// playerPalette is the fixed color rotation handed out to players in join
// order.
var playerPalette = []color.RGBA{
	{200, 50, 50, 255},  // red
	{50, 100, 200, 255}, // blue
	{50, 200, 50, 255},  // green
	{200, 200, 50, 255}, // yellow
	{180, 80, 200, 255}, // purple
	{60, 190, 190, 255}, // teal
}

// PlayerColor returns the palette color for the nth player, cycling when
// the palette runs out.
func PlayerColor(n int) color.RGBA {
	if n < 0 {
		return NeutralColor
	}
	return playerPalette[n%len(playerPalette)]
}

// PaletteSize reports how many distinct player colors exist.
func PaletteSize() int {
	return len(playerPalette)
}
