package game

import (
	"strings"

	"github.com/Maurdekye/carcassonne-sub000/internal/common"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/core"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/tile"
)

// typeGlyphs maps segment types to board characters.
var typeGlyphs = map[tile.SegmentType]byte{
	tile.Farm:      '.',
	tile.City:      'C',
	tile.Road:      '#',
	tile.Village:   'o',
	tile.Monastery: 'M',
	tile.River:     '~',
}

// Board renders the placed tiles as ASCII art for logs and the demo. Each
// tile is a 3x3 cell: the side characters show what is mounted at each edge
// middle, the center shows the tile's most notable feature.
func (g *Game) Board() string {
	if len(g.placedTiles) == 0 {
		return "(empty board)\n"
	}
	minX, minY := 1<<30, 1<<30
	maxX, maxY := -(1 << 30), -(1 << 30)
	for pos := range g.placedTiles {
		minX = common.Min(minX, pos.X)
		maxX = common.Max(maxX, pos.X)
		minY = common.Min(minY, pos.Y)
		maxY = common.Max(maxY, pos.Y)
	}

	width := (maxX - minX + 1) * 4
	height := (maxY - minY + 1) * 4
	canvas := make([][]byte, height+1)
	for i := range canvas {
		canvas[i] = []byte(strings.Repeat(" ", width+1))
	}

	for pos, t := range g.placedTiles {
		ox := (pos.X - minX) * 4
		oy := (pos.Y - minY) * 4
		for dy := 0; dy <= 4; dy += 4 {
			for dx := 0; dx <= 4; dx++ {
				canvas[oy+dy][ox+dx] = '-'
			}
		}
		for dy := 0; dy <= 4; dy++ {
			for dx := 0; dx <= 4; dx += 4 {
				if canvas[oy+dy][ox+dx] == '-' {
					canvas[oy+dy][ox+dx] = '+'
				} else {
					canvas[oy+dy][ox+dx] = '|'
				}
			}
		}
		canvas[oy+1][ox+2] = glyphAt(t, core.North)
		canvas[oy+2][ox+3] = glyphAt(t, core.East)
		canvas[oy+3][ox+2] = glyphAt(t, core.South)
		canvas[oy+2][ox+1] = glyphAt(t, core.West)
		canvas[oy+2][ox+2] = centerGlyph(t)
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func glyphAt(t *tile.Tile, o core.Orientation) byte {
	seg := t.Segments[t.Mount(o, core.PositionMiddle)]
	return typeGlyphs[seg.Type]
}

// centerGlyph favors the rarest feature on the tile so monasteries and
// villages stay visible.
func centerGlyph(t *tile.Tile) byte {
	priority := []tile.SegmentType{tile.Monastery, tile.Village, tile.City, tile.Road, tile.River}
	for _, typ := range priority {
		for _, seg := range t.Segments {
			if seg.Type == typ {
				return typeGlyphs[typ]
			}
		}
	}
	return typeGlyphs[tile.Farm]
}
