package tile

import (
	"github.com/golang/geo/r2"

	"github.com/Maurdekye/carcassonne-sub000/internal/game/core"
)

// The standard tile catalog. Border walks run clockwise; edge spans break at
// the road width (0.45/0.55). Interior vertices are listed per tile and
// referenced by index.

func pt(x, y float64) r2.Point { return r2.Point{X: x, Y: y} }

// StraightRoad is a road crossing west to east with fields on both sides.
var StraightRoad = NewTile("straight_road",
	nil,
	[]Segment{
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanEnd, core.West), Edge(core.SpanFull, core.North), Edge(core.SpanBeginning, core.East),
		}},
		{Type: Road, Border: []BorderPiece{
			Edge(core.SpanMiddle, core.West), Edge(core.SpanMiddle, core.East),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanBeginning, core.West), Edge(core.SpanEnd, core.East), Edge(core.SpanFull, core.South),
		}},
	})

// CurveRoad is a road bending from the west edge to the north edge.
var CurveRoad = NewTile("curve_road",
	[]r2.Point{pt(0.45, 0.45), pt(0.55, 0.55)},
	[]Segment{
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanEnd, core.West), Edge(core.SpanBeginning, core.North), Vertex(0),
		}},
		{Type: Road, Border: []BorderPiece{
			Edge(core.SpanMiddle, core.West), Vertex(0), Edge(core.SpanMiddle, core.North), Vertex(1),
		}, Attributes: []SegmentAttribute{CustomMeepleSpot(pt(0.5, 0.5))}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanBeginning, core.West), Vertex(1), Edge(core.SpanEnd, core.North),
			Edge(core.SpanFull, core.East), Edge(core.SpanFull, core.South),
		}, Attributes: []SegmentAttribute{CustomMeepleSpot(pt(0.75, 0.75))}},
	})

// DeadEndRoad is a road entering from the south and stopping mid-tile.
var DeadEndRoad = NewTile("dead_end_road",
	[]r2.Point{pt(0.45, 0.3), pt(0.55, 0.3)},
	[]Segment{
		{Type: Road, Border: []BorderPiece{
			Edge(core.SpanMiddle, core.South), Vertex(0), Vertex(1),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanEnd, core.South), Edge(core.SpanFull, core.West), Edge(core.SpanFull, core.North),
			Edge(core.SpanFull, core.East), Edge(core.SpanBeginning, core.South), Vertex(1), Vertex(0),
		}},
	})

// Crossroads is a three-way road junction with a village at its center.
var Crossroads = NewTile("crossroads",
	[]r2.Point{
		pt(0.35, 0.45), pt(0.65, 0.45), pt(0.65, 0.55),
		pt(0.55, 0.65), pt(0.45, 0.65), pt(0.35, 0.55),
	},
	[]Segment{
		{Type: Village, Border: []BorderPiece{
			Vertex(0), Vertex(1), Vertex(2), Vertex(3), Vertex(4), Vertex(5),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanEnd, core.West), Edge(core.SpanFull, core.North), Edge(core.SpanBeginning, core.East),
			Vertex(1), Vertex(0),
		}},
		{Type: Road, Border: []BorderPiece{
			Edge(core.SpanMiddle, core.East), Vertex(2), Vertex(1),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanEnd, core.East), Edge(core.SpanBeginning, core.South), Vertex(3), Vertex(2),
		}},
		{Type: Road, Border: []BorderPiece{
			Edge(core.SpanMiddle, core.South), Vertex(4), Vertex(3),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanEnd, core.South), Edge(core.SpanBeginning, core.West), Vertex(5), Vertex(4),
		}},
		{Type: Road, Border: []BorderPiece{
			Edge(core.SpanMiddle, core.West), Vertex(0), Vertex(5),
		}},
	})

// FourWayCrossroads is a four-way road junction with a village at its center.
var FourWayCrossroads = NewTile("four_way_crossroads",
	[]r2.Point{
		pt(0.35, 0.45), pt(0.45, 0.35), pt(0.55, 0.35), pt(0.65, 0.45),
		pt(0.65, 0.55), pt(0.55, 0.65), pt(0.45, 0.65), pt(0.35, 0.55),
	},
	[]Segment{
		{Type: Village, Border: []BorderPiece{
			Vertex(0), Vertex(1), Vertex(2), Vertex(3), Vertex(4), Vertex(5), Vertex(6), Vertex(7),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanEnd, core.West), Edge(core.SpanBeginning, core.North), Vertex(1), Vertex(0),
		}},
		{Type: Road, Border: []BorderPiece{
			Edge(core.SpanMiddle, core.North), Vertex(2), Vertex(1),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanEnd, core.North), Edge(core.SpanBeginning, core.East), Vertex(3), Vertex(2),
		}},
		{Type: Road, Border: []BorderPiece{
			Edge(core.SpanMiddle, core.East), Vertex(4), Vertex(3),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanEnd, core.East), Edge(core.SpanBeginning, core.South), Vertex(5), Vertex(4),
		}},
		{Type: Road, Border: []BorderPiece{
			Edge(core.SpanMiddle, core.South), Vertex(6), Vertex(5),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanEnd, core.South), Edge(core.SpanBeginning, core.West), Vertex(7), Vertex(6),
		}},
		{Type: Road, Border: []BorderPiece{
			Edge(core.SpanMiddle, core.West), Vertex(0), Vertex(7),
		}},
	})

// CornerCity is a city filling the northwest corner, field on the rest.
var CornerCity = NewTile("corner_city",
	nil,
	[]Segment{
		{Type: City, Border: []BorderPiece{
			Edge(core.SpanFull, core.West), Edge(core.SpanFull, core.North),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanFull, core.East), Edge(core.SpanFull, core.South),
		}},
	})

// FortifiedCornerCity is CornerCity with a pennant.
var FortifiedCornerCity = NewTile("fortified_corner_city",
	nil,
	[]Segment{
		{Type: City, Border: []BorderPiece{
			Edge(core.SpanFull, core.West), Edge(core.SpanFull, core.North),
		}, Attributes: []SegmentAttribute{Fortified(pt(0.25, 0.25))}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanFull, core.East), Edge(core.SpanFull, core.South),
		}},
	})

// CityEntrance is a city cap on the north edge with a road leading into it
// from the south.
var CityEntrance = NewTile("city_entrance",
	[]r2.Point{pt(0.45, 0.3), pt(0.55, 0.3)},
	[]Segment{
		{Type: City, Border: []BorderPiece{
			Edge(core.SpanFull, core.North), Vertex(1), Vertex(0),
		}},
		{Type: Road, Border: []BorderPiece{
			Edge(core.SpanMiddle, core.South), Vertex(0), Vertex(1),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanEnd, core.South), Edge(core.SpanFull, core.West), Vertex(0),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanFull, core.East), Edge(core.SpanBeginning, core.South), Vertex(1),
		}},
	})

// StartingTile is the classic opener: a city cap on the north edge and a road
// crossing west to east.
var StartingTile = NewTile("starting_tile",
	[]r2.Point{pt(0.45, 0.3), pt(0.55, 0.3)},
	[]Segment{
		{Type: City, Border: []BorderPiece{
			Edge(core.SpanFull, core.North), Vertex(1), Vertex(0),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanEnd, core.West), Vertex(0), Vertex(1), Edge(core.SpanBeginning, core.East),
		}},
		{Type: Road, Border: []BorderPiece{
			Edge(core.SpanMiddle, core.West), Edge(core.SpanMiddle, core.East),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanBeginning, core.West), Edge(core.SpanEnd, core.East), Edge(core.SpanFull, core.South),
		}},
	})

// AdjacentEdgeCities carries two disconnected city caps on the north and east
// edges.
var AdjacentEdgeCities = NewTile("adjacent_edge_cities",
	[]r2.Point{pt(0.4, 0.25), pt(0.6, 0.25), pt(0.75, 0.4), pt(0.75, 0.6)},
	[]Segment{
		{Type: City, Border: []BorderPiece{
			Edge(core.SpanFull, core.North), Vertex(1), Vertex(0),
		}},
		{Type: City, Border: []BorderPiece{
			Edge(core.SpanFull, core.East), Vertex(3), Vertex(2),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanFull, core.South), Edge(core.SpanFull, core.West),
			Vertex(0), Vertex(1), Vertex(2), Vertex(3),
		}},
	})

// OpposingEdgeCities carries two disconnected city caps on the north and
// south edges.
var OpposingEdgeCities = NewTile("opposing_edge_cities",
	[]r2.Point{pt(0.4, 0.25), pt(0.6, 0.25), pt(0.4, 0.75), pt(0.6, 0.75)},
	[]Segment{
		{Type: City, Border: []BorderPiece{
			Edge(core.SpanFull, core.North), Vertex(1), Vertex(0),
		}},
		{Type: City, Border: []BorderPiece{
			Edge(core.SpanFull, core.South), Vertex(2), Vertex(3),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanFull, core.West), Vertex(0), Vertex(1),
			Edge(core.SpanFull, core.East), Vertex(3), Vertex(2),
		}},
	})

// BridgeCity is a single city spanning west to east, splitting the farm in
// two.
var BridgeCity = NewTile("bridge_city",
	[]r2.Point{pt(0.5, 0.25), pt(0.5, 0.75)},
	[]Segment{
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanFull, core.North), Vertex(0),
		}},
		{Type: City, Border: []BorderPiece{
			Edge(core.SpanFull, core.West), Vertex(0), Edge(core.SpanFull, core.East), Vertex(1),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanFull, core.South), Vertex(1),
		}},
	})

// ThreeQuarterCity is a city covering the west, north and east edges with a
// field cap on the south.
var ThreeQuarterCity = NewTile("three_quarter_city",
	[]r2.Point{pt(0.4, 0.8), pt(0.6, 0.8)},
	[]Segment{
		{Type: City, Border: []BorderPiece{
			Edge(core.SpanFull, core.West), Edge(core.SpanFull, core.North), Edge(core.SpanFull, core.East),
			Vertex(1), Vertex(0),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanFull, core.South), Vertex(0), Vertex(1),
		}},
	})

// FortifiedThreeQuarterCityEntrance is a pennanted three-quarter city with a
// road reaching its wall from the south.
var FortifiedThreeQuarterCityEntrance = NewTile("fortified_three_quarter_city_entrance",
	[]r2.Point{pt(0.4, 0.8), pt(0.6, 0.8), pt(0.45, 0.8), pt(0.55, 0.8)},
	[]Segment{
		{Type: City, Border: []BorderPiece{
			Edge(core.SpanFull, core.West), Edge(core.SpanFull, core.North), Edge(core.SpanFull, core.East),
			Vertex(1), Vertex(0),
		}, Attributes: []SegmentAttribute{Fortified(pt(0.5, 0.3))}},
		{Type: Road, Border: []BorderPiece{
			Edge(core.SpanMiddle, core.South), Vertex(2), Vertex(3),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanEnd, core.South), Vertex(0), Vertex(2),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanBeginning, core.South), Vertex(3), Vertex(1),
		}},
	})

// FullCity covers the whole tile and carries a pennant.
var FullCity = NewTile("full_city",
	nil,
	[]Segment{
		{Type: City, Border: []BorderPiece{
			Edge(core.SpanFull, core.West), Edge(core.SpanFull, core.North),
			Edge(core.SpanFull, core.East), Edge(core.SpanFull, core.South),
		}, Attributes: []SegmentAttribute{Fortified(pt(0.5, 0.5))}},
	})

// MonasteryTile is a monastery building surrounded by farm on all sides. The
// farm has two boundary loops: the tile border and the ring around the
// building.
var MonasteryTile = NewTile("monastery",
	[]r2.Point{pt(0.3, 0.7), pt(0.3, 0.3), pt(0.5, 0.15), pt(0.7, 0.3), pt(0.7, 0.7)},
	[]Segment{
		{Type: Monastery, Border: []BorderPiece{
			Vertex(0), Vertex(1), Vertex(2), Vertex(3), Vertex(4),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanFull, core.West), Edge(core.SpanFull, core.North),
			Edge(core.SpanFull, core.East), Edge(core.SpanFull, core.South),
			Break(),
			Vertex(0), Vertex(4), Vertex(3), Vertex(2), Vertex(1), Vertex(0),
			Break(),
		}, Attributes: []SegmentAttribute{CustomMeepleSpot(pt(0.8, 0.5))}},
	})

// RoadMonastery is a monastery with a road approaching from the south.
var RoadMonastery = NewTile("road_monastery",
	[]r2.Point{
		pt(0.3, 0.7), pt(0.3, 0.3), pt(0.5, 0.15), pt(0.7, 0.3), pt(0.7, 0.7),
		pt(0.55, 0.7), pt(0.45, 0.7),
	},
	[]Segment{
		{Type: Monastery, Border: []BorderPiece{
			Vertex(0), Vertex(1), Vertex(2), Vertex(3), Vertex(4),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanEnd, core.South), Edge(core.SpanFull, core.West), Edge(core.SpanFull, core.North),
			Edge(core.SpanFull, core.East), Edge(core.SpanBeginning, core.South),
			Vertex(5), Vertex(4), Vertex(3), Vertex(2), Vertex(1), Vertex(0), Vertex(6),
		}, Attributes: []SegmentAttribute{CustomMeepleSpot(pt(0.8, 0.5))}},
		{Type: Road, Border: []BorderPiece{
			Edge(core.SpanMiddle, core.South), Vertex(6), Vertex(5),
		}},
	})

// StraightRiver is a river crossing west to east. Not part of the base deck.
var StraightRiver = NewTile("straight_river",
	nil,
	[]Segment{
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanEnd, core.West), Edge(core.SpanFull, core.North), Edge(core.SpanBeginning, core.East),
		}},
		{Type: River, Border: []BorderPiece{
			Edge(core.SpanMiddle, core.West), Edge(core.SpanMiddle, core.East),
		}},
		{Type: Farm, Border: []BorderPiece{
			Edge(core.SpanBeginning, core.West), Edge(core.SpanEnd, core.East), Edge(core.SpanFull, core.South),
		}},
	})

// Tally pairs a catalog tile with how many copies the standard deck holds.
type Tally struct {
	Tile  *Tile
	Count int
}

// DefaultTileTallies returns the standard deck composition, excluding the
// starting tile.
func DefaultTileTallies() []Tally {
	return []Tally{
		{StraightRoad, 8},
		{CurveRoad, 9},
		{Crossroads, 4},
		{FourWayCrossroads, 1},
		{DeadEndRoad, 2},
		{CornerCity, 5},
		{FortifiedCornerCity, 2},
		{CityEntrance, 3},
		{AdjacentEdgeCities, 2},
		{OpposingEdgeCities, 3},
		{BridgeCity, 3},
		{ThreeQuarterCity, 3},
		{FortifiedThreeQuarterCityEntrance, 2},
		{FullCity, 1},
		{MonasteryTile, 4},
		{RoadMonastery, 2},
	}
}
