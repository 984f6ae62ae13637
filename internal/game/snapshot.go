package game

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Maurdekye/carcassonne-sub000/internal/game/core"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/tile"
	"github.com/Maurdekye/carcassonne-sub000/internal/slotmap"
)

// placedTileJSON pairs a board position with its tile. Positions cannot be
// JSON object keys, so the placement map serializes as a list.
type placedTileJSON struct {
	Pos  core.GridPos `json:"pos"`
	Tile *tile.Tile   `json:"tile"`
}

type associationJSON struct {
	Segment core.SegmentIdentifier `json:"segment"`
	Group   GroupIdentifier        `json:"group"`
}

type optionsJSON struct {
	MeeplesPerPlayer     int  `json:"meeples_per_player"`
	EnforceClaimedGroups bool `json:"enforce_claimed_groups"`
}

type snapshotJSON struct {
	Library      []*tile.Tile               `json:"library"`
	PlacedTiles  []placedTileJSON           `json:"placed_tiles"`
	Groups       *slotmap.Map[SegmentGroup] `json:"groups"`
	Players      *slotmap.Map[Player]       `json:"players"`
	Associations []associationJSON          `json:"associations"`
	Frontier     []core.GridPos             `json:"frontier"`
	Options      optionsJSON                `json:"options"`
}

// Snapshot serializes the complete game state, preserving slot generations
// so identifiers held by callers stay valid across a restore.
func (g *Game) Snapshot() ([]byte, error) {
	placed := make([]placedTileJSON, 0, len(g.placedTiles))
	for _, pos := range g.PlacedPositions() {
		placed = append(placed, placedTileJSON{Pos: pos, Tile: g.placedTiles[pos]})
	}
	assocs := make([]associationJSON, 0, len(g.groupAssociations))
	for seg, key := range g.groupAssociations {
		assocs = append(assocs, associationJSON{Segment: seg, Group: key})
	}
	sort.Slice(assocs, func(i, j int) bool {
		if assocs[i].Segment.Pos != assocs[j].Segment.Pos {
			return assocs[i].Segment.Pos.Less(assocs[j].Segment.Pos)
		}
		return assocs[i].Segment.Segment < assocs[j].Segment.Segment
	})
	frontier := make([]core.GridPos, 0, len(g.validPlacements))
	for pos := range g.validPlacements {
		frontier = append(frontier, pos)
	}
	sort.Slice(frontier, func(i, j int) bool { return frontier[i].Less(frontier[j]) })

	data, err := json.Marshal(snapshotJSON{
		Library:      g.library,
		PlacedTiles:  placed,
		Groups:       g.groups,
		Players:      g.players,
		Associations: assocs,
		Frontier:     frontier,
		Options: optionsJSON{
			MeeplesPerPlayer:     g.opts.MeeplesPerPlayer,
			EnforceClaimedGroups: g.opts.EnforceClaimedGroups,
		},
	})
	return data, errors.Wrap(err, "encoding game snapshot")
}

// RestoreGame rebuilds a game from a snapshot produced by Snapshot.
func RestoreGame(data []byte) (*Game, error) {
	raw := snapshotJSON{
		Groups:  slotmap.New[SegmentGroup](),
		Players: slotmap.New[Player](),
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decoding game snapshot")
	}
	g := &Game{
		library:           raw.Library,
		placedTiles:       make(map[core.GridPos]*tile.Tile, len(raw.PlacedTiles)),
		groups:            raw.Groups,
		groupAssociations: make(map[core.SegmentIdentifier]GroupIdentifier, len(raw.Associations)),
		players:           raw.Players,
		validPlacements:   make(map[core.GridPos]struct{}, len(raw.Frontier)),
		opts: Options{
			MeeplesPerPlayer:     raw.Options.MeeplesPerPlayer,
			EnforceClaimedGroups: raw.Options.EnforceClaimedGroups,
		},
		logger: log.With().Str("component", "game").Logger(),
	}
	for _, pt := range raw.PlacedTiles {
		g.placedTiles[pt.Pos] = pt.Tile
	}
	for _, a := range raw.Associations {
		g.groupAssociations[a.Segment] = a.Group
	}
	for _, pos := range raw.Frontier {
		g.validPlacements[pos] = struct{}{}
	}
	if len(g.placedTiles) == 0 && len(g.validPlacements) == 0 {
		g.validPlacements[core.GridPos{}] = struct{}{}
	}
	return g, nil
}
