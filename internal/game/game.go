package game

import (
	"math/rand"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Maurdekye/carcassonne-sub000/internal/game/core"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/deck"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/tile"
	"github.com/Maurdekye/carcassonne-sub000/internal/slotmap"
)

// DefaultMeeplesPerPlayer is the meeple stock each player starts with.
const DefaultMeeplesPerPlayer = 7

// Options tune rule variants that are not part of the core placement logic.
type Options struct {
	// MeeplesPerPlayer is the starting meeple stock for new players.
	MeeplesPerPlayer int
	// EnforceClaimedGroups rejects meeple placement onto groups that
	// already carry a meeple. Disable for variants that allow contesting
	// a group directly.
	EnforceClaimedGroups bool
}

// DefaultOptions returns the standard rule set.
func DefaultOptions() Options {
	return Options{
		MeeplesPerPlayer:     DefaultMeeplesPerPlayer,
		EnforceClaimedGroups: true,
	}
}

// Game is the authoritative board state: the draw pile, every placed tile,
// the segment groups spanning them, and the players. All methods must be
// called from a single goroutine; Game performs no internal locking.
type Game struct {
	library           []*tile.Tile
	placedTiles       map[core.GridPos]*tile.Tile
	groups            *slotmap.Map[SegmentGroup]
	groupAssociations map[core.SegmentIdentifier]GroupIdentifier
	players           *slotmap.Map[Player]
	validPlacements   map[core.GridPos]struct{}

	opts   Options
	logger zerolog.Logger
}

// NewGame creates an empty game with the standard tile library, shuffled
// under the given seed.
func NewGame(seed int64, opts Options) *Game {
	rng := rand.New(rand.NewSource(seed))
	lib := deck.NewBuilder(deck.DefaultConfig(), rng).Build()
	return NewGameWithLibrary(lib, opts)
}

// NewGameWithLibrary creates an empty game drawing from the given pile. The
// last element of the pile is drawn first. The game takes ownership of the
// tiles.
func NewGameWithLibrary(library []*tile.Tile, opts Options) *Game {
	if opts.MeeplesPerPlayer <= 0 {
		opts.MeeplesPerPlayer = DefaultMeeplesPerPlayer
	}
	return &Game{
		library:           library,
		placedTiles:       make(map[core.GridPos]*tile.Tile),
		groups:            slotmap.New[SegmentGroup](),
		groupAssociations: make(map[core.SegmentIdentifier]GroupIdentifier),
		players:           slotmap.New[Player](),
		validPlacements:   map[core.GridPos]struct{}{{X: 0, Y: 0}: {}},
		opts:              opts,
		logger:            log.With().Str("component", "game").Logger(),
	}
}

// SetLogger replaces the game's logger. Useful for tagging log lines with a
// session identifier.
func (g *Game) SetLogger(logger zerolog.Logger) { g.logger = logger }

// AddPlayer registers a player and returns their identifier. Players start
// with a full meeple stock and zero score.
func (g *Game) AddPlayer(p Player) PlayerIdentifier {
	p.Meeples = g.opts.MeeplesPerPlayer
	p.Score = 0
	return g.players.Insert(p)
}

// Player returns the player behind the identifier, or nil if it is stale.
func (g *Game) Player(key PlayerIdentifier) *Player { return g.players.Get(key) }

// PlayerKeys returns every live player identifier in insertion order.
func (g *Game) PlayerKeys() []PlayerIdentifier { return g.players.Keys() }

// TilesRemaining reports how many tiles are left in the draw pile.
func (g *Game) TilesRemaining() int { return len(g.library) }

// TileAt returns the placed tile at pos, or nil.
func (g *Game) TileAt(pos core.GridPos) *tile.Tile { return g.placedTiles[pos] }

// PlacedTileCount reports how many tiles are on the board.
func (g *Game) PlacedTileCount() int { return len(g.placedTiles) }

// PlacedPositions returns every occupied position in deterministic order.
func (g *Game) PlacedPositions() []core.GridPos {
	positions := make([]core.GridPos, 0, len(g.placedTiles))
	for pos := range g.placedTiles {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].Less(positions[j]) })
	return positions
}

// Group returns the group behind the identifier, or nil if the identifier
// is stale (for example after the group was consumed by a merge).
func (g *Game) Group(key GroupIdentifier) *SegmentGroup { return g.groups.Get(key) }

// GroupKeys returns every live group identifier in ascending order.
func (g *Game) GroupKeys() []GroupIdentifier { return g.groups.Keys() }

// GroupAndKeyBySegment resolves the group containing the given segment.
func (g *Game) GroupAndKeyBySegment(seg core.SegmentIdentifier) (*SegmentGroup, GroupIdentifier, bool) {
	key, ok := g.groupAssociations[seg]
	if !ok {
		return nil, GroupIdentifier{}, false
	}
	group := g.groups.Get(key)
	if group == nil {
		return nil, GroupIdentifier{}, false
	}
	return group, key, true
}

// IsValidTilePosition reports whether t, in its current rotation, may be
// placed at pos: the cell must be empty, adjacent to at least one placed
// tile (or the origin on an empty board), and every facing edge pair must
// mount cleanly.
func (g *Game) IsValidTilePosition(t *tile.Tile, pos core.GridPos) bool {
	if _, occupied := g.placedTiles[pos]; occupied {
		return false
	}
	if _, ok := g.validPlacements[pos]; !ok {
		return false
	}
	for _, o := range core.Orientations {
		neighbor, ok := g.placedTiles[pos.Neighbor(o)]
		if !ok {
			continue
		}
		if t.ValidateMounting(neighbor, o) == nil {
			return false
		}
	}
	return true
}

// PlaceablePositions returns every frontier position where some rotation of
// t fits, in deterministic board order.
func (g *Game) PlaceablePositions(t *tile.Tile) []core.GridPos {
	var positions []core.GridPos
	rotations := t.Rotations()
	for pos := range g.validPlacements {
		for _, r := range rotations {
			if g.IsValidTilePosition(r, pos) {
				positions = append(positions, pos)
				break
			}
		}
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i].Less(positions[j]) })
	return positions
}

// DrawPlaceableTile pops tiles off the pile until one fits somewhere on the
// board, recycling unplaceable tiles to the bottom. It returns the drawn
// tile together with its placeable positions, or ok=false when no tile in
// the pile can be placed (which ends the game).
func (g *Game) DrawPlaceableTile() (*tile.Tile, []core.GridPos, bool) {
	for attempts := len(g.library); attempts > 0; attempts-- {
		t := g.library[len(g.library)-1]
		g.library = g.library[:len(g.library)-1]
		positions := g.PlaceablePositions(t)
		if len(positions) > 0 {
			return t, positions, true
		}
		g.logger.Debug().Str("tile", t.Name).Msg("recycling unplaceable tile")
		g.library = append([]*tile.Tile{t}, g.library...)
	}
	return nil, nil, false
}

// edgeRemoval marks a previously free edge of an existing group that the new
// tile now covers.
type edgeRemoval struct {
	segment core.SegmentIdentifier
	edge    core.EdgeIdentifier
}

// edgeOpening marks an unmatched edge of the new tile that becomes a free
// edge of whichever group its segment lands in.
type edgeOpening struct {
	segment int
	edge    core.EdgeIdentifier
}

// PlaceTile commits t at pos, merging the tile's segments into the
// surrounding groups. It returns the identifiers of every group the
// placement closed, in ascending order. The game takes ownership of t.
//
// On a validation error the game state is unchanged: every mounting is
// checked before the first mutation.
func (g *Game) PlaceTile(t *tile.Tile, pos core.GridPos) ([]GroupIdentifier, error) {
	if _, occupied := g.placedTiles[pos]; occupied {
		return nil, errors.Wrapf(core.ErrOccupiedPosition, "position %v", pos)
	}
	if _, ok := g.validPlacements[pos]; !ok {
		return nil, errors.Wrapf(core.ErrInvalidPlacement, "position %v is not adjacent to the board", pos)
	}

	// Phase 1: validate every mounting and gather, per new segment, the
	// existing groups it touches, plus the free-edge bookkeeping deltas.
	insertions := make(map[int][]GroupIdentifier)
	var removals []edgeRemoval
	var openings []edgeOpening
	for _, o := range core.Orientations {
		npos := pos.Neighbor(o)
		neighbor, ok := g.placedTiles[npos]
		if !ok {
			edge := core.EdgeIdentifier{Pos: pos, Orientation: o}
			for _, segIdx := range distinctMounts(t, o) {
				openings = append(openings, edgeOpening{segment: segIdx, edge: edge})
			}
			continue
		}
		pairs := t.ValidateMounting(neighbor, o)
		if pairs == nil {
			return nil, errors.Wrapf(core.ErrInvalidPlacement, "tile %s does not mount %s edge at %v", t.Name, o, pos)
		}
		facing := core.EdgeIdentifier{Pos: npos, Orientation: o.Opposite()}
		for _, segIdx := range distinctMounts(neighbor, o.Opposite()) {
			removals = append(removals, edgeRemoval{
				segment: core.SegmentIdentifier{Pos: npos, Segment: segIdx},
				edge:    facing,
			})
		}
		for _, pair := range pairs {
			adjSeg := core.SegmentIdentifier{Pos: npos, Segment: pair.ToSegment}
			key, ok := g.groupAssociations[adjSeg]
			if !ok {
				return nil, errors.Wrapf(core.ErrNoGroupAssociation, "segment %v", adjSeg)
			}
			if !containsKey(insertions[pair.FromSegment], key) {
				insertions[pair.FromSegment] = append(insertions[pair.FromSegment], key)
			}
		}
	}

	// Phase 2: mutate. Place the tile, then fold each new segment into
	// the group structure. Segments touching exactly one existing group
	// join it; segments bridging several groups merge them into a fresh
	// group. Merges retire the old identifiers, so later references are
	// chased through a rewrite map.
	g.placedTiles[pos] = t

	rewrites := make(map[GroupIdentifier]GroupIdentifier)
	resolve := func(key GroupIdentifier) GroupIdentifier {
		for {
			next, ok := rewrites[key]
			if !ok {
				return key
			}
			key = next
		}
	}

	for segIdx := range t.Segments {
		segID := core.SegmentIdentifier{Pos: pos, Segment: segIdx}
		touched := insertions[segIdx]
		if len(touched) == 0 {
			key := g.groups.Insert(SegmentGroup{
				Type:      t.Segments[segIdx].Type,
				Segments:  []core.SegmentIdentifier{segID},
				FreeEdges: make(map[core.EdgeIdentifier]struct{}),
			})
			g.groupAssociations[segID] = key
			continue
		}

		resolved := make([]GroupIdentifier, 0, len(touched))
		for _, key := range touched {
			key = resolve(key)
			if !containsKey(resolved, key) {
				resolved = append(resolved, key)
			}
		}

		if len(resolved) == 1 {
			key := resolved[0]
			group := g.groups.Get(key)
			group.Segments = append(group.Segments, segID)
			group.invalidate()
			g.groupAssociations[segID] = key
			continue
		}

		merged := SegmentGroup{
			Type:      t.Segments[segIdx].Type,
			FreeEdges: make(map[core.EdgeIdentifier]struct{}),
		}
		for _, key := range resolved {
			old, ok := g.groups.Remove(key)
			if !ok {
				return nil, errors.Wrapf(core.ErrStaleGroup, "merging group %v", key)
			}
			merged.Segments = append(merged.Segments, old.Segments...)
			merged.Meeples = append(merged.Meeples, old.Meeples...)
			for e := range old.FreeEdges {
				merged.FreeEdges[e] = struct{}{}
			}
		}
		merged.Segments = append(merged.Segments, segID)
		newKey := g.groups.Insert(merged)
		for _, seg := range g.groups.Get(newKey).Segments {
			g.groupAssociations[seg] = newKey
		}
		for _, key := range resolved {
			rewrites[key] = newKey
		}
	}

	// Phase 3: apply the free-edge deltas and collect closures.
	candidates := make(map[GroupIdentifier]struct{})
	for _, op := range openings {
		segID := core.SegmentIdentifier{Pos: pos, Segment: op.segment}
		key := g.groupAssociations[segID]
		g.groups.Get(key).FreeEdges[op.edge] = struct{}{}
	}
	for _, rm := range removals {
		key, ok := g.groupAssociations[rm.segment]
		if !ok {
			return nil, errors.Wrapf(core.ErrNoGroupAssociation, "segment %v", rm.segment)
		}
		key = resolve(key)
		group := g.groups.Get(key)
		delete(group.FreeEdges, rm.edge)
		group.invalidate()
		candidates[key] = struct{}{}
	}

	var closed []GroupIdentifier
	for key := range candidates {
		group := g.groups.Get(key)
		if group.Type == tile.Monastery {
			continue
		}
		if group.IsClosed() {
			closed = append(closed, key)
		}
	}

	// Monasteries close by surroundment, not edges. Only cells within the
	// new tile's 3x3 neighborhood can have gained their final neighbor.
	scan := append(pos.SurroundingPositions(), pos)
	for _, p := range scan {
		mt, ok := g.placedTiles[p]
		if !ok {
			continue
		}
		for segIdx, seg := range mt.Segments {
			if seg.Type != tile.Monastery {
				continue
			}
			if !g.allSurroundingOccupied(p) {
				continue
			}
			key := g.groupAssociations[core.SegmentIdentifier{Pos: p, Segment: segIdx}]
			if !containsKey(closed, key) {
				closed = append(closed, key)
			}
		}
	}
	sort.Slice(closed, func(i, j int) bool { return closed[i].Less(closed[j]) })

	// Phase 4: advance the placement frontier.
	delete(g.validPlacements, pos)
	for _, o := range core.Orientations {
		npos := pos.Neighbor(o)
		if _, occupied := g.placedTiles[npos]; !occupied {
			g.validPlacements[npos] = struct{}{}
		}
	}

	g.logger.Debug().
		Str("tile", t.Name).
		Stringer("pos", pos).
		Int("closed_groups", len(closed)).
		Msg("tile placed")
	return closed, nil
}

// PlaceMeeple puts one of the player's meeples on the given segment,
// claiming its group.
func (g *Game) PlaceMeeple(seg core.SegmentIdentifier, player PlayerIdentifier) error {
	p := g.players.Get(player)
	if p == nil {
		return errors.Wrapf(core.ErrStalePlayer, "player %v", player)
	}
	group, key, ok := g.GroupAndKeyBySegment(seg)
	if !ok {
		return errors.Wrapf(core.ErrNoGroupAssociation, "segment %v", seg)
	}
	if g.opts.EnforceClaimedGroups && len(group.Meeples) > 0 {
		return errors.Wrapf(core.ErrGroupAlreadyClaimed, "group %v", key)
	}
	if p.Meeples <= 0 {
		return errors.Wrapf(core.ErrNoMeeplesRemaining, "player %s", p.Name)
	}
	p.Meeples--
	group.Meeples = append(group.Meeples, MeeplePlacement{Segment: seg, Player: player})
	group.invalidateScoring()
	g.logger.Debug().
		Str("player", p.Name).
		Stringer("pos", seg.Pos).
		Int("segment", seg.Segment).
		Msg("meeple placed")
	return nil
}

// allSurroundingOccupied reports whether all eight cells around pos hold a
// tile.
func (g *Game) allSurroundingOccupied(pos core.GridPos) bool {
	for _, p := range pos.SurroundingPositions() {
		if _, ok := g.placedTiles[p]; !ok {
			return false
		}
	}
	return true
}

// distinctMounts returns the segment indices mounted on edge o of t, in
// slot order without duplicates.
func distinctMounts(t *tile.Tile, o core.Orientation) []int {
	var out []int
	for _, p := range core.MountPositions {
		idx := t.Mount(o, p)
		if !containsInt(out, idx) {
			out = append(out, idx)
		}
	}
	return out
}

func containsKey(keys []GroupIdentifier, key GroupIdentifier) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
