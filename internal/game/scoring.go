package game

import (
	"image/color"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/Maurdekye/carcassonne-sub000/internal/game/core"
	"github.com/Maurdekye/carcassonne-sub000/internal/game/tile"
)

// FarmPointsPerCity is awarded to farm owners for each completed city the
// farm touches.
const FarmPointsPerCity = 3

// ScoringResult describes one meeple returned during scoring, for score
// popups. Points is zero when the meeple's player was outnumbered on the
// group; when a player owns the group with several meeples the points ride
// on their first result.
type ScoringResult struct {
	Player PlayerIdentifier `json:"player"`
	Pos    r2.Point         `json:"pos"`
	Color  color.RGBA       `json:"color"`
	Points int              `json:"points"`
}

// GroupScoringDetails returns the group's current score and owners,
// computing and caching them if needed.
func (g *Game) GroupScoringDetails(key GroupIdentifier) (*ScoringDetails, error) {
	group := g.groups.Get(key)
	if group == nil {
		return nil, errors.Wrapf(core.ErrStaleGroup, "group %v", key)
	}
	if group.scoring == nil {
		group.scoring = &ScoringDetails{
			Score:  g.computeGroupScore(group),
			Owners: computeOwners(group),
		}
	}
	return group.scoring, nil
}

// ScoreGroup evaluates the group, credits every tied owner with the full
// score, and returns all meeples on it to their players' stocks. The group
// persists, emptied of meeples, and is excluded from end-of-game scoring.
// Scoring a city re-opens the score caches of adjacent farms.
func (g *Game) ScoreGroup(key GroupIdentifier) ([]ScoringResult, error) {
	group := g.groups.Get(key)
	if group == nil {
		return nil, errors.Wrapf(core.ErrStaleGroup, "group %v", key)
	}
	details, err := g.GroupScoringDetails(key)
	if err != nil {
		return nil, err
	}

	results := make([]ScoringResult, 0, len(group.Meeples))
	credited := make(map[PlayerIdentifier]struct{})
	for _, m := range group.Meeples {
		p := g.players.Get(m.Player)
		if p == nil {
			g.logger.Warn().
				Stringer("pos", m.Segment.Pos).
				Msg("meeple belongs to a removed player, discarding")
			continue
		}
		p.Meeples++
		points := 0
		if _, done := credited[m.Player]; !done && containsKey(details.Owners, m.Player) {
			credited[m.Player] = struct{}{}
			p.Score += details.Score
			points = details.Score
		}
		spot := g.placedTiles[m.Segment.Pos].MeepleSpot(m.Segment.Segment)
		results = append(results, ScoringResult{
			Player: m.Player,
			Pos: r2.Point{
				X: spot.X + float64(m.Segment.Pos.X),
				Y: spot.Y + float64(m.Segment.Pos.Y),
			},
			Color:  p.Color,
			Points: points,
		})
	}
	group.Meeples = nil
	group.Scored = true

	if group.Type == tile.City {
		g.invalidateAdjacentFarms(group)
	}
	g.logger.Debug().
		Stringer("type", group.Type).
		Int("score", details.Score).
		Int("meeples_returned", len(results)).
		Msg("group scored")
	return results, nil
}

// EndGameScoring scores every group that has not been scored yet, in
// ascending group order, and returns the combined results. Open groups
// score at their reduced values.
func (g *Game) EndGameScoring() []ScoringResult {
	var results []ScoringResult
	for _, key := range g.groups.Keys() {
		group := g.groups.Get(key)
		if group == nil || group.Scored {
			continue
		}
		rs, err := g.ScoreGroup(key)
		if err != nil {
			// Keys come straight from the arena, so this cannot be a
			// stale handle.
			g.logger.Error().Err(err).Msg("end-game scoring failed for group")
			continue
		}
		results = append(results, rs...)
	}
	return results
}

func (g *Game) computeGroupScore(group *SegmentGroup) int {
	switch group.Type {
	case tile.Road:
		return len(distinctPositions(group))
	case tile.City:
		return g.cityScore(group)
	case tile.Farm:
		return FarmPointsPerCity * len(g.adjacentClosedCities(group))
	case tile.Monastery:
		pos := group.Segments[0].Pos
		score := 1
		for _, p := range pos.SurroundingPositions() {
			if _, ok := g.placedTiles[p]; ok {
				score++
			}
		}
		return score
	default:
		// Villages and rivers are connective tissue, never worth points.
		return 0
	}
}

// cityScore sums per-tile values: fortified tiles are worth two, plain
// tiles one, and the whole total doubles on completion.
func (g *Game) cityScore(group *SegmentGroup) int {
	values := make(map[core.GridPos]int)
	for _, seg := range group.Segments {
		t := g.placedTiles[seg.Pos]
		value := 1
		if t.Segments[seg.Segment].IsFortified() {
			value = 2
		}
		if value > values[seg.Pos] {
			values[seg.Pos] = value
		}
	}
	score := 0
	for _, v := range values {
		score += v
	}
	if group.IsClosed() {
		score *= 2
	}
	return score
}

// adjacentClosedCities returns the distinct completed city groups whose
// segments share a boundary with the farm, discovered through within-tile
// segment adjacency.
func (g *Game) adjacentClosedCities(group *SegmentGroup) []GroupIdentifier {
	var cities []GroupIdentifier
	for _, seg := range group.Segments {
		t := g.placedTiles[seg.Pos]
		for _, adjIdx := range t.AdjacentSegments(seg.Segment) {
			if t.Segments[adjIdx].Type != tile.City {
				continue
			}
			key, ok := g.groupAssociations[core.SegmentIdentifier{Pos: seg.Pos, Segment: adjIdx}]
			if !ok {
				continue
			}
			city := g.groups.Get(key)
			if city == nil || !city.IsClosed() {
				continue
			}
			if !containsKey(cities, key) {
				cities = append(cities, key)
			}
		}
	}
	return cities
}

// invalidateAdjacentFarms drops the score caches of farms touching the
// city group, whose values depend on the set of completed cities.
func (g *Game) invalidateAdjacentFarms(city *SegmentGroup) {
	for _, seg := range city.Segments {
		t := g.placedTiles[seg.Pos]
		for _, adjIdx := range t.AdjacentSegments(seg.Segment) {
			if t.Segments[adjIdx].Type != tile.Farm {
				continue
			}
			key, ok := g.groupAssociations[core.SegmentIdentifier{Pos: seg.Pos, Segment: adjIdx}]
			if !ok {
				continue
			}
			if farm := g.groups.Get(key); farm != nil {
				farm.invalidateScoring()
			}
		}
	}
}

// computeOwners tallies meeples per player and returns every player tied
// for the most.
func computeOwners(group *SegmentGroup) []PlayerIdentifier {
	counts := make(map[PlayerIdentifier]int)
	max := 0
	for _, m := range group.Meeples {
		counts[m.Player]++
		if counts[m.Player] > max {
			max = counts[m.Player]
		}
	}
	if max == 0 {
		return nil
	}
	var owners []PlayerIdentifier
	for _, m := range group.Meeples {
		if counts[m.Player] == max && !containsKey(owners, m.Player) {
			owners = append(owners, m.Player)
		}
	}
	return owners
}

func distinctPositions(group *SegmentGroup) []core.GridPos {
	var out []core.GridPos
	for _, seg := range group.Segments {
		found := false
		for _, p := range out {
			if p == seg.Pos {
				found = true
				break
			}
		}
		if !found {
			out = append(out, seg.Pos)
		}
	}
	return out
}
