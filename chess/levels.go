/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package chess

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/mikeb26/chesssystem/internal/idmap"
)

// PlayerLevel is one line of the players-levels report.
type PlayerLevel struct {
	Player PlayerID
	Level  float64
}

func (pl PlayerLevel) String() string {
	return fmt.Sprintf("%d %.2f", pl.Player, pl.Level)
}

// mergedStats sums snapshots of every tournament's stats registry, keyed
// by player. Entries are copies; nothing in the system is modified.
func (s *System) mergedStats() *idmap.Map[PlayerID, *PlayerStats] {
	merged := idmap.New[PlayerID, *PlayerStats](0)
	for _, t := range s.tournaments.All() {
		for id, ps := range t.snapshotPlayers().All() {
			if cur, ok := merged.Get(id); ok {
				cur.merge(ps)
				continue
			}
			_ = merged.Put(id, ps)
		}
	}
	return merged
}

// PlayersLevels ranks every known player that has at least one game by
// level, highest first; equal levels are ordered by ascending id.
func (s *System) PlayersLevels() []PlayerLevel {
	if s == nil {
		return nil
	}

	var pool []PlayerLevel
	for id, ps := range s.mergedStats().All() {
		if !s.players.Contains(id) {
			continue
		}
		if ps.Games() == 0 {
			continue
		}
		pool = append(pool, PlayerLevel{Player: id, Level: ps.Level()})
	}

	slices.SortFunc(pool, func(a, b PlayerLevel) int {
		if a.Level != b.Level {
			// descending
			return cmp.Compare(b.Level, a.Level)
		}
		return cmp.Compare(a.Player, b.Player)
	})

	return pool
}

// BuildPlayersLevelsOutput renders the levels report, one "<id> <level>"
// line per player.
func BuildPlayersLevelsOutput(levels []PlayerLevel) string {
	var sb strings.Builder
	for _, pl := range levels {
		sb.WriteString(pl.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// SavePlayersLevels writes the players-levels report to w.
func (s *System) SavePlayersLevels(w io.Writer) error {
	if s == nil || w == nil {
		return ErrNullArgument
	}

	output := BuildPlayersLevelsOutput(s.PlayersLevels())
	if _, err := io.WriteString(w, output); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailure, err)
	}
	return nil
}
