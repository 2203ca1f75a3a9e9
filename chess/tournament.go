/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package chess

import (
	"slices"

	"github.com/mikeb26/chesssystem/internal/idmap"
)

type Status int

const (
	Active Status = iota
	Ended
)

func (s Status) String() string {
	if s == Active {
		return "active"
	} else if s == Ended {
		return "ended"
	} else {
		return "?"
	}
}

// Tournament owns the games played in one event and the per-player stats
// they produced. It is mutated only through System.
type Tournament struct {
	location string
	maxGames int

	// keyed by sequence number starting at 1
	games   *idmap.Map[int, *Game]
	players *idmap.Map[PlayerID, *PlayerStats]

	status     Status
	winner     PlayerID
	hasWinner  bool
	numPlayers int
}

// Standing is one row of a tournament's standings.
type Standing struct {
	Player PlayerID
	Stats  *PlayerStats
}

func newTournament(location string, maxGames int, limit int) *Tournament {
	return &Tournament{
		location: location,
		maxGames: maxGames,
		games:    idmap.New[int, *Game](limit),
		players:  idmap.New[PlayerID, *PlayerStats](limit),
		status:   Active,
	}
}

// addGame records a game and credits both players. The returned func undoes
// everything addGame changed; System calls it when a later step of the same
// operation fails.
func (t *Tournament) addGame(outcome Outcome, p1, p2 PlayerID,
	playTime int) (func(), error) {

	if t.PlayedTogether(p1, p2) {
		return nil, ErrGameAlreadyExists
	}
	if playTime < 0 {
		return nil, ErrInvalidPlayTime
	}
	if t.GameCount(p1) >= t.maxGames || t.GameCount(p2) >= t.maxGames {
		return nil, ErrExceededGames
	}

	var created []PlayerID
	dropCreated := func() {
		for _, id := range created {
			t.players.Remove(id)
			t.numPlayers--
		}
	}
	for _, id := range []PlayerID{p1, p2} {
		if t.players.Contains(id) {
			continue
		}
		if err := t.players.Put(id, &PlayerStats{}); err != nil {
			dropCreated()
			return nil, ErrOutOfMemory
		}
		created = append(created, id)
		t.numPlayers++
	}

	key := t.games.Len() + 1
	if err := t.games.Put(key, newGame(outcome, p1, p2, playTime)); err != nil {
		dropCreated()
		return nil, ErrOutOfMemory
	}

	// live references: the registry entries themselves are updated
	s1, _ := t.players.Get(p1)
	s2, _ := t.players.Get(p2)
	applyOutcome(outcome, s1, s2, 1)

	undo := func() {
		applyOutcome(outcome, s1, s2, -1)
		t.games.Remove(key)
		dropCreated()
	}
	return undo, nil
}

// applyOutcome credits (sign 1) or debits (sign -1) a result.
func applyOutcome(outcome Outcome, s1, s2 *PlayerStats, sign int) {
	switch outcome {
	case FirstPlayerWins:
		s1.addPoints(sign * winPoints)
		s1.addWins(sign)
		s2.addLosses(sign)
	case SecondPlayerWins:
		s2.addPoints(sign * winPoints)
		s2.addWins(sign)
		s1.addLosses(sign)
	case Draw:
		s1.addPoints(sign * drawPoints)
		s1.addDraws(sign)
		s2.addPoints(sign * drawPoints)
		s2.addDraws(sign)
	}
}

// removePlayer takes id out of every game of the tournament, awarding the
// win to opponents that had not been credited with it yet, and then drops
// id's stats.
func (t *Tournament) removePlayer(id PlayerID) {
	for _, g := range t.games.All() {
		g.removePlayer(id, t.players.Get)
	}
	t.players.Remove(id)
}

// end closes the tournament and fixes its winner.
func (t *Tournament) end() error {
	if t.status == Ended {
		return ErrTournamentEnded
	}
	if t.games.Len() == 0 {
		return ErrNoGames
	}

	var leader Standing
	found := false
	for id, ps := range t.players.All() {
		cur := Standing{Player: id, Stats: ps}
		if !found || outranks(cur, leader) {
			leader = cur
			found = true
		}
	}

	t.winner = leader.Player
	t.hasWinner = found
	t.status = Ended
	return nil
}

// outranks reports whether a places ahead of b: more points, then fewer
// losses, then more wins, then the smaller id.
func outranks(a, b Standing) bool {
	return compareStandings(a, b) < 0
}

func compareStandings(a, b Standing) int {
	if a.Stats.Points() != b.Stats.Points() {
		if a.Stats.Points() > b.Stats.Points() {
			return -1
		}
		return 1
	}
	if a.Stats.Losses() != b.Stats.Losses() {
		if a.Stats.Losses() < b.Stats.Losses() {
			return -1
		}
		return 1
	}
	if a.Stats.Wins() != b.Stats.Wins() {
		if a.Stats.Wins() > b.Stats.Wins() {
			return -1
		}
		return 1
	}
	if a.Player < b.Player {
		return -1
	} else if a.Player > b.Player {
		return 1
	}
	return 0
}

// Standings returns snapshots of the current players ordered the same way
// the winner is chosen.
func (t *Tournament) Standings() []Standing {
	out := make([]Standing, 0, t.players.Len())
	for id, ps := range t.players.All() {
		out = append(out, Standing{Player: id, Stats: ps.Clone()})
	}
	slices.SortFunc(out, compareStandings)
	return out
}

// GameCount is the number of games in which id currently holds a slot.
func (t *Tournament) GameCount(id PlayerID) int {
	count := 0
	for _, g := range t.games.All() {
		if g.Contains(id) {
			count++
		}
	}
	return count
}

// PlayedTogether reports whether p1 and p2 already share a game, in either
// order.
func (t *Tournament) PlayedTogether(p1, p2 PlayerID) bool {
	for _, g := range t.games.All() {
		if g.Contains(p1) && g.Contains(p2) {
			return true
		}
	}
	return false
}

func (t *Tournament) HasPlayer(id PlayerID) bool {
	for _, g := range t.games.All() {
		if g.Contains(id) {
			return true
		}
	}
	return false
}

// PlayerTime sums the play time of id's games and counts them.
func (t *Tournament) PlayerTime(id PlayerID) (total int, games int) {
	for _, g := range t.games.All() {
		if g.Contains(id) {
			total += g.PlayTime
			games++
		}
	}
	return total, games
}

// LongestGame returns the longest single play time and the total over all
// games; both are 0 without games.
func (t *Tournament) LongestGame() (longest int, total int) {
	for _, g := range t.games.All() {
		total += g.PlayTime
		if g.PlayTime > longest {
			longest = g.PlayTime
		}
	}
	return longest, total
}

func (t *Tournament) NumGames() int {
	return t.games.Len()
}

func (t *Tournament) NumPlayers() int {
	return t.numPlayers
}

func (t *Tournament) Location() string {
	return t.location
}

func (t *Tournament) MaxGamesPerPlayer() int {
	return t.maxGames
}

func (t *Tournament) Status() Status {
	return t.status
}

// Winner is defined only once the tournament has ended; ok is false before
// that or when every player was removed.
func (t *Tournament) Winner() (PlayerID, bool) {
	if t.status != Ended {
		return 0, false
	}
	return t.winner, t.hasWinner
}

// Stats returns a snapshot of id's stats in this tournament.
func (t *Tournament) Stats(id PlayerID) (*PlayerStats, bool) {
	ps, ok := t.players.Get(id)
	if !ok {
		return nil, false
	}
	return ps.Clone(), true
}

// Games returns copies of the recorded games in the order they were added.
func (t *Tournament) Games() []Game {
	out := make([]Game, 0, t.games.Len())
	for _, g := range t.games.All() {
		out = append(out, *g)
	}
	return out
}

// snapshotPlayers deep copies the stats registry for reporting.
func (t *Tournament) snapshotPlayers() *idmap.Map[PlayerID, *PlayerStats] {
	return t.players.Clone((*PlayerStats).Clone)
}
