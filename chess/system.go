/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package chess keeps the books for a set of chess tournaments: the games
// played in each one, per-tournament scores, tournament winners and the
// system-wide rankings derived from them.
//
// A System is not safe for concurrent use; callers serialize access.
package chess

import (
	"github.com/rs/zerolog"

	"github.com/mikeb26/chesssystem/internal/idmap"
)

// TournamentID identifies a tournament within a System. Valid ids are
// positive.
type TournamentID int

// System is the registry of tournaments and of every player that has played
// in one of them.
type System struct {
	tournaments *idmap.Map[TournamentID, *Tournament]
	// a player is known from its first game until RemovePlayer
	players *idmap.Map[PlayerID, *PlayerStats]

	limit  int
	logger zerolog.Logger
}

type Option func(*System)

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *System) {
		s.logger = logger
	}
}

// WithContainerLimit caps the number of entries any single registry of the
// system may hold. Inserting past the cap fails with ErrOutOfMemory.
func WithContainerLimit(n int) Option {
	return func(s *System) {
		s.limit = n
	}
}

func New(opts ...Option) *System {
	s := &System{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.tournaments = idmap.New[TournamentID, *Tournament](s.limit)
	s.players = idmap.New[PlayerID, *PlayerStats](s.limit)

	return s
}

func (s *System) AddTournament(id TournamentID, maxGamesPerPlayer int,
	location string) error {

	if s == nil {
		return ErrNullArgument
	}
	if id <= 0 {
		return ErrInvalidID
	}
	if s.tournaments.Contains(id) {
		return ErrTournamentAlreadyExists
	}
	if !IsValidLocation(location) {
		return ErrInvalidLocation
	}
	if maxGamesPerPlayer <= 0 {
		return ErrInvalidMaxGames
	}

	t := newTournament(location, maxGamesPerPlayer, s.limit)
	if err := s.tournaments.Put(id, t); err != nil {
		return ErrOutOfMemory
	}

	s.logger.Debug().Int("tournament", int(id)).Str("location", location).
		Int("maxGames", maxGamesPerPlayer).Msg("tournament added")
	return nil
}

func (s *System) AddGame(tid TournamentID, p1, p2 PlayerID, outcome Outcome,
	playTime int) error {

	if s == nil {
		return ErrNullArgument
	}
	if tid <= 0 || p1 <= 0 || p2 <= 0 || p1 == p2 {
		return ErrInvalidID
	}
	if !outcome.Valid() {
		return ErrInvalidOutcome
	}
	t, ok := s.tournaments.Get(tid)
	if !ok {
		return ErrTournamentNotExist
	}
	if t.status == Ended {
		return ErrTournamentEnded
	}

	undo, err := t.addGame(outcome, p1, p2, playTime)
	if err != nil {
		return err
	}

	// existing entries are left alone; only first appearances are added
	var added []PlayerID
	for _, id := range []PlayerID{p1, p2} {
		if s.players.Contains(id) {
			continue
		}
		if err := s.players.Put(id, &PlayerStats{}); err != nil {
			for _, a := range added {
				s.players.Remove(a)
			}
			undo()
			return ErrOutOfMemory
		}
		added = append(added, id)
	}

	return nil
}

// RemoveTournament drops a tournament and its games. The player registry is
// not touched.
func (s *System) RemoveTournament(id TournamentID) error {
	if s == nil {
		return ErrNullArgument
	}
	if id <= 0 {
		return ErrInvalidID
	}
	if !s.tournaments.Remove(id) {
		return ErrTournamentNotExist
	}

	s.logger.Debug().Int("tournament", int(id)).Msg("tournament removed")
	return nil
}

// RemovePlayer removes a player from every active tournament it plays in,
// awarding its unfinished results to its opponents, and forgets the player.
// Ended tournaments keep their records as they are.
func (s *System) RemovePlayer(id PlayerID) error {
	if s == nil {
		return ErrNullArgument
	}
	if id <= 0 {
		return ErrInvalidID
	}
	if !s.players.Contains(id) {
		return ErrPlayerNotExist
	}

	for tid, t := range s.tournaments.All() {
		if t.status != Active || !t.HasPlayer(id) {
			continue
		}
		s.logger.Debug().Int("player", int(id)).Int("tournament", int(tid)).
			Msg("removing player from active tournament")
		t.removePlayer(id)
	}
	s.players.Remove(id)

	return nil
}

func (s *System) EndTournament(id TournamentID) error {
	if s == nil {
		return ErrNullArgument
	}
	if id <= 0 {
		return ErrInvalidID
	}
	t, ok := s.tournaments.Get(id)
	if !ok {
		return ErrTournamentNotExist
	}
	if err := t.end(); err != nil {
		return err
	}

	winner, ok := t.Winner()
	s.logger.Debug().Int("tournament", int(id)).Int("winner", int(winner)).
		Bool("hasWinner", ok).Msg("tournament ended")
	return nil
}

// AverageGameDuration is the mean play time over every game, in any
// tournament, in which the player holds a slot. It is 0 when there are
// none.
func (s *System) AverageGameDuration(id PlayerID) (float64, error) {
	if s == nil {
		return 0, ErrNullArgument
	}
	if id <= 0 {
		return 0, ErrInvalidID
	}
	if !s.players.Contains(id) {
		return 0, ErrPlayerNotExist
	}

	total, games := 0, 0
	for _, t := range s.tournaments.All() {
		tt, tg := t.PlayerTime(id)
		total += tt
		games += tg
	}
	if games == 0 {
		return 0, nil
	}

	return float64(total) / float64(games), nil
}

// Tournament returns a read-only view of a tournament.
func (s *System) Tournament(id TournamentID) (*Tournament, error) {
	if s == nil {
		return nil, ErrNullArgument
	}
	if id <= 0 {
		return nil, ErrInvalidID
	}
	t, ok := s.tournaments.Get(id)
	if !ok {
		return nil, ErrTournamentNotExist
	}
	return t, nil
}

func (s *System) TournamentIDs() []TournamentID {
	return s.tournaments.Keys()
}

// HasPlayer reports whether id is known to the system.
func (s *System) HasPlayer(id PlayerID) bool {
	return s.players.Contains(id)
}

func (s *System) PlayerIDs() []PlayerID {
	return s.players.Keys()
}

// PlayerStats returns the player's results merged across every tournament.
func (s *System) PlayerStats(id PlayerID) (*PlayerStats, error) {
	if s == nil {
		return nil, ErrNullArgument
	}
	if id <= 0 {
		return nil, ErrInvalidID
	}
	if !s.players.Contains(id) {
		return nil, ErrPlayerNotExist
	}

	merged := &PlayerStats{}
	for _, t := range s.tournaments.All() {
		if ps, ok := t.Stats(id); ok {
			merged.merge(ps)
		}
	}
	return merged, nil
}
