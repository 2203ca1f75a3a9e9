/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package chess

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func mustAddTournament(t *testing.T, s *System, id TournamentID, maxGames int,
	location string) {

	t.Helper()
	if err := s.AddTournament(id, maxGames, location); err != nil {
		t.Fatalf("AddTournament(%d): %v", id, err)
	}
}

func mustAddGame(t *testing.T, s *System, tid TournamentID, p1, p2 PlayerID,
	outcome Outcome, playTime int) {

	t.Helper()
	if err := s.AddGame(tid, p1, p2, outcome, playTime); err != nil {
		t.Fatalf("AddGame(%d, %d, %d): %v", tid, p1, p2, err)
	}
}

func TestAddTournamentValidationOrder(t *testing.T) {
	s := New()
	mustAddTournament(t, s, 1, 3, "Haifa")

	cases := []struct {
		name     string
		id       TournamentID
		maxGames int
		location string
		want     error
	}{
		{"invalid id wins over everything", 0, 0, "bad", ErrInvalidID},
		{"negative id", -4, 3, "Haifa", ErrInvalidID},
		{"exists before location", 1, 0, "bad", ErrTournamentAlreadyExists},
		{"location before max games", 2, 0, "haifa", ErrInvalidLocation},
		{"empty location", 2, 3, "", ErrInvalidLocation},
		{"digit in location", 2, 3, "Tel aviv2", ErrInvalidLocation},
		{"upper case after first", 2, 3, "Tel Aviv", ErrInvalidLocation},
		{"zero max games", 2, 0, "Tel aviv", ErrInvalidMaxGames},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := s.AddTournament(c.id, c.maxGames, c.location)
			if !errors.Is(err, c.want) {
				t.Errorf("AddTournament(%d, %d, %q) = %v; want %v", c.id,
					c.maxGames, c.location, err, c.want)
			}
		})
	}

	var nilSys *System
	if err := nilSys.AddTournament(1, 1, "Haifa"); !errors.Is(err, ErrNullArgument) {
		t.Errorf("nil system AddTournament = %v; want ErrNullArgument", err)
	}
	if ids := s.TournamentIDs(); !slices.Equal(ids, []TournamentID{1}) {
		t.Errorf("TournamentIDs() = %v; want [1]", ids)
	}
}

func TestAddGameValidationOrder(t *testing.T) {
	s := New()
	mustAddTournament(t, s, 1, 1, "Haifa")
	mustAddTournament(t, s, 2, 1, "Acre")
	mustAddGame(t, s, 2, 1, 2, Draw, 10)
	if err := s.EndTournament(2); err != nil {
		t.Fatalf("EndTournament: %v", err)
	}
	mustAddGame(t, s, 1, 1, 2, FirstPlayerWins, 10)

	cases := []struct {
		name    string
		tid     TournamentID
		p1, p2  PlayerID
		outcome Outcome
		time    int
		want    error
	}{
		{"bad tournament id", 0, 1, 2, Draw, 1, ErrInvalidID},
		{"bad player id", 9, 1, -2, Draw, 1, ErrInvalidID},
		{"same players", 9, 3, 3, Draw, 1, ErrInvalidID},
		{"bad outcome", 9, 3, 4, Outcome(9), 1, ErrInvalidOutcome},
		{"unknown tournament", 9, 3, 4, Draw, -1, ErrTournamentNotExist},
		{"ended tournament", 2, 3, 4, Draw, -1, ErrTournamentEnded},
		{"existing pair", 1, 2, 1, Draw, -1, ErrGameAlreadyExists},
		{"negative time", 1, 3, 4, Draw, -1, ErrInvalidPlayTime},
		{"exceeded games", 1, 3, 1, Draw, 1, ErrExceededGames},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := s.AddGame(c.tid, c.p1, c.p2, c.outcome, c.time)
			if !errors.Is(err, c.want) {
				t.Errorf("AddGame = %v; want %v", err, c.want)
			}
		})
	}

	if s.HasPlayer(3) || s.HasPlayer(4) {
		t.Errorf("failed AddGame registered players: %v", s.PlayerIDs())
	}
}

func TestAddGameRegistersPlayersOnce(t *testing.T) {
	s := New()
	mustAddTournament(t, s, 1, 5, "Haifa")
	mustAddTournament(t, s, 2, 5, "Acre")
	mustAddGame(t, s, 1, 1, 2, FirstPlayerWins, 30)
	mustAddGame(t, s, 2, 2, 3, Draw, 10)

	if ids := s.PlayerIDs(); !slices.Equal(ids, []PlayerID{1, 2, 3}) {
		t.Errorf("PlayerIDs() = %v; want [1 2 3]", ids)
	}

	ps, err := s.PlayerStats(2)
	if err != nil {
		t.Fatalf("PlayerStats(2): %v", err)
	}
	if ps.Points() != 1 || ps.Losses() != 1 || ps.Draws() != 1 {
		t.Errorf("merged stats for 2 = %+v", *ps)
	}
}

func TestRemovePlayer(t *testing.T) {
	s := New()
	mustAddTournament(t, s, 1, 5, "Haifa")
	mustAddTournament(t, s, 2, 5, "Acre")
	mustAddGame(t, s, 1, 1, 2, SecondPlayerWins, 30)
	mustAddGame(t, s, 2, 1, 3, Draw, 10)
	if err := s.EndTournament(1); err != nil {
		t.Fatalf("EndTournament: %v", err)
	}

	if err := s.RemovePlayer(0); !errors.Is(err, ErrInvalidID) {
		t.Errorf("RemovePlayer(0) = %v; want ErrInvalidID", err)
	}
	if err := s.RemovePlayer(9); !errors.Is(err, ErrPlayerNotExist) {
		t.Errorf("RemovePlayer(9) = %v; want ErrPlayerNotExist", err)
	}
	if err := s.RemovePlayer(1); err != nil {
		t.Fatalf("RemovePlayer(1): %v", err)
	}
	if s.HasPlayer(1) {
		t.Errorf("player 1 still registered")
	}
	if err := s.RemovePlayer(1); !errors.Is(err, ErrPlayerNotExist) {
		t.Errorf("second RemovePlayer(1) = %v; want ErrPlayerNotExist", err)
	}

	// ended tournament is frozen
	t1, _ := s.Tournament(1)
	if !t1.HasPlayer(1) {
		t.Errorf("ended tournament lost player 1")
	}
	if ps, ok := t1.Stats(1); !ok || ps.Losses() != 1 {
		t.Errorf("ended tournament stats for 1 changed: %v %v", ps, ok)
	}

	// active tournament awards the draw to 3
	t2, _ := s.Tournament(2)
	if t2.HasPlayer(1) {
		t.Errorf("active tournament still holds player 1")
	}
	if ps, ok := t2.Stats(3); !ok || ps.Points() != 2 || ps.Wins() != 1 ||
		ps.Draws() != 0 {
		t.Errorf("player 3 stats after removal = %+v", ps)
	}
}

func TestEndTournament(t *testing.T) {
	s := New()
	mustAddTournament(t, s, 1, 5, "Haifa")
	mustAddTournament(t, s, 2, 5, "Acre")
	mustAddGame(t, s, 1, 4, 2, SecondPlayerWins, 30)

	cases := []struct {
		name string
		id   TournamentID
		want error
	}{
		{"invalid id", -1, ErrInvalidID},
		{"unknown", 3, ErrTournamentNotExist},
		{"no games", 2, ErrNoGames},
		{"ok", 1, nil},
		{"already ended", 1, ErrTournamentEnded},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := s.EndTournament(c.id); !errors.Is(err, c.want) {
				t.Errorf("EndTournament(%d) = %v; want %v", c.id, err, c.want)
			}
		})
	}

	tr, _ := s.Tournament(1)
	if w, ok := tr.Winner(); !ok || w != 2 {
		t.Errorf("winner = %d; want 2", w)
	}
	if err := s.AddGame(1, 5, 6, Draw, 1); !errors.Is(err, ErrTournamentEnded) {
		t.Errorf("AddGame on ended = %v; want ErrTournamentEnded", err)
	}
}

func TestRemoveTournament(t *testing.T) {
	s := New()
	mustAddTournament(t, s, 1, 5, "Haifa")
	mustAddTournament(t, s, 2, 5, "Acre")
	mustAddGame(t, s, 1, 1, 2, Draw, 30)
	mustAddGame(t, s, 2, 1, 3, Draw, 10)

	if err := s.RemoveTournament(0); !errors.Is(err, ErrInvalidID) {
		t.Errorf("RemoveTournament(0) = %v; want ErrInvalidID", err)
	}
	if err := s.RemoveTournament(7); !errors.Is(err, ErrTournamentNotExist) {
		t.Errorf("RemoveTournament(7) = %v; want ErrTournamentNotExist", err)
	}
	if err := s.RemoveTournament(1); err != nil {
		t.Fatalf("RemoveTournament(1): %v", err)
	}
	if _, err := s.Tournament(1); !errors.Is(err, ErrTournamentNotExist) {
		t.Errorf("Tournament(1) = %v; want ErrTournamentNotExist", err)
	}
	// the registry keeps player 2 even though its only tournament is gone
	if !s.HasPlayer(2) {
		t.Errorf("player 2 dropped from registry")
	}
	t2, _ := s.Tournament(2)
	if t2.NumGames() != 1 {
		t.Errorf("other tournament changed")
	}
}

func TestAverageGameDuration(t *testing.T) {
	s := New()
	mustAddTournament(t, s, 1, 5, "Haifa")
	mustAddTournament(t, s, 2, 5, "Acre")
	mustAddGame(t, s, 1, 1, 2, Draw, 30)
	mustAddGame(t, s, 1, 1, 3, Draw, 15)
	mustAddGame(t, s, 2, 1, 3, Draw, 10)
	if err := s.EndTournament(1); err != nil {
		t.Fatalf("EndTournament: %v", err)
	}

	avg, err := s.AverageGameDuration(1)
	if err != nil {
		t.Fatalf("AverageGameDuration(1): %v", err)
	}
	if math.Abs(avg-55.0/3.0) > 1e-9 {
		t.Errorf("AverageGameDuration(1) = %v; want %v", avg, 55.0/3.0)
	}

	if _, err := s.AverageGameDuration(8); !errors.Is(err, ErrPlayerNotExist) {
		t.Errorf("unknown player = %v; want ErrPlayerNotExist", err)
	}
	if _, err := s.AverageGameDuration(-8); !errors.Is(err, ErrInvalidID) {
		t.Errorf("negative id = %v; want ErrInvalidID", err)
	}

	// 2's only game is in tournament 1; after it is removed 2 has no games
	if err := s.RemoveTournament(1); err != nil {
		t.Fatalf("RemoveTournament: %v", err)
	}
	avg, err = s.AverageGameDuration(2)
	if err != nil || avg != 0 {
		t.Errorf("AverageGameDuration(2) = %v, %v; want 0, nil", avg, err)
	}
}

func TestAddGameOutOfMemoryRollsBack(t *testing.T) {
	// every registry holds at most 2 entries
	s := New(WithContainerLimit(2))
	mustAddTournament(t, s, 1, 5, "Haifa")
	mustAddTournament(t, s, 2, 5, "Acre")
	mustAddGame(t, s, 1, 1, 2, FirstPlayerWins, 30)

	if err := s.AddTournament(3, 5, "Eilat"); !errors.Is(err, ErrOutOfMemory) {
		t.Errorf("third tournament = %v; want ErrOutOfMemory", err)
	}
	if len(s.TournamentIDs()) != 2 {
		t.Errorf("failed AddTournament left %v", s.TournamentIDs())
	}

	// tournament 2 has room for players 3 and 4 but the system registry,
	// already holding 1 and 2, does not
	err := s.AddGame(2, 3, 4, Draw, 10)
	if !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("AddGame = %v; want ErrOutOfMemory", err)
	}
	t2, _ := s.Tournament(2)
	if t2.NumGames() != 0 || t2.NumPlayers() != 0 {
		t.Errorf("tournament 2 not rolled back: games=%d players=%d",
			t2.NumGames(), t2.NumPlayers())
	}
	if _, ok := t2.Stats(3); ok {
		t.Errorf("stats for 3 survived rollback")
	}
	if s.HasPlayer(3) || s.HasPlayer(4) {
		t.Errorf("registry not rolled back: %v", s.PlayerIDs())
	}

	// tournament 1 already holds two players; a third cannot join
	err = s.AddGame(1, 1, 3, SecondPlayerWins, 10)
	if !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("AddGame = %v; want ErrOutOfMemory", err)
	}
	t1, _ := s.Tournament(1)
	wantStats(t, t1, 1, 2, 1, 0, 0)
	if t1.NumGames() != 1 || t1.NumPlayers() != 2 {
		t.Errorf("tournament 1 changed: games=%d players=%d", t1.NumGames(),
			t1.NumPlayers())
	}

	// known players still fit
	mustAddGame(t, s, 2, 1, 2, Draw, 10)
}
