/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package chess

import (
	"errors"
	"testing"
)

type testGame struct {
	p1, p2   PlayerID
	outcome  Outcome
	playTime int
}

func newTestTournament(t *testing.T, maxGames int, games ...testGame) *Tournament {
	t.Helper()
	tr := newTournament("Haifa", maxGames, 0)
	for _, g := range games {
		if _, err := tr.addGame(g.outcome, g.p1, g.p2, g.playTime); err != nil {
			t.Fatalf("addGame(%+v): %v", g, err)
		}
	}
	return tr
}

func wantStats(t *testing.T, tr *Tournament, id PlayerID, points, wins,
	losses, draws int) {

	t.Helper()
	ps, ok := tr.Stats(id)
	if !ok {
		t.Fatalf("no stats for player %d", id)
	}
	if ps.Points() != points || ps.Wins() != wins || ps.Losses() != losses ||
		ps.Draws() != draws {
		t.Errorf("player %d stats = %+v; want points:%d wins:%d losses:%d draws:%d",
			id, *ps, points, wins, losses, draws)
	}
}

func TestTournamentAddGame(t *testing.T) {
	tr := newTestTournament(t, 5,
		testGame{1, 2, FirstPlayerWins, 30},
		testGame{2, 3, Draw, 10},
		testGame{3, 1, SecondPlayerWins, 20},
	)

	wantStats(t, tr, 1, 4, 2, 0, 0)
	wantStats(t, tr, 2, 1, 0, 1, 1)
	wantStats(t, tr, 3, 1, 0, 1, 1)

	if tr.NumGames() != 3 {
		t.Errorf("NumGames() = %d; want 3", tr.NumGames())
	}
	if tr.NumPlayers() != 3 {
		t.Errorf("NumPlayers() = %d; want 3", tr.NumPlayers())
	}
	if tr.GameCount(1) != 2 {
		t.Errorf("GameCount(1) = %d; want 2", tr.GameCount(1))
	}
	longest, total := tr.LongestGame()
	if longest != 30 || total != 60 {
		t.Errorf("LongestGame() = %d, %d; want 30, 60", longest, total)
	}
	total, games := tr.PlayerTime(2)
	if total != 40 || games != 2 {
		t.Errorf("PlayerTime(2) = %d, %d; want 40, 2", total, games)
	}
}

func TestTournamentAddGameErrors(t *testing.T) {
	tr := newTestTournament(t, 1, testGame{1, 2, Draw, 10})

	cases := []struct {
		name     string
		p1, p2   PlayerID
		playTime int
		want     error
	}{
		{"same pair", 1, 2, 5, ErrGameAlreadyExists},
		{"same pair reversed", 2, 1, 5, ErrGameAlreadyExists},
		{"pair checked before play time", 2, 1, -1, ErrGameAlreadyExists},
		{"negative play time", 1, 3, -1, ErrInvalidPlayTime},
		{"play time checked before limit", 3, 1, -5, ErrInvalidPlayTime},
		{"first player at limit", 1, 3, 5, ErrExceededGames},
		{"second player at limit", 3, 2, 5, ErrExceededGames},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := tr.addGame(Draw, c.p1, c.p2, c.playTime)
			if !errors.Is(err, c.want) {
				t.Errorf("addGame(%d, %d, %d) = %v; want %v", c.p1, c.p2,
					c.playTime, err, c.want)
			}
		})
	}
	if tr.NumGames() != 1 || tr.NumPlayers() != 2 {
		t.Errorf("failed adds changed the tournament: games=%d players=%d",
			tr.NumGames(), tr.NumPlayers())
	}
}

func TestTournamentAddGameUndo(t *testing.T) {
	tr := newTestTournament(t, 5, testGame{1, 2, FirstPlayerWins, 30})

	undo, err := tr.addGame(SecondPlayerWins, 1, 3, 15)
	if err != nil {
		t.Fatalf("addGame: %v", err)
	}
	undo()

	wantStats(t, tr, 1, 2, 1, 0, 0)
	if _, ok := tr.Stats(3); ok {
		t.Errorf("player 3 should not have stats after undo")
	}
	if tr.NumGames() != 1 || tr.NumPlayers() != 2 {
		t.Errorf("undo left games=%d players=%d; want 1, 2", tr.NumGames(),
			tr.NumPlayers())
	}
}

func TestTournamentRemovePlayer(t *testing.T) {
	tr := newTestTournament(t, 5,
		testGame{1, 2, FirstPlayerWins, 30},
		testGame{2, 3, Draw, 10},
		testGame{3, 4, FirstPlayerWins, 10},
	)

	tr.removePlayer(2)
	if _, ok := tr.Stats(2); ok {
		t.Errorf("removed player still has stats")
	}
	if tr.HasPlayer(2) {
		t.Errorf("removed player still holds a slot")
	}
	// player 1 already won against 2
	wantStats(t, tr, 1, 2, 1, 0, 0)
	// draw against 2 becomes a win
	wantStats(t, tr, 3, 4, 2, 0, 0)

	tr.removePlayer(3)
	// loss against 3 becomes a win
	wantStats(t, tr, 4, 2, 1, 0, 0)

	// idempotent
	tr.removePlayer(2)
	tr.removePlayer(3)
	wantStats(t, tr, 1, 2, 1, 0, 0)
	wantStats(t, tr, 4, 2, 1, 0, 0)

	if tr.NumPlayers() != 4 {
		t.Errorf("NumPlayers() = %d; removal should not decrement", tr.NumPlayers())
	}
	if tr.NumGames() != 3 {
		t.Errorf("NumGames() = %d; removal keeps games", tr.NumGames())
	}

	games := tr.Games()
	if games[1].Outcome != SecondPlayerWins {
		t.Errorf("game 2 outcome = %v; want second", games[1].Outcome)
	}
	if !games[1].Slot1.IsRemoved() || !games[1].Slot2.IsRemoved() {
		t.Errorf("game 2 slots should both be removed: %v", &games[1])
	}
}

func TestTournamentRemovedPlayerFreesGameCount(t *testing.T) {
	tr := newTestTournament(t, 1, testGame{1, 2, Draw, 10})
	tr.removePlayer(2)

	if tr.GameCount(1) != 1 {
		t.Fatalf("GameCount(1) = %d; want 1", tr.GameCount(1))
	}
	// player 2 left; they may start over
	if _, err := tr.addGame(Draw, 2, 3, 10); err != nil {
		t.Fatalf("re-adding removed player: %v", err)
	}
	if tr.NumPlayers() != 4 {
		t.Errorf("NumPlayers() = %d; want 4", tr.NumPlayers())
	}
}

func TestTournamentEnd(t *testing.T) {
	cases := []struct {
		name   string
		games  []testGame
		winner PlayerID
	}{
		{
			name:   "more points",
			games:  []testGame{{1, 2, SecondPlayerWins, 1}},
			winner: 2,
		},
		{
			name: "fewer losses breaks points tie",
			// 1: W D L = 3 pts 1 loss; 3: D D D = 3 pts 0 losses
			games: []testGame{
				{1, 2, FirstPlayerWins, 1},
				{1, 4, Draw, 1},
				{5, 1, FirstPlayerWins, 1},
				{3, 6, Draw, 1},
				{3, 7, Draw, 1},
				{3, 8, Draw, 1},
			},
			winner: 3,
		},
		{
			name: "more wins breaks losses tie",
			// 5: W D D = 4 pts 0 losses 1 win; 1: D D D D = 4 pts 0 losses
			games: []testGame{
				{1, 6, Draw, 1},
				{1, 7, Draw, 1},
				{1, 8, Draw, 1},
				{1, 9, Draw, 1},
				{5, 2, FirstPlayerWins, 1},
				{5, 3, Draw, 1},
				{5, 4, Draw, 1},
			},
			winner: 5,
		},
		{
			name:   "smaller id breaks full tie",
			games:  []testGame{{7, 3, Draw, 1}},
			winner: 3,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr := newTestTournament(t, 10, c.games...)
			if _, ok := tr.Winner(); ok {
				t.Fatalf("winner defined before end")
			}
			if err := tr.end(); err != nil {
				t.Fatalf("end: %v", err)
			}
			winner, ok := tr.Winner()
			if !ok || winner != c.winner {
				t.Errorf("winner = %d (%v); want %d", winner, ok, c.winner)
			}
			if standings := tr.Standings(); standings[0].Player != c.winner {
				t.Errorf("standings leader = %d; want %d", standings[0].Player,
					c.winner)
			}
			if err := tr.end(); !errors.Is(err, ErrTournamentEnded) {
				t.Errorf("second end = %v; want ErrTournamentEnded", err)
			}
		})
	}
}

func TestTournamentEndNoGames(t *testing.T) {
	tr := newTournament("Acre", 3, 0)
	if err := tr.end(); !errors.Is(err, ErrNoGames) {
		t.Errorf("end() = %v; want ErrNoGames", err)
	}
	if tr.Status() != Active {
		t.Errorf("status = %v; want active", tr.Status())
	}
}

func TestTournamentEndAllPlayersRemoved(t *testing.T) {
	tr := newTestTournament(t, 3, testGame{1, 2, Draw, 4})
	tr.removePlayer(1)
	tr.removePlayer(2)

	if err := tr.end(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if _, ok := tr.Winner(); ok {
		t.Errorf("winner should be undefined when every player was removed")
	}
}
