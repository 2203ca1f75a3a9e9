/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package chess

import (
	"errors"
	"testing"
)

func statsOf(m map[PlayerID]*PlayerStats) statsLookup {
	return func(id PlayerID) (*PlayerStats, bool) {
		ps, ok := m[id]
		return ps, ok
	}
}

func TestParseOutcome(t *testing.T) {
	for _, o := range []Outcome{FirstPlayerWins, SecondPlayerWins, Draw} {
		got, err := ParseOutcome(o.String())
		if err != nil {
			t.Fatalf("ParseOutcome(%q): %v", o.String(), err)
		}
		if got != o {
			t.Errorf("ParseOutcome(%q) = %v; want %v", o.String(), got, o)
		}
	}
	if _, err := ParseOutcome("white"); !errors.Is(err, ErrInvalidOutcome) {
		t.Errorf("ParseOutcome(white) = %v; want ErrInvalidOutcome", err)
	}
	if Outcome(7).Valid() {
		t.Errorf("Outcome(7) should not be valid")
	}
}

func TestGameContains(t *testing.T) {
	g := newGame(Draw, 1, 2, 10)
	if !g.Contains(1) || !g.Contains(2) {
		t.Fatalf("game should contain both players: %v", g)
	}
	if g.Contains(3) {
		t.Errorf("game should not contain 3")
	}
	g.removePlayer(1, statsOf(map[PlayerID]*PlayerStats{2: {points: 1, draws: 1}}))
	if g.Contains(1) {
		t.Errorf("removed player still contained")
	}
	if _, ok := g.Slot1.Player(); ok {
		t.Errorf("slot1 should be removed")
	}
	if g.String() != "[Removed] vs. 2 (second, 10s)" {
		t.Errorf("String() = %q", g.String())
	}
}

func TestGameRemovePlayer(t *testing.T) {
	cases := []struct {
		name       string
		outcome    Outcome
		remove     PlayerID
		opp        PlayerStats
		wantOpp    PlayerStats
		wantResult Outcome
	}{
		{
			name:       "draw upgrades opponent",
			outcome:    Draw,
			remove:     1,
			opp:        PlayerStats{points: 1, draws: 1},
			wantOpp:    PlayerStats{points: 2, wins: 1},
			wantResult: SecondPlayerWins,
		},
		{
			name:       "loss upgrades opponent",
			outcome:    FirstPlayerWins,
			remove:     1,
			opp:        PlayerStats{losses: 1},
			wantOpp:    PlayerStats{points: 2, wins: 1},
			wantResult: SecondPlayerWins,
		},
		{
			name:       "opponent already credited",
			outcome:    SecondPlayerWins,
			remove:     1,
			opp:        PlayerStats{points: 2, wins: 1},
			wantOpp:    PlayerStats{points: 2, wins: 1},
			wantResult: SecondPlayerWins,
		},
		{
			name:       "second slot removed",
			outcome:    SecondPlayerWins,
			remove:     2,
			opp:        PlayerStats{losses: 1},
			wantOpp:    PlayerStats{points: 2, wins: 1},
			wantResult: FirstPlayerWins,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := newGame(c.outcome, 1, 2, 5)
			oppID := PlayerID(3) - c.remove
			opp := c.opp
			stats := map[PlayerID]*PlayerStats{oppID: &opp}

			g.removePlayer(c.remove, statsOf(stats))
			if opp != c.wantOpp {
				t.Errorf("opponent stats = %+v; want %+v", opp, c.wantOpp)
			}
			if g.Outcome != c.wantResult {
				t.Errorf("outcome = %v; want %v", g.Outcome, c.wantResult)
			}
			if g.Contains(c.remove) {
				t.Errorf("player %d still holds a slot", c.remove)
			}

			// a second removal, or removing the opponent, changes nothing
			g.removePlayer(c.remove, statsOf(stats))
			g.removePlayer(oppID, statsOf(stats))
			if opp != c.wantOpp {
				t.Errorf("opponent stats after repeat = %+v; want %+v", opp,
					c.wantOpp)
			}
			if !g.Slot1.IsRemoved() || !g.Slot2.IsRemoved() {
				t.Errorf("both slots should be removed: %v", g)
			}
		})
	}
}
