/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package chess

import "fmt"

// PlayerID identifies a player across the whole system. Valid ids are
// positive.
type PlayerID int

// Outcome is the recorded result of a game.
type Outcome int

const (
	FirstPlayerWins Outcome = iota
	SecondPlayerWins
	Draw
)

func (o Outcome) Valid() bool {
	return o == FirstPlayerWins || o == SecondPlayerWins || o == Draw
}

func (o Outcome) String() string {
	switch o {
	case FirstPlayerWins:
		return "first"
	case SecondPlayerWins:
		return "second"
	case Draw:
		return "draw"
	default:
		return "?"
	}
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "first":
		return FirstPlayerWins, nil
	case "second":
		return SecondPlayerWins, nil
	case "draw":
		return Draw, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidOutcome, s)
	}
}

// A Slot is one of the two player positions of a game. It either holds a
// player or has been marked removed after that player left the system.
type Slot struct {
	id      PlayerID
	present bool
}

func presentSlot(id PlayerID) Slot {
	return Slot{id: id, present: true}
}

// Player returns the occupying player; ok is false for a removed slot.
func (s Slot) Player() (PlayerID, bool) {
	return s.id, s.present
}

func (s Slot) IsRemoved() bool {
	return !s.present
}

func (s Slot) holds(id PlayerID) bool {
	return s.present && s.id == id
}

func (s Slot) String() string {
	if !s.present {
		return "[Removed]"
	}
	return fmt.Sprintf("%d", s.id)
}

// Game is one match between two slots.
type Game struct {
	Slot1    Slot
	Slot2    Slot
	Outcome  Outcome
	PlayTime int
}

func newGame(outcome Outcome, p1, p2 PlayerID, playTime int) *Game {
	return &Game{
		Slot1:    presentSlot(p1),
		Slot2:    presentSlot(p2),
		Outcome:  outcome,
		PlayTime: playTime,
	}
}

// Contains reports whether id occupies one of the game's present slots.
func (g *Game) Contains(id PlayerID) bool {
	return g.Slot1.holds(id) || g.Slot2.holds(id)
}

// Winner returns the slot credited with the win; ok is false for a draw.
func (g *Game) Winner() (Slot, bool) {
	switch g.Outcome {
	case FirstPlayerWins:
		return g.Slot1, true
	case SecondPlayerWins:
		return g.Slot2, true
	default:
		return Slot{}, false
	}
}

// removePlayer marks id's slot removed and, unless the opponent already
// holds the win or has also been removed, upgrades the opponent's result to
// a win in stats.
func (g *Game) removePlayer(id PlayerID, stats statsLookup) {
	var opp *Slot
	var oppWins Outcome
	var own *Slot
	switch {
	case g.Slot1.holds(id):
		own, opp, oppWins = &g.Slot1, &g.Slot2, SecondPlayerWins
	case g.Slot2.holds(id):
		own, opp, oppWins = &g.Slot2, &g.Slot1, FirstPlayerWins
	default:
		return
	}

	if opp.present && g.Outcome != oppWins {
		if ps, ok := stats(opp.id); ok {
			ps.upgradeToWin(g.Outcome == Draw)
		}
		g.Outcome = oppWins
	}
	own.present = false
}

func (g *Game) String() string {
	return fmt.Sprintf("%v vs. %v (%v, %ds)", g.Slot1, g.Slot2, g.Outcome,
		g.PlayTime)
}
