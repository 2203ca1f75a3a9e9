/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package chess

// InvalidStat is what every PlayerStats getter returns on a nil receiver.
// It is never a valid score.
const InvalidStat = -1

const (
	winPoints  = 2
	drawPoints = 1

	winWeight  = 6
	lossWeight = 10
	drawWeight = 2
)

// PlayerStats accumulates one player's results, either within a single
// tournament or merged across the system.
type PlayerStats struct {
	points int
	wins   int
	losses int
	draws  int
}

type statsLookup func(PlayerID) (*PlayerStats, bool)

func (p *PlayerStats) Points() int {
	if p == nil {
		return InvalidStat
	}
	return p.points
}

func (p *PlayerStats) Wins() int {
	if p == nil {
		return InvalidStat
	}
	return p.wins
}

func (p *PlayerStats) Losses() int {
	if p == nil {
		return InvalidStat
	}
	return p.losses
}

func (p *PlayerStats) Draws() int {
	if p == nil {
		return InvalidStat
	}
	return p.draws
}

// Games is the number of decided or drawn games behind the stats.
func (p *PlayerStats) Games() int {
	if p == nil {
		return InvalidStat
	}
	return p.wins + p.losses + p.draws
}

func (p *PlayerStats) addPoints(delta int) {
	if p != nil {
		p.points += delta
	}
}

func (p *PlayerStats) addWins(delta int) {
	if p != nil {
		p.wins += delta
	}
}

func (p *PlayerStats) addLosses(delta int) {
	if p != nil {
		p.losses += delta
	}
}

func (p *PlayerStats) addDraws(delta int) {
	if p != nil {
		p.draws += delta
	}
}

func (p *PlayerStats) recordWin() {
	p.addPoints(winPoints)
	p.addWins(1)
}

func (p *PlayerStats) recordLoss() {
	p.addLosses(1)
}

func (p *PlayerStats) recordDraw() {
	p.addPoints(drawPoints)
	p.addDraws(1)
}

// upgradeToWin turns a recorded draw or loss into a win.
func (p *PlayerStats) upgradeToWin(fromDraw bool) {
	if fromDraw {
		p.addPoints(winPoints - drawPoints)
		p.addWins(1)
		p.addDraws(-1)
		return
	}
	p.addPoints(winPoints)
	p.addWins(1)
	p.addLosses(-1)
}

// Level is the weighted score used to rank players system wide. It is 0
// for a player without games.
func (p *PlayerStats) Level() float64 {
	games := p.Games()
	if games <= 0 {
		return 0
	}
	return float64(p.wins*winWeight-p.losses*lossWeight+p.draws*drawWeight) /
		float64(games)
}

// Clone returns an independent copy; nil stays nil.
func (p *PlayerStats) Clone() *PlayerStats {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func (p *PlayerStats) merge(other *PlayerStats) {
	if p == nil || other == nil {
		return
	}
	p.points += other.points
	p.wins += other.wins
	p.losses += other.losses
	p.draws += other.draws
}
