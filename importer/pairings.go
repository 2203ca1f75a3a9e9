/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package importer

import (
	"sort"

	"github.com/mikeb26/chesssystem/bcc"
	"github.com/mikeb26/chesssystem/chess"
)

// pairingGames converts decided boards into games keyed by pairing number,
// white first. Byes and boards without a result are left out.
func pairingGames(pairings []bcc.Pairing) []game {
	var games []game
	for _, p := range pairings {
		white, _, ok := p.Points()
		if !ok {
			continue
		}
		g := game{
			p1:      chess.PlayerID(p.White.PairingNumber),
			p2:      chess.PlayerID(p.Black.PairingNumber),
			outcome: chess.Draw,
		}
		if white == 1 {
			g.outcome = chess.FirstPlayerWins
		} else if white == 0 {
			g.outcome = chess.SecondPlayerWins
		}
		games = append(games, g)
	}
	return games
}

// Pairings imports one posted round, one tournament per section in the
// club's section order.
func (im *Importer) Pairings(pairings []bcc.Pairing) ([]Summary, error) {
	bySection := make(map[string][]bcc.Pairing)
	for _, p := range pairings {
		bySection[p.Section] = append(bySection[p.Section], p)
	}
	var sections []string
	for sec := range bySection {
		sections = append(sections, sec)
	}
	sort.Sort(bcc.SectionSorter(sections))

	var out []Summary
	for _, sec := range sections {
		sum, err := im.importSection(sec, 1, pairingGames(bySection[sec]))
		if err != nil {
			return out, err
		}
		out = append(out, sum)
	}
	return out, nil
}
