/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package importer

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/chesssystem/chess"
	"github.com/mikeb26/chesssystem/uschess"
)

// EventSource is the part of uschess.Client the importer needs.
type EventSource interface {
	FetchCrossTables(ctx context.Context,
		id uschess.EventID) (*uschess.Tournament, error)
	GetAffiliateEvents(ctx context.Context, affiliateCode string,
		since time.Time) ([]uschess.Event, error)
}

var _ EventSource = (*uschess.Client)(nil)

// crossTableGames lists every game played over the board in xt once, keyed
// by member id. Forfeits, byes and unplayed rounds are not games.
func crossTableGames(xt *uschess.CrossTable) []game {
	type pair struct{ a, b int }
	seen := make(map[pair]bool)

	var games []game
	for _, e := range xt.PlayerEntries {
		for _, res := range e.Results {
			if !res.Outcome.Played() || res.OpponentPairNum <= 0 {
				continue
			}
			opp, ok := xt.Entry(res.OpponentPairNum)
			if !ok {
				continue
			}
			key := pair{min(e.PairNum, opp.PairNum), max(e.PairNum, opp.PairNum)}
			if seen[key] {
				continue
			}
			seen[key] = true

			g := game{p1: chess.PlayerID(e.PlayerId), p2: chess.PlayerID(opp.PlayerId)}
			switch res.Outcome {
			case uschess.ResultWin:
				g.outcome = chess.FirstPlayerWins
			case uschess.ResultLoss:
				g.outcome = chess.SecondPlayerWins
			default:
				g.outcome = chess.Draw
			}
			if res.Color == "black" {
				g = swap(g)
			}
			games = append(games, g)
		}
	}
	return games
}

func swap(g game) game {
	out := game{p1: g.p2, p2: g.p1, outcome: g.outcome}
	switch g.outcome {
	case chess.FirstPlayerWins:
		out.outcome = chess.SecondPlayerWins
	case chess.SecondPlayerWins:
		out.outcome = chess.FirstPlayerWins
	}
	return out
}

// CrossTable imports one section.
func (im *Importer) CrossTable(xt *uschess.CrossTable) (Summary, error) {
	return im.importSection(xt.SectionName, xt.NumRounds, crossTableGames(xt))
}

// Tournament imports every section of a fetched event.
func (im *Importer) Tournament(t *uschess.Tournament) ([]Summary, error) {
	var out []Summary
	for _, xt := range t.CrossTables {
		sum, err := im.CrossTable(xt)
		if err != nil {
			return out, fmt.Errorf("event %v: %w", t.Event.ID, err)
		}
		out = append(out, sum)
	}
	return out, nil
}

// Event fetches and imports one rated event.
func (im *Importer) Event(ctx context.Context, src EventSource,
	id uschess.EventID) ([]Summary, error) {

	t, err := src.FetchCrossTables(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch event %v: %w", id, err)
	}
	return im.Tournament(t)
}

// Affiliate imports every event the affiliate ran since the given time,
// oldest first. Events are fetched concurrently and imported in order; an
// event that cannot be fetched is logged and skipped.
func (im *Importer) Affiliate(ctx context.Context, src EventSource,
	affiliateCode string, since time.Time) ([]Summary, error) {

	events, err := src.GetAffiliateEvents(ctx, affiliateCode, since)
	if err != nil {
		return nil, fmt.Errorf("unable to list events for %v: %w",
			affiliateCode, err)
	}

	fetched := make([]*uschess.Tournament, len(events))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, ev := range events {
		g.Go(func() error {
			t, err := src.FetchCrossTables(gctx, ev.ID)
			if err != nil {
				im.logger.Warn().Err(err).Int("event", int(ev.ID)).
					Msg("unable to fetch event; skipping")
				return nil
			}
			fetched[i] = t
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []Summary
	// the API lists newest first
	for i := len(fetched) - 1; i >= 0; i-- {
		if fetched[i] == nil {
			continue
		}
		sums, err := im.Tournament(fetched[i])
		out = append(out, sums...)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}
