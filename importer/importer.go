/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package importer loads real event results into a chess.System: USCF
// cross tables keyed by member id and club pairings pages keyed by pairing
// number. Every section becomes its own tournament.
package importer

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/mikeb26/chesssystem/chess"
)

// Summary reports what one imported section produced.
type Summary struct {
	Tournament chess.TournamentID
	Section    string
	Games      int
	// games the system refused, e.g. a repeated pairing
	Skipped int
	Ended   bool
}

type Importer struct {
	sys      *chess.System
	logger   zerolog.Logger
	location string
	maxGames int
	ceiling  int
	end      bool
}

type Option func(*Importer)

func WithLogger(logger zerolog.Logger) Option {
	return func(im *Importer) {
		im.logger = logger
	}
}

// WithLocation sets the location recorded for imported tournaments. Event
// names are not valid locations, so one is supplied by configuration.
func WithLocation(location string) Option {
	return func(im *Importer) {
		im.location = location
	}
}

// WithMaxGames sets the per-player game limit of imported tournaments. Zero
// derives it from the section: its round count for cross tables and 1 for a
// single round of pairings.
func WithMaxGames(n int) Option {
	return func(im *Importer) {
		im.maxGames = n
	}
}

// WithGameCeiling caps the per-player game limit, however it was derived.
func WithGameCeiling(n int) Option {
	return func(im *Importer) {
		im.ceiling = n
	}
}

// WithEnd ends each imported tournament that received at least one game.
func WithEnd(end bool) Option {
	return func(im *Importer) {
		im.end = end
	}
}

func New(sys *chess.System, opts ...Option) *Importer {
	im := &Importer{
		sys:      sys,
		logger:   zerolog.Nop(),
		location: "Boston",
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// nextID is one past the largest tournament id in use.
func (im *Importer) nextID() chess.TournamentID {
	ids := im.sys.TournamentIDs()
	if len(ids) == 0 {
		return 1
	}
	return slices.Max(ids) + 1
}

// game is one decided board, first player holding white when known.
type game struct {
	p1, p2  chess.PlayerID
	outcome chess.Outcome
}

// importSection adds a tournament for section and feeds it games. A game the
// system refuses for a per-game reason is skipped; any other failure removes
// the tournament again and is returned.
func (im *Importer) importSection(section string, maxGames int,
	games []game) (Summary, error) {

	if im.maxGames > 0 {
		maxGames = im.maxGames
	}
	if im.ceiling > 0 {
		maxGames = min(maxGames, im.ceiling)
	}
	maxGames = max(maxGames, 1)

	tid := im.nextID()
	if err := im.sys.AddTournament(tid, maxGames, im.location); err != nil {
		return Summary{}, fmt.Errorf("unable to add tournament for %v: %w",
			section, err)
	}
	sum := Summary{Tournament: tid, Section: section}

	for _, g := range games {
		err := im.sys.AddGame(tid, g.p1, g.p2, g.outcome, 0)
		switch {
		case err == nil:
			sum.Games++
		case errors.Is(err, chess.ErrGameAlreadyExists),
			errors.Is(err, chess.ErrExceededGames),
			errors.Is(err, chess.ErrInvalidID):
			im.logger.Warn().Err(err).Int("tournament", int(tid)).
				Int("p1", int(g.p1)).Int("p2", int(g.p2)).
				Msg("skipping game")
			sum.Skipped++
		default:
			_ = im.sys.RemoveTournament(tid)
			return Summary{}, fmt.Errorf("unable to import %v: %w", section, err)
		}
	}

	if im.end && sum.Games > 0 {
		if err := im.sys.EndTournament(tid); err != nil {
			return sum, fmt.Errorf("unable to end tournament %v: %w", tid, err)
		}
		sum.Ended = true
	}

	im.logger.Info().Int("tournament", int(tid)).Str("section", section).
		Int("games", sum.Games).Int("skipped", sum.Skipped).
		Bool("ended", sum.Ended).Msg("section imported")
	return sum, nil
}
