/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

package chess

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// NoWinner is what the statistics report prints for an ended tournament
// whose players were all removed before it ended.
const NoWinner PlayerID = -1

// TournamentSummary is one ended tournament's block of the statistics
// report.
type TournamentSummary struct {
	ID          TournamentID
	Winner      PlayerID
	LongestGame int
	AverageGame float64
	Location    string
	NumGames    int
	NumPlayers  int
}

// A Destination opens the sink a report is written to.
type Destination interface {
	Create() (io.WriteCloser, error)
}

// FilePath is a Destination on the local filesystem; Create truncates.
type FilePath string

func (p FilePath) Create() (io.WriteCloser, error) {
	return os.Create(string(p))
}

// Writer adapts an io.Writer (e.g. os.Stdout) to a Destination. Closing it
// does not close the underlying writer.
type Writer struct {
	W io.Writer
}

func (w Writer) Create() (io.WriteCloser, error) {
	if w.W == nil {
		return nil, ErrNullArgument
	}
	return nopCloser{w.W}, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// TournamentStatistics summarizes every ended tournament in ascending id
// order.
func (s *System) TournamentStatistics() ([]TournamentSummary, error) {
	if s == nil {
		return nil, ErrNullArgument
	}

	var out []TournamentSummary
	for id, t := range s.tournaments.All() {
		if t.status != Ended {
			continue
		}
		longest, total := t.LongestGame()
		var average float64
		if t.NumGames() > 0 {
			average = float64(total) / float64(t.NumGames())
		}
		winner, ok := t.Winner()
		if !ok {
			winner = NoWinner
		}
		out = append(out, TournamentSummary{
			ID:          id,
			Winner:      winner,
			LongestGame: longest,
			AverageGame: average,
			Location:    t.Location(),
			NumGames:    t.NumGames(),
			NumPlayers:  t.NumPlayers(),
		})
	}
	if len(out) == 0 {
		return nil, ErrNoTournamentsEnded
	}

	return out, nil
}

// BuildTournamentStatisticsOutput renders six lines per summary: winner,
// longest game, average game, location, games, players.
func BuildTournamentStatisticsOutput(summaries []TournamentSummary) string {
	var sb strings.Builder
	for _, ts := range summaries {
		sb.WriteString(fmt.Sprintf("%d\n", ts.Winner))
		sb.WriteString(fmt.Sprintf("%d\n", ts.LongestGame))
		sb.WriteString(fmt.Sprintf("%.2f\n", ts.AverageGame))
		sb.WriteString(fmt.Sprintf("%s\n", ts.Location))
		sb.WriteString(fmt.Sprintf("%d\n", ts.NumGames))
		sb.WriteString(fmt.Sprintf("%d\n", ts.NumPlayers))
	}
	return sb.String()
}

// SaveTournamentStatistics writes the statistics report to dest. Nothing is
// opened when no tournament has ended.
func (s *System) SaveTournamentStatistics(dest Destination) error {
	if s == nil || dest == nil {
		return ErrNullArgument
	}

	summaries, err := s.TournamentStatistics()
	if err != nil {
		return err
	}

	w, err := dest.Create()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailure, err)
	}
	_, err = io.WriteString(w, BuildTournamentStatisticsOutput(summaries))
	closeErr := w.Close()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailure, err)
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailure, closeErr)
	}

	return nil
}
