/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mikeb26/chesssystem/chess"
	"github.com/mikeb26/chesssystem/internal"
)

var errSyntax = errors.New("syntax error")

// scriptRunner executes chesstd scripts against one System. Failures of the
// operations themselves are reported on out as "line N: <error>"; with
// strict set the first one stops the script.
type scriptRunner struct {
	sys    *chess.System
	out    io.Writer
	logger zerolog.Logger
	strict bool
}

type scriptCmd func(ctx context.Context, r *scriptRunner, args []string) error

var scriptCmds = map[string]scriptCmd{
	"tournament add":    scriptAddTournament,
	"tournament remove": scriptRemoveTournament,
	"tournament end":    scriptEndTournament,
	"game add":          scriptAddGame,
	"player remove":     scriptRemovePlayer,
	"player average":    scriptAverage,
	"levels":            scriptLevels,
	"stats":             scriptStats,
}

func (r *scriptRunner) run(ctx context.Context, script io.Reader) error {
	scanner := bufio.NewScanner(script)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		cmd, args, ok := lookupScriptCmd(fields)
		if !ok {
			return fmt.Errorf("line %d: %w: unknown command %q", lineNo,
				errSyntax, strings.Join(fields, " "))
		}
		err := cmd(ctx, r, args)
		if err == nil {
			continue
		}
		if errors.Is(err, errSyntax) {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		fmt.Fprintf(r.out, "line %d: %v\n", lineNo, err)
		if r.strict {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	return scanner.Err()
}

// lookupScriptCmd matches two word commands before one word ones.
func lookupScriptCmd(fields []string) (scriptCmd, []string, bool) {
	if len(fields) >= 2 {
		if cmd, ok := scriptCmds[fields[0]+" "+fields[1]]; ok {
			return cmd, fields[2:], true
		}
	}
	cmd, ok := scriptCmds[fields[0]]
	return cmd, fields[1:], ok
}

func atoiArgs(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", errSyntax, a)
		}
		out[i] = v
	}
	return out, nil
}

func wantArgs(args []string, n int, usage string) error {
	if len(args) != n {
		return fmt.Errorf("%w: usage: %v", errSyntax, usage)
	}
	return nil
}

func scriptAddTournament(_ context.Context, r *scriptRunner, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("%w: usage: tournament add ID MAXGAMES LOCATION",
			errSyntax)
	}
	nums, err := atoiArgs(args[:2])
	if err != nil {
		return err
	}
	// locations may contain spaces
	location := strings.Join(args[2:], " ")
	return r.sys.AddTournament(chess.TournamentID(nums[0]), nums[1], location)
}

func scriptRemoveTournament(_ context.Context, r *scriptRunner, args []string) error {
	if err := wantArgs(args, 1, "tournament remove ID"); err != nil {
		return err
	}
	nums, err := atoiArgs(args)
	if err != nil {
		return err
	}
	return r.sys.RemoveTournament(chess.TournamentID(nums[0]))
}

func scriptEndTournament(_ context.Context, r *scriptRunner, args []string) error {
	if err := wantArgs(args, 1, "tournament end ID"); err != nil {
		return err
	}
	nums, err := atoiArgs(args)
	if err != nil {
		return err
	}
	return r.sys.EndTournament(chess.TournamentID(nums[0]))
}

func scriptAddGame(_ context.Context, r *scriptRunner, args []string) error {
	if err := wantArgs(args, 5,
		"game add TID P1 P2 first|second|draw SECONDS"); err != nil {
		return err
	}
	outcome, err := chess.ParseOutcome(args[3])
	if err != nil {
		return fmt.Errorf("%w: %w", errSyntax, err)
	}
	nums, err := atoiArgs([]string{args[0], args[1], args[2], args[4]})
	if err != nil {
		return err
	}
	return r.sys.AddGame(chess.TournamentID(nums[0]), chess.PlayerID(nums[1]),
		chess.PlayerID(nums[2]), outcome, nums[3])
}

func scriptRemovePlayer(_ context.Context, r *scriptRunner, args []string) error {
	if err := wantArgs(args, 1, "player remove ID"); err != nil {
		return err
	}
	nums, err := atoiArgs(args)
	if err != nil {
		return err
	}
	return r.sys.RemovePlayer(chess.PlayerID(nums[0]))
}

func scriptAverage(_ context.Context, r *scriptRunner, args []string) error {
	if err := wantArgs(args, 1, "player average ID"); err != nil {
		return err
	}
	nums, err := atoiArgs(args)
	if err != nil {
		return err
	}
	avg, err := r.sys.AverageGameDuration(chess.PlayerID(nums[0]))
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "%.2f\n", avg)
	return nil
}

// reportDest resolves the optional destination argument; stdout by default.
func (r *scriptRunner) reportDest(ctx context.Context,
	args []string) (chess.Destination, error) {

	if len(args) > 1 {
		return nil, fmt.Errorf("%w: at most one destination", errSyntax)
	}
	target := "-"
	if len(args) == 1 {
		target = args[0]
	}
	return internal.OpenDestination(ctx, target, r.out, r.logger)
}

func scriptLevels(ctx context.Context, r *scriptRunner, args []string) error {
	dest, err := r.reportDest(ctx, args)
	if err != nil {
		return err
	}
	return savePlayersLevels(r.sys, dest)
}

func scriptStats(ctx context.Context, r *scriptRunner, args []string) error {
	dest, err := r.reportDest(ctx, args)
	if err != nil {
		return err
	}
	return r.sys.SaveTournamentStatistics(dest)
}

// savePlayersLevels writes the levels report to a Destination.
func savePlayersLevels(sys *chess.System, dest chess.Destination) error {
	w, err := dest.Create()
	if err != nil {
		return fmt.Errorf("%w: %w", chess.ErrSaveFailure, err)
	}
	err = sys.SavePlayersLevels(w)
	closeErr := w.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %w", chess.ErrSaveFailure, closeErr)
	}
	return nil
}
