/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/mikeb26/chesssystem/bcc"
	"github.com/mikeb26/chesssystem/chess"
	"github.com/mikeb26/chesssystem/importer"
	"github.com/mikeb26/chesssystem/internal"
	"github.com/mikeb26/chesssystem/internal/config"
	"github.com/mikeb26/chesssystem/internal/logger"
	"github.com/mikeb26/chesssystem/uschess"
)

//go:embed help.txt
var helpText string

// app carries what every command needs.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	stdout io.Writer
}

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, a *app, args []string) error

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":    handleHelp,
	"run":     handleRun,
	"import":  handleImport,
	"history": handleHistory,
}

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	bootLogger := logger.NewConsole("info")
	cfg, err := config.Load(bootLogger)
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}
	a := &app{
		cfg:    cfg,
		logger: logger.NewConsole(cfg.LogLevel),
		stdout: os.Stdout,
	}

	cmd := os.Args[1]
	handler, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
	if err := handler(ctx, a, os.Args[2:]); err != nil {
		a.logger.Error().Err(err).Str("command", cmd).Msg("command failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Printf("%v", helpText)
}

func handleHelp(ctx context.Context, a *app, args []string) error {
	usage()
	return nil
}

func (a *app) newSystem() *chess.System {
	return chess.New(chess.WithLogger(a.logger))
}

func handleRun(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	script := fs.String("script", "", "Script file to run (- for stdin)")
	strict := fs.Bool("strict", false, "Stop at the first failed operation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *script == "" {
		fmt.Fprintln(os.Stderr, "Please provide a --script file.")
		fs.Usage()
		os.Exit(1)
	}

	in := io.Reader(os.Stdin)
	if *script != "-" {
		f, err := os.Open(*script)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	r := &scriptRunner{
		sys:    a.newSystem(),
		out:    a.stdout,
		logger: a.logger,
		strict: *strict,
	}
	return r.run(ctx, in)
}

func handleImport(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	tid := fs.Int("uscftid", 0, "USCF Tournament ID")
	aid := fs.String("uscfaid", "", "USCF Affiliate ID")
	days := fs.Int("days", 0, "With --uscfaid, only events of the last N days")
	bccEvent := fs.Int("bccevent", 0, "Club event ID whose pairings to import")
	end := fs.Bool("end", true, "End imported tournaments")
	levels := fs.String("levels", "", "Players-levels report destination")
	stats := fs.String("stats", "", "Tournament-statistics report destination")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *tid <= 0 && *aid == "" && *bccEvent <= 0 {
		fmt.Fprintln(os.Stderr,
			"Please provide one of --uscftid, --uscfaid or --bccevent.")
		fs.Usage()
		os.Exit(1)
	}

	sys := a.newSystem()
	im := importer.New(sys,
		importer.WithLogger(a.logger),
		importer.WithLocation(a.cfg.DefaultLocation),
		importer.WithGameCeiling(a.cfg.MaxGames),
		importer.WithEnd(*end))

	var sums []importer.Summary
	var err error
	switch {
	case *bccEvent > 0:
		var pairings []bcc.Pairing
		cache := internal.OpenWebCache(ctx, a.cfg, a.logger)
		hc := internal.NewCachedHttpClient(cache, time.Hour, nil)
		pairings, err = bcc.GetPairings(ctx, hc, int64(*bccEvent), a.logger)
		if err == nil {
			sums, err = im.Pairings(pairings)
		}
	case *tid > 0:
		sums, err = im.Event(ctx, a.uscfClient(ctx), uschess.EventID(*tid))
	default:
		var since time.Time
		if *days > 0 {
			since = time.Now().AddDate(0, 0, -*days)
		}
		sums, err = im.Affiliate(ctx, a.uscfClient(ctx), *aid, since)
	}
	for _, s := range sums {
		fmt.Fprintf(a.stdout, "tournament %d: %s (%d games, %d skipped)\n",
			s.Tournament, s.Section, s.Games, s.Skipped)
	}
	if err != nil {
		return err
	}

	return a.writeReports(ctx, sys, *levels, *stats)
}

func (a *app) uscfClient(ctx context.Context) *uschess.Client {
	cache := internal.OpenWebCache(ctx, a.cfg, a.logger)
	return uschess.NewClient(cache, a.logger)
}

func (a *app) writeReports(ctx context.Context, sys *chess.System,
	levels string, stats string) error {

	if levels != "" {
		dest, err := internal.OpenDestination(ctx, levels, a.stdout, a.logger)
		if err != nil {
			return err
		}
		if err := savePlayersLevels(sys, dest); err != nil {
			return err
		}
	}
	if stats != "" {
		dest, err := internal.OpenDestination(ctx, stats, a.stdout, a.logger)
		if err != nil {
			return err
		}
		if err := sys.SaveTournamentStatistics(dest); err != nil {
			return err
		}
	}
	return nil
}

func handleHistory(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	days := fs.Int("days", 14, "Number of days to retrieve (1-60)")
	aid := fs.String("uscfaid", internal.BccUSCFAffiliateID, "USCF Affiliate ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *aid == "" {
		fmt.Fprintln(os.Stderr, "Please provide a valid --uscfaid ID.")
		fs.Usage()
		os.Exit(1)
	}

	// enforce bounds
	if *days <= 0 {
		*days = 14
	} else if *days > 60 {
		*days = 60
	}
	since := time.Now().AddDate(0, 0, -*days)

	events, err := a.uscfClient(ctx).GetAffiliateEvents(ctx, *aid, since)
	if err != nil {
		return fmt.Errorf("unable to fetch events for aid:%v: %w", *aid, err)
	}
	if len(events) == 0 {
		fmt.Fprintf(a.stdout, "No recent events found for aid:%v\n", *aid)
		return nil
	}

	eventsByDate := make(map[string][]uschess.Event)
	for _, ev := range events {
		key := ev.EndDate.Format("2006-01-02")
		eventsByDate[key] = append(eventsByDate[key], ev)
	}
	var dates []string
	for d := range eventsByDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i] > dates[j]
	})
	for _, d := range dates {
		fmt.Fprintln(a.stdout, d)
		for _, ev := range eventsByDate[d] {
			fmt.Fprintf(a.stdout, "  - %s (uscftid:%v)\n", ev.Name, ev.ID)
		}
	}
	fmt.Fprintf(a.stdout,
		"\nRun '%s import --uscftid ID --levels -' to rank its players\n",
		os.Args[0])
	return nil
}
