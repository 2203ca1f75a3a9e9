/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/chesssystem/chess"
	"github.com/mikeb26/chesssystem/importer"
	"github.com/mikeb26/chesssystem/internal"
	"github.com/mikeb26/chesssystem/uschess"
)

type ChessSubCommand string

const (
	ChessAboutCmd   ChessSubCommand = "about"
	ChessHelpCmd    ChessSubCommand = "help"
	ChessLevelsCmd  ChessSubCommand = "levels"
	ChessStatsCmd   ChessSubCommand = "stats"
	ChessHistoryCmd ChessSubCommand = "history"
)

var chessSubCmdHdlrs = map[ChessSubCommand]CmdHandler{
	ChessAboutCmd:   chessAboutCmdHandler,
	ChessHelpCmd:    chessHelpCmdHandler,
	ChessLevelsCmd:  chessLevelsCmdHandler,
	ChessStatsCmd:   chessStatsCmdHandler,
	ChessHistoryCmd: chessHistoryCmdHandler,
}

var broadcastOpt = &discordgo.ApplicationCommandOption{
	Type:        discordgo.ApplicationCommandOptionBoolean,
	Name:        "broadcast",
	Description: "Share with the rest of the channel instead of only to you (default is false)",
	Required:    false,
}

var uscfTidOpt = &discordgo.ApplicationCommandOption{
	Type:        discordgo.ApplicationCommandOptionInteger,
	Name:        "uscftid",
	Description: "USCF tournament id (as returned by history)",
	Required:    true,
}

func chessCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        string(ChessCmd),
		Description: "Tournament book keeping; try /chess help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(ChessHelpCmd),
				Description: "Show usage for chess",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(ChessAboutCmd),
				Description: "Show information about this bot",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(ChessLevelsCmd),
				Description: "Rank the players of a rated event",
				Options: []*discordgo.ApplicationCommandOption{
					uscfTidOpt, broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(ChessStatsCmd),
				Description: "Summarize each section of a rated event",
				Options: []*discordgo.ApplicationCommandOption{
					uscfTidOpt, broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(ChessHistoryCmd),
				Description: "Show recently rated events of the club",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "days",
						Description: "Number of days to retrieve (default is 14)",
						Required:    false,
					},
					broadcastOpt,
				},
			},
		},
	}
}

func chessCmdHandler(ctx context.Context, b *bot,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := chessHelpCmdHandler
	if len(data.Options) > 0 {
		if h, ok := chessSubCmdHdlrs[ChessSubCommand(data.Options[0].Name)]; ok {
			hdlr = h
		}
	}
	return hdlr(ctx, b, inter)
}

func ephemeral(content string) *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}
}

// subCmdOptions are the options given to the invoked sub command.
type subCmdOptions struct {
	ints      map[string]int64
	broadcast bool
}

func parseSubCmdOptions(inter *discordgo.Interaction) subCmdOptions {
	opts := subCmdOptions{ints: make(map[string]int64)}
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return opts
	}
	for _, opt := range data.Options[0].Options {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionInteger:
			opts.ints[opt.Name] = opt.IntValue()
		case discordgo.ApplicationCommandOptionBoolean:
			if opt.Name == "broadcast" {
				opts.broadcast = opt.BoolValue()
			}
		}
	}
	return opts
}

func (o subCmdOptions) apply(resp *discordgo.InteractionResponse) *discordgo.InteractionResponse {
	if o.broadcast {
		resp.Data.Flags = 0
	}
	return resp
}

//go:embed about.txt
var aboutText string

func chessAboutCmdHandler(ctx context.Context, b *bot,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	return ephemeral(truncateContent(aboutText))
}

//go:embed help.md
var helpText string

func chessHelpCmdHandler(ctx context.Context, b *bot,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	return ephemeral(truncateContent(helpText))
}

// importEvent loads every section of a rated event into a fresh system and
// ends the sections that saw play.
func (b *bot) importEvent(ctx context.Context,
	tid int64) (*chess.System, error) {

	sys := chess.New(chess.WithLogger(b.logger))
	im := importer.New(sys,
		importer.WithLogger(b.logger),
		importer.WithLocation(b.cfg.DefaultLocation),
		importer.WithGameCeiling(b.cfg.MaxGames),
		importer.WithEnd(true))
	if _, err := im.Event(ctx, b.events, uschess.EventID(tid)); err != nil {
		return nil, err
	}
	return sys, nil
}

func chessLevelsCmdHandler(ctx context.Context, b *bot,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	opts := parseSubCmdOptions(inter)
	tid, ok := opts.ints["uscftid"]
	if !ok || tid <= 0 {
		return ephemeral("Please provide a USCF tournament ID.")
	}

	sys, err := b.importEvent(ctx, tid)
	if err != nil {
		msg := fmt.Sprintf("Error importing event %d: %v", tid, err)
		b.logger.Warn().Err(err).Int64("uscftid", tid).Msg("discordbot.levels")
		return ephemeral(msg)
	}
	levels := sys.PlayersLevels()
	if len(levels) == 0 {
		return ephemeral(fmt.Sprintf("No games found for event %d.", tid))
	}

	// code block for monospace formatting in Discord
	return opts.apply(ephemeral(fmt.Sprintf("```\n%s```",
		truncateContent(chess.BuildPlayersLevelsOutput(levels)))))
}

func chessStatsCmdHandler(ctx context.Context, b *bot,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	opts := parseSubCmdOptions(inter)
	tid, ok := opts.ints["uscftid"]
	if !ok || tid <= 0 {
		return ephemeral("Please provide a USCF tournament ID.")
	}

	sys, err := b.importEvent(ctx, tid)
	if err != nil {
		msg := fmt.Sprintf("Error importing event %d: %v", tid, err)
		b.logger.Warn().Err(err).Int64("uscftid", tid).Msg("discordbot.stats")
		return ephemeral(msg)
	}
	summaries, err := sys.TournamentStatistics()
	if errors.Is(err, chess.ErrNoTournamentsEnded) {
		return ephemeral(fmt.Sprintf("No completed sections for event %d.", tid))
	} else if err != nil {
		return ephemeral(fmt.Sprintf("Error summarizing event %d: %v", tid, err))
	}

	return opts.apply(ephemeral(fmt.Sprintf("```\n%s```",
		truncateContent(chess.BuildTournamentStatisticsOutput(summaries)))))
}

func chessHistoryCmdHandler(ctx context.Context, b *bot,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	opts := parseSubCmdOptions(inter)
	days := opts.ints["days"]
	// enforce bounds
	if days <= 0 {
		days = 14
	} else if days > 60 {
		days = 60
	}
	since := time.Now().AddDate(0, 0, -int(days))

	events, err := b.events.GetAffiliateEvents(ctx, internal.BccUSCFAffiliateID,
		since)
	if err != nil {
		b.logger.Warn().Err(err).Msg("discordbot.history")
		return ephemeral(fmt.Sprintf("Error fetching events: %v", err))
	}
	if len(events) == 0 {
		return ephemeral(fmt.Sprintf("No events rated in the last %d days.", days))
	}

	eventsByDate := make(map[string][]uschess.Event)
	for _, ev := range events {
		key := ev.EndDate.Format("2006-01-02")
		eventsByDate[key] = append(eventsByDate[key], ev)
	}
	var datesList []string
	for d := range eventsByDate {
		datesList = append(datesList, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(datesList)))

	var sb strings.Builder
	for _, d := range datesList {
		sb.WriteString(fmt.Sprintf("**%s**\n", d))
		for _, ev := range eventsByDate[d] {
			sb.WriteString(fmt.Sprintf("- %v (uscftid:%v)\n", ev.Name, ev.ID))
		}
	}
	sb.WriteString("\nRun /chess levels <uscftid> to rank the players of an event\n")

	return opts.apply(ephemeral(truncateContent(sb.String())))
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
