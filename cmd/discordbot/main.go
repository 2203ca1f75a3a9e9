/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/mikeb26/chesssystem/importer"
	"github.com/mikeb26/chesssystem/internal"
	"github.com/mikeb26/chesssystem/internal/config"
	"github.com/mikeb26/chesssystem/internal/logger"
	"github.com/mikeb26/chesssystem/uschess"
)

const interactionPath = "/DiscordBot/Interaction"

type TopLevelCommand string

const ChessCmd TopLevelCommand = "chess"

type CmdHandler func(ctx context.Context, b *bot,
	inter *discordgo.Interaction) *discordgo.InteractionResponse

var topLevelCmdHdlrs = map[TopLevelCommand]CmdHandler{
	ChessCmd: chessCmdHandler,
}

// bot serves discord interactions for the /chess command.
type bot struct {
	cfg     *config.Config
	logger  zerolog.Logger
	pubKey  ed25519.PublicKey
	session *discordgo.Session
	events  importer.EventSource
}

func newBot(ctx context.Context, cfg *config.Config,
	log zerolog.Logger) (*bot, error) {

	if cfg.DiscordToken == "" || cfg.DiscordPubKey == "" {
		return nil, errors.New("CHESS_DISCORD_TOKEN and CHESS_DISCORD_PUBKEY must be set")
	}
	pubKeyBytes, err := hex.DecodeString(cfg.DiscordPubKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize discord client: %w", err)
	}
	cache := internal.OpenWebCache(ctx, cfg, log)

	return &bot{
		cfg:     cfg,
		logger:  log,
		pubKey:  ed25519.PublicKey(pubKeyBytes),
		session: session,
		events:  uschess.NewClient(cache, log),
	}, nil
}

func (b *bot) interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, b.pubKey) {
		b.logger.Warn().Str("remote", r.RemoteAddr).
			Msg("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		b.logger.Error().Err(err).Msg("discordbot.int: failed to read request body")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		b.logger.Error().Err(err).Bytes("body", body).
			Msg("discordbot.int: failed to unmarshal interaction")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	switch inter.Type {
	case discordgo.InteractionPing:
		resp.Type = discordgo.InteractionResponsePong
	case discordgo.InteractionApplicationCommand:
		name := inter.ApplicationCommandData().Name
		hdlr, ok := topLevelCmdHdlrs[TopLevelCommand(name)]
		if !ok {
			resp = ephemeral(fmt.Sprintf("unknown command '%v'", name))
		} else {
			resp = hdlr(r.Context(), b, &inter)
		}
	default:
		b.logger.Warn().Int("type", int(inter.Type)).
			Msg("discordbot.int: unimplemented interaction type")
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		b.logger.Error().Err(err).Msg("discordbot.int: failed to marshal resp")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(rawResp); err != nil {
		b.logger.Error().Err(err).Msg("discordbot.int: failed to write resp")
	}
}

// cmdRegistrationHash identifies a command definition so that an unchanged
// one is not re-registered on every start.
func cmdRegistrationHash(cmd *discordgo.ApplicationCommand) (string, error) {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(cmdJson)
	return hex.EncodeToString(hash[:]), nil
}

func (b *bot) registerSlashCommands() {
	cmd := chessCommand()
	if b.cfg.DiscordAppID == "" {
		b.logger.Warn().Msg("discordbot.reg: CHESS_DISCORD_APPID not set; skipping registration")
		return
	}
	hash, err := cmdRegistrationHash(cmd)
	if err != nil {
		b.logger.Error().Err(err).Msg("discordbot.reg: failed to marshal cmd")
		return
	}

	// creating an existing command overwrites it
	reg, err := b.session.ApplicationCommandCreate(b.cfg.DiscordAppID, "", cmd)
	if err != nil {
		b.logger.Error().Err(err).Str("cmd", cmd.Name).
			Msg("discordbot.reg: failed to register")
		return
	}
	b.logger.Info().Str("cmd", reg.Name).Str("cmdID", reg.ID).
		Str("hash", hash).Msg("discordbot.reg: registered")
}

func main() {
	ctx := context.Background()

	bootLogger := logger.New("info")
	cfg, err := config.Load(bootLogger)
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("discordbot.main: invalid configuration")
	}
	log := logger.New(cfg.LogLevel)

	b, err := newBot(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("discordbot.main: init failed")
	}
	go b.registerSlashCommands()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	log.Info().Str("host", hostname).Str("addr", cfg.DiscordAddr).
		Msg("discordbot.main: starting server")

	mux := http.NewServeMux()
	mux.HandleFunc(interactionPath, b.interactionHandler)
	if err := http.ListenAndServe(cfg.DiscordAddr, mux); err != nil {
		log.Fatal().Err(err).Msg("discordbot.main: serve failed")
	}
}
