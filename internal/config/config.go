/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	LogLevel string

	// empty disables the S3 web cache
	WebCacheBucket string
	CacheGzip      bool

	DiscordToken  string
	DiscordPubKey string
	DiscordAppID  string
	DiscordAddr   string

	// used for imported events, whose locations are not valid tournament
	// locations
	DefaultLocation string
	// caps the per-player game limit of imported tournaments
	MaxGames int
}

// Load reads .env (when present) into the environment and builds a Config
// from CHESS_* variables, falling back to defaults. Variables already set in
// the environment win over the file.
func Load(logger zerolog.Logger) (*Config, error) {
	return LoadFrom(logger)
}

// LoadFrom is Load with explicit env files instead of .env.
func LoadFrom(logger zerolog.Logger, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		logger.Debug().Msg("env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		LogLevel:        getEnv("CHESS_LOG_LEVEL", "info"),
		WebCacheBucket:  getEnv("CHESS_WEBCACHE_BUCKET", ""),
		DiscordToken:    getEnv("CHESS_DISCORD_TOKEN", ""),
		DiscordPubKey:   getEnv("CHESS_DISCORD_PUBKEY", ""),
		DiscordAppID:    getEnv("CHESS_DISCORD_APPID", ""),
		DiscordAddr:     getEnv("CHESS_DISCORD_ADDR", ":8080"),
		DefaultLocation: getEnv("CHESS_DEFAULT_LOCATION", "Boston"),
	}

	var err error
	cfg.CacheGzip, err = strconv.ParseBool(getEnv("CHESS_CACHE_GZIP", "false"))
	if err != nil {
		return nil, fmt.Errorf("CHESS_CACHE_GZIP: %w", err)
	}
	cfg.MaxGames, err = strconv.Atoi(getEnv("CHESS_MAX_GAMES", "16"))
	if err != nil {
		return nil, fmt.Errorf("CHESS_MAX_GAMES: %w", err)
	}
	if cfg.MaxGames <= 0 {
		return nil, fmt.Errorf("CHESS_MAX_GAMES must be positive, got %d",
			cfg.MaxGames)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("CHESS_LOG_LEVEL: %w", err)
	}

	logger.Debug().
		Str("log_level", cfg.LogLevel).
		Str("webcache_bucket", cfg.WebCacheBucket).
		Bool("cache_gzip", cfg.CacheGzip).
		Str("default_location", cfg.DefaultLocation).
		Int("max_games", cfg.MaxGames).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
