/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mikeb26/chesssystem/internal"
	"github.com/mikeb26/chesssystem/internal/config"
	"github.com/mikeb26/chesssystem/internal/logger"
	"github.com/mikeb26/chesssystem/uschess"
)

// this program exists just to seed the web cache with an affiliate's recent
// cross tables so imports and the bot start warm

func main() {
	ctx := context.Background()

	aid := flag.String("uscfaid", internal.BccUSCFAffiliateID, "USCF Affiliate ID")
	days := flag.Int("days", 60, "Seed events rated in the last N days")
	pause := flag.Duration("pause", 2*time.Second, "Pause between events")
	flag.Parse()

	bootLogger := logger.NewConsole("info")
	cfg, err := config.Load(bootLogger)
	if err != nil {
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.NewConsole(cfg.LogLevel)
	if cfg.WebCacheBucket == "" {
		log.Warn().Msg("CHESS_WEBCACHE_BUCKET not set; nothing will persist")
	}

	client := uschess.NewClient(internal.OpenWebCache(ctx, cfg, log), log)
	since := time.Now().AddDate(0, 0, -*days)
	events, err := client.GetAffiliateEvents(ctx, *aid, since)
	if err != nil {
		log.Error().Err(err).Str("aid", *aid).Msg("unable to list events")
		os.Exit(1)
	}

	for _, ev := range events {
		_, err := client.FetchCrossTables(ctx, ev.ID)
		time.Sleep(*pause) // avoid pegging uschess.org
		if err != nil {
			// best effort
			log.Warn().Err(err).Int("tid", int(ev.ID)).Msg("seed failed")
			continue
		}

		fmt.Printf("seeded tid:%v %v\n", ev.ID, ev.Name)
	}
}
