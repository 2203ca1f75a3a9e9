/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/chesssystem/internal"
)

// MemID is a USCF member id.
type MemID int

// Result represents the outcome of a round.
type Result int

const (
	ResultWin Result = iota
	ResultLoss
	ResultDraw
	ResultFullBye
	ResultHalfBye
	ResultLossByForfeit
	ResultWinByForfeit
	ResultUnplayedGame
	ResultUnknown
)

// Played reports whether the result came from a game over the board.
func (r Result) Played() bool {
	return r == ResultWin || r == ResultLoss || r == ResultDraw
}

// RoundResult holds the result of a single round for a player.
type RoundResult struct {
	Round           int
	OpponentPairNum int
	Outcome         Result
	Color           string
}

// CrossTableEntry holds the data for one player in the cross table.
type CrossTableEntry struct {
	PairNum          int
	PlayerName       string
	PlayerId         MemID
	PlayerRatingPre  string
	PlayerRatingPost string
	TotalPoints      float64
	Results          []RoundResult
}

type RatingType int

const (
	RatingTypeRegular RatingType = iota
	RatingTypeQuick
	RatingTypeBlitz
)

// CrossTable holds the full cross table data, one per section.
type CrossTable struct {
	SectionNumber int
	SectionName   string
	NumRounds     int
	NumPlayers    int
	RType         RatingType
	PlayerEntries []CrossTableEntry
}

// Entry returns the entry holding pairing number pairNum.
func (xt *CrossTable) Entry(pairNum int) (*CrossTableEntry, bool) {
	for i := range xt.PlayerEntries {
		if xt.PlayerEntries[i].PairNum == pairNum {
			return &xt.PlayerEntries[i], true
		}
	}
	return nil, false
}

// Tournament encapsulates the overall event and its cross tables.
type Tournament struct {
	Event       Event
	NumSections int

	CrossTables []*CrossTable
}

type apiRatedEventResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	SectionCount int    `json:"sectionCount"`
	Sections     []struct {
		ID     string `json:"id"`
		Number int    `json:"number"`
		Name   string `json:"name"`
	} `json:"sections"`
}

type apiStandingsResponse struct {
	Items []apiStandingItem `json:"items"`
}

type apiStandingItem struct {
	Ordinal       int               `json:"ordinal"`
	PairingNumber int               `json:"pairingNumber"`
	MemberID      string            `json:"memberId"`
	FirstName     string            `json:"firstName"`
	LastName      string            `json:"lastName"`
	Score         float64           `json:"score"`
	RoundOutcomes []apiRoundOutcome `json:"roundOutcomes"`
	Ratings       []apiRatingChange `json:"ratings"`
}

type apiRoundOutcome struct {
	RoundNumber           int    `json:"roundNumber"`
	Outcome               string `json:"outcome"`
	Color                 string `json:"color"`
	OpponentOrdinal       int    `json:"opponentOrdinal"`
	OpponentPairingNumber int    `json:"opponentPairingNumber"`
}

type apiRatingChange struct {
	PreRating    int    `json:"preRating"`
	PostRating   int    `json:"postRating"`
	RatingSystem string `json:"ratingSystem"`
}

// FetchCrossTables retrieves a Tournament with all sections' cross tables
// for the given event id. Sections are fetched concurrently; a section that
// cannot be fetched is logged and left out.
func (client *Client) FetchCrossTables(ctx context.Context,
	id EventID) (*Tournament, error) {

	var eventData apiRatedEventResponse
	eventURL := fmt.Sprintf("%v/api/v1/rated-events/%v", apiBase, id)
	err := client.getJSON(ctx, client.httpClient30day, eventURL, "event",
		&eventData)
	if err != nil {
		return nil, err
	}

	// indexed like eventData.Sections; nil marks a failed section
	standings := make([]*apiStandingsResponse, len(eventData.Sections))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, section := range eventData.Sections {
		g.Go(func() error {
			var one apiStandingsResponse
			url := fmt.Sprintf("%v/api/v1/rated-events/%v/sections/%d/standings",
				apiBase, id, section.Number)
			err := client.getJSON(gctx, client.httpClient30day, url,
				"standings", &one)
			if err != nil {
				client.logger.Warn().Err(err).Int("section", section.Number).
					Msg("failed to fetch section")
				return nil
			}
			standings[i] = &one
			return nil
		})
	}
	_ = g.Wait()

	var crossTables []*CrossTable
	for i, section := range eventData.Sections {
		if standings[i] == nil {
			continue
		}
		xt := convertStandingsToCrossTable(client, standings[i], section.Name)
		xt.SectionNumber = section.Number
		crossTables = append(crossTables, xt)
	}

	endDate, err := internal.ParseDateOrZero(eventData.EndDate)
	if err != nil {
		client.logger.Warn().Err(err).Str("endDate", eventData.EndDate).
			Msg("unable to parse event end date")
	}

	return &Tournament{
		Event: Event{
			EndDate: endDate,
			Name:    eventData.Name,
			ID:      id,
		},
		NumSections: len(crossTables),
		CrossTables: crossTables,
	}, nil
}

func convertStandingsToCrossTable(client *Client,
	standings *apiStandingsResponse, sectionName string) *CrossTable {

	var entries []CrossTableEntry
	var numRounds int
	ratingType := RatingTypeRegular

	for _, item := range standings.Items {
		// the first player decides the section's rating type; dual rated
		// sections count as regular
		if len(entries) == 0 && len(item.Ratings) > 0 {
			ratingType = sectionRatingType(item.Ratings)
		}

		var results []RoundResult
		for _, outcome := range item.RoundOutcomes {
			results = append(results, RoundResult{
				Round:           outcome.RoundNumber,
				OpponentPairNum: outcome.OpponentOrdinal,
				Outcome:         convertOutcome(outcome.Outcome),
				Color:           convertColor(outcome.Color),
			})
		}
		numRounds = max(numRounds, len(results))

		preRating, postRating := ratingsFor(item.Ratings, ratingType)

		memberID, err := strconv.Atoi(item.MemberID)
		if err != nil {
			client.logger.Warn().Err(err).Str("memberId", item.MemberID).
				Msg("failed to convert member id")
		}

		entries = append(entries, CrossTableEntry{
			PairNum:          item.Ordinal,
			PlayerName:       internal.NormalizeName(item.FirstName + " " + item.LastName),
			PlayerId:         MemID(memberID),
			PlayerRatingPre:  preRating,
			PlayerRatingPost: postRating,
			TotalPoints:      item.Score,
			Results:          results,
		})
	}

	return &CrossTable{
		SectionName:   fmt.Sprintf("Section %s", sectionName),
		NumRounds:     numRounds,
		NumPlayers:    len(entries),
		RType:         ratingType,
		PlayerEntries: entries,
	}
}

func sectionRatingType(ratings []apiRatingChange) RatingType {
	for _, rating := range ratings {
		if rating.RatingSystem == "R" || rating.RatingSystem == "D" {
			return RatingTypeRegular
		}
	}
	switch ratings[0].RatingSystem {
	case "B":
		return RatingTypeBlitz
	case "Q":
		return RatingTypeQuick
	default:
		return RatingTypeRegular
	}
}

func ratingsFor(ratings []apiRatingChange, rt RatingType) (pre string,
	post string) {

	for _, rating := range ratings {
		var match bool
		switch rt {
		case RatingTypeRegular:
			match = rating.RatingSystem == "R" || rating.RatingSystem == "D"
		case RatingTypeBlitz:
			match = rating.RatingSystem == "B"
		case RatingTypeQuick:
			match = rating.RatingSystem == "Q"
		}
		if !match {
			continue
		}
		if rating.PreRating > 0 {
			pre = strconv.Itoa(rating.PreRating)
		}
		if rating.PostRating > 0 {
			post = strconv.Itoa(rating.PostRating)
		}
		break
	}
	return pre, post
}

func convertOutcome(outcome string) Result {
	switch outcome {
	case "Win":
		return ResultWin
	case "Loss":
		return ResultLoss
	case "Draw":
		return ResultDraw
	case "ByeFull":
		return ResultFullBye
	case "ByeHalf":
		return ResultHalfBye
	case "LossByForfeit", "LossForfeit":
		return ResultLossByForfeit
	case "WinForfeit", "WinByForfeit":
		return ResultWinByForfeit
	case "Unplayed", "Unpaired":
		return ResultUnplayedGame
	default:
		return ResultUnknown
	}
}

func convertColor(color string) string {
	switch strings.ToLower(color) {
	case "white":
		return "white"
	case "black":
		return "black"
	default:
		return ""
	}
}
