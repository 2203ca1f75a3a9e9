/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/mikeb26/chesssystem/internal"
)

const pairingsURLFmt = "https://boylstonchess.org/files/event/%d/pairings"

// Player is a player reference from a pairings cell such as
// "12 John Doe (2250 3.0)".
type Player struct {
	PairingNumber int
	DisplayName   string
	Rating        int
	// score before the round
	Score float64
}

func (p Player) IsBye() bool {
	return p.DisplayName == "BYE"
}

// Pairing is one board of a posted round.
type Pairing struct {
	Section     string
	BoardNumber int
	White       Player
	Black       Player
	// raw result cells, e.g. "1", "0", "½"; empty until reported
	WhiteResult string
	BlackResult string
}

func (p Pairing) IsBye() bool {
	return p.White.IsBye() || p.Black.IsBye()
}

// Points returns both players' points for the board. ok is false for byes
// and for results that are missing or unreadable.
func (p Pairing) Points() (white float64, black float64, ok bool) {
	if p.IsBye() {
		return 0, 0, false
	}
	white, wok := parsePoints(p.WhiteResult)
	black, bok := parsePoints(p.BlackResult)
	if !wok || !bok || white+black != 1 {
		return 0, 0, false
	}
	return white, black, true
}

func parsePoints(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0, false
	case "½", "1/2", "=":
		return 0.5, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// GetPairings fetches and parses the posted pairings page for an event.
func GetPairings(ctx context.Context, hc *http.Client, eventID int64,
	logger zerolog.Logger) ([]Pairing, error) {

	url := fmt.Sprintf(pairingsURLFmt, eventID)
	doc, err := fetchDoc(ctx, hc, url)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch pairings page: %w", err)
	}

	pairings := parsePairings(doc)
	logger.Debug().Int64("event", eventID).Int("boards", len(pairings)).
		Msg("parsed pairings")
	return pairings, nil
}

// ParsePairings parses a pairings page.
func ParsePairings(r io.Reader) ([]Pairing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse pairings page: %w", err)
	}
	return parsePairings(doc), nil
}

// parsePairings extracts the pairing tables under each section header. The
// main h1 header is skipped when there are h2 sub-sections; malformed h3
// "Pairings ...: <section>" headers are handled as well.
func parsePairings(doc *goquery.Document) []Pairing {
	var pairings []Pairing
	hasSubSections := doc.Find("div#pairings h2").Length() > 0

	doc.Find("div#pairings h1, div#pairings h2").Each(func(_ int, s *goquery.Selection) {
		node := goquery.NodeName(s)
		if node == "h1" && hasSubSections {
			return
		}

		var section string
		if node == "h1" {
			// main section, use link text if available
			if title := strings.TrimSpace(s.Find("a").Text()); title != "" {
				section = title
			} else {
				section = strings.TrimSpace(s.Text())
			}
			section = strings.ReplaceAll(section, "Pairings", "")
			section = strings.Trim(section, " –:\t")
		} else {
			section = strings.ReplaceAll(s.Text(), "Section", "")
			section = strings.TrimSpace(section)
		}

		pairings = append(pairings, parsePairingRows(nextTable(s), section)...)
	})

	doc.Find("h3").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if !strings.HasPrefix(text, "Pairings") {
			return
		}
		section := text
		if idx := strings.LastIndex(text, ":"); idx >= 0 && idx < len(text)-1 {
			section = strings.TrimSpace(text[idx+1:])
		}

		pairings = append(pairings, parsePairingRows(nextTable(s), section)...)
	})

	return pairings
}

// nextTable returns the first table sibling following s, possibly empty.
func nextTable(s *goquery.Selection) *goquery.Selection {
	tableSel := s.Next()
	for tableSel.Length() > 0 && !tableSel.Is("table") {
		tableSel = tableSel.Next()
	}
	return tableSel
}

func parsePairingRows(tableSel *goquery.Selection, section string) []Pairing {
	var pairings []Pairing
	tableSel.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if pair, ok := parsePairingRow(row, section); ok {
			pairings = append(pairings, pair)
		}
	})
	return pairings
}

// parsePairingRow parses a "Bd | Res | White | Res | Black" row. ok is false
// for header and short rows.
func parsePairingRow(row *goquery.Selection, section string) (Pairing, bool) {
	cells := row.Find("td")
	if cells.Length() < 5 {
		return Pairing{}, false
	}
	boardText := strings.TrimSpace(cells.Eq(0).Text())
	if strings.EqualFold(boardText, "Bd") {
		return Pairing{}, false
	}
	// 0 for byes, which carry no board number
	board, _ := strconv.Atoi(boardText)

	return Pairing{
		Section:     section,
		BoardNumber: board,
		WhiteResult: strings.TrimSpace(cells.Eq(1).Text()),
		White:       parsePlayerRef(strings.TrimSpace(cells.Eq(2).Text())),
		BlackResult: strings.TrimSpace(cells.Eq(3).Text()),
		Black:       parsePlayerRef(strings.TrimSpace(cells.Eq(4).Text())),
	}, true
}

// parsePlayerRef extracts a Player from cell text like
// "12 John Doe (2250 3.0)" or "7 Jane Roe (unr. 1.5)".
func parsePlayerRef(text string) Player {
	if strings.EqualFold(strings.TrimSpace(text), "BYE") {
		return Player{DisplayName: "BYE"}
	}

	p := Player{}
	nameOnly := text
	parenStart := strings.Index(text, "(")
	if parenStart != -1 {
		nameOnly = strings.TrimSpace(text[:parenStart])
	}
	fields := strings.Fields(nameOnly)
	if len(fields) > 0 {
		if num, err := strconv.Atoi(fields[0]); err == nil {
			p.PairingNumber = num
			fields = fields[1:]
		}
	}
	p.DisplayName = internal.NormalizeName(strings.Join(fields, " "))

	parenEnd := strings.Index(text, ")")
	if parenStart != -1 && parenEnd > parenStart {
		parts := strings.Fields(text[parenStart+1 : parenEnd])
		if len(parts) >= 1 && parts[0] != "unr." {
			if r, err := strconv.Atoi(parts[0]); err == nil {
				p.Rating = r
			}
		}
		if len(parts) >= 2 {
			if score, err := strconv.ParseFloat(parts[1], 64); err == nil {
				p.Score = score
			}
		}
	}
	return p
}
