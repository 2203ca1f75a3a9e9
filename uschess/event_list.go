/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package uschess

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/mikeb26/chesssystem/internal"
)

type EventID int

type Event struct {
	EndDate time.Time
	Name    string
	ID      EventID
}

type apiAffiliateEventsResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		EndDate string `json:"endDate"`
	} `json:"items"`
	Offset      int  `json:"offset"`
	PageSize    int  `json:"pageSize"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPreviousPage"`
}

// GetAffiliateEvents pages through the events the affiliate ran, newest
// first. Events ending before since are dropped; a zero since keeps all.
func (client *Client) GetAffiliateEvents(ctx context.Context,
	affiliateCode string, since time.Time) ([]Event, error) {

	base, err := url.Parse(apiBase)
	if err != nil {
		return nil, err
	}

	var events []Event
	const pageSize = 100
	offset := 0

	for {
		eventsURL := base.ResolveReference(&url.URL{
			Path: "/api/v1/affiliates/" + url.PathEscape(affiliateCode) + "/events",
		})
		q := eventsURL.Query()
		q.Set("offset", strconv.Itoa(offset))
		q.Set("pageSize", strconv.Itoa(pageSize))
		eventsURL.RawQuery = q.Encode()

		var page apiAffiliateEventsResponse
		err := client.getJSON(ctx, client.httpClient1day, eventsURL.String(),
			"affiliate events", &page)
		if err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			idInt, err := strconv.Atoi(item.ID)
			if err != nil {
				client.logger.Debug().Str("id", item.ID).
					Msg("skipping affiliate event with invalid id")
				continue
			}
			endDate, _ := internal.ParseDateOrZero(item.EndDate)
			if !since.IsZero() && !endDate.IsZero() && endDate.Before(since) {
				continue
			}
			events = append(events, Event{
				EndDate: endDate,
				Name:    item.Name,
				ID:      EventID(idInt),
			})
		}

		if !page.HasNextPage {
			break
		}
		offset += pageSize
	}

	return events, nil
}
