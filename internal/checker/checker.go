// Package checker discovers bookable appointment slots by scraping the
// portal's calendar pages for the tracked services.
package checker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"burgerbot/internal/model"
)

const (
	baseURL     = "https://service.berlin.de"
	calendarFmt = baseURL + "/terminvereinbarung/termin/tag.php?termin=1&anliegen[]=%d&dienstleisterlist=&herkunft=1"
)

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Checker scrapes the appointment calendar for a fixed set of services.
type Checker struct {
	client   HTTPClient
	services []int64
}

// New creates a Checker over the given service ids with the default HTTP
// client.
func New(services []int64) *Checker {
	return NewWithClient(&http.Client{Timeout: 20 * time.Second}, services)
}

// NewWithClient creates a Checker with a custom HTTP client (useful for
// testing).
func NewWithClient(client HTTPClient, services []int64) *Checker {
	return &Checker{
		client:   client,
		services: append([]int64(nil), services...),
	}
}

// CheckSlots queries the calendar of every tracked service and returns one
// Slot per bookable day. The first failing service aborts the cycle; the
// caller retries next cycle.
func (c *Checker) CheckSlots(ctx context.Context) ([]model.Slot, error) {
	var slots []model.Slot
	for _, serviceID := range c.services {
		found, err := c.checkService(ctx, serviceID)
		if err != nil {
			return nil, fmt.Errorf("service %d: %w", serviceID, err)
		}
		slots = append(slots, found...)
	}
	return slots, nil
}

func (c *Checker) checkService(ctx context.Context, serviceID int64) ([]model.Slot, error) {
	pageURL := fmt.Sprintf(calendarFmt, serviceID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "BurgerBot/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	return parseBookableDays(doc, serviceID), nil
}

// parseBookableDays extracts a Slot per bookable calendar cell. Each cell
// links to a day page whose path carries the day as a unix timestamp.
func parseBookableDays(doc *goquery.Document, serviceID int64) []model.Slot {
	var slots []model.Slot
	doc.Find("td.buchbar a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		date, ok := dayFromHref(href)
		if !ok {
			return
		}
		slots = append(slots, model.Slot{
			ServiceID: serviceID,
			URL:       absoluteURL(href),
			Date:      date,
		})
	})
	return slots
}

// dayFromHref pulls the unix-timestamp path segment out of a booking link
// like /terminvereinbarung/termin/time/1709596800/.
func dayFromHref(href string) (time.Time, bool) {
	u, err := url.Parse(href)
	if err != nil {
		return time.Time{}, false
	}
	for _, segment := range strings.Split(strings.Trim(u.Path, "/"), "/") {
		ts, err := strconv.ParseInt(segment, 10, 64)
		if err != nil || ts < 1e9 {
			continue
		}
		return time.Unix(ts, 0).UTC(), true
	}
	return time.Time{}, false
}

func absoluteURL(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return baseURL + href
}
