package catalog

import (
	"strings"
	"time"

	"github.com/deconcierge/vitals/internal/infra/calfeed"
)

// Sample ICS fixtures for the mock:// demo sources. The DTSTAMP is fixed
// so fixture bodies, and therefore their fingerprints and CIDs, are
// reproducible across runs.

const sampleDTStamp = "20250301T000000Z"

const icsTimeLayout = "20060102T150405Z"

type sampleEvent struct {
	uid         string
	startISO    string
	endISO      string
	summary     string
	description string
	location    string
	status      string
}

type sampleFeed struct {
	url    string
	prodID string
	events []sampleEvent
}

// RegisterSampleFixtures installs the demo feeds into the fixture set.
func RegisterSampleFixtures(fixtures *calfeed.FixtureSet) {
	for _, feed := range sampleFeeds() {
		fixtures.Register(feed.url, buildICS(feed))
	}
}

// SampleFeedURLs lists the registered mock:// source URLs.
func SampleFeedURLs() []string {
	feeds := sampleFeeds()
	urls := make([]string, len(feeds))
	for i, feed := range feeds {
		urls[i] = feed.url
	}
	return urls
}

func buildICS(feed sampleFeed) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//De-concierge//" + feed.prodID + "//EN",
	}
	for _, event := range feed.events {
		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+event.uid,
			"DTSTAMP:"+sampleDTStamp,
			"DTSTART:"+formatICSTime(event.startISO),
			"DTEND:"+formatICSTime(event.endISO),
			"SUMMARY:"+event.summary,
		)
		if event.description != "" {
			lines = append(lines, "DESCRIPTION:"+event.description)
		}
		if event.location != "" {
			lines = append(lines, "LOCATION:"+event.location)
		}
		if event.status != "" {
			lines = append(lines, "STATUS:"+event.status)
		}
		lines = append(lines, "END:VEVENT")
	}
	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n") + "\r\n"
}

func formatICSTime(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.UTC().Format(icsTimeLayout)
}

func sampleFeeds() []sampleFeed {
	return []sampleFeed{
		{
			url:    "mock://palermo",
			prodID: "Palermo Rooftop Loft",
			events: []sampleEvent{
				{
					uid:         "palermo-001",
					startISO:    "2025-03-14T18:00:00Z",
					endISO:      "2025-03-17T15:00:00Z",
					summary:     "Booking - Palermo Rooftop Loft",
					description: "Imported from Airbnb - reservation #84721",
					location:    "Palermo, Buenos Aires",
					status:      "CONFIRMED",
				},
				{
					uid:      "palermo-buffer",
					startISO: "2025-03-17T15:00:00Z",
					endISO:   "2025-03-18T15:00:00Z",
					summary:  "Cleaning buffer",
					status:   "TENTATIVE",
				},
			},
		},
		{
			url:    "mock://recoleta",
			prodID: "Recoleta Executive Suite",
			events: []sampleEvent{
				{
					uid:         "recoleta-114",
					startISO:    "2025-03-20T14:00:00Z",
					endISO:      "2025-03-23T11:00:00Z",
					summary:     "Corporate hold - settlement pending",
					description: "Imported from Booking.com - hold #55102",
					location:    "Recoleta, Buenos Aires",
					status:      "TENTATIVE",
				},
			},
		},
		{
			url:    "mock://tigre",
			prodID: "Tigre Riverside Villa",
			events: []sampleEvent{
				{
					uid:         "tigre-201",
					startISO:    "2025-03-28T16:00:00Z",
					endISO:      "2025-04-01T10:00:00Z",
					summary:     "Booking - Tigre Riverside Villa",
					description: "Imported from Vrbo - reservation #77310",
					location:    "Tigre, Buenos Aires",
					status:      "CONFIRMED",
				},
				{
					uid:      "tigre-maintenance",
					startISO: "2025-03-22T12:00:00Z",
					endISO:   "2025-03-22T16:00:00Z",
					summary:  "Dock inspection",
					status:   "CONFIRMED",
				},
			},
		},
	}
}
