package calendar

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

const untitledSummary = "Untitled stay"

// NormalizeEvents parses a raw ICS body into the ordered list of events
// for every parseable VEVENT block. Non-event components are ignored.
// Events whose start or end is missing or unparsable are dropped rather
// than failing the document: partial feeds are expected from real-world
// booking platforms. Timestamps are normalized to UTC.
func NormalizeEvents(source Source, body string) ([]Event, error) {
	cal, err := ics.ParseCalendar(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse ics body: %w", err)
	}

	events := make([]Event, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		event, ok := normalizeVEvent(source, ve)
		if !ok {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func normalizeVEvent(source Source, ve *ics.VEvent) (Event, bool) {
	start, startOK := eventTime(ve.GetStartAt, ve.GetAllDayStartAt)
	end, endOK := eventTime(ve.GetEndAt, ve.GetAllDayEndAt)
	if !startOK || !endOK {
		return Event{}, false
	}

	out := Event{
		Summary:  untitledSummary,
		StartISO: start.UTC().Format(time.RFC3339),
		EndISO:   end.UTC().Format(time.RFC3339),
		AllDay:   isAllDay(ve),
		Source:   source,
	}

	if p := ve.GetProperty(ics.ComponentPropertyUniqueId); p != nil && p.Value != "" {
		out.UID = p.Value
	} else {
		// Feeds occasionally omit UID; synthesize a stable one so the
		// event remains addressable across re-ingestions.
		out.UID = source.ID + ":" + out.StartISO
	}
	if p := ve.GetProperty(ics.ComponentPropertySummary); p != nil && p.Value != "" {
		out.Summary = p.Value
	}
	if p := ve.GetProperty(ics.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}
	if p := ve.GetProperty(ics.ComponentPropertyLocation); p != nil {
		out.Location = p.Value
	}
	if p := ve.GetProperty(ics.ComponentPropertyStatus); p != nil {
		out.Status = p.Value
	}

	return out, true
}

// eventTime resolves a timestamp through the timed accessor first and the
// all-day accessor second, so both DATE-TIME and DATE values parse.
func eventTime(timed, allDay func() (time.Time, error)) (time.Time, bool) {
	if t, err := timed(); err == nil && !t.IsZero() {
		return t, true
	}
	if t, err := allDay(); err == nil && !t.IsZero() {
		return t, true
	}
	return time.Time{}, false
}

// isAllDay reports whether DTSTART carries a date-only marker, either an
// explicit VALUE=DATE parameter or a value with no time-of-day part.
func isAllDay(ve *ics.VEvent) bool {
	p := ve.GetProperty(ics.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}
