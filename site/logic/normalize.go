/* normalize.go
 * Contains the event normalizer: raw feed record in, normalized event out.
 * The function is total and deterministic for a fixed "now"; malformed team name
 * text degrades to a single element team list and a missing league tag falls back
 * to the feed category label. A normalized event is never mutated in place, a
 * refreshed view is produced by calling Normalize again with a new "now"
 */

package logic

import (
	"strings"
	"time"

	"footybite/site/event"
	"footybite/site/feed"

	"github.com/go-andiamo/splitter"
)

// spaceSplitter tokenizes match names on spaces while keeping double quoted
// spans intact, so a quoted team name containing "vs" is not split apart
var spaceSplitter, _ = splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)

// Normalize converts one raw stream record into a normalized event.
// Preconditions: receives the raw record, the category label of its feed block,
// the current time and the site's reference timezone
// Postconditions: returns the normalized event; never fails
func Normalize(raw feed.StreamRecord, categoryLabel string, now time.Time, loc *time.Location) event.NormalizedEvent {
	startMs := raw.StartsAt * 1000
	endMs := raw.EndsAt * 1000

	sport := DetectSport(categoryLabel, raw.Tag, raw.Name)
	league := raw.Tag
	if league == "" {
		league = categoryLabel
	}
	status := DeriveStatus(startMs, endMs, now)

	return event.NormalizedEvent{
		ID:              raw.ID.String(),
		Name:            strings.TrimSpace(raw.Name),
		Sport:           sport,
		League:          league,
		Teams:           SplitTeams(raw.Name),
		StartTime:       startMs,
		EndTime:         endMs,
		Status:          status,
		Thumbnail:       raw.Poster,
		EmbedURL:        raw.Iframe,
		URL:             EventURL(sport, raw.Name, startMs, loc),
		PopularityScore: PopularityScore(league, raw.Name, status, startMs, now),
	}
}

// NormalizeAll flattens the feed's category blocks into one normalized event
// list and resolves any slug collisions within the run
func NormalizeAll(categories []feed.CategoryBlock, now time.Time, loc *time.Location) []event.NormalizedEvent {
	var events []event.NormalizedEvent
	for _, cat := range categories {
		for _, raw := range cat.Streams {
			events = append(events, Normalize(raw, cat.Category, now, loc))
		}
	}
	return ResolveCollisions(events)
}

// DeriveStatus computes the lifecycle status from the half open interval
// [startTime, endTime) against now. Exactly one status holds for any input
func DeriveStatus(startMs int64, endMs int64, now time.Time) event.Status {
	nowMs := now.UnixMilli()
	switch {
	case nowMs < startMs:
		return event.StatusUpcoming
	case nowMs < endMs:
		return event.StatusLive
	default:
		return event.StatusFinished
	}
}

// SplitTeams splits a match name into its team names on a "vs" / "vs." separator
// (case insensitive). If no separator is present the whole name comes back as a
// single element list.
// Preconditions: receives the free text match name
// Postconditions: returns a non-empty slice of trimmed team names
func SplitTeams(name string) []string {
	tokens, err := spaceSplitter.Split(name)
	if err != nil {
		return []string{strings.TrimSpace(name)}
	}

	var teams []string
	var current []string
	flush := func() {
		if joined := strings.TrimSpace(strings.Join(current, " ")); joined != "" {
			teams = append(teams, joined)
		}
		current = nil
	}
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		lower := strings.ToLower(tok)
		if lower == "vs" || lower == "vs." {
			flush()
			continue
		}
		current = append(current, tok)
	}
	flush()

	if len(teams) == 0 {
		return []string{strings.TrimSpace(name)}
	}
	return teams
}
