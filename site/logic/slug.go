/* slug.go
 * Contains the URL slug helpers. Every event page lives at
 * {sport}/{yyyy-MM-dd}/{slugified-name}/ with the date taken in the site's fixed
 * reference timezone. Collisions within one run are resolved by suffixing the
 * event id, so two differently scheduled streams of the same fixture never
 * overwrite each other's page
 */

package logic

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"footybite/site/event"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lowercases the input, strips diacritics, collapses runs of
// non-alphanumeric characters into a single hyphen and trims leading and
// trailing hyphens
func Slugify(s string) string {
	if stripped, _, err := transform.String(deaccent, s); err == nil {
		s = stripped
	}
	s = strings.ToLower(s)

	var b strings.Builder
	lastHyphen := true // swallows leading separators
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// EventURL builds the slug path for an event: {sport}/{yyyy-MM-dd}/{slug}/
// The calendar date comes from the start instant in the reference timezone
func EventURL(sport event.Sport, name string, startTimeMs int64, loc *time.Location) string {
	dateStr := time.UnixMilli(startTimeMs).In(loc).Format("2006-01-02")
	return fmt.Sprintf("%s/%s/%s/", sport, dateStr, Slugify(name))
}

// ResolveCollisions walks the events in order and rewrites any URL that was
// already taken in this run, appending the event id to the slug segment.
// Preconditions: receives the full normalized event list for one run
// Postconditions: returns a new slice in the same order where every URL is unique
func ResolveCollisions(events []event.NormalizedEvent) []event.NormalizedEvent {
	seen := make(map[string]bool, len(events))
	out := make([]event.NormalizedEvent, 0, len(events))
	for _, e := range events {
		if seen[e.URL] {
			trimmed := strings.TrimSuffix(e.URL, "/")
			e.URL = fmt.Sprintf("%s-%s/", trimmed, Slugify(e.ID))
		}
		seen[e.URL] = true
		out = append(out, e)
	}
	return out
}
