/* engine.go
 * Contains the filter/sort engine. Given the full normalized event list and a set
 * of view parameters it produces the ordered, named sections to display. The
 * engine is a pure function of (events, params, now): nothing is persisted and
 * every invocation recomputes from scratch. An empty eligible set yields zero
 * sections, never an error
 */

package logic

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"footybite/site/event"
)

// upcomingSoonWindow bounds the dedicated "Upcoming (next 3 hours)" section
const upcomingSoonWindow = 3 * time.Hour

// Select produces the sections for one view.
// Preconditions: receives the full normalized event list, the view parameters,
// the current time and the reference timezone used for calendar day bucketing
// Postconditions: returns the ordered non-empty sections; an active search query
// suppresses all other groupings and returns search results only
func Select(events []event.NormalizedEvent, params event.ViewParams, now time.Time, loc *time.Location) []event.Section {
	if query := strings.TrimSpace(params.SearchQuery); query != "" {
		results := BuildSearchIndex(events).Search(query)
		if len(results) == 0 {
			return nil
		}
		return []event.Section{{Title: fmt.Sprintf("Search results for %q", query), Events: results}}
	}

	var sections []event.Section

	// The next-3-hours section is always computed from the entire unfiltered
	// list and shown first when non-empty
	soon := upcomingSoon(events, now)
	if len(soon) > 0 {
		sections = append(sections, event.Section{Title: "Upcoming (next 3 hours)", Events: soon})
	}

	if params.Homepage {
		sections = append(sections, homepageSections(events, params, now, loc)...)
	} else {
		sections = append(sections, sportPageSections(events, params, now, loc)...)
	}
	return sections
}

// upcomingSoon selects upcoming events starting in (now, now+3h], start time
// ascending then popularity descending
func upcomingSoon(events []event.NormalizedEvent, now time.Time) []event.NormalizedEvent {
	nowMs := now.UnixMilli()
	cutoffMs := now.Add(upcomingSoonWindow).UnixMilli()
	var out []event.NormalizedEvent
	for _, e := range events {
		if e.Status == event.StatusUpcoming && e.StartTime > nowMs && e.StartTime <= cutoffMs {
			out = append(out, e)
		}
	}
	sortByStartThenPopularity(out)
	return out
}

// sportPageSections builds the single category view: a live section then an
// upcoming section, both honoring the sport/date/league filters and sorted by
// popularity descending then start time ascending
func sportPageSections(events []event.NormalizedEvent, params event.ViewParams, now time.Time, loc *time.Location) []event.Section {
	label := "Matches"
	if sport, ok := sportFilter(params.SportFilter); ok {
		label = sport.DisplayName()
	}

	var live, upcoming []event.NormalizedEvent
	for _, e := range events {
		if !eligible(e, params, now, loc) {
			continue
		}
		switch e.Status {
		case event.StatusLive:
			live = append(live, e)
		case event.StatusUpcoming:
			upcoming = append(upcoming, e)
		}
	}
	sortByPopularityThenStart(live)
	sortByPopularityThenStart(upcoming)

	var sections []event.Section
	if len(live) > 0 {
		sections = append(sections, event.Section{Title: "Live " + label, Events: live})
	}
	if len(upcoming) > 0 {
		sections = append(sections, event.Section{Title: "Upcoming " + label, Events: upcoming})
	}
	return sections
}

// homepageSections builds the homepage view: a cross sport "Live Now" section
// followed by one section per sport in the fixed display order
func homepageSections(events []event.NormalizedEvent, params event.ViewParams, now time.Time, loc *time.Location) []event.Section {
	var sections []event.Section

	var live []event.NormalizedEvent
	for _, e := range events {
		if e.Status == event.StatusLive {
			live = append(live, e)
		}
	}
	sortByPopularityThenStart(live)
	if len(live) > 0 {
		sections = append(sections, event.Section{Title: "Live Now", Events: live})
	}

	for _, sport := range event.HomepageOrder {
		var bucket []event.NormalizedEvent
		for _, e := range events {
			if e.Sport != sport {
				continue
			}
			if !dateMatch(e, params.DateFilter, now, loc) || !leagueMatch(e, params.LeagueFilter) {
				continue
			}
			if e.Status == event.StatusFinished {
				continue
			}
			bucket = append(bucket, e)
		}
		sortByStartThenPopularity(bucket)
		if len(bucket) > 0 {
			sections = append(sections, event.Section{Title: sport.DisplayName(), Events: bucket})
		}
	}
	return sections
}

// eligible applies the general filter predicate set: finished events are always
// out, then sport, date bucket and league must all pass
func eligible(e event.NormalizedEvent, params event.ViewParams, now time.Time, loc *time.Location) bool {
	if e.Status == event.StatusFinished {
		return false
	}
	if sport, ok := sportFilter(params.SportFilter); ok && e.Sport != sport {
		return false
	}
	if !dateMatch(e, params.DateFilter, now, loc) {
		return false
	}
	return leagueMatch(e, params.LeagueFilter)
}

// sportFilter parses the sport filter value. Anything that is not one of the six
// sport slugs behaves as "all"
func sportFilter(value string) (event.Sport, bool) {
	switch event.Sport(strings.ToLower(value)) {
	case event.SportFootball, event.SportNFL, event.SportNBA, event.SportBoxing, event.SportF1, event.SportOther:
		return event.Sport(strings.ToLower(value)), true
	default:
		return "", false
	}
}

func leagueMatch(e event.NormalizedEvent, league string) bool {
	if league == "" || strings.EqualFold(league, "all") {
		return true
	}
	return e.League == league
}

// dateMatch compares the event's calendar day in the reference timezone against
// the requested bucket. "today" and "tomorrow" compare exact days, "week" is the
// inclusive range [today, today+7d]. Unrecognised values apply no filter
func dateMatch(e event.NormalizedEvent, bucket string, now time.Time, loc *time.Location) bool {
	switch bucket {
	case "today", "tomorrow", "week":
	default:
		return true
	}

	eventDay := startOfDay(time.UnixMilli(e.StartTime).In(loc))
	today := startOfDay(now.In(loc))

	switch bucket {
	case "today":
		return eventDay.Equal(today)
	case "tomorrow":
		return eventDay.Equal(today.AddDate(0, 0, 1))
	default: // week
		return !eventDay.Before(today) && !eventDay.After(today.AddDate(0, 0, 7))
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sortByStartThenPopularity(events []event.NormalizedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].StartTime != events[j].StartTime {
			return events[i].StartTime < events[j].StartTime
		}
		return events[i].PopularityScore > events[j].PopularityScore
	})
}

func sortByPopularityThenStart(events []event.NormalizedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].PopularityScore != events[j].PopularityScore {
			return events[i].PopularityScore > events[j].PopularityScore
		}
		return events[i].StartTime < events[j].StartTime
	})
}
