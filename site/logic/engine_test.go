/* engine_test.go
 * Contains unit tests for the filter/sort engine: sectioning, filter predicates,
 * date bucket boundaries and the exclusion of finished events
 */

package logic

import (
	"testing"
	"time"

	"footybite/site/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var engineNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func testEvent(id string, sport event.Sport, league string, status event.Status, start time.Time, score int) event.NormalizedEvent {
	end := start.Add(2 * time.Hour)
	return event.NormalizedEvent{
		ID:              id,
		Name:            id,
		Sport:           sport,
		League:          league,
		Teams:           []string{id},
		StartTime:       start.UnixMilli(),
		EndTime:         end.UnixMilli(),
		Status:          status,
		PopularityScore: score,
	}
}

// TestSelect_Idempotent tests that two calls with the same arguments return
// structurally equal output
func TestSelect_Idempotent(t *testing.T) {
	events := []event.NormalizedEvent{
		testEvent("a", event.SportFootball, "Premier League", event.StatusLive, engineNow.Add(-time.Hour), 150),
		testEvent("b", event.SportNBA, "NBA", event.StatusUpcoming, engineNow.Add(time.Hour), 70),
	}
	params := event.ViewParams{Homepage: true}

	first := Select(events, params, engineNow, time.UTC)
	second := Select(events, params, engineNow, time.UTC)

	assert.Equal(t, first, second)
}

// TestSelect_FinishedNeverRendered tests that a finished event appears in no
// section regardless of filters
func TestSelect_FinishedNeverRendered(t *testing.T) {
	finished := testEvent("done", event.SportFootball, "Premier League", event.StatusFinished, engineNow.Add(-3*time.Hour), 200)
	events := []event.NormalizedEvent{finished}

	for _, params := range []event.ViewParams{
		{Homepage: true},
		{SportFilter: "football"},
		{SportFilter: "all", DateFilter: "today"},
		{SearchQuery: "done"},
	} {
		sections := Select(events, params, engineNow, time.UTC)
		for _, s := range sections {
			for _, e := range s.Events {
				assert.NotEqual(t, "done", e.ID, "finished event leaked into section %q", s.Title)
			}
		}
	}
}

// TestSelect_UpcomingSoonIgnoresFilters tests that the next-3-hours section is
// computed from the entire unfiltered list and shown first
func TestSelect_UpcomingSoonIgnoresFilters(t *testing.T) {
	soonNBA := testEvent("nba-soon", event.SportNBA, "NBA", event.StatusUpcoming, engineNow.Add(90*time.Minute), 70)
	laterFootball := testEvent("foot-later", event.SportFootball, "Premier League", event.StatusUpcoming, engineNow.Add(5*time.Hour), 80)
	events := []event.NormalizedEvent{soonNBA, laterFootball}

	// A football-only view still surfaces the NBA match in the soon section
	sections := Select(events, event.ViewParams{SportFilter: "football"}, engineNow, time.UTC)

	require.NotEmpty(t, sections)
	assert.Equal(t, "Upcoming (next 3 hours)", sections[0].Title)
	require.Len(t, sections[0].Events, 1)
	assert.Equal(t, "nba-soon", sections[0].Events[0].ID)
}

// TestSelect_UpcomingSoonWindowBoundary tests the (now, now+3h] bounds
func TestSelect_UpcomingSoonWindowBoundary(t *testing.T) {
	atCutoff := testEvent("edge", event.SportFootball, "Premier League", event.StatusUpcoming, engineNow.Add(3*time.Hour), 10)
	pastCutoff := testEvent("late", event.SportFootball, "Premier League", event.StatusUpcoming, engineNow.Add(3*time.Hour+time.Second), 10)

	sections := Select([]event.NormalizedEvent{atCutoff, pastCutoff}, event.ViewParams{}, engineNow, time.UTC)

	require.NotEmpty(t, sections)
	require.Equal(t, "Upcoming (next 3 hours)", sections[0].Title)
	require.Len(t, sections[0].Events, 1)
	assert.Equal(t, "edge", sections[0].Events[0].ID)
}

// TestSelect_SportPageSections tests the live-then-upcoming layout on a single
// sport view, popularity descending inside each section
func TestSelect_SportPageSections(t *testing.T) {
	events := []event.NormalizedEvent{
		testEvent("up-low", event.SportFootball, "Ligue 1", event.StatusUpcoming, engineNow.Add(6*time.Hour), 20),
		testEvent("up-high", event.SportFootball, "Premier League", event.StatusUpcoming, engineNow.Add(7*time.Hour), 90),
		testEvent("live-1", event.SportFootball, "La Liga", event.StatusLive, engineNow.Add(-time.Hour), 160),
		testEvent("other-sport", event.SportNBA, "NBA", event.StatusUpcoming, engineNow.Add(6*time.Hour), 300),
	}

	sections := Select(events, event.ViewParams{SportFilter: "football"}, engineNow, time.UTC)

	require.Len(t, sections, 2)
	assert.Equal(t, "Live Football", sections[0].Title)
	require.Len(t, sections[0].Events, 1)
	assert.Equal(t, "live-1", sections[0].Events[0].ID)

	assert.Equal(t, "Upcoming Football", sections[1].Title)
	require.Len(t, sections[1].Events, 2)
	assert.Equal(t, "up-high", sections[1].Events[0].ID)
	assert.Equal(t, "up-low", sections[1].Events[1].ID)
}

// TestSelect_HomepageLayout tests the Live Now section plus fixed sport ordering
func TestSelect_HomepageLayout(t *testing.T) {
	events := []event.NormalizedEvent{
		testEvent("nba-up", event.SportNBA, "NBA", event.StatusUpcoming, engineNow.Add(8*time.Hour), 70),
		testEvent("foot-live", event.SportFootball, "Premier League", event.StatusLive, engineNow.Add(-time.Hour), 180),
		testEvent("foot-up", event.SportFootball, "Serie A", event.StatusUpcoming, engineNow.Add(9*time.Hour), 50),
	}

	sections := Select(events, event.ViewParams{Homepage: true}, engineNow, time.UTC)

	var titles []string
	for _, s := range sections {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"Live Now", "Football", "NBA"}, titles)

	// Live events also appear in their sport's section (non-finished), start ascending
	require.Len(t, sections[1].Events, 2)
	assert.Equal(t, "foot-live", sections[1].Events[0].ID)
	assert.Equal(t, "foot-up", sections[1].Events[1].ID)
}

// TestSelect_LiveEventNotInUpcomingSection tests the second end to end scenario:
// a live match shows under Live Now and never under a sport page Upcoming section
func TestSelect_LiveEventNotInUpcomingSection(t *testing.T) {
	live := testEvent("rm-barca", event.SportFootball, "La Liga", event.StatusLive, engineNow.Add(-time.Minute), 180)
	events := []event.NormalizedEvent{live}

	home := Select(events, event.ViewParams{Homepage: true}, engineNow, time.UTC)
	require.NotEmpty(t, home)
	assert.Equal(t, "Live Now", home[0].Title)

	sportPage := Select(events, event.ViewParams{SportFilter: "football"}, engineNow, time.UTC)
	for _, s := range sportPage {
		if s.Title == "Upcoming Football" {
			t.Fatalf("live event produced an upcoming section")
		}
	}
}

// TestSelect_DateBucketMidnightBoundary tests that an event at exactly local
// midnight today is in the today bucket and one a second earlier is not
func TestSelect_DateBucketMidnightBoundary(t *testing.T) {
	midnight := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	atMidnight := testEvent("today", event.SportFootball, "Premier League", event.StatusUpcoming, midnight, 10)
	beforeMidnight := testEvent("yesterday", event.SportFootball, "Premier League", event.StatusUpcoming, midnight.Add(-time.Second), 10)

	assert.True(t, dateMatch(atMidnight, "today", engineNow, time.UTC))
	assert.False(t, dateMatch(beforeMidnight, "today", engineNow, time.UTC))
}

// TestSelect_WeekBucketInclusive tests the inclusive [today, today+7d] range
func TestSelect_WeekBucketInclusive(t *testing.T) {
	daySeven := testEvent("in", event.SportFootball, "Premier League", event.StatusUpcoming,
		time.Date(2026, 3, 21, 23, 0, 0, 0, time.UTC), 10)
	dayEight := testEvent("out", event.SportFootball, "Premier League", event.StatusUpcoming,
		time.Date(2026, 3, 22, 1, 0, 0, 0, time.UTC), 10)

	assert.True(t, dateMatch(daySeven, "week", engineNow, time.UTC))
	assert.False(t, dateMatch(dayEight, "week", engineNow, time.UTC))
}

// TestSelect_UnrecognisedFiltersActAsAll tests the non-fatal handling of junk
// filter values
func TestSelect_UnrecognisedFiltersActAsAll(t *testing.T) {
	e := testEvent("a", event.SportFootball, "Premier League", event.StatusUpcoming, engineNow.Add(6*time.Hour), 10)
	events := []event.NormalizedEvent{e}

	junk := Select(events, event.ViewParams{SportFilter: "handegg", DateFilter: "yesterweek"}, engineNow, time.UTC)
	clean := Select(events, event.ViewParams{SportFilter: "all"}, engineNow, time.UTC)

	assert.Equal(t, clean, junk)
}

// TestSelect_LeagueFilter tests the exact league match predicate
func TestSelect_LeagueFilter(t *testing.T) {
	events := []event.NormalizedEvent{
		testEvent("pl", event.SportFootball, "Premier League", event.StatusUpcoming, engineNow.Add(6*time.Hour), 10),
		testEvent("sa", event.SportFootball, "Serie A", event.StatusUpcoming, engineNow.Add(6*time.Hour), 10),
	}

	sections := Select(events, event.ViewParams{SportFilter: "football", LeagueFilter: "Serie A"}, engineNow, time.UTC)

	require.Len(t, sections, 1)
	assert.Equal(t, "Upcoming Football", sections[0].Title)
	require.Len(t, sections[0].Events, 1)
	assert.Equal(t, "sa", sections[0].Events[0].ID)
}

// TestSelect_EmptyEligibleSetYieldsNoSections tests the empty state contract
func TestSelect_EmptyEligibleSetYieldsNoSections(t *testing.T) {
	sections := Select(nil, event.ViewParams{Homepage: true}, engineNow, time.UTC)

	assert.Empty(t, sections)
}
