/* search_test.go
 * Contains unit tests for the inverted search index: substring union semantics,
 * result ordering and fuzzy suggestions for empty results
 */

package logic

import (
	"testing"
	"time"

	"footybite/site/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchFixture() []event.NormalizedEvent {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return []event.NormalizedEvent{
		{
			ID: "1", Sport: event.SportFootball, League: "Premier League",
			Teams: []string{"Arsenal", "Chelsea"}, Status: event.StatusUpcoming,
			StartTime: now.Add(2 * time.Hour).UnixMilli(), PopularityScore: 80,
		},
		{
			ID: "2", Sport: event.SportFootball, League: "Premier League",
			Teams: []string{"Liverpool", "Everton"}, Status: event.StatusLive,
			StartTime: now.Add(-time.Hour).UnixMilli(), PopularityScore: 180,
		},
		{
			ID: "3", Sport: event.SportNBA, League: "NBA",
			Teams: []string{"Lakers", "Celtics"}, Status: event.StatusFinished,
			StartTime: now.Add(-5 * time.Hour).UnixMilli(), PopularityScore: 60,
		},
	}
}

// TestSearch_SubstringUnion tests that "ars" matches only the Arsenal fixture
func TestSearch_SubstringUnion(t *testing.T) {
	idx := BuildSearchIndex(searchFixture())

	results := idx.Search("ars")

	require.Len(t, results, 1)
	assert.Equal(t, "1", results[0].ID)
}

// TestSearch_LeagueKeyMatchesAllItsEvents tests the union over a shared league key
func TestSearch_LeagueKeyMatchesAllItsEvents(t *testing.T) {
	idx := BuildSearchIndex(searchFixture())

	results := idx.Search("premier")

	require.Len(t, results, 2)
	// Live sorts before upcoming
	assert.Equal(t, "2", results[0].ID)
	assert.Equal(t, "1", results[1].ID)
}

// TestSearch_FinishedExcluded tests that finished events never come back
func TestSearch_FinishedExcluded(t *testing.T) {
	idx := BuildSearchIndex(searchFixture())

	assert.Empty(t, idx.Search("lakers"))
}

// TestSearch_EmptyQuery tests the blank query guard
func TestSearch_EmptyQuery(t *testing.T) {
	idx := BuildSearchIndex(searchFixture())

	assert.Empty(t, idx.Search("   "))
}

// TestSuggest_OffersCloseKeys tests the fuzzy fallback for a misspelled team
func TestSuggest_OffersCloseKeys(t *testing.T) {
	idx := BuildSearchIndex(searchFixture())

	require.Empty(t, idx.Search("arsnal"))

	suggestions := idx.Suggest("arsnal", 3)

	require.NotEmpty(t, suggestions)
	assert.Contains(t, suggestions, "Arsenal")
}
