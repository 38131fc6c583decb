/* search.go
 * Contains the free text search over normalized events. An inverted index maps
 * each lowercase field value drawn from team names, league and sport to the set
 * of event ids carrying it; a query matches any index key containing it as a
 * substring and the result is the union over all matching keys. When substring
 * search comes up empty the index can offer fuzzy "did you mean" suggestions
 */

package logic

import (
	"sort"
	"strings"

	"footybite/site/event"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SearchIndex is the inverted index over one event snapshot
type SearchIndex struct {
	keys    map[string]map[string]bool // lowercase field value -> event id set
	display map[string]string          // lowercase field value -> original form
	byID    map[string]event.NormalizedEvent
	order   map[string]int // id -> position in the source list, keeps results stable
}

// BuildSearchIndex indexes team names, league and sport of every event.
// Preconditions: receives the normalized event list for one run
// Postconditions: returns a ready to query index
func BuildSearchIndex(events []event.NormalizedEvent) *SearchIndex {
	idx := &SearchIndex{
		keys:    make(map[string]map[string]bool),
		display: make(map[string]string),
		byID:    make(map[string]event.NormalizedEvent, len(events)),
		order:   make(map[string]int, len(events)),
	}
	for i, e := range events {
		idx.byID[e.ID] = e
		idx.order[e.ID] = i
		for _, team := range e.Teams {
			idx.add(team, e.ID)
		}
		idx.add(e.League, e.ID)
		idx.add(string(e.Sport), e.ID)
	}
	return idx
}

func (idx *SearchIndex) add(value string, id string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	key := strings.ToLower(value)
	if idx.keys[key] == nil {
		idx.keys[key] = make(map[string]bool)
		idx.display[key] = value
	}
	idx.keys[key][id] = true
}

// Search returns the union of all events whose index keys contain the query as
// a substring. Finished events never appear. Results are ordered live first,
// then upcoming, then by popularity descending
func (idx *SearchIndex) Search(query string) []event.NormalizedEvent {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return nil
	}

	matched := make(map[string]bool)
	for key, ids := range idx.keys {
		if !strings.Contains(key, queryLower) {
			continue
		}
		for id := range ids {
			matched[id] = true
		}
	}

	var results []event.NormalizedEvent
	for id := range matched {
		e := idx.byID[id]
		if e.Status == event.StatusFinished {
			continue
		}
		results = append(results, e)
	}
	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := statusRank(results[i].Status), statusRank(results[j].Status)
		if ri != rj {
			return ri < rj
		}
		if results[i].PopularityScore != results[j].PopularityScore {
			return results[i].PopularityScore > results[j].PopularityScore
		}
		return idx.order[results[i].ID] < idx.order[results[j].ID]
	})
	return results
}

// Suggest offers up to max close index keys for a query that found nothing,
// ranked by fuzzy match distance
func (idx *SearchIndex) Suggest(query string, max int) []string {
	query = strings.TrimSpace(query)
	if query == "" || max <= 0 {
		return nil
	}

	targets := make([]string, 0, len(idx.keys))
	for key := range idx.keys {
		targets = append(targets, key)
	}
	sort.Strings(targets) // deterministic ranking across runs

	ranks := fuzzy.RankFindFold(query, targets)
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].Distance < ranks[j].Distance })

	var out []string
	for _, r := range ranks {
		out = append(out, idx.display[r.Target])
		if len(out) == max {
			break
		}
	}
	return out
}

func statusRank(s event.Status) int {
	switch s {
	case event.StatusLive:
		return 0
	case event.StatusUpcoming:
		return 1
	default:
		return 2
	}
}
