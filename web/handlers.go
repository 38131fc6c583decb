/* handlers.go
 * Contains the JSON API handlers behind the preview server: event snapshot
 * listing and the live search endpoint backed by the inverted search index.
 * Finished events never appear in responses
 * Authors: Zachary Bower
 */

package web

import (
	"encoding/json"
	"net/http"
	"sort"

	"footybite/site/event"
	"footybite/site/logic"
)

// maxSuggestions caps the did-you-mean list on empty search results
const maxSuggestions = 5

// apiEvent is the JSON shape of one event in API responses
type apiEvent struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Sport           string   `json:"sport"`
	League          string   `json:"league"`
	Teams           []string `json:"teams"`
	StartTime       int64    `json:"startTime"`
	EndTime         int64    `json:"endTime"`
	Status          string   `json:"status"`
	URL             string   `json:"url"`
	PopularityScore int      `json:"popularityScore"`
}

type searchResponse struct {
	Query       string     `json:"query"`
	Results     []apiEvent `json:"results"`
	Suggestions []string   `json:"suggestions,omitempty"`
}

// events returns the cached event snapshot, refetching the feed when stale
func (s *Server) events(r *http.Request) ([]event.NormalizedEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot != nil && s.now().Sub(s.fetched) < snapshotTTL {
		return s.snapshot, nil
	}

	events, _, err := s.gen.Events(r.Context())
	if err != nil {
		return nil, err
	}
	s.snapshot = events
	s.fetched = s.now()
	return events, nil
}

// SearchHandler handles GET /api/search?q=. Matches come back live first; when
// nothing matches, fuzzy suggestions are attached instead
func (s *Server) SearchHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	events, err := s.events(r)
	if err != nil {
		s.log.WithError(err).Error("failed to fetch events for search")
		http.Error(w, "feed unavailable", http.StatusBadGateway)
		return
	}

	idx := logic.BuildSearchIndex(events)

	// an empty query shows the full non finished snapshot, live first
	var results []event.NormalizedEvent
	if query == "" {
		for _, e := range events {
			if e.Status != event.StatusFinished {
				results = append(results, e)
			}
		}
		sort.SliceStable(results, func(i, j int) bool {
			if results[i].Status != results[j].Status {
				return results[i].Status == event.StatusLive
			}
			return results[i].PopularityScore > results[j].PopularityScore
		})
	} else {
		results = idx.Search(query)
	}

	resp := searchResponse{Query: query, Results: toAPIEvents(results)}
	if query != "" && len(results) == 0 {
		resp.Suggestions = idx.Suggest(query, maxSuggestions)
	}
	writeJSON(w, resp)
}

// EventsHandler handles GET /api/events, returning every non finished event
func (s *Server) EventsHandler(w http.ResponseWriter, r *http.Request) {
	events, err := s.events(r)
	if err != nil {
		s.log.WithError(err).Error("failed to fetch events")
		http.Error(w, "feed unavailable", http.StatusBadGateway)
		return
	}

	var visible []event.NormalizedEvent
	for _, e := range events {
		if e.Status != event.StatusFinished {
			visible = append(visible, e)
		}
	}
	writeJSON(w, toAPIEvents(visible))
}

func toAPIEvents(events []event.NormalizedEvent) []apiEvent {
	out := make([]apiEvent, 0, len(events))
	for _, e := range events {
		out = append(out, apiEvent{
			ID:              e.ID,
			Name:            e.Name,
			Sport:           string(e.Sport),
			League:          e.League,
			Teams:           e.Teams,
			StartTime:       e.StartTime,
			EndTime:         e.EndTime,
			Status:          string(e.Status),
			URL:             e.URL,
			PopularityScore: e.PopularityScore,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encoding failed", http.StatusInternalServerError)
	}
}
