/* models.go
 * This file contains the models used by the feed package when decoding the remote
 * events.json document. The document groups raw stream records by category:
 * { events: { streams: [ { category, streams: [ {id, name, tag?, starts_at, ends_at, poster?, iframe?} ] } ] } }
 */

package feed

import "encoding/json"

// StreamRecord is one scheduled stream as supplied by the feed. The name is free
// text, conventionally "Team A vs Team B"; tag is an optional league label
type StreamRecord struct {
	ID       json.Number `json:"id"`
	Name     string      `json:"name"`
	Tag      string      `json:"tag,omitempty"`
	StartsAt int64       `json:"starts_at"` // epoch seconds
	EndsAt   int64       `json:"ends_at"`   // epoch seconds
	Poster   string      `json:"poster,omitempty"`
	Iframe   string      `json:"iframe,omitempty"`
}

// CategoryBlock groups the records under one feed supplied category label
// (e.g. "Soccer", "Basketball")
type CategoryBlock struct {
	Category string         `json:"category"`
	Streams  []StreamRecord `json:"streams"`
}

// document mirrors the top level shape of events.json. The events wrapper is a
// pointer so a missing block can be told apart from an empty one
type document struct {
	Events *struct {
		Streams []CategoryBlock `json:"streams"`
	} `json:"events"`
}
