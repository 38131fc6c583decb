/* models.go
 * Contains the structs and enums shared between the site sub packages: the normalized
 * event record produced by the classifier, the section groupings produced by the filter
 * engine and the view parameters that drive filtering
 */

package event

// Sport is the fixed classification bucket an event is sorted into.
// Classification is derived from feed text, never feed supplied.
type Sport string

const (
	SportFootball Sport = "football"
	SportNFL      Sport = "nfl"
	SportNBA      Sport = "nba"
	SportBoxing   Sport = "boxing"
	SportF1       Sport = "f1"
	SportOther    Sport = "other"
)

// DisplayName returns the label used on rendered pages and Blogger post labels
func (s Sport) DisplayName() string {
	switch s {
	case SportFootball:
		return "Football"
	case SportNFL:
		return "NFL"
	case SportNBA:
		return "NBA"
	case SportBoxing:
		return "Boxing"
	case SportF1:
		return "F1"
	default:
		return "Sports"
	}
}

// HomepageOrder is the fixed display order of per sport sections on the homepage
var HomepageOrder = []Sport{SportFootball, SportF1, SportNBA, SportNFL, SportBoxing}

// Status is the lifecycle state of an event relative to "now". It is always
// recomputed from the start/end instants, never persisted
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusLive     Status = "live"
	StatusFinished Status = "finished"
)

// NormalizedEvent is the canonical in-memory representation of one match after
// classification and scoring. Instances are immutable; a refreshed view of an
// event is produced by re-running the normalizer on the same raw record
type NormalizedEvent struct {
	ID              string
	Name            string
	Sport           Sport
	League          string
	Teams           []string
	StartTime       int64 // ms since epoch
	EndTime         int64 // ms since epoch
	Status          Status
	Thumbnail       string
	EmbedURL        string
	URL             string // {sport}/{yyyy-MM-dd}/{slug}/
	PopularityScore int
}

// Section is a named ordered group of events produced by the filter engine
type Section struct {
	Title  string
	Events []NormalizedEvent
}

// ViewParams drive one invocation of the filter engine. Zero values mean
// "no filter": unrecognised sport or date values are also treated as no filter
// so a bad query string can never fail a render
type ViewParams struct {
	SportFilter  string // sport slug or "all"
	DateFilter   string // "today", "tomorrow", "week" or ""
	LeagueFilter string // league display label or "all"
	SearchQuery  string
	Homepage     bool
}
