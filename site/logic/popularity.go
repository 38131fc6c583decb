/* popularity.go
 * Contains the additive popularity heuristic used to order events within a
 * section. The score is a ranking signal only: higher means more prominent,
 * there is no fixed range and ties are always broken by start time ascending
 * in the consumers
 */

package logic

import (
	"time"

	"footybite/site/event"
)

const (
	bigLeagueBonus = 50
	bigTeamBonus   = 30
	liveBonus      = 100
	soonBonus      = 20

	soonWindow = 2 * time.Hour
)

// PopularityScore computes the heuristic for one event.
// Preconditions: receives the league label, match name, derived status, start
// instant in ms and the current time
// Postconditions: returns the integer score; a live event always scores exactly
// 100 more than the same event while upcoming
func PopularityScore(league string, name string, status event.Status, startTimeMs int64, now time.Time) int {
	score := 0
	if IsBigLeague(league) {
		score += bigLeagueBonus
	}
	if ContainsBigTeam(name) {
		score += bigTeamBonus
	}
	if status == event.StatusLive {
		score += liveBonus
	}
	kickoff := time.UnixMilli(startTimeMs)
	if kickoff.After(now) && kickoff.Sub(now) <= soonWindow {
		score += soonBonus
	}
	return score
}
