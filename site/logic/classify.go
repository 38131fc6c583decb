/* classify.go
 * Contains the rule based sport classifier. The upstream feed mixes free text sport
 * names and league names in its category taxonomy, so classification triangulates
 * across three weakly reliable signals (category, league tag, match name) with a
 * fixed rule order that resolves ambiguous overlaps, e.g. "American Football" must
 * not match the football/soccer rule
 */

package logic

import (
	"strings"

	"footybite/site/event"
)

// bigLeagueKeywords are the top flight league tokens that mark a record as
// football/soccer when they appear in the category or league tag
var bigLeagueKeywords = []string{
	"premier", "la liga", "serie a", "bundesliga", "uefa", "champions",
	"europa", "world cup", "euro", "afcon", "ligue 1", "eredivisie", "mls",
}

// BigLeagues is the fixed roster of marquee competitions used by the
// popularity score (display labels, matched case insensitively)
var BigLeagues = []string{
	"Premier League", "Champions League", "La Liga", "World Cup", "Euros",
	"UEFA", "Serie A", "Bundesliga", "NFL", "NBA", "AFCON", "Ligue 1",
	"Eredivisie", "MLS",
}

// BigTeams is the fixed roster of big club and big country tokens. A match name
// containing one of these leans football unless the category says otherwise, and
// earns a popularity bonus
var BigTeams = []string{
	"Real Madrid", "Barcelona", "Man City", "Man United", "Arsenal", "Bayern",
	"PSG", "Liverpool", "Chelsea", "Juventus", "Inter Milan", "AC Milan",
	"Lakers", "Warriors", "Cowboys", "Chiefs",
	"Tottenham", "Atletico Madrid", "Dortmund", "Napoli", "Roma", "Ajax",
	"Benfica", "Porto", "Celtic", "Rangers", "Al Nassr", "Al Ittihad",
	"Inter Miami", "Senegal", "Algeria", "Egypt", "Nigeria",
}

// DetectSport classifies one raw record into a fixed sport bucket. First matching
// rule wins; the function is total and defaults to "other".
// Preconditions: receives the feed category label, the league tag (may be empty)
// and the free text match name
// Postconditions: returns exactly one of the six sport values, never an empty value
func DetectSport(categoryLabel string, tag string, name string) event.Sport {
	leagueLower := strings.ToLower(tag)
	if leagueLower == "" {
		leagueLower = strings.ToLower(categoryLabel)
	}
	sportLower := strings.ToLower(categoryLabel)
	nameLower := strings.ToLower(name)

	if isFootball(leagueLower, sportLower, nameLower) {
		return event.SportFootball
	}
	if strings.Contains(sportLower, "american football") || strings.Contains(sportLower, "nfl") {
		return event.SportNFL
	}
	if strings.Contains(sportLower, "basketball") || strings.Contains(sportLower, "nba") {
		return event.SportNBA
	}
	if strings.Contains(sportLower, "fighting") || strings.Contains(sportLower, "boxing") || strings.Contains(sportLower, "ufc") {
		return event.SportBoxing
	}
	if strings.Contains(sportLower, "formula 1") || strings.Contains(sportLower, "f1") || strings.Contains(sportLower, "motorsport") {
		return event.SportF1
	}
	return event.SportOther
}

// isFootball holds the football/soccer rule, the first and widest rule in the chain
func isFootball(leagueLower string, sportLower string, nameLower string) bool {
	for _, kw := range bigLeagueKeywords {
		if strings.Contains(leagueLower, kw) {
			return true
		}
	}
	if strings.Contains(sportLower, "soccer") {
		return true
	}
	if strings.Contains(sportLower, "football") && !strings.Contains(sportLower, "american") {
		return true
	}
	// A big club or big country in the match name leans football, unless the
	// category already names a different sport
	if !strings.Contains(sportLower, "basketball") && !strings.Contains(sportLower, "american") {
		for _, team := range BigTeams {
			if strings.Contains(nameLower, strings.ToLower(team)) {
				return true
			}
		}
	}
	return false
}

// ContainsBigTeam reports whether the match name mentions one of the fixed big
// team tokens (case insensitive). Used by the popularity score
func ContainsBigTeam(name string) bool {
	nameLower := strings.ToLower(name)
	for _, team := range BigTeams {
		if strings.Contains(nameLower, strings.ToLower(team)) {
			return true
		}
	}
	return false
}

// IsBigLeague reports whether the league label matches the fixed big league
// roster (case insensitive)
func IsBigLeague(league string) bool {
	leagueLower := strings.ToLower(league)
	for _, l := range BigLeagues {
		if strings.Contains(leagueLower, strings.ToLower(l)) {
			return true
		}
	}
	return false
}
