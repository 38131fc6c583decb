/* classify_test.go
 * Contains unit tests for the sport classifier: rule precedence, totality and
 * the big team / big league rosters
 */

package logic

import (
	"testing"

	"footybite/site/event"

	"github.com/stretchr/testify/assert"
)

// TestDetectSport_AmericanFootballPrecedence tests that "American Football" does
// not match the football/soccer rule even though "football" is a substring
func TestDetectSport_AmericanFootballPrecedence(t *testing.T) {
	sport := DetectSport("American Football", "NFL", "Cowboys vs Chiefs")

	assert.Equal(t, event.SportNFL, sport)
}

// TestDetectSport_LeagueKeyword tests classification off a top flight league tag
func TestDetectSport_LeagueKeyword(t *testing.T) {
	assert.Equal(t, event.SportFootball, DetectSport("Sports", "Premier League", "Brentford vs Fulham"))
	assert.Equal(t, event.SportFootball, DetectSport("Sports", "UEFA Champions League", "Slavia Prague vs Genk"))
	assert.Equal(t, event.SportFootball, DetectSport("Sports", "Ligue 1", "Lens vs Brest"))
}

// TestDetectSport_SoccerCategory tests the plain "soccer" category signal
func TestDetectSport_SoccerCategory(t *testing.T) {
	assert.Equal(t, event.SportFootball, DetectSport("Soccer", "", "Getafe vs Osasuna"))
}

// TestDetectSport_BigTeamName tests that a big club in the match name leans
// football when the category is generic
func TestDetectSport_BigTeamName(t *testing.T) {
	assert.Equal(t, event.SportFootball, DetectSport("Sports", "", "Real Madrid vs Getafe"))
}

// TestDetectSport_BigTeamNameDoesNotOverrideBasketball tests that the big team
// rule yields to an explicit basketball category (Lakers is on the roster)
func TestDetectSport_BigTeamNameDoesNotOverrideBasketball(t *testing.T) {
	assert.Equal(t, event.SportNBA, DetectSport("Basketball", "", "Lakers vs Celtics"))
}

// TestDetectSport_CombatAndMotorsport tests the remaining buckets
func TestDetectSport_CombatAndMotorsport(t *testing.T) {
	assert.Equal(t, event.SportBoxing, DetectSport("Fighting", "", "Usyk vs Dubois"))
	assert.Equal(t, event.SportBoxing, DetectSport("UFC", "", "Jones vs Aspinall"))
	assert.Equal(t, event.SportF1, DetectSport("Formula 1", "", "Monaco Grand Prix"))
	assert.Equal(t, event.SportF1, DetectSport("Motorsport", "", "Le Mans 24h"))
}

// TestDetectSport_Total tests that arbitrary input always yields a defined bucket
func TestDetectSport_Total(t *testing.T) {
	assert.Equal(t, event.SportOther, DetectSport("", "", ""))
	assert.Equal(t, event.SportOther, DetectSport("Darts", "PDC", "Littler vs Humphries"))
	assert.Equal(t, event.SportOther, DetectSport("Cricket", "", "India vs Australia"))
}

// TestIsBigLeague_Roster tests the marquee competition roster used for scoring
func TestIsBigLeague_Roster(t *testing.T) {
	assert.True(t, IsBigLeague("Premier League"))
	assert.True(t, IsBigLeague("nba"))
	assert.False(t, IsBigLeague("League Two"))
}

// TestContainsBigTeam_CaseInsensitive tests the big team token match
func TestContainsBigTeam_CaseInsensitive(t *testing.T) {
	assert.True(t, ContainsBigTeam("REAL MADRID vs Getafe"))
	assert.False(t, ContainsBigTeam("Luton vs Barnsley"))
}
