/* posts.go
 * Contains the post generator that turns normalized events into Blogger ready
 * HTML posts. Three kinds of posts are produced: one per non finished match,
 * one hub post per sport, and one post per brand spelling. Finished matches
 * never get a new post, the sync layer only updates their existing one
 * Authors: Zachary Bower
 */

package blogger

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"footybite/site/event"
	"footybite/site/logic"
)

// Post is one Blogger ready post. Slug is the stable identity used to match
// against existing posts on the blog, it never changes between runs for the
// same event
type Post struct {
	Title         string
	Slug          string
	ContentHTML   string
	Labels        []string
	ScheduledTime time.Time
	Status        string
	EventID       string
}

// HeadlineFunc supplies team news lines for a match post, keyed by team name
type HeadlineFunc func(team string) []string

// streamGateWindow mirrors the site's player gate
const streamGateWindow = 30 * time.Minute

var hubSports = []event.Sport{
	event.SportFootball,
	event.SportNFL,
	event.SportNBA,
	event.SportBoxing,
	event.SportF1,
}

var brandNames = map[string]string{
	"footybite": "FootyBite",
	"footybyte": "FootyByte",
	"fotybyte":  "FotyByte",
}

type h2hRow struct {
	Date   string
	Match  string
	Result string
}

// GeneratePosts builds the full post set for one sync run.
// Preconditions: receives the normalized events, the brand spellings, a
// headline source, the current time and the site's reference timezone
// Postconditions: returns match posts for every non finished event followed by
// the sport hub posts and the brand posts
func GeneratePosts(events []event.NormalizedEvent, brands []string, headlines HeadlineFunc, now time.Time, loc *time.Location) []Post {
	var posts []Post
	for _, e := range events {
		if e.Status == event.StatusFinished {
			continue
		}
		posts = append(posts, MatchPost(e, headlines(e.Teams[0]), now, loc))
	}
	for _, sport := range hubSports {
		posts = append(posts, HubPost(sport, now))
	}
	for _, brand := range brands {
		posts = append(posts, BrandPost(brand, now))
	}
	return posts
}

// MatchPost builds the Blogger post for one match.
// Postconditions: the post's scheduled time is the kickoff time, so future
// matches get scheduled rather than published immediately
func MatchPost(e event.NormalizedEvent, headlines []string, now time.Time, loc *time.Location) Post {
	start := time.UnixMilli(e.StartTime).In(loc)
	isLive := e.Status == event.StatusLive
	liveTag := ""
	if isLive {
		liveTag = "LIVE "
	}

	teamA := e.Teams[0]
	teamB := teamA
	if len(e.Teams) > 1 {
		teamB = e.Teams[1]
	}

	data := struct {
		Event      event.NormalizedEvent
		TeamA      string
		TeamB      string
		DateStr    string
		TimeStr    string
		ISOStart   string
		IsLive     bool
		ShowIframe bool
		Headlines  []string
		H2H        []h2hRow
	}{
		Event:      e,
		TeamA:      teamA,
		TeamB:      teamB,
		DateStr:    start.Format("Monday, January 2, 2006"),
		TimeStr:    start.Format("3:04 PM"),
		ISOStart:   start.UTC().Format(time.RFC3339),
		IsLive:     isLive,
		ShowIframe: isLive || time.UnixMilli(e.StartTime).Sub(now) <= streamGateWindow,
		Headlines:  headlines,
		H2H: []h2hRow{
			{Date: "2025-05-12", Match: teamA + " vs " + teamB, Result: "2 - 1"},
			{Date: "2024-11-20", Match: teamA + " vs " + teamB, Result: "0 - 0"},
			{Date: "2024-03-15", Match: teamA + " vs " + teamB, Result: "1 - 3"},
		},
	}

	var buf bytes.Buffer
	if err := matchPostTemplate.Execute(&buf, data); err != nil {
		// the template is parsed from a constant and the data is plain values,
		// execution cannot fail at runtime
		panic(err)
	}

	labels := append([]string{e.Sport.DisplayName(), "Live", e.League}, e.Teams...)
	return Post{
		Title:         fmt.Sprintf("%s %sStream Free | FootyBite", e.Name, liveTag),
		Slug:          logic.Slugify(e.Name) + "-live-stream",
		ContentHTML:   buf.String(),
		Labels:        labels,
		ScheduledTime: time.UnixMilli(e.StartTime),
		Status:        string(e.Status),
		EventID:       e.ID,
	}
}

// HubPost builds the evergreen landing post for one sport
func HubPost(sport event.Sport, now time.Time) Post {
	label := sport.DisplayName()
	data := struct {
		Sport      string
		IsFootball bool
	}{Sport: label, IsFootball: sport == event.SportFootball}

	var buf bytes.Buffer
	if err := hubPostTemplate.Execute(&buf, data); err != nil {
		panic(err)
	}

	return Post{
		Title:         fmt.Sprintf("%s Live Stream Free | Watch %s Online", label, label),
		Slug:          logic.Slugify(label) + "-live-stream",
		ContentHTML:   buf.String(),
		Labels:        []string{label, "Live", "Hub"},
		ScheduledTime: now,
		Status:        "hub",
	}
}

// BrandPost builds the landing post for one brand spelling
func BrandPost(brand string, now time.Time) Post {
	name, ok := brandNames[strings.ToLower(brand)]
	if !ok {
		name = brand
	}
	data := struct {
		Brand     string
		BrandName string
	}{Brand: strings.ToLower(brand), BrandName: name}

	var buf bytes.Buffer
	if err := brandPostTemplate.Execute(&buf, data); err != nil {
		panic(err)
	}

	return Post{
		Title:         fmt.Sprintf("%s - Free Live Sports Streaming", name),
		Slug:          logic.Slugify(brand),
		ContentHTML:   buf.String(),
		Labels:        []string{"Brand", "FootyBite", "Live"},
		ScheduledTime: now,
		Status:        "brand",
	}
}

var matchPostTemplate = template.Must(template.New("match-post").Parse(`<article itemscope itemtype="https://schema.org/SportsEvent">
    <h1 itemprop="name">{{if .IsLive}}LIVE: {{end}}{{.Event.Name}} Live Stream Free</h1>
    <div class="match-date-small">
        <time itemprop="startDate" datetime="{{.ISOStart}}">{{.DateStr}} at {{.TimeStr}}</time>
    </div>
    <div class="player-section">
        <div class="player-container" id="player-gate">
            {{if .ShowIframe}}<iframe src="{{.Event.EmbedURL}}" allowfullscreen scrolling="no" frameborder="0"></iframe>{{else}}<div class="countdown-overlay">
                <h2>Match Starts Soon</h2>
                <div id="countdown-timer" data-start="{{.Event.StartTime}}">Starts in --h --m</div>
                <p>Stream will be available 30 minutes before kickoff.</p>
            </div>{{end}}
        </div>
    </div>
    <div class="match-details-grid">
        <div class="match-info-card">
            <h2>Match Info</h2>
            <div class="info-row"><span class="label">Teams:</span> <span class="value" itemprop="competitor">{{.TeamA}} vs {{.TeamB}}</span></div>
            <div class="info-row"><span class="label">Competition:</span> <span class="value">{{.Event.League}}</span></div>
            <div class="info-row"><span class="label">Kickoff:</span> <span class="value">{{.DateStr}}, {{.TimeStr}}</span></div>
            <div class="info-row"><span class="label">Status:</span> <span class="value status-{{.Event.Status}}">{{if .IsLive}}LIVE{{else}}{{.Event.Status}}{{end}}</span></div>
        </div>
        <div class="match-seo-card">
            <h2>Latest Team News</h2>
            <ul class="news-list">{{range .Headlines}}
                <li>{{.}}</li>{{end}}
            </ul>
        </div>
    </div>
    <div class="match-details-grid">
        <div class="match-info-card">
            <h2>Head-to-Head (H2H)</h2>
            <div class="h2h-table">{{range .H2H}}
                <div class="h2h-row"><span class="h2h-date">{{.Date}}</span> <span class="h2h-match">{{.Match}}</span> <span class="h2h-result">{{.Result}}</span></div>{{end}}
            </div>
        </div>
        <div class="match-seo-card">
            <h2>Match Preview</h2>
            <p>The upcoming {{.Event.League}} clash between {{.TeamA}} and {{.TeamB}} is set to be a highlight of the season. Both teams have shown remarkable form recently, and fans are expecting a high-intensity battle.</p>
        </div>
    </div>
    <div class="faq-grid">
        <div class="faq-item">
            <h4>What time does the match start?</h4>
            <p>The match between {{.TeamA}} and {{.TeamB}} kicks off at {{.TimeStr}} on {{.DateStr}}.</p>
        </div>
        <div class="faq-item">
            <h4>Is the match live?</h4>
            <p>FootyBite provides real-time streaming links. The stream becomes active 30 minutes before the scheduled kickoff.</p>
        </div>
        <div class="faq-item">
            <h4>Where to watch {{.Event.Name}}?</h4>
            <p>You can watch {{.Event.Name}} live right here on FootyBite.</p>
        </div>
        <div class="faq-item">
            <h4>Is it free?</h4>
            <p>Yes, streaming on FootyBite is 100% free. No registration required.</p>
        </div>
    </div>
</article>`))

var hubPostTemplate = template.Must(template.New("hub-post").Parse(`<article>
    <h1>{{.Sport}} Live Stream Free - Watch {{.Sport}} Online</h1>
    <p>Welcome to the ultimate destination for free {{.Sport}} live streams. FootyBite brings you high-quality {{.Sport}} streaming links for all major matches, tournaments, and events.</p>
    <h2>Why Choose FootyBite for {{.Sport}} Streaming?</h2>
    <ul class="news-list">
        <li>100% Free - No registration or payment required</li>
        <li>HD Quality - Crystal clear streams</li>
        <li>Multiple Links - Backup streams ensure you never miss a moment</li>
        <li>Mobile Friendly - Watch on any device, anywhere</li>
    </ul>
    <h2>How to Watch {{.Sport}} Live Streams on FootyBite</h2>
    <ol>
        <li>Browse the {{.Sport}} section to find your match</li>
        <li>Click on the match you want to watch</li>
        <li>Wait for the stream to become active (30 minutes before kickoff)</li>
        <li>Enjoy the match in HD quality for free</li>
    </ol>
    {{if .IsFootball}}<h2>Popular Football Competitions</h2>
    <ul class="news-list">
        <li>Premier League - English top-flight football</li>
        <li>La Liga - Spanish football championship</li>
        <li>Serie A - Italian football league</li>
        <li>Bundesliga - German football league</li>
        <li>Champions League - Europe's elite club competition</li>
        <li>World Cup - FIFA international tournament</li>
        <li>AFCON - African Cup of Nations</li>
    </ul>
    {{end}}<h2>Frequently Asked Questions</h2>
    <div class="faq-grid">
        <div class="faq-item">
            <h4>Do I need to create an account?</h4>
            <p>No. FootyBite is completely free and requires no registration.</p>
        </div>
        <div class="faq-item">
            <h4>When do streams become available?</h4>
            <p>Streams typically become active 30 minutes before the scheduled start time.</p>
        </div>
    </div>
    <p><strong>Start watching {{.Sport}} live streams now on FootyBite.</strong></p>
</article>`))

var brandPostTemplate = template.Must(template.New("brand-post").Parse(`<article>
    <h1>{{.BrandName}} - Watch Live Sports Free</h1>
    <p><strong>{{.BrandName}}</strong> is your destination for free live sports streaming. High-quality streaming links for Football, NFL, NBA, Boxing, F1, and more, all free with no registration required.</p>
    <h2>What is {{.BrandName}}?</h2>
    <p>{{.BrandName}} is a sports streaming aggregator that brings together the best free streaming links from across the internet.</p>
    <h2>Sports We Cover</h2>
    <ul class="news-list">
        <li><strong>Football</strong> - Premier League, La Liga, Serie A, Champions League, World Cup, AFCON</li>
        <li><strong>NFL</strong> - All NFL games including playoffs and Super Bowl</li>
        <li><strong>NBA</strong> - Regular season, playoffs, and NBA Finals</li>
        <li><strong>Boxing and UFC</strong> - Major fights and pay-per-view events</li>
        <li><strong>Formula 1</strong> - All F1 races and qualifying sessions</li>
    </ul>
    <h2>Popular Searches</h2>
    <p>Users commonly search for: {{.Brand}} football, {{.Brand}} nfl streams, {{.Brand}} nba, {{.Brand}} live, {{.Brand}} soccer streams, {{.Brand}} premier league</p>
    <p><strong>Start streaming now on {{.BrandName}}.</strong></p>
</article>`))
