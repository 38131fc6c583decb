/* render_test.go
 * Contains unit tests for the page renderer: file layout under the output dir,
 * the stream gate on match pages and sitemap consistency
 */

package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"footybite/site/event"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New("https://footybite.online", t.TempDir(), time.UTC, logrus.New())
	require.NoError(t, err)
	return r
}

func renderEvent(status event.Status, start time.Time) event.NormalizedEvent {
	return event.NormalizedEvent{
		ID:        "9",
		Name:      "Arsenal vs Chelsea",
		Sport:     event.SportFootball,
		League:    "Premier League",
		Teams:     []string{"Arsenal", "Chelsea"},
		StartTime: start.UnixMilli(),
		EndTime:   start.Add(2 * time.Hour).UnixMilli(),
		Status:    status,
		EmbedURL:  "https://embed.example/9",
		URL:       "football/2026-03-14/arsenal-vs-chelsea/",
	}
}

// TestMatchPage_WritesIndexHTMLAtSlugPath tests the page lands at {url}/index.html
func TestMatchPage_WritesIndexHTMLAtSlugPath(t *testing.T) {
	r := testRenderer(t)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	e := renderEvent(event.StatusUpcoming, now.Add(4*time.Hour))

	require.NoError(t, r.MatchPage(e, []string{"headline one"}, now))

	page := filepath.Join(r.outDir, "football", "2026-03-14", "arsenal-vs-chelsea", "index.html")
	content, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Arsenal vs Chelsea")
	assert.Contains(t, string(content), "headline one")
	assert.Contains(t, string(content), `rel="canonical" href="https://footybite.online/football/2026-03-14/arsenal-vs-chelsea/"`)
}

// TestMatchPage_StreamGate tests that the embed only appears live or within 30
// minutes of kickoff
func TestMatchPage_StreamGate(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		status     event.Status
		start      time.Time
		wantIframe bool
	}{
		{"live", event.StatusLive, now.Add(-time.Hour), true},
		{"within gate window", event.StatusUpcoming, now.Add(20 * time.Minute), true},
		{"before gate window", event.StatusUpcoming, now.Add(2 * time.Hour), false},
	}
	for _, tc := range cases {
		r := testRenderer(t)
		e := renderEvent(tc.status, tc.start)
		require.NoError(t, r.MatchPage(e, nil, now))

		content, err := os.ReadFile(filepath.Join(r.outDir, filepath.FromSlash(strings.TrimSuffix(e.URL, "/")), "index.html"))
		require.NoError(t, err)
		if tc.wantIframe {
			assert.Contains(t, string(content), "<iframe", tc.name)
		} else {
			assert.Contains(t, string(content), "countdown-timer", tc.name)
			assert.NotContains(t, string(content), "<iframe", tc.name)
		}
	}
}

// TestHomePage_EmbedsEventPayload tests the client widget snapshot lands in the
// data attribute
func TestHomePage_EmbedsEventPayload(t *testing.T) {
	r := testRenderer(t)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	e := renderEvent(event.StatusLive, now.Add(-time.Hour))
	sections := []event.Section{{Title: "Live Now", Events: []event.NormalizedEvent{e}}}

	require.NoError(t, r.HomePage(sections, []event.NormalizedEvent{e}))

	content, err := os.ReadFile(filepath.Join(r.outDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "filter-engine-root")
	assert.Contains(t, string(content), "popularityScore")
	assert.Contains(t, string(content), "Live Now")
}

// TestSitemap_CoversEveryWrittenPage tests that the sitemap and the written
// pages can not drift apart
func TestSitemap_CoversEveryWrittenPage(t *testing.T) {
	r := testRenderer(t)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	require.NoError(t, r.MatchPage(renderEvent(event.StatusUpcoming, now.Add(4*time.Hour)), nil, now))
	require.NoError(t, r.SectionPage("football/", "Football", "Football Streams", "desc", nil))
	require.NoError(t, r.BrandPage("footybite"))
	require.NoError(t, r.HomePage(nil, nil))
	require.NoError(t, r.Sitemap())
	require.NoError(t, r.Robots())

	sitemap, err := os.ReadFile(filepath.Join(r.outDir, "sitemap.xml"))
	require.NoError(t, err)
	for _, url := range r.Written() {
		assert.Contains(t, string(sitemap), "<loc>"+url+"</loc>")
	}

	robots, err := os.ReadFile(filepath.Join(r.outDir, "robots.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(robots), "Sitemap: https://footybite.online/sitemap.xml")
}

// TestCopyAssets_WritesStylesheet tests the embedded assets land in the output root
func TestCopyAssets_WritesStylesheet(t *testing.T) {
	r := testRenderer(t)

	require.NoError(t, r.CopyAssets())

	assert.FileExists(t, filepath.Join(r.outDir, "style.css"))
	assert.FileExists(t, filepath.Join(r.outDir, "app.js"))
}
