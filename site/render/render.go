/* render.go
 * Contains the static page renderer. Templates and static assets are embedded in
 * the binary; every page write goes through writePage which creates the directory
 * tree under the output dir. The renderer tracks every URL it writes so the
 * sitemap always matches the generated pages
 */

package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"footybite/site/event"

	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// streamGateWindow is how long before kickoff the embed goes live
const streamGateWindow = 30 * time.Minute

// Renderer writes the site's pages under one output directory
type Renderer struct {
	templates *template.Template
	domain    string
	outDir    string
	loc       *time.Location
	log       *logrus.Logger
	written   []string // canonical URLs in write order, feeds the sitemap
}

// New creates a renderer rooted at outDir. domain must not end with a slash
func New(domain string, outDir string, loc *time.Location, log *logrus.Logger) (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"dateLabel": func(ms int64) string { return time.UnixMilli(ms).In(loc).Format("Monday, January 2, 2006") },
		"timeLabel": func(ms int64) string { return time.UnixMilli(ms).In(loc).Format("3:04 PM") },
		"isoTime":   func(ms int64) string { return time.UnixMilli(ms).UTC().Format(time.RFC3339) },
		"upper":     strings.ToUpper,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{
		templates: tmpl,
		domain:    strings.TrimRight(domain, "/"),
		outDir:    outDir,
		loc:       loc,
		log:       log,
	}, nil
}

// Written returns the canonical URLs of every page written so far
func (r *Renderer) Written() []string {
	return r.written
}

// Clean empties the output directory
func (r *Renderer) Clean() error {
	if err := os.RemoveAll(r.outDir); err != nil {
		return fmt.Errorf("failed to clean output dir: %w", err)
	}
	return os.MkdirAll(r.outDir, 0o755)
}

// CopyAssets writes the embedded static files (stylesheet, client script) into
// the output root
func (r *Renderer) CopyAssets() error {
	entries, err := fs.ReadDir(staticFS, "static")
	if err != nil {
		return fmt.Errorf("failed to list static assets: %w", err)
	}
	for _, entry := range entries {
		data, err := staticFS.ReadFile("static/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read asset %s: %w", entry.Name(), err)
		}
		if err := os.WriteFile(filepath.Join(r.outDir, entry.Name()), data, 0o644); err != nil {
			return fmt.Errorf("failed to write asset %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// pageData carries the fields every page template needs
type pageData struct {
	Title       string
	Description string
	H1          string
	Canonical   string
	Schema      template.JS
}

// matchPageData is the view model for one match page
type matchPageData struct {
	pageData
	Event      event.NormalizedEvent
	TeamA      string
	TeamB      string
	ShowIframe bool
	Headlines  []string
	H2H        []h2hRow
}

// h2hRow is a head to head history line on the match page
type h2hRow struct {
	Date   string
	Match  string
	Result string
}

// sectionPageData is the view model for category, date and hub pages
type sectionPageData struct {
	pageData
	CategoryName string
	Events       []event.NormalizedEvent
}

// homePageData is the view model for the homepage
type homePageData struct {
	pageData
	Sections []event.Section
	// EventsPayload is the JSON snapshot for the client side filter widget.
	// Kept a plain string so the template engine attribute-escapes it
	EventsPayload string
}

// brandPageData is the view model for one brand landing page
type brandPageData struct {
	pageData
	Brand     string // slug
	BrandName string // display form
}

// MatchPage writes the page for one event at its slug path.
// Preconditions: receives the normalized event, its team news headlines and now
// Postconditions: writes {url}/index.html and records the canonical URL
func (r *Renderer) MatchPage(e event.NormalizedEvent, headlines []string, now time.Time) error {
	teamA := e.Teams[0]
	teamB := teamA
	if len(e.Teams) > 1 {
		teamB = e.Teams[1]
	}

	gateOpen := e.StartTime-now.UnixMilli() <= streamGateWindow.Milliseconds()
	data := matchPageData{
		pageData: pageData{
			Title:       fmt.Sprintf("%s Live Stream - Watch %s Online Free", e.Name, e.League),
			Description: fmt.Sprintf("Watch %s free live stream online. Footybite coverage of %s. Fotybyte and Footybyte official streams.", e.Name, e.League),
			H1:          fmt.Sprintf("LIVE: %s Free Stream - Don't Miss the Action!", e.Name),
			Canonical:   r.domain + "/" + e.URL,
			Schema:      matchSchema(e, r.domain),
		},
		Event:      e,
		TeamA:      teamA,
		TeamB:      teamB,
		ShowIframe: e.Status == event.StatusLive || (e.Status == event.StatusUpcoming && gateOpen),
		Headlines:  headlines,
		H2H:        placeholderH2H(teamA, teamB),
	}
	return r.writePage(e.URL, "match.html", data)
}

// SectionPage writes a category, date or hub listing page at relURL
func (r *Renderer) SectionPage(relURL string, name string, title string, description string, events []event.NormalizedEvent) error {
	data := sectionPageData{
		pageData: pageData{
			Title:       title,
			Description: description,
			H1:          name + " Live Streams",
			Canonical:   r.domain + "/" + relURL,
			Schema:      webPageSchema(name, relURL, r.domain),
		},
		CategoryName: name,
		Events:       events,
	}
	return r.writePage(relURL, "category.html", data)
}

// HomePage writes the site root with the section groupings and the client
// widget payload
func (r *Renderer) HomePage(sections []event.Section, payload []event.NormalizedEvent) error {
	encoded, err := json.Marshal(eventPayload(payload))
	if err != nil {
		return fmt.Errorf("failed to encode homepage payload: %w", err)
	}
	data := homePageData{
		pageData: pageData{
			Title:       "Footybite | Free Live Sports Streaming | Soccer Streams, NFL, NBA",
			Description: "Footybite (Fotybyte) is the best place for free soccer streams, NFL, NBA, and live sports streaming. Watch Footybyte official streams online.",
			H1:          "Free Live Sports Streaming",
			Canonical:   r.domain + "/",
			Schema:      websiteSchema(r.domain),
		},
		Sections:      sections,
		EventsPayload: string(encoded),
	}
	return r.writePage("", "index.html", data)
}

// BrandPage writes one SEO landing page for a brand spelling variant
func (r *Renderer) BrandPage(brand string) error {
	name := brandDisplayName(brand)
	data := brandPageData{
		pageData: pageData{
			Title:       fmt.Sprintf("%s - Free Live Sports Streaming", name),
			Description: fmt.Sprintf("%s is your destination for free live sports streaming: Football, NFL, NBA, Boxing and F1.", name),
			H1:          fmt.Sprintf("%s - Watch Live Sports Free", name),
			Canonical:   fmt.Sprintf("%s/%s/", r.domain, brand),
			Schema:      webPageSchema(name, brand+"/", r.domain),
		},
		Brand:     brand,
		BrandName: name,
	}
	return r.writePage(brand+"/", "brand.html", data)
}

// writePage renders one template into {outDir}/{relURL}/index.html and records
// the page's canonical URL for the sitemap
func (r *Renderer) writePage(relURL string, templateName string, data any) error {
	dir := filepath.Join(r.outDir, filepath.FromSlash(strings.TrimSuffix(relURL, "/")))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create page dir %s: %w", dir, err)
	}

	out, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return fmt.Errorf("failed to create page file: %w", err)
	}
	defer out.Close()

	if err := r.templates.ExecuteTemplate(out, templateName, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", templateName, err)
	}

	canonical := r.domain + "/" + relURL
	r.written = append(r.written, canonical)
	r.log.WithField("url", canonical).Debug("wrote page")
	return nil
}

// payloadEvent is the JSON shape handed to the client side filter widget
type payloadEvent struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Sport           string   `json:"sport"`
	League          string   `json:"league"`
	Teams           []string `json:"teams"`
	StartTime       int64    `json:"startTime"`
	EndTime         int64    `json:"endTime"`
	Status          string   `json:"status"`
	Thumbnail       string   `json:"thumbnail,omitempty"`
	URL             string   `json:"url"`
	PopularityScore int      `json:"popularityScore"`
}

func eventPayload(events []event.NormalizedEvent) []payloadEvent {
	out := make([]payloadEvent, 0, len(events))
	for _, e := range events {
		out = append(out, payloadEvent{
			ID:              e.ID,
			Name:            e.Name,
			Sport:           string(e.Sport),
			League:          e.League,
			Teams:           e.Teams,
			StartTime:       e.StartTime,
			EndTime:         e.EndTime,
			Status:          string(e.Status),
			Thumbnail:       e.Thumbnail,
			URL:             e.URL,
			PopularityScore: e.PopularityScore,
		})
	}
	return out
}

// placeholderH2H fills the head to head card until a results source exists
func placeholderH2H(teamA string, teamB string) []h2hRow {
	match := fmt.Sprintf("%s vs %s", teamA, teamB)
	return []h2hRow{
		{Date: "2025-05-12", Match: match, Result: "2 - 1"},
		{Date: "2024-11-20", Match: match, Result: "0 - 0"},
		{Date: "2024-03-15", Match: match, Result: "1 - 3"},
	}
}

func brandDisplayName(brand string) string {
	switch brand {
	case "footybite":
		return "FootyBite"
	case "footybyte":
		return "FootyByte"
	case "fotybyte":
		return "FotyByte"
	default:
		return brand
	}
}
