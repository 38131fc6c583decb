/* site.go
 * Contains the public generation driver that ties the sub packages together:
 * fetch the feed, normalize and classify every record, then render the full
 * page set (match pages, category and date pages, the live hub, the homepage,
 * brand pages) plus sitemap.xml and robots.txt. For consistent results callers
 * should go through this package, not the sub packages directly
 */

package site

import (
	"context"
	"fmt"
	"sort"
	"time"

	"footybite/blogger"
	"footybite/site/config"
	"footybite/site/event"
	"footybite/site/feed"
	"footybite/site/logic"
	"footybite/site/news"
	"footybite/site/render"

	"github.com/sirupsen/logrus"
)

// Generator runs one full site generation
type Generator struct {
	cfg      *config.Config
	feed     *feed.Client
	news     *news.Client
	renderer *render.Renderer
	loc      *time.Location
	log      *logrus.Logger
	now      func() time.Time
}

// NewGenerator wires a generator from the loaded configuration
func NewGenerator(cfg *config.Config, log *logrus.Logger) (*Generator, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	renderer, err := render.New(cfg.Site.Domain, cfg.Site.OutputDir, loc, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}

	return &Generator{
		cfg:  cfg,
		feed: feed.NewClient(cfg.Site.FeedURL, log),
		news: news.NewClient(news.Config{
			APIKey:     cfg.News.APIKey,
			CallBudget: cfg.News.CallBudget,
			Cache:      news.NewCache(),
			Log:        log,
		}),
		renderer: renderer,
		loc:      loc,
		log:      log,
		now:      time.Now,
	}, nil
}

// Events fetches the feed and returns the normalized event snapshot for "now".
// Used by the generator itself and by the preview server's API
func (g *Generator) Events(ctx context.Context) ([]event.NormalizedEvent, []feed.CategoryBlock, error) {
	categories, err := g.feed.Fetch(ctx)
	if err != nil {
		return nil, nil, err
	}
	return logic.NormalizeAll(categories, g.now(), g.loc), categories, nil
}

// BloggerPosts fetches the feed and builds the Blogger post set for a sync run
func (g *Generator) BloggerPosts(ctx context.Context) ([]blogger.Post, error) {
	events, _, err := g.Events(ctx)
	if err != nil {
		return nil, err
	}
	headlines := func(team string) []string {
		return g.news.Headlines(ctx, team)
	}
	return blogger.GeneratePosts(events, g.cfg.Site.Brands, headlines, g.now(), g.loc), nil
}

// Generate runs one full generation pass into the configured output directory.
// Preconditions: receives a context used for cancellation of the feed and news calls
// Postconditions: the output dir holds the complete site, or an error is
// returned and the run should be treated as failed
func (g *Generator) Generate(ctx context.Context) error {
	started := g.now()
	g.log.Info("starting generation")

	events, categories, err := g.Events(ctx)
	if err != nil {
		return err
	}
	now := g.now()

	if err := g.renderer.Clean(); err != nil {
		return err
	}
	if err := g.renderer.CopyAssets(); err != nil {
		return err
	}

	// events keyed by id so category blocks can be mapped back to their
	// normalized form after global slug collision resolution
	byID := make(map[string]event.NormalizedEvent, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	// Homepage first: Live Now plus the fixed per sport sections
	sections := logic.Select(events, event.ViewParams{Homepage: true}, now, g.loc)
	if err := g.renderer.HomePage(sections, topEvents(events, g.cfg.Site.HomepageLimit)); err != nil {
		return err
	}

	// One page per event, with team news enrichment
	for _, e := range events {
		headlines := g.news.Headlines(ctx, e.Teams[0])
		if err := g.renderer.MatchPage(e, headlines, now); err != nil {
			return err
		}
	}

	// One landing page per sport in the fixed display order. Rendered before
	// the category pages so a feed category with a clashing slug wins
	for _, sport := range event.HomepageOrder {
		var sportEvents []event.NormalizedEvent
		for _, e := range events {
			if e.Sport == sport && e.Status != event.StatusFinished {
				sportEvents = append(sportEvents, e)
			}
		}
		sortByStart(sportEvents)
		label := sport.DisplayName()
		if err := g.renderer.SectionPage(
			string(sport)+"/", label,
			fmt.Sprintf("%s Live Stream Free | Watch %s Online - Footybite", label, label),
			fmt.Sprintf("Watch free %s live streams online. Footybite covers every major %s event.", label, label),
			sportEvents,
		); err != nil {
			return err
		}
	}

	// Category pages and per date pages follow the feed's own category labels
	for _, cat := range categories {
		if err := g.renderCategory(cat, byID); err != nil {
			return err
		}
	}

	// The cross sport live hub
	hub := displayable(events)
	sortByStart(hub)
	if err := g.renderer.SectionPage(
		"live-streams/", "All Live Streams",
		"Free Live Sports Streaming | Soccer, NFL, NBA Streams - Footybite",
		"Watch all live sports streams for free on Footybite. The ultimate hub for soccer streams, NFL, NBA, and more.",
		hub,
	); err != nil {
		return err
	}

	for _, brand := range g.cfg.Site.Brands {
		if err := g.renderer.BrandPage(brand); err != nil {
			return err
		}
	}

	if err := g.renderer.Sitemap(); err != nil {
		return err
	}
	if err := g.renderer.Robots(); err != nil {
		return err
	}

	g.log.WithFields(logrus.Fields{
		"events":   len(events),
		"pages":    len(g.renderer.Written()),
		"duration": g.now().Sub(started).Round(time.Millisecond).String(),
	}).Info("generation complete")
	return nil
}

// renderCategory writes the listing page for one feed category plus one page
// per calendar day that has matches
func (g *Generator) renderCategory(cat feed.CategoryBlock, byID map[string]event.NormalizedEvent) error {
	catSlug := logic.Slugify(cat.Category)
	if catSlug == "" {
		return nil
	}

	var catEvents []event.NormalizedEvent
	for _, raw := range cat.Streams {
		if e, ok := byID[raw.ID.String()]; ok {
			catEvents = append(catEvents, e)
		}
	}
	listed := displayable(catEvents)
	sortByStart(listed)

	if err := g.renderer.SectionPage(
		catSlug+"/", cat.Category,
		fmt.Sprintf("Free %s Live Streams | Watch %s Online - Footybite", cat.Category, cat.Category),
		fmt.Sprintf("Watch the best %s live streams for free. Footybite coverage of all %s events.", cat.Category, cat.Category),
		listed,
	); err != nil {
		return err
	}

	for _, dateStr := range distinctDates(listed, g.loc) {
		var dateEvents []event.NormalizedEvent
		for _, e := range listed {
			if eventDate(e, g.loc) == dateStr {
				dateEvents = append(dateEvents, e)
			}
		}
		relURL := fmt.Sprintf("%s/%s/", catSlug, dateStr)
		if err := g.renderer.SectionPage(
			relURL, fmt.Sprintf("%s (%s)", cat.Category, dateStr),
			fmt.Sprintf("%s Streams for %s | Live %s Today", cat.Category, dateStr, cat.Category),
			fmt.Sprintf("Watch %s live streams for %s. Free %s online on Footybite.", cat.Category, dateStr, cat.Category),
			dateEvents,
		); err != nil {
			return err
		}
	}
	return nil
}

// displayable drops finished events, which never appear on listing pages
func displayable(events []event.NormalizedEvent) []event.NormalizedEvent {
	var out []event.NormalizedEvent
	for _, e := range events {
		if e.Status != event.StatusFinished {
			out = append(out, e)
		}
	}
	return out
}

// topEvents returns the first limit events by popularity for the homepage payload
func topEvents(events []event.NormalizedEvent, limit int) []event.NormalizedEvent {
	out := make([]event.NormalizedEvent, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PopularityScore != out[j].PopularityScore {
			return out[i].PopularityScore > out[j].PopularityScore
		}
		return out[i].StartTime < out[j].StartTime
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sortByStart(events []event.NormalizedEvent) {
	sort.SliceStable(events, func(i, j int) bool { return events[i].StartTime < events[j].StartTime })
}

func eventDate(e event.NormalizedEvent, loc *time.Location) string {
	return time.UnixMilli(e.StartTime).In(loc).Format("2006-01-02")
}

func distinctDates(events []event.NormalizedEvent, loc *time.Location) []string {
	seen := make(map[string]bool)
	var dates []string
	for _, e := range events {
		d := eventDate(e, loc)
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates
}
