/* news.go
 * Contains the team news client used to enrich match pages. Headlines come from a
 * GNews style search endpoint; on any error, an exhausted call budget or a missing
 * API key the client falls back to a fixed headline list so a render never fails.
 * The cache and the call budget are injected through the constructor so no state
 * lives at module level, and the fallback's random pick is seeded for tests
 */

package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DefaultEndpoint is the GNews search endpoint
const DefaultEndpoint = "https://gnews.io/api/v4/search"

// headlinesPerQuery is how many headlines a match page shows
const headlinesPerQuery = 3

// fallbackHeadlines is the fixed list used when no live headlines are available
var fallbackHeadlines = []string{
	"Mohamed Salah crowned Player of the Year 2025 after leading Liverpool to 20th title.",
	"Crystal Palace secures historic FA Cup win against Manchester City.",
	"Senegal starts AFCON title defense with dominant 3-0 win over Botswana.",
	"Algeria captain Riyad Mahrez shines in 3-0 victory against Sudan.",
	"Ruben Amorim issues transfer warning to Manchester United squad for January window.",
	"Luca Zidane makes international debut for Algeria in AFCON opener.",
	"Chelsea boss Enzo Maresca plays down Premier League title chances.",
	"Manchester City reportedly eye £131m British record move for world-class star.",
	"Alexander Isak ruled out for two months with leg fracture.",
	"Endrick joins Lyon on loan from Real Madrid for the remainder of the season.",
}

// Cache is an explicit headline cache keyed by query, shared across one
// generation run. Safe for concurrent use
type Cache struct {
	mu      sync.Mutex
	entries map[string][]string
}

// NewCache creates an empty headline cache
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]string)}
}

func (c *Cache) get(query string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	headlines, ok := c.entries[query]
	return headlines, ok
}

func (c *Cache) put(query string, headlines []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[query] = headlines
}

// Config carries the client dependencies. Endpoint and Seed have working
// defaults; a zero CallBudget disables remote fetching entirely
type Config struct {
	APIKey     string
	Endpoint   string
	CallBudget int
	Cache      *Cache
	Seed       int64
	Log        *logrus.Logger
}

// Client fetches team news headlines with a per run call budget and a one
// request per second pace
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	limiter    *rate.Limiter
	cache      *Cache
	budget     int
	used       int
	rng        *rand.Rand
	log        *logrus.Logger
}

// NewClient creates a news client from the injected configuration
func NewClient(cfg Config) *Client {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	cache := cfg.Cache
	if cache == nil {
		cache = NewCache()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log := cfg.Log
	if log == nil {
		log = logrus.New()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		endpoint:   endpoint,
		apiKey:     cfg.APIKey,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		cache:      cache,
		budget:     cfg.CallBudget,
		rng:        rand.New(rand.NewSource(seed)),
		log:        log,
	}
}

// articlesResponse mirrors the slice of the GNews response we read
type articlesResponse struct {
	Articles []struct {
		Title string `json:"title"`
	} `json:"articles"`
}

// Headlines returns up to three headlines for a team or league query.
// Preconditions: receives a context used for cancellation and the query text
// Postconditions: always returns a non-empty headline list; remote failures and
// budget exhaustion degrade to the fixed fallback list
func (c *Client) Headlines(ctx context.Context, query string) []string {
	if cached, ok := c.cache.get(query); ok {
		return cached
	}

	headlines, err := c.fetch(ctx, query)
	if err != nil {
		c.log.WithField("query", query).WithError(err).Debug("news fetch fell back to fixed headlines")
		headlines = c.fallback()
	}

	c.cache.put(query, headlines)
	return headlines
}

// fetch performs one budgeted, rate limited call to the news endpoint
func (c *Client) fetch(ctx context.Context, query string) ([]string, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("no api key configured")
	}
	if c.used >= c.budget {
		return nil, fmt.Errorf("call budget of %d exhausted", c.budget)
	}
	c.used++

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("lang", "en")
	params.Set("max", fmt.Sprint(headlinesPerQuery))
	params.Set("apikey", c.apiKey)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create news request: %w", err)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("news request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news endpoint returned status %d", response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read news body: %w", err)
	}

	var decoded articlesResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode news body: %w", err)
	}
	if len(decoded.Articles) == 0 {
		return nil, fmt.Errorf("no articles for query")
	}

	var headlines []string
	for _, a := range decoded.Articles {
		headlines = append(headlines, a.Title)
		if len(headlines) == headlinesPerQuery {
			break
		}
	}
	return headlines, nil
}

// fallback picks three consecutive fixed headlines starting at a random index
func (c *Client) fallback() []string {
	start := c.rng.Intn(len(fallbackHeadlines) - headlinesPerQuery + 1)
	out := make([]string, headlinesPerQuery)
	copy(out, fallbackHeadlines[start:start+headlinesPerQuery])
	return out
}
