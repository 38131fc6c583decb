/* feed.go
 * Contains the logic used to fetch the remote events.json feed and decode it into
 * category blocks that the normalizer can consume. A malformed document is a fatal
 * precondition violation and is surfaced to the caller via ErrMalformedFeed rather
 * than silently producing an empty event list
 */

package feed

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrMalformedFeed signals that the feed document did not have the expected
// events.streams shape. Callers should treat this as fatal for the run
var ErrMalformedFeed = errors.New("malformed feed document")

// Client fetches the events feed over HTTP
type Client struct {
	httpClient *http.Client
	url        string
	log        *logrus.Logger
}

// NewClient creates a feed client for the given events.json URL
func NewClient(url string, log *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		url:        url,
		log:        log,
	}
}

// Fetch downloads and decodes the feed, returning the raw category blocks.
// Preconditions: receives a context used for cancellation of the HTTP request
// Postconditions: returns the decoded category blocks, or an error (wrapping
// ErrMalformedFeed when the document shape is wrong)
func (c *Client) Fetch(ctx context.Context) ([]CategoryBlock, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed request: %w", err)
	}

	request.Header.Set("User-Agent", "FootybiteGenerator/1.0")
	request.Header.Set("Accept-Encoding", "gzip")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch feed: status code %d", response.StatusCode)
	}

	var body []byte
	if response.Header.Get("Content-Encoding") == "gzip" {
		reader, err := gzip.NewReader(response.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer reader.Close()
		body, err = io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to read feed body: %w", err)
		}
	} else {
		body, err = io.ReadAll(response.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read feed body: %w", err)
		}
	}

	categories, err := Parse(body)
	if err != nil {
		return nil, err
	}

	c.log.WithFields(logrus.Fields{"url": c.url, "categories": len(categories)}).Info("fetched events feed")
	return categories, nil
}

// Parse decodes an events.json document into category blocks.
// Preconditions: receives the raw JSON bytes of the feed document
// Postconditions: returns the category blocks, or ErrMalformedFeed if the
// document is not valid JSON or is missing the events.streams array
func Parse(data []byte) ([]CategoryBlock, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}
	if doc.Events == nil || doc.Events.Streams == nil {
		return nil, fmt.Errorf("%w: missing events.streams", ErrMalformedFeed)
	}
	return doc.Events.Streams, nil
}
