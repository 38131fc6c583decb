/* client.go
 * Contains the Blogger API v3 client. Handles the OAuth refresh token flow and
 * the post CRUD calls used by the sync layer. The access token is cached on the
 * client and refreshed lazily on the first call that needs it
 * Authors: Zachary Bower
 */

package blogger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultTokenURL = "https://oauth2.googleapis.com/token"
	defaultAPIBase  = "https://www.googleapis.com/blogger/v3"

	// Blogger caps a post at 20 labels
	maxLabels = 20
)

// Credentials holds the OAuth client and blog identity for one Blogger account
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	BlogID       string
}

// Validate returns an error naming the first missing credential field
func (c Credentials) Validate() error {
	switch {
	case c.ClientID == "":
		return fmt.Errorf("missing BLOGGER_CLIENT_ID")
	case c.ClientSecret == "":
		return fmt.Errorf("missing BLOGGER_CLIENT_SECRET")
	case c.RefreshToken == "":
		return fmt.Errorf("missing BLOGGER_REFRESH_TOKEN")
	case c.BlogID == "":
		return fmt.Errorf("missing BLOGGER_BLOG_ID")
	}
	return nil
}

// RemotePost is the subset of a Blogger post the sync layer needs. Bodies are
// never fetched when listing
type RemotePost struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Client talks to the Blogger API for a single blog
type Client struct {
	httpClient  *http.Client
	creds       Credentials
	tokenURL    string
	apiBase     string
	accessToken string
	log         *logrus.Logger
}

// NewClient creates a Blogger client for the given credentials.
// Preconditions: receives validated credentials and a logger
// Postconditions: returns a client ready to make API calls; no network traffic
// happens until the first call
func NewClient(creds Credentials, log *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		creds:      creds,
		tokenURL:   defaultTokenURL,
		apiBase:    defaultAPIBase,
		log:        log,
	}
}

// refreshAccessToken exchanges the refresh token for a fresh access token
func (c *Client) refreshAccessToken(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"client_id":     c.creds.ClientID,
		"client_secret": c.creds.ClientSecret,
		"refresh_token": c.creds.RefreshToken,
		"grant_type":    "refresh_token",
	})
	if err != nil {
		return fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("token request returned status %d: %s", resp.StatusCode, string(data))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return fmt.Errorf("token response contained no access token")
	}

	c.accessToken = payload.AccessToken
	c.log.Debug("oauth access token refreshed")
	return nil
}

// do performs one authenticated API call, refreshing the token first if needed
func (c *Client) do(ctx context.Context, method string, apiURL string, body any) (*http.Response, error) {
	if c.accessToken == "" {
		if err := c.refreshAccessToken(ctx); err != nil {
			return nil, err
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to blogger api failed: %w", err)
	}
	return resp, nil
}

// ListPosts returns every post currently on the blog, without bodies.
// Postconditions: returns the posts, following pagination until the API stops
// returning a page token
func (c *Client) ListPosts(ctx context.Context) ([]RemotePost, error) {
	var posts []RemotePost
	pageToken := ""
	for {
		params := url.Values{}
		params.Set("maxResults", "500")
		params.Set("fetchBodies", "false")
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}
		listURL := fmt.Sprintf("%s/blogs/%s/posts?%s", c.apiBase, c.creds.BlogID, params.Encode())

		resp, err := c.do(ctx, http.MethodGet, listURL, nil)
		if err != nil {
			return nil, err
		}

		var page struct {
			Items         []RemotePost `json:"items"`
			NextPageToken string       `json:"nextPageToken"`
		}
		if resp.StatusCode != http.StatusOK {
			data, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("list posts returned status %d: %s", resp.StatusCode, string(data))
		}
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode post list: %w", err)
		}

		posts = append(posts, page.Items...)
		if page.NextPageToken == "" {
			return posts, nil
		}
		pageToken = page.NextPageToken
	}
}

// CreatePost publishes a new post. A post whose scheduled time is still in the
// future is scheduled rather than published immediately
func (c *Client) CreatePost(ctx context.Context, post Post) (RemotePost, error) {
	payload := map[string]any{
		"kind":    "blogger#post",
		"title":   post.Title,
		"content": post.ContentHTML,
		"labels":  cleanLabels(post.Labels),
	}
	if post.ScheduledTime.After(time.Now()) {
		payload["published"] = post.ScheduledTime.UTC().Format(time.RFC3339)
	}

	createURL := fmt.Sprintf("%s/blogs/%s/posts", c.apiBase, c.creds.BlogID)
	resp, err := c.do(ctx, http.MethodPost, createURL, payload)
	if err != nil {
		return RemotePost{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return RemotePost{}, fmt.Errorf("create post %q returned status %d: %s", post.Title, resp.StatusCode, string(data))
	}

	var created RemotePost
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return RemotePost{}, fmt.Errorf("failed to decode created post: %w", err)
	}
	c.log.WithField("title", post.Title).Info("created post")
	return created, nil
}

// UpdatePost replaces the title, content and labels of an existing post
func (c *Client) UpdatePost(ctx context.Context, postID string, post Post) error {
	payload := map[string]any{
		"kind":    "blogger#post",
		"title":   post.Title,
		"content": post.ContentHTML,
		"labels":  cleanLabels(post.Labels),
	}

	updateURL := fmt.Sprintf("%s/blogs/%s/posts/%s", c.apiBase, c.creds.BlogID, postID)
	resp, err := c.do(ctx, http.MethodPut, updateURL, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("update post %q returned status %d: %s", post.Title, resp.StatusCode, string(data))
	}
	c.log.WithField("title", post.Title).Info("updated post")
	return nil
}

// DeletePost removes a post from the blog
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	deleteURL := fmt.Sprintf("%s/blogs/%s/posts/%s", c.apiBase, c.creds.BlogID, postID)
	resp, err := c.do(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete post %s returned status %d: %s", postID, resp.StatusCode, string(data))
	}
	c.log.WithField("post_id", postID).Info("deleted post")
	return nil
}

// cleanLabels drops empty labels and truncates to the Blogger per post limit
func cleanLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l == "" {
			continue
		}
		out = append(out, l)
		if len(out) == maxLabels {
			break
		}
	}
	return out
}
