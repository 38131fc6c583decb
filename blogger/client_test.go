/* client_test.go
 * Contains unit tests for the Blogger API client using stubbed HTTP servers
 * Authors: Zachary Bower
 */

package blogger

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCreds() Credentials {
	return Credentials{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RefreshToken: "refresh-token",
		BlogID:       "b1",
	}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newTestClient points a client at stub token and API servers
func newTestClient(t *testing.T, apiHandler http.HandlerFunc) (*Client, *int) {
	t.Helper()
	tokenCalls := 0

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh_token", body["grant_type"])
		assert.Equal(t, "refresh-token", body["refresh_token"])
		json.NewEncoder(w).Encode(map[string]string{"access_token": "token-abc"})
	}))
	t.Cleanup(tokenSrv.Close)

	apiSrv := httptest.NewServer(apiHandler)
	t.Cleanup(apiSrv.Close)

	client := NewClient(testCreds(), testLogger())
	client.tokenURL = tokenSrv.URL
	client.apiBase = apiSrv.URL
	return client, &tokenCalls
}

func TestCredentials_Validate(t *testing.T) {
	assert.NoError(t, testCreds().Validate())

	missing := testCreds()
	missing.RefreshToken = ""
	err := missing.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BLOGGER_REFRESH_TOKEN")
}

func TestListPosts_RefreshesTokenOnceAndPaginates(t *testing.T) {
	client, tokenCalls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-abc", r.Header.Get("Authorization"))
		assert.Equal(t, "500", r.URL.Query().Get("maxResults"))
		assert.Equal(t, "false", r.URL.Query().Get("fetchBodies"))

		if r.URL.Query().Get("pageToken") == "" {
			json.NewEncoder(w).Encode(map[string]any{
				"items":         []RemotePost{{ID: "p1", Title: "First", URL: "https://blog/first.html"}},
				"nextPageToken": "page-2",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"items": []RemotePost{{ID: "p2", Title: "Second", URL: "https://blog/second.html"}},
		})
	})

	posts, err := client.ListPosts(t.Context())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p1", posts[0].ID)
	assert.Equal(t, "p2", posts[1].ID)
	assert.Equal(t, 1, *tokenCalls)
}

func TestCreatePost_SchedulesFuturePosts(t *testing.T) {
	var payload map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(RemotePost{ID: "new-1"})
	})

	post := Post{
		Title:         "Arsenal vs Chelsea Stream Free | FootyBite",
		ContentHTML:   "<article></article>",
		Labels:        []string{"Football", "", "Live"},
		ScheduledTime: time.Now().Add(3 * time.Hour),
	}
	created, err := client.CreatePost(t.Context(), post)
	require.NoError(t, err)
	assert.Equal(t, "new-1", created.ID)

	assert.Equal(t, "blogger#post", payload["kind"])
	assert.NotEmpty(t, payload["published"])
	// empty labels are dropped before hitting the API
	assert.Equal(t, []any{"Football", "Live"}, payload["labels"])
}

func TestCreatePost_PastKickoffPublishesImmediately(t *testing.T) {
	var payload map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(RemotePost{ID: "new-2"})
	})

	post := Post{Title: "Live now", ScheduledTime: time.Now().Add(-time.Hour)}
	_, err := client.CreatePost(t.Context(), post)
	require.NoError(t, err)
	_, scheduled := payload["published"]
	assert.False(t, scheduled)
}

func TestUpdatePost_SendsPut(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Contains(t, r.URL.Path, "/blogs/b1/posts/p9")
		json.NewEncoder(w).Encode(RemotePost{ID: "p9"})
	})

	err := client.UpdatePost(t.Context(), "p9", Post{Title: "Updated"})
	assert.NoError(t, err)
}

func TestDeletePost_AcceptsNoContent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.DeletePost(t.Context(), "p3"))
}

func TestClient_SurfacesAPIErrors(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota exceeded"}`, http.StatusForbidden)
	})

	_, err := client.ListPosts(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestCleanLabels_CapsAtBloggerLimit(t *testing.T) {
	var labels []string
	for i := 0; i < 30; i++ {
		labels = append(labels, "label")
	}
	assert.Len(t, cleanLabels(labels), maxLabels)
	assert.Empty(t, cleanLabels([]string{"", ""}))
}
