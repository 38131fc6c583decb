/* sync.go
 * Contains the sync loop that reconciles the generated post set against the
 * posts already on the blog. An existing post is matched by its slug appearing
 * in the Blogger URL; unknown non finished posts are created, live and finished
 * matches get their existing post updated, everything else is skipped. Calls
 * are paced at one per second to stay inside the Blogger API quota
 * Authors: Zachary Bower
 */

package blogger

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// rateInterval is the minimum gap between Blogger API calls
const rateInterval = time.Second

// Stats summarizes one sync run
type Stats struct {
	Created int
	Updated int
	Skipped int
	Errors  int
}

// Syncer drives one reconciliation run. Registry is optional; when set,
// created post ids are recorded so later runs can find posts whose Blogger URL
// was rewritten and no longer contains the slug
type Syncer struct {
	client   *Client
	registry *Registry
	limiter  *rate.Limiter
	log      *logrus.Logger
}

// NewSyncer wires a syncer around an API client.
// Preconditions: receives the client, an optional registry (may be nil) and a logger
// Postconditions: returns a syncer paced at one API call per second
func NewSyncer(client *Client, registry *Registry, log *logrus.Logger) *Syncer {
	return &Syncer{
		client:   client,
		registry: registry,
		limiter:  rate.NewLimiter(rate.Every(rateInterval), 1),
		log:      log,
	}
}

// Sync reconciles the generated posts against the blog.
// Preconditions: receives a context used for cancellation and the full post set
// Postconditions: returns the per run stats; individual post failures are
// counted, not fatal. A non nil error is returned only when the initial post
// listing fails or the context is cancelled
func (s *Syncer) Sync(ctx context.Context, posts []Post) (Stats, error) {
	var stats Stats

	existing, err := s.client.ListPosts(ctx)
	if err != nil {
		return stats, err
	}
	s.log.WithFields(logrus.Fields{
		"existing":  len(existing),
		"generated": len(posts),
	}).Info("starting blogger sync")

	for _, post := range posts {
		if err := s.limiter.Wait(ctx); err != nil {
			return stats, err
		}

		remote, found := s.findExisting(ctx, existing, post)
		if found {
			if s.needsUpdate(post, remote) {
				if err := s.client.UpdatePost(ctx, remote.ID, post); err != nil {
					s.log.WithError(err).WithField("slug", post.Slug).Error("update failed")
					stats.Errors++
					continue
				}
				stats.Updated++
			} else {
				s.log.WithField("slug", post.Slug).Debug("skipped, no changes")
				stats.Skipped++
			}
			continue
		}

		// never create a post for an already finished match
		if post.Status == "finished" {
			stats.Skipped++
			continue
		}
		created, err := s.client.CreatePost(ctx, post)
		if err != nil {
			s.log.WithError(err).WithField("slug", post.Slug).Error("create failed")
			stats.Errors++
			continue
		}
		stats.Created++
		s.record(ctx, post.Slug, created.ID)
	}

	s.log.WithFields(logrus.Fields{
		"created": stats.Created,
		"updated": stats.Updated,
		"skipped": stats.Skipped,
		"errors":  stats.Errors,
	}).Info("blogger sync complete")
	return stats, nil
}

// findExisting locates the blog post for a generated post, first by slug
// substring in the Blogger URL, then via the registry if one is configured
func (s *Syncer) findExisting(ctx context.Context, existing []RemotePost, post Post) (RemotePost, bool) {
	for _, remote := range existing {
		if remote.URL != "" && strings.Contains(remote.URL, post.Slug) {
			return remote, true
		}
	}
	if s.registry != nil {
		if postID, err := s.registry.Lookup(ctx, post.Slug); err == nil && postID != "" {
			for _, remote := range existing {
				if remote.ID == postID {
					return remote, true
				}
			}
		}
	}
	return RemotePost{}, false
}

// needsUpdate reports whether an existing post must be rewritten: a match that
// went live needs LIVE in its title, and a finished match gets a final rewrite
func (s *Syncer) needsUpdate(post Post, remote RemotePost) bool {
	if post.Status == "live" && !strings.Contains(remote.Title, "LIVE") {
		return true
	}
	return post.Status == "finished"
}

func (s *Syncer) record(ctx context.Context, slug string, postID string) {
	if s.registry == nil {
		return
	}
	if err := s.registry.Save(ctx, slug, postID); err != nil {
		s.log.WithError(err).WithField("slug", slug).Warn("failed to record post id")
	}
}
