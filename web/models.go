/* models.go
 * Contains the configuration and server structs for the preview web server
 * Authors: Zachary Bower
 */

package web

import (
	"sync"
	"time"

	"footybite/site"
	"footybite/site/event"

	"github.com/sirupsen/logrus"
)

// snapshotTTL bounds how stale the in memory event snapshot may get before the
// next API request refetches the feed
const snapshotTTL = time.Minute

// Config holds the configuration for the preview server
type Config struct {
	Addr      string
	Dist      string
	Generator *site.Generator
	Log       *logrus.Logger
}

// Server serves the generated site from disk plus the JSON search API. The
// event snapshot behind the API is refetched lazily and cached for a short TTL
type Server struct {
	gen  *site.Generator
	dist string
	log  *logrus.Logger
	now  func() time.Time

	mu       sync.Mutex
	snapshot []event.NormalizedEvent
	fetched  time.Time
}

// NewServer wires a server from its configuration
func NewServer(cfg Config) *Server {
	return &Server{
		gen:  cfg.Generator,
		dist: cfg.Dist,
		log:  cfg.Log,
		now:  time.Now,
	}
}
