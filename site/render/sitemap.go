/* sitemap.go
 * Contains the sitemap.xml and robots.txt writers. The sitemap is built from the
 * renderer's own record of written pages so the two can never drift apart
 */

package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sitemap writes sitemap.xml covering every page written so far
func (r *Renderer) Sitemap() error {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, url := range r.written {
		b.WriteString(fmt.Sprintf("  <url><loc>%s</loc><changefreq>hourly</changefreq></url>\n", url))
	}
	b.WriteString("</urlset>")

	if err := os.WriteFile(filepath.Join(r.outDir, "sitemap.xml"), []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}
	return nil
}

// Robots writes robots.txt pointing crawlers at the sitemap
func (r *Renderer) Robots() error {
	content := fmt.Sprintf("User-agent: *\nAllow: /\nSitemap: %s/sitemap.xml", r.domain)
	if err := os.WriteFile(filepath.Join(r.outDir, "robots.txt"), []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write robots.txt: %w", err)
	}
	return nil
}
