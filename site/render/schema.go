/* schema.go
 * Contains the schema.org JSON-LD builders injected into page heads
 */

package render

import (
	"encoding/json"
	"html/template"
	"time"

	"footybite/site/event"
)

// matchSchema builds the SportsEvent structured data for one match page
func matchSchema(e event.NormalizedEvent, domain string) template.JS {
	competitors := make([]map[string]any, 0, len(e.Teams))
	for _, team := range e.Teams {
		competitors = append(competitors, map[string]any{
			"@type": "SportsTeam",
			"name":  team,
		})
	}

	return marshalSchema(map[string]any{
		"@context":        "https://schema.org",
		"@type":           "SportsEvent",
		"name":            e.Name,
		"startDate":       time.UnixMilli(e.StartTime).UTC().Format(time.RFC3339),
		"description":     "Watch " + e.Name + " live stream on Footybite.",
		"image":           e.Thumbnail,
		"competitor":      competitors,
		"isLiveBroadcast": e.Status == event.StatusLive,
		"location": map[string]any{
			"@type": "Place",
			"name":  "Online",
		},
		"offers": map[string]any{
			"@type":         "Offer",
			"url":           domain + "/" + e.URL,
			"price":         "0",
			"priceCurrency": "USD",
			"availability":  "https://schema.org/InStock",
		},
	})
}

// webPageSchema builds the WebPage structured data for listing pages
func webPageSchema(name string, relURL string, domain string) template.JS {
	return marshalSchema(map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebPage",
		"name":     name + " Live Streams",
		"url":      domain + "/" + relURL,
	})
}

// websiteSchema builds the WebSite structured data for the homepage, including
// the sitelinks search action
func websiteSchema(domain string) template.JS {
	return marshalSchema(map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     "Footybite",
		"url":      domain,
		"potentialAction": map[string]any{
			"@type":       "SearchAction",
			"target":      domain + "/search?q={search_term_string}",
			"query-input": "required name=search_term_string",
		},
	})
}

func marshalSchema(schema map[string]any) template.JS {
	encoded, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "{}"
	}
	return template.JS(encoded)
}
