package extract

import (
	"regexp"
)

// Open Graph scanning is deliberately pattern-matched rather than
// DOM-parsed: meta tags sit in the document head and survive broken markup
// that would trip a full HTML parse.
var (
	ogTitleRe       = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:title["'][^>]+content=["']([^"']+)["']`)
	ogImageRe       = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:image["'][^>]+content=["']([^"']+)["']`)
	ogDescriptionRe = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:description["'][^>]+content=["']([^"']+)["']`)
	titleTagRe      = regexp.MustCompile(`(?i)<title[^>]*>([^<]+)</title>`)
)

// applyOpenGraph fills meta from og:title/og:image/og:description tags in
// the page body, with the <title> tag as a title fallback. Fields without a
// match keep their current values.
func applyOpenGraph(meta *Metadata, body []byte) {
	html := string(body)

	if m := ogTitleRe.FindStringSubmatch(html); m != nil {
		meta.Title = decodeHTMLEntities(m[1])
	} else if m := titleTagRe.FindStringSubmatch(html); m != nil {
		meta.Title = decodeHTMLEntities(m[1])
	}

	if m := ogImageRe.FindStringSubmatch(html); m != nil {
		meta.Thumbnail = m[1]
	}

	if m := ogDescriptionRe.FindStringSubmatch(html); m != nil {
		meta.Description = decodeHTMLEntities(m[1])
	}
}
