package platform

import (
	"net/url"
	"strings"
)

// Platform identifies the source a URL was shared from. The set is closed:
// every URL maps to exactly one tag, with PlatformWeb as the catch-all.
type Platform string

const (
	PlatformYouTube     Platform = "youtube"
	PlatformTikTok      Platform = "tiktok"
	PlatformInstagram   Platform = "instagram"
	PlatformXiaohongshu Platform = "xiaohongshu"
	PlatformTwitter     Platform = "twitter"
	PlatformReddit      Platform = "reddit"
	PlatformArticle     Platform = "article"
	PlatformWeb         Platform = "web"
)

var displayNames = map[Platform]string{
	PlatformYouTube:     "YouTube",
	PlatformTikTok:      "TikTok",
	PlatformInstagram:   "Instagram",
	PlatformXiaohongshu: "Xiaohongshu",
	PlatformTwitter:     "Twitter/X",
	PlatformReddit:      "Reddit",
	PlatformArticle:     "Article",
	PlatformWeb:         "Web",
}

func (p Platform) DisplayName() string {
	if name, ok := displayNames[p]; ok {
		return name
	}
	return displayNames[PlatformWeb]
}

// IsKnown reports whether p is a member of the closed platform set.
func (p Platform) IsKnown() bool {
	_, ok := displayNames[p]
	return ok
}

type pattern struct {
	substrings []string
	platform   Platform
}

// Ordered first-match list. Hosts do not legitimately collide, so order
// only matters for determinism.
var defaultPatterns = []pattern{
	{[]string{"youtube.com", "youtu.be"}, PlatformYouTube},
	{[]string{"tiktok.com"}, PlatformTikTok},
	{[]string{"instagram.com"}, PlatformInstagram},
	{[]string{"xiaohongshu.com", "xhslink.com"}, PlatformXiaohongshu},
	{[]string{"twitter.com", "x.com"}, PlatformTwitter},
	{[]string{"reddit.com"}, PlatformReddit},
	{[]string{"medium.com", "substack.com"}, PlatformArticle},
}

// Classifier maps URLs to platform tags. Pure, no I/O; unmatched URLs
// always yield PlatformWeb.
type Classifier struct {
	patterns []pattern
}

func NewClassifier() *Classifier {
	return &Classifier{patterns: defaultPatterns}
}

func (c *Classifier) Run(rawURL string) Platform {
	lowered := strings.ToLower(rawURL)
	for _, p := range c.patterns {
		for _, substr := range p.substrings {
			if strings.Contains(lowered, substr) {
				return p.platform
			}
		}
	}
	return PlatformWeb
}

// IsValidURL reports whether s parses as an absolute http(s) URL. No
// reachability check is performed.
func IsValidURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
