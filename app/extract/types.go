package extract

import (
	"github.com/linkhoard/linkhoard/app/platform"
)

// Metadata is the best-effort description of a URL. Extraction is an
// enrichment: every field may hold a placeholder, never an error.
type Metadata struct {
	URL         string
	Platform    platform.Platform
	Title       string
	Thumbnail   string // Empty when none could be derived
	Description string
}
