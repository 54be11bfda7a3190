package platform

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

type customPattern struct {
	Match    string `yaml:"match"`
	Platform string `yaml:"platform"`
}

type patternsFile struct {
	Patterns []customPattern `yaml:"patterns"`
}

// LoadCustomPatterns extends the classifier with host patterns from a YAML
// file. Custom patterns never override the defaults: they are matched after
// the built-in list, and must map to a known platform tag.
func (c *Classifier) LoadCustomPatterns(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read patterns file: %w", err)
	}

	var file patternsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse patterns file: %w", err)
	}

	for i, cp := range file.Patterns {
		if cp.Match == "" {
			return fmt.Errorf("pattern %d: match is required", i)
		}
		p := Platform(cp.Platform)
		if !p.IsKnown() {
			return fmt.Errorf("pattern %d: unknown platform %q", i, cp.Platform)
		}
		c.patterns = append(c.patterns, pattern{
			substrings: []string{cp.Match},
			platform:   p,
		})
	}

	slog.Debug("Custom classification patterns loaded", "file", path, "count", len(file.Patterns))

	return nil
}
