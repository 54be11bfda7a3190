package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassifier_Run_KnownPlatforms(t *testing.T) {
	classifier := NewClassifier()

	cases := []struct {
		url      string
		expected Platform
	}{
		{"https://www.youtube.com/watch?v=abc123", PlatformYouTube},
		{"https://youtu.be/abc123", PlatformYouTube},
		{"https://www.tiktok.com/@user/video/123", PlatformTikTok},
		{"https://www.instagram.com/p/abc/", PlatformInstagram},
		{"https://www.xiaohongshu.com/explore/abcdef01", PlatformXiaohongshu},
		{"https://xhslink.com/abcdef", PlatformXiaohongshu},
		{"https://twitter.com/user/status/123", PlatformTwitter},
		{"https://x.com/user/status/123", PlatformTwitter},
		{"https://www.reddit.com/r/golang/comments/abc/", PlatformReddit},
		{"https://medium.com/@user/some-post", PlatformArticle},
		{"https://example.substack.com/p/some-post", PlatformArticle},
		{"https://example.com/page", PlatformWeb},
	}

	for _, tc := range cases {
		if got := classifier.Run(tc.url); got != tc.expected {
			t.Errorf("Run(%q) = %q, expected %q", tc.url, got, tc.expected)
		}
	}
}

func TestClassifier_Run_UnmatchedAlwaysWeb(t *testing.T) {
	classifier := NewClassifier()

	urls := []string{
		"https://unknown-host.example/",
		"https://news.ycombinator.com/item?id=1",
		"http://localhost:8080/page",
	}

	for _, url := range urls {
		got := classifier.Run(url)
		if got != PlatformWeb {
			t.Errorf("Run(%q) = %q, expected the generic web tag", url, got)
		}
		if !got.IsKnown() {
			t.Errorf("Run(%q) returned a tag outside the closed set", url)
		}
	}
}

func TestClassifier_LoadCustomPatterns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yml")
	content := `patterns:
  - match: "myblog.example"
    platform: "article"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write patterns file: %v", err)
	}

	classifier := NewClassifier()
	if err := classifier.LoadCustomPatterns(path); err != nil {
		t.Fatalf("LoadCustomPatterns failed: %v", err)
	}

	if got := classifier.Run("https://myblog.example/post/1"); got != PlatformArticle {
		t.Errorf("Custom pattern not applied, got %q", got)
	}

	// Defaults still win over custom patterns
	if got := classifier.Run("https://www.youtube.com/watch?v=abc"); got != PlatformYouTube {
		t.Errorf("Default pattern overridden, got %q", got)
	}
}

func TestClassifier_LoadCustomPatterns_UnknownPlatform(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.yml")
	content := `patterns:
  - match: "myblog.example"
    platform: "podcast"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write patterns file: %v", err)
	}

	classifier := NewClassifier()
	if err := classifier.LoadCustomPatterns(path); err == nil {
		t.Error("Expected error for unknown platform tag, got nil")
	}
}

func TestIsValidURL(t *testing.T) {
	valid := []string{
		"https://www.youtube.com/watch?v=abc123XYZ9",
		"http://example.com",
		"https://example.com/path?q=1#frag",
		"  https://example.com  ",
	}
	for _, url := range valid {
		if !IsValidURL(url) {
			t.Errorf("IsValidURL(%q) = false, expected true", url)
		}
	}

	invalid := []string{
		"not a url",
		"",
		"example.com",
		"ftp://example.com/file",
		"https://",
	}
	for _, url := range invalid {
		if IsValidURL(url) {
			t.Errorf("IsValidURL(%q) = true, expected false", url)
		}
	}
}

func TestPlatform_DisplayName(t *testing.T) {
	if got := PlatformYouTube.DisplayName(); got != "YouTube" {
		t.Errorf("DisplayName() = %q, expected %q", got, "YouTube")
	}
	if got := Platform("bogus").DisplayName(); got != "Web" {
		t.Errorf("DisplayName() for unknown tag = %q, expected %q", got, "Web")
	}
}
