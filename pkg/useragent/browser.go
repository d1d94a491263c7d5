package useragent

import (
	"regexp"
	"strings"
)

// Browser represents browser information
type Browser struct {
	Name    string
	Version string
}

// browserPattern defines a pattern for detecting a browser
type browserPattern struct {
	name     string
	keywords []string
	excludes []string
	regex    *regexp.Regexp
}

// Browser detection patterns in order of checking priority.
// Chromium derivatives (Edge, Opera) must be checked before Chrome,
// and Chrome before Safari, since each later UA embeds the earlier
// tokens.
var browserPatterns = []browserPattern{
	{
		name:     BrowserEdge,
		keywords: []string{"edg"},
		regex:    regexp.MustCompile(`(?:edge|edga|edgios|edg)/([\d.]+)`),
	},
	{
		name:     BrowserOpera,
		keywords: []string{"opr/"},
		regex:    regexp.MustCompile(`opr/([\d.]+)`),
	},
	{
		name:     BrowserChrome,
		keywords: []string{"chrome/"},
		excludes: []string{"edg", "opr/"},
		regex:    regexp.MustCompile(`chrome/([\d.]+)`),
	},
	{
		name:     BrowserFirefox,
		keywords: []string{"firefox/"},
		regex:    regexp.MustCompile(`firefox/([\d.]+)`),
	},
	{
		name:     BrowserSafari,
		keywords: []string{"safari/"},
		excludes: []string{"chrome/", "chromium/"},
		regex:    regexp.MustCompile(`version/([\d.]+)`),
	},
	{
		name:     BrowserIE,
		keywords: []string{"trident"},
		regex:    regexp.MustCompile(`(?:msie |rv:)([\d.]+)`),
	},
}

// ParseBrowser identifies the browser name and version from a lowered
// user agent string. Unrecognized browsers yield the Unknown sentinel
// with an empty version.
func ParseBrowser(lowerUA string) Browser {
	if lowerUA == "" {
		return Browser{Name: BrowserUnknown}
	}

	for _, pattern := range browserPatterns {
		if !matchPattern(lowerUA, pattern) {
			continue
		}
		return Browser{
			Name:    pattern.name,
			Version: extractVersion(lowerUA, pattern.regex),
		}
	}

	return Browser{Name: BrowserUnknown}
}

// ParseEngine identifies the rendering engine. Blink-based browsers
// also advertise "applewebkit", so Blink markers are checked first.
func ParseEngine(lowerUA string) string {
	switch {
	case lowerUA == "":
		return EngineUnknown
	case strings.Contains(lowerUA, "chrome/"), strings.Contains(lowerUA, "chromium/"),
		strings.Contains(lowerUA, "edg"), strings.Contains(lowerUA, "opr/"):
		return EngineBlink
	case strings.Contains(lowerUA, "applewebkit"):
		return EngineWebKit
	case strings.Contains(lowerUA, "gecko/"), strings.Contains(lowerUA, "firefox/"):
		return EngineGecko
	case strings.Contains(lowerUA, "trident"):
		return EngineTrident
	default:
		return EngineUnknown
	}
}

// matchPattern checks if the UA string matches a browser pattern
func matchPattern(ua string, pattern browserPattern) bool {
	matched := false
	for _, keyword := range pattern.keywords {
		if strings.Contains(ua, keyword) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	for _, exclude := range pattern.excludes {
		if strings.Contains(ua, exclude) {
			return false
		}
	}
	return true
}

// extractVersion pulls the version number out of the UA string using
// the pattern's regex, capping the length to avoid pathological values.
func extractVersion(ua string, regex *regexp.Regexp) string {
	matches := regex.FindStringSubmatch(ua)
	if len(matches) > 1 {
		version := matches[1]
		if len(version) > 20 {
			version = version[:20]
		}
		return version
	}
	return ""
}
