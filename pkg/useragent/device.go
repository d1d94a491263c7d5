package useragent

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// keywordSet optimizes keyword lookups using map structure
type keywordSet map[string]struct{}

func newKeywordSet(keywords ...string) keywordSet {
	result := make(keywordSet, len(keywords))
	for _, word := range keywords {
		result[word] = struct{}{}
	}
	return result
}

func (k keywordSet) contains(s string) bool {
	for keyword := range k {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// Keyword sets organized by device type for efficient classification.
// Bot detection includes social media crawlers and monitoring tools.
var (
	botKeywords     = newKeywordSet("bot", "spider", "crawler", "archiver", "lighthouse", "slurp", "facebookexternalhit", "monitor", "validator", "fetcher", "scraper", "curl/", "wget/", "python-requests", "go-http-client")
	tabletKeywords  = newKeywordSet("ipad", "tablet", "kindle", "silk")
	mobileKeywords  = newKeywordSet("mobile", "iphone", "ipod", "android", "windows phone", "iemobile", "blackberry")
	desktopKeywords = newKeywordSet("windows", "macintosh", "mac os x", "linux", "x11", "cros")
)

// ParseDeviceType classifies devices using fast string matching.
// Order matters: bots first so crawlers impersonating browsers are
// caught, then tablets before mobiles since Android tablets also carry
// the "android" token.
func ParseDeviceType(lowerUA string) string {
	if lowerUA == "" {
		return DeviceTypeUnknown
	}

	if botKeywords.contains(lowerUA) {
		return DeviceTypeBot
	}

	if tabletKeywords.contains(lowerUA) {
		return DeviceTypeTablet
	}

	// Android UAs without the "mobile" token are tablets
	if strings.Contains(lowerUA, "android") && !strings.Contains(lowerUA, "mobile") {
		return DeviceTypeTablet
	}

	if mobileKeywords.contains(lowerUA) {
		return DeviceTypeMobile
	}

	if desktopKeywords.contains(lowerUA) {
		return DeviceTypeDesktop
	}

	return DeviceTypeUnknown
}

// Bot name extraction keywords - direct mapping for common bots
var botNameMap = map[string]string{
	"googlebot":           "Googlebot",
	"bingbot":             "Bingbot",
	"yandexbot":           "Yandexbot",
	"twitterbot":          "Twitterbot",
	"facebookexternalhit": "Facebook",
	"linkedinbot":         "Linkedinbot",
	"slackbot":            "Slackbot",
	"telegrambot":         "Telegrambot",
}

// Common bot name patterns compiled only once for efficiency
var botNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([a-z0-9\-_]+bot)`),
	regexp.MustCompile(`(?i)([a-z0-9\-_]+spider)`),
	regexp.MustCompile(`(?i)([a-z0-9\-_]+crawler)`),
}

// extractBotName extracts the bot name from a user agent string
func extractBotName(userAgent string) string {
	lowerUA := strings.ToLower(userAgent)

	// Fast path: direct checks for most common bots
	for keyword, name := range botNameMap {
		if strings.Contains(lowerUA, keyword) {
			return name
		}
	}

	// Slower path: regex matching for dynamic extraction
	title := cases.Title(language.English)
	for _, pattern := range botNamePatterns {
		if matches := pattern.FindStringSubmatch(userAgent); len(matches) > 1 {
			return title.String(strings.ToLower(matches[1]))
		}
	}

	return "Unknown Bot"
}
