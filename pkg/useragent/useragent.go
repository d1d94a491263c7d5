package useragent

import (
	"strings"
)

// UserAgent contains the parsed information from a user agent string
type UserAgent struct {
	raw string

	deviceType  string
	os          string
	engine      string
	browserName string
	browserVer  string
}

// String returns the raw user agent string
func (ua UserAgent) String() string { return ua.raw }

// DeviceType returns the device type (mobile, desktop, tablet, bot, unknown)
func (ua UserAgent) DeviceType() string { return ua.deviceType }

// OS returns the operating system name
func (ua UserAgent) OS() string { return ua.os }

// Engine returns the rendering engine name
func (ua UserAgent) Engine() string { return ua.engine }

// BrowserName returns the browser name
func (ua UserAgent) BrowserName() string { return ua.browserName }

// BrowserVer returns the browser version
func (ua UserAgent) BrowserVer() string { return ua.browserVer }

// BrowserInfo returns the browser name and version
func (ua UserAgent) BrowserInfo() Browser {
	return Browser{Name: ua.browserName, Version: ua.browserVer}
}

// IsBot returns true if the user agent is a bot
func (ua UserAgent) IsBot() bool { return ua.deviceType == DeviceTypeBot }

// IsMobile returns true if the user agent is a mobile device
func (ua UserAgent) IsMobile() bool { return ua.deviceType == DeviceTypeMobile }

// IsDesktop returns true if the user agent is a desktop device
func (ua UserAgent) IsDesktop() bool { return ua.deviceType == DeviceTypeDesktop }

// IsUnknown returns true if the user agent could not be classified
func (ua UserAgent) IsUnknown() bool {
	return ua.deviceType == DeviceTypeUnknown || ua.deviceType == ""
}

// BotName returns the detected bot name, or an empty string for non-bots.
func (ua UserAgent) BotName() string {
	if !ua.IsBot() {
		return ""
	}
	return extractBotName(ua.raw)
}

// Parse parses a user agent string and returns a UserAgent struct.
// The returned struct is always usable: unparseable fields are filled
// with the Unknown sentinels and the error only signals classification
// quality.
func Parse(ua string) (UserAgent, error) {
	if ua == "" {
		return New("", DeviceTypeUnknown, OSUnknown, EngineUnknown, BrowserUnknown, ""), ErrEmptyUserAgent
	}

	// Lowercase once, all matchers work on the lowered form
	lowerUA := strings.ToLower(ua)

	deviceType := ParseDeviceType(lowerUA)
	os := ParseOS(lowerUA)
	engine := ParseEngine(lowerUA)
	browser := ParseBrowser(lowerUA)

	if deviceType == DeviceTypeUnknown && os == OSUnknown && browser.Name == BrowserUnknown {
		return New(ua, deviceType, os, engine, browser.Name, browser.Version), ErrMalformedUserAgent
	}

	return New(ua, deviceType, os, engine, browser.Name, browser.Version), nil
}

// New creates a new UserAgent with the provided parameters
func New(ua, deviceType, os, engine, browserName, browserVer string) UserAgent {
	return UserAgent{
		raw:         ua,
		deviceType:  deviceType,
		os:          os,
		engine:      engine,
		browserName: browserName,
		browserVer:  browserVer,
	}
}
