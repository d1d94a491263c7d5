package useragent

// OS detection keyword sets optimized for common traffic patterns
var (
	windowsKeywords  = newKeywordSet("windows nt", "windows")
	iOSKeywords      = newKeywordSet("iphone", "ipad", "ipod")
	macOSKeywords    = newKeywordSet("macintosh", "mac os x")
	androidKeywords  = newKeywordSet("android")
	chromeOSKeywords = newKeywordSet("cros", "chromeos")
	linuxKeywords    = newKeywordSet("linux", "ubuntu", "debian", "fedora", "x11")
)

// ParseOS identifies operating systems using keyword matching.
// Order reflects typical web traffic patterns: Windows first, then
// mobile OSes. iOS is checked before macOS because iPad UAs can carry
// "like Mac OS X".
func ParseOS(lowerUA string) string {
	if lowerUA == "" {
		return OSUnknown
	}

	if windowsKeywords.contains(lowerUA) {
		return OSWindows
	}

	if iOSKeywords.contains(lowerUA) {
		return OSiOS
	}

	if macOSKeywords.contains(lowerUA) {
		return OSMacOS
	}

	if androidKeywords.contains(lowerUA) {
		return OSAndroid
	}

	// ChromeOS UAs also contain "x11", check before the Linux fallback
	if chromeOSKeywords.contains(lowerUA) {
		return OSChrome
	}

	if linuxKeywords.contains(lowerUA) {
		return OSLinux
	}

	return OSUnknown
}
