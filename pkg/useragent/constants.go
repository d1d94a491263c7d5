package useragent

// Device types represent the category of device that made the request
const (
	// DeviceTypeBot identifies automated crawlers, bots, and spiders
	DeviceTypeBot = "bot"

	// DeviceTypeMobile identifies smartphones and feature phones
	DeviceTypeMobile = "mobile"

	// DeviceTypeTablet identifies tablet devices (iPad, Android tablets, etc.)
	DeviceTypeTablet = "tablet"

	// DeviceTypeDesktop identifies desktop computers and laptops
	DeviceTypeDesktop = "desktop"

	// DeviceTypeUnknown is used when the device type cannot be determined
	DeviceTypeUnknown = "unknown"
)

// Operating system identifiers
const (
	OSWindows = "Windows"
	OSMacOS   = "macOS"
	OSiOS     = "iOS"
	OSAndroid = "Android"
	OSLinux   = "Linux"
	OSChrome  = "ChromeOS"
	OSUnknown = "Unknown"
)

// Browser identifiers
const (
	BrowserEdge    = "Edge"
	BrowserOpera   = "Opera"
	BrowserChrome  = "Chrome"
	BrowserFirefox = "Firefox"
	BrowserSafari  = "Safari"
	BrowserIE      = "Internet Explorer"
	BrowserUnknown = "Unknown"
)

// Rendering engine identifiers
const (
	EngineBlink   = "Blink"
	EngineWebKit  = "WebKit"
	EngineGecko   = "Gecko"
	EngineTrident = "Trident"
	EngineUnknown = "Unknown"
)
