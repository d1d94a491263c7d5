package device

import (
	"github.com/dmitrymomot/visitrack/pkg/useragent"
)

// Info is the flattened device description attached to a tracked visit.
// Fields that could not be classified carry the "Unknown" sentinel, so
// the struct is always fully populated.
type Info struct {
	UserAgent      string `json:"userAgent"`
	Device         string `json:"device"`
	OS             string `json:"os"`
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browserVersion,omitempty"`
	Engine         string `json:"engine"`
	Bot            bool   `json:"bot"`
	BotName        string `json:"botName,omitempty"`
}

// Parse derives device attributes from a raw User-Agent header. Parsing
// never fails; empty or malformed input yields the Unknown sentinels.
func Parse(rawUA string) Info {
	ua, _ := useragent.Parse(rawUA)

	return Info{
		UserAgent:      rawUA,
		Device:         ua.DeviceType(),
		OS:             ua.OS(),
		Browser:        ua.BrowserName(),
		BrowserVersion: ua.BrowserVer(),
		Engine:         ua.Engine(),
		Bot:            ua.IsBot(),
		BotName:        ua.BotName(),
	}
}
