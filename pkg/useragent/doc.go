// Package useragent provides utilities for parsing and analyzing HTTP
// User-Agent strings.
//
// Parsing is keyword and regex based, tuned for the small set of
// attributes a visit record needs: device type (desktop, mobile,
// tablet, bot), operating system, rendering engine, and browser name
// with version. Anything the parser cannot classify degrades to the
// package's Unknown sentinels rather than an error the caller has to
// branch on.
//
// Example:
//
//	ua, _ := useragent.Parse(r.UserAgent())
//	fmt.Println(ua.BrowserName(), ua.BrowserVer(), ua.OS(), ua.DeviceType())
package useragent
