package export

import "strings"

// DeviceProfile captures the capability flags that drive save-strategy
// selection. It is derived fresh for every run; profiles are never cached.
type DeviceProfile struct {
	IsIOS          bool
	IsAndroid      bool
	IsSafariEngine bool
	IsMobile       bool
}

// DetectDevice classifies a platform identification string (user agent).
// Pure function: same input, same profile.
func DetectDevice(userAgent string) DeviceProfile {
	ua := strings.ToLower(userAgent)

	p := DeviceProfile{}
	p.IsIOS = strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad") || strings.Contains(ua, "ipod")
	p.IsAndroid = strings.Contains(ua, "android")
	p.IsMobile = p.IsIOS || p.IsAndroid

	// Third-party iOS browsers identify themselves with crios/fxios while
	// still reporting Safari; they do not expose Safari's share surface.
	p.IsSafariEngine = strings.Contains(ua, "safari") &&
		!strings.Contains(ua, "crios") &&
		!strings.Contains(ua, "fxios") &&
		!strings.Contains(ua, "chrome")

	return p
}
