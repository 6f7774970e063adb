// File: services/analytics/useragent.go
package analytics

import (
	"regexp"
	"strings"

	"portfolio/models"
)

var (
	chromeVersionRe  = regexp.MustCompile(`chrome/(\d+\.\d+)`)
	firefoxVersionRe = regexp.MustCompile(`firefox/(\d+\.\d+)`)
	safariVersionRe  = regexp.MustCompile(`version/(\d+\.\d+)`)
	edgeVersionRe    = regexp.MustCompile(`edge/(\d+\.\d+)`)
	macVersionRe     = regexp.MustCompile(`mac os x (\d+[._]\d+)`)
	androidVersionRe = regexp.MustCompile(`android (\d+\.\d+)`)
	iosVersionRe     = regexp.MustCompile(`os (\d+[._]\d+)`)
)

// ParseUserAgent extracts browser, OS and device class from a User-Agent
// header. Heuristic by design; unknown agents degrade to "Unknown"/desktop
// rather than erroring.
func ParseUserAgent(userAgent string) models.UserAgentInfo {
	ua := strings.ToLower(userAgent)

	info := models.UserAgentInfo{
		Browser: "Unknown",
		OS:      "Unknown",
	}

	switch {
	case strings.Contains(ua, "chrome") && !strings.Contains(ua, "edge"):
		info.Browser = "Chrome"
		info.BrowserVersion = firstGroup(chromeVersionRe, ua)
	case strings.Contains(ua, "firefox"):
		info.Browser = "Firefox"
		info.BrowserVersion = firstGroup(firefoxVersionRe, ua)
	case strings.Contains(ua, "safari") && !strings.Contains(ua, "chrome"):
		info.Browser = "Safari"
		info.BrowserVersion = firstGroup(safariVersionRe, ua)
	case strings.Contains(ua, "edge"):
		info.Browser = "Edge"
		info.BrowserVersion = firstGroup(edgeVersionRe, ua)
	}

	switch {
	case strings.Contains(ua, "windows"):
		info.OS = "Windows"
		switch {
		case strings.Contains(ua, "windows nt 10"):
			info.OSVersion = "10"
		case strings.Contains(ua, "windows nt 6.3"):
			info.OSVersion = "8.1"
		case strings.Contains(ua, "windows nt 6.1"):
			info.OSVersion = "7"
		}
	// iOS and Android agents also mention "mac os x" or "linux", so the
	// handheld platforms are matched first.
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"):
		info.OS = "iOS"
		info.OSVersion = strings.ReplaceAll(firstGroup(iosVersionRe, ua), "_", ".")
	case strings.Contains(ua, "android"):
		info.OS = "Android"
		info.OSVersion = firstGroup(androidVersionRe, ua)
	case strings.Contains(ua, "mac os x"):
		info.OS = "macOS"
		info.OSVersion = strings.ReplaceAll(firstGroup(macVersionRe, ua), "_", ".")
	case strings.Contains(ua, "linux"):
		info.OS = "Linux"
	}

	switch {
	case strings.Contains(ua, "ipad"), strings.Contains(ua, "tablet"):
		info.DeviceType = models.DeviceTablet
		if strings.Contains(ua, "ipad") {
			info.Device = "iPad"
		} else {
			info.Device = "Tablet"
		}
	case strings.Contains(ua, "mobile"), strings.Contains(ua, "iphone"), strings.Contains(ua, "android"):
		info.DeviceType = models.DeviceMobile
		switch {
		case strings.Contains(ua, "iphone"):
			info.Device = "iPhone"
		case strings.Contains(ua, "android"):
			info.Device = "Android Device"
		default:
			info.Device = "Mobile Device"
		}
	default:
		info.DeviceType = models.DeviceDesktop
		info.Device = "Desktop"
	}

	return info
}

func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return ""
}
