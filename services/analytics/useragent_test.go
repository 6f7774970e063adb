package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio/models"
)

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name     string
		ua       string
		expected models.UserAgentInfo
	}{
		{
			name: "chrome on windows 10",
			ua:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			expected: models.UserAgentInfo{
				Browser: "Chrome", BrowserVersion: "120.0",
				OS: "Windows", OSVersion: "10",
				Device: "Desktop", DeviceType: models.DeviceDesktop,
			},
		},
		{
			name: "safari on iphone",
			ua:   "Mozilla/5.0 (iPhone; CPU iPhone OS 17_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Mobile/15E148 Safari/604.1",
			expected: models.UserAgentInfo{
				Browser: "Safari", BrowserVersion: "17.2",
				OS: "iOS", OSVersion: "17.2",
				Device: "iPhone", DeviceType: models.DeviceMobile,
			},
		},
		{
			name: "firefox on macos",
			ua:   "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15; rv:121.0) Gecko/20100101 Firefox/121.0",
			expected: models.UserAgentInfo{
				Browser: "Firefox", BrowserVersion: "121.0",
				OS: "macOS", OSVersion: "10.15",
				Device: "Desktop", DeviceType: models.DeviceDesktop,
			},
		},
		{
			name: "chrome on android phone",
			ua:   "Mozilla/5.0 (Linux; Android 14.0; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Mobile Safari/537.36",
			expected: models.UserAgentInfo{
				Browser: "Chrome", BrowserVersion: "120.0",
				OS: "Android", OSVersion: "14.0",
				Device: "Android Device", DeviceType: models.DeviceMobile,
			},
		},
		{
			name: "safari on ipad",
			ua:   "Mozilla/5.0 (iPad; CPU OS 17_2 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Mobile/15E148 Safari/604.1",
			expected: models.UserAgentInfo{
				Browser: "Safari", BrowserVersion: "17.2",
				OS: "iOS", OSVersion: "17.2",
				Device: "iPad", DeviceType: models.DeviceTablet,
			},
		},
		{
			name: "empty agent",
			ua:   "",
			expected: models.UserAgentInfo{
				Browser: "Unknown",
				OS:      "Unknown",
				Device:  "Desktop", DeviceType: models.DeviceDesktop,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseUserAgent(tt.ua))
		})
	}
}

func TestResolvableIP(t *testing.T) {
	tests := []struct {
		ip       string
		expected bool
	}{
		{"8.8.8.8", true},
		{"203.0.113.7", true},
		{"127.0.0.1", false},
		{"::1", false},
		{"192.168.1.10", false},
		{"10.0.0.5", false},
		{"172.16.0.1", false},
		{"0.0.0.0", false},
		{"unknown", false},
		{"localhost", false},
		{"", false},
		{"not-an-ip", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolvableIP(tt.ip))
		})
	}
}
