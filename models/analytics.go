package models

import "time"

// Device type values for parsed user agents.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
)

// MeetView is one visit to the meeting-scheduling page, enriched with parsed
// user-agent and geolocation data and updated in place as the visitor moves
// through the booking funnel.
type MeetView struct {
	ID               string     `bson:"id" json:"id"`
	IP               string     `bson:"ip" json:"ip"`
	UserAgent        string     `bson:"userAgent" json:"userAgent"`
	Referrer         string     `bson:"referrer,omitempty" json:"referrer,omitempty"`
	CreatedAt        time.Time  `bson:"createdAt" json:"createdAt"`
	SessionID        string     `bson:"sessionId" json:"sessionId"`
	ViewDuration     int        `bson:"viewDuration,omitempty" json:"viewDuration,omitempty"`
	MeetingScheduled bool       `bson:"meetingScheduled" json:"meetingScheduled"`
	ScheduledAt      *time.Time `bson:"scheduledAt,omitempty" json:"scheduledAt,omitempty"`
	SelectedDuration int        `bson:"selectedDuration,omitempty" json:"selectedDuration,omitempty"`
	SelectedTimezone string     `bson:"selectedTimezone,omitempty" json:"selectedTimezone,omitempty"`

	// Funnel flags: time selected, form submitted, confirmation reached.
	Step1Completed bool `bson:"step1Completed" json:"step1Completed"`
	Step2Completed bool `bson:"step2Completed" json:"step2Completed"`
	Step3Reached   bool `bson:"step3Reached" json:"step3Reached"`

	TimeSlotClicks  int `bson:"timeSlotClicks,omitempty" json:"timeSlotClicks,omitempty"`
	TimezoneChanges int `bson:"timezoneChanges,omitempty" json:"timezoneChanges,omitempty"`
	DateChanges     int `bson:"dateChanges,omitempty" json:"dateChanges,omitempty"`
	DurationChanges int `bson:"durationChanges,omitempty" json:"durationChanges,omitempty"`

	UserAgentInfo `bson:",inline"`
	GeoInfo       `bson:",inline"`
}

// ResumeView is one visit to the resume page.
type ResumeView struct {
	ID           string     `bson:"id" json:"id"`
	IP           string     `bson:"ip" json:"ip"`
	UserAgent    string     `bson:"userAgent" json:"userAgent"`
	Referrer     string     `bson:"referrer,omitempty" json:"referrer,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	SessionID    string     `bson:"sessionId" json:"sessionId"`
	Downloaded   bool       `bson:"downloaded" json:"downloaded"`
	DownloadedAt *time.Time `bson:"downloadedAt,omitempty" json:"downloadedAt,omitempty"`

	UserAgentInfo `bson:",inline"`
	GeoInfo       `bson:",inline"`
}

// UserAgentInfo is the parsed form of a User-Agent header.
type UserAgentInfo struct {
	Browser        string `bson:"browser,omitempty" json:"browser,omitempty"`
	BrowserVersion string `bson:"browserVersion,omitempty" json:"browserVersion,omitempty"`
	OS             string `bson:"os,omitempty" json:"os,omitempty"`
	OSVersion      string `bson:"osVersion,omitempty" json:"osVersion,omitempty"`
	Device         string `bson:"device,omitempty" json:"device,omitempty"`
	DeviceType     string `bson:"deviceType,omitempty" json:"deviceType,omitempty"`
}

// GeoInfo is IP geolocation enrichment data.
type GeoInfo struct {
	Country     string  `bson:"country,omitempty" json:"country,omitempty"`
	CountryCode string  `bson:"countryCode,omitempty" json:"countryCode,omitempty"`
	City        string  `bson:"city,omitempty" json:"city,omitempty"`
	Region      string  `bson:"region,omitempty" json:"region,omitempty"`
	Timezone    string  `bson:"timezone,omitempty" json:"timezone,omitempty"`
	Latitude    float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude   float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
	Org         string  `bson:"org,omitempty" json:"org,omitempty"`
	Postal      string  `bson:"postal,omitempty" json:"postal,omitempty"`
}

// DateBucket is one day of aggregated counts.
type DateBucket struct {
	Date   string `bson:"_id" json:"date"`
	Views  int    `bson:"views" json:"views"`
	Events int    `bson:"events" json:"events"`
	Step1  int    `bson:"step1,omitempty" json:"step1,omitempty"`
	Step2  int    `bson:"step2,omitempty" json:"step2,omitempty"`
	Step3  int    `bson:"step3,omitempty" json:"step3,omitempty"`
}

// BreakdownEntry is one value of a grouped breakdown (country, device, ...).
type BreakdownEntry struct {
	Value string `bson:"_id" json:"value"`
	Count int    `bson:"count" json:"count"`
}

// MeetAnalyticsReport is the admin dashboard payload for the meet funnel.
type MeetAnalyticsReport struct {
	Period            string           `json:"period"`
	TotalViews        int64            `json:"totalViews"`
	MeetingsScheduled int64            `json:"meetingsScheduled"`
	UniqueVisitors    int              `json:"uniqueVisitors"`
	Step1Completions  int64            `json:"step1Completions"`
	Step2Completions  int64            `json:"step2Completions"`
	Step3Reached      int64            `json:"step3Reached"`
	TodayViews        int64            `json:"todayViews"`
	WeekViews         int64            `json:"weekViews"`
	MonthViews        int64            `json:"monthViews"`
	ViewsByDate       []DateBucket     `json:"viewsByDate"`
	Countries         []BreakdownEntry `json:"countries"`
	Devices           []BreakdownEntry `json:"devices"`
	Browsers          []BreakdownEntry `json:"browsers"`
	Referrers         []BreakdownEntry `json:"referrers"`
}

// ResumeAnalyticsReport is the admin dashboard payload for resume traffic.
type ResumeAnalyticsReport struct {
	Period         string           `json:"period"`
	TotalViews     int64            `json:"totalViews"`
	TotalDownloads int64            `json:"totalDownloads"`
	UniqueVisitors int              `json:"uniqueVisitors"`
	ViewsByDate    []DateBucket     `json:"viewsByDate"`
	Countries      []BreakdownEntry `json:"countries"`
	Devices        []BreakdownEntry `json:"devices"`
	Browsers       []BreakdownEntry `json:"browsers"`
	Referrers      []BreakdownEntry `json:"referrers"`
}
