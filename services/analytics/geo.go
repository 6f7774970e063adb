// File: services/analytics/geo.go
package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"portfolio/models"
)

const (
	geoCacheKeyPrefix = "geo:"
	geoCacheTTL       = 24 * time.Hour
	geoLookupTimeout  = 3 * time.Second
)

// GeoResolver enriches an IP address with location data. A nil result with a
// nil error means the IP is not resolvable (private, localhost, unknown).
type GeoResolver interface {
	Resolve(ctx context.Context, ip string) (*models.GeoInfo, error)
}

// IPInfoResolver resolves against ipinfo.io with a Redis read-through cache.
// Lookups are best-effort; failures never block the tracking write.
type IPInfoResolver struct {
	HTTPClient *http.Client
	Cache      *redis.Client
	Logger     *zap.Logger
}

func NewIPInfoResolver(cache *redis.Client, logger *zap.Logger) *IPInfoResolver {
	return &IPInfoResolver{
		HTTPClient: &http.Client{Timeout: geoLookupTimeout},
		Cache:      cache,
		Logger:     logger,
	}
}

// ipinfoResponse mirrors the ipinfo.io JSON body. The loc field packs
// latitude and longitude as "lat,lon".
type ipinfoResponse struct {
	Country  string `json:"country"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Timezone string `json:"timezone"`
	Loc      string `json:"loc"`
	Org      string `json:"org"`
	Postal   string `json:"postal"`
}

func (r *IPInfoResolver) Resolve(ctx context.Context, ip string) (*models.GeoInfo, error) {
	if !resolvableIP(ip) {
		return nil, nil
	}

	if cached := r.fromCache(ctx, ip); cached != nil {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("https://ipinfo.io/%s/json", ip), nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geolocation lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation lookup failed: status %d", resp.StatusCode)
	}

	var body ipinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("geolocation decode failed: %w", err)
	}

	lat, lon := parseLoc(body.Loc)
	info := &models.GeoInfo{
		Country:     body.Country,
		CountryCode: body.Country,
		City:        body.City,
		Region:      body.Region,
		Timezone:    body.Timezone,
		Latitude:    lat,
		Longitude:   lon,
		Org:         body.Org,
		Postal:      body.Postal,
	}

	r.toCache(ctx, ip, info)
	return info, nil
}

func (r *IPInfoResolver) fromCache(ctx context.Context, ip string) *models.GeoInfo {
	if r.Cache == nil {
		return nil
	}
	raw, err := r.Cache.Get(ctx, geoCacheKeyPrefix+ip).Result()
	if err != nil {
		return nil
	}
	var info models.GeoInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil
	}
	return &info
}

func (r *IPInfoResolver) toCache(ctx context.Context, ip string, info *models.GeoInfo) {
	if r.Cache == nil {
		return
	}
	b, err := json.Marshal(info)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, geoCacheKeyPrefix+ip, b, geoCacheTTL).Err(); err != nil {
		r.Logger.Debug("geo cache write failed", zap.String("ip", ip), zap.Error(err))
	}
}

// resolvableIP rejects addresses ipinfo.io cannot locate: empty, localhost,
// and private ranges.
func resolvableIP(ip string) bool {
	if ip == "" || ip == "unknown" || ip == "localhost" {
		return false
	}
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return false
	}
	return !parsed.IsLoopback() && !parsed.IsPrivate() && !parsed.IsUnspecified()
}

func parseLoc(loc string) (float64, float64) {
	parts := strings.SplitN(loc, ",", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	return lat, lon
}
