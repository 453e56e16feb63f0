package geo

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultGeocoderBaseURL = "https://dapi.kakao.com"
	defaultGeocoderTimeout = 10 * time.Second

	addressSearchPath = "/v2/local/search/address.json"
	keywordSearchPath = "/v2/local/search/keyword.json"
)

// ErrNotFound is returned when neither the structured address search nor the
// keyword search resolves the address. Callers fall back to DefaultGrid.
var ErrNotFound = errors.New("geo: address not found")

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64
	Lon float64
}

// GeocoderConfig holds configuration for the Kakao geocoding client.
type GeocoderConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Logger  *slog.Logger
}

// Geocoder resolves free-text Korean addresses to coordinates. Results are
// cached permanently keyed by the raw address string; addresses don't move.
type Geocoder struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	apiKey     string

	mu    sync.RWMutex
	cache map[string]Coordinates
}

// NewGeocoder creates a geocoder backed by the Kakao local search API.
func NewGeocoder(cfg GeocoderConfig) *Geocoder {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGeocoderBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultGeocoderTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Geocoder{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("component", "geocoder"),
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		cache:      make(map[string]Coordinates),
	}
}

// Resolve converts an address to coordinates. The structured address search
// endpoint is tried first, then the keyword/POI search with the same
// normalized string. Network and parse failures are treated the same as "no
// results"; the only error returned is ErrNotFound.
func (g *Geocoder) Resolve(ctx context.Context, address string) (Coordinates, error) {
	if address == "" {
		return Coordinates{}, ErrNotFound
	}

	g.mu.RLock()
	cached, ok := g.cache[address]
	g.mu.RUnlock()
	if ok {
		return cached, nil
	}

	normalized := NormalizeAddress(address)

	coords, ok := g.search(ctx, addressSearchPath, normalized)
	if !ok {
		g.logger.Debug("address search empty, trying keyword search", "address", normalized)
		coords, ok = g.search(ctx, keywordSearchPath, normalized)
	}
	if !ok {
		g.logger.Warn("geocoding failed on both endpoints", "address", address)
		return Coordinates{}, ErrNotFound
	}

	// Cache under the original key so repeat lookups skip normalization too.
	g.mu.Lock()
	g.cache[address] = coords
	g.mu.Unlock()

	g.logger.Info("address resolved", "address", normalized, "lat", coords.Lat, "lon", coords.Lon)
	return coords, nil
}

type kakaoDocument struct {
	X json.Number `json:"x"`
	Y json.Number `json:"y"`
}

type kakaoResponse struct {
	Documents []kakaoDocument `json:"documents"`
}

func (g *Geocoder) search(ctx context.Context, path, query string) (Coordinates, bool) {
	reqURL := g.baseURL + path + "?query=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Coordinates{}, false
	}
	req.Header.Set("Authorization", "KakaoAK "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Debug("geocoding request failed", "path", path, "error", err)
		return Coordinates{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Debug("geocoding non-OK response", "path", path, "status_code", resp.StatusCode)
		return Coordinates{}, false
	}

	var body kakaoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		g.logger.Debug("geocoding response decode failed", "path", path, "error", err)
		return Coordinates{}, false
	}
	if len(body.Documents) == 0 {
		return Coordinates{}, false
	}

	first := body.Documents[0]
	lon, errX := strconv.ParseFloat(first.X.String(), 64)
	lat, errY := strconv.ParseFloat(first.Y.String(), 64)
	if errX != nil || errY != nil {
		return Coordinates{}, false
	}
	return Coordinates{Lat: lat, Lon: lon}, true
}

// CacheSize reports how many addresses have been resolved so far.
func (g *Geocoder) CacheSize() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.cache)
}

var (
	postalCodeRe   = regexp.MustCompile(`^\s*\(\d{5}\)\s*|^\s*\(\d{3}-\d{3}\)\s*`)
	floorRe        = regexp.MustCompile(`\s*(지하)?\s*B?\d+층.*$`)
	unitRe         = regexp.MustCompile(`\s+\d+-?\d*호.*$`)
	buildingRe     = regexp.MustCompile(`(\d+-?\d*)\s+[가-힣A-Za-z]+(?:빌딩|빌|타워|오피스텔|오피스|센터|아파트|상가|프라자|플라자|몰|팰리스|파크|스퀘어|하우스|코아|맨션|빌라|주택).*$`)
	// Apartment block shapes only: the 동 needs digits in front of it (101동)
	// or a 호 tail (B동 302호), so neighborhood names ending in 동 (우동,
	// 궁동) survive.
	blockUnitRe    = regexp.MustCompile(`\s+(?:[가-힣A-Za-z]?\d+동(?:\s*\d+호)?|[가-힣A-Za-z]동\s*\d+호).*$`)
	parentheticRe  = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
	cityExpansions = []struct{ short, full string }{
		{"서울 ", "서울특별시 "},
		{"부산 ", "부산광역시 "},
		{"대구 ", "대구광역시 "},
		{"인천 ", "인천광역시 "},
		{"광주 ", "광주광역시 "},
		{"대전 ", "대전광역시 "},
		{"울산 ", "울산광역시 "},
		{"세종 ", "세종특별자치시 "},
		{"제주 ", "제주특별자치도 "},
	}
)

// NormalizeAddress strips postal codes, floor/unit/building suffixes and
// parenthesized fragments, and expands abbreviated city names to the
// canonical forms the search API recognizes best.
func NormalizeAddress(address string) string {
	cleaned := postalCodeRe.ReplaceAllString(address, "")

	for _, exp := range cityExpansions {
		if strings.HasPrefix(cleaned, exp.short) {
			cleaned = exp.full + strings.TrimPrefix(cleaned, exp.short)
			break
		}
	}

	cleaned = floorRe.ReplaceAllString(cleaned, "")
	// Before unitRe so a lettered block keeps its 호 tail for matching.
	cleaned = blockUnitRe.ReplaceAllString(cleaned, "")
	cleaned = unitRe.ReplaceAllString(cleaned, "")
	cleaned = buildingRe.ReplaceAllString(cleaned, "$1")
	cleaned = parentheticRe.ReplaceAllString(cleaned, " ")
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")

	return strings.TrimSpace(cleaned)
}
