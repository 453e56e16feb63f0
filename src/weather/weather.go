// Package weather fetches short-term forecasts from the KMA village
// forecast service, with a per-address cache and a seasonal estimate
// fallback so callers always get some weather to reason about.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jihyunk/stylemate/src/geo"
)

const (
	defaultBaseURL  = "http://apis.data.go.kr/1360000/VilageFcstInfoService_2.0"
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = time.Hour
)

// Snapshot is one forecast observation for a grid cell.
type Snapshot struct {
	Grid          geo.GridCell
	Temperature   float64
	Sky           string
	Precipitation string
	Description   string
	Estimated     bool // true when the provider was unreachable
}

// AddressResolver resolves an address to coordinates. Satisfied by
// *geo.Geocoder.
type AddressResolver interface {
	Resolve(ctx context.Context, address string) (geo.Coordinates, error)
}

// Config holds configuration for the weather service.
type Config struct {
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
	Logger   *slog.Logger
	Resolver AddressResolver
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// Service queries the forecast provider. One snapshot is cached per service,
// keyed by the literal address string, for CacheTTL.
type Service struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	apiKey     string
	cacheTTL   time.Duration
	resolver   AddressResolver
	now        func() time.Time

	mu            sync.Mutex
	cached        *Snapshot
	cachedAddress string
	cachedAt      time.Time
}

// NewService creates a weather service.
func NewService(cfg Config) *Service {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("component", "weather"),
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		cacheTTL:   cfg.CacheTTL,
		resolver:   cfg.Resolver,
		now:        cfg.Now,
	}
}

// Forecast returns the current snapshot for an address. It never fails: on
// provider errors a month-of-year estimate is returned instead.
func (s *Service) Forecast(ctx context.Context, address string) Snapshot {
	s.mu.Lock()
	if s.cached != nil && s.cachedAddress == address && s.now().Sub(s.cachedAt) < s.cacheTTL {
		snap := *s.cached
		s.mu.Unlock()
		s.logger.Debug("weather cache hit", "address", address)
		return snap
	}
	s.mu.Unlock()

	cell := s.resolveGrid(ctx, address)

	snap, err := s.fetch(ctx, cell)
	if err != nil {
		s.logger.Warn("forecast fetch failed, using seasonal estimate", "error", err)
		return s.fallback()
	}

	s.mu.Lock()
	s.cached = &snap
	s.cachedAddress = address
	s.cachedAt = s.now()
	s.mu.Unlock()

	return snap
}

// Season maps the current forecast temperature to season labels. The middle
// bands intentionally cover several labels to keep downstream filtering
// lenient.
func (s *Service) Season(ctx context.Context, address string) string {
	return seasonForTemperature(s.Forecast(ctx, address).Temperature)
}

func seasonForTemperature(temp float64) string {
	switch {
	case temp >= 24:
		return "여름"
	case temp >= 15:
		return "봄,가을"
	case temp >= 5:
		return "봄,가을,겨울"
	default:
		return "겨울"
	}
}

// ForecastAtHour estimates the weather at a target hour by applying a simple
// time-of-day temperature drift to the current snapshot, and appends
// clothing advice for extreme temperatures.
func (s *Service) ForecastAtHour(ctx context.Context, address string, targetHour int) string {
	snap := s.Forecast(ctx, address)

	hourDiff := targetHour - s.now().Hour()
	if hourDiff < 0 {
		hourDiff += 24 // next day
	}

	var drift float64
	switch {
	case targetHour >= 6 && targetHour <= 14:
		drift = min(float64(hourDiff)*0.5, 5)
	case targetHour >= 15 && targetHour <= 20:
		drift = -min(float64(hourDiff)*0.3, 3)
	default:
		drift = -min(float64(hourDiff)*0.5, 5)
	}

	estimated := snap.Temperature + drift

	out := fmt.Sprintf("%02d시 예상 날씨: %.0f°C, %s", targetHour, estimated, snap.Sky)
	if snap.Precipitation != "없음" {
		out += ", " + snap.Precipitation
	}
	switch {
	case estimated < 5:
		out += " (두꺼운 외투 필수!)"
	case estimated < 12:
		out += " (가디건이나 자켓 추천)"
	case estimated > 28:
		out += " (시원한 옷 추천)"
	}
	return out
}

func (s *Service) resolveGrid(ctx context.Context, address string) geo.GridCell {
	if address == "" || s.resolver == nil {
		return geo.DefaultGrid(address)
	}
	coords, err := s.resolver.Resolve(ctx, address)
	if err != nil {
		return geo.DefaultGrid(address)
	}
	return geo.ToGrid(coords.Lat, coords.Lon)
}

type forecastItem struct {
	Category      string `json:"category"`
	ForecastValue string `json:"fcstValue"`
}

type forecastResponse struct {
	Response struct {
		Body struct {
			Items struct {
				Item []forecastItem `json:"item"`
			} `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

func (s *Service) fetch(ctx context.Context, cell geo.GridCell) (Snapshot, error) {
	baseDate, baseTime := publicationTime(s.now())

	url := fmt.Sprintf(
		"%s/getVilageFcst?serviceKey=%s&numOfRows=50&pageNo=1&dataType=JSON&base_date=%s&base_time=%s&nx=%d&ny=%d",
		s.baseURL, s.apiKey, baseDate, baseTime, cell.NX, cell.NY)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to create request: %w", err)
	}

	s.logger.Debug("fetching forecast", "nx", cell.NX, "ny", cell.NY, "base_date", baseDate, "base_time", baseTime)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("forecast provider returned status %d", resp.StatusCode)
	}

	var body forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode forecast response: %w", err)
	}

	snap := Snapshot{
		Grid:          cell,
		Temperature:   15, // provider default when TMP is absent
		Sky:           "맑음",
		Precipitation: "없음",
	}
	for _, item := range body.Response.Body.Items.Item {
		switch item.Category {
		case "TMP":
			fmt.Sscanf(item.ForecastValue, "%f", &snap.Temperature)
		case "SKY":
			snap.Sky = parseSky(item.ForecastValue)
		case "PTY":
			snap.Precipitation = parsePrecipitation(item.ForecastValue)
		}
	}
	snap.Description = describe(snap)

	s.logger.Info("forecast fetched", "description", snap.Description)
	return snap, nil
}

// publicationTime picks the most recent forecast publication the provider
// supports. Publications happen at 02/05/08/11/14/17/20/23; before 02:00
// the previous day's 23:00 publication is the latest available.
func publicationTime(now time.Time) (baseDate, baseTime string) {
	if now.Hour() < 2 {
		return now.AddDate(0, 0, -1).Format("20060102"), "2300"
	}
	for _, h := range []int{23, 20, 17, 14, 11, 8, 5, 2} {
		if now.Hour() >= h {
			return now.Format("20060102"), fmt.Sprintf("%02d00", h)
		}
	}
	return now.AddDate(0, 0, -1).Format("20060102"), "2300"
}

func parseSky(code string) string {
	switch code {
	case "1":
		return "맑음"
	case "3":
		return "구름많음"
	case "4":
		return "흐림"
	default:
		return "맑음"
	}
}

func parsePrecipitation(code string) string {
	switch code {
	case "1":
		return "비"
	case "2":
		return "비/눈"
	case "3":
		return "눈"
	case "4":
		return "소나기"
	default:
		return "없음"
	}
}

func describe(snap Snapshot) string {
	out := snap.Sky
	if snap.Precipitation != "없음" {
		out += ", " + snap.Precipitation + " 예보"
	}
	return fmt.Sprintf("%s, %d°C", out, int(snap.Temperature))
}

// fallback builds a plausible snapshot from monthly averages around Seoul.
func (s *Service) fallback() Snapshot {
	snap := Snapshot{
		Grid:          geo.GridCell{NX: 60, NY: 127},
		Sky:           "맑음",
		Precipitation: "없음",
		Estimated:     true,
	}
	switch s.now().Month() {
	case time.December, time.January, time.February:
		snap.Temperature = -2
	case time.March, time.April:
		snap.Temperature = 12
	case time.May, time.June:
		snap.Temperature = 22
	case time.July, time.August:
		snap.Temperature = 28
		snap.Sky = "구름많음"
	case time.September, time.October:
		snap.Temperature = 18
	case time.November:
		snap.Temperature = 8
	default:
		snap.Temperature = 15
	}
	snap.Description = describe(snap)
	return snap
}
