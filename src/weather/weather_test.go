package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jihyunk/stylemate/src/geo"
	"github.com/stretchr/testify/assert"
)

type staticResolver struct {
	coords geo.Coordinates
	err    error
}

func (r staticResolver) Resolve(_ context.Context, _ string) (geo.Coordinates, error) {
	return r.coords, r.err
}

func forecastBody(temp, sky, pty string) string {
	return fmt.Sprintf(`{"response":{"body":{"items":{"item":[
		{"category":"TMP","fcstValue":"%s"},
		{"category":"SKY","fcstValue":"%s"},
		{"category":"PTY","fcstValue":"%s"}
	]}}}}`, temp, sky, pty)
}

func TestForecastCacheTTL(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(forecastBody("21", "3", "0")))
	}))
	defer srv.Close()

	clock := time.Date(2025, 5, 10, 12, 0, 0, 0, time.Local)
	svc := NewService(Config{
		APIKey:   "k",
		BaseURL:  srv.URL,
		Resolver: staticResolver{coords: geo.Coordinates{Lat: 37.5663, Lon: 126.9779}},
		Now:      func() time.Time { return clock },
	})

	first := svc.Forecast(context.Background(), "서울시 중구")
	assert.Equal(t, 21.0, first.Temperature)
	assert.Equal(t, "구름많음", first.Sky)
	assert.Equal(t, 1, calls)

	// Same address within the hour hits the cache.
	clock = clock.Add(30 * time.Minute)
	svc.Forecast(context.Background(), "서울시 중구")
	assert.Equal(t, 1, calls)

	// A different address bypasses the cache even inside the TTL.
	svc.Forecast(context.Background(), "부산 해운대구")
	assert.Equal(t, 2, calls)

	// Expired entries are refetched.
	clock = clock.Add(2 * time.Hour)
	svc.Forecast(context.Background(), "부산 해운대구")
	assert.Equal(t, 3, calls)
}

func TestForecastFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	clock := time.Date(2025, 1, 15, 9, 0, 0, 0, time.Local)
	svc := NewService(Config{
		APIKey:  "k",
		BaseURL: srv.URL,
		Now:     func() time.Time { return clock },
	})

	snap := svc.Forecast(context.Background(), "서울")
	assert.True(t, snap.Estimated)
	assert.Equal(t, -2.0, snap.Temperature)
	assert.Equal(t, "맑음", snap.Sky)
	assert.NotEmpty(t, snap.Description)
}

func TestSeasonThresholds(t *testing.T) {
	tests := []struct {
		temp float64
		want string
	}{
		{28, "여름"},
		{24, "여름"},
		{18, "봄,가을"},
		{15, "봄,가을"},
		{10, "봄,가을,겨울"},
		{5, "봄,가을,겨울"},
		{-3, "겨울"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, seasonForTemperature(tt.temp), "temp=%v", tt.temp)
	}
}

func TestForecastAtHour(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(forecastBody("10", "1", "1")))
	}))
	defer srv.Close()

	clock := time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local)
	svc := NewService(Config{
		APIKey:  "k",
		BaseURL: srv.URL,
		Now:     func() time.Time { return clock },
	})

	// 14h target from 08h: warming bucket, drift capped at +5 → 13°C.
	out := svc.ForecastAtHour(context.Background(), "서울", 14)
	assert.Contains(t, out, "14시 예상 날씨")
	assert.Contains(t, out, "13°C")
	assert.Contains(t, out, "비")

	// 23h target: cooling bucket, 15h diff capped at -5 → 5°C, jacket advice.
	out = svc.ForecastAtHour(context.Background(), "서울", 23)
	assert.Contains(t, out, "5°C")
	assert.Contains(t, out, "가디건이나 자켓 추천")
}

func TestPublicationTime(t *testing.T) {
	tests := []struct {
		hour     int
		wantTime string
		prevDay  bool
	}{
		{1, "2300", true},
		{2, "0200", false},
		{4, "0200", false},
		{13, "1100", false},
		{23, "2300", false},
	}
	for _, tt := range tests {
		now := time.Date(2025, 6, 15, tt.hour, 30, 0, 0, time.Local)
		gotDate, gotTime := publicationTime(now)
		assert.Equal(t, tt.wantTime, gotTime, "hour=%d", tt.hour)
		if tt.prevDay {
			assert.Equal(t, "20250614", gotDate)
		} else {
			assert.Equal(t, "20250615", gotDate)
		}
	}
}
