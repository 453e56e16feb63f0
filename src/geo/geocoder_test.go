package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"postal code stripped", "(12345) 서울특별시 강남구 테헤란로 123", "서울특별시 강남구 테헤란로 123"},
		{"city abbreviation expanded", "서울 강남구 테헤란로 123", "서울특별시 강남구 테헤란로 123"},
		{"daejeon expanded", "대전 서구 도마동 333-9", "대전광역시 서구 도마동 333-9"},
		{"floor stripped", "서울특별시 강남구 테헤란로 123 5층", "서울특별시 강남구 테헤란로 123"},
		{"building name stripped", "대전광역시 서구 도마동 333-9 아트빌 204호", "대전광역시 서구 도마동 333-9"},
		{"parenthetical stripped", "서울특별시 강남구 테헤란로 123 (역삼역 3번출구)", "서울특별시 강남구 테헤란로 123"},
		{"whitespace collapsed", "서울특별시   강남구  테헤란로 123", "서울특별시 강남구 테헤란로 123"},
		{"apartment block and unit stripped", "서울특별시 강남구 테헤란로 123 101동 202호", "서울특별시 강남구 테헤란로 123"},
		{"lettered block with unit stripped", "대전광역시 서구 둔산로 100 B동 302호", "대전광역시 서구 둔산로 100"},
		{"clean address unchanged", "부산광역시 해운대구 우동 123", "부산광역시 해운대구 우동 123"},
		{"short neighborhood name kept", "대전광역시 유성구 궁동 220", "대전광역시 유성구 궁동 220"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAddress(tt.in))
		})
	}
}

func TestGeocoderResolve(t *testing.T) {
	t.Run("empty address fails fast", func(t *testing.T) {
		g := NewGeocoder(GeocoderConfig{APIKey: "k"})
		_, err := g.Resolve(context.Background(), "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("address search success populates cache under original key", func(t *testing.T) {
		var addressCalls, keywordCalls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case addressSearchPath:
				addressCalls++
				w.Write([]byte(`{"documents":[{"x":"126.9779","y":"37.5663"}]}`))
			case keywordSearchPath:
				keywordCalls++
				w.Write([]byte(`{"documents":[]}`))
			}
		}))
		defer srv.Close()

		g := NewGeocoder(GeocoderConfig{APIKey: "k", BaseURL: srv.URL})
		raw := "(12345) 서울 강남구 테헤란로 123 5층"

		coords, err := g.Resolve(context.Background(), raw)
		require.NoError(t, err)
		assert.InDelta(t, 37.5663, coords.Lat, 1e-9)
		assert.InDelta(t, 126.9779, coords.Lon, 1e-9)
		assert.Equal(t, 1, addressCalls)
		assert.Equal(t, 0, keywordCalls)

		// Second resolve for the same raw address is served from cache.
		_, err = g.Resolve(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, 1, addressCalls)
	})

	t.Run("keyword search fallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case addressSearchPath:
				w.WriteHeader(http.StatusInternalServerError)
			case keywordSearchPath:
				// Keyword search sometimes returns numbers instead of strings.
				w.Write([]byte(`{"documents":[{"x":127.3845,"y":36.3504}]}`))
			}
		}))
		defer srv.Close()

		g := NewGeocoder(GeocoderConfig{APIKey: "k", BaseURL: srv.URL})
		coords, err := g.Resolve(context.Background(), "대전 서구 도마동 아트빌")
		require.NoError(t, err)
		assert.InDelta(t, 36.3504, coords.Lat, 1e-9)
		assert.Equal(t, 1, g.CacheSize())
	})

	t.Run("both endpoints failing returns ErrNotFound", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		g := NewGeocoder(GeocoderConfig{APIKey: "k", BaseURL: srv.URL})
		_, err := g.Resolve(context.Background(), "아무 주소")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 0, g.CacheSize())
	})
}
