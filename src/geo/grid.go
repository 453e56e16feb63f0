// Package geo converts free-text Korean addresses into the discrete
// forecast grid used by the KMA short-term forecast service.
package geo

import (
	"math"
	"strings"
)

// Lambert conformal conic parameters for the KMA 5km forecast grid.
const (
	earthRadiusKm = 6371.00877
	gridSpacingKm = 5.0
	stdParallel1  = 30.0
	stdParallel2  = 60.0
	originLon     = 126.0
	originLat     = 38.0
	originX       = 43.0
	originY       = 136.0
)

// GridCell is a discrete (nx, ny) coordinate on the forecast grid.
type GridCell struct {
	NX int
	NY int
}

// ToGrid projects latitude/longitude onto the forecast grid. The rounding
// (floor(x+0.5)) must not change: the forecast provider indexes cells by
// exactly these values.
func ToGrid(lat, lon float64) GridCell {
	const degrad = math.Pi / 180.0

	re := earthRadiusKm / gridSpacingKm
	slat1 := stdParallel1 * degrad
	slat2 := stdParallel2 * degrad
	olon := originLon * degrad
	olat := originLat * degrad

	sn := math.Tan(math.Pi*0.25+slat2*0.5) / math.Tan(math.Pi*0.25+slat1*0.5)
	sn = math.Log(math.Cos(slat1)/math.Cos(slat2)) / math.Log(sn)

	sf := math.Tan(math.Pi*0.25 + slat1*0.5)
	sf = math.Pow(sf, sn) * math.Cos(slat1) / sn

	ro := math.Tan(math.Pi*0.25 + olat*0.5)
	ro = re * sf / math.Pow(ro, sn)

	ra := math.Tan(math.Pi*0.25 + lat*degrad*0.5)
	ra = re * sf / math.Pow(ra, sn)

	theta := lon*degrad - olon
	if theta > math.Pi {
		theta -= 2.0 * math.Pi
	}
	if theta < -math.Pi {
		theta += 2.0 * math.Pi
	}
	theta *= sn

	return GridCell{
		NX: int(math.Floor(ra*math.Sin(theta) + originX + 0.5)),
		NY: int(math.Floor(ro - ra*math.Cos(theta) + originY + 0.5)),
	}
}

// seoulCell is the capital-city fallback when nothing in the address matches.
var seoulCell = GridCell{NX: 60, NY: 127}

// defaultCells maps address substrings to pre-computed grid cells. Ordered
// most-specific first; the first matching entry wins.
var defaultCells = []struct {
	substrings []string
	cell       GridCell
}{
	// Daejeon districts and neighborhoods.
	{[]string{"둔산동", "둔산", "도마동", "도마", "월평동", "월평", "탄방동", "탄방", "용문동", "용문", "대전 서구", "대전서구"}, GridCell{67, 100}},
	{[]string{"은행동", "대흥동", "선화동", "대전 중구", "대전중구"}, GridCell{68, 100}},
	{[]string{"판암동", "신흥동", "대동", "대전 동구", "대전동구"}, GridCell{68, 99}},
	{[]string{"봉명동", "궁동", "어은동", "대전 유성구", "대전유성구", "유성"}, GridCell{67, 101}},
	{[]string{"신탄진", "오정동", "법동", "대전 대덕구", "대전대덕구"}, GridCell{68, 102}},
	// Metro cities and provinces.
	{[]string{"서울"}, seoulCell},
	{[]string{"부산"}, GridCell{98, 76}},
	{[]string{"대전"}, GridCell{67, 100}},
	{[]string{"대구"}, GridCell{89, 90}},
	{[]string{"인천"}, GridCell{55, 124}},
	{[]string{"광주"}, GridCell{58, 74}},
	{[]string{"울산"}, GridCell{102, 84}},
	{[]string{"세종"}, GridCell{66, 103}},
	{[]string{"수원"}, GridCell{60, 121}},
	{[]string{"전주"}, GridCell{63, 89}},
	{[]string{"청주"}, GridCell{69, 107}},
	{[]string{"제주"}, GridCell{52, 38}},
}

// DefaultGrid looks up a pre-computed grid cell for known city and district
// names inside the address. Used when geocoding fails; falls back to Seoul.
func DefaultGrid(address string) GridCell {
	addr := strings.TrimSpace(address)
	if addr == "" {
		return seoulCell
	}
	for _, entry := range defaultCells {
		for _, sub := range entry.substrings {
			if strings.Contains(addr, sub) {
				return entry.cell
			}
		}
	}
	return seoulCell
}
