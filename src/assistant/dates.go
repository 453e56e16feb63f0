package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	monthDayRe = regexp.MustCompile(`(\d{1,2})월\s*(\d{1,2})일`)
	dayOnlyRe  = regexp.MustCompile(`(\d{1,2})일`)
)

// extractDate pulls a calendar date out of a Korean message: "12월 31일",
// a bare "31일" (current month), or the relative words 오늘/내일/모레. Relative
// words win over digits. Returns YYYY-MM-DD and whether anything matched.
func extractDate(message string, now time.Time) (string, bool) {
	year, month := now.Year(), int(now.Month())
	day := -1

	if m := monthDayRe.FindStringSubmatch(message); m != nil {
		month, _ = strconv.Atoi(m[1])
		day, _ = strconv.Atoi(m[2])
	} else if m := dayOnlyRe.FindStringSubmatch(message); m != nil {
		day, _ = strconv.Atoi(m[1])
	}

	switch {
	case strings.Contains(message, "내일"):
		return now.AddDate(0, 0, 1).Format("2006-01-02"), true
	case strings.Contains(message, "모레"):
		return now.AddDate(0, 0, 2).Format("2006-01-02"), true
	case strings.Contains(message, "오늘"):
		return now.Format("2006-01-02"), true
	}

	if day > 0 && day <= 31 && month >= 1 && month <= 12 {
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
	}
	return "", false
}
