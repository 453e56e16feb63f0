package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "clean korean passes through",
			input:    "오늘은 맑음, 기온 15°C입니다.",
			expected: "오늘은 맑음, 기온 15°C입니다.",
		},
		{
			name:     "han and kana stripped",
			input:    "오늘 날씨는 晴れ 맑음です",
			expected: "오늘 날씨는 맑음",
		},
		{
			name:     "cyrillic and arabic stripped",
			input:    "추천 привет 코디 مرحبا 입니다",
			expected: "추천 코디 입니다",
		},
		{
			name:     "thai stripped",
			input:    "안녕하세요 สวัสดี 고객님",
			expected: "안녕하세요 고객님",
		},
		{
			name:     "html attribute fragments removed",
			input:    `좋은 class="highlight" 선택이에요 style="color:red" 네`,
			expected: "좋은 선택이에요 네",
		},
		{
			name:     "vietnamese tokens removed",
			input:    "이 옷은 rất thật 예뻐요",
			expected: "이 옷은 예뻐요",
		},
		{
			name:     "turkish stray words removed",
			input:    "코트를 ayrıca için 추천해요",
			expected: "코트를 추천해요",
		},
		{
			name:     "whitespace collapsed",
			input:    "추천    코디\n\n입니다",
			expected: "추천 코디 입니다",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input))
		})
	}
}

func TestSanitizeKeepsCallDirective(t *testing.T) {
	// Tool-call parsing happens downstream; the directive must survive.
	got := Sanitize("CALL: searchStyle: 데이트룩 晴")
	assert.Equal(t, "CALL: searchStyle: 데이트룩", got)
}
