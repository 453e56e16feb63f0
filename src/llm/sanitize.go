package llm

import (
	"regexp"
	"strings"
)

// Completions occasionally leak foreign-script fragments or half-rendered
// HTML attributes. The assistant speaks Korean only, so everything outside
// Hangul/Latin is stripped before the text reaches tool-call parsing.
var (
	classAttrRe = regexp.MustCompile(`class="[^"]*"`)
	classTagRe  = regexp.MustCompile(`<[^>]*class[^>]*>`)
	htmlAttrRe  = regexp.MustCompile(`\s*(?:id|style|class|href|src|alt|title)="[^"]*"\s*`)

	// Han, Hiragana, Katakana, Arabic, Cyrillic.
	foreignScriptRe = regexp.MustCompile(`[\x{4E00}-\x{9FFF}\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{0600}-\x{06FF}\x{0400}-\x{04FF}]+`)
	thaiRe          = regexp.MustCompile(`[\x{0E00}-\x{0E7F}]+`)

	// Whole tokens carrying Vietnamese diacritics, then the remaining known
	// stray words that are plain enough for ASCII word boundaries.
	vietnameseTokenRe = regexp.MustCompile(`[^\s]*[àáảãạăằắẳẵặâầấẩẫậèéẻẽẹêềếểễệìíỉĩịòóỏõọôồốổỗộơờớởỡợùúủũụưừứửữựỳýỷỹỵđ][^\s]*`)
	strayWordRe       = regexp.MustCompile(`\b(?:ayrıca|için|sehr|muito)\b`)

	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// Sanitize strips non-Korean scripts, stray markup attribute fragments and
// known foreign filler words from a completion, then collapses whitespace.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	s := classAttrRe.ReplaceAllString(text, "")
	s = classTagRe.ReplaceAllString(s, "")
	s = htmlAttrRe.ReplaceAllString(s, " ")
	s = foreignScriptRe.ReplaceAllString(s, "")
	s = thaiRe.ReplaceAllString(s, "")
	s = vietnameseTokenRe.ReplaceAllString(s, "")
	s = strayWordRe.ReplaceAllString(s, "")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
