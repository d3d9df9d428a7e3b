package intelligence

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// namePatterns are tried in order against the lowercased message. Each one
// may match anywhere, so "I'm growing rice" captures "growing".
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`my name is ([\p{L}\p{N}_]+)`),
	regexp.MustCompile(`i'm ([\p{L}\p{N}_]+)`),
	regexp.MustCompile(`i am ([\p{L}\p{N}_]+)`),
	regexp.MustCompile(`call me ([\p{L}\p{N}_]+)`),
}

// DetectName returns the capitalized name from a self-introduction.
func DetectName(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, re := range namePatterns {
		if m := re.FindStringSubmatch(lower); m != nil {
			return capitalize(m[1]), true
		}
	}
	return "", false
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
