package agents

import (
	"regexp"
	"strings"
)

var (
	profileHandlePattern = regexp.MustCompile(`@([^/?]+)`)

	videoURLPatterns = []*regexp.Regexp{
		regexp.MustCompile(`tiktok\.com/@[\w.-]+/video/\d+`),
		regexp.MustCompile(`vm\.tiktok\.com/\w+`),
		regexp.MustCompile(`vt\.tiktok\.com/\w+`),
	}
)

// NormalizeTikTokHandle turns "@name", "name" or a profile URL into "name".
func NormalizeTikTokHandle(input string) string {
	s := strings.TrimSpace(input)
	if strings.Contains(s, "tiktok.com") {
		if m := profileHandlePattern.FindStringSubmatch(s); m != nil {
			return m[1]
		}
		return s
	}
	return strings.TrimPrefix(s, "@")
}

// IsValidTikTokURL accepts full video URLs and the vm./vt. short links.
func IsValidTikTokURL(u string) bool {
	for _, p := range videoURLPatterns {
		if p.MatchString(u) {
			return true
		}
	}
	return false
}
