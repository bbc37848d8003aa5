package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var multiSpaceRE = regexp.MustCompile(`\s+`)

// normaliseInput lowercases raw and keeps letters, digits and decimal points;
// separators collapse to single spaces.
func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-' || r == '_' || r == '/' || r == '\'' || r == ',' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	out := strings.Trim(multiSpaceRE.ReplaceAllString(b.String(), " "), " .")
	return out
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

func parseQuantityToken(token string) *Quantity {
	token = strings.TrimSpace(strings.ToLower(token))
	if token == "" {
		return nil
	}
	if n, err := strconv.Atoi(token); err == nil && n >= 0 {
		return &Quantity{Raw: token, N: n, Unit: "count"}
	}
	if v, ok := trimUnit(token, "hours", "hour", "hrs", "hr", "h"); ok {
		return &Quantity{Raw: token, N: v, Unit: "hours"}
	}
	if v, ok := trimUnit(token, "days", "day", "d"); ok {
		return &Quantity{Raw: token, N: v, Unit: "days"}
	}
	return nil
}

// trimUnit strips the first matching suffix and parses what is left.
func trimUnit(token string, suffixes ...string) (int, bool) {
	for _, suffix := range suffixes {
		if !strings.HasSuffix(token, suffix) {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSuffix(token, suffix))
		if err == nil && v >= 0 {
			return v, true
		}
	}
	return 0, false
}

func isPronoun(token string) bool {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "it", "that", "this", "again":
		return true
	default:
		return false
	}
}

// kindSynonym maps everyday words to a weather kind label.
func kindSynonym(token string) string {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "rain", "storm", "thunder", "lightning", "thunderstorm", "rainstorm":
		return "storm"
	case "snow", "blizzard", "freeze", "snowstorm":
		return "blizzard"
	case "solar", "sun", "surge", "heatwave":
		return "solar surge"
	case "acid", "acidrain":
		return "acid shower"
	default:
		return ""
	}
}
