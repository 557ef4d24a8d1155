package selection

import (
	"regexp"
	"strings"
)

// newMatcher compiles a name pattern into a predicate over full
// hierarchical test names.
func newMatcher(pattern string, regex bool) (func(name string) bool, error) {
	if regex {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return nil, err
		}
		return re.MatchString, nil
	}
	return func(name string) bool {
		return matchExpr(pattern, name)
	}, nil
}

// matchExpr evaluates the boolean pattern grammar against a name.
// Operators bind loosest first: "a or b and c" splits on " and " into
// ("a or b", "c"), both of which must match. Splitting is purely
// textual, so operator-like substrings inside a plain name pattern can
// misparse; there is no quoting or parenthesization.
func matchExpr(pattern, name string) bool {
	pattern = strings.TrimSpace(pattern)

	if parts := splitToken(pattern, " and "); len(parts) > 1 {
		for _, part := range parts {
			if !matchExpr(part, name) {
				return false
			}
		}
		return true
	}

	if parts := splitToken(pattern, " or "); len(parts) > 1 {
		for _, part := range parts {
			if matchExpr(part, name) {
				return true
			}
		}
		return false
	}

	if rest, ok := cutPrefixFold(pattern, "not "); ok {
		return !matchExpr(rest, name)
	}

	return strings.Contains(strings.ToLower(name), strings.ToLower(pattern))
}

// splitToken splits s on every case-insensitive occurrence of token,
// trimming surrounding whitespace from the parts.
func splitToken(s, token string) []string {
	lower := strings.ToLower(s)
	token = strings.ToLower(token)

	var parts []string
	start := 0
	for {
		i := strings.Index(lower[start:], token)
		if i < 0 {
			break
		}
		i += start
		parts = append(parts, strings.TrimSpace(s[start:i]))
		start = i + len(token)
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
