package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// termPattern matches any whitespace-separated term of query, case-insensitively
func termPattern(query string) *regexp.Regexp {
	var quoted []string
	for _, t := range strings.Fields(query) {
		if t = strings.Trim(t, `"*`); t != "" {
			quoted = append(quoted, regexp.QuoteMeta(t))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)(` + strings.Join(quoted, "|") + `)`)
}

// Highlight wraps every occurrence of each query term in start/end markers
func Highlight(text, query, start, end string) string {
	re := termPattern(query)
	if re == nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(m string) string {
		if m == "" {
			return m
		}
		return start + m + end
	})
}

// Snippet returns the text around the first match of query, with up to
// context bytes on each side. Without a match it returns the head of text.
func Snippet(text, query string, context int) string {
	if re := termPattern(query); re != nil {
		if loc := re.FindStringIndex(text); loc != nil && loc[1] > loc[0] {
			from := runeBoundary(text, loc[0]-context)
			to := runeBoundary(text, loc[1]+context)

			var b strings.Builder
			if from > 0 {
				b.WriteString("...")
			}
			b.WriteString(text[from:to])
			if to < len(text) {
				b.WriteString("...")
			}
			return b.String()
		}
	}

	if len(text) > context*2 {
		return text[:runeBoundary(text, context*2)] + "..."
	}
	return text
}

// runeBoundary clamps i into text and moves it back to a rune start
func runeBoundary(text string, i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(text) {
		return len(text)
	}
	for i > 0 && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}
