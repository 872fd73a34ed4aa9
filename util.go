package leczair

import (
	"strings"
	"unicode/utf8"
)

const (
	RecursionLimit = 1000
)

// splitByLen cuts line into pieces of at most limit bytes, preferring spaces
// and never splitting a UTF-8 sequence. A leading colour code is repeated on
// every piece.
func splitByLen(line string, limit int, depth uint) (result []string) {
	var color = NoColor
	depth++
	if depth == RecursionLimit {
		return
	}
	if limit <= 0 || len(line) == 0 {
		return
	}
	line = strings.TrimSpace(line)
	if len(line) >= 3 && line[:1] == ColorTag {
		color = lookupColor(line[1:3])
		if limit < 3 {
			return
		}
		limit -= 2
	}
	if len(line) <= limit {
		return append(result, line)
	}
	i := strings.LastIndex(line[:limit], " ")
	if i <= 0 {
		i = runeBoundary(line, limit)
	}
	result = append(result, line[:i])
	subline := strings.TrimSpace(line[i:])
	if color != NoColor {
		subline = ColorTag + color.String() + subline
		limit += 2
	}
	if len(subline) > limit {
		result = append(result, splitByLen(subline, limit, depth)...)
	} else {
		result = append(result, subline)
	}
	return
}

// runeBoundary returns the largest index <= limit that starts a rune.
func runeBoundary(line string, limit int) int {
	i := limit
	for i > 0 && !utf8.RuneStart(line[i]) {
		i--
	}
	if i == 0 {
		return limit
	}
	return i
}

func pop(line string, separator string) (string, string) {
	splitted := strings.SplitN(line, separator, 2)
	if len(splitted) == 2 {
		return splitted[0], splitted[1]
	}
	return splitted[0], ""
}
