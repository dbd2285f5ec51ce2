package ui

import (
	"strconv"
	"strings"
)

// truncate cuts a string to limit runes, appending an ellipsis when it was
// longer.
func truncate(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}

// pad right-pads a string with spaces to the given rune width.
func pad(value string, width int) string {
	gap := width - len([]rune(value))
	if gap <= 0 {
		return value
	}
	return value + strings.Repeat(" ", gap)
}

// orDash substitutes an em dash placeholder for empty cells, the ledger's
// way of saying "not issued" or "no student".
func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
