package ui

import (
	"strconv"
	"strings"
)

// barUnit is the number of cells drawn per record in a bucket. The bar is a
// fixed linear function of the count; there is no axis scaling, so a very
// busy date simply draws a long bar.
const barUnit = 2

// renderHistogram renders the issue-date histogram as horizontal bars, one
// per date, oldest first.
func (m Model) renderHistogram() string {
	styles := m.theme.Styles()
	buckets := m.library.ledger.Histogram()
	if len(buckets) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("  " + styles.AccentText.Render("Issues by date"))
	b.WriteString("\n")
	for _, bucket := range buckets {
		bar := strings.Repeat("█", bucket.Count*barUnit)
		b.WriteString("  ")
		b.WriteString(styles.MutedText.Render(pad(bucket.Date, 10)))
		b.WriteString("  ")
		b.WriteString(styles.Bar.Render(bar))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(strconv.Itoa(bucket.Count)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
