// Package report renders run summaries and research findings as markdown
// with width-aligned tables.
package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table renders a markdown table with all columns padded to their widest
// cell, so the output is readable both raw and rendered.
func Table(headers []string, rows [][]string) string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}

	widths := make([]int, colCount)

	measure := func(row []string) {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	measure(headers)

	for _, row := range rows {
		measure(row)
	}

	var b strings.Builder

	writeRow := func(row []string) {
		b.WriteString("|")

		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			b.WriteString(" ")
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)))
			b.WriteString(" |")
		}

		b.WriteString("\n")
	}

	writeRow(headers)

	b.WriteString("|")

	for i := 0; i < colCount; i++ {
		b.WriteString(strings.Repeat("-", widths[i]+2))
		b.WriteString("|")
	}

	b.WriteString("\n")

	for _, row := range rows {
		writeRow(row)
	}

	return b.String()
}
