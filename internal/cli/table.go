// Package cli table helpers for human-readable output.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"
)

const (
	tablePadding = 2

	// cellLimit caps selector and text columns so one long alternative list
	// cannot push a row past a typical terminal width.
	cellLimit = 40
)

func writeTable(out io.Writer, headers []string, rows [][]string) error {
	writer := tabwriter.NewWriter(out, 0, 0, tablePadding, ' ', 0)
	if len(headers) > 0 {
		fmt.Fprintln(writer, strings.Join(headers, "\t"))
	}
	for _, row := range rows {
		fmt.Fprintln(writer, strings.Join(row, "\t"))
	}
	return writer.Flush()
}

// clip shortens a cell to the column limit, marking the cut with an ellipsis.
func clip(value string) string {
	if utf8.RuneCountInString(value) <= cellLimit {
		return value
	}
	runes := []rune(value)
	return string(runes[:cellLimit-1]) + "…"
}

func formatYesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
