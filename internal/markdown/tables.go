package markdown

import (
	"regexp"
	"strings"
)

const maxTableRows = 50

var columnGap = regexp.MustCompile(`\s{2,}`)

// Tabulate turns runs of space-aligned lines into markdown tables. A run needs at least two
// consecutive lines that split into the same number (two or more) of columns on gaps of two or
// more spaces; the first line becomes the header row.
func Tabulate(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		rows := columnRun(lines[i:])
		if len(rows) < 2 {
			out = append(out, lines[i])
			i++
			continue
		}
		out = append(out, renderTable(rows)...)
		i += len(rows)
	}
	return strings.Join(out, "\n")
}

func columnRun(lines []string) [][]string {
	var rows [][]string
	for _, ln := range lines {
		if strings.TrimSpace(ln) == "" || len(rows) == maxTableRows {
			break
		}
		cells := splitColumns(ln)
		if len(cells) < 2 || (len(rows) > 0 && len(cells) != len(rows[0])) {
			break
		}
		rows = append(rows, cells)
	}
	return rows
}

func renderTable(rows [][]string) []string {
	sep := make([]string, len(rows[0]))
	for i := range sep {
		sep[i] = "---"
	}
	out := make([]string, 0, len(rows)+1)
	out = append(out, tableRow(rows[0]), tableRow(sep))
	for _, r := range rows[1:] {
		out = append(out, tableRow(r))
	}
	return out
}

func tableRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

func splitColumns(s string) []string {
	cells := columnGap.Split(strings.TrimSpace(s), -1)
	for i, c := range cells {
		cells[i] = strings.ReplaceAll(strings.TrimSpace(c), "|", `\|`)
	}
	return cells
}
