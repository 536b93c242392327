package cli

import (
	"strings"

	"golang.org/x/text/width"
)

// displayWidth は文字列の端末上の表示幅を返す
func displayWidth(s string) int {
	w := 0
	for _, ch := range s {
		switch width.LookupRune(ch).Kind() {
		case width.EastAsianFullwidth, width.EastAsianWide:
			w += 2
		default:
			w++
		}
	}
	return w
}

// renderTable は各列を表示幅で揃えた表を作る。最終列は詰めない
func renderTable(rows [][]string) string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			b.WriteString(cell)
			if i == len(row)-1 {
				break
			}
			b.WriteString(strings.Repeat(" ", widths[i]-displayWidth(cell)+2))
		}
		b.WriteString("\n")
	}
	return b.String()
}
