package sheet

import (
	"iter"
	"slices"
	"strings"
)

// Rows tokenizes spreadsheet CSV export text into rows of cells.
//
// Quoted cells may contain commas, line breaks (\n, \r or \r\n) and doubled
// quotes. The tokenizer is lenient: unbalanced quotes never cause an error,
// the remaining text is simply read as part of the quoted cell.
func Rows(text string) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		var (
			cell     strings.Builder
			row      []string
			inQuotes bool
		)

		for i := 0; i < len(text); i++ {
			ch := text[i]

			if ch == '"' {
				if inQuotes && i+1 < len(text) && text[i+1] == '"' {
					cell.WriteByte('"')
					i++
					continue
				}
				inQuotes = !inQuotes
				continue
			}

			if inQuotes || (ch != ',' && ch != '\n' && ch != '\r') {
				cell.WriteByte(ch)
				continue
			}

			row = append(row, cell.String())
			cell.Reset()
			if ch == ',' {
				continue
			}

			if ch == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			if !yield(row) {
				return
			}
			row = nil
		}

		// trailing partial cell / row
		if cell.Len() > 0 || inQuotes {
			row = append(row, cell.String())
		}
		if len(row) > 0 {
			yield(row)
		}
	}
}

// Parse collects every row produced by Rows.
func Parse(text string) [][]string {
	return slices.Collect(Rows(text))
}
