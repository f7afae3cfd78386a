package domain

import "strings"

// Row is one parsed CSV data line: a column-name-to-raw-value mapping.
// Every row carries an entry for every header, even when the physical line
// was shorter. Rows are built once per parse and never mutated afterwards.
type Row map[string]string

// Parse turns raw delimited text into one Row per data line.
//
// The first line is the header; each subsequent line pairs the i-th header
// with the i-th comma-separated value. Splitting is deliberately quote-free
// (see the package comment): a field containing a literal comma is mis-split.
// Short lines pad missing values with empty strings, extra values are
// dropped, and all headers and values are trimmed. Parse never fails; a
// header-only or empty input yields no rows.
func Parse(text string) []Row {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	headers := strings.Split(lines[0], ",")
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := strings.Split(line, ",")
		row := make(Row, len(headers))
		for i, header := range headers {
			if i < len(values) {
				row[header] = strings.TrimSpace(values[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}
