// AngelaMos | 2026
// csv.go

package ingest

import "strings"

// SplitRecords breaks raw CSV text into lines, accepting both LF and
// CRLF endings and dropping blank lines.
func SplitRecords(text string) []string {
	raw := strings.Split(text, "\n")

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	return lines
}

// ParseLine tokenizes one CSV line. Commas inside double quotes do not
// split, a doubled quote inside a quoted field is a literal quote, and
// every field is trimmed of surrounding whitespace.
func ParseLine(line string) []string {
	fields := []string{}
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}

	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// headerIndex maps lowercased header names to their column positions.
type headerIndex map[string]int

func parseHeader(line string) headerIndex {
	idx := headerIndex{}
	for i, name := range ParseLine(line) {
		idx[strings.ToLower(name)] = i
	}
	return idx
}

func (h headerIndex) has(columns ...string) bool {
	for _, col := range columns {
		if _, ok := h[col]; !ok {
			return false
		}
	}
	return true
}

// field returns the trimmed value of the named column for a parsed row,
// or empty when the column is absent or the row is short.
func (h headerIndex) field(row []string, column string) string {
	i, ok := h[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
