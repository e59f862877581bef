package csvfile

import (
	"fmt"
	"strings"
)

// FormatError marks a structurally corrupt line: a field without its
// opening quote, an unterminated quoted field, or junk between fields.
// It means the file itself is damaged, as opposed to a ParseError.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string {
	return "malformed csv line: " + e.Msg
}

// ParseError marks a row that decoded cleanly but carries a field
// value this domain cannot accept (unknown enum, bad date, negative
// amount). Loaders skip such rows with a warning instead of aborting.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bad %s: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EncodeLine renders one record as a comma-delimited line with every
// field wrapped in double quotes and embedded quotes doubled.
func EncodeLine(fields []string) string {
	var sb strings.Builder
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(f, `"`, `""`))
		sb.WriteByte('"')
	}
	return sb.String()
}

// DecodeLine is the exact inverse of EncodeLine for any field content,
// including embedded commas, quotes and empty strings. A line that
// does not follow the always-quoted format fails with a *FormatError.
func DecodeLine(line string) ([]string, error) {
	var fields []string
	i := 0
	for {
		if i >= len(line) || line[i] != '"' {
			return nil, &FormatError{Msg: fmt.Sprintf("expected opening quote at column %d", i+1)}
		}
		i++

		var cur strings.Builder
		closed := false
		for i < len(line) {
			c := line[i]
			if c == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					cur.WriteByte('"')
					i += 2
					continue
				}
				closed = true
				i++
				break
			}
			cur.WriteByte(c)
			i++
		}
		if !closed {
			return nil, &FormatError{Msg: "unterminated quoted field"}
		}

		fields = append(fields, cur.String())

		if i == len(line) {
			return fields, nil
		}
		if line[i] != ',' {
			return nil, &FormatError{Msg: fmt.Sprintf("unexpected character %q after closing quote at column %d", line[i], i+1)}
		}
		i++
	}
}
