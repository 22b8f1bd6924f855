package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Quote characters the source spreadsheets use inconsistently around
// Hebrew strings: straight, curly and gershayim.
const quoteChars = "\"'“”״׳"

// Number turns a ragged spreadsheet cell into a float. Thousands
// separators and whitespace are stripped and a trailing minus sign is
// relocated to the front. Empty or unparseable input yields 0.
func Number(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.Trim(s, quoteChars)
	if strings.HasSuffix(s, "-") {
		s = "-" + strings.TrimSuffix(s, "-")
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val
}

// String strips quote characters and surrounding whitespace. Every
// equality comparison between a scope value and a dataset field must go
// through it first.
func String(raw string) string {
	s := strings.TrimSpace(raw)
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(quoteChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Equal compares two values after canonicalization.
func Equal(a, b string) bool {
	return String(a) == String(b)
}

// ID canonicalizes a budget line identifier. Spreadsheet exports encode
// large numeric ids in scientific notation; those are rounded to the
// nearest integer and rendered as a plain decimal string so they match
// the baseline dataset's representation. Anything else is just trimmed.
func ID(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.Contains(strings.ToUpper(s), "E+") {
		return s
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return strconv.FormatFloat(math.Round(val), 'f', 0, 64)
}

// Excel serials count days since 1899-12-30; serial 25569 is the Unix
// epoch day.
const excelEpochOffset = 25569

// ExcelSerialToTime interprets a cell as an Excel 1900-epoch day serial.
// The second return is false when the value is not a serial (already
// slash-formatted, or not numeric) and should pass through unchanged.
func ExcelSerialToTime(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.Contains(s, "/") {
		return time.Time{}, false
	}
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, false
	}
	secs := (serial - excelEpochOffset) * 86400
	return time.Unix(int64(secs), 0).UTC(), true
}

// Deadline renders a deadline cell as dd/mm/yyyy, converting Excel day
// serials and passing pre-formatted or non-numeric values through.
func Deadline(raw string) string {
	t, ok := ExcelSerialToTime(raw)
	if !ok {
		return raw
	}
	return t.Format("02/01/2006")
}

// Rating parses a status rating cell. Valid ratings are 1, 2 and 3;
// anything else, including parse failures, means unset.
func Rating(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	val, err := strconv.Atoi(s)
	if err != nil || val < 1 || val > 3 {
		return 0
	}
	return val
}
