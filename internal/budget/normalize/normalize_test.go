package normalize

import (
	"testing"
	"time"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1,234", 1234},
		{"500-", -500},
		{"", 0},
		{"abc", 0},
		{" 12,345.67 ", 12345.67},
		{"-42", -42},
		{"1,234,567-", -1234567},
		{"3.5", 3.5},
		{"12 000", 12000},
	}
	for _, tt := range tests {
		if got := Number(tt.in); got != tt.want {
			t.Errorf("Number(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`שפ"ה`, "שפה"},
		{"שפ״ה", "שפה"},
		{"  הנדסה  ", "הנדסה"},
		{"'חינוך'", "חינוך"},
		{"“גינון”", "גינון"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := String(tt.in); got != tt.want {
			t.Errorf("String(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal(`שפ"ה`, "שפ״ה ") {
		t.Error("quote variants of the same wing should compare equal")
	}
	if Equal("הנדסה", "חינוך") {
		t.Error("distinct wings should not compare equal")
	}
}

func TestID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.23E+11", "123000000000"},
		{"1.23e+11", "123000000000"},
		{" 1811000720 ", "1811000720"},
		{"abc", "abc"},
		{"2.5E+2", "250"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ID(tt.in); got != tt.want {
			t.Errorf("ID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExcelSerialToTime(t *testing.T) {
	// 25569 is the Unix epoch day.
	got, ok := ExcelSerialToTime("25569")
	if !ok {
		t.Fatal("25569 should parse as a serial")
	}
	if want := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("serial 25569 = %v, want %v", got, want)
	}

	got, ok = ExcelSerialToTime("45658")
	if !ok {
		t.Fatal("45658 should parse as a serial")
	}
	if want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("serial 45658 = %v, want %v", got, want)
	}

	if _, ok := ExcelSerialToTime("31/12/2026"); ok {
		t.Error("slash-formatted dates should pass through")
	}
	if _, ok := ExcelSerialToTime("רבעון ב"); ok {
		t.Error("non-numeric deadlines should pass through")
	}
}

func TestDeadline(t *testing.T) {
	if got := Deadline("45658"); got != "01/01/2025" {
		t.Errorf("Deadline(45658) = %q, want 01/01/2025", got)
	}
	if got := Deadline("30/06/2026"); got != "30/06/2026" {
		t.Errorf("preformatted deadline changed: %q", got)
	}
	if got := Deadline("שוטף"); got != "שוטף" {
		t.Errorf("free-text deadline changed: %q", got)
	}
}

func TestRating(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1", 1}, {"2", 2}, {"3", 3},
		{"", 0}, {"0", 0}, {"7", 0}, {"x", 0}, {" 2 ", 2},
	}
	for _, tt := range tests {
		if got := Rating(tt.in); got != tt.want {
			t.Errorf("Rating(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
