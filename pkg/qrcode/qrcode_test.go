package qrcode

import (
	"errors"
	"sort"
	"testing"
	"time"
)

func TestParse_Valid(t *testing.T) {
	got, ok := Parse("CAR-RENTAL-20260206-01")
	if !ok {
		t.Fatal("expected valid code")
	}
	want := Code{Category: "CAR", Type: "RENTAL", Date: "20260206", Sequence: 1}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestParse_NormalizesCaseAndSpace(t *testing.T) {
	got, ok := Parse("  mtr-pawn-20251231-42 ")
	if !ok {
		t.Fatal("expected valid code")
	}
	if got.String() != "MTR-PAWN-20251231-42" {
		t.Fatalf("String() = %q", got.String())
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{
		"",
		"XX",
		"CAR-RENTAL-20260206",          // 3 fields
		"CAR-RENTAL-20260206-01-EXTRA", // 5 fields
		"C-RENTAL-20260206-01",         // category too short
		"CARSPECI-RENTAL-20260206-01",  // category too long
		"CAR-R-20260206-01",            // type too short
		"CAR-RENTALRENTA-20260206-01",  // type too long
		"CA1-RENTAL-20260206-01",       // digit in category
		"CAR-RENTAL-2026026-01",        // 7-digit date
		"CAR-RENTAL-20190206-01",       // year too early
		"CAR-RENTAL-21010206-01",       // year too late
		"CAR-RENTAL-20261306-01",       // month 13
		"CAR-RENTAL-20260200-01",       // day 0
		"CAR-RENTAL-20260232-01",       // day 32
		"CAR-RENTAL-20260206-1",        // 1-digit sequence
		"CAR-RENTAL-20260206-001",      // 3-digit sequence
	} {
		if _, ok := Parse(s); ok {
			t.Errorf("Parse(%q) ok, want invalid", s)
		}
		if IsValid(s) {
			t.Errorf("IsValid(%q) = true", s)
		}
	}
}

func TestGenerate_RoundTrip(t *testing.T) {
	cases := []struct {
		cat, typ string
		date     time.Time
		seq      int
	}{
		{"CAR", "RENTAL", time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC), 1},
		{"mtr", "pawn", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 99},
		{"SPECIA", "CONSIGNMEN", time.Date(2100, 12, 31, 0, 0, 0, 0, time.UTC), 10},
	}
	for _, tc := range cases {
		code, err := Generate(tc.cat, tc.typ, tc.date, tc.seq)
		if err != nil {
			t.Fatalf("Generate(%v): %v", tc, err)
		}
		got, ok := Parse(code)
		if !ok {
			t.Fatalf("Parse(%q) failed", code)
		}
		if got.Sequence != tc.seq || got.Date != tc.date.Format("20060102") || !got.Time().Equal(tc.date) {
			t.Fatalf("round trip mismatch: %q -> %+v", code, got)
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	d := time.Date(2026, 2, 6, 0, 0, 0, 0, time.UTC)
	for name, fn := range map[string]func() (string, error){
		"seq zero":      func() (string, error) { return Generate("CAR", "PAWN", d, 0) },
		"seq 100":       func() (string, error) { return Generate("CAR", "PAWN", d, 100) },
		"bad category":  func() (string, error) { return Generate("C4R", "PAWN", d, 1) },
		"bad type":      func() (string, error) { return Generate("CAR", "P", d, 1) },
		"zero date":     func() (string, error) { return Generate("CAR", "PAWN", time.Time{}, 1) },
		"old date":      func() (string, error) { return Generate("CAR", "PAWN", time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), 1) },
		"short string":  func() (string, error) { return GenerateFromString("CAR", "PAWN", "2026-2-6", 1) },
		"garbage month": func() (string, error) { return GenerateFromString("CAR", "PAWN", "20261506", 1) },
	} {
		if _, err := fn(); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: err = %v, want ErrInvalidArgument", name, err)
		}
	}
}

func TestGenerateFromString_AcceptsBothLayouts(t *testing.T) {
	a, err := GenerateFromString("car", "rental", "2026-02-06", 7)
	if err != nil {
		t.Fatalf("dashed: %v", err)
	}
	b, err := GenerateFromString("CAR", "RENTAL", "20260206", 7)
	if err != nil {
		t.Fatalf("compact: %v", err)
	}
	if a != "CAR-RENTAL-20260206-07" || a != b {
		t.Fatalf("a=%q b=%q", a, b)
	}
}

func TestCompare_Ordering(t *testing.T) {
	codes := []string{
		"zzz",
		"CAR-RENTAL-20260207-01",
		"MTR-PAWN-20260206-02",
		"CAR-RENTAL-20260206-10",
		"aaa",
		"CAR-PAWN-20260206-05",
		"CAR-RENTAL-20260206-02",
	}
	sort.SliceStable(codes, func(i, j int) bool { return Compare(codes[i], codes[j]) < 0 })
	want := []string{
		"CAR-PAWN-20260206-05",
		"CAR-RENTAL-20260206-02",
		"CAR-RENTAL-20260206-10",
		"MTR-PAWN-20260206-02",
		"CAR-RENTAL-20260207-01",
		"aaa",
		"zzz",
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("order[%d] = %q, want %q (all: %v)", i, codes[i], want[i], codes)
		}
	}
	if Compare("CAR-RENTAL-20260206-01", "car-rental-20260206-01") != 0 {
		t.Fatal("case-insensitive equal codes should compare equal")
	}
}

func TestDisplayAndPrefix(t *testing.T) {
	c, _ := Parse("CAR-RENTAL-20260206-01")
	if got := c.Display(); got != "CAR-RENTAL-2026.02.06-01" {
		t.Fatalf("Display = %q", got)
	}
	if got := Prefix(" car", "rental ", c.Time()); got != "CAR-RENTAL-20260206-" {
		t.Fatalf("Prefix = %q", got)
	}
}
