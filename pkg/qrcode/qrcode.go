// Package qrcode encodes and decodes the asset tracking code printed on a
// contract's tag: CATEGORY-TYPE-YYYYMMDD-SEQUENCE (e.g. CAR-RENTAL-20260206-01).
package qrcode

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	MinSequence = 1
	MaxSequence = 99

	dateLayout = "20060102"
)

var ErrInvalidArgument = errors.New("qrcode: invalid argument")

var (
	reCategory = regexp.MustCompile(`^[A-Z]{2,6}$`)
	reType     = regexp.MustCompile(`^[A-Z]{2,10}$`)
	reDate     = regexp.MustCompile(`^\d{8}$`)
	reSequence = regexp.MustCompile(`^\d{2}$`)
)

// Code is a decoded tracking code. Date keeps the YYYYMMDD form.
type Code struct {
	Category string `json:"category"`
	Type     string `json:"type"`
	Date     string `json:"date"`
	Sequence int    `json:"sequence"`
}

func (c Code) String() string {
	return fmt.Sprintf("%s-%s-%s-%02d", c.Category, c.Type, c.Date, c.Sequence)
}

// Time returns the encoded civil date at UTC midnight.
func (c Code) Time() time.Time {
	t, _ := time.Parse(dateLayout, c.Date)
	return t
}

// Display renders the code with a dotted date, e.g. CAR-RENTAL-2026.02.06-01.
func (c Code) Display() string {
	return fmt.Sprintf("%s-%s-%s.%s.%s-%02d", c.Category, c.Type, c.Date[:4], c.Date[4:6], c.Date[6:], c.Sequence)
}

// Prefix is the part of a code shared by every sequence of one
// category/type/day, used to allocate the next sequence.
func Prefix(category, typ string, date time.Time) string {
	return strings.ToUpper(strings.TrimSpace(category)) + "-" +
		strings.ToUpper(strings.TrimSpace(typ)) + "-" + date.Format(dateLayout) + "-"
}

// Parse decodes a tracking code. It never fails loudly: anything malformed
// yields ok == false.
func Parse(raw string) (Code, bool) {
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(raw)), "-")
	if len(parts) != 4 {
		return Code{}, false
	}
	category, typ, date, seq := parts[0], parts[1], parts[2], parts[3]

	if !reCategory.MatchString(category) || !reType.MatchString(typ) {
		return Code{}, false
	}
	if !plausibleDate(date) {
		return Code{}, false
	}
	if !reSequence.MatchString(seq) {
		return Code{}, false
	}
	n, _ := strconv.Atoi(seq)

	return Code{Category: category, Type: typ, Date: date, Sequence: n}, true
}

// ValidCategory reports whether s is a usable category token (2-6 letters).
func ValidCategory(s string) bool { return reCategory.MatchString(s) }

// ValidType reports whether s is a usable contract type token (2-10 letters).
func ValidType(s string) bool { return reType.MatchString(s) }

func IsValid(raw string) bool {
	_, ok := Parse(raw)
	return ok
}

// Generate builds a tracking code from its parts.
func Generate(category, typ string, date time.Time, sequence int) (string, error) {
	if date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidArgument)
	}
	return generate(category, typ, date.Format(dateLayout), sequence)
}

// GenerateFromString accepts the date as YYYY-MM-DD or YYYYMMDD.
func GenerateFromString(category, typ, date string, sequence int) (string, error) {
	d := strings.ReplaceAll(strings.TrimSpace(date), "-", "")
	if len(d) != 8 {
		return "", fmt.Errorf("%w: date %q must be YYYY-MM-DD or YYYYMMDD", ErrInvalidArgument, date)
	}
	return generate(category, typ, d, sequence)
}

func generate(category, typ, date string, sequence int) (string, error) {
	if sequence < MinSequence || sequence > MaxSequence {
		return "", fmt.Errorf("%w: sequence must be between %d and %d, got %d", ErrInvalidArgument, MinSequence, MaxSequence, sequence)
	}
	c := Code{
		Category: strings.ToUpper(strings.TrimSpace(category)),
		Type:     strings.ToUpper(strings.TrimSpace(typ)),
		Date:     date,
		Sequence: sequence,
	}
	if !reCategory.MatchString(c.Category) {
		return "", fmt.Errorf("%w: category %q must be 2-6 letters", ErrInvalidArgument, category)
	}
	if !reType.MatchString(c.Type) {
		return "", fmt.Errorf("%w: type %q must be 2-10 letters", ErrInvalidArgument, typ)
	}
	if !plausibleDate(c.Date) {
		return "", fmt.Errorf("%w: implausible date %q", ErrInvalidArgument, date)
	}
	return c.String(), nil
}

// Compare orders codes for listing: valid codes first by date, category,
// type, then sequence; invalid codes after them in plain string order.
func Compare(a, b string) int {
	ca, okA := Parse(a)
	cb, okB := Parse(b)
	switch {
	case !okA && !okB:
		return strings.Compare(a, b)
	case !okA:
		return 1
	case !okB:
		return -1
	}
	if c := strings.Compare(ca.Date, cb.Date); c != 0 {
		return c
	}
	if c := strings.Compare(ca.Category, cb.Category); c != 0 {
		return c
	}
	if c := strings.Compare(ca.Type, cb.Type); c != 0 {
		return c
	}
	switch {
	case ca.Sequence < cb.Sequence:
		return -1
	case ca.Sequence > cb.Sequence:
		return 1
	}
	return 0
}

func plausibleDate(d string) bool {
	if !reDate.MatchString(d) {
		return false
	}
	y, _ := strconv.Atoi(d[:4])
	m, _ := strconv.Atoi(d[4:6])
	day, _ := strconv.Atoi(d[6:])
	return y >= 2020 && y <= 2100 && m >= 1 && m <= 12 && day >= 1 && day <= 31
}
