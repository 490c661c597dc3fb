package utils

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// CleanText trims v and collapses internal runs of whitespace to one space.
func CleanText(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

// MaxPrice is the largest value a decimal(10,2) price column holds.
var MaxPrice = decimal.RequireFromString("99999999.99")

// ParsePrice parses a money value such as "$1,299.99" with two-decimal
// precision. Blank values and placeholders like "N/A" are null.
func ParsePrice(v string) (decimal.NullDecimal, error) {
	s := strings.Map(func(r rune) rune {
		if r == '$' || r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, v)
	if isBlank(s) {
		return decimal.NullDecimal{}, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid price %q", v)
	}
	if d.IsNegative() {
		return decimal.NullDecimal{}, fmt.Errorf("negative price %q", v)
	}
	d = d.Round(2)
	if d.GreaterThan(MaxPrice) {
		return decimal.NullDecimal{}, fmt.Errorf("price %q exceeds %s", v, MaxPrice)
	}
	return decimal.NewNullDecimal(d), nil
}

// ParseQuantity parses a stock quantity. Decimal values ("12.0") are
// truncated, capped values such as "50+" or ">50" yield the stated number, and
// blank values are zero.
func ParseQuantity(v string) (int, error) {
	s := strings.TrimSpace(v)
	s = strings.TrimPrefix(s, ">")
	s = strings.TrimSuffix(s, "+")
	s = strings.ReplaceAll(s, ",", "")
	if isBlank(s) {
		return 0, nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		return clampQuantity(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", v)
	}
	return clampQuantity(int(f)), nil
}

func clampQuantity(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func isBlank(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "n/a", "na", "null", "-":
		return true
	}
	return false
}
