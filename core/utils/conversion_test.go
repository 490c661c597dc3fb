package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Acme Widget 2000", CleanText("  Acme\tWidget   2000 \n"))
	assert.Equal(t, "", CleanText("   "))
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		valid bool
	}{
		{"12.5", "12.5", true},
		{"$1,299.999", "1300", true},
		{" 0 ", "0", true},
		{"", "", false},
		{"N/A", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePrice(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.Equal(t, tt.want, got.Decimal.String())
			}
		})
	}
}

func TestParsePriceRejectsGarbage(t *testing.T) {
	_, err := ParsePrice("twelve")
	assert.Error(t, err)

	_, err = ParsePrice("-3.00")
	assert.Error(t, err)
}

func TestParsePriceRejectsOverflow(t *testing.T) {
	got, err := ParsePrice("$99,999,999.99")
	require.NoError(t, err)
	assert.True(t, got.Decimal.Equal(MaxPrice))

	_, err = ParsePrice("100000000")
	assert.ErrorContains(t, err, "exceeds")

	_, err = ParsePrice("99999999.996")
	assert.Error(t, err)
}

func TestParseQuantity(t *testing.T) {
	tests := map[string]int{
		"12":    12,
		"12.0":  12,
		"50+":   50,
		">50":   50,
		"1,200": 1200,
		"":      0,
		"-4":    0,
	}
	for in, want := range tests {
		got, err := ParseQuantity(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseQuantity("lots")
	assert.Error(t, err)
}
