package reconcile

import (
	"strings"

	"catalog-reconciler/core/errors"
)

// UPCLength is the length of a normalized UPC.
const UPCLength = 12

// NormalizeUPC returns the 12-digit form of raw. Spaces and dashes are removed,
// 11-digit codes are left-padded, and the leading zeros of 13-digit EAN and
// 14-digit GTIN forms are dropped. Anything else, including all zeros, is a
// ValidationError.
func NormalizeUPC(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer(" ", "", "-", "").Replace(s)
	if s == "" {
		return "", errors.NewValidationError("upc", raw, "missing")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", errors.NewValidationError("upc", raw, "must contain digits only")
		}
	}

	switch len(s) {
	case 11:
		s = "0" + s
	case 13:
		if s[0] == '0' {
			s = s[1:]
		}
	case 14:
		if strings.HasPrefix(s, "00") {
			s = s[2:]
		}
	}

	if len(s) != UPCLength {
		return "", errors.NewValidationError("upc", raw, "must normalize to 12 digits")
	}
	if strings.Trim(s, "0") == "" {
		return "", errors.NewValidationError("upc", raw, "zero UPC")
	}
	return s, nil
}
