// Package utils provides utility functions for the application.
package utils

import (
	"strconv"
	"strings"
)

// ParseDecimal normalizes user-entered numbers from rate admin forms.
// Accepts values like "18,4", "18.4 €", "95 %" and returns the float value.
// Empty input yields (0, false).
func ParseDecimal(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	replacer := strings.NewReplacer("€", "", "%", "", " ", "", ",", ".")
	s = replacer.Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseDecimalPtr is ParseDecimal for optional fields, returning nil when absent.
func ParseDecimalPtr(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	v, ok := ParseDecimal(*raw)
	if !ok {
		return nil
	}
	return &v
}
