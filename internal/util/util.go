package util

import (
	"fmt"
	"net"
	"strings"
	"time"
	"unicode"
)

// Contains checks if a slice contains a specific value
func Contains[T comparable](slice []T, val T) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}

// Ptr returns a pointer to the given value
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the pointed value or the zero value for nil.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// CollapseWhitespace replaces every run of whitespace with a single space
// and trims both ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FormatMillis renders a duration as milliseconds with one decimal, e.g. "12.3ms".
func FormatMillis(d time.Duration) string {
	return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
}

// IsIPAddress reports whether s parses as an IPv4 or IPv6 address.
func IsIPAddress(s string) bool {
	return net.ParseIP(s) != nil
}

// StartsWithDigit reports whether the first rune of s is a decimal digit.
func StartsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}

// PageCount returns the number of pages needed for total items.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	count := (total + pageSize - 1) / pageSize
	if count == 0 {
		count = 1
	}
	return count
}
