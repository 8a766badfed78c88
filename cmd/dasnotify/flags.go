package main

import (
	"strings"
	"unicode"
)

// flagName converts a parameter id to a kebab-case flag ("dasConnector" -> "das-connector").
func flagName(id string) string {
	var b strings.Builder
	rs := []rune(id)
	for i, r := range rs {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && unicode.IsLower(rs[i-1])
			nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
