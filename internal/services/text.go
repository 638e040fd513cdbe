package services

import "strings"

// stripNUL removes U+0000, which PostgreSQL rejects in TEXT and JSONB values
func stripNUL(s *string) *string {
	if s == nil || !strings.ContainsRune(*s, 0) {
		return s
	}
	clean := strings.ReplaceAll(*s, "\x00", "")
	return &clean
}
