package handlers

import "time"

// parseOptionalTime parses an RFC3339 timestamp, returning nil for missing or
// malformed input.
func parseOptionalTime(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	return &t
}
