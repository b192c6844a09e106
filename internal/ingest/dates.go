// Package ingest turns loosely structured roster input (textarea blobs,
// CSV uploads, vision model output) into the structures the allocation
// engine consumes. Everything here is best-effort: malformed input is
// retained and surfaced to validation rather than rejected.
package ingest

import (
	"sort"
	"strings"
	"time"
)

// DateLayout is the fixed DD-MM-YY wire format for exam dates.
const DateLayout = "02-01-06"

// sentinel for unparseable tokens so they sort last.
var maxDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// ParseExamDate parses a DD-MM-YY token.
func ParseExamDate(token string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(token))
}

// SortDates orders date tokens chronologically. Unparseable tokens are
// kept, treated as maximal so they sort to the end in their original
// relative order; validation reports them as user-facing errors.
func SortDates(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}

	type entry struct {
		at    time.Time
		token string
	}
	entries := make([]entry, 0, len(tokens))
	for _, token := range tokens {
		trimmed := strings.TrimSpace(token)
		at, err := ParseExamDate(trimmed)
		if err != nil {
			at = maxDate
		}
		entries = append(entries, entry{at: at, token: trimmed})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].at.Before(entries[j].at)
	})

	sorted := make([]string, len(entries))
	for i, e := range entries {
		sorted[i] = e.token
	}
	return sorted
}

// DateDiffDays computes the absolute distance in days between two
// DD-MM-YY tokens.
func DateDiffDays(a, b string) (int, error) {
	first, err := ParseExamDate(a)
	if err != nil {
		return 0, err
	}
	second, err := ParseExamDate(b)
	if err != nil {
		return 0, err
	}
	diff := int(second.Sub(first).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return diff, nil
}

// FormatDates joins date tokens for display.
func FormatDates(dates []string) string {
	return strings.Join(dates, ", ")
}
