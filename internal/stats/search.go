package stats

import (
	"strconv"
	"strings"

	"github.com/tourkita/tourkita-backend/internal/models"
)

// searchTimeFormats are the renderings of createdAt the dashboard shows, so
// a term typed off the screen matches the record it came from.
var searchTimeFormats = []string{
	"Jan 02, 2006",
	"2006-01-02",
	"3:04 PM",
}

// MatchesSearch reports whether the term is a case-insensitive substring of
// any of: submitter email, subject, comment, formatted creation date/time,
// or stringified rating. An empty term matches everything.
func MatchesSearch(f models.Feedback, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}

	fields := []string{f.Email, f.Location, f.Feature, f.Comment}
	if f.CreatedAt != nil {
		for _, layout := range searchTimeFormats {
			fields = append(fields, f.CreatedAt.Format(layout))
		}
	}
	if f.Rating != nil {
		fields = append(fields, strconv.Itoa(*f.Rating))
	}

	for _, v := range fields {
		if v != "" && strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

// FilterSearch returns the entries matching the term, preserving order.
func FilterSearch(entries []models.Feedback, term string) []models.Feedback {
	if strings.TrimSpace(term) == "" {
		return entries
	}
	out := make([]models.Feedback, 0, len(entries))
	for _, f := range entries {
		if MatchesSearch(f, term) {
			out = append(out, f)
		}
	}
	return out
}
