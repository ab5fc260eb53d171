package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tourkita/tourkita-backend/internal/export"
	"github.com/tourkita/tourkita-backend/internal/models"
	"github.com/tourkita/tourkita-backend/internal/stats"
)

// navigatorFromQuery rebuilds the drill position from query params. The
// params mirror the selection path: each one only makes sense when every
// shallower one is present, matching the no-skipping rule of the drill.
func navigatorFromQuery(r *http.Request) (*stats.Navigator, error) {
	q := r.URL.Query()
	nav := stats.NewNavigator(stats.ParseCategory(q.Get("category")))

	if q.Get("year") == "" {
		return nav, nil
	}
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		return nil, fmt.Errorf("invalid year %q", q.Get("year"))
	}
	if err := nav.SelectYear(year); err != nil {
		return nil, err
	}

	if q.Get("quarter") == "" {
		return nav, nil
	}
	quarter, err := strconv.Atoi(q.Get("quarter"))
	if err != nil {
		return nil, fmt.Errorf("invalid quarter %q", q.Get("quarter"))
	}
	if err := nav.SelectQuarter(quarter); err != nil {
		return nil, err
	}

	if q.Get("month") == "" {
		return nav, nil
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil || month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month %q", q.Get("month"))
	}
	if err := nav.SelectMonth(time.Month(month)); err != nil {
		return nil, err
	}

	if q.Get("week") == "" {
		return nav, nil
	}
	week, err := strconv.Atoi(q.Get("week"))
	if err != nil {
		return nil, fmt.Errorf("invalid week %q", q.Get("week"))
	}
	if err := nav.SelectWeek(week); err != nil {
		return nil, err
	}

	if q.Get("day") == "" {
		return nav, nil
	}
	day, err := time.Parse("2006-01-02", q.Get("day"))
	if err != nil {
		return nil, fmt.Errorf("invalid day %q", q.Get("day"))
	}
	if err := nav.SelectDay(day); err != nil {
		return nil, err
	}

	return nav, nil
}

// GetReportDrilldown returns the period grid (or record table) for the
// drill position encoded in the query string. ?search= narrows the
// entries before bucketing, so the filter survives navigation.
func GetReportDrilldown(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	nav, err := navigatorFromQuery(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": err.Error()})
		return
	}

	feedbacks, err := fetchAllFeedbacks(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to fetch feedback"})
		return
	}
	feedbacks = stats.FilterSearch(feedbacks, r.URL.Query().Get("search"))

	response := map[string]interface{}{
		"success":  true,
		"level":    nav.Level().String(),
		"category": nav.Category(),
	}
	if nav.Level() == stats.LevelRecordTable {
		records := nav.Records(feedbacks)
		response["records"] = records
		response["count"] = len(records)
	} else {
		response["buckets"] = nav.Buckets(feedbacks, time.Now().UTC())
	}

	json.NewEncoder(w).Encode(response)
}

// summarySpan resolves the optional period params into a span and a human
// label. With no params the summary covers all time.
func summarySpan(r *http.Request) (stats.Span, string, error) {
	q := r.URL.Query()
	if q.Get("year") == "" {
		return stats.Span{}, "All time", nil
	}
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		return stats.Span{}, "", fmt.Errorf("invalid year %q", q.Get("year"))
	}
	if q.Get("month") == "" {
		return stats.YearSpan(year), strconv.Itoa(year), nil
	}
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil || month < 1 || month > 12 {
		return stats.Span{}, "", fmt.Errorf("invalid month %q", q.Get("month"))
	}
	m := time.Month(month)
	return stats.MonthSpan(year, m), fmt.Sprintf("%s %d", m, year), nil
}

// GetReportSummary returns the headline numbers for a period: entry count,
// overall average, the per-subject ranking and the top/bottom subjects.
func GetReportSummary(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")

	span, label, err := summarySpan(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": err.Error()})
		return
	}
	category := stats.ParseCategory(r.URL.Query().Get("category"))

	feedbacks, err := fetchAllFeedbacks(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Failed to fetch feedback"})
		return
	}
	feedbacks = stats.FilterSearch(feedbacks, r.URL.Query().Get("search"))

	var entries []models.Feedback
	if span.IsZero() {
		entries = make([]models.Feedback, 0, len(feedbacks))
		for _, f := range feedbacks {
			if stats.Matches(f, category) {
				entries = append(entries, f)
			}
		}
	} else {
		entries = stats.EntriesInSpan(feedbacks, span, category)
	}

	avg, hasData := stats.AverageRating(entries)
	top, bottom := stats.TopAndBottom(entries, category)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":        true,
		"period":         label,
		"category":       category,
		"count":          len(entries),
		"average_rating": avg,
		"has_data":       hasData,
		"top":            top,
		"bottom":         bottom,
		"ranking":        stats.PerSubjectAverages(entries, category),
	})
}

// ExportReportPDF downloads the period summary as a PDF.
func ExportReportPDF(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAdminAuth(w, r); !ok {
		return
	}

	span, label, err := summarySpan(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	category := stats.ParseCategory(r.URL.Query().Get("category"))

	feedbacks, err := fetchAllFeedbacks(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch feedback", http.StatusInternalServerError)
		return
	}

	var entries []models.Feedback
	if span.IsZero() {
		entries = make([]models.Feedback, 0, len(feedbacks))
		for _, f := range feedbacks {
			if stats.Matches(f, category) {
				entries = append(entries, f)
			}
		}
	} else {
		entries = stats.EntriesInSpan(feedbacks, span, category)
	}

	out, err := export.FeedbackSummaryPDF(entries, category, label)
	if err != nil {
		http.Error(w, "Failed to build PDF", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("tourkita-feedback-report-%s.pdf", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(out)
}
