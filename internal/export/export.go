package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/tourkita/tourkita-backend/internal/models"
	"github.com/tourkita/tourkita-backend/internal/stats"
)

// userReportHeaders are the columns of the user management export.
var userReportHeaders = []string{
	"id", "email", "name", "age", "gender", "contact",
	"status", "active", "user_type", "registered",
}

func userRow(u models.User) []string {
	active := "inactive"
	if u.IsActive {
		active = "active"
	}
	return []string{
		u.ID.Hex(),
		u.Email,
		u.Name,
		strconv.Itoa(u.Age),
		u.Gender,
		u.ContactNumber,
		u.Status,
		active,
		u.UserType,
		u.CreatedAt.Format("2006-01-02"),
	}
}

// UsersCSV renders the user list as a CSV report.
func UsersCSV(users []models.User) (string, error) {
	buffer := bytes.NewBuffer(nil)
	writer := csv.NewWriter(buffer)

	if err := writer.Write(userReportHeaders); err != nil {
		return "", err
	}
	for _, u := range users {
		if err := writer.Write(userRow(u)); err != nil {
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return buffer.String(), nil
}

// UsersPDF renders the user list as a tabular PDF report.
func UsersPDF(users []models.User, title string) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Total users: %d", len(users)))
	pdf.Ln(10)

	widths := []float64{38, 52, 40, 12, 18, 28, 22, 18, 24, 24}

	pdf.SetFont("Helvetica", "B", 8)
	for i, h := range userReportHeaders {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, u := range users {
		for i, cell := range userRow(u) {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buffer := bytes.NewBuffer(nil)
	if err := pdf.Output(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// FeedbackSummaryPDF renders a one-page summary of a feedback period:
// totals, overall average and the per-subject ranking.
func FeedbackSummaryPDF(entries []models.Feedback, category stats.Category, periodLabel string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 16)
	pdf.Cell(0, 10, "TourKita Feedback Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", periodLabel))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Total entries: %d", len(entries)))
	pdf.Ln(7)

	if avg, ok := stats.AverageRating(entries); ok {
		pdf.Cell(0, 8, fmt.Sprintf("Overall average rating: %.1f", avg))
	} else {
		pdf.Cell(0, 8, "Overall average rating: No data")
	}
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, "Ratings by subject")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	ranked := stats.PerSubjectAverages(entries, category)
	if len(ranked) == 0 {
		pdf.Cell(0, 6, "- No rated feedback in this period")
		pdf.Ln(6)
	}
	for _, row := range ranked {
		pdf.Cell(0, 6, fmt.Sprintf("- %s: %.1f (%d ratings)", row.Subject, row.Average, row.Count))
		pdf.Ln(6)
	}

	buffer := bytes.NewBuffer(nil)
	if err := pdf.Output(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
