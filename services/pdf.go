package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type SnapshotPDF struct {
	Origin      string
	Destination string
	DepartDate  string
	ReturnDate  string
	SavedAt     string
	Offers      []OfferSummary
}

// RenderSnapshotPDF renders the latest search snapshot as a printable summary
// and returns raw PDF bytes (no filesystem needed).
func RenderSnapshotPDF(data SnapshotPDF) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// ── Header Bar ───────────────────────────────────────────
	pdf.SetFillColor(13, 24, 37)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(20, 8)
	pdf.CellFormat(100, 10, "Tripwise", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(212, 168, 67)
	pdf.SetXY(20, 18)
	pdf.CellFormat(170, 6, "Flight Search Results", "", 1, "L", false, 0, "")

	pdf.SetY(35)
	pdf.SetTextColor(0, 0, 0)

	// ── Section Helper ───────────────────────────────────────
	sectionHeader := func(title string) {
		pdf.SetFillColor(13, 24, 37)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	// ── Query ────────────────────────────────────────────────
	sectionHeader("Search")
	row("Route", fmt.Sprintf("%s -> %s", data.Origin, data.Destination))
	row("Departure", fmtDateReadable(data.DepartDate))
	if data.ReturnDate != "" {
		row("Return", fmtDateReadable(data.ReturnDate))
	} else {
		row("Return", "One-way")
	}
	row("Saved", data.SavedAt)
	pdf.Ln(4)

	// ── Offers ───────────────────────────────────────────────
	if len(data.Offers) == 0 {
		sectionHeader("Offers")
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(170, 7, "No offers in the latest snapshot.", "", 1, "L", false, 0, "")
	}

	for i, offer := range data.Offers {
		sectionHeader(fmt.Sprintf("Offer %d  -  %s %s", i+1, offer.Price.Currency, offer.Price.Total))
		if offer.Outbound != nil {
			row("Outbound", formatLeg(*offer.Outbound))
		}
		if offer.Inbound != nil {
			row("Return", formatLeg(*offer.Inbound))
		}
		if len(offer.FlightCodes) > 0 {
			row("Flights", joinMax(offer.FlightCodes, 6))
		}
		pdf.Ln(3)

		if pdf.GetY() > 250 {
			pdf.AddPage()
		}
	}

	// ── Footer ───────────────────────────────────────────────
	pdf.SetY(-22)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.3)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 8,
		"Generated by Tripwise - Not a booking confirmation - Prices subject to change",
		"", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("PDF output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func fmtDateReadable(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006 (Mon)")
}

func formatLeg(leg LegSummary) string {
	stops := "Nonstop"
	if leg.Stops == 1 {
		stops = "1 stop"
	} else if leg.Stops > 1 {
		stops = fmt.Sprintf("%d stops", leg.Stops)
	}
	return fmt.Sprintf("%s -> %s, %s -> %s (%s)",
		leg.From, leg.To, fmtTimestamp(leg.DepartAt), fmtTimestamp(leg.ArriveAt), stops)
}

func fmtTimestamp(ts string) string {
	t, err := time.Parse("2006-01-02T15:04:05", ts)
	if err != nil {
		return ts
	}
	return t.Format("02 Jan 15:04")
}

func joinMax(items []string, max int) string {
	if len(items) <= max {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:max], ", ") + fmt.Sprintf(" (+%d more)", len(items)-max)
}
