package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripwise/services"
)

// SnapshotHandler returns the latest persisted query + results document.
func (a *API) SnapshotHandler(c *gin.Context) {
	raw, err := a.Store.Read()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Snapshot unavailable"})
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// SnapshotPDFHandler renders the latest snapshot as a downloadable PDF.
func (a *API) SnapshotPDFHandler(c *gin.Context) {
	doc, err := a.Store.ReadDocument()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Snapshot unavailable"})
		return
	}
	if doc.Origin == "" && len(doc.Offers) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No search has been run yet"})
		return
	}

	pdfBytes, err := services.RenderSnapshotPDF(services.SnapshotPDF{
		Origin:      doc.Origin,
		Destination: doc.Destination,
		DepartDate:  doc.DepartDate,
		ReturnDate:  doc.ReturnDate,
		SavedAt:     doc.SavedAt,
		Offers:      doc.Offers,
	})
	if err != nil {
		log.Printf("❌ PDF generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=tripwise-results.pdf")
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// HistoryHandler returns recent search history rows when the history store is
// enabled.
func (a *API) HistoryHandler(c *gin.Context) {
	if !a.History.Enabled() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Search history is not enabled"})
		return
	}

	records, err := a.History.Recent(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read search history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"searches": records})
}
