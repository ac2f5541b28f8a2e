package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripwise/database"
	"tripwise/services"
	"tripwise/snapshot"
)

const defaultOrigin = "JFK"

type FlightSearchRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Dates       string `json:"dates"`
	Budget      string `json:"budget"`
}

// FlightSearchHandler is the primary operation: resolve the query, run the
// upstream search, summarize each offer, persist the snapshot and return the
// same payload.
func (a *API) FlightSearchHandler(c *gin.Context) {
	var req FlightSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	departDate, returnDate := services.ParseDates(req.Dates)
	if departDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must be in YYYY-MM-DD format"})
		return
	}

	origin := defaultOrigin
	if req.Origin != "" {
		if resolved, ok := a.Resolver.Resolve(req.Origin); ok {
			origin = resolved
		}
	}

	destination, ok := a.Resolver.Resolve(req.Destination)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Could not resolve destination %q", req.Destination)})
		return
	}

	maxPrice := 0
	if req.Budget != "" {
		budget, err := strconv.ParseFloat(req.Budget, 64)
		if err != nil || budget < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Budget must be numeric"})
			return
		}
		maxPrice = int(budget)
	}

	result, err := a.Client.SearchFlightOffers(services.FlightSearchParams{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departDate,
		ReturnDate:    returnDate,
		Adults:        1,
		Currency:      "USD",
		MaxPrice:      maxPrice,
		Max:           5,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	doc := snapshot.Document{
		Origin:      origin,
		Destination: destination,
		DepartDate:  departDate,
		ReturnDate:  returnDate,
		Offers:      services.SummarizeOffers(result.Data, result.Dictionaries.Carriers),
		SavedAt:     time.Now().Format(time.RFC3339),
	}

	// Last-write-wins by design; a failed write never fails the search.
	if err := a.Store.Write(doc); err != nil {
		log.Printf("⚠️  Failed to write snapshot: %v", err)
	}

	a.History.Append(database.SearchRecord{
		ID:          uuid.New().String(),
		Origin:      origin,
		Destination: destination,
		DepartDate:  departDate,
		ReturnDate:  returnDate,
		MaxPrice:    maxPrice,
		OfferCount:  len(doc.Offers),
	})

	c.JSON(http.StatusOK, doc)
}

type FlightPriceRequest struct {
	Offer json.RawMessage `json:"offer" binding:"required"`
}

// FlightPriceHandler confirms availability and final price for a previously
// returned offer.
func (a *API) FlightPriceHandler(c *gin.Context) {
	var req FlightPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	priced, err := a.Client.PriceFlightOffer(req.Offer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", priced)
}

type FlightBookRequest struct {
	Offer            json.RawMessage           `json:"offer" binding:"required"`
	TravelerID       string                    `json:"traveler_id" binding:"required"`
	FirstName        string                    `json:"first_name" binding:"required"`
	LastName         string                    `json:"last_name" binding:"required"`
	DateOfBirth      string                    `json:"date_of_birth" binding:"required"`
	Gender           string                    `json:"gender" binding:"required"`
	Email            string                    `json:"email" binding:"required"`
	PhoneCountryCode string                    `json:"phone_country_code" binding:"required"`
	PhoneNumber      string                    `json:"phone_number" binding:"required"`
	Documents        []services.TravelDocument `json:"documents"`
}

// FlightBookHandler creates a flight order from a priced offer plus traveler
// details.
func (a *API) FlightBookHandler(c *gin.Context) {
	var req FlightBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	traveler := services.NewTraveler(
		req.TravelerID,
		req.FirstName, req.LastName,
		req.DateOfBirth, req.Gender,
		req.Email,
		req.PhoneCountryCode, req.PhoneNumber,
		req.Documents,
	)

	order, err := a.Client.BookFlight(services.BuildFlightOrder(req.Offer, traveler))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", order)
}
