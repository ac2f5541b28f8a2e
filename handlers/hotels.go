package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripwise/services"
)

type HotelSearchRequest struct {
	CityCode     string `json:"city_code" binding:"required"`
	HotelIDs     string `json:"hotel_ids"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Adults       int    `json:"adults"`
	RoomQuantity int    `json:"room_quantity"`
	PriceRange   string `json:"price_range"`
}

// HotelSearchHandler lists hotels for a city, or filters a hotel id list by
// stay dates when ids are provided.
func (a *API) HotelSearchHandler(c *gin.Context) {
	var req HotelSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if req.HotelIDs != "" {
		if req.Adults <= 0 {
			req.Adults = 1
		}
		if req.RoomQuantity <= 0 {
			req.RoomQuantity = 1
		}
		offers, err := a.Client.FilterHotelOffers(
			req.HotelIDs, req.CheckInDate, req.CheckOutDate,
			req.Adults, req.RoomQuantity, req.PriceRange,
		)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Data(http.StatusOK, "application/json", offers)
		return
	}

	hotels, err := a.Client.SearchHotelsByCity(req.CityCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", hotels)
}

type HotelBookRequest struct {
	OfferID        string `json:"offer_id" binding:"required"`
	GuestID        string `json:"guest_id" binding:"required"`
	Title          string `json:"title" binding:"required"`
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	CardVendorCode string `json:"card_vendor_code" binding:"required"`
	CardNumber     string `json:"card_number" binding:"required"`
	CardExpiryDate string `json:"card_expiry_date" binding:"required"`
}

// HotelBookHandler books a hotel offer. The card is forwarded as-is; PCI
// handling is the upstream's concern.
func (a *API) HotelBookHandler(c *gin.Context) {
	var req HotelBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	guest := services.Guest{
		ID: req.GuestID,
		Name: services.GuestName{
			Title:     req.Title,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		},
		Contact: services.GuestContact{
			Phone: req.Phone,
			Email: req.Email,
		},
	}
	card := services.PaymentCard{
		VendorCode: req.CardVendorCode,
		CardNumber: req.CardNumber,
		ExpiryDate: req.CardExpiryDate,
	}

	booking, err := a.Client.BookHotel(services.BuildHotelBooking(req.OfferID, guest, card))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", booking)
}
