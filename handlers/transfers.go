package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripwise/services"
)

type TransferSearchRequest struct {
	StartLocationCode string `json:"start_location_code" binding:"required"`
	EndLocationCode   string `json:"end_location_code" binding:"required"`
	StartDateTime     string `json:"start_date_time" binding:"required"`
	Passengers        int    `json:"passengers"`
	TransferType      string `json:"transfer_type"`
	Currency          string `json:"currency"`
}

func (a *API) TransferSearchHandler(c *gin.Context) {
	var req TransferSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.Passengers <= 0 {
		req.Passengers = 1
	}

	transfers, err := a.Client.SearchTransfers(services.TransferSearchParams{
		StartLocationCode: req.StartLocationCode,
		EndLocationCode:   req.EndLocationCode,
		StartDateTime:     req.StartDateTime,
		Passengers:        req.Passengers,
		TransferType:      req.TransferType,
		Currency:          req.Currency,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", transfers)
}

type TransferBookRequest struct {
	OfferID          string `json:"offer_id" binding:"required"`
	FirstName        string `json:"first_name" binding:"required"`
	LastName         string `json:"last_name" binding:"required"`
	Email            string `json:"email" binding:"required"`
	PhoneCountryCode string `json:"phone_country_code" binding:"required"`
	PhoneNumber      string `json:"phone_number" binding:"required"`
}

func (a *API) TransferBookHandler(c *gin.Context) {
	var req TransferBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	booking, err := a.Client.BookTransfer(services.BuildTransferBooking(
		req.OfferID,
		req.FirstName, req.LastName,
		req.Email,
		req.PhoneCountryCode, req.PhoneNumber,
	))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", booking)
}
