package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripwise/apierr"
	"tripwise/database"
	"tripwise/services"
	"tripwise/snapshot"
)

// Commerce is the slice of the Amadeus client the handlers call. Tests swap
// in fakes; production wires *services.AmadeusClient.
type Commerce interface {
	SearchFlightOffers(p services.FlightSearchParams) (*services.FlightOffersResult, error)
	PriceFlightOffer(offer json.RawMessage) (json.RawMessage, error)
	BookFlight(order services.FlightOrderRequest) (json.RawMessage, error)
	SearchHotelsByCity(cityCode string) (json.RawMessage, error)
	FilterHotelOffers(hotelIDs, checkInDate, checkOutDate string, adults, roomQuantity int, priceRange string) (json.RawMessage, error)
	BookHotel(booking services.HotelBookingRequest) (json.RawMessage, error)
	SearchTransfers(p services.TransferSearchParams) (json.RawMessage, error)
	BookTransfer(booking services.TransferBookingRequest) (json.RawMessage, error)
	CityCoordinates(cityName string) (json.RawMessage, error)
	SearchActivities(north, south, east, west float64, categories string, limit int) (json.RawMessage, error)
}

type API struct {
	Client   Commerce
	Resolver *services.AirportResolver
	Store    *snapshot.Store
	History  *database.History
}

func NewAPI(client Commerce, resolver *services.AirportResolver, store *snapshot.Store, history *database.History) *API {
	return &API{
		Client:   client,
		Resolver: resolver,
		Store:    store,
		History:  history,
	}
}

func respondError(c *gin.Context, err error) {
	switch {
	case apierr.IsClientInput(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apierr.IsUpstream(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Amadeus request failed", "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
