package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTripOffer() Offer {
	return Offer{
		ID:    "7",
		Price: OfferPrice{Total: "512.30", Currency: "USD"},
		Itineraries: []Itinerary{
			{
				Duration: "PT11H25M",
				Segments: []Segment{
					{
						Departure:   Endpoint{IataCode: "JFK", At: "2026-02-01T08:00:00"},
						Arrival:     Endpoint{IataCode: "LHR", At: "2026-02-01T20:00:00"},
						CarrierCode: "BA",
						Number:      "112",
					},
					{
						Departure:   Endpoint{IataCode: "LHR", At: "2026-02-01T21:30:00"},
						Arrival:     Endpoint{IataCode: "CDG", At: "2026-02-01T22:45:00"},
						CarrierCode: "AF",
						Number:      "1681",
					},
				},
			},
			{
				Duration: "PT8H10M",
				Segments: []Segment{
					{
						Departure:   Endpoint{IataCode: "CDG", At: "2026-02-10T10:00:00"},
						Arrival:     Endpoint{IataCode: "JFK", At: "2026-02-10T13:10:00"},
						CarrierCode: "AF",
						Number:      "22",
					},
				},
			},
		},
	}
}

func TestSummarizeOffer_RoundTrip(t *testing.T) {
	carriers := map[string]string{"BA": "BRITISH AIRWAYS", "AF": "AIR FRANCE"}

	s := SummarizeOffer(roundTripOffer(), carriers)

	assert.Equal(t, "7", s.ID)
	assert.Equal(t, OfferPrice{Total: "512.30", Currency: "USD"}, s.Price)
	assert.Equal(t, []string{"BA 112", "AF 1681", "AF 22"}, s.FlightCodes)

	require.NotNil(t, s.Outbound)
	assert.Equal(t, "JFK", s.Outbound.From)
	assert.Equal(t, "CDG", s.Outbound.To)
	assert.Equal(t, "2026-02-01T08:00:00", s.Outbound.DepartAt)
	assert.Equal(t, "2026-02-01T22:45:00", s.Outbound.ArriveAt)
	assert.Equal(t, 1, s.Outbound.Stops)
	assert.Equal(t, "PT11H25M", s.Outbound.Duration)
	assert.Equal(t, []string{"BRITISH AIRWAYS", "AIR FRANCE"}, s.Outbound.Airlines)
	assert.Equal(t, []string{"BA", "AF"}, s.Outbound.CarrierCodes)

	require.NotNil(t, s.Inbound)
	assert.Equal(t, "CDG", s.Inbound.From)
	assert.Equal(t, "JFK", s.Inbound.To)
	assert.Equal(t, 0, s.Inbound.Stops)
}

func TestSummarizeOffer_OneWayHasNilInbound(t *testing.T) {
	offer := roundTripOffer()
	offer.Itineraries = offer.Itineraries[:1]

	s := SummarizeOffer(offer, nil)

	require.NotNil(t, s.Outbound)
	assert.Nil(t, s.Inbound)
}

func TestSummarizeOffer_UnknownCarrierFallsBackToCode(t *testing.T) {
	s := SummarizeOffer(roundTripOffer(), map[string]string{"BA": "BRITISH AIRWAYS"})

	assert.Equal(t, []string{"BRITISH AIRWAYS", "AF"}, s.Outbound.Airlines)
	assert.Equal(t, []string{"AF"}, s.Inbound.Airlines)
}

func TestSummarizeOffer_DedupesCarrierCodes(t *testing.T) {
	offer := roundTripOffer()
	offer.Itineraries[0].Segments[1].CarrierCode = "BA"
	offer.Itineraries[0].Segments[1].Number = "303"

	s := SummarizeOffer(offer, nil)

	assert.Equal(t, []string{"BA"}, s.Outbound.CarrierCodes)
	assert.Equal(t, []string{"BA 112", "BA 303", "AF 22"}, s.FlightCodes)
}

func TestSummarizeOffer_NoSegments(t *testing.T) {
	offer := Offer{ID: "1", Itineraries: []Itinerary{{Duration: "PT0M"}}}

	s := SummarizeOffer(offer, nil)

	require.NotNil(t, s.Outbound)
	assert.Equal(t, 0, s.Outbound.Stops)
	assert.Empty(t, s.Outbound.From)
	assert.Empty(t, s.Outbound.To)
}

func TestSummarizeOffers_DropsUnparseable(t *testing.T) {
	good, err := json.Marshal(roundTripOffer())
	require.NoError(t, err)

	summaries := SummarizeOffers([]json.RawMessage{
		good,
		json.RawMessage(`"not an offer object"`),
	}, nil)

	require.Len(t, summaries, 1)
	assert.Equal(t, "7", summaries[0].ID)
}
