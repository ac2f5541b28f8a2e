package services

import (
	"encoding/json"
	"fmt"
)

// ─── Offer Types ──────────────────────────────────────────────────────────────

// Offer is the slice of an upstream flight offer the summarizer reads.
// Everything else in the raw offer is opaque pass-through.
type Offer struct {
	ID          string      `json:"id"`
	Price       OfferPrice  `json:"price"`
	Itineraries []Itinerary `json:"itineraries"`
}

type OfferPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Departure   Endpoint `json:"departure"`
	Arrival     Endpoint `json:"arrival"`
	CarrierCode string   `json:"carrierCode"`
	Number      string   `json:"number"`
}

type Endpoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

// ─── Summaries ────────────────────────────────────────────────────────────────

type OfferSummary struct {
	ID          string      `json:"id"`
	Price       OfferPrice  `json:"price"`
	FlightCodes []string    `json:"flightCodes"`
	Outbound    *LegSummary `json:"outbound"`
	Inbound     *LegSummary `json:"inbound"`
}

type LegSummary struct {
	From         string   `json:"from"`
	To           string   `json:"to"`
	DepartAt     string   `json:"departAt"`
	ArriveAt     string   `json:"arriveAt"`
	Stops        int      `json:"stops"`
	Duration     string   `json:"duration"`
	Airlines     []string `json:"airlines"`
	CarrierCodes []string `json:"carrierCodes"`
}

// SummarizeOffers flattens each raw offer into its compact summary. Offers
// that do not parse are dropped rather than failing the batch.
func SummarizeOffers(raw []json.RawMessage, carriers map[string]string) []OfferSummary {
	summaries := make([]OfferSummary, 0, len(raw))
	for _, r := range raw {
		var offer Offer
		if err := json.Unmarshal(r, &offer); err != nil {
			continue
		}
		summaries = append(summaries, SummarizeOffer(offer, carriers))
	}
	return summaries
}

// SummarizeOffer produces the compact view of one offer. A one-way offer has
// a nil inbound leg; that is not an error.
func SummarizeOffer(offer Offer, carriers map[string]string) OfferSummary {
	var outbound, inbound *LegSummary
	if len(offer.Itineraries) > 0 {
		outbound = summarizeItinerary(offer.Itineraries[0], carriers)
	}
	if len(offer.Itineraries) > 1 {
		inbound = summarizeItinerary(offer.Itineraries[1], carriers)
	}

	return OfferSummary{
		ID:          offer.ID,
		Price:       offer.Price,
		FlightCodes: extractFlightCodes(offer),
		Outbound:    outbound,
		Inbound:     inbound,
	}
}

func summarizeItinerary(itin Itinerary, carriers map[string]string) *LegSummary {
	segs := itin.Segments

	// Deduped carrier codes in first-appearance order.
	var carrierCodes []string
	seen := make(map[string]bool)
	for _, s := range segs {
		if s.CarrierCode != "" && !seen[s.CarrierCode] {
			seen[s.CarrierCode] = true
			carrierCodes = append(carrierCodes, s.CarrierCode)
		}
	}

	airlines := make([]string, 0, len(carrierCodes))
	for _, cc := range carrierCodes {
		if name, ok := carriers[cc]; ok {
			airlines = append(airlines, name)
		} else {
			airlines = append(airlines, cc)
		}
	}

	leg := &LegSummary{
		Stops:        countStops(itin),
		Duration:     itin.Duration,
		Airlines:     airlines,
		CarrierCodes: carrierCodes,
	}
	if len(segs) > 0 {
		leg.From = segs[0].Departure.IataCode
		leg.DepartAt = segs[0].Departure.At
		leg.To = segs[len(segs)-1].Arrival.IataCode
		leg.ArriveAt = segs[len(segs)-1].Arrival.At
	}
	return leg
}

// countStops is segment count minus one, floored at zero.
func countStops(itin Itinerary) int {
	if len(itin.Segments) <= 1 {
		return 0
	}
	return len(itin.Segments) - 1
}

func extractFlightCodes(offer Offer) []string {
	var codes []string
	for _, itin := range offer.Itineraries {
		for _, seg := range itin.Segments {
			if seg.CarrierCode != "" && seg.Number != "" {
				codes = append(codes, fmt.Sprintf("%s %s", seg.CarrierCode, seg.Number))
			}
		}
	}
	return codes
}
