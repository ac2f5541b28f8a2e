package services

import "encoding/json"

// Request builders for the upstream booking endpoints. These are pure data
// shaping: no network I/O, no validation of card numbers (PCI handling is the
// payment processor's concern).

// ─── Flight Orders ────────────────────────────────────────────────────────────

type FlightOrderRequest struct {
	Data FlightOrderData `json:"data"`
}

type FlightOrderData struct {
	Type         string            `json:"type"`
	FlightOffers []json.RawMessage `json:"flightOffers"`
	Travelers    []Traveler        `json:"travelers"`
}

type Traveler struct {
	ID          string           `json:"id"`
	DateOfBirth string           `json:"dateOfBirth"`
	Name        PersonName       `json:"name"`
	Gender      string           `json:"gender"`
	Contact     TravelerContact  `json:"contact"`
	Documents   []TravelDocument `json:"documents,omitempty"`
}

type PersonName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type TravelerContact struct {
	EmailAddress string  `json:"emailAddress"`
	Phones       []Phone `json:"phones"`
}

type Phone struct {
	DeviceType         string `json:"deviceType"`
	CountryCallingCode string `json:"countryCallingCode"`
	Number             string `json:"number"`
}

type TravelDocument struct {
	DocumentType    string `json:"documentType"`
	Number          string `json:"number"`
	IssuanceCountry string `json:"issuanceCountry"`
	ExpiryDate      string `json:"expiryDate"`
	Nationality     string `json:"nationality"`
	IssuanceDate    string `json:"issuanceDate,omitempty"`
	BirthPlace      string `json:"birthPlace,omitempty"`
	Holder          bool   `json:"holder"`
}

// NewTraveler assembles a traveler record with a single mobile contact phone.
// Documents are attached only when provided.
func NewTraveler(id, firstName, lastName, dateOfBirth, gender, email, phoneCountryCode, phoneNumber string, documents []TravelDocument) Traveler {
	return Traveler{
		ID:          id,
		DateOfBirth: dateOfBirth,
		Name:        PersonName{FirstName: firstName, LastName: lastName},
		Gender:      gender,
		Contact: TravelerContact{
			EmailAddress: email,
			Phones: []Phone{{
				DeviceType:         "MOBILE",
				CountryCallingCode: phoneCountryCode,
				Number:             phoneNumber,
			}},
		},
		Documents: documents,
	}
}

// BuildFlightOrder wraps a priced offer and its traveler into the flight-order
// body. The offer is passed through untouched.
func BuildFlightOrder(pricedOffer json.RawMessage, traveler Traveler) FlightOrderRequest {
	return FlightOrderRequest{
		Data: FlightOrderData{
			Type:         "flight-order",
			FlightOffers: []json.RawMessage{pricedOffer},
			Travelers:    []Traveler{traveler},
		},
	}
}

// ─── Hotel Bookings ───────────────────────────────────────────────────────────

type HotelBookingRequest struct {
	Data HotelBookingData `json:"data"`
}

type HotelBookingData struct {
	OfferID  string    `json:"offerId"`
	Guests   []Guest   `json:"guests"`
	Payments []Payment `json:"payments"`
}

type Guest struct {
	ID      string       `json:"id"`
	Name    GuestName    `json:"name"`
	Contact GuestContact `json:"contact"`
}

type GuestName struct {
	Title     string `json:"title"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type GuestContact struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type Payment struct {
	ID     string      `json:"id"`
	Method string      `json:"method"`
	Card   PaymentCard `json:"card"`
}

type PaymentCard struct {
	VendorCode string `json:"vendorCode"`
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
}

// BuildHotelBooking shapes the hotel-booking body for an offer id. The card is
// forwarded as-is.
func BuildHotelBooking(offerID string, guest Guest, card PaymentCard) HotelBookingRequest {
	return HotelBookingRequest{
		Data: HotelBookingData{
			OfferID: offerID,
			Guests:  []Guest{guest},
			Payments: []Payment{{
				ID:     "1",
				Method: "creditCard",
				Card:   card,
			}},
		},
	}
}

// ─── Transfer Bookings ────────────────────────────────────────────────────────

type TransferBookingRequest struct {
	Data TransferBookingData `json:"data"`
}

type TransferBookingData struct {
	OfferID    string      `json:"offerId"`
	Passengers []Passenger `json:"passengers"`
}

type Passenger struct {
	ID      string          `json:"id"`
	Name    PersonName      `json:"name"`
	Contact TravelerContact `json:"contact"`
}

// BuildTransferBooking shapes the transfer-booking body for the original
// transfer offer's id.
func BuildTransferBooking(offerID, firstName, lastName, email, phoneCountryCode, phoneNumber string) TransferBookingRequest {
	return TransferBookingRequest{
		Data: TransferBookingData{
			OfferID: offerID,
			Passengers: []Passenger{{
				ID:   "1",
				Name: PersonName{FirstName: firstName, LastName: lastName},
				Contact: TravelerContact{
					EmailAddress: email,
					Phones: []Phone{{
						DeviceType:         "MOBILE",
						CountryCallingCode: phoneCountryCode,
						Number:             phoneNumber,
					}},
				},
			}},
		},
	}
}
