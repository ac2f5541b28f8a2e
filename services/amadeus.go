package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"tripwise/apierr"
	"tripwise/config"
)

// ─── Amadeus Client ───────────────────────────────────────────────────────────

type AmadeusClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	accessToken  string
	tokenExpiry  time.Time
	mu           sync.Mutex
	httpClient   *http.Client
}

// NewAmadeusClient exchanges the client credentials for a bearer token before
// returning. A grant that is not approved fails here, at startup.
func NewAmadeusClient(cfg config.AmadeusConfig) (*AmadeusClient, error) {
	c := &AmadeusClient{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		baseURL:      cfg.BaseURL(),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	if c.clientID == "" || c.clientSecret == "" {
		return nil, errors.Mark(errors.New("AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET must be set"), apierr.ErrAuthentication)
	}

	if err := c.refreshToken(); err != nil {
		return nil, err
	}
	return c, nil
}

// ─── OAuth2 Token ─────────────────────────────────────────────────────────────

func (c *AmadeusClient) refreshToken() error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)

	req, err := http.NewRequest("POST",
		c.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Mark(errors.Wrap(err, "token request failed"), apierr.ErrAuthentication)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return errors.Mark(
			errors.Newf("token request failed (%d): %s", resp.StatusCode, string(body)),
			apierr.ErrAuthentication)
	}

	var result struct {
		State       string `json:"state"`
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return errors.Mark(errors.Wrap(err, "failed to parse token response"), apierr.ErrAuthentication)
	}

	if result.State != "approved" {
		return errors.Mark(errors.Newf("access token not approved (state %q)", result.State), apierr.ErrAuthentication)
	}

	c.mu.Lock()
	c.accessToken = result.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	c.mu.Unlock()

	return nil
}

func (c *AmadeusClient) getToken() (string, error) {
	c.mu.Lock()
	expired := time.Now().After(c.tokenExpiry)
	token := c.accessToken
	c.mu.Unlock()

	if expired || token == "" {
		if err := c.refreshToken(); err != nil {
			return "", err
		}
		c.mu.Lock()
		token = c.accessToken
		c.mu.Unlock()
	}
	return token, nil
}

// doRequest performs an authenticated call. A 401 triggers exactly one forced
// token refresh followed by a retry; any second 401 is surfaced.
func (c *AmadeusClient) doRequest(method, path string, body []byte) ([]byte, error) {
	respBody, status, err := c.doOnce(method, path, body)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized {
		if err := c.refreshToken(); err != nil {
			return nil, err
		}
		respBody, status, err = c.doOnce(method, path, body)
		if err != nil {
			return nil, err
		}
	}

	if status < 200 || status >= 300 {
		return nil, apierr.Upstream(
			errors.Newf("amadeus error (%d): %s", status, string(respBody)),
			method+" "+strings.SplitN(path, "?", 2)[0])
	}
	return respBody, nil
}

func (c *AmadeusClient) doOnce(method, path string, body []byte) ([]byte, int, error) {
	token, err := c.getToken()
	if err != nil {
		return nil, 0, err
	}

	var req *http.Request
	if body != nil {
		req, err = http.NewRequest(method, c.baseURL+path, bytes.NewBuffer(body))
	} else {
		req, err = http.NewRequest(method, c.baseURL+path, nil)
	}
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, apierr.Upstream(err, method+" "+strings.SplitN(path, "?", 2)[0])
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	return respBody, resp.StatusCode, nil
}

// ─── Reference Data ───────────────────────────────────────────────────────────

type Location struct {
	SubType  string `json:"subType"`
	Name     string `json:"name"`
	IataCode string `json:"iataCode"`
}

// SearchLocations queries the city/airport reference dataset by keyword.
func (c *AmadeusClient) SearchLocations(keyword string) ([]Location, error) {
	path := fmt.Sprintf("/v1/reference-data/locations?keyword=%s&subType=CITY,AIRPORT&page[limit]=10",
		url.QueryEscape(keyword))

	body, err := c.doRequest("GET", path, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data []Location `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to parse locations")
	}
	return resp.Data, nil
}

// CityCoordinates looks up a city record (with geo coordinates) by name.
func (c *AmadeusClient) CityCoordinates(cityName string) (json.RawMessage, error) {
	path := fmt.Sprintf("/v1/reference-data/locations/cities?keyword=%s", url.QueryEscape(cityName))
	return c.doRequest("GET", path, nil)
}

// SearchActivities finds points of interest inside a bounding box.
func (c *AmadeusClient) SearchActivities(north, south, east, west float64, categories string, limit int) (json.RawMessage, error) {
	path := fmt.Sprintf("/v1/reference-data/locations/pois/by-square?north=%g&south=%g&east=%g&west=%g&page[limit]=%d",
		north, south, east, west, limit)
	if categories != "" {
		path += "&categories=" + url.QueryEscape(categories)
	}
	return c.doRequest("GET", path, nil)
}

// ─── Flights ──────────────────────────────────────────────────────────────────

type FlightSearchParams struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string // empty for one-way
	Adults        int
	Currency      string
	MaxPrice      int // 0 means no cap
	Max           int
}

type FlightOffersResult struct {
	Data         []json.RawMessage `json:"data"`
	Dictionaries Dictionaries      `json:"dictionaries"`
}

type Dictionaries struct {
	Carriers map[string]string `json:"carriers"`
}

// SearchFlightOffers runs the upstream flight-offers search. Offers are kept as
// raw JSON; only the summarizer reads into them.
func (c *AmadeusClient) SearchFlightOffers(p FlightSearchParams) (*FlightOffersResult, error) {
	q := url.Values{}
	q.Set("originLocationCode", p.Origin)
	q.Set("destinationLocationCode", p.Destination)
	q.Set("departureDate", p.DepartureDate)
	q.Set("adults", fmt.Sprintf("%d", p.Adults))
	q.Set("currencyCode", p.Currency)
	q.Set("max", fmt.Sprintf("%d", p.Max))
	if p.ReturnDate != "" {
		q.Set("returnDate", p.ReturnDate)
	}
	if p.MaxPrice > 0 {
		q.Set("maxPrice", fmt.Sprintf("%d", p.MaxPrice))
	}

	body, err := c.doRequest("GET", "/v2/shopping/flight-offers?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var result FlightOffersResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errors.Wrap(err, "failed to parse flight offers")
	}
	return &result, nil
}

// PriceFlightOffer confirms availability and final price for an offer returned
// by a previous search.
func (c *AmadeusClient) PriceFlightOffer(offer json.RawMessage) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]any{
		"data": map[string]any{
			"type":         "flight-offers-pricing",
			"flightOffers": []json.RawMessage{offer},
		},
	})
	if err != nil {
		return nil, err
	}
	return c.doRequest("POST", "/v1/shopping/flight-offers/pricing", body)
}

// BookFlight submits a flight order built by BuildFlightOrder.
func (c *AmadeusClient) BookFlight(order FlightOrderRequest) (json.RawMessage, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}
	return c.doRequest("POST", "/v1/booking/flight-orders", body)
}

// ─── Hotels ───────────────────────────────────────────────────────────────────

// SearchHotelsByCity lists hotels for an IATA city code.
func (c *AmadeusClient) SearchHotelsByCity(cityCode string) (json.RawMessage, error) {
	path := fmt.Sprintf("/v3/shopping/hotels/by-city?cityCode=%s", url.QueryEscape(cityCode))
	return c.doRequest("GET", path, nil)
}

// FilterHotelOffers narrows a hotel id list by stay dates, party size and price.
func (c *AmadeusClient) FilterHotelOffers(hotelIDs, checkInDate, checkOutDate string, adults, roomQuantity int, priceRange string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("hotelIds", hotelIDs)
	q.Set("checkInDate", checkInDate)
	q.Set("checkOutDate", checkOutDate)
	q.Set("adults", fmt.Sprintf("%d", adults))
	q.Set("roomQuantity", fmt.Sprintf("%d", roomQuantity))
	if priceRange != "" {
		q.Set("priceRange", priceRange)
	}
	return c.doRequest("GET", "/v3/shopping/hotels/?"+q.Encode(), nil)
}

// BookHotel submits a hotel booking built by BuildHotelBooking.
func (c *AmadeusClient) BookHotel(booking HotelBookingRequest) (json.RawMessage, error) {
	body, err := json.Marshal(booking)
	if err != nil {
		return nil, err
	}
	return c.doRequest("POST", "/v1/booking/hotel-bookings", body)
}

// ─── Transfers ────────────────────────────────────────────────────────────────

type TransferSearchParams struct {
	StartLocationCode string
	EndLocationCode   string
	StartDateTime     string
	Passengers        int
	TransferType      string
	Currency          string
}

func (c *AmadeusClient) SearchTransfers(p TransferSearchParams) (json.RawMessage, error) {
	transferType := p.TransferType
	if transferType == "" {
		transferType = "PRIVATE"
	}
	currency := p.Currency
	if currency == "" {
		currency = "USD"
	}

	q := url.Values{}
	q.Set("startLocationCode", p.StartLocationCode)
	q.Set("endLocationCode", p.EndLocationCode)
	q.Set("startDateTime", p.StartDateTime)
	q.Set("passengers", fmt.Sprintf("%d", p.Passengers))
	q.Set("transferType", transferType)
	q.Set("currency", currency)

	return c.doRequest("GET", "/v1/shopping/transfers?"+q.Encode(), nil)
}

// BookTransfer submits a transfer booking built by BuildTransferBooking.
func (c *AmadeusClient) BookTransfer(booking TransferBookingRequest) (json.RawMessage, error) {
	body, err := json.Marshal(booking)
	if err != nil {
		return nil, err
	}
	return c.doRequest("POST", "/v1/booking/transfers", body)
}
