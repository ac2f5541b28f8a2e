package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripwise/apierr"
	"tripwise/config"
)

// newTestClient builds a client pointed at a test server with a token that is
// already valid, so data calls skip the grant.
func newTestClient(baseURL string) *AmadeusClient {
	return &AmadeusClient{
		clientID:     "id",
		clientSecret: "secret",
		baseURL:      baseURL,
		accessToken:  "initial-token",
		tokenExpiry:  time.Now().Add(time.Hour),
		httpClient:   &http.Client{Timeout: 5 * time.Second},
	}
}

func tokenResponse(w http.ResponseWriter, state, token string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"state":%q,"access_token":%q,"expires_in":1799}`, state, token)
}

func TestNewAmadeusClient_MissingCredentials(t *testing.T) {
	_, err := NewAmadeusClient(config.AmadeusConfig{})
	require.Error(t, err)
	assert.True(t, apierr.IsAuthentication(err))
}

func TestRefreshToken_Approved(t *testing.T) {
	var gotGrant, gotID, gotSecret string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/v1/security/oauth2/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotGrant = r.PostForm.Get("grant_type")
		gotID = r.PostForm.Get("client_id")
		gotSecret = r.PostForm.Get("client_secret")
		tokenResponse(w, "approved", "fresh-token")
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	c.accessToken = ""
	c.tokenExpiry = time.Time{}

	require.NoError(t, c.refreshToken())

	assert.Equal(t, "client_credentials", gotGrant)
	assert.Equal(t, "id", gotID)
	assert.Equal(t, "secret", gotSecret)
	assert.Equal(t, "fresh-token", c.accessToken)
	assert.True(t, c.tokenExpiry.After(time.Now()))
}

func TestRefreshToken_NotApproved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenResponse(w, "pending", "unusable")
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	err := c.refreshToken()
	require.Error(t, err)
	assert.True(t, apierr.IsAuthentication(err))
	assert.Contains(t, err.Error(), "not approved")
}

func TestRefreshToken_GrantRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	err := c.refreshToken()
	require.Error(t, err)
	assert.True(t, apierr.IsAuthentication(err))
}

func TestDoRequest_RetriesOnceAfterUnauthorized(t *testing.T) {
	var dataCalls, tokenCalls int
	var lastAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/security/oauth2/token" {
			tokenCalls++
			tokenResponse(w, "approved", "renewed-token")
			return
		}
		dataCalls++
		lastAuth = r.Header.Get("Authorization")
		if dataCalls == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	body, err := c.doRequest("GET", "/v1/test", nil)
	require.NoError(t, err)

	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, 2, dataCalls)
	assert.Equal(t, 1, tokenCalls)
	assert.Equal(t, "Bearer renewed-token", lastAuth)
}

func TestDoRequest_SecondUnauthorizedSurfaces(t *testing.T) {
	var dataCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/security/oauth2/token" {
			tokenResponse(w, "approved", "renewed-token")
			return
		}
		dataCalls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.doRequest("GET", "/v1/test", nil)
	require.Error(t, err)
	assert.True(t, apierr.IsUpstream(err))
	assert.Equal(t, 2, dataCalls)
}

func TestDoRequest_UpstreamErrorMarked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"title":"INTERNAL ERROR"}]}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.doRequest("GET", "/v2/shopping/flight-offers?adults=1", nil)
	require.Error(t, err)
	assert.True(t, apierr.IsUpstream(err))
	// The query string stays out of the error context.
	assert.Contains(t, err.Error(), "GET /v2/shopping/flight-offers")
	assert.NotContains(t, err.Error(), "adults=1")
}

func TestSearchLocations_ParsesData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/reference-data/locations", r.URL.Path)
		assert.Equal(t, "Paris", r.URL.Query().Get("keyword"))
		assert.Equal(t, "CITY,AIRPORT", r.URL.Query().Get("subType"))
		assert.Equal(t, "10", r.URL.Query().Get("page[limit]"))
		fmt.Fprint(w, `{"data":[
			{"subType":"CITY","name":"PARIS","iataCode":"PAR"},
			{"subType":"AIRPORT","name":"CHARLES DE GAULLE","iataCode":"CDG"}
		]}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	locations, err := c.SearchLocations("Paris")
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, Location{SubType: "CITY", Name: "PARIS", IataCode: "PAR"}, locations[0])
	assert.Equal(t, Location{SubType: "AIRPORT", Name: "CHARLES DE GAULLE", IataCode: "CDG"}, locations[1])
}

func TestSearchFlightOffers_QueryParams(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v2/shopping/flight-offers", r.URL.Path)
		got = map[string]string{}
		for k := range r.URL.Query() {
			got[k] = r.URL.Query().Get(k)
		}
		fmt.Fprint(w, `{"data":[{"id":"1"}],"dictionaries":{"carriers":{"BA":"BRITISH AIRWAYS"}}}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	result, err := c.SearchFlightOffers(FlightSearchParams{
		Origin:        "JFK",
		Destination:   "LHR",
		DepartureDate: "2026-10-01",
		ReturnDate:    "2026-10-08",
		Adults:        1,
		Currency:      "USD",
		MaxPrice:      800,
		Max:           5,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"originLocationCode":      "JFK",
		"destinationLocationCode": "LHR",
		"departureDate":           "2026-10-01",
		"returnDate":              "2026-10-08",
		"adults":                  "1",
		"currencyCode":            "USD",
		"maxPrice":                "800",
		"max":                     "5",
	}, got)

	require.Len(t, result.Data, 1)
	assert.Equal(t, "BRITISH AIRWAYS", result.Dictionaries.Carriers["BA"])
}

func TestSearchFlightOffers_OneWayNoBudget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.False(t, q.Has("returnDate"))
		assert.False(t, q.Has("maxPrice"))
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	result, err := c.SearchFlightOffers(FlightSearchParams{
		Origin:        "JFK",
		Destination:   "CDG",
		DepartureDate: "2026-10-01",
		Adults:        1,
		Currency:      "USD",
		Max:           5,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Data)
}

func TestPriceFlightOffer_WrapsOffer(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/v1/shopping/flight-offers/pricing", r.URL.Path)
		var buf map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&buf))
		gotBody, _ = json.Marshal(buf)
		fmt.Fprint(w, `{"data":{"type":"flight-offers-pricing"}}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.PriceFlightOffer(json.RawMessage(`{"id":"7"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"type":"flight-offers-pricing","flightOffers":[{"id":"7"}]}}`, string(gotBody))
}
