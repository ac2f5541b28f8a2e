package services

import (
	"encoding/csv"
	"log"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

var iataRE = regexp.MustCompile(`^[A-Z]{3}$`)

// cityFuzzyCutoff mirrors difflib-style close matching: below this ratio a
// city name is not considered a match.
const cityFuzzyCutoff = 0.8

// LocationSearcher is the remote half of airport resolution. The Amadeus
// client implements it; a nil searcher skips the remote step entirely.
type LocationSearcher interface {
	SearchLocations(keyword string) ([]Location, error)
}

type Airport struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
	IATA    string `json:"iata"`
}

// airportDataset loads the static airport table once per process and keeps it
// read-only afterward.
type airportDataset struct {
	path     string
	once     sync.Once
	airports []Airport
	err      error
}

func (d *airportDataset) load() ([]Airport, error) {
	d.once.Do(func() {
		f, err := os.Open(d.path)
		if err != nil {
			d.err = err
			return
		}
		defer f.Close()

		reader := csv.NewReader(f)
		reader.FieldsPerRecord = -1
		rows, err := reader.ReadAll()
		if err != nil {
			d.err = err
			return
		}

		for _, row := range rows {
			// Format: ID, Name, City, Country, IATA, ICAO, Lat, Long, ...
			if len(row) < 5 {
				continue
			}
			iata := strings.TrimSpace(row[4])
			if iata == "" || iata == `\N` || len(iata) != 3 {
				continue
			}
			d.airports = append(d.airports, Airport{
				Name:    strings.TrimSpace(row[1]),
				City:    strings.TrimSpace(row[2]),
				Country: strings.TrimSpace(row[3]),
				IATA:    strings.ToUpper(iata),
			})
		}
	})
	return d.airports, d.err
}

// AirportResolver maps free-text locations to IATA codes: code pattern first,
// then the remote reference-data lookup, then the local dataset. Remote
// failures are swallowed so the local fallback always gets a chance.
type AirportResolver struct {
	locations LocationSearcher
	dataset   *airportDataset
	metric    *metrics.RatcliffObershelp
}

func NewAirportResolver(locations LocationSearcher, dataPath string) *AirportResolver {
	return &AirportResolver{
		locations: locations,
		dataset:   &airportDataset{path: dataPath},
		metric:    metrics.NewRatcliffObershelp(),
	}
}

// Resolve returns the IATA code for a free-text location, or false when no
// step produced a match.
func (r *AirportResolver) Resolve(query string) (string, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", false
	}

	// Already a code — trust the caller.
	if upper := strings.ToUpper(q); iataRE.MatchString(upper) {
		return upper, true
	}

	if code, ok := r.resolveRemote(q); ok {
		return code, true
	}

	return r.resolveLocal(q)
}

func (r *AirportResolver) resolveRemote(query string) (string, bool) {
	if r.locations == nil {
		return "", false
	}

	locs, err := r.locations.SearchLocations(query)
	if err != nil {
		log.Printf("⚠️  Remote location lookup for %q failed, falling back to local dataset: %v", query, err)
		return "", false
	}

	// City matches win over airport matches.
	for _, l := range locs {
		if l.SubType == "CITY" && l.IataCode != "" {
			return l.IataCode, true
		}
	}
	for _, l := range locs {
		if l.SubType == "AIRPORT" && l.IataCode != "" {
			return l.IataCode, true
		}
	}
	return "", false
}

func (r *AirportResolver) resolveLocal(query string) (string, bool) {
	airports, err := r.dataset.load()
	if err != nil {
		log.Printf("⚠️  Airport dataset unavailable (%s): %v", r.dataset.path, err)
		return "", false
	}

	q := strings.ToLower(query)

	// Exact city match. Multiple airports can share a city; the first record
	// wins, which is not necessarily the city's main airport.
	for _, a := range airports {
		if strings.ToLower(a.City) == q {
			return a.IATA, true
		}
	}

	// Fuzzy city match: single best candidate above the cutoff.
	seen := make(map[string]bool)
	bestCity := ""
	bestScore := 0.0
	for _, a := range airports {
		city := strings.ToLower(a.City)
		if city == "" || seen[city] {
			continue
		}
		seen[city] = true

		score := strutil.Similarity(q, city, r.metric)
		if score >= cityFuzzyCutoff && score > bestScore {
			bestCity = city
			bestScore = score
		}
	}
	if bestCity == "" {
		return "", false
	}

	for _, a := range airports {
		if strings.ToLower(a.City) == bestCity {
			return a.IATA, true
		}
	}
	return "", false
}
