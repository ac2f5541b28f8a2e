package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Amadeus  AmadeusConfig
	Airports AirportsConfig
	Snapshot SnapshotConfig
	DB       DBConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"debug"`
}

type AmadeusConfig struct {
	ClientID     string `envconfig:"AMADEUS_CLIENT_ID" required:"true"`
	ClientSecret string `envconfig:"AMADEUS_CLIENT_SECRET" required:"true"`
	// "test" (default) or "production"; selects the API host.
	Env string `envconfig:"AMADEUS_ENV" default:"test"`
}

type AirportsConfig struct {
	DataPath string `envconfig:"AIRPORTS_DATA_PATH" default:"data/airports.dat"`
}

type SnapshotConfig struct {
	Path string `envconfig:"SNAPSHOT_PATH" default:"flight_results.json"`
}

type DBConfig struct {
	// Optional append-only search history. Disabled when empty.
	URL string `envconfig:"DATABASE_URL" default:""`
}

type CORSConfig struct {
	AllowOrigins []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	MaxAge       time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

func (c AmadeusConfig) BaseURL() string {
	if c.Env == "production" {
		return "https://api.amadeus.com"
	}
	return "https://test.api.amadeus.com"
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
