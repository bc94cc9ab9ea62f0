package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AnimalsAPI struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

type Mapbox struct {
	BaseURL     string
	AccessToken string
	Language    string
	Country     string
	Timeout     time.Duration
}

type Log struct {
	Level  string
	Format string
	Color  bool
	App    string
}

type Fluent struct {
	Enabled bool
	Host    string
	Port    int
}

type Search struct {
	GeolocationTimeout   time.Duration
	AutocompleteDebounce time.Duration
	DefaultRadiusKm      float64
}

type Config struct {
	Port       string
	DBDSN      string
	DBMaxConns int

	AnimalsAPI AnimalsAPI
	Mapbox     Mapbox
	Log        Log
	Fluent     Fluent
	Search     Search

	CORSAllowedOrigins []string
}

// Load arma la config:
// 1) .env opcional (godotenv, no pisa variables ya seteadas)
// 2) defaults
// 3) config.yaml opcional en configPath
// 4) env vars (ANIMALS_API_BASE_URL -> animals_api.base_url, etc.)
func Load(configPath string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if strings.TrimSpace(configPath) != "" {
		v.AddConfigPath(configPath)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read config.yaml: %w", err)
		}
	}

	cfg := Config{
		Port:       v.GetString("port"),
		DBDSN:      v.GetString("db_dsn"),
		DBMaxConns: v.GetInt("db.max_conns"),
		AnimalsAPI: AnimalsAPI{
			BaseURL: strings.TrimRight(v.GetString("animals_api.base_url"), "/"),
			Token:   v.GetString("animals_api.token"),
			Timeout: v.GetDuration("animals_api.timeout"),
		},
		Mapbox: Mapbox{
			BaseURL:     strings.TrimRight(v.GetString("mapbox.base_url"), "/"),
			AccessToken: v.GetString("mapbox.access_token"),
			Language:    v.GetString("mapbox.language"),
			Country:     v.GetString("mapbox.country"),
			Timeout:     v.GetDuration("mapbox.timeout"),
		},
		Log: Log{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Color:  v.GetBool("log.color"),
			App:    v.GetString("app.name"),
		},
		Fluent: Fluent{
			Enabled: v.GetBool("fluent.enabled"),
			Host:    v.GetString("fluent.host"),
			Port:    v.GetInt("fluent.port"),
		},
		Search: Search{
			GeolocationTimeout:   v.GetDuration("geolocation.timeout"),
			AutocompleteDebounce: v.GetDuration("autocomplete.debounce"),
			DefaultRadiusKm:      v.GetFloat64("search.default_radius_km"),
		},
		CORSAllowedOrigins: splitCSV(v.GetString("cors.allowed_origins")),
	}

	if cfg.Fluent.Enabled && strings.TrimSpace(cfg.Fluent.Host) == "" {
		// mismo criterio que antes: sin host no hay fluent, pero no es fatal
		cfg.Fluent.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db_dsn", "")
	v.SetDefault("db.max_conns", 4)
	v.SetDefault("app.name", "lost-found-search")

	v.SetDefault("animals_api.base_url", "http://localhost:8081/api")
	v.SetDefault("animals_api.token", "")
	v.SetDefault("animals_api.timeout", 10*time.Second)

	v.SetDefault("mapbox.base_url", "https://api.mapbox.com")
	v.SetDefault("mapbox.access_token", "")
	v.SetDefault("mapbox.language", "fr")
	v.SetDefault("mapbox.country", "be")
	v.SetDefault("mapbox.timeout", 5*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.color", true)

	v.SetDefault("fluent.enabled", false)
	v.SetDefault("fluent.host", "")
	v.SetDefault("fluent.port", 24224)

	v.SetDefault("geolocation.timeout", 5*time.Second)
	v.SetDefault("autocomplete.debounce", 300*time.Millisecond)
	v.SetDefault("search.default_radius_km", 10.0)

	v.SetDefault("cors.allowed_origins", "http://localhost:5173")
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("config: port required")
	}
	if strings.TrimSpace(c.AnimalsAPI.BaseURL) == "" {
		return errors.New("config: animals_api.base_url required")
	}
	if c.Search.GeolocationTimeout <= 0 {
		return errors.New("config: geolocation.timeout must be > 0")
	}
	if c.Search.AutocompleteDebounce <= 0 {
		return errors.New("config: autocomplete.debounce must be > 0")
	}
	if c.Search.DefaultRadiusKm <= 0 {
		return errors.New("config: search.default_radius_km must be > 0")
	}
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
