// Package config loads application configuration from file and
// environment, and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data    DataConfig    `yaml:"data" mapstructure:"data"`
	Region  RegionConfig  `yaml:"region" mapstructure:"region"`
	Score   ScoreConfig   `yaml:"score" mapstructure:"score"`
	Cluster ClusterConfig `yaml:"cluster" mapstructure:"cluster"`
	Map     MapConfig     `yaml:"map" mapstructure:"map"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// DataConfig points at the external source files.
type DataConfig struct {
	SitesCSV        string `yaml:"sites_csv" mapstructure:"sites_csv"`
	BoundariesSHP   string `yaml:"boundaries_shp" mapstructure:"boundaries_shp"`
	DemographicsCSV string `yaml:"demographics_csv" mapstructure:"demographics_csv"`
	AQICSV          string `yaml:"aqi_csv" mapstructure:"aqi_csv"`
	EnergyBurdenCSV string `yaml:"energy_burden_csv" mapstructure:"energy_burden_csv"`
	EnergyXLSX      string `yaml:"energy_xlsx" mapstructure:"energy_xlsx"`
	PaletteYAML     string `yaml:"palette_yaml" mapstructure:"palette_yaml"`
}

// RegionConfig describes the covered region: its name as it appears in
// national tables and the coordinate envelope valid site records must
// fall inside.
type RegionConfig struct {
	StateName string  `yaml:"state_name" mapstructure:"state_name"`
	StateAbbr string  `yaml:"state_abbr" mapstructure:"state_abbr"`
	IDField   string  `yaml:"id_field" mapstructure:"id_field"`
	NameField string  `yaml:"name_field" mapstructure:"name_field"`
	MinLat    float64 `yaml:"min_lat" mapstructure:"min_lat"`
	MaxLat    float64 `yaml:"max_lat" mapstructure:"max_lat"`
	MinLon    float64 `yaml:"min_lon" mapstructure:"min_lon"`
	MaxLon    float64 `yaml:"max_lon" mapstructure:"max_lon"`
}

// ScoreConfig tunes the composite impact score. The normalization range
// is always computed per-run (dataset-relative); the weights are the
// configurable part.
type ScoreConfig struct {
	PovertyWeight  float64 `yaml:"poverty_weight" mapstructure:"poverty_weight"`
	MinorityWeight float64 `yaml:"minority_weight" mapstructure:"minority_weight"`
}

// ClusterConfig tunes concentration zone detection.
type ClusterConfig struct {
	ThresholdKM float64 `yaml:"threshold_km" mapstructure:"threshold_km"`
}

// MapConfig holds the initial viewport.
type MapConfig struct {
	CenterLat float64 `yaml:"center_lat" mapstructure:"center_lat"`
	CenterLon float64 `yaml:"center_lon" mapstructure:"center_lon"`
	Zoom      int     `yaml:"zoom" mapstructure:"zoom"`
}

// StoreConfig configures the local run-report database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the render-model HTTP server.
type ServerConfig struct {
	Port          int     `yaml:"port" mapstructure:"port"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst     int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("IMPACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.sites_csv", "data/processed/il_sites_enhanced.csv")
	v.SetDefault("data.boundaries_shp", "data/boundaries/IL_County_Boundaries.shp")
	v.SetDefault("data.demographics_csv", "data/processed/il_county_stats_enhanced.csv")
	v.SetDefault("data.aqi_csv", "data/raw/annual_aqi_by_county_2025.csv")
	v.SetDefault("region.state_name", "Illinois")
	v.SetDefault("region.state_abbr", "IL")
	v.SetDefault("region.id_field", "GEOID")
	v.SetDefault("region.name_field", "NAME")
	v.SetDefault("region.min_lat", 36.9)
	v.SetDefault("region.max_lat", 42.6)
	v.SetDefault("region.min_lon", -91.6)
	v.SetDefault("region.max_lon", -87.0)
	v.SetDefault("score.poverty_weight", 0.5)
	v.SetDefault("score.minority_weight", 0.5)
	v.SetDefault("cluster.threshold_km", 10.0)
	v.SetDefault("map.center_lat", 40.0)
	v.SetDefault("map.center_lon", -89.2)
	v.SetDefault("map.zoom", 7)
	v.SetDefault("store.path", "impact-map.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_per_second", 20)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
