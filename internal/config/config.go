// Package config loads the pipeline's JSON run configuration,
// defaulting and validating it the way the teacher's internal/ops
// config loader does.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// FileConfig mirrors the JSON config layout on disk.
type FileConfig struct {
	DataDir       string         `json:"dataDir"`
	ResultDir     string         `json:"resultDir"`
	Seed          int64          `json:"seed"`
	Counts        CountsConfig   `json:"counts"`
	Postgres      PostgresConfig `json:"postgres"`
	PyroscopeAddr string         `json:"pyroscopeAddr"`
}

// CountsConfig holds the synthetic data counts. PriceTicks sets how
// many ticks datagen writes per product; TradeCount and InquiryCount
// are defaulted but not passed to datagen, which always writes a fixed
// number of trades and inquiries per product.
type CountsConfig struct {
	PriceTicks  int `json:"priceTicks"`
	TradeCount  int `json:"tradeCount"`
	InquiryCount int `json:"inquiryCount"`
}

// PostgresConfig describes an optional historical-data sink.
type PostgresConfig struct {
	Enabled  bool   `json:"enabled"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	SSLMode  string `json:"sslMode"`
}

// Loaded is the resolved, defaulted configuration ready for use.
type Loaded struct {
	DataDir       string
	ResultDir     string
	Seed          int64
	Counts        CountsConfig
	Postgres      PostgresConfig
	PyroscopeAddr string
}

const (
	defaultDataDir      = "./data"
	defaultResultDir    = "./result"
	defaultPriceTicks   = 100
	defaultTradeCount   = 10
	defaultInquiryCount = 10
)

// Load reads a JSON config file at path, defaults unset fields, and
// validates the result.
func Load(path string) (Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, err
	}
	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Loaded{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return Resolve(cfg)
}

// Resolve defaults unset fields of cfg and validates the result. Load
// calls this after parsing a file; callers building a FileConfig from
// flags rather than a file call it directly.
func Resolve(cfg FileConfig) (Loaded, error) {
	loaded := Loaded{
		DataDir:       cfg.DataDir,
		ResultDir:     cfg.ResultDir,
		Seed:          cfg.Seed,
		Counts:        cfg.Counts,
		Postgres:      cfg.Postgres,
		PyroscopeAddr: cfg.PyroscopeAddr,
	}
	if loaded.DataDir == "" {
		loaded.DataDir = defaultDataDir
	}
	if loaded.ResultDir == "" {
		loaded.ResultDir = defaultResultDir
	}
	if loaded.Counts.PriceTicks <= 0 {
		loaded.Counts.PriceTicks = defaultPriceTicks
	}
	if loaded.Counts.TradeCount <= 0 {
		loaded.Counts.TradeCount = defaultTradeCount
	}
	if loaded.Counts.InquiryCount <= 0 {
		loaded.Counts.InquiryCount = defaultInquiryCount
	}
	if loaded.Postgres.Enabled && loaded.Postgres.Database == "" {
		return Loaded{}, fmt.Errorf("config: postgres.database is required when postgres.enabled is true")
	}
	return loaded, nil
}
