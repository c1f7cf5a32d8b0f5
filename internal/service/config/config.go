package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPPort string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Airtable Airtable
	CORS     CORS
	Cache    Cache
	Case     Case

	// FieldSchemaPath points at an optional YAML file overriding field names.
	FieldSchemaPath string `env:"FIELD_SCHEMA_PATH"`
}

// Airtable holds record service credentials. Keys are deliberately not
// required here: handlers answer 500 per request when they are missing.
type Airtable struct {
	APIURL  string        `env:"AIRTABLE_API_URL" envDefault:"https://api.airtable.com"`
	APIKey  string        `env:"AIRTABLE_API_KEY"`
	BaseID  string        `env:"AIRTABLE_BASE_ID"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"0s"`

	CaseListAPIKey  string `env:"AIRTABLE_CASELIST_API_KEY"`
	CaseListBaseID  string `env:"CASELIST_BASE_ID" envDefault:"appcfY32cRVRuUJ9i"`
	CaseListTableID string `env:"CASELIST_TABLE_ID" envDefault:"tbl0zASOWTNNXGayL"`
}

type CORS struct {
	AllowedOrigins  []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"https://www.scarevision.co.uk,https://scarevision.co.uk,https://bluebird-tarantula-djcw.squarespace.com"`
	AllowedSuffixes []string `env:"ALLOWED_ORIGIN_SUFFIXES" envSeparator:"," envDefault:".squarespace.com"`
	// Strict answers 403 to disallowed origins instead of serving them
	// without an allow header.
	Strict bool `env:"STRICT_ORIGIN" envDefault:"false"`
}

// Cache durations are seconds for the s-maxage and stale-while-revalidate
// directives.
type Cache struct {
	CaseMaxAge int `env:"CASE_CACHE_MAX_AGE" envDefault:"3600"`
	CaseSWR    int `env:"CASE_CACHE_SWR" envDefault:"7200"`
	ListMaxAge int `env:"LIST_CACHE_MAX_AGE" envDefault:"3600"`
	ListSWR    int `env:"LIST_CACHE_SWR" envDefault:"7200"`
}

type Case struct {
	// FieldAllowlist limits response fields; absent ones are sent as null.
	FieldAllowlist        []string `env:"CASE_FIELD_ALLOWLIST" envSeparator:","`
	ForwardUpstreamDetail bool     `env:"FORWARD_UPSTREAM_DETAIL" envDefault:"false"`

	ProfileEnrichment bool   `env:"PROFILE_ENRICHMENT" envDefault:"false"`
	ProfileTable      string `env:"PROFILE_TABLE" envDefault:"Case Profiles"`
	ProfileCaseField  string `env:"PROFILE_CASE_FIELD" envDefault:"Case Number"`
	ProfileImageField string `env:"PROFILE_IMAGE_FIELD" envDefault:"Patient Image"`
}

func NewConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Cache.CaseMaxAge < 0 || cfg.Cache.CaseSWR < 0 || cfg.Cache.ListMaxAge < 0 || cfg.Cache.ListSWR < 0 {
		return Config{}, fmt.Errorf("cache durations must not be negative")
	}
	return cfg, nil
}
