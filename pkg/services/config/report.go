package config

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/biztools/revenue-atlas/pkg/models/domain"
)

// ReportConfig is the on-disk shape of the report parameters.
type ReportConfig struct {
	ExcludedCountries []string `mapstructure:"excluded_countries"`
	MinRevenue        float64  `mapstructure:"min_revenue"`
	AllowedPeriods    []string `mapstructure:"allowed_periods"`
	Quarters          Quarters `mapstructure:"quarters"`
	RollingWindow     int      `mapstructure:"rolling_window"`
	TopLosses         int      `mapstructure:"top_losses"`
}

type Quarters struct {
	Earlier string `mapstructure:"earlier"`
	Later   string `mapstructure:"later"`
}

// Load reads report parameters from the given file.
func Load(path string) (*ReportConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config ReportConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to parse report config: %w", err)
	}
	return &config, nil
}

// Params converts the file values into run parameters. Unset fields keep
// their defaulting behavior: nil allowed periods means every observed period,
// empty quarters mean the two most recent observed.
func (c *ReportConfig) Params() domain.ReportParams {
	params := domain.ReportParams{
		ExcludedCountries: c.ExcludedCountries,
		MinRevenue:        decimal.NewFromFloat(c.MinRevenue),
		AllowedPeriods:    c.AllowedPeriods,
		RollingWindow:     c.RollingWindow,
		TopLosses:         c.TopLosses,
	}
	if c.Quarters.Earlier != "" && c.Quarters.Later != "" {
		params.Quarters = &domain.QuarterPair{
			Earlier: c.Quarters.Earlier,
			Later:   c.Quarters.Later,
		}
	}
	return params
}
