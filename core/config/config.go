// Package config loads engine settings from the environment under the
// DOCVIEW_ prefix.
package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/lifekeep/docview/core/domain"
	"github.com/lifekeep/docview/util/timeutil"
)

type Config struct {
	// WeekStart fixes the boundary for week-relative date filters:
	// "monday" or "sunday".
	WeekStart string `envconfig:"WEEK_START" default:"monday"`
	// DefaultLocale applies to sort keys that do not pin their own
	// locale. Empty keeps codepoint order.
	DefaultLocale   string `envconfig:"DEFAULT_LOCALE"`
	DefaultPageSize int    `envconfig:"DEFAULT_PAGE_SIZE" default:"50"`
	MaxPageSize     int    `envconfig:"MAX_PAGE_SIZE" default:"500"`
}

func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("docview", &c); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func Default() Config {
	return Config{WeekStart: "monday", DefaultPageSize: 50, MaxPageSize: 500}
}

func (c Config) Validate() error {
	switch strings.ToLower(c.WeekStart) {
	case "monday", "sunday":
	default:
		return domain.Validationf("week start must be monday or sunday, got %q", c.WeekStart)
	}
	if c.DefaultPageSize <= 0 || c.MaxPageSize <= 0 {
		return domain.Validationf("page sizes must be positive")
	}
	if c.DefaultPageSize > c.MaxPageSize {
		return domain.Validationf("default page size %d exceeds maximum %d", c.DefaultPageSize, c.MaxPageSize)
	}
	return nil
}

func (c Config) WeekStartValue() timeutil.WeekStart {
	if strings.ToLower(c.WeekStart) == "sunday" {
		return timeutil.WeekStartSunday
	}
	return timeutil.WeekStartMonday
}
